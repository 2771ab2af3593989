// Package charm builds command-line programs from a tree of command
// specs.  Each command parses its own flags and passes the remaining
// arguments to a sub-command or to its Run method.
package charm

import (
	"errors"
	"flag"
)

var (
	// NeedHelp may be returned by Run to display the command's help.
	NeedHelp = errors.New("help")
	// ErrNoRun is returned by Run for a command that only groups
	// sub-commands.
	ErrNoRun = errors.New("no run method")
)

// Constructor creates a command and registers its flags on f.  parent
// is the command one level up, or nil for the root.
type Constructor func(parent Command, f *flag.FlagSet) (Command, error)

type Command interface {
	Run(args []string) error
}

type Spec struct {
	Name  string
	Usage string
	Short string
	Long  string
	New   Constructor
	// Hidden commands are listed only by "help -v".
	Hidden bool
	// HiddenFlags and RedactedFlags are comma-separated flag names.
	// Hidden flags are listed only by "help -v".  Redacted flags are
	// listed without their default values.
	HiddenFlags   string
	RedactedFlags string

	children []*Spec
	parent   *Spec
}

// Add makes each of children a sub-command of s.
func (s *Spec) Add(children ...*Spec) {
	for _, child := range children {
		child.parent = s
		s.children = append(s.children, child)
	}
}

func (s *Spec) root() *Spec {
	for s.parent != nil {
		s = s.parent
	}
	return s
}

func (s *Spec) lookupSub(name string) *Spec {
	for _, child := range s.children {
		if child.Name == name {
			return child
		}
	}
	return nil
}

// Exec runs the command that args name below s.  parent becomes the
// parent of the command built from s.
func (s *Spec) Exec(parent Command, args []string) error {
	p, rest, _, err := parse(s, args, parent)
	if err != nil {
		return err
	}
	return p.run(rest)
}

// ExecRoot is like Exec for the root command of a program.  A NeedHelp
// error, whether from -h or from Run, displays help for the deepest
// command named in args.
func (s *Spec) ExecRoot(args []string) error {
	p, rest, showHidden, err := parse(s, args, nil)
	if err == nil {
		err = p.run(rest)
	}
	if !errors.Is(err, NeedHelp) {
		return err
	}
	helpPath, err := parseHelp(s, args)
	if err != nil {
		return err
	}
	displayHelp(helpPath, showHidden)
	return nil
}
