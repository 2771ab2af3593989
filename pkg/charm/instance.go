package charm

import (
	"errors"
	"flag"
	"fmt"
	"strings"
)

// instance is a constructed command and the flag set its constructor
// registered flags on.
type instance struct {
	spec    *Spec
	command Command
	flags   *flag.FlagSet
}

func newInstance(parent Command, spec *Spec) (*instance, error) {
	if spec.New == nil {
		return nil, fmt.Errorf("%s: command has no constructor", spec.Name)
	}
	fs := flag.NewFlagSet(spec.Name, flag.ContinueOnError)
	cmd, err := spec.New(parent, fs)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", spec.Name, err)
	}
	return &instance{spec: spec, command: cmd, flags: fs}, nil
}

// options describes each flag on one line as "-name arg usage".  Hidden
// flags are listed in brackets when showHidden is set.  Zero defaults
// and the defaults of redacted flags are omitted.
func (i *instance) options(showHidden bool) []string {
	hidden := flagMap(i.spec.HiddenFlags)
	redacted := flagMap(i.spec.RedactedFlags)
	var lines []string
	i.flags.VisitAll(func(f *flag.Flag) {
		if hidden[f.Name] && !showHidden {
			return
		}
		arg, usage := flag.UnquoteUsage(f)
		name := "-" + f.Name
		if arg != "" {
			name += " " + arg
		}
		if hidden[f.Name] {
			name = "[" + name + "]"
		}
		line := name + "  " + usage
		switch f.DefValue {
		case "", "0", "false":
		default:
			if !redacted[f.Name] {
				line += fmt.Sprintf(" (default %s)", f.DefValue)
			}
		}
		lines = append(lines, line)
	})
	return lines
}

// path is the chain of instances from the root command down to the one
// that runs.
type path []*instance

func (p path) last() *instance {
	return p[len(p)-1]
}

func (p path) names() string {
	names := make([]string, len(p))
	for k, inst := range p {
		names[k] = inst.spec.Name
	}
	return strings.Join(names, " ")
}

// run runs the last command.  A command that returns ErrNoRun only
// groups sub-commands, so reaching it means args did not name one.
func (p path) run(args []string) error {
	last := p.last()
	err := last.command.Run(args)
	if !errors.Is(err, ErrNoRun) {
		return err
	}
	var choices []string
	for _, child := range last.spec.children {
		if !child.Hidden {
			choices = append(choices, child.Name)
		}
	}
	if len(args) == 0 {
		return fmt.Errorf("%s: a sub-command is required (one of %s)", p.names(), strings.Join(choices, ", "))
	}
	return fmt.Errorf("%s: unknown sub-command %q (one of %s)", p.names(), args[0], strings.Join(choices, ", "))
}
