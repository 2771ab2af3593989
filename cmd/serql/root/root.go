package root

import (
	"flag"

	"github.com/brimdata/serql/cli"
	"github.com/brimdata/serql/pkg/charm"
)

var Serql = &charm.Spec{
	Name:  "serql",
	Usage: "serql <command> [options] [arguments...]",
	Short: "compile SeRQL syntax trees",
	Long: `
serql compiles SeRQL query syntax trees, encoded as JSON, into relational
algebra plans.  Plans can be printed as JSON or as indented operator text,
and the compiler can be run as an HTTP service.`,
	New: New,
}

type Command struct {
	charm.Command
	cli.Flags
	flags *flag.FlagSet
}

func New(parent charm.Command, f *flag.FlagSet) (charm.Command, error) {
	c := &Command{flags: f}
	c.SetFlags(f)
	return c, nil
}

func (c *Command) Run(args []string) error {
	_, cancel, err := c.Init()
	if err != nil {
		return err
	}
	defer cancel()
	if len(args) == 0 {
		return charm.NeedHelp
	}
	return charm.ErrNoRun
}

// IsSet reports whether any of the named root flags was given on the
// command line.
func (c *Command) IsSet(names ...string) bool {
	return isSet(c.flags, names...)
}

func isSet(fs *flag.FlagSet, names ...string) bool {
	var found bool
	fs.Visit(func(f *flag.Flag) {
		for _, name := range names {
			if f.Name == name {
				found = true
			}
		}
	})
	return found
}
