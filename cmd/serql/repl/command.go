package repl

import (
	"context"
	"flag"
	"fmt"
	"os"
	"strings"

	"github.com/brimdata/serql/cli/clierrors"
	"github.com/brimdata/serql/cmd/serql/root"
	"github.com/brimdata/serql/compiler"
	"github.com/brimdata/serql/pkg/charm"
	"github.com/brimdata/serql/pkg/repl"
	"github.com/brimdata/serql/zfmt"
)

var Cmd = &charm.Spec{
	Name:  "repl",
	Usage: "repl",
	Short: "compile syntax trees interactively",
	Long: `
The repl command reads one JSON-encoded syntax tree per line and prints
its plan as indented operator text.  Type "quit" or end input to exit.`,
	New: New,
}

type Command struct {
	*root.Command
	ctx      context.Context
	compiler *compiler.Compiler
}

func New(parent charm.Command, f *flag.FlagSet) (charm.Command, error) {
	return &Command{Command: parent.(*root.Command)}, nil
}

func (c *Command) Run(args []string) error {
	ctx, cleanup, err := c.Init()
	if err != nil {
		return err
	}
	defer cleanup()
	if len(args) != 0 {
		return fmt.Errorf("repl: unexpected arguments: %s", strings.Join(args, " "))
	}
	c.ctx = ctx
	c.compiler = &compiler.Compiler{Logger: c.CompileLogger()}
	return repl.Run(c)
}

func (c *Command) Prompt() string {
	return "serql> "
}

func (c *Command) Consume(line string) bool {
	line = strings.TrimSpace(line)
	if line == "quit" || line == "exit" {
		return true
	}
	qc, err := compiler.Parse(strings.NewReader(line))
	if err != nil {
		fmt.Fprintln(os.Stderr, clierrors.Format("", err))
		return false
	}
	plan, err := c.compiler.Compile(c.ctx, qc)
	if err != nil {
		fmt.Fprintln(os.Stderr, clierrors.Format("", err))
		return c.ctx.Err() != nil
	}
	fmt.Println(zfmt.Algebra(plan))
	return false
}
