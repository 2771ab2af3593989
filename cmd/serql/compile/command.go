package compile

import (
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"os"

	"github.com/brimdata/serql/cli"
	"github.com/brimdata/serql/cli/clierrors"
	"github.com/brimdata/serql/cmd/serql/root"
	"github.com/brimdata/serql/compiler"
	"github.com/brimdata/serql/compiler/ast"
	"github.com/brimdata/serql/compiler/ast/algebra"
	"github.com/brimdata/serql/pkg/charm"
	"github.com/brimdata/serql/zfmt"
	"go.uber.org/multierr"
)

var Cmd = &charm.Spec{
	Name:  "compile",
	Usage: "compile [options] file...",
	Short: "compile syntax trees into query plans",
	Long: `
The compile command reads one or more JSON-encoded SeRQL syntax trees and
prints the query plan of each.  A file name of "-" reads standard input.
Each file holds either a QueryContainer or a bare query.

Plans are printed as JSON unless -C is given, in which case they are
printed as indented operator text.  When several files are given they are
compiled concurrently, at most -P at a time.`,
	New: New,
}

type Command struct {
	*root.Command
	canon       bool
	parallelism int
	maxDepth    int
}

func New(parent charm.Command, f *flag.FlagSet) (charm.Command, error) {
	c := &Command{Command: parent.(*root.Command)}
	f.BoolVar(&c.canon, "C", false, "print plans as indented operator text")
	f.IntVar(&c.parallelism, "P", 0, "maximum number of concurrent compilations (0 means no limit)")
	f.IntVar(&c.maxDepth, "maxdepth", 0, "maximum syntax tree nesting depth (0 means the default)")
	return c, nil
}

func (c *Command) Run(args []string) error {
	ctx, cleanup, err := c.Init()
	if err != nil {
		return err
	}
	defer cleanup()
	if len(args) == 0 {
		return cli.ErrNoInput
	}
	var trees []*ast.QueryContainer
	var names []string
	var errs []error
	for _, path := range args {
		qc, err := readTree(path)
		if err != nil {
			errs = append(errs, clierrors.Format(path, err))
			continue
		}
		trees = append(trees, qc)
		names = append(names, path)
	}
	comp := &compiler.Compiler{Logger: c.CompileLogger(), MaxDepth: c.maxDepth}
	plans, err := comp.CompileAll(ctx, trees, c.parallelism)
	if err != nil {
		errs = append(errs, clierrors.FormatAll(names, err))
	}
	for k, plan := range plans {
		if plan == nil {
			continue
		}
		if len(plans) > 1 {
			fmt.Printf("# %s\n", names[k])
		}
		if err := c.write(os.Stdout, plan); err != nil {
			return err
		}
	}
	return multierr.Combine(errs...)
}

func (c *Command) write(w io.Writer, plan algebra.TupleExpr) error {
	if c.canon {
		_, err := fmt.Fprintln(w, zfmt.Algebra(plan))
		return err
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "    ")
	return enc.Encode(plan)
}

func readTree(path string) (*ast.QueryContainer, error) {
	if path == "-" {
		return compiler.Parse(os.Stdin)
	}
	if !cli.FileExists(path) {
		return nil, fmt.Errorf("no such file: %s", path)
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return compiler.Parse(f)
}
