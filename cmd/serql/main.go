package main

import (
	"fmt"
	"os"

	"github.com/brimdata/serql/cmd/serql/compile"
	"github.com/brimdata/serql/cmd/serql/repl"
	"github.com/brimdata/serql/cmd/serql/root"
	"github.com/brimdata/serql/cmd/serql/serve"
	"github.com/brimdata/serql/pkg/charm"
)

func main() {
	serql := root.Serql
	serql.Add(compile.Cmd, repl.Cmd, serve.Cmd, charm.Help)
	if err := serql.ExecRoot(os.Args[1:]); err != nil {
		fmt.Fprintf(os.Stderr, "%s\n", err)
		os.Exit(1)
	}
}
