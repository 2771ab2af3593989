package clierrors

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/brimdata/serql/compiler"
	"github.com/brimdata/serql/compiler/ast"
	"github.com/brimdata/serql/compiler/semantic"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/multierr"
)

func TestFormat(t *testing.T) {
	assert.NoError(t, Format("q.json", nil))

	err := multierr.Combine(
		&semantic.MalformedQueryError{Msg: `duplicate projection element alias "x"`},
		&semantic.InvariantError{Msg: "unexpected node"},
		errors.New("open q.json: no such file"),
	)
	out := multierr.Errors(Format("q.json", err))
	assert.Len(t, out, 3)
	assert.EqualError(t, out[0], `q.json: malformed query: duplicate projection element alias "x"`)
	assert.EqualError(t, out[1], "q.json: internal error (please report): compiler invariant violated: unexpected node")
	assert.EqualError(t, out[2], "q.json: open q.json: no such file")
	assert.True(t, semantic.IsMalformed(out[0]))
}

const (
	goodQuery = `{"kind": "SelectQuery", "select": {"kind": "Select", "elems": [{"kind": "ProjectionElem", "expr": {"kind": "Var", "name": "x"}, "alias": "y"}]}}`
	nullQuery = `{"kind": "SelectQuery", "select": {"kind": "Select", "elems": [{"kind": "ProjectionElem", "expr": {"kind": "Null"}, "alias": "n"}]}}`
)

func TestFormatAllUsesInputNames(t *testing.T) {
	var trees []*ast.QueryContainer
	for _, s := range []string{goodQuery, nullQuery, goodQuery, nullQuery} {
		qc, err := compiler.Parse(strings.NewReader(s))
		require.NoError(t, err)
		trees = append(trees, qc)
	}
	var c compiler.Compiler
	_, err := c.CompileAll(context.Background(), trees, 0)
	require.Error(t, err)
	names := []string{"a.json", "b.json", "c.json", "d.json"}
	out := multierr.Errors(FormatAll(names, err))
	require.Len(t, out, 2)
	assert.Regexp(t, "^b.json: malformed query: Use of NULL values", out[0].Error())
	assert.Regexp(t, "^d.json: malformed query: Use of NULL values", out[1].Error())

	out = multierr.Errors(FormatAll(nil, errors.New("boom")))
	require.Len(t, out, 1)
	assert.EqualError(t, out[0], "boom")
}
