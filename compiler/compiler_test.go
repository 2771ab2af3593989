package compiler_test

import (
	"context"
	"fmt"
	"strings"
	"testing"

	"github.com/brimdata/serql/compiler"
	"github.com/brimdata/serql/compiler/ast"
	"github.com/brimdata/serql/compiler/ast/algebra"
	"github.com/brimdata/serql/compiler/semantic"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/multierr"
	"go.uber.org/zap/zaptest"
)

const selectSPO = `
{
  "kind": "QueryContainer",
  "query": {
    "kind": "SelectQuery",
    "select": {"kind": "Select", "elems": [
      {"kind": "ProjectionElem", "expr": {"kind": "Var", "name": "s"}},
      {"kind": "ProjectionElem", "expr": {"kind": "Var", "name": "o"}}
    ]},
    "body": {"kind": "QueryBody", "from": [{
      "kind": "From",
      "path": {
        "kind": "BasicPath",
        "head": {"kind": "NodeList", "elems": [{"kind": "Var", "name": "s"}]},
        "tail": {
          "kind": "BasicTail",
          "edge": {"kind": "URI", "value": "http://example.org/p"},
          "node": {"kind": "NodeList", "elems": [{"kind": "Var", "name": "o"}]}
        }
      }
    }]}
  }
}`

const nullQuery = `
{
  "kind": "SelectQuery",
  "select": {"kind": "Select", "elems": [{"kind": "ProjectionElem", "expr": {"kind": "Null"}, "alias": "n"}]}
}`

func parse(t *testing.T, s string) *ast.QueryContainer {
	t.Helper()
	qc, err := compiler.Parse(strings.NewReader(s))
	require.NoError(t, err)
	return qc
}

func TestParse(t *testing.T) {
	qc := parse(t, selectSPO)
	assert.IsType(t, &ast.SelectQuery{}, qc.Query)
	qc = parse(t, nullQuery)
	assert.IsType(t, &ast.SelectQuery{}, qc.Query)
	_, err := compiler.Parse(strings.NewReader(`{"kind": "SelectQuerry"}`))
	assert.ErrorContains(t, err, `did you mean "SelectQuery"`)
	_, err = compiler.Parse(strings.NewReader(""))
	assert.Error(t, err)
}

func TestCompile(t *testing.T) {
	c := &compiler.Compiler{Logger: zaptest.NewLogger(t)}
	plan, err := c.Compile(context.Background(), parse(t, selectSPO))
	require.NoError(t, err)
	p, ok := plan.(*algebra.Projection)
	require.True(t, ok)
	sp, ok := p.Arg.(*algebra.StatementPattern)
	require.True(t, ok)
	assert.Equal(t, "-const-1", sp.Predicate.Name)

	_, err = c.Compile(context.Background(), parse(t, nullQuery))
	assert.True(t, semantic.IsMalformed(err))

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err = c.Compile(ctx, parse(t, selectSPO))
	assert.ErrorIs(t, err, context.Canceled)
}

func TestCacheReturnsCopies(t *testing.T) {
	reg := prometheus.NewRegistry()
	cache, err := compiler.NewCache(8, reg)
	require.NoError(t, err)
	c := &compiler.Compiler{Cache: cache}
	first, err := c.Compile(context.Background(), parse(t, selectSPO))
	require.NoError(t, err)
	first.(*algebra.Projection).Elems[0].Target = "changed"

	second, err := c.Compile(context.Background(), parse(t, selectSPO))
	require.NoError(t, err)
	assert.Equal(t, "s", second.(*algebra.Projection).Elems[0].Target)
	assert.Equal(t, 1, cache.Len())

	_, err = c.Compile(context.Background(), parse(t, nullQuery))
	require.Error(t, err)
	assert.Equal(t, 1, cache.Len())

	expected := `
# HELP serql_plan_cache_hits_total Number of compilations answered from the plan cache.
# TYPE serql_plan_cache_hits_total counter
serql_plan_cache_hits_total 1
# HELP serql_plan_cache_misses_total Number of compilations not found in the plan cache.
# TYPE serql_plan_cache_misses_total counter
serql_plan_cache_misses_total 2
`
	assert.NoError(t, testutil.GatherAndCompare(reg, strings.NewReader(expected)))
}

func TestCompileAll(t *testing.T) {
	trees := []*ast.QueryContainer{
		parse(t, selectSPO),
		parse(t, nullQuery),
		parse(t, selectSPO),
	}
	c := &compiler.Compiler{}
	plans, err := c.CompileAll(context.Background(), trees, 2)
	require.Error(t, err)
	errs := multierr.Errors(err)
	require.Len(t, errs, 1)
	assert.True(t, semantic.IsMalformed(errs[0]))
	assert.Contains(t, errs[0].Error(), "query 2: ")
	var qe *compiler.QueryError
	require.ErrorAs(t, errs[0], &qe)
	assert.Equal(t, 1, qe.Index)
	assert.NotNil(t, plans[0])
	assert.Nil(t, plans[1])
	assert.Equal(t, plans[0], plans[2])
}

// whereQuery selects ?x from a triple pattern filtered by cond.  Node
// Kind fields are left empty as they are in trees built in Go.
func whereQuery(cond ast.Expr) *ast.QueryContainer {
	x, y := &ast.Var{Name: "x"}, &ast.Var{Name: "y"}
	return &ast.QueryContainer{
		Query: &ast.SelectQuery{
			Select: &ast.Select{Wildcard: true},
			Body: &ast.QueryBody{
				From: []*ast.From{{Path: &ast.BasicPath{
					Head: &ast.NodeList{Elems: []ast.Expr{x}},
					Tail: &ast.BasicTail{Edge: &ast.URI{Value: "http://example.org/p"}, Node: &ast.NodeList{Elems: []ast.Expr{y}}},
				}}},
				Where: &ast.Where{Cond: cond},
			},
		},
	}
}

func TestCacheKeyDistinguishesNodeTypes(t *testing.T) {
	cache, err := compiler.NewCache(8, nil)
	require.NoError(t, err)
	c := &compiler.Compiler{Cache: cache}
	x, y := &ast.Var{Name: "x"}, &ast.Var{Name: "y"}
	and, err := c.Compile(context.Background(), whereQuery(&ast.And{Operands: []ast.Expr{x, y}}))
	require.NoError(t, err)
	or, err := c.Compile(context.Background(), whereQuery(&ast.Or{Operands: []ast.Expr{x, y}}))
	require.NoError(t, err)
	assert.Equal(t, 2, cache.Len())
	assert.IsType(t, &algebra.And{}, and.(*algebra.Projection).Arg.(*algebra.Filter).Condition)
	assert.IsType(t, &algebra.Or{}, or.(*algebra.Projection).Arg.(*algebra.Filter).Condition)
}

func TestCacheKeyIncludesMaxDepth(t *testing.T) {
	cache, err := compiler.NewCache(8, nil)
	require.NoError(t, err)
	var cond ast.Expr = &ast.Var{Name: "x"}
	for k := 0; k < 20; k++ {
		cond = &ast.Not{Operand: cond}
	}
	qc := whereQuery(cond)
	deep := &compiler.Compiler{Cache: cache}
	_, err = deep.Compile(context.Background(), qc)
	require.NoError(t, err)
	shallow := &compiler.Compiler{Cache: cache, MaxDepth: 5}
	_, err = shallow.Compile(context.Background(), qc)
	assert.True(t, semantic.IsMalformed(err))
	assert.Equal(t, 1, cache.Len())
	assert.NotEqual(t, cache.Key(qc, "a"), cache.Key(qc, "b"))
}

func TestCacheKeyDistinguishesValues(t *testing.T) {
	cache, err := compiler.NewCache(8, nil)
	require.NoError(t, err)
	keys := make(map[uint64]string)
	for _, name := range []string{"x", "y", "xy", ""} {
		for _, anon := range []bool{false, true} {
			qc := whereQuery(&ast.Var{Name: name, Anonymous: anon})
			desc := fmt.Sprintf("%q/%t", name, anon)
			key := cache.Key(qc, "")
			assert.NotContains(t, keys, key, desc)
			keys[key] = desc
			assert.Equal(t, key, cache.Key(whereQuery(&ast.Var{Name: name, Anonymous: anon}), ""))
		}
	}
}
