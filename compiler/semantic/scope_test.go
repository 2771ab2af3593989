package semantic

import (
	"testing"

	"github.com/brimdata/serql/compiler/ast"
	"github.com/brimdata/serql/compiler/ast/algebra"
	"github.com/brimdata/serql/rdf"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func pattern(s string) *algebra.StatementPattern {
	return algebra.NewStatementPattern(algebra.DefaultContexts, algebra.NewVar(s, false), algebra.NewVar("p", false), algebra.NewVar("o", false), nil)
}

func TestRenderEmpty(t *testing.T) {
	assert.Equal(t, algebra.NewSingletonSet(), NewGraphPattern().Render())
}

func TestRenderFoldOrder(t *testing.T) {
	a, b, c := pattern("a"), pattern("b"), pattern("c")
	g := NewGraphPattern()
	g.AddRequired(a)
	g.AddRequired(b)
	g.AddRequired(c)
	expected := &algebra.Join{
		Kind: "Join",
		LHS:  &algebra.Join{Kind: "Join", LHS: a, RHS: b},
		RHS:  c,
	}
	assert.Equal(t, expected, g.Render())
	// Rendering leaves the accumulated state untouched.
	assert.Equal(t, expected, g.Render())
}

func TestRenderOptionals(t *testing.T) {
	r := pattern("r")
	o1, o2 := NewGraphPattern(), NewGraphPattern()
	o1.AddRequired(pattern("o1"))
	o2.AddRequired(pattern("o2"))
	g := NewGraphPattern()
	g.AddRequired(r)
	g.AddOptional(o1)
	g.AddOptional(o2)
	expected := &algebra.LeftJoin{
		Kind: "LeftJoin",
		LHS:  &algebra.LeftJoin{Kind: "LeftJoin", LHS: r, RHS: pattern("o1")},
		RHS:  pattern("o2"),
	}
	assert.Equal(t, expected, g.Render())
}

func TestRenderConstraints(t *testing.T) {
	c1 := algebra.NewVar("c1", false)
	c2 := algebra.NewVar("c2", false)
	c3 := algebra.NewVar("c3", false)
	g := NewGraphPattern()
	g.AddConstraint(c1)
	g.AddConstraint(c2)
	g.AddConstraint(c3)
	expected := algebra.NewFilter(algebra.NewAnd(algebra.NewAnd(c1, c2), c3), algebra.NewSingletonSet())
	assert.Equal(t, expected, g.Render())
}

func TestScopeStackInheritsContext(t *testing.T) {
	var s scopeStack
	root := s.push()
	ctx := algebra.NewConstVar("-const-1", rdf.IRI("http://example.org/g"))
	root.SetScope(algebra.NamedContexts)
	root.SetContextVar(ctx)
	child := s.push()
	assert.Equal(t, algebra.NamedContexts, child.Scope())
	assert.Equal(t, ctx, child.ContextVar())
	child.SetContextVar(nil)
	assert.Equal(t, ctx, root.ContextVar())
	assert.Same(t, child, s.pop())
	assert.Same(t, root, s.top())
	assert.Same(t, root, s.pop())
	assert.Nil(t, s.top())
}

func TestResolveAliases(t *testing.T) {
	elems := []*ast.ProjectionElem{
		{Expr: &ast.Var{Name: "x"}},
		{Expr: &ast.Builtin{Name: "str", Arg: &ast.Var{Name: "x"}}},
		{Expr: &ast.Var{Name: "y"}, Alias: "_1"},
		{Expr: &ast.Builtin{Name: "lang", Arg: &ast.Var{Name: "y"}}},
		{Expr: &ast.Builtin{Name: "label", Arg: &ast.Var{Name: "y"}}, Alias: "_3"},
	}
	columns, err := resolveAliases(elems)
	require.NoError(t, err)
	var aliases []string
	for _, c := range columns {
		aliases = append(aliases, c.alias)
	}
	assert.Equal(t, []string{"x", "_2", "_1", "_4", "_3"}, aliases)
	assert.True(t, columns[0].implicit)
	assert.False(t, columns[2].implicit)
}

func TestResolveAliasesDuplicate(t *testing.T) {
	elems := []*ast.ProjectionElem{
		{Expr: &ast.Var{Name: "x"}},
		{Expr: &ast.Var{Name: "y"}, Alias: "x"},
	}
	_, err := resolveAliases(elems)
	assert.EqualError(t, err, `duplicate projection element alias "x"`)
}
