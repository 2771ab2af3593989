package construct

import (
	"testing"

	"github.com/brimdata/serql/compiler/ast/algebra"
	"github.com/brimdata/serql/rdf"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sp(s, p, o *algebra.Var) *algebra.StatementPattern {
	return algebra.NewStatementPattern(algebra.DefaultContexts, s, p, o, nil)
}

func TestBuildSinglePattern(t *testing.T) {
	x, y := algebra.NewVar("x", false), algebra.NewVar("y", false)
	p := algebra.NewConstVar("-const-1", rdf.IRI("http://example.org/p"))
	body := sp(x, algebra.NewVar("q", false), y)
	out, err := Builder{}.Build(body, sp(x, p, y), false, false)
	require.NoError(t, err)
	expected := &algebra.Projection{
		Kind: "Projection",
		Elems: []algebra.ProjectionElem{
			{Source: "x", Target: "subject"},
			{Source: "-const-1", Target: "predicate"},
			{Source: "y", Target: "object"},
		},
		Arg: &algebra.Extension{
			Kind:  "Extension",
			Elems: []algebra.ExtensionElem{{Expr: algebra.NewValueConstant(rdf.IRI("http://example.org/p")), Name: "-const-1"}},
			Arg:   body,
		},
	}
	assert.Equal(t, expected, out)
}

func TestBuildDistinctMultiPattern(t *testing.T) {
	x := algebra.NewVar("x", false)
	b := algebra.NewVar("b", true)
	p := algebra.NewVar("p", false)
	template := &algebra.Join{Kind: "Join", LHS: sp(x, p, b), RHS: sp(b, p, x)}
	body := sp(x, p, algebra.NewVar("z", false))
	out, err := Builder{}.Build(body, template, true, false)
	require.NoError(t, err)

	d, ok := out.(*algebra.Distinct)
	require.True(t, ok)
	mp, ok := d.Arg.(*algebra.MultiProjection)
	require.True(t, ok)
	assert.Len(t, mp.Projections, 2)
	ext, ok := mp.Arg.(*algebra.Extension)
	require.True(t, ok)
	require.Len(t, ext.Elems, 1)
	assert.Equal(t, "b", ext.Elems[0].Name)
	assert.IsType(t, &algebra.BNodeGenerator{}, ext.Elems[0].Expr)
	inner, ok := ext.Arg.(*algebra.Distinct)
	require.True(t, ok)
	proj := inner.Arg.(*algebra.Projection)
	assert.Equal(t, []algebra.ProjectionElem{algebra.NewProjectionElem("x"), algebra.NewProjectionElem("p")}, proj.Elems)
}

func TestBuildWildcardNoBNodes(t *testing.T) {
	b := algebra.NewVar("b", true)
	body := sp(b, algebra.NewVar("p", false), algebra.NewVar("o", false))
	out, err := Builder{}.BuildWildcard(body, false, true)
	require.NoError(t, err)
	proj, ok := out.(*algebra.Projection)
	require.True(t, ok)
	// Unbound anonymous variables are taken from the solution.
	_, ok = proj.Arg.(*algebra.Reduced)
	assert.True(t, ok)
}

func TestBuildEmptyTemplate(t *testing.T) {
	out, err := Builder{}.Build(algebra.NewSingletonSet(), algebra.NewSingletonSet(), false, false)
	require.NoError(t, err)
	assert.Equal(t, &algebra.EmptySet{Kind: "EmptySet"}, out)
}

func TestBuildContextProjection(t *testing.T) {
	g := algebra.NewVar("g", false)
	pattern := algebra.NewStatementPattern(algebra.NamedContexts, algebra.NewVar("s", false), algebra.NewVar("p", false), algebra.NewVar("o", false), g)
	out, err := Builder{}.BuildWildcard(pattern, false, false)
	require.NoError(t, err)
	proj := out.(*algebra.Projection)
	require.Len(t, proj.Elems, 4)
	assert.Equal(t, algebra.ProjectionElem{Source: "g", Target: "context"}, proj.Elems[3])
}
