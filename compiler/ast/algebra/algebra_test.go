package algebra_test

import (
	"testing"

	"github.com/brimdata/serql/compiler/ast/algebra"
	"github.com/brimdata/serql/rdf"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCloneIsDeep(t *testing.T) {
	s := algebra.NewVar("s", false)
	c := algebra.NewConstVar("-const-1", rdf.IRI("http://example.org/p"))
	o := algebra.NewVar("o", false)
	sp := algebra.NewStatementPattern(algebra.DefaultContexts, s, c, o, nil)
	cond := algebra.NewNot(algebra.NewSameTerm(s, o))
	in := algebra.NewFilter(cond, sp)

	out := algebra.Clone(in)
	require.Equal(t, in, out)

	f := out.(*algebra.Filter)
	f.Arg.(*algebra.StatementPattern).Subject.Name = "changed"
	f.Condition.(*algebra.Not).Arg.(*algebra.SameTerm).LHS.(*algebra.Var).Name = "changed"
	assert.Equal(t, "s", sp.Subject.Name)
	assert.Equal(t, "s", cond.Arg.(*algebra.SameTerm).LHS.(*algebra.Var).Name)
}

func TestStatementPatternsOrder(t *testing.T) {
	a := algebra.NewStatementPattern(algebra.DefaultContexts, algebra.NewVar("a", false), algebra.NewVar("p", false), algebra.NewVar("x", false), nil)
	b := algebra.NewStatementPattern(algebra.DefaultContexts, algebra.NewVar("b", false), algebra.NewVar("p", false), algebra.NewVar("x", false), nil)
	c := algebra.NewStatementPattern(algebra.DefaultContexts, algebra.NewVar("c", false), algebra.NewVar("p", false), algebra.NewVar("x", false), nil)
	tree := &algebra.LeftJoin{
		Kind: "LeftJoin",
		LHS:  &algebra.Join{Kind: "Join", LHS: a, RHS: b},
		RHS:  algebra.NewFilter(algebra.NewValueConstant(rdf.SimpleFactory{}.BooleanLiteral(true)), c),
	}
	assert.Equal(t, []*algebra.StatementPattern{a, b, c}, algebra.StatementPatterns(tree))
}

func TestVarEqual(t *testing.T) {
	assert.True(t, algebra.NewVar("x", false).Equal(algebra.NewVar("x", false)))
	assert.False(t, algebra.NewVar("x", false).Equal(algebra.NewVar("x", true)))
	assert.True(t, algebra.NewConstVar("k", rdf.IRI("http://a/")).Equal(algebra.NewConstVar("k", rdf.IRI("http://a/"))))
	assert.False(t, algebra.NewConstVar("k", rdf.IRI("http://a/")).Equal(algebra.NewConstVar("k", rdf.IRI("http://b/"))))
}
