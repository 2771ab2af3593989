package semantic

import (
	"fmt"

	"github.com/brimdata/serql/compiler/ast"
	"github.com/brimdata/serql/compiler/ast/algebra"
	"github.com/brimdata/serql/rdf"
)

// DefaultMaxDepth bounds the nesting depth of the syntax trees Analyze
// accepts when no other limit is given.
const DefaultMaxDepth = 1000

// ConstructorBuilder turns the solutions of a construct query body into
// the statements named by a construct template.
type ConstructorBuilder interface {
	// Build constructs the statements of template for each solution of
	// body.
	Build(body, template algebra.TupleExpr, distinct, reduced bool) (algebra.TupleExpr, error)
	// BuildWildcard constructs the statements matched by body itself.
	BuildWildcard(body algebra.TupleExpr, distinct, reduced bool) (algebra.TupleExpr, error)
}

// Analyze translates a syntax tree into an operator tree.  Each call uses
// its own scope stack and constant counter, so concurrent calls share no
// state.  Failures caused by the query are returned as
// *MalformedQueryError; an unexpected tree shape is returned as
// *InvariantError.  A maxDepth of zero means DefaultMaxDepth.
func Analyze(qc *ast.QueryContainer, factory rdf.ValueFactory, builder ConstructorBuilder, maxDepth int) (algebra.TupleExpr, error) {
	if qc == nil || qc.Query == nil {
		return nil, invariant("query container has no query")
	}
	a := newAnalyzer(factory, builder, maxDepth)
	// Namespace declarations are resolved by the parser and produce no
	// operators.
	e, err := a.semQuery(qc.Query)
	if err != nil {
		return nil, wrap(err)
	}
	return e, nil
}

type analyzer struct {
	factory  rdf.ValueFactory
	builder  ConstructorBuilder
	scopes   scopeStack
	constID  int
	depth    int
	maxDepth int
}

func newAnalyzer(factory rdf.ValueFactory, builder ConstructorBuilder, maxDepth int) *analyzer {
	if maxDepth <= 0 {
		maxDepth = DefaultMaxDepth
	}
	return &analyzer{
		factory:  factory,
		builder:  builder,
		constID:  1,
		maxDepth: maxDepth,
	}
}

func (a *analyzer) enterScope() *GraphPattern {
	return a.scopes.push()
}

func (a *analyzer) exitScope() *GraphPattern {
	return a.scopes.pop()
}

func (a *analyzer) scope() *GraphPattern {
	return a.scopes.top()
}

// descend is called on entry to each recursive step.  Every successful
// call must be paired with a call to ascend.
func (a *analyzer) descend() error {
	if a.depth >= a.maxDepth {
		return &MalformedQueryError{Msg: fmt.Sprintf("query is nested too deeply (limit %d)", a.maxDepth)}
	}
	a.depth++
	return nil
}

func (a *analyzer) ascend() {
	a.depth--
}

// constVar returns a new anonymous variable bound to val.  Equal values
// still get distinct variables.
func (a *analyzer) constVar(val rdf.Value) *algebra.Var {
	v := algebra.NewConstVar(fmt.Sprintf("-const-%d", a.constID), val)
	a.constID++
	return v
}
