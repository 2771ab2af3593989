//go:generate mockgen -destination=./mock/mock_builder.go -package=mock github.com/brimdata/serql/compiler/semantic ConstructorBuilder

// Package construct builds the operators that turn the solutions of a
// construct query body into statements.
package construct

import (
	"github.com/brimdata/serql/compiler/ast/algebra"
	"github.com/brimdata/serql/compiler/semantic"
)

// Builder is the default semantic.ConstructorBuilder.
type Builder struct{}

var _ semantic.ConstructorBuilder = Builder{}

// Build constructs the statements of template for each solution of body.
// Unbound anonymous variables of the template become fresh blank nodes.
func (Builder) Build(body, template algebra.TupleExpr, distinct, reduced bool) (algebra.TupleExpr, error) {
	return build(body, template, true, distinct, reduced), nil
}

// BuildWildcard constructs, for each solution of body, the statements
// matched by the statement patterns of body.
func (Builder) BuildWildcard(body algebra.TupleExpr, distinct, reduced bool) (algebra.TupleExpr, error) {
	return build(body, body, false, distinct, reduced), nil
}

func build(body, template algebra.TupleExpr, explicit, distinct, reduced bool) algebra.TupleExpr {
	patterns := algebra.StatementPatterns(template)
	vars := templateVars(patterns)
	out := body
	// Duplicates are removed in two steps.  The first removes duplicate
	// bindings of the template variables before blank nodes are
	// generated.  The second, below, removes duplicate statements.
	if distinct || reduced {
		var elems []algebra.ProjectionElem
		for _, v := range vars {
			if !v.Anonymous && !v.HasValue() {
				elems = append(elems, algebra.NewProjectionElem(v.Name))
			}
		}
		out = &algebra.Projection{Kind: "Projection", Elems: elems, Arg: out}
		out = dedup(out, distinct)
	}
	var ext []algebra.ExtensionElem
	for _, v := range vars {
		if !v.Anonymous {
			continue
		}
		switch {
		case v.HasValue():
			ext = append(ext, algebra.ExtensionElem{Expr: algebra.NewValueConstant(v.Value), Name: v.Name})
		case explicit:
			ext = append(ext, algebra.ExtensionElem{Expr: &algebra.BNodeGenerator{Kind: "BNodeGenerator"}, Name: v.Name})
		}
	}
	if len(ext) > 0 {
		out = &algebra.Extension{Kind: "Extension", Elems: ext, Arg: out}
	}
	projections := make([][]algebra.ProjectionElem, 0, len(patterns))
	for _, sp := range patterns {
		projections = append(projections, statementProjection(sp))
	}
	switch len(projections) {
	case 0:
		return &algebra.EmptySet{Kind: "EmptySet"}
	case 1:
		// One projection cannot produce duplicate statements from
		// distinct solutions.
		return &algebra.Projection{Kind: "Projection", Elems: projections[0], Arg: out}
	}
	out = &algebra.MultiProjection{Kind: "MultiProjection", Projections: projections, Arg: out}
	if distinct || reduced {
		out = dedup(out, distinct)
	}
	return out
}

func dedup(arg algebra.TupleExpr, distinct bool) algebra.TupleExpr {
	if distinct {
		return &algebra.Distinct{Kind: "Distinct", Arg: arg}
	}
	return &algebra.Reduced{Kind: "Reduced", Arg: arg}
}

func statementProjection(sp *algebra.StatementPattern) []algebra.ProjectionElem {
	elems := []algebra.ProjectionElem{
		{Source: sp.Subject.Name, Target: "subject"},
		{Source: sp.Predicate.Name, Target: "predicate"},
		{Source: sp.Object.Name, Target: "object"},
	}
	if sp.Context != nil {
		elems = append(elems, algebra.ProjectionElem{Source: sp.Context.Name, Target: "context"})
	}
	return elems
}

// templateVars returns the distinct variables of patterns in the order
// they first appear.
func templateVars(patterns []*algebra.StatementPattern) []*algebra.Var {
	var vars []*algebra.Var
	for _, sp := range patterns {
		for _, v := range []*algebra.Var{sp.Subject, sp.Predicate, sp.Object, sp.Context} {
			if v != nil && !contains(vars, v) {
				vars = append(vars, v)
			}
		}
	}
	return vars
}

func contains(vars []*algebra.Var, v *algebra.Var) bool {
	for _, w := range vars {
		if w.Equal(v) {
			return true
		}
	}
	return false
}
