package semantic

import (
	"github.com/brimdata/serql/compiler/ast"
	"github.com/brimdata/serql/compiler/ast/algebra"
)

func (a *analyzer) semQuery(q ast.Query) (algebra.TupleExpr, error) {
	if err := a.descend(); err != nil {
		return nil, err
	}
	defer a.ascend()
	switch q := q.(type) {
	case *ast.SetOp:
		return a.semSetOp(q)
	case *ast.SelectQuery:
		return a.semSelectQuery(q)
	case *ast.ConstructQuery:
		return a.semConstructQuery(q)
	case nil:
		return nil, invariant("missing query")
	}
	return nil, invariant("unknown query type %T", q)
}

func (a *analyzer) semSetOp(op *ast.SetOp) (algebra.TupleExpr, error) {
	lhs, err := a.semQuery(op.Left)
	if err != nil {
		return nil, err
	}
	rhs, err := a.semQuery(op.Right)
	if err != nil {
		return nil, err
	}
	switch op.Op {
	case "union":
		var out algebra.TupleExpr = &algebra.Union{Kind: "Union", LHS: lhs, RHS: rhs}
		if op.Distinct {
			out = &algebra.Distinct{Kind: "Distinct", Arg: out}
		}
		return out, nil
	case "minus":
		return &algebra.Difference{Kind: "Difference", LHS: lhs, RHS: rhs}, nil
	case "intersect":
		return &algebra.Intersection{Kind: "Intersection", LHS: lhs, RHS: rhs}, nil
	}
	return nil, invariant("unknown set operator %q", op.Op)
}

func (a *analyzer) semSelectQuery(q *ast.SelectQuery) (algebra.TupleExpr, error) {
	if q.Select == nil {
		return nil, invariant("select query has no select clause")
	}
	body, err := a.semOptionalBody(q.Body)
	if err != nil {
		return nil, err
	}
	out, err := a.semOrderBy(q.OrderBy, body)
	if err != nil {
		return nil, err
	}
	out, err = a.semSelect(q.Select, out, body)
	if err != nil {
		return nil, err
	}
	return slice(out, q.Offset, q.Limit), nil
}

func (a *analyzer) semConstructQuery(q *ast.ConstructQuery) (algebra.TupleExpr, error) {
	c := q.Construct
	if c == nil {
		return nil, invariant("construct query has no construct clause")
	}
	out, err := a.semOptionalBody(q.Body)
	if err != nil {
		return nil, err
	}
	out, err = a.semOrderBy(q.OrderBy, out)
	if err != nil {
		return nil, err
	}
	switch {
	case !c.Wildcard:
		template, err := a.semTemplate(c.Path)
		if err != nil {
			return nil, err
		}
		out, err = a.builder.Build(out, template, c.Distinct, c.Reduced)
		if err != nil {
			return nil, err
		}
	case q.Body != nil:
		out, err = a.builder.BuildWildcard(out, c.Distinct, c.Reduced)
		if err != nil {
			return nil, err
		}
	}
	// A wildcard construct without a body is left as the empty solution.
	return slice(out, q.Offset, q.Limit), nil
}

// semTemplate compiles the path expression of a construct clause in its
// own scope.
func (a *analyzer) semTemplate(path ast.PathExpr) (algebra.TupleExpr, error) {
	if path == nil {
		return nil, invariant("construct clause has no template")
	}
	a.enterScope()
	err := a.semPath(path)
	g := a.exitScope()
	if err != nil {
		return nil, err
	}
	return g.Render(), nil
}

func (a *analyzer) semOptionalBody(body *ast.QueryBody) (algebra.TupleExpr, error) {
	if body == nil {
		return algebra.NewSingletonSet(), nil
	}
	return a.semBody(body)
}

func (a *analyzer) semBody(body *ast.QueryBody) (algebra.TupleExpr, error) {
	a.enterScope()
	g, err := a.semBodyClauses(body)
	a.exitScope()
	if err != nil {
		return nil, err
	}
	return g.Render(), nil
}

func (a *analyzer) semBodyClauses(body *ast.QueryBody) (*GraphPattern, error) {
	for _, from := range body.From {
		if err := a.semFrom(from); err != nil {
			return nil, err
		}
	}
	if body.Where != nil {
		if err := a.semWhere(body.Where); err != nil {
			return nil, err
		}
	}
	return a.scope(), nil
}

func (a *analyzer) semFrom(from *ast.From) error {
	scope := algebra.DefaultContexts
	var contextVar *algebra.Var
	if from.Context != nil {
		scope = algebra.NamedContexts
		e, err := a.semExpr(from.Context)
		if err != nil {
			return err
		}
		switch e := e.(type) {
		case *algebra.Var:
			contextVar = e
		case *algebra.ValueConstant:
			contextVar = a.constVar(e.Value)
		default:
			return invariant("unexpected context type %T", e)
		}
	}
	g := a.scope()
	g.SetScope(scope)
	g.SetContextVar(contextVar)
	if from.Path == nil {
		return invariant("from clause has no path expression")
	}
	return a.semPath(from.Path)
}

func (a *analyzer) semWhere(where *ast.Where) error {
	cond, err := a.semExpr(where.Cond)
	if err != nil {
		return err
	}
	a.scope().AddConstraint(cond)
	return nil
}

func (a *analyzer) semOrderBy(exprs []*ast.OrderExpr, arg algebra.TupleExpr) (algebra.TupleExpr, error) {
	if len(exprs) == 0 {
		return arg, nil
	}
	elems := make([]algebra.OrderElem, 0, len(exprs))
	for _, o := range exprs {
		e, err := a.semExpr(o.Expr)
		if err != nil {
			return nil, err
		}
		elems = append(elems, algebra.OrderElem{Expr: e, Ascending: o.Ascending})
	}
	return &algebra.Order{Kind: "Order", Elems: elems, Arg: arg}, nil
}

// slice wraps arg in a Slice when an offset of at least one or a limit is
// given.
func slice(arg algebra.TupleExpr, offset, limit *int64) algebra.TupleExpr {
	off, lim := int64(0), int64(-1)
	if offset != nil && *offset > 0 {
		off = *offset
	}
	if limit != nil && *limit >= 0 {
		lim = *limit
	}
	if off == 0 && lim < 0 {
		return arg
	}
	return &algebra.Slice{Kind: "Slice", Offset: off, Limit: lim, Arg: arg}
}
