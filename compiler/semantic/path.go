package semantic

import (
	"github.com/brimdata/serql/compiler/ast"
	"github.com/brimdata/serql/compiler/ast/algebra"
	"github.com/brimdata/serql/rdf"
)

// semPath compiles a path expression into the current scope.
func (a *analyzer) semPath(path ast.PathExpr) error {
	if err := a.descend(); err != nil {
		return err
	}
	defer a.ascend()
	switch p := path.(type) {
	case *ast.PathList:
		for _, path := range p.Paths {
			if err := a.semPath(path); err != nil {
				return err
			}
		}
		return nil
	case *ast.PathUnion:
		return a.semPathUnion(p)
	case *ast.BasicPath:
		if p.Head == nil {
			return invariant("path expression has no head node")
		}
		subjects, err := a.semNodeList(p.Head)
		if err != nil {
			return err
		}
		if p.Tail == nil {
			return nil
		}
		return a.semTail(p.Tail, subjects)
	case *ast.OptPath:
		a.enterScope()
		err := a.semOptPath(p)
		child := a.exitScope()
		if err != nil {
			return err
		}
		a.scope().AddOptional(child)
		return nil
	case nil:
		return invariant("missing path expression")
	}
	return invariant("unknown path expression type %T", path)
}

func (a *analyzer) semOptPath(p *ast.OptPath) error {
	if p.Path != nil {
		if err := a.semPath(p.Path); err != nil {
			return err
		}
	}
	if p.Where != nil {
		return a.semWhere(p.Where)
	}
	return nil
}

// semPathUnion compiles each alternative in a scope of its own and adds
// the union of the alternatives to the current scope.
func (a *analyzer) semPathUnion(p *ast.PathUnion) error {
	if len(p.Paths) == 0 {
		return invariant("path union has no alternatives")
	}
	var out algebra.TupleExpr
	for _, path := range p.Paths {
		a.enterScope()
		err := a.semPath(path)
		g := a.exitScope()
		if err != nil {
			return err
		}
		if out == nil {
			out = g.Render()
			continue
		}
		out = &algebra.Union{Kind: "Union", LHS: out, RHS: g.Render()}
	}
	a.scope().AddRequired(out)
	return nil
}

// semTail compiles a path tail whose segments start from subjects.
func (a *analyzer) semTail(tail ast.PathTail, subjects []*algebra.Var) error {
	if err := a.descend(); err != nil {
		return err
	}
	defer a.ascend()
	switch t := tail.(type) {
	case *ast.BasicTail:
		return a.semBasicTail(t, subjects)
	case *ast.OptTail:
		return a.semOptTail(t, subjects)
	case nil:
		return invariant("missing path tail")
	}
	return invariant("unknown path tail type %T", tail)
}

func (a *analyzer) semBasicTail(t *ast.BasicTail, subjects []*algebra.Var) error {
	pred, err := a.semEdge(t.Edge)
	if err != nil {
		return err
	}
	if t.Node == nil {
		return invariant("path tail has no node")
	}
	objects, err := a.semNodeList(t.Node)
	if err != nil {
		return err
	}
	g := a.scope()
	for _, subj := range subjects {
		for _, obj := range objects {
			g.AddRequired(algebra.NewStatementPattern(g.Scope(), subj, pred, obj, g.ContextVar()))
		}
	}
	if t.Next == nil {
		return nil
	}
	if t.Next.IsBranch() {
		return a.semTail(t.Next, subjects)
	}
	return a.semTail(t.Next, objects)
}

// semOptTail compiles the optional segment in a new scope that becomes an
// optional pattern of the current scope.  The segment that follows an
// optional segment always branches from the same subjects.
func (a *analyzer) semOptTail(t *ast.OptTail, subjects []*algebra.Var) error {
	if t.Tail == nil {
		return invariant("optional path tail is empty")
	}
	a.enterScope()
	err := a.semTail(t.Tail, subjects)
	if err == nil && t.Where != nil {
		err = a.semWhere(t.Where)
	}
	child := a.exitScope()
	if err != nil {
		return err
	}
	a.scope().AddOptional(child)
	if t.Next == nil {
		return nil
	}
	return a.semTail(t.Next, subjects)
}

func (a *analyzer) semEdge(e ast.Expr) (*algebra.Var, error) {
	v, err := a.semExpr(e)
	if err != nil {
		return nil, err
	}
	switch v := v.(type) {
	case *algebra.Var:
		return v, nil
	case *algebra.ValueConstant:
		return a.constVar(v.Value), nil
	}
	return nil, invariant("unexpected edge type %T", v)
}

// semNodeList compiles the terms of one path position.  Listing two terms
// in the same position requires them to be different terms unless both
// are constants.
func (a *analyzer) semNodeList(list *ast.NodeList) ([]*algebra.Var, error) {
	vars := make([]*algebra.Var, 0, len(list.Elems))
	for _, elem := range list.Elems {
		v, err := a.semNodeElem(elem)
		if err != nil {
			return nil, err
		}
		vars = append(vars, v)
	}
	g := a.scope()
	for i := 0; i < len(vars)-1; i++ {
		for j := i + 1; j < len(vars); j++ {
			if !vars[i].HasValue() || !vars[j].HasValue() {
				g.AddConstraint(algebra.NewNot(algebra.NewSameTerm(vars[i], vars[j])))
			}
		}
	}
	return vars, nil
}

func (a *analyzer) semNodeElem(e ast.Expr) (*algebra.Var, error) {
	if err := a.descend(); err != nil {
		return nil, err
	}
	defer a.ascend()
	if r, ok := e.(*ast.ReifiedStat); ok {
		return a.semReifiedStat(r)
	}
	v, err := a.semExpr(e)
	if err != nil {
		return nil, err
	}
	switch v := v.(type) {
	case *algebra.Var:
		return v, nil
	case *algebra.ValueConstant:
		return a.constVar(v.Value), nil
	}
	return nil, invariant("unexpected node element type %T", v)
}

// semReifiedStat adds the four statement patterns that describe the
// statement named by the reified statement's ID and returns the ID.
func (a *analyzer) semReifiedStat(r *ast.ReifiedStat) (*algebra.Var, error) {
	if r.ID == nil {
		return nil, invariant("reified statement has no ID variable")
	}
	subj, err := a.semNodeElem(r.Subject)
	if err != nil {
		return nil, err
	}
	pred, err := a.semEdge(r.Predicate)
	if err != nil {
		return nil, err
	}
	obj, err := a.semNodeElem(r.Object)
	if err != nil {
		return nil, err
	}
	id := algebra.NewVar(r.ID.Name, r.ID.Anonymous)
	g := a.scope()
	scope, ctx := g.Scope(), g.ContextVar()
	g.AddRequired(algebra.NewStatementPattern(scope, id, algebra.NewConstVar("_rdfType", rdf.Type), algebra.NewConstVar("_rdfStatement", rdf.Statement), ctx))
	g.AddRequired(algebra.NewStatementPattern(scope, id, algebra.NewConstVar("_rdfSubject", rdf.Subject), subj, ctx))
	g.AddRequired(algebra.NewStatementPattern(scope, id, algebra.NewConstVar("_rdfPredicate", rdf.Predicate), pred, ctx))
	g.AddRequired(algebra.NewStatementPattern(scope, id, algebra.NewConstVar("_rdfObject", rdf.Object), obj, ctx))
	return id, nil
}
