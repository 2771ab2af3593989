package algebra

import "fmt"

// Clone returns a deep copy of a tuple operator tree.  RDF values are
// immutable and are shared between the copies.
func Clone(e TupleExpr) TupleExpr {
	switch e := e.(type) {
	case nil:
		return nil
	case *StatementPattern:
		return &StatementPattern{
			Kind:      e.Kind,
			Scope:     e.Scope,
			Subject:   cloneVar(e.Subject),
			Predicate: cloneVar(e.Predicate),
			Object:    cloneVar(e.Object),
			Context:   cloneVar(e.Context),
		}
	case *Join:
		return &Join{Kind: e.Kind, LHS: Clone(e.LHS), RHS: Clone(e.RHS)}
	case *LeftJoin:
		return &LeftJoin{Kind: e.Kind, LHS: Clone(e.LHS), RHS: Clone(e.RHS)}
	case *Union:
		return &Union{Kind: e.Kind, LHS: Clone(e.LHS), RHS: Clone(e.RHS)}
	case *Difference:
		return &Difference{Kind: e.Kind, LHS: Clone(e.LHS), RHS: Clone(e.RHS)}
	case *Intersection:
		return &Intersection{Kind: e.Kind, LHS: Clone(e.LHS), RHS: Clone(e.RHS)}
	case *Filter:
		return &Filter{Kind: e.Kind, Condition: CloneValue(e.Condition), Arg: Clone(e.Arg)}
	case *Extension:
		elems := make([]ExtensionElem, 0, len(e.Elems))
		for _, elem := range e.Elems {
			elems = append(elems, ExtensionElem{Expr: CloneValue(elem.Expr), Name: elem.Name})
		}
		return &Extension{Kind: e.Kind, Elems: elems, Arg: Clone(e.Arg)}
	case *Projection:
		return &Projection{Kind: e.Kind, Elems: cloneProjection(e.Elems), Arg: Clone(e.Arg)}
	case *MultiProjection:
		projections := make([][]ProjectionElem, 0, len(e.Projections))
		for _, p := range e.Projections {
			projections = append(projections, cloneProjection(p))
		}
		return &MultiProjection{Kind: e.Kind, Projections: projections, Arg: Clone(e.Arg)}
	case *Order:
		elems := make([]OrderElem, 0, len(e.Elems))
		for _, elem := range e.Elems {
			elems = append(elems, OrderElem{Expr: CloneValue(elem.Expr), Ascending: elem.Ascending})
		}
		return &Order{Kind: e.Kind, Elems: elems, Arg: Clone(e.Arg)}
	case *Distinct:
		return &Distinct{Kind: e.Kind, Arg: Clone(e.Arg)}
	case *Reduced:
		return &Reduced{Kind: e.Kind, Arg: Clone(e.Arg)}
	case *Slice:
		return &Slice{Kind: e.Kind, Offset: e.Offset, Limit: e.Limit, Arg: Clone(e.Arg)}
	case *SingletonSet:
		return &SingletonSet{Kind: e.Kind}
	case *EmptySet:
		return &EmptySet{Kind: e.Kind}
	}
	panic(fmt.Sprintf("algebra.Clone: unknown tuple operator %T", e))
}

// CloneValue returns a deep copy of a value expression.
func CloneValue(e ValueExpr) ValueExpr {
	switch e := e.(type) {
	case nil:
		return nil
	case *Var:
		return cloneVar(e)
	case *ValueConstant:
		return &ValueConstant{Kind: e.Kind, Value: e.Value}
	case *And:
		return &And{Kind: e.Kind, LHS: CloneValue(e.LHS), RHS: CloneValue(e.RHS)}
	case *Or:
		return &Or{Kind: e.Kind, LHS: CloneValue(e.LHS), RHS: CloneValue(e.RHS)}
	case *Not:
		return &Not{Kind: e.Kind, Arg: CloneValue(e.Arg)}
	case *Compare:
		return &Compare{Kind: e.Kind, Op: e.Op, LHS: CloneValue(e.LHS), RHS: CloneValue(e.RHS)}
	case *CompareAny:
		return &CompareAny{Kind: e.Kind, Op: e.Op, Arg: CloneValue(e.Arg), Subquery: Clone(e.Subquery)}
	case *CompareAll:
		return &CompareAll{Kind: e.Kind, Op: e.Op, Arg: CloneValue(e.Arg), Subquery: Clone(e.Subquery)}
	case *In:
		return &In{Kind: e.Kind, Arg: CloneValue(e.Arg), Subquery: Clone(e.Subquery)}
	case *Like:
		return &Like{Kind: e.Kind, Arg: CloneValue(e.Arg), Pattern: e.Pattern, CaseSensitive: e.CaseSensitive}
	case *Regex:
		return &Regex{Kind: e.Kind, Arg: CloneValue(e.Arg), Pattern: CloneValue(e.Pattern), Flags: CloneValue(e.Flags)}
	case *Bound:
		return &Bound{Kind: e.Kind, Arg: cloneVar(e.Arg)}
	case *IsIRI:
		return &IsIRI{Kind: e.Kind, Arg: CloneValue(e.Arg)}
	case *IsBlank:
		return &IsBlank{Kind: e.Kind, Arg: CloneValue(e.Arg)}
	case *IsLiteral:
		return &IsLiteral{Kind: e.Kind, Arg: CloneValue(e.Arg)}
	case *IsResource:
		return &IsResource{Kind: e.Kind, Arg: CloneValue(e.Arg)}
	case *LangMatches:
		return &LangMatches{Kind: e.Kind, LHS: CloneValue(e.LHS), RHS: CloneValue(e.RHS)}
	case *SameTerm:
		return &SameTerm{Kind: e.Kind, LHS: CloneValue(e.LHS), RHS: CloneValue(e.RHS)}
	case *Exists:
		return &Exists{Kind: e.Kind, Subquery: Clone(e.Subquery)}
	case *FunctionCall:
		args := make([]ValueExpr, 0, len(e.Args))
		for _, arg := range e.Args {
			args = append(args, CloneValue(arg))
		}
		return &FunctionCall{Kind: e.Kind, URI: e.URI, Args: args}
	case *Datatype:
		return &Datatype{Kind: e.Kind, Arg: CloneValue(e.Arg)}
	case *Lang:
		return &Lang{Kind: e.Kind, Arg: CloneValue(e.Arg)}
	case *Label:
		return &Label{Kind: e.Kind, Arg: CloneValue(e.Arg)}
	case *Namespace:
		return &Namespace{Kind: e.Kind, Arg: CloneValue(e.Arg)}
	case *LocalName:
		return &LocalName{Kind: e.Kind, Arg: CloneValue(e.Arg)}
	case *Str:
		return &Str{Kind: e.Kind, Arg: CloneValue(e.Arg)}
	case *BNodeGenerator:
		return &BNodeGenerator{Kind: e.Kind}
	}
	panic(fmt.Sprintf("algebra.CloneValue: unknown value expression %T", e))
}

func cloneVar(v *Var) *Var {
	if v == nil {
		return nil
	}
	out := *v
	return &out
}

func cloneProjection(elems []ProjectionElem) []ProjectionElem {
	out := make([]ProjectionElem, len(elems))
	copy(out, elems)
	return out
}
