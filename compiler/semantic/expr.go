package semantic

import (
	"fmt"
	"strings"

	"github.com/brimdata/serql/compiler/ast"
	"github.com/brimdata/serql/compiler/ast/algebra"
	"github.com/brimdata/serql/rdf"
)

func (a *analyzer) semExpr(e ast.Expr) (algebra.ValueExpr, error) {
	if err := a.descend(); err != nil {
		return nil, err
	}
	defer a.ascend()
	switch e := e.(type) {
	case nil:
		return nil, invariant("missing expression")
	case *ast.Var:
		return algebra.NewVar(e.Name, e.Anonymous), nil
	case *ast.URI:
		iri, err := a.factory.IRI(e.Value)
		if err != nil {
			return nil, err
		}
		return algebra.NewValueConstant(iri), nil
	case *ast.BNode:
		bnode, err := a.factory.BNode(e.ID)
		if err != nil {
			return nil, err
		}
		return algebra.NewValueConstant(bnode), nil
	case *ast.Literal:
		return a.semLiteral(e)
	case *ast.BooleanConstant:
		return algebra.NewValueConstant(a.factory.BooleanLiteral(e.Value)), nil
	case *ast.String:
		lit, err := a.factory.Literal(e.Value)
		if err != nil {
			return nil, err
		}
		return algebra.NewValueConstant(lit), nil
	case *ast.ReifiedStat:
		return a.semReifiedStat(e)
	case *ast.And:
		return a.semFold(e.Operands, "and", func(lhs, rhs algebra.ValueExpr) algebra.ValueExpr {
			return algebra.NewAnd(lhs, rhs)
		})
	case *ast.Or:
		return a.semFold(e.Operands, "or", func(lhs, rhs algebra.ValueExpr) algebra.ValueExpr {
			return algebra.NewOr(lhs, rhs)
		})
	case *ast.Not:
		arg, err := a.semExpr(e.Operand)
		if err != nil {
			return nil, err
		}
		return algebra.NewNot(arg), nil
	case *ast.Builtin:
		return a.semBuiltin(e)
	case *ast.Compare:
		op, err := compareOp(e.Op)
		if err != nil {
			return nil, err
		}
		lhs, rhs, err := a.semBinary(e.LHS, e.RHS)
		if err != nil {
			return nil, err
		}
		return &algebra.Compare{Kind: "Compare", Op: op, LHS: lhs, RHS: rhs}, nil
	case *ast.CompareAny:
		op, err := compareOp(e.Op)
		if err != nil {
			return nil, err
		}
		arg, sub, err := a.semSubquery(e.LHS, e.Query)
		if err != nil {
			return nil, err
		}
		return &algebra.CompareAny{Kind: "CompareAny", Op: op, Arg: arg, Subquery: sub}, nil
	case *ast.CompareAll:
		op, err := compareOp(e.Op)
		if err != nil {
			return nil, err
		}
		arg, sub, err := a.semSubquery(e.LHS, e.Query)
		if err != nil {
			return nil, err
		}
		return &algebra.CompareAll{Kind: "CompareAll", Op: op, Arg: arg, Subquery: sub}, nil
	case *ast.In:
		arg, sub, err := a.semSubquery(e.LHS, e.Query)
		if err != nil {
			return nil, err
		}
		return &algebra.In{Kind: "In", Arg: arg, Subquery: sub}, nil
	case *ast.InList:
		return a.semInList(e)
	case *ast.Like:
		arg, err := a.semExpr(e.Expr)
		if err != nil {
			return nil, err
		}
		if e.Pattern == nil {
			return nil, invariant("like expression has no pattern")
		}
		return &algebra.Like{
			Kind:          "Like",
			Arg:           arg,
			Pattern:       e.Pattern.Value,
			CaseSensitive: !e.IgnoreCase,
		}, nil
	case *ast.Regex:
		return a.semRegex(e)
	case *ast.LangMatches:
		lhs, rhs, err := a.semBinary(e.Tag, e.Range)
		if err != nil {
			return nil, err
		}
		return &algebra.LangMatches{Kind: "LangMatches", LHS: lhs, RHS: rhs}, nil
	case *ast.SameTerm:
		lhs, rhs, err := a.semBinary(e.LHS, e.RHS)
		if err != nil {
			return nil, err
		}
		return algebra.NewSameTerm(lhs, rhs), nil
	case *ast.Exists:
		sub, err := a.semQuery(e.Query)
		if err != nil {
			return nil, err
		}
		return &algebra.Exists{Kind: "Exists", Subquery: sub}, nil
	case *ast.FunctionCall:
		return a.semFunctionCall(e)
	case *ast.Null:
		return nil, &MalformedQueryError{Msg: nullMessage}
	}
	return nil, invariant("unknown expression type %T", e)
}

// semLiteral prefers a literal's datatype over its language tag.
func (a *analyzer) semLiteral(l *ast.Literal) (algebra.ValueExpr, error) {
	var lit *rdf.Literal
	var err error
	switch {
	case l.Datatype != nil:
		uri, ok := l.Datatype.(*ast.URI)
		if !ok {
			return nil, invariant("literal datatype is %T, not a URI", l.Datatype)
		}
		var dt rdf.IRI
		dt, err = a.factory.IRI(uri.Value)
		if err != nil {
			return nil, err
		}
		lit, err = a.factory.TypedLiteral(l.Label, dt)
	case l.Lang != "":
		lit, err = a.factory.LangLiteral(l.Label, l.Lang)
	default:
		lit, err = a.factory.Literal(l.Label)
	}
	if err != nil {
		return nil, err
	}
	return algebra.NewValueConstant(lit), nil
}

// semFold combines the operands of an n-ary connective left to right.
func (a *analyzer) semFold(operands []ast.Expr, name string, combine func(lhs, rhs algebra.ValueExpr) algebra.ValueExpr) (algebra.ValueExpr, error) {
	if len(operands) == 0 {
		return nil, invariant("%s expression has no operands", name)
	}
	var out algebra.ValueExpr
	for _, operand := range operands {
		e, err := a.semExpr(operand)
		if err != nil {
			return nil, err
		}
		if out == nil {
			out = e
			continue
		}
		out = combine(out, e)
	}
	return out, nil
}

func (a *analyzer) semBinary(lhs, rhs ast.Expr) (algebra.ValueExpr, algebra.ValueExpr, error) {
	l, err := a.semExpr(lhs)
	if err != nil {
		return nil, nil, err
	}
	r, err := a.semExpr(rhs)
	if err != nil {
		return nil, nil, err
	}
	return l, r, nil
}

func (a *analyzer) semSubquery(lhs ast.Expr, q ast.Query) (algebra.ValueExpr, algebra.TupleExpr, error) {
	arg, err := a.semExpr(lhs)
	if err != nil {
		return nil, nil, err
	}
	sub, err := a.semQuery(q)
	if err != nil {
		return nil, nil, err
	}
	return arg, sub, nil
}

func (a *analyzer) semBuiltin(b *ast.Builtin) (algebra.ValueExpr, error) {
	arg, err := a.semExpr(b.Arg)
	if err != nil {
		return nil, err
	}
	switch strings.ToLower(b.Name) {
	case "bound":
		v, ok := arg.(*algebra.Var)
		if !ok {
			return nil, invariant("argument of bound() is %T, not a variable", arg)
		}
		return &algebra.Bound{Kind: "Bound", Arg: v}, nil
	case "isuri", "isiri":
		return &algebra.IsIRI{Kind: "IsIRI", Arg: arg}, nil
	case "isbnode", "isblank":
		return &algebra.IsBlank{Kind: "IsBlank", Arg: arg}, nil
	case "isliteral":
		return &algebra.IsLiteral{Kind: "IsLiteral", Arg: arg}, nil
	case "isresource":
		return &algebra.IsResource{Kind: "IsResource", Arg: arg}, nil
	case "datatype":
		return &algebra.Datatype{Kind: "Datatype", Arg: arg}, nil
	case "lang":
		return &algebra.Lang{Kind: "Lang", Arg: arg}, nil
	case "label":
		return &algebra.Label{Kind: "Label", Arg: arg}, nil
	case "namespace":
		return &algebra.Namespace{Kind: "Namespace", Arg: arg}, nil
	case "localname":
		return &algebra.LocalName{Kind: "LocalName", Arg: arg}, nil
	case "str":
		return &algebra.Str{Kind: "Str", Arg: arg}, nil
	}
	return nil, fmt.Errorf("unknown built-in function %q", b.Name)
}

func compareOp(op string) (algebra.CompareOp, error) {
	c := algebra.CompareOp(op)
	if !c.Valid() {
		return "", fmt.Errorf("unknown comparison operator %q", op)
	}
	return c, nil
}

// semInList expands "x in (a, b, ...)" into sameTerm(x, a) or
// sameTerm(x, b) or ... with a copy of x in each comparison.
func (a *analyzer) semInList(in *ast.InList) (algebra.ValueExpr, error) {
	if len(in.Args) == 0 {
		return nil, invariant("in list has no elements")
	}
	lhs, err := a.semExpr(in.LHS)
	if err != nil {
		return nil, err
	}
	var out algebra.ValueExpr
	for k, arg := range in.Args {
		e, err := a.semExpr(arg)
		if err != nil {
			return nil, err
		}
		if k == 0 {
			out = algebra.NewSameTerm(lhs, e)
			continue
		}
		out = algebra.NewOr(out, algebra.NewSameTerm(algebra.CloneValue(lhs), e))
	}
	return out, nil
}

func (a *analyzer) semRegex(r *ast.Regex) (algebra.ValueExpr, error) {
	text, pattern, err := a.semBinary(r.Text, r.Pattern)
	if err != nil {
		return nil, err
	}
	var flags algebra.ValueExpr
	if r.Flags != nil {
		flags, err = a.semExpr(r.Flags)
		if err != nil {
			return nil, err
		}
	}
	return &algebra.Regex{Kind: "Regex", Arg: text, Pattern: pattern, Flags: flags}, nil
}

func (a *analyzer) semFunctionCall(call *ast.FunctionCall) (algebra.ValueExpr, error) {
	uri, err := a.semExpr(call.URI)
	if err != nil {
		return nil, err
	}
	c, ok := uri.(*algebra.ValueConstant)
	if !ok {
		return nil, invariant("function name is %T, not a constant", uri)
	}
	iri, ok := c.Value.(rdf.IRI)
	if !ok {
		return nil, invariant("function name %s is not an IRI", c.Value)
	}
	args := make([]algebra.ValueExpr, 0, len(call.Args))
	for _, arg := range call.Args {
		e, err := a.semExpr(arg)
		if err != nil {
			return nil, err
		}
		args = append(args, e)
	}
	return &algebra.FunctionCall{Kind: "FunctionCall", URI: string(iri), Args: args}, nil
}
