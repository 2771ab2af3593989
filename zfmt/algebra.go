package zfmt

import (
	"fmt"
	"strings"

	"github.com/brimdata/serql/compiler/ast/algebra"
)

// Algebra renders a query plan as indented text with one operator per
// line and each operator's operands indented beneath it.
func Algebra(e algebra.TupleExpr) string {
	c := &canonAlgebra{formatter: formatter{tab: 2}}
	c.tuple(e)
	c.flush()
	return c.String()
}

// ValueExpr renders a value expression on a single line.
func ValueExpr(e algebra.ValueExpr) string {
	var b strings.Builder
	writeValue(&b, e)
	return b.String()
}

type canonAlgebra struct {
	formatter
}

func (c *canonAlgebra) tuple(e algebra.TupleExpr) {
	c.write(header(e))
	c.open()
	for _, operand := range operands(e) {
		c.ret()
		c.tuple(operand)
	}
	c.close()
}

func header(e algebra.TupleExpr) string {
	switch e := e.(type) {
	case nil:
		return "<nil>"
	case *algebra.StatementPattern:
		s := fmt.Sprintf("StatementPattern %s %s %s", varString(e.Subject), varString(e.Predicate), varString(e.Object))
		if e.Scope == algebra.NamedContexts {
			s += " named"
			if e.Context != nil {
				s += " " + varString(e.Context)
			}
		}
		return s
	case *algebra.Join:
		return "Join"
	case *algebra.LeftJoin:
		return "LeftJoin"
	case *algebra.Union:
		return "Union"
	case *algebra.Difference:
		return "Difference"
	case *algebra.Intersection:
		return "Intersection"
	case *algebra.Filter:
		return "Filter " + ValueExpr(e.Condition)
	case *algebra.Extension:
		elems := make([]string, 0, len(e.Elems))
		for _, elem := range e.Elems {
			elems = append(elems, elem.Name+":="+ValueExpr(elem.Expr))
		}
		return "Extension " + strings.Join(elems, ", ")
	case *algebra.Projection:
		return "Projection " + projection(e.Elems)
	case *algebra.MultiProjection:
		lists := make([]string, 0, len(e.Projections))
		for _, p := range e.Projections {
			lists = append(lists, "("+projection(p)+")")
		}
		return "MultiProjection " + strings.Join(lists, ", ")
	case *algebra.Order:
		elems := make([]string, 0, len(e.Elems))
		for _, elem := range e.Elems {
			dir := "asc"
			if !elem.Ascending {
				dir = "desc"
			}
			elems = append(elems, ValueExpr(elem.Expr)+" "+dir)
		}
		return "Order " + strings.Join(elems, ", ")
	case *algebra.Distinct:
		return "Distinct"
	case *algebra.Reduced:
		return "Reduced"
	case *algebra.Slice:
		return fmt.Sprintf("Slice offset=%d limit=%d", e.Offset, e.Limit)
	case *algebra.SingletonSet:
		return "SingletonSet"
	case *algebra.EmptySet:
		return "EmptySet"
	}
	return fmt.Sprintf("unknown operator %T", e)
}

func operands(e algebra.TupleExpr) []algebra.TupleExpr {
	switch e := e.(type) {
	case *algebra.Join:
		return []algebra.TupleExpr{e.LHS, e.RHS}
	case *algebra.LeftJoin:
		return []algebra.TupleExpr{e.LHS, e.RHS}
	case *algebra.Union:
		return []algebra.TupleExpr{e.LHS, e.RHS}
	case *algebra.Difference:
		return []algebra.TupleExpr{e.LHS, e.RHS}
	case *algebra.Intersection:
		return []algebra.TupleExpr{e.LHS, e.RHS}
	case *algebra.Filter:
		return []algebra.TupleExpr{e.Arg}
	case *algebra.Extension:
		return []algebra.TupleExpr{e.Arg}
	case *algebra.Projection:
		return []algebra.TupleExpr{e.Arg}
	case *algebra.MultiProjection:
		return []algebra.TupleExpr{e.Arg}
	case *algebra.Order:
		return []algebra.TupleExpr{e.Arg}
	case *algebra.Distinct:
		return []algebra.TupleExpr{e.Arg}
	case *algebra.Reduced:
		return []algebra.TupleExpr{e.Arg}
	case *algebra.Slice:
		return []algebra.TupleExpr{e.Arg}
	}
	return nil
}

func projection(elems []algebra.ProjectionElem) string {
	out := make([]string, 0, len(elems))
	for _, elem := range elems {
		if elem.Source == elem.Target {
			out = append(out, elem.Target)
		} else {
			out = append(out, elem.Source+" AS "+elem.Target)
		}
	}
	return strings.Join(out, ", ")
}

// inlineTuple renders a subquery on one line as Operator(operand, ...).
func inlineTuple(b *strings.Builder, e algebra.TupleExpr) {
	b.WriteString(header(e))
	ops := operands(e)
	if len(ops) == 0 {
		return
	}
	b.WriteByte('(')
	for k, op := range ops {
		if k > 0 {
			b.WriteString(", ")
		}
		inlineTuple(b, op)
	}
	b.WriteByte(')')
}

func varString(v *algebra.Var) string {
	if v == nil {
		return "<nil>"
	}
	if v.HasValue() {
		return v.Value.String()
	}
	return "?" + v.Name
}

func writeValue(b *strings.Builder, e algebra.ValueExpr) {
	switch e := e.(type) {
	case nil:
		b.WriteString("<nil>")
	case *algebra.Var:
		b.WriteString(varString(e))
	case *algebra.ValueConstant:
		b.WriteString(e.Value.String())
	case *algebra.And:
		binary(b, e.LHS, "&&", e.RHS)
	case *algebra.Or:
		binary(b, e.LHS, "||", e.RHS)
	case *algebra.Not:
		b.WriteByte('!')
		writeValue(b, e.Arg)
	case *algebra.Compare:
		binary(b, e.LHS, string(e.Op), e.RHS)
	case *algebra.CompareAny:
		subquery(b, e.Arg, string(e.Op)+" any", e.Subquery)
	case *algebra.CompareAll:
		subquery(b, e.Arg, string(e.Op)+" all", e.Subquery)
	case *algebra.In:
		subquery(b, e.Arg, "in", e.Subquery)
	case *algebra.Like:
		b.WriteString("like(")
		writeValue(b, e.Arg)
		fmt.Fprintf(b, ", %q", e.Pattern)
		if !e.CaseSensitive {
			b.WriteString(", ignore case")
		}
		b.WriteByte(')')
	case *algebra.Regex:
		args := []algebra.ValueExpr{e.Arg, e.Pattern}
		if e.Flags != nil {
			args = append(args, e.Flags)
		}
		call(b, "regex", args...)
	case *algebra.Bound:
		call(b, "bound", e.Arg)
	case *algebra.IsIRI:
		call(b, "isIRI", e.Arg)
	case *algebra.IsBlank:
		call(b, "isBlank", e.Arg)
	case *algebra.IsLiteral:
		call(b, "isLiteral", e.Arg)
	case *algebra.IsResource:
		call(b, "isResource", e.Arg)
	case *algebra.LangMatches:
		call(b, "langMatches", e.LHS, e.RHS)
	case *algebra.SameTerm:
		call(b, "sameTerm", e.LHS, e.RHS)
	case *algebra.Exists:
		b.WriteString("exists {")
		inlineTuple(b, e.Subquery)
		b.WriteByte('}')
	case *algebra.FunctionCall:
		call(b, "<"+e.URI+">", e.Args...)
	case *algebra.Datatype:
		call(b, "datatype", e.Arg)
	case *algebra.Lang:
		call(b, "lang", e.Arg)
	case *algebra.Label:
		call(b, "label", e.Arg)
	case *algebra.Namespace:
		call(b, "namespace", e.Arg)
	case *algebra.LocalName:
		call(b, "localName", e.Arg)
	case *algebra.Str:
		call(b, "str", e.Arg)
	case *algebra.BNodeGenerator:
		b.WriteString("bnode()")
	default:
		fmt.Fprintf(b, "unknown expression %T", e)
	}
}

func binary(b *strings.Builder, lhs algebra.ValueExpr, op string, rhs algebra.ValueExpr) {
	b.WriteByte('(')
	writeValue(b, lhs)
	b.WriteString(" " + op + " ")
	writeValue(b, rhs)
	b.WriteByte(')')
}

func subquery(b *strings.Builder, arg algebra.ValueExpr, op string, sub algebra.TupleExpr) {
	b.WriteByte('(')
	writeValue(b, arg)
	b.WriteString(" " + op + " {")
	inlineTuple(b, sub)
	b.WriteString("})")
}

func call(b *strings.Builder, name string, args ...algebra.ValueExpr) {
	b.WriteString(name)
	b.WriteByte('(')
	for k, arg := range args {
		if k > 0 {
			b.WriteString(", ")
		}
		writeValue(b, arg)
	}
	b.WriteByte(')')
}
