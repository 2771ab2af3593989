package algebra

// Walk calls visit for e and then, if visit returns true, for each tuple
// operand of e in left-to-right order.  Subqueries nested inside value
// expressions are not visited.
func Walk(e TupleExpr, visit func(TupleExpr) bool) {
	if e == nil || !visit(e) {
		return
	}
	switch e := e.(type) {
	case *Join:
		Walk(e.LHS, visit)
		Walk(e.RHS, visit)
	case *LeftJoin:
		Walk(e.LHS, visit)
		Walk(e.RHS, visit)
	case *Union:
		Walk(e.LHS, visit)
		Walk(e.RHS, visit)
	case *Difference:
		Walk(e.LHS, visit)
		Walk(e.RHS, visit)
	case *Intersection:
		Walk(e.LHS, visit)
		Walk(e.RHS, visit)
	case *Filter:
		Walk(e.Arg, visit)
	case *Extension:
		Walk(e.Arg, visit)
	case *Projection:
		Walk(e.Arg, visit)
	case *MultiProjection:
		Walk(e.Arg, visit)
	case *Order:
		Walk(e.Arg, visit)
	case *Distinct:
		Walk(e.Arg, visit)
	case *Reduced:
		Walk(e.Arg, visit)
	case *Slice:
		Walk(e.Arg, visit)
	}
}

// StatementPatterns returns the statement patterns of e in the order
// Walk visits them.
func StatementPatterns(e TupleExpr) []*StatementPattern {
	var out []*StatementPattern
	Walk(e, func(e TupleExpr) bool {
		if sp, ok := e.(*StatementPattern); ok {
			out = append(out, sp)
		}
		return true
	})
	return out
}
