package semantic

import "github.com/brimdata/serql/compiler/ast/algebra"

// GraphPattern accumulates the required patterns, optional patterns, and
// constraints of one nesting level of a query body.
type GraphPattern struct {
	required    []algebra.TupleExpr
	optional    []*GraphPattern
	constraints []algebra.ValueExpr
	contextVar  *algebra.Var
	scope       algebra.Scope
}

func NewGraphPattern() *GraphPattern {
	return &GraphPattern{scope: algebra.DefaultContexts}
}

func (g *GraphPattern) AddRequired(e algebra.TupleExpr) {
	g.required = append(g.required, e)
}

func (g *GraphPattern) AddOptional(child *GraphPattern) {
	g.optional = append(g.optional, child)
}

func (g *GraphPattern) AddConstraint(e algebra.ValueExpr) {
	g.constraints = append(g.constraints, e)
}

func (g *GraphPattern) SetScope(scope algebra.Scope) {
	g.scope = scope
}

func (g *GraphPattern) SetContextVar(v *algebra.Var) {
	g.contextVar = v
}

func (g *GraphPattern) Scope() algebra.Scope {
	return g.scope
}

func (g *GraphPattern) ContextVar() *algebra.Var {
	return g.contextVar
}

// Render converts the accumulated state into an operator tree.  The
// required patterns are joined left to right, each optional pattern is
// then attached with a LeftJoin in the order added, and the conjunction
// of the constraints filters the result.  Render does not modify g.
func (g *GraphPattern) Render() algebra.TupleExpr {
	var out algebra.TupleExpr
	for _, e := range g.required {
		if out == nil {
			out = e
			continue
		}
		out = &algebra.Join{Kind: "Join", LHS: out, RHS: e}
	}
	if out == nil {
		out = algebra.NewSingletonSet()
	}
	for _, opt := range g.optional {
		out = &algebra.LeftJoin{Kind: "LeftJoin", LHS: out, RHS: opt.Render()}
	}
	var cond algebra.ValueExpr
	for _, c := range g.constraints {
		if cond == nil {
			cond = c
			continue
		}
		cond = algebra.NewAnd(cond, c)
	}
	if cond != nil {
		out = algebra.NewFilter(cond, out)
	}
	return out
}

// scopeStack keeps every GraphPattern of a run in an arena and tracks the
// active ones by index.  The enclosing pattern of the top of the stack is
// the entry beneath it.
type scopeStack struct {
	arena []*GraphPattern
	stack []int
}

// push creates a new GraphPattern on top of the stack.  The new pattern
// starts out with the statement pattern scope and context of the pattern
// it is nested in.
func (s *scopeStack) push() *GraphPattern {
	g := NewGraphPattern()
	if top := s.top(); top != nil {
		g.scope = top.scope
		g.contextVar = top.contextVar
	}
	s.arena = append(s.arena, g)
	s.stack = append(s.stack, len(s.arena)-1)
	return g
}

func (s *scopeStack) pop() *GraphPattern {
	g := s.top()
	s.stack = s.stack[:len(s.stack)-1]
	return g
}

func (s *scopeStack) top() *GraphPattern {
	if len(s.stack) == 0 {
		return nil
	}
	return s.arena[s.stack[len(s.stack)-1]]
}
