// Package algebra declares the operator tree that the semantic pass
// produces from a SeRQL syntax tree.  Tuple operators produce sets of
// variable bindings; value expressions compute a term or a boolean for one
// binding.
package algebra

// This module is derived from the GO AST design pattern in
// https://golang.org/pkg/go/ast/
//
// Copyright 2009 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

type TupleExpr interface {
	TupleNode()
}

// Scope selects which graphs a statement pattern matches against.
type Scope string

const (
	DefaultContexts Scope = "default_contexts"
	NamedContexts   Scope = "named_contexts"
)

// Tuple operators

type (
	// StatementPattern matches triples (quads when Context is set)
	// against the store.  Every position is a Var, bound or not.
	StatementPattern struct {
		Kind      string `json:"kind" unpack:""`
		Scope     Scope  `json:"scope"`
		Subject   *Var   `json:"subject"`
		Predicate *Var   `json:"predicate"`
		Object    *Var   `json:"object"`
		Context   *Var   `json:"context"`
	}
	Join struct {
		Kind string    `json:"kind" unpack:""`
		LHS  TupleExpr `json:"lhs"`
		RHS  TupleExpr `json:"rhs"`
	}
	// LeftJoin is the left outer join of an optional pattern (RHS) onto
	// the required pattern (LHS).
	LeftJoin struct {
		Kind string    `json:"kind" unpack:""`
		LHS  TupleExpr `json:"lhs"`
		RHS  TupleExpr `json:"rhs"`
	}
	Union struct {
		Kind string    `json:"kind" unpack:""`
		LHS  TupleExpr `json:"lhs"`
		RHS  TupleExpr `json:"rhs"`
	}
	Difference struct {
		Kind string    `json:"kind" unpack:""`
		LHS  TupleExpr `json:"lhs"`
		RHS  TupleExpr `json:"rhs"`
	}
	Intersection struct {
		Kind string    `json:"kind" unpack:""`
		LHS  TupleExpr `json:"lhs"`
		RHS  TupleExpr `json:"rhs"`
	}
	Filter struct {
		Kind      string    `json:"kind" unpack:""`
		Condition ValueExpr `json:"condition"`
		Arg       TupleExpr `json:"arg"`
	}
	// Extension binds computed values to new names in each solution.
	Extension struct {
		Kind  string          `json:"kind" unpack:""`
		Elems []ExtensionElem `json:"elems"`
		Arg   TupleExpr       `json:"arg"`
	}
	Projection struct {
		Kind  string           `json:"kind" unpack:""`
		Elems []ProjectionElem `json:"elems"`
		Arg   TupleExpr        `json:"arg"`
	}
	// MultiProjection emits one solution per projection list for each
	// input solution.
	MultiProjection struct {
		Kind        string             `json:"kind" unpack:""`
		Projections [][]ProjectionElem `json:"projections"`
		Arg         TupleExpr          `json:"arg"`
	}
	Order struct {
		Kind  string      `json:"kind" unpack:""`
		Elems []OrderElem `json:"elems"`
		Arg   TupleExpr   `json:"arg"`
	}
	Distinct struct {
		Kind string    `json:"kind" unpack:""`
		Arg  TupleExpr `json:"arg"`
	}
	Reduced struct {
		Kind string    `json:"kind" unpack:""`
		Arg  TupleExpr `json:"arg"`
	}
	// Slice skips Offset solutions and returns at most Limit of the
	// rest.  A negative Limit means no limit.
	Slice struct {
		Kind   string    `json:"kind" unpack:""`
		Offset int64     `json:"offset"`
		Limit  int64     `json:"limit"`
		Arg    TupleExpr `json:"arg"`
	}
	// SingletonSet produces one empty solution.
	SingletonSet struct {
		Kind string `json:"kind" unpack:""`
	}
	// EmptySet produces no solutions.
	EmptySet struct {
		Kind string `json:"kind" unpack:""`
	}
)

type (
	ExtensionElem struct {
		Expr ValueExpr `json:"expr"`
		Name string    `json:"name"`
	}
	// ProjectionElem renames binding Source to Target.
	ProjectionElem struct {
		Source string `json:"source"`
		Target string `json:"target"`
	}
	OrderElem struct {
		Expr      ValueExpr `json:"expr"`
		Ascending bool      `json:"ascending"`
	}
)

func (*StatementPattern) TupleNode() {}
func (*Join) TupleNode()             {}
func (*LeftJoin) TupleNode()         {}
func (*Union) TupleNode()            {}
func (*Difference) TupleNode()       {}
func (*Intersection) TupleNode()     {}
func (*Filter) TupleNode()           {}
func (*Extension) TupleNode()        {}
func (*Projection) TupleNode()       {}
func (*MultiProjection) TupleNode()  {}
func (*Order) TupleNode()            {}
func (*Distinct) TupleNode()         {}
func (*Reduced) TupleNode()          {}
func (*Slice) TupleNode()            {}
func (*SingletonSet) TupleNode()     {}
func (*EmptySet) TupleNode()         {}

func NewStatementPattern(scope Scope, subj, pred, obj, ctx *Var) *StatementPattern {
	return &StatementPattern{
		Kind:      "StatementPattern",
		Scope:     scope,
		Subject:   subj,
		Predicate: pred,
		Object:    obj,
		Context:   ctx,
	}
}

func NewFilter(cond ValueExpr, arg TupleExpr) *Filter {
	return &Filter{
		Kind:      "Filter",
		Condition: cond,
		Arg:       arg,
	}
}

func NewSingletonSet() *SingletonSet {
	return &SingletonSet{Kind: "SingletonSet"}
}

// NewProjectionElem projects name onto itself.
func NewProjectionElem(name string) ProjectionElem {
	return ProjectionElem{Source: name, Target: name}
}
