package semantic

import (
	"fmt"
	"strconv"

	"github.com/brimdata/serql/compiler/ast"
	"github.com/brimdata/serql/compiler/ast/algebra"
	"golang.org/x/exp/slices"
)

// column is a projection element with its resolved alias.  Implicit is
// set for an unaliased variable, which is projected under its own name.
type column struct {
	expr     ast.Expr
	alias    string
	implicit bool
}

// resolveAliases assigns an alias to every projection element.  An
// unaliased variable is named by the variable.  Every other unaliased
// element gets the first name of the form _<n> not already in use.  It is
// an error for two elements to have the same alias.
func resolveAliases(elems []*ast.ProjectionElem) ([]column, error) {
	columns := make([]column, 0, len(elems))
	var aliases []string
	for _, elem := range elems {
		c := column{expr: elem.Expr, alias: elem.Alias}
		if c.alias == "" {
			if v, ok := elem.Expr.(*ast.Var); ok {
				c.alias = v.Name
				c.implicit = true
			}
		}
		if c.alias != "" {
			if slices.Contains(aliases, c.alias) {
				return nil, fmt.Errorf("duplicate projection element alias %q", c.alias)
			}
			aliases = append(aliases, c.alias)
		}
		columns = append(columns, c)
	}
	n := 1
	for k := range columns {
		if columns[k].alias != "" {
			continue
		}
		for {
			alias := "_" + strconv.Itoa(n)
			n++
			if !slices.Contains(aliases, alias) {
				columns[k].alias = alias
				aliases = append(aliases, alias)
				break
			}
		}
	}
	return columns, nil
}

// semSelect applies the projection of a select clause to arg.  The
// variables of body name the columns of a wildcard select.
func (a *analyzer) semSelect(sel *ast.Select, arg, body algebra.TupleExpr) (algebra.TupleExpr, error) {
	var proj []algebra.ProjectionElem
	var ext []algebra.ExtensionElem
	if sel.Wildcard {
		for _, name := range bodyVars(body) {
			proj = append(proj, algebra.NewProjectionElem(name))
		}
	} else {
		columns, err := resolveAliases(sel.Elems)
		if err != nil {
			return nil, err
		}
		for _, c := range columns {
			e, err := a.semExpr(c.expr)
			if err != nil {
				return nil, err
			}
			if !c.implicit {
				ext = append(ext, algebra.ExtensionElem{Expr: e, Name: c.alias})
				proj = append(proj, algebra.NewProjectionElem(c.alias))
				continue
			}
			v, ok := e.(*algebra.Var)
			if !ok {
				return nil, invariant("required alias for non-variable projection element not found")
			}
			proj = append(proj, algebra.NewProjectionElem(v.Name))
		}
	}
	out := arg
	if len(ext) > 0 {
		out = &algebra.Extension{Kind: "Extension", Elems: ext, Arg: out}
	}
	out = &algebra.Projection{Kind: "Projection", Elems: proj, Arg: out}
	switch {
	case sel.Distinct:
		out = &algebra.Distinct{Kind: "Distinct", Arg: out}
	case sel.Reduced:
		out = &algebra.Reduced{Kind: "Reduced", Arg: out}
	}
	return out, nil
}

// bodyVars returns the names of the named variables of the statement
// patterns in e in the order they first appear.
func bodyVars(e algebra.TupleExpr) []string {
	var names []string
	for _, sp := range algebra.StatementPatterns(e) {
		for _, v := range []*algebra.Var{sp.Subject, sp.Predicate, sp.Object, sp.Context} {
			if v == nil || v.Anonymous || v.HasValue() {
				continue
			}
			if !slices.Contains(names, v.Name) {
				names = append(names, v.Name)
			}
		}
	}
	return names
}
