package algebra

import "github.com/brimdata/serql/rdf"

// Var is a query variable.  A Var with a Value is a constant that occupies
// a variable position; such a Var is always anonymous.  Vars are compared
// by value: two Vars with the same name denote the same variable.
type Var struct {
	Kind      string    `json:"kind" unpack:""`
	Name      string    `json:"name"`
	Anonymous bool      `json:"anonymous"`
	Value     rdf.Value `json:"value,omitempty"`
}

func NewVar(name string, anonymous bool) *Var {
	return &Var{
		Kind:      "Var",
		Name:      name,
		Anonymous: anonymous,
	}
}

// NewConstVar returns an anonymous Var bound to val.
func NewConstVar(name string, val rdf.Value) *Var {
	return &Var{
		Kind:      "Var",
		Name:      name,
		Anonymous: true,
		Value:     val,
	}
}

func (v *Var) HasValue() bool {
	return v.Value != nil
}

func (v *Var) Equal(to *Var) bool {
	if v == nil || to == nil {
		return v == to
	}
	return v.Name == to.Name && v.Anonymous == to.Anonymous && rdf.Equal(v.Value, to.Value)
}

func (*Var) ValueNode() {}
