package algebra

import "github.com/brimdata/serql/rdf"

type ValueExpr interface {
	ValueNode()
}

type CompareOp string

const (
	EQ CompareOp = "="
	NE CompareOp = "!="
	LT CompareOp = "<"
	LE CompareOp = "<="
	GT CompareOp = ">"
	GE CompareOp = ">="
)

func (c CompareOp) Valid() bool {
	switch c {
	case EQ, NE, LT, LE, GT, GE:
		return true
	}
	return false
}

// Value expressions

type (
	ValueConstant struct {
		Kind  string    `json:"kind" unpack:""`
		Value rdf.Value `json:"value"`
	}
	And struct {
		Kind string    `json:"kind" unpack:""`
		LHS  ValueExpr `json:"lhs"`
		RHS  ValueExpr `json:"rhs"`
	}
	Or struct {
		Kind string    `json:"kind" unpack:""`
		LHS  ValueExpr `json:"lhs"`
		RHS  ValueExpr `json:"rhs"`
	}
	Not struct {
		Kind string    `json:"kind" unpack:""`
		Arg  ValueExpr `json:"arg"`
	}
	Compare struct {
		Kind string    `json:"kind" unpack:""`
		Op   CompareOp `json:"op"`
		LHS  ValueExpr `json:"lhs"`
		RHS  ValueExpr `json:"rhs"`
	}
	// CompareAny is true if Arg compares true against any value of the
	// single binding produced by Subquery.
	CompareAny struct {
		Kind     string    `json:"kind" unpack:""`
		Op       CompareOp `json:"op"`
		Arg      ValueExpr `json:"arg"`
		Subquery TupleExpr `json:"subquery"`
	}
	CompareAll struct {
		Kind     string    `json:"kind" unpack:""`
		Op       CompareOp `json:"op"`
		Arg      ValueExpr `json:"arg"`
		Subquery TupleExpr `json:"subquery"`
	}
	In struct {
		Kind     string    `json:"kind" unpack:""`
		Arg      ValueExpr `json:"arg"`
		Subquery TupleExpr `json:"subquery"`
	}
	Like struct {
		Kind          string    `json:"kind" unpack:""`
		Arg           ValueExpr `json:"arg"`
		Pattern       string    `json:"pattern"`
		CaseSensitive bool      `json:"case_sensitive"`
	}
	Regex struct {
		Kind    string    `json:"kind" unpack:""`
		Arg     ValueExpr `json:"arg"`
		Pattern ValueExpr `json:"pattern"`
		Flags   ValueExpr `json:"flags"`
	}
	Bound struct {
		Kind string `json:"kind" unpack:""`
		Arg  *Var   `json:"arg"`
	}
	IsIRI struct {
		Kind string    `json:"kind" unpack:""`
		Arg  ValueExpr `json:"arg"`
	}
	IsBlank struct {
		Kind string    `json:"kind" unpack:""`
		Arg  ValueExpr `json:"arg"`
	}
	IsLiteral struct {
		Kind string    `json:"kind" unpack:""`
		Arg  ValueExpr `json:"arg"`
	}
	IsResource struct {
		Kind string    `json:"kind" unpack:""`
		Arg  ValueExpr `json:"arg"`
	}
	LangMatches struct {
		Kind string    `json:"kind" unpack:""`
		LHS  ValueExpr `json:"lhs"`
		RHS  ValueExpr `json:"rhs"`
	}
	SameTerm struct {
		Kind string    `json:"kind" unpack:""`
		LHS  ValueExpr `json:"lhs"`
		RHS  ValueExpr `json:"rhs"`
	}
	Exists struct {
		Kind     string    `json:"kind" unpack:""`
		Subquery TupleExpr `json:"subquery"`
	}
	// FunctionCall is a call to the function named by the IRI in URI.
	// Functions are resolved by the evaluator.
	FunctionCall struct {
		Kind string      `json:"kind" unpack:""`
		URI  string      `json:"uri"`
		Args []ValueExpr `json:"args"`
	}
	Datatype struct {
		Kind string    `json:"kind" unpack:""`
		Arg  ValueExpr `json:"arg"`
	}
	Lang struct {
		Kind string    `json:"kind" unpack:""`
		Arg  ValueExpr `json:"arg"`
	}
	Label struct {
		Kind string    `json:"kind" unpack:""`
		Arg  ValueExpr `json:"arg"`
	}
	Namespace struct {
		Kind string    `json:"kind" unpack:""`
		Arg  ValueExpr `json:"arg"`
	}
	LocalName struct {
		Kind string    `json:"kind" unpack:""`
		Arg  ValueExpr `json:"arg"`
	}
	Str struct {
		Kind string    `json:"kind" unpack:""`
		Arg  ValueExpr `json:"arg"`
	}
	// BNodeGenerator yields a fresh blank node for each solution.
	BNodeGenerator struct {
		Kind string `json:"kind" unpack:""`
	}
)

func (*ValueConstant) ValueNode()  {}
func (*And) ValueNode()            {}
func (*Or) ValueNode()             {}
func (*Not) ValueNode()            {}
func (*Compare) ValueNode()        {}
func (*CompareAny) ValueNode()     {}
func (*CompareAll) ValueNode()     {}
func (*In) ValueNode()             {}
func (*Like) ValueNode()           {}
func (*Regex) ValueNode()          {}
func (*Bound) ValueNode()          {}
func (*IsIRI) ValueNode()          {}
func (*IsBlank) ValueNode()        {}
func (*IsLiteral) ValueNode()      {}
func (*IsResource) ValueNode()     {}
func (*LangMatches) ValueNode()    {}
func (*SameTerm) ValueNode()       {}
func (*Exists) ValueNode()         {}
func (*FunctionCall) ValueNode()   {}
func (*Datatype) ValueNode()       {}
func (*Lang) ValueNode()           {}
func (*Label) ValueNode()          {}
func (*Namespace) ValueNode()      {}
func (*LocalName) ValueNode()      {}
func (*Str) ValueNode()            {}
func (*BNodeGenerator) ValueNode() {}

func NewValueConstant(val rdf.Value) *ValueConstant {
	return &ValueConstant{Kind: "ValueConstant", Value: val}
}

func NewAnd(lhs, rhs ValueExpr) *And {
	return &And{Kind: "And", LHS: lhs, RHS: rhs}
}

func NewOr(lhs, rhs ValueExpr) *Or {
	return &Or{Kind: "Or", LHS: lhs, RHS: rhs}
}

func NewNot(arg ValueExpr) *Not {
	return &Not{Kind: "Not", Arg: arg}
}

func NewSameTerm(lhs, rhs ValueExpr) *SameTerm {
	return &SameTerm{Kind: "SameTerm", LHS: lhs, RHS: rhs}
}
