// Package ast declares the types used to represent syntax trees for SeRQL
// queries.  A tree is produced by an external parser and arrives here as
// JSON; every node carries a "kind" field naming its Go type.
package ast

// Query is implemented by the select and construct query nodes and by the
// set operators that combine them.
type Query interface {
	QueryAST()
}

// PathExpr is implemented by the nodes of a FROM clause's path expression.
type PathExpr interface {
	PathAST()
}

// PathTail is implemented by the predicate/object segments that follow the
// head node of a basic path expression.
type PathTail interface {
	TailAST()
	IsBranch() bool
}

// Expr is implemented by value and boolean expression nodes.
type Expr interface {
	ExprAST()
}

type QueryContainer struct {
	Kind       string           `json:"kind" unpack:""`
	Namespaces []*NamespaceDecl `json:"namespaces"`
	Query      Query            `json:"query"`
}

type NamespaceDecl struct {
	Kind   string `json:"kind" unpack:""`
	Prefix string `json:"prefix"`
	URI    string `json:"uri"`
}

// Queries

type (
	// A SetOp combines two queries with "union", "minus", or "intersect".
	// Graph is set for the construct-query forms of these operators.
	SetOp struct {
		Kind     string `json:"kind" unpack:""`
		Op       string `json:"op"`
		Graph    bool   `json:"graph"`
		Distinct bool   `json:"distinct"`
		Left     Query  `json:"left"`
		Right    Query  `json:"right"`
	}
	SelectQuery struct {
		Kind    string       `json:"kind" unpack:""`
		Select  *Select      `json:"select"`
		Body    *QueryBody   `json:"body"`
		OrderBy []*OrderExpr `json:"order_by"`
		Limit   *int64       `json:"limit"`
		Offset  *int64       `json:"offset"`
	}
	ConstructQuery struct {
		Kind      string       `json:"kind" unpack:""`
		Construct *Construct   `json:"construct"`
		Body      *QueryBody   `json:"body"`
		OrderBy   []*OrderExpr `json:"order_by"`
		Limit     *int64       `json:"limit"`
		Offset    *int64       `json:"offset"`
	}
)

func (*SetOp) QueryAST()          {}
func (*SelectQuery) QueryAST()    {}
func (*ConstructQuery) QueryAST() {}

// Query clauses

type (
	Select struct {
		Kind     string            `json:"kind" unpack:""`
		Distinct bool              `json:"distinct"`
		Reduced  bool              `json:"reduced"`
		Wildcard bool              `json:"wildcard"`
		Elems    []*ProjectionElem `json:"elems"`
	}
	ProjectionElem struct {
		Kind  string `json:"kind" unpack:""`
		Expr  Expr   `json:"expr"`
		Alias string `json:"alias"`
	}
	Construct struct {
		Kind     string   `json:"kind" unpack:""`
		Distinct bool     `json:"distinct"`
		Reduced  bool     `json:"reduced"`
		Wildcard bool     `json:"wildcard"`
		Path     PathExpr `json:"path"`
	}
	QueryBody struct {
		Kind  string  `json:"kind" unpack:""`
		From  []*From `json:"from"`
		Where *Where  `json:"where"`
	}
	// From is a path expression optionally scoped to a named graph.
	// A nil Context matches the default graphs.
	From struct {
		Kind    string   `json:"kind" unpack:""`
		Context Expr     `json:"context"`
		Path    PathExpr `json:"path"`
	}
	Where struct {
		Kind string `json:"kind" unpack:""`
		Cond Expr   `json:"cond"`
	}
	OrderExpr struct {
		Kind      string `json:"kind" unpack:""`
		Expr      Expr   `json:"expr"`
		Ascending bool   `json:"ascending"`
	}
)

// Path expressions

type (
	// PathList is a comma-separated list of path expressions that are
	// matched conjunctively.
	PathList struct {
		Kind  string     `json:"kind" unpack:""`
		Paths []PathExpr `json:"paths"`
	}
	// PathUnion matches any one of its alternative path expressions.
	PathUnion struct {
		Kind  string     `json:"kind" unpack:""`
		Paths []PathExpr `json:"paths"`
	}
	BasicPath struct {
		Kind string    `json:"kind" unpack:""`
		Head *NodeList `json:"head"`
		Tail PathTail  `json:"tail"`
	}
	// OptPath is a bracketed optional path expression with an optional
	// constraint that applies inside the brackets.
	OptPath struct {
		Kind  string   `json:"kind" unpack:""`
		Path  PathExpr `json:"path"`
		Where *Where   `json:"where"`
	}
)

func (*PathList) PathAST()  {}
func (*PathUnion) PathAST() {}
func (*BasicPath) PathAST() {}
func (*OptPath) PathAST()   {}

// Path tails

type (
	// BasicTail is an edge and node list followed by an optional next
	// segment.  Branch reports whether this segment starts from the
	// subjects of the previous segment rather than from its objects.
	BasicTail struct {
		Kind   string    `json:"kind" unpack:""`
		Edge   Expr      `json:"edge"`
		Node   *NodeList `json:"node"`
		Next   PathTail  `json:"next"`
		Branch bool      `json:"branch"`
	}
	OptTail struct {
		Kind   string   `json:"kind" unpack:""`
		Tail   PathTail `json:"tail"`
		Where  *Where   `json:"where"`
		Next   PathTail `json:"next"`
		Branch bool     `json:"branch"`
	}
)

func (*BasicTail) TailAST() {}
func (*OptTail) TailAST()   {}

func (b *BasicTail) IsBranch() bool { return b.Branch }
func (o *OptTail) IsBranch() bool   { return o.Branch }

// NodeList lists the terms that may occupy one position of a path.  Each
// element is a Var, URI, BNode, Literal, or ReifiedStat.
type NodeList struct {
	Kind  string `json:"kind" unpack:""`
	Elems []Expr `json:"elems"`
}

// Expressions

type (
	Var struct {
		Kind      string `json:"kind" unpack:""`
		Name      string `json:"name"`
		Anonymous bool   `json:"anonymous"`
	}
	URI struct {
		Kind  string `json:"kind" unpack:""`
		Value string `json:"value"`
	}
	BNode struct {
		Kind string `json:"kind" unpack:""`
		ID   string `json:"id"`
	}
	// Literal has at most one of Lang and Datatype.  Datatype, when
	// present, must be a URI node.
	Literal struct {
		Kind     string `json:"kind" unpack:""`
		Label    string `json:"label"`
		Lang     string `json:"lang"`
		Datatype Expr   `json:"datatype"`
	}
	BooleanConstant struct {
		Kind  string `json:"kind" unpack:""`
		Value bool   `json:"value"`
	}
	String struct {
		Kind  string `json:"kind" unpack:""`
		Value string `json:"value"`
	}
	// ReifiedStat is the {subject predicate object} node syntax, which
	// stands for the statement resource named by ID.
	ReifiedStat struct {
		Kind      string `json:"kind" unpack:""`
		ID        *Var   `json:"id"`
		Subject   Expr   `json:"subject"`
		Predicate Expr   `json:"predicate"`
		Object    Expr   `json:"object"`
	}
	And struct {
		Kind     string `json:"kind" unpack:""`
		Operands []Expr `json:"operands"`
	}
	Or struct {
		Kind     string `json:"kind" unpack:""`
		Operands []Expr `json:"operands"`
	}
	Not struct {
		Kind    string `json:"kind" unpack:""`
		Operand Expr   `json:"operand"`
	}
	// Builtin is a one-argument built-in such as bound(), isURI(),
	// datatype(), or str().  Name is matched case-insensitively.
	Builtin struct {
		Kind string `json:"kind" unpack:""`
		Name string `json:"name"`
		Arg  Expr   `json:"arg"`
	}
	Compare struct {
		Kind string `json:"kind" unpack:""`
		Op   string `json:"op"`
		LHS  Expr   `json:"lhs"`
		RHS  Expr   `json:"rhs"`
	}
	CompareAny struct {
		Kind  string `json:"kind" unpack:""`
		Op    string `json:"op"`
		LHS   Expr   `json:"lhs"`
		Query Query  `json:"query"`
	}
	CompareAll struct {
		Kind  string `json:"kind" unpack:""`
		Op    string `json:"op"`
		LHS   Expr   `json:"lhs"`
		Query Query  `json:"query"`
	}
	In struct {
		Kind  string `json:"kind" unpack:""`
		LHS   Expr   `json:"lhs"`
		Query Query  `json:"query"`
	}
	InList struct {
		Kind string `json:"kind" unpack:""`
		LHS  Expr   `json:"lhs"`
		Args []Expr `json:"args"`
	}
	Like struct {
		Kind       string  `json:"kind" unpack:""`
		Expr       Expr    `json:"expr"`
		Pattern    *String `json:"pattern"`
		IgnoreCase bool    `json:"ignore_case"`
	}
	Regex struct {
		Kind    string `json:"kind" unpack:""`
		Text    Expr   `json:"text"`
		Pattern Expr   `json:"pattern"`
		Flags   Expr   `json:"flags"`
	}
	LangMatches struct {
		Kind  string `json:"kind" unpack:""`
		Tag   Expr   `json:"tag"`
		Range Expr   `json:"range"`
	}
	SameTerm struct {
		Kind string `json:"kind" unpack:""`
		LHS  Expr   `json:"lhs"`
		RHS  Expr   `json:"rhs"`
	}
	Exists struct {
		Kind  string `json:"kind" unpack:""`
		Query Query  `json:"query"`
	}
	FunctionCall struct {
		Kind string `json:"kind" unpack:""`
		URI  Expr   `json:"uri"`
		Args []Expr `json:"args"`
	}
	// Null is the deprecated NULL keyword.  It is recognized only so that
	// it can be rejected.
	Null struct {
		Kind string `json:"kind" unpack:""`
	}
)

func (*Var) ExprAST()             {}
func (*URI) ExprAST()             {}
func (*BNode) ExprAST()           {}
func (*Literal) ExprAST()         {}
func (*BooleanConstant) ExprAST() {}
func (*String) ExprAST()          {}
func (*ReifiedStat) ExprAST()     {}
func (*And) ExprAST()             {}
func (*Or) ExprAST()              {}
func (*Not) ExprAST()             {}
func (*Builtin) ExprAST()         {}
func (*Compare) ExprAST()         {}
func (*CompareAny) ExprAST()      {}
func (*CompareAll) ExprAST()      {}
func (*In) ExprAST()              {}
func (*InList) ExprAST()          {}
func (*Like) ExprAST()            {}
func (*Regex) ExprAST()           {}
func (*LangMatches) ExprAST()     {}
func (*SameTerm) ExprAST()        {}
func (*Exists) ExprAST()          {}
func (*FunctionCall) ExprAST()    {}
func (*Null) ExprAST()            {}
