package ast

import (
	"errors"

	"github.com/brimdata/serql/pkg/unpack"
)

var unpacker = unpack.New(
	And{},
	BasicPath{},
	BasicTail{},
	BNode{},
	BooleanConstant{},
	Builtin{},
	Compare{},
	CompareAll{},
	CompareAny{},
	Construct{},
	ConstructQuery{},
	Exists{},
	From{},
	FunctionCall{},
	In{},
	InList{},
	LangMatches{},
	Like{},
	Literal{},
	NamespaceDecl{},
	NodeList{},
	Not{},
	Null{},
	OptPath{},
	OptTail{},
	Or{},
	OrderExpr{},
	PathList{},
	PathUnion{},
	ProjectionElem{},
	QueryBody{},
	QueryContainer{},
	Regex{},
	ReifiedStat{},
	SameTerm{},
	Select{},
	SelectQuery{},
	SetOp{},
	String{},
	URI{},
	Var{},
	Where{},
)

// UnpackJSON transforms the JSON representation of a query container into
// a syntax tree.
func UnpackJSON(buf []byte) (*QueryContainer, error) {
	if len(buf) == 0 {
		return nil, errors.New("empty syntax tree")
	}
	var qc *QueryContainer
	if err := unpacker.Unmarshal(buf, &qc); err != nil {
		return nil, err
	}
	if qc.Query == nil {
		return nil, errors.New("syntax tree has no query")
	}
	return qc, nil
}

// UnpackJSONAsQuery is like UnpackJSON but accepts a bare query node
// and wraps it in a container.
func UnpackJSONAsQuery(buf []byte) (*QueryContainer, error) {
	var q Query
	if err := unpacker.Unmarshal(buf, &q); err != nil {
		return nil, err
	}
	if q == nil {
		return nil, errors.New("JSON object is not a query")
	}
	return &QueryContainer{Kind: "QueryContainer", Query: q}, nil
}
