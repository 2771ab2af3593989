package rdf

import (
	"errors"
	"fmt"
	"net/url"
	"strconv"

	"golang.org/x/text/language"
)

// ValueFactory creates values from the constants of a query.  An error
// from any method means the constant is malformed.
type ValueFactory interface {
	IRI(string) (IRI, error)
	BNode(id string) (BNode, error)
	Literal(label string) (*Literal, error)
	LangLiteral(label, lang string) (*Literal, error)
	TypedLiteral(label string, datatype IRI) (*Literal, error)
	BooleanLiteral(bool) *Literal
}

// SimpleFactory is a ValueFactory that checks IRIs for absoluteness and
// language tags for BCP 47 well-formedness.
type SimpleFactory struct{}

var _ ValueFactory = SimpleFactory{}

func (SimpleFactory) IRI(s string) (IRI, error) {
	u, err := url.Parse(s)
	if err != nil {
		return "", fmt.Errorf("invalid IRI %q: %w", s, err)
	}
	if !u.IsAbs() {
		return "", fmt.Errorf("not an absolute IRI: %q", s)
	}
	return IRI(s), nil
}

func (SimpleFactory) BNode(id string) (BNode, error) {
	if id == "" {
		return "", errors.New("blank node identifier cannot be empty")
	}
	return BNode(id), nil
}

func (SimpleFactory) Literal(label string) (*Literal, error) {
	return &Literal{Label: label}, nil
}

func (SimpleFactory) LangLiteral(label, lang string) (*Literal, error) {
	if _, err := language.Parse(lang); err != nil {
		return nil, fmt.Errorf("invalid language tag %q: %w", lang, err)
	}
	return &Literal{Label: label, Lang: lang}, nil
}

func (f SimpleFactory) TypedLiteral(label string, datatype IRI) (*Literal, error) {
	if _, err := f.IRI(string(datatype)); err != nil {
		return nil, fmt.Errorf("literal datatype: %w", err)
	}
	return &Literal{Label: label, Datatype: datatype}, nil
}

func (SimpleFactory) BooleanLiteral(b bool) *Literal {
	return &Literal{Label: strconv.FormatBool(b), Datatype: XSDBoolean}
}
