// Package rdf implements the opaque RDF values that the pattern compiler
// binds to constant variables: IRIs, blank nodes, and literals.
package rdf

import (
	"encoding/json"
	"strconv"
)

// Value is an IRI, a blank node, or a literal.
type Value interface {
	// String returns the N-Triples form of the value.
	String() string
	rdfValue()
}

type IRI string

func (i IRI) String() string { return "<" + string(i) + ">" }

func (i IRI) MarshalJSON() ([]byte, error) {
	return marshalValue("iri", string(i), nil)
}

type BNode string

func (b BNode) String() string { return "_:" + string(b) }

func (b BNode) MarshalJSON() ([]byte, error) {
	return marshalValue("bnode", string(b), nil)
}

// Literal is a plain, language-tagged, or typed literal.  At most one of
// Lang and Datatype is set.
type Literal struct {
	Label    string
	Lang     string
	Datatype IRI
}

func (l *Literal) String() string {
	s := strconv.Quote(l.Label)
	switch {
	case l.Lang != "":
		return s + "@" + l.Lang
	case l.Datatype != "":
		return s + "^^" + l.Datatype.String()
	}
	return s
}

func (l *Literal) MarshalJSON() ([]byte, error) {
	var extra map[string]string
	switch {
	case l.Lang != "":
		extra = map[string]string{"xml:lang": l.Lang}
	case l.Datatype != "":
		extra = map[string]string{"datatype": string(l.Datatype)}
	}
	return marshalValue("literal", l.Label, extra)
}

func (IRI) rdfValue()      {}
func (BNode) rdfValue()    {}
func (*Literal) rdfValue() {}

func marshalValue(typ, val string, extra map[string]string) ([]byte, error) {
	m := map[string]string{"type": typ, "value": val}
	for k, v := range extra {
		m[k] = v
	}
	return json.Marshal(m)
}

// Equal reports whether a and b denote the same RDF term.
func Equal(a, b Value) bool {
	switch a := a.(type) {
	case nil:
		return b == nil
	case *Literal:
		bl, ok := b.(*Literal)
		return ok && *a == *bl
	}
	return a == b
}
