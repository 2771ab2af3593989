package rdf_test

import (
	"encoding/json"
	"testing"

	"github.com/brimdata/serql/rdf"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSimpleFactoryIRI(t *testing.T) {
	var f rdf.SimpleFactory
	iri, err := f.IRI("http://example.org/a#b")
	require.NoError(t, err)
	assert.Equal(t, rdf.IRI("http://example.org/a#b"), iri)
	_, err = f.IRI("relative/path")
	assert.EqualError(t, err, `not an absolute IRI: "relative/path"`)
	_, err = f.IRI("http://[::1")
	assert.Error(t, err)
}

func TestSimpleFactoryLiterals(t *testing.T) {
	var f rdf.SimpleFactory
	l, err := f.LangLiteral("chat", "fr-CA")
	require.NoError(t, err)
	assert.Equal(t, `"chat"@fr-CA`, l.String())
	_, err = f.LangLiteral("chat", "not a tag")
	assert.Error(t, err)
	_, err = f.TypedLiteral("1", "int")
	assert.Error(t, err)
	b := f.BooleanLiteral(true)
	assert.Equal(t, `"true"^^<http://www.w3.org/2001/XMLSchema#boolean>`, b.String())
	_, err = f.BNode("")
	assert.Error(t, err)
}

func TestEqual(t *testing.T) {
	assert.True(t, rdf.Equal(rdf.IRI("http://a/"), rdf.IRI("http://a/")))
	assert.True(t, rdf.Equal(&rdf.Literal{Label: "x"}, &rdf.Literal{Label: "x"}))
	assert.False(t, rdf.Equal(&rdf.Literal{Label: "x"}, &rdf.Literal{Label: "x", Lang: "en"}))
	assert.False(t, rdf.Equal(rdf.BNode("x"), rdf.IRI("x")))
	assert.True(t, rdf.Equal(nil, nil))
}

func TestMarshalJSON(t *testing.T) {
	b, err := json.Marshal([]rdf.Value{rdf.IRI("http://a/"), rdf.BNode("b1"), &rdf.Literal{Label: "x", Lang: "en"}})
	require.NoError(t, err)
	assert.JSONEq(t, `[
		{"type":"iri","value":"http://a/"},
		{"type":"bnode","value":"b1"},
		{"type":"literal","value":"x","xml:lang":"en"}
	]`, string(b))
}
