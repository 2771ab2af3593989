package rdf

const (
	RDFNamespace = "http://www.w3.org/1999/02/22-rdf-syntax-ns#"
	XSDNamespace = "http://www.w3.org/2001/XMLSchema#"
)

const (
	Type      = IRI(RDFNamespace + "type")
	Statement = IRI(RDFNamespace + "Statement")
	Subject   = IRI(RDFNamespace + "subject")
	Predicate = IRI(RDFNamespace + "predicate")
	Object    = IRI(RDFNamespace + "object")

	XSDBoolean = IRI(XSDNamespace + "boolean")
)
