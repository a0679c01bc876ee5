// Package xsdvoc provides IRI constants for the XML Schema datatypes
// that appear in shape constraints.
package xsdvoc

import "github.com/c360studio/shaclex/schema"

// Namespace is the XML Schema datatype namespace.
const Namespace = "http://www.w3.org/2001/XMLSchema#"

const (
	String   = schema.IRI(Namespace + "string")
	Integer  = schema.IRI(Namespace + "integer")
	Decimal  = schema.IRI(Namespace + "decimal")
	Boolean  = schema.IRI(Namespace + "boolean")
	Date     = schema.IRI(Namespace + "date")
	DateTime = schema.IRI(Namespace + "dateTime")
	AnyURI   = schema.IRI(Namespace + "anyURI")
	Double   = schema.IRI(Namespace + "double")
	GYear    = schema.IRI(Namespace + "gYear")
)
