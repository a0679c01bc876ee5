// Package rdfvoc provides IRI constants for the RDF and RDFS core
// vocabularies used by the translator.
package rdfvoc

import "github.com/c360studio/shaclex/schema"

// Namespace is the RDF syntax namespace.
const Namespace = "http://www.w3.org/1999/02/22-rdf-syntax-ns#"

// RDFSNamespace is the RDF Schema namespace.
const RDFSNamespace = "http://www.w3.org/2000/01/rdf-schema#"

// RDF terms.
const (
	// Type is rdf:type, the instance-of predicate.
	Type = schema.IRI(Namespace + "type")

	// First is rdf:first, the head of an RDF collection cell.
	First = schema.IRI(Namespace + "first")

	// Rest is rdf:rest, the tail of an RDF collection cell.
	Rest = schema.IRI(Namespace + "rest")

	// Nil is rdf:nil, the empty RDF collection.
	Nil = schema.IRI(Namespace + "nil")

	// LangString is rdf:langString, the datatype of language-tagged literals.
	LangString = schema.IRI(Namespace + "langString")
)

// RDFS terms.
const (
	// Label is rdfs:label.
	Label = schema.IRI(RDFSNamespace + "label")

	// Comment is rdfs:comment.
	Comment = schema.IRI(RDFSNamespace + "comment")
)

// InstanceOf is wdt:P31, the Wikidata instance-of predicate. Schemas
// derived from Wikidata use it where others use rdf:type, so the
// converters treat both as type assertions.
const InstanceOf = schema.IRI("http://www.wikidata.org/prop/direct/P31")

// IsTypePredicate reports whether the predicate asserts the type of a
// node (rdf:type or wdt:P31).
func IsTypePredicate(p schema.IRI) bool {
	return p == Type || p == InstanceOf
}
