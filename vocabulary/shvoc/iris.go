// Package shvoc provides IRI constants for the SHACL vocabulary and
// the mapping between sh:nodeKind values and the model's node kinds.
package shvoc

import (
	"fmt"

	"github.com/c360studio/shaclex/schema"
)

// Namespace is the SHACL namespace.
const Namespace = "http://www.w3.org/ns/shacl#"

// Shape-level terms.
const (
	// NodeShape is the class of SHACL node shapes.
	NodeShape = schema.IRI(Namespace + "NodeShape")

	// TargetClass binds a shape to the instances of a class.
	TargetClass = schema.IRI(Namespace + "targetClass")

	// TargetNode binds a shape to explicit focus nodes.
	TargetNode = schema.IRI(Namespace + "targetNode")

	// Property attaches a property shape to a node shape.
	Property = schema.IRI(Namespace + "property")

	// Closed marks a shape as rejecting unlisted predicates.
	Closed = schema.IRI(Namespace + "closed")

	// IgnoredProperties lists predicates exempt from sh:closed.
	IgnoredProperties = schema.IRI(Namespace + "ignoredProperties")
)

// Property-shape terms.
const (
	Path        = schema.IRI(Namespace + "path")
	InversePath = schema.IRI(Namespace + "inversePath")
	Datatype    = schema.IRI(Namespace + "datatype")
	Class       = schema.IRI(Namespace + "class")
	Node        = schema.IRI(Namespace + "node")
	NodeKind    = schema.IRI(Namespace + "nodeKind")
	MinCount    = schema.IRI(Namespace + "minCount")
	MaxCount    = schema.IRI(Namespace + "maxCount")
	HasValue    = schema.IRI(Namespace + "hasValue")
	In          = schema.IRI(Namespace + "in")
	Or          = schema.IRI(Namespace + "or")
	Pattern     = schema.IRI(Namespace + "pattern")
)

// sh:nodeKind enumeration values.
const (
	IRIKind            = schema.IRI(Namespace + "IRI")
	BlankNode          = schema.IRI(Namespace + "BlankNode")
	Literal            = schema.IRI(Namespace + "Literal")
	BlankNodeOrIRI     = schema.IRI(Namespace + "BlankNodeOrIRI")
	BlankNodeOrLiteral = schema.IRI(Namespace + "BlankNodeOrLiteral")
	IRIOrLiteral       = schema.IRI(Namespace + "IRIOrLiteral")
)

var nodeKindByIRI = map[schema.IRI]schema.NodeKind{
	IRIKind:            schema.NodeKindIRI,
	BlankNode:          schema.NodeKindBlankNode,
	Literal:            schema.NodeKindLiteral,
	BlankNodeOrIRI:     schema.NodeKindBlankNodeOrIRI,
	BlankNodeOrLiteral: schema.NodeKindBlankNodeOrLiteral,
	IRIOrLiteral:       schema.NodeKindIRIOrLiteral,
}

var iriByNodeKind = map[schema.NodeKind]schema.IRI{
	schema.NodeKindIRI:                IRIKind,
	schema.NodeKindBlankNode:          BlankNode,
	schema.NodeKindLiteral:            Literal,
	schema.NodeKindBlankNodeOrIRI:     BlankNodeOrIRI,
	schema.NodeKindBlankNodeOrLiteral: BlankNodeOrLiteral,
	schema.NodeKindIRIOrLiteral:       IRIOrLiteral,
}

// NodeKindFromIRI resolves an sh:nodeKind enum value to the model's
// node kind. Unknown IRIs are rejected.
func NodeKindFromIRI(iri schema.IRI) (schema.NodeKind, error) {
	nk, ok := nodeKindByIRI[iri]
	if !ok {
		return "", fmt.Errorf("unrecognized node kind: %s", iri)
	}
	return nk, nil
}

// NodeKindIRI returns the sh: enumeration IRI for a node kind.
func NodeKindIRI(nk schema.NodeKind) (schema.IRI, bool) {
	iri, ok := iriByNodeKind[nk]
	return iri, ok
}
