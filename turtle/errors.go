package turtle

import "errors"

// Structural errors reported while materializing a SHACL schema from a
// triple graph.
var (
	// ErrMissingPath is returned for a property shape without sh:path.
	ErrMissingPath = errors.New("property shape has no sh:path")

	// ErrMalformedList is returned when an RDF collection does not
	// terminate in rdf:nil or a cell lacks rdf:first/rdf:rest.
	ErrMalformedList = errors.New("malformed RDF list")
)
