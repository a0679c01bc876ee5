package turtle

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/c360studio/shaclex/schema"
)

const genderTurtle = `@prefix sh: <http://www.w3.org/ns/shacl#> .
@prefix rdfs: <http://www.w3.org/2000/01/rdf-schema#> .
@prefix xsd: <http://www.w3.org/2001/XMLSchema#> .
@prefix ex: <http://example.org/> .

ex:GenderShape a sh:NodeShape ;
    sh:targetClass ex:Gender ;
    sh:property [
        sh:path rdfs:label ;
        sh:datatype xsd:string ;
        sh:minCount 1 ;
        sh:maxCount 1
    ] .
`

func TestParseMinimalShape(t *testing.T) {
	s, err := Parse([]byte(genderTurtle))
	require.NoError(t, err)
	require.Len(t, s.Shapes, 1)

	sh := s.Shapes[0]
	assert.Equal(t, schema.IRI("http://example.org/GenderShape"), sh.ID)
	assert.Equal(t, []schema.IRI{"http://example.org/Gender"}, sh.TargetClasses)

	require.Len(t, sh.Properties, 1)
	ps := sh.Properties[0]
	assert.Equal(t, schema.IRI("http://www.w3.org/2000/01/rdf-schema#label"), ps.Path.IRI)
	assert.False(t, ps.Path.Inverse)
	assert.Equal(t, schema.IRI("http://www.w3.org/2001/XMLSchema#string"), ps.Datatype)
	require.NotNil(t, ps.MinCount)
	assert.Equal(t, 1, *ps.MinCount)
	require.NotNil(t, ps.MaxCount)
	assert.Equal(t, 1, *ps.MaxCount)

	iri, ok := s.Prefixes.Expand("ex")
	require.True(t, ok)
	assert.Equal(t, "http://example.org/", iri)
}

func TestParseInversePath(t *testing.T) {
	src := `@prefix sh: <http://www.w3.org/ns/shacl#> .
@prefix ex: <http://example.org/> .

ex:ChildShape a sh:NodeShape ;
    sh:property [ sh:path [ sh:inversePath ex:hasParent ] ] .
`
	s, err := Parse([]byte(src))
	require.NoError(t, err)
	require.Len(t, s.Shapes, 1)
	require.Len(t, s.Shapes[0].Properties, 1)

	ps := s.Shapes[0].Properties[0]
	assert.True(t, ps.Path.Inverse)
	assert.Equal(t, schema.IRI("http://example.org/hasParent"), ps.Path.IRI)
}

func TestParseConstraintKinds(t *testing.T) {
	src := `@prefix sh: <http://www.w3.org/ns/shacl#> .
@prefix ex: <http://example.org/> .

ex:PlaceShape a sh:NodeShape ;
    sh:targetClass ex:Place ;
    sh:property [ sh:path ex:name ; sh:nodeKind sh:Literal ] ;
    sh:property [ sh:path ex:seeAlso ; sh:nodeKind sh:IRI ] ;
    sh:property [ sh:path ex:status ; sh:in ( ex:Active "retired" ) ] ;
    sh:property [ sh:path ex:country ; sh:class ex:Country ] ;
    sh:property [ sh:path ex:id ; sh:pattern "^http://example.org/ids/" ] ;
    sh:property [ sh:path ex:flag ; sh:hasValue ex:Flagged ] .
`
	s, err := Parse([]byte(src))
	require.NoError(t, err)
	require.Len(t, s.Shapes, 1)
	sh := s.Shapes[0]
	require.Len(t, sh.Properties, 6)

	byPath := map[schema.IRI]*schema.PropertyShape{}
	for _, ps := range sh.Properties {
		byPath[ps.Path.IRI] = ps
	}

	assert.Equal(t, schema.NodeKindLiteral, byPath["http://example.org/name"].NodeKind)
	assert.Equal(t, schema.NodeKindIRI, byPath["http://example.org/seeAlso"].NodeKind)
	assert.Equal(t, schema.IRI("http://example.org/Country"), byPath["http://example.org/country"].ClassRef)
	assert.Equal(t, "^http://example.org/ids/", byPath["http://example.org/id"].Pattern)
	assert.Equal(t, schema.IRI("http://example.org/Flagged"), byPath["http://example.org/flag"].HasValue)

	in := byPath["http://example.org/status"].In
	require.Len(t, in, 2)
	assert.Equal(t, schema.IRI("http://example.org/Active"), in[0])
	assert.Equal(t, schema.Literal{Value: "retired"}, in[1])
}

func TestParseOrOfClassWrappers(t *testing.T) {
	src := `@prefix sh: <http://www.w3.org/ns/shacl#> .
@prefix ex: <http://example.org/> .

ex:EventShape a sh:NodeShape ;
    sh:property [
        sh:path ex:location ;
        sh:or ( [ sh:class ex:City ] [ sh:class ex:Country ] )
    ] .
`
	s, err := Parse([]byte(src))
	require.NoError(t, err)
	ps := s.Shapes[0].Properties[0]
	assert.Equal(t, []schema.IRI{"http://example.org/City", "http://example.org/Country"}, ps.Or)
}

func TestParseClosedWithIgnoredProperties(t *testing.T) {
	src := `@prefix sh: <http://www.w3.org/ns/shacl#> .
@prefix rdf: <http://www.w3.org/1999/02/22-rdf-syntax-ns#> .
@prefix ex: <http://example.org/> .

ex:StrictShape a sh:NodeShape ;
    sh:closed true ;
    sh:ignoredProperties ( rdf:type ex:note ) ;
    sh:property [ sh:path ex:name ] .
`
	s, err := Parse([]byte(src))
	require.NoError(t, err)
	sh := s.Shapes[0]
	assert.True(t, sh.Closed)
	assert.Equal(t, []schema.IRI{
		"http://www.w3.org/1999/02/22-rdf-syntax-ns#type",
		"http://example.org/note",
	}, sh.IgnoredProperties)
}

func TestParseMissingPath(t *testing.T) {
	src := `@prefix sh: <http://www.w3.org/ns/shacl#> .
@prefix ex: <http://example.org/> .

ex:BadShape a sh:NodeShape ;
    sh:property [ sh:minCount 1 ] .
`
	_, err := Parse([]byte(src))
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrMissingPath))
}

func TestParseUnrecognizedNodeKind(t *testing.T) {
	src := `@prefix sh: <http://www.w3.org/ns/shacl#> .
@prefix ex: <http://example.org/> .

ex:BadShape a sh:NodeShape ;
    sh:property [ sh:path ex:p ; sh:nodeKind ex:Bogus ] .
`
	_, err := Parse([]byte(src))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unrecognized node kind")
}

func TestParseShapeOrderIsStable(t *testing.T) {
	src := `@prefix sh: <http://www.w3.org/ns/shacl#> .
@prefix ex: <http://example.org/> .

ex:Zebra a sh:NodeShape ; sh:targetClass ex:Z .
ex:Aardvark a sh:NodeShape ; sh:targetClass ex:A .
`
	for range 5 {
		s, err := Parse([]byte(src))
		require.NoError(t, err)
		require.Len(t, s.Shapes, 2)
		assert.Equal(t, schema.IRI("http://example.org/Aardvark"), s.Shapes[0].ID)
		assert.Equal(t, schema.IRI("http://example.org/Zebra"), s.Shapes[1].ID)
	}
}

func TestScanPrefixes(t *testing.T) {
	table := ScanPrefixes(`@prefix ex: <http://example.org/> .
PREFIX wdt: <http://www.wikidata.org/prop/direct/>
# @prefix not: <http://not-a-declaration.example/> . inside a comment line is still harmless
`)
	iri, ok := table.Expand("ex")
	require.True(t, ok)
	assert.Equal(t, "http://example.org/", iri)

	iri, ok = table.Expand("wdt")
	require.True(t, ok)
	assert.Equal(t, "http://www.wikidata.org/prop/direct/", iri)

	// Well-known defaults remain available.
	_, ok = table.Expand("sh")
	assert.True(t, ok)
}
