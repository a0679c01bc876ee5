package translate_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/c360studio/shaclex/translate"
)

const genderTurtle = `@prefix sh: <http://www.w3.org/ns/shacl#> .
@prefix rdfs: <http://www.w3.org/2000/01/rdf-schema#> .
@prefix xsd: <http://www.w3.org/2001/XMLSchema#> .
@prefix ex: <http://example.org/> .

ex:GenderShape a sh:NodeShape ;
    sh:targetClass ex:GenderClass ;
    sh:property [
        sh:path rdfs:label ;
        sh:datatype xsd:string ;
        sh:minCount 1 ;
        sh:maxCount 1
    ] .
`

const personShExC = `PREFIX ex: <http://example.org/>

start = @<Person>

<Person> EXTRA rdf:type {
    rdf:type [ex:Person] ;
    ex:name xsd:string ;
    ex:homepage IRI ?
}
`

func TestDetectDirection(t *testing.T) {
	dir, err := translate.DetectDirection("shapes.ttl")
	require.NoError(t, err)
	assert.Equal(t, translate.SHACLToShEx, dir)

	dir, err = translate.DetectDirection("shapes.turtle")
	require.NoError(t, err)
	assert.Equal(t, translate.SHACLToShEx, dir)

	dir, err = translate.DetectDirection("schema.shex")
	require.NoError(t, err)
	assert.Equal(t, translate.ShExToSHACL, dir)

	_, err = translate.DetectDirection("schema.json")
	assert.Error(t, err)
}

func TestSHACLToShExEndToEnd(t *testing.T) {
	result, err := translate.Run([]byte(genderTurtle), translate.SHACLToShEx, translate.Options{})
	require.NoError(t, err)
	assert.Empty(t, result.Warnings)

	assert.Contains(t, result.Output, "<Gender> EXTRA rdf:type {")
	assert.Contains(t, result.Output, "rdf:type [ex:GenderClass]")
	assert.Contains(t, result.Output, "rdfs:label xsd:string")
	assert.Contains(t, result.Output, "start = @<Gender>")
}

func TestShExToSHACLEndToEnd(t *testing.T) {
	result, err := translate.Run([]byte(personShExC), translate.ShExToSHACL, translate.Options{})
	require.NoError(t, err)
	assert.Empty(t, result.Warnings)

	assert.Contains(t, result.Output, "<http://shaclshapes.org/PersonShape> a sh:NodeShape")
	assert.Contains(t, result.Output, "sh:targetClass ex:Person")
	assert.Contains(t, result.Output, "sh:path ex:name ; sh:datatype xsd:string ; sh:minCount 1 ; sh:maxCount 1")
	assert.Contains(t, result.Output, "sh:path ex:homepage ; sh:nodeKind sh:IRI ; sh:minCount 0 ; sh:maxCount 1")
}

func TestTranslationIsDeterministic(t *testing.T) {
	first, err := translate.Run([]byte(genderTurtle), translate.SHACLToShEx, translate.Options{})
	require.NoError(t, err)
	for range 5 {
		again, err := translate.Run([]byte(genderTurtle), translate.SHACLToShEx, translate.Options{})
		require.NoError(t, err)
		assert.Equal(t, first.Output, again.Output)
	}
}

// A full cycle: Turtle in, ShExC out, Turtle again. Target classes
// survive; only the shape IRI base changes.
func TestFullRoundTrip(t *testing.T) {
	toShex, err := translate.Run([]byte(genderTurtle), translate.SHACLToShEx, translate.Options{})
	require.NoError(t, err)

	back, err := translate.Run([]byte(toShex.Output), translate.ShExToSHACL,
		translate.Options{ShapeBase: "http://example.org/"})
	require.NoError(t, err)

	assert.Contains(t, back.Output, "sh:targetClass ex:GenderClass")
	assert.Contains(t, back.Output, "sh:path rdfs:label ; sh:datatype xsd:string ; sh:minCount 1 ; sh:maxCount 1")
}

func TestParseErrorsPropagate(t *testing.T) {
	_, err := translate.Run([]byte("<A> { nope:p . }"), translate.ShExToSHACL, translate.Options{})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown prefix")

	_, err = translate.Run([]byte("not turtle at all {{{"), translate.SHACLToShEx, translate.Options{})
	assert.Error(t, err)
}

func TestExtraPrefixesAppearInOutput(t *testing.T) {
	result, err := translate.Run([]byte(genderTurtle), translate.SHACLToShEx, translate.Options{
		ExtraPrefixes: map[string]string{"wdt": "http://www.wikidata.org/prop/direct/"},
	})
	require.NoError(t, err)
	assert.Contains(t, result.Output, "PREFIX wdt: <http://www.wikidata.org/prop/direct/>")
}
