package shexc

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/c360studio/shaclex/schema"
)

func personModel() *schema.ShExSchema {
	prefixes := schema.NewPrefixTable()
	prefixes.Add("schema", "http://schema.org/")
	prefixes.Add("rdf", "http://www.w3.org/1999/02/22-rdf-syntax-ns#")
	prefixes.Add("xsd", "http://www.w3.org/2001/XMLSchema#")

	rdfType := schema.IRI("http://www.w3.org/1999/02/22-rdf-syntax-ns#type")

	return &schema.ShExSchema{
		Prefixes: prefixes,
		Start:    "Person",
		Shapes: []*schema.Shape{
			{
				ID:    "Person",
				Extra: []schema.IRI{rdfType},
				Expression: &schema.EachOf{Expressions: []schema.TripleExpr{
					&schema.TripleConstraint{
						Predicate:   rdfType,
						Value:       &schema.NodeConstraint{Values: []schema.ValueSetItem{schema.IRI("http://schema.org/Person")}},
						Cardinality: schema.DefaultCardinality(),
					},
					&schema.TripleConstraint{
						Predicate:   "http://schema.org/name",
						Value:       &schema.NodeConstraint{Datatype: "http://www.w3.org/2001/XMLSchema#string"},
						Cardinality: schema.Cardinality{Min: 1, Max: 1},
					},
					&schema.TripleConstraint{
						Predicate:   "http://schema.org/birthPlace",
						Value:       &schema.ShapeRef{Name: "Place"},
						Cardinality: schema.Cardinality{Min: 0, Max: 1},
					},
				}},
			},
			{
				ID:    "Place",
				Extra: []schema.IRI{rdfType},
				Expression: &schema.TripleConstraint{
					Predicate:   rdfType,
					Value:       &schema.NodeConstraint{Values: []schema.ValueSetItem{schema.IRI("http://schema.org/Place")}},
					Cardinality: schema.DefaultCardinality(),
				},
			},
		},
	}
}

func TestSerialize(t *testing.T) {
	got := Serialize(personModel())

	want := `PREFIX rdf: <http://www.w3.org/1999/02/22-rdf-syntax-ns#>
PREFIX schema: <http://schema.org/>
PREFIX xsd: <http://www.w3.org/2001/XMLSchema#>

start = @<Person>

<Person> EXTRA rdf:type {
    rdf:type [schema:Person] ;
    schema:name xsd:string ;
    schema:birthPlace @<Place> ?
}

<Place> EXTRA rdf:type {
    rdf:type [schema:Place]
}
`
	assert.Equal(t, want, got)
}

func TestSerializeDeterministic(t *testing.T) {
	first := Serialize(personModel())
	for range 10 {
		assert.Equal(t, first, Serialize(personModel()))
	}
}

func TestSerializeClosedShape(t *testing.T) {
	prefixes := schema.NewPrefixTable()
	prefixes.Add("ex", "http://example.org/")
	s := &schema.ShExSchema{
		Prefixes: prefixes,
		Shapes: []*schema.Shape{{
			ID:     "A",
			Closed: true,
			Expression: &schema.TripleConstraint{
				Predicate:   "http://example.org/p",
				Cardinality: schema.Cardinality{Min: 1, Max: schema.Unbounded},
			},
		}},
	}

	got := Serialize(s)
	want := `PREFIX ex: <http://example.org/>

<A> CLOSED {
    ex:p . +
}
`
	assert.Equal(t, want, got)
}

func TestSerializeEmptyShape(t *testing.T) {
	s := &schema.ShExSchema{
		Prefixes: schema.NewPrefixTable(),
		Shapes:   []*schema.Shape{{ID: "Empty"}},
	}
	assert.Equal(t, "<Empty> { }\n", Serialize(s))
}

func TestSerializeValueSetItems(t *testing.T) {
	prefixes := schema.NewPrefixTable()
	prefixes.Add("ex", "http://example.org/")
	s := &schema.ShExSchema{
		Prefixes: prefixes,
		Shapes: []*schema.Shape{{
			ID: "A",
			Expression: &schema.TripleConstraint{
				Predicate: "http://example.org/status",
				Value: &schema.NodeConstraint{Values: []schema.ValueSetItem{
					schema.IRI("http://example.org/Active"),
					schema.Literal{Value: "said \"hi\""},
					schema.Literal{Value: "retired", Language: "en"},
					schema.IriStem{Stem: "http://example.org/people/"},
				}},
				Cardinality: schema.DefaultCardinality(),
			},
		}},
	}

	got := Serialize(s)
	assert.Contains(t, got, `ex:status [ex:Active "said \"hi\"" "retired"@en <http://example.org/people/>~]`)
}

// Emitted text must parse back to the same model.
func TestRoundTripParseSerialize(t *testing.T) {
	m := personModel()
	text := Serialize(m)

	parsed, err := Parse(text)
	require.NoError(t, err)

	assert.Equal(t, m.Start, parsed.Start)
	require.Len(t, parsed.Shapes, len(m.Shapes))
	for i := range m.Shapes {
		assert.Equal(t, m.Shapes[i].ID, parsed.Shapes[i].ID)
		assert.Equal(t, m.Shapes[i].Closed, parsed.Shapes[i].Closed)
		assert.Equal(t, m.Shapes[i].Extra, parsed.Shapes[i].Extra)
		assert.Equal(t, m.Shapes[i].TripleConstraints(), parsed.Shapes[i].TripleConstraints())
	}

	// And the second generation is byte-identical to the first.
	assert.Equal(t, text, Serialize(parsed))
}
