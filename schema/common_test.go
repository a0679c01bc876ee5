package schema

import "testing"

func TestCardinalityString(t *testing.T) {
	tests := []struct {
		name string
		card Cardinality
		want string
	}{
		{"default", Cardinality{Min: 1, Max: 1}, ""},
		{"optional", Cardinality{Min: 0, Max: 1}, "?"},
		{"any", Cardinality{Min: 0, Max: Unbounded}, "*"},
		{"one or more", Cardinality{Min: 1, Max: Unbounded}, "+"},
		{"range", Cardinality{Min: 0, Max: 3, Braced: true}, "{0,3}"},
		{"exact", Cardinality{Min: 2, Max: 2, Braced: true}, "{2}"},
		{"open max", Cardinality{Min: 2, Max: Unbounded, Braced: true}, "{2,*}"},
		{"braced default range", Cardinality{Min: 0, Max: Unbounded, Braced: true}, "{0,*}"},
		{"braced exactly one collapses", Cardinality{Min: 1, Max: 1, Braced: true}, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.card.String(); got != tt.want {
				t.Errorf("String() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestIRILocalName(t *testing.T) {
	tests := []struct {
		iri  IRI
		want string
	}{
		{"http://schema.org/Person", "Person"},
		{"http://www.w3.org/1999/02/22-rdf-syntax-ns#type", "type"},
		{"http://shaclshapes.org/GenderShape", "GenderShape"},
		{"Person", "Person"},
	}
	for _, tt := range tests {
		if got := tt.iri.LocalName(); got != tt.want {
			t.Errorf("LocalName(%q) = %q, want %q", tt.iri, got, tt.want)
		}
	}
}

func TestIRIIsBlank(t *testing.T) {
	if !IRI("_:b0").IsBlank() {
		t.Error("expected _:b0 to be blank")
	}
	if IRI("http://example.org/x").IsBlank() {
		t.Error("expected IRI not to be blank")
	}
}
