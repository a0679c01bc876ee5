package schema

import (
	"sort"
	"strings"
)

// Prefix binds a short name to a namespace IRI.
type Prefix struct {
	Name string
	IRI  string
}

// PrefixTable maps short prefixes to namespace IRIs. Insertion order is
// preserved; a later binding for the same name replaces the earlier one.
type PrefixTable struct {
	entries []Prefix
	byName  map[string]string
}

// NewPrefixTable returns an empty prefix table.
func NewPrefixTable() *PrefixTable {
	return &PrefixTable{byName: make(map[string]string)}
}

// WellKnownPrefixes returns a table preloaded with the namespaces the
// translator assumes: rdf, rdfs, xsd, sh and schema.
func WellKnownPrefixes() *PrefixTable {
	t := NewPrefixTable()
	t.Add("rdf", "http://www.w3.org/1999/02/22-rdf-syntax-ns#")
	t.Add("rdfs", "http://www.w3.org/2000/01/rdf-schema#")
	t.Add("xsd", "http://www.w3.org/2001/XMLSchema#")
	t.Add("sh", "http://www.w3.org/ns/shacl#")
	t.Add("schema", "http://schema.org/")
	return t
}

// Add binds name to iri, replacing any previous binding for name.
func (t *PrefixTable) Add(name, iri string) {
	if prev, ok := t.byName[name]; ok {
		if prev == iri {
			return
		}
		for i := range t.entries {
			if t.entries[i].Name == name {
				t.entries[i].IRI = iri
				break
			}
		}
	} else {
		t.entries = append(t.entries, Prefix{Name: name, IRI: iri})
	}
	t.byName[name] = iri
}

// Expand resolves a short prefix to its namespace IRI.
func (t *PrefixTable) Expand(name string) (string, bool) {
	iri, ok := t.byName[name]
	return iri, ok
}

// Compact rewrites an absolute IRI as prefix:local using the longest
// matching namespace. The second result is false when no namespace
// matches or the remainder is not a valid local part.
func (t *PrefixTable) Compact(iri string) (string, bool) {
	best := -1
	bestLen := -1
	for i, p := range t.entries {
		if strings.HasPrefix(iri, p.IRI) && len(p.IRI) > bestLen {
			local := iri[len(p.IRI):]
			if strings.ContainsAny(local, "/#:") {
				continue
			}
			best = i
			bestLen = len(p.IRI)
		}
	}
	if best < 0 || bestLen == 0 {
		return "", false
	}
	p := t.entries[best]
	return p.Name + ":" + iri[len(p.IRI):], true
}

// Entries returns the bindings in insertion order.
func (t *PrefixTable) Entries() []Prefix {
	out := make([]Prefix, len(t.entries))
	copy(out, t.entries)
	return out
}

// Sorted returns the bindings in lexicographic prefix order.
func (t *PrefixTable) Sorted() []Prefix {
	out := t.Entries()
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out
}

// Clone returns an independent copy of the table.
func (t *PrefixTable) Clone() *PrefixTable {
	c := NewPrefixTable()
	for _, p := range t.entries {
		c.Add(p.Name, p.IRI)
	}
	return c
}

// Merge adds every binding from other that is not already bound.
func (t *PrefixTable) Merge(other *PrefixTable) {
	if other == nil {
		return
	}
	for _, p := range other.entries {
		if _, ok := t.byName[p.Name]; !ok {
			t.Add(p.Name, p.IRI)
		}
	}
}
