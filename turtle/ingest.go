// Package turtle bridges the Turtle side of the translator: it walks
// an RDF triple graph into the SHACL model and renders a SHACL model
// back to Turtle text. Triple parsing is delegated to rdf2go; the work
// here is pattern-matching on the SHACL vocabulary.
package turtle

import (
	"bytes"
	"fmt"
	"sort"
	"strconv"
	"strings"

	rdf2go "github.com/deiu/rdf2go"

	"github.com/c360studio/shaclex/schema"
	"github.com/c360studio/shaclex/vocabulary/rdfvoc"
	"github.com/c360studio/shaclex/vocabulary/shvoc"
	"github.com/c360studio/shaclex/vocabulary/xsdvoc"
)

// listLimit bounds RDF list traversal so a cyclic rdf:rest chain is
// reported as malformed instead of looping.
const listLimit = 10000

// Parse reads a SHACL shapes graph from Turtle text.
func Parse(data []byte) (*schema.SHACLSchema, error) {
	g := rdf2go.NewGraph("")
	if err := g.Parse(bytes.NewReader(data), "text/turtle"); err != nil {
		return nil, fmt.Errorf("parse turtle: %w", err)
	}
	return FromGraph(g, ScanPrefixes(string(data)))
}

// FromGraph materializes a SHACL schema from a parsed triple graph.
// Node shapes are all subjects typed sh:NodeShape plus every object of
// sh:node that is itself the subject of at least one triple. Shape and
// constraint order is normalized so the result is
// independent of graph iteration order.
func FromGraph(g *rdf2go.Graph, prefixes *schema.PrefixTable) (*schema.SHACLSchema, error) {
	if prefixes == nil {
		prefixes = schema.WellKnownPrefixes()
	}

	subjects := make(map[string]rdf2go.Term)
	for _, t := range g.All(nil, res(rdfvoc.Type), res(shvoc.NodeShape)) {
		subjects[termID(t.Subject).String()] = t.Subject
	}
	for _, t := range g.All(nil, res(shvoc.Node), nil) {
		id := termID(t.Object).String()
		if _, ok := subjects[id]; !ok && g.One(t.Object, nil, nil) != nil {
			subjects[id] = t.Object
		}
	}

	ids := make([]string, 0, len(subjects))
	for id := range subjects {
		ids = append(ids, id)
	}
	sortShapeIDs(ids)

	shapes := make([]*schema.NodeShape, 0, len(ids))
	for _, id := range ids {
		sh, err := parseNodeShape(g, subjects[id])
		if err != nil {
			return nil, fmt.Errorf("shape %s: %w", id, err)
		}
		shapes = append(shapes, sh)
	}

	return &schema.SHACLSchema{Prefixes: prefixes, Shapes: shapes}, nil
}

// sortShapeIDs orders IRIs lexicographically with blank-node labels
// after all IRIs, which keeps output stable across parses.
func sortShapeIDs(ids []string) {
	sort.Slice(ids, func(i, j int) bool {
		bi, bj := strings.HasPrefix(ids[i], "_:"), strings.HasPrefix(ids[j], "_:")
		if bi != bj {
			return bj
		}
		return ids[i] < ids[j]
	})
}

func parseNodeShape(g *rdf2go.Graph, subject rdf2go.Term) (*schema.NodeShape, error) {
	sh := &schema.NodeShape{ID: termID(subject)}

	for _, t := range g.All(subject, res(shvoc.TargetClass), nil) {
		sh.TargetClasses = append(sh.TargetClasses, termID(t.Object))
	}
	sortIRIs(sh.TargetClasses)

	for _, t := range g.All(subject, res(shvoc.TargetNode), nil) {
		sh.TargetNodes = append(sh.TargetNodes, termID(t.Object))
	}
	sortIRIs(sh.TargetNodes)

	if t := g.One(subject, res(shvoc.Closed), nil); t != nil {
		sh.Closed = literalBool(t.Object)
	}

	if t := g.One(subject, res(shvoc.IgnoredProperties), nil); t != nil {
		items, err := listItems(g, t.Object)
		if err != nil {
			return nil, fmt.Errorf("sh:ignoredProperties: %w", err)
		}
		for _, item := range items {
			sh.IgnoredProperties = append(sh.IgnoredProperties, termID(item))
		}
	}

	for _, t := range g.All(subject, res(shvoc.Property), nil) {
		ps, err := parsePropertyShape(g, t.Object)
		if err != nil {
			return nil, err
		}
		sh.Properties = append(sh.Properties, ps)
	}
	sort.SliceStable(sh.Properties, func(i, j int) bool {
		return propertyKey(sh.Properties[i]) < propertyKey(sh.Properties[j])
	})

	return sh, nil
}

func parsePropertyShape(g *rdf2go.Graph, subject rdf2go.Term) (*schema.PropertyShape, error) {
	ps := &schema.PropertyShape{}

	pathTriple := g.One(subject, res(shvoc.Path), nil)
	if pathTriple == nil {
		return nil, ErrMissingPath
	}
	switch path := pathTriple.Object.(type) {
	case *rdf2go.Resource:
		ps.Path = schema.Path{IRI: schema.IRI(path.URI)}
	case *rdf2go.BlankNode:
		inv := g.One(pathTriple.Object, res(shvoc.InversePath), nil)
		if inv == nil {
			return nil, fmt.Errorf("%w: nested paths beyond sh:inversePath are not supported", ErrMissingPath)
		}
		ps.Path = schema.Path{IRI: termID(inv.Object), Inverse: true}
	default:
		return nil, ErrMissingPath
	}

	if t := g.One(subject, res(shvoc.Datatype), nil); t != nil {
		ps.Datatype = termID(t.Object)
	}

	if t := g.One(subject, res(shvoc.Class), nil); t != nil {
		switch class := t.Object.(type) {
		case *rdf2go.Resource:
			ps.ClassRef = schema.IRI(class.URI)
		case *rdf2go.BlankNode:
			// sh:class [ sh:or ( :A :B ) ] wraps a class disjunction.
			or, err := parseOrClasses(g, t.Object)
			if err != nil {
				return nil, err
			}
			ps.Or = or
		}
	}

	if t := g.One(subject, res(shvoc.Or), nil); t != nil && ps.Or == nil {
		or, err := parseOrClasses(g, subject)
		if err != nil {
			return nil, err
		}
		ps.Or = or
	}

	if t := g.One(subject, res(shvoc.Node), nil); t != nil {
		ps.NodeRef = termID(t.Object)
	}

	if t := g.One(subject, res(shvoc.NodeKind), nil); t != nil {
		nk, err := shvoc.NodeKindFromIRI(termID(t.Object))
		if err != nil {
			return nil, err
		}
		ps.NodeKind = nk
	}

	if t := g.One(subject, res(shvoc.MinCount), nil); t != nil {
		n, err := literalInt(t.Object)
		if err != nil {
			return nil, fmt.Errorf("sh:minCount: %w", err)
		}
		ps.MinCount = &n
	}
	if t := g.One(subject, res(shvoc.MaxCount), nil); t != nil {
		n, err := literalInt(t.Object)
		if err != nil {
			return nil, fmt.Errorf("sh:maxCount: %w", err)
		}
		ps.MaxCount = &n
	}

	if t := g.One(subject, res(shvoc.Pattern), nil); t != nil {
		ps.Pattern = t.Object.RawValue()
	}

	if t := g.One(subject, res(shvoc.HasValue), nil); t != nil {
		ps.HasValue = termValue(t.Object)
	}

	if t := g.One(subject, res(shvoc.In), nil); t != nil {
		items, err := listItems(g, t.Object)
		if err != nil {
			return nil, fmt.Errorf("sh:in: %w", err)
		}
		for _, item := range items {
			ps.In = append(ps.In, termValue(item))
		}
	}

	return ps, nil
}

// parseOrClasses reads an sh:or list whose members are either class
// IRIs or blank nodes carrying sh:class.
func parseOrClasses(g *rdf2go.Graph, subject rdf2go.Term) ([]schema.IRI, error) {
	head := g.One(subject, res(shvoc.Or), nil)
	if head == nil {
		return nil, nil
	}
	items, err := listItems(g, head.Object)
	if err != nil {
		return nil, fmt.Errorf("sh:or: %w", err)
	}
	classes := make([]schema.IRI, 0, len(items))
	for _, item := range items {
		switch member := item.(type) {
		case *rdf2go.Resource:
			classes = append(classes, schema.IRI(member.URI))
		case *rdf2go.BlankNode:
			if t := g.One(item, res(shvoc.Class), nil); t != nil {
				classes = append(classes, termID(t.Object))
			}
		}
	}
	return classes, nil
}

// listItems walks an RDF collection via rdf:first/rdf:rest to rdf:nil.
func listItems(g *rdf2go.Graph, head rdf2go.Term) ([]rdf2go.Term, error) {
	var items []rdf2go.Term
	cur := head
	for range listLimit {
		if r, ok := cur.(*rdf2go.Resource); ok {
			if schema.IRI(r.URI) == rdfvoc.Nil {
				return items, nil
			}
		}
		first := g.One(cur, res(rdfvoc.First), nil)
		rest := g.One(cur, res(rdfvoc.Rest), nil)
		if first == nil || rest == nil {
			return nil, ErrMalformedList
		}
		items = append(items, first.Object)
		cur = rest.Object
	}
	return nil, ErrMalformedList
}

func res(iri schema.IRI) rdf2go.Term {
	return rdf2go.NewResource(string(iri))
}

// termID maps a graph term to a model IRI; blank nodes keep their
// label with the "_:" marker.
func termID(t rdf2go.Term) schema.IRI {
	switch v := t.(type) {
	case *rdf2go.Resource:
		return schema.IRI(v.URI)
	case *rdf2go.BlankNode:
		return schema.IRI("_:" + v.ID)
	}
	return schema.IRI(t.RawValue())
}

// termValue maps a graph term to a value-set element.
func termValue(t rdf2go.Term) schema.ValueSetItem {
	switch v := t.(type) {
	case *rdf2go.Literal:
		lit := schema.Literal{Value: v.Value, Language: v.Language}
		if v.Datatype != nil {
			lit.Datatype = schema.IRI(v.Datatype.RawValue())
		}
		// RDF 1.1 gives simple literals the xsd:string datatype; the
		// model treats those as plain strings.
		if lit.Datatype == xsdvoc.String {
			lit.Datatype = ""
		}
		return lit
	default:
		return termID(t)
	}
}

func literalBool(t rdf2go.Term) bool {
	v := t.RawValue()
	return v == "true" || v == "1"
}

func literalInt(t rdf2go.Term) (int, error) {
	n, err := strconv.Atoi(t.RawValue())
	if err != nil {
		return 0, fmt.Errorf("expected integer literal, got %q", t.RawValue())
	}
	return n, nil
}

func sortIRIs(iris []schema.IRI) {
	sort.Slice(iris, func(i, j int) bool { return iris[i] < iris[j] })
}

// propertyKey is a stable fingerprint used to order property shapes
// independently of graph iteration order.
func propertyKey(ps *schema.PropertyShape) string {
	var sb strings.Builder
	sb.WriteString(string(ps.Path.IRI))
	if ps.Path.Inverse {
		sb.WriteString("^")
	}
	sb.WriteString("|")
	sb.WriteString(string(ps.Datatype))
	sb.WriteString("|")
	sb.WriteString(string(ps.ClassRef))
	sb.WriteString("|")
	sb.WriteString(string(ps.NodeRef))
	sb.WriteString("|")
	sb.WriteString(string(ps.NodeKind))
	if ps.MinCount != nil {
		fmt.Fprintf(&sb, "|min%d", *ps.MinCount)
	}
	if ps.MaxCount != nil {
		fmt.Fprintf(&sb, "|max%d", *ps.MaxCount)
	}
	sb.WriteString("|")
	sb.WriteString(ps.Pattern)
	return sb.String()
}
