package turtle

import (
	"fmt"
	"strings"

	rdf2go "github.com/deiu/rdf2go"

	"github.com/c360studio/shaclex/schema"
	"github.com/c360studio/shaclex/vocabulary/rdfvoc"
	"github.com/c360studio/shaclex/vocabulary/shvoc"
	"github.com/c360studio/shaclex/vocabulary/xsdvoc"
)

// Emit renders a SHACL schema as Turtle text. Output is deterministic:
// prefixes in lexicographic order, shapes in model order, and within a
// subject rdf:type first, then targets, then property blocks in
// definition order.
func Emit(s *schema.SHACLSchema) string {
	w := &writer{prefixes: s.Prefixes}
	if w.prefixes == nil {
		w.prefixes = schema.WellKnownPrefixes()
	}

	for _, p := range w.prefixes.Sorted() {
		fmt.Fprintf(&w.sb, "@prefix %s: <%s> .\n", p.Name, p.IRI)
	}
	w.sb.WriteString("\n")

	for i, sh := range s.Shapes {
		if i > 0 {
			w.sb.WriteString("\n")
		}
		w.writeNodeShape(sh)
	}
	return w.sb.String()
}

type writer struct {
	sb       strings.Builder
	prefixes *schema.PrefixTable
}

func (w *writer) writeNodeShape(sh *schema.NodeShape) {
	var parts []string
	parts = append(parts, "a sh:NodeShape")

	for _, c := range sh.TargetClasses {
		parts = append(parts, "sh:targetClass "+w.iri(c))
	}
	for _, n := range sh.TargetNodes {
		parts = append(parts, "sh:targetNode "+w.iri(n))
	}
	if sh.Closed {
		parts = append(parts, "sh:closed true")
	}
	if len(sh.IgnoredProperties) > 0 {
		items := make([]string, len(sh.IgnoredProperties))
		for i, p := range sh.IgnoredProperties {
			items[i] = w.iri(p)
		}
		parts = append(parts, "sh:ignoredProperties ( "+strings.Join(items, " ")+" )")
	}
	for _, ps := range sh.Properties {
		parts = append(parts, "sh:property "+w.propertyBlock(ps))
	}

	w.sb.WriteString(w.subject(sh.ID))
	w.sb.WriteString(" ")
	w.sb.WriteString(parts[0])
	for _, p := range parts[1:] {
		w.sb.WriteString(" ;\n    ")
		w.sb.WriteString(p)
	}
	w.sb.WriteString(" .\n")
}

// propertyBlock renders a property shape as an inline blank node.
func (w *writer) propertyBlock(ps *schema.PropertyShape) string {
	var parts []string

	if ps.Path.Inverse {
		parts = append(parts, "sh:path [ sh:inversePath "+w.iri(ps.Path.IRI)+" ]")
	} else {
		parts = append(parts, "sh:path "+w.iri(ps.Path.IRI))
	}
	if ps.Datatype != "" {
		parts = append(parts, "sh:datatype "+w.iri(ps.Datatype))
	}
	if ps.ClassRef != "" {
		parts = append(parts, "sh:class "+w.iri(ps.ClassRef))
	}
	if ps.NodeRef != "" {
		parts = append(parts, "sh:node "+w.iri(ps.NodeRef))
	}
	if ps.NodeKind != "" {
		if iri, ok := shvoc.NodeKindIRI(ps.NodeKind); ok {
			parts = append(parts, "sh:nodeKind "+w.iri(iri))
		}
	}
	if ps.MinCount != nil {
		parts = append(parts, fmt.Sprintf("sh:minCount %d", *ps.MinCount))
	}
	if ps.MaxCount != nil {
		parts = append(parts, fmt.Sprintf("sh:maxCount %d", *ps.MaxCount))
	}
	if ps.HasValue != nil {
		parts = append(parts, "sh:hasValue "+w.value(ps.HasValue))
	}
	if len(ps.In) > 0 {
		items := make([]string, len(ps.In))
		for i, v := range ps.In {
			items[i] = w.value(v)
		}
		parts = append(parts, "sh:in ( "+strings.Join(items, " ")+" )")
	}
	if ps.Pattern != "" {
		parts = append(parts, fmt.Sprintf("sh:pattern %q", ps.Pattern))
	}
	if len(ps.Or) > 0 {
		items := make([]string, len(ps.Or))
		for i, c := range ps.Or {
			items[i] = "[ sh:class " + w.iri(c) + " ]"
		}
		parts = append(parts, "sh:or ( "+strings.Join(items, " ")+" )")
	}

	return "[ " + strings.Join(parts, " ; ") + " ]"
}

func (w *writer) subject(id schema.IRI) string {
	if id.IsBlank() {
		return string(id)
	}
	return w.iri(id)
}

func (w *writer) iri(iri schema.IRI) string {
	if pname, ok := w.prefixes.Compact(string(iri)); ok {
		return pname
	}
	return "<" + string(iri) + ">"
}

func (w *writer) value(v schema.ValueSetItem) string {
	switch item := v.(type) {
	case schema.IRI:
		return w.iri(item)
	case schema.Literal:
		s := fmt.Sprintf("%q", item.Value)
		if item.Datatype != "" && item.Datatype != xsdvoc.String {
			s += "^^" + w.iri(item.Datatype)
		} else if item.Language != "" {
			s += "@" + item.Language
		}
		return s
	case schema.IriStem:
		return "<" + item.Stem + ">"
	}
	return `""`
}

// BuildGraph assembles the triple bag for a SHACL schema, minting
// sequential blank-node labels for property shapes and list cells.
// The bag form feeds tooling that wants triples rather than text.
func BuildGraph(s *schema.SHACLSchema) *rdf2go.Graph {
	b := &graphBuilder{g: rdf2go.NewGraph("")}
	for _, sh := range s.Shapes {
		b.addNodeShape(sh)
	}
	return b.g
}

type graphBuilder struct {
	g    *rdf2go.Graph
	next int
}

func (b *graphBuilder) blank() rdf2go.Term {
	t := rdf2go.NewBlankNode(fmt.Sprintf("b%d", b.next))
	b.next++
	return t
}

func (b *graphBuilder) subject(id schema.IRI) rdf2go.Term {
	if id.IsBlank() {
		return rdf2go.NewBlankNode(strings.TrimPrefix(string(id), "_:"))
	}
	return rdf2go.NewResource(string(id))
}

func (b *graphBuilder) addNodeShape(sh *schema.NodeShape) {
	subj := b.subject(sh.ID)
	b.g.AddTriple(subj, res(rdfvoc.Type), res(shvoc.NodeShape))

	for _, c := range sh.TargetClasses {
		b.g.AddTriple(subj, res(shvoc.TargetClass), res(c))
	}
	for _, n := range sh.TargetNodes {
		b.g.AddTriple(subj, res(shvoc.TargetNode), res(n))
	}
	if sh.Closed {
		b.g.AddTriple(subj, res(shvoc.Closed), rdf2go.NewLiteralWithDatatype("true", res(xsdvoc.Boolean)))
	}
	if len(sh.IgnoredProperties) > 0 {
		terms := make([]rdf2go.Term, len(sh.IgnoredProperties))
		for i, p := range sh.IgnoredProperties {
			terms[i] = res(p)
		}
		b.g.AddTriple(subj, res(shvoc.IgnoredProperties), b.list(terms))
	}
	for _, ps := range sh.Properties {
		b.addPropertyShape(subj, ps)
	}
}

func (b *graphBuilder) addPropertyShape(subj rdf2go.Term, ps *schema.PropertyShape) {
	prop := b.blank()
	b.g.AddTriple(subj, res(shvoc.Property), prop)

	if ps.Path.Inverse {
		pathNode := b.blank()
		b.g.AddTriple(prop, res(shvoc.Path), pathNode)
		b.g.AddTriple(pathNode, res(shvoc.InversePath), res(ps.Path.IRI))
	} else {
		b.g.AddTriple(prop, res(shvoc.Path), res(ps.Path.IRI))
	}

	if ps.Datatype != "" {
		b.g.AddTriple(prop, res(shvoc.Datatype), res(ps.Datatype))
	}
	if ps.ClassRef != "" {
		b.g.AddTriple(prop, res(shvoc.Class), res(ps.ClassRef))
	}
	if ps.NodeRef != "" {
		b.g.AddTriple(prop, res(shvoc.Node), res(ps.NodeRef))
	}
	if ps.NodeKind != "" {
		if iri, ok := shvoc.NodeKindIRI(ps.NodeKind); ok {
			b.g.AddTriple(prop, res(shvoc.NodeKind), res(iri))
		}
	}
	if ps.MinCount != nil {
		b.g.AddTriple(prop, res(shvoc.MinCount), intLiteral(*ps.MinCount))
	}
	if ps.MaxCount != nil {
		b.g.AddTriple(prop, res(shvoc.MaxCount), intLiteral(*ps.MaxCount))
	}
	if ps.HasValue != nil {
		b.g.AddTriple(prop, res(shvoc.HasValue), valueTerm(ps.HasValue))
	}
	if len(ps.In) > 0 {
		terms := make([]rdf2go.Term, len(ps.In))
		for i, v := range ps.In {
			terms[i] = valueTerm(v)
		}
		b.g.AddTriple(prop, res(shvoc.In), b.list(terms))
	}
	if ps.Pattern != "" {
		b.g.AddTriple(prop, res(shvoc.Pattern), rdf2go.NewLiteral(ps.Pattern))
	}
	if len(ps.Or) > 0 {
		members := make([]rdf2go.Term, len(ps.Or))
		for i, c := range ps.Or {
			wrapper := b.blank()
			b.g.AddTriple(wrapper, res(shvoc.Class), res(c))
			members[i] = wrapper
		}
		b.g.AddTriple(prop, res(shvoc.Or), b.list(members))
	}
}

// list builds an rdf:first/rdf:rest chain and returns its head.
func (b *graphBuilder) list(items []rdf2go.Term) rdf2go.Term {
	if len(items) == 0 {
		return res(rdfvoc.Nil)
	}
	head := b.blank()
	cur := head
	for i, item := range items {
		b.g.AddTriple(cur, res(rdfvoc.First), item)
		if i == len(items)-1 {
			b.g.AddTriple(cur, res(rdfvoc.Rest), res(rdfvoc.Nil))
		} else {
			next := b.blank()
			b.g.AddTriple(cur, res(rdfvoc.Rest), next)
			cur = next
		}
	}
	return head
}

func intLiteral(n int) rdf2go.Term {
	return rdf2go.NewLiteralWithDatatype(fmt.Sprintf("%d", n), res(xsdvoc.Integer))
}

func valueTerm(v schema.ValueSetItem) rdf2go.Term {
	switch item := v.(type) {
	case schema.IRI:
		return res(item)
	case schema.Literal:
		switch {
		case item.Datatype != "":
			return rdf2go.NewLiteralWithDatatype(item.Value, res(item.Datatype))
		case item.Language != "":
			return rdf2go.NewLiteralWithLanguage(item.Value, item.Language)
		default:
			return rdf2go.NewLiteral(item.Value)
		}
	case schema.IriStem:
		return res(schema.IRI(item.Stem))
	}
	return rdf2go.NewLiteral("")
}
