package shexc

import (
	"fmt"
	"strings"

	"github.com/c360studio/shaclex/schema"
)

// Serialize pretty-prints a ShEx schema as ShExC. Output is
// deterministic: prefix directives in lexicographic order, shapes in
// model order, one triple constraint per line.
func Serialize(s *schema.ShExSchema) string {
	var sb strings.Builder

	prefixes := s.Prefixes
	if prefixes == nil {
		prefixes = schema.NewPrefixTable()
	}

	for _, p := range prefixes.Sorted() {
		fmt.Fprintf(&sb, "PREFIX %s: <%s>\n", p.Name, p.IRI)
	}
	if s.Base != "" {
		fmt.Fprintf(&sb, "BASE <%s>\n", s.Base)
	}
	if len(prefixes.Entries()) > 0 || s.Base != "" {
		sb.WriteString("\n")
	}

	if s.Start != "" {
		fmt.Fprintf(&sb, "start = @%s\n\n", shapeLabel(s.Start, prefixes))
	}

	for i, sh := range s.Shapes {
		if i > 0 {
			sb.WriteString("\n")
		}
		writeShape(&sb, sh, prefixes)
	}

	return sb.String()
}

func writeShape(sb *strings.Builder, sh *schema.Shape, prefixes *schema.PrefixTable) {
	sb.WriteString(shapeLabel(sh.ID, prefixes))
	if len(sh.Extra) > 0 {
		sb.WriteString(" EXTRA")
		for _, e := range sh.Extra {
			sb.WriteString(" ")
			sb.WriteString(compactIRI(e, prefixes))
		}
	}
	if sh.Closed {
		sb.WriteString(" CLOSED")
	}

	tcs := sh.TripleConstraints()
	if len(tcs) == 0 {
		sb.WriteString(" { }\n")
		return
	}

	sb.WriteString(" {\n")
	for i, tc := range tcs {
		sb.WriteString("    ")
		sb.WriteString(formatTripleConstraint(tc, prefixes))
		if i < len(tcs)-1 {
			sb.WriteString(" ;")
		}
		sb.WriteString("\n")
	}
	sb.WriteString("}\n")
}

func formatTripleConstraint(tc *schema.TripleConstraint, prefixes *schema.PrefixTable) string {
	var sb strings.Builder
	if tc.Inverse {
		sb.WriteString("^")
	}
	sb.WriteString(compactIRI(tc.Predicate, prefixes))
	sb.WriteString(" ")
	sb.WriteString(formatValueExpr(tc.Value, prefixes))
	if suffix := tc.Cardinality.String(); suffix != "" {
		sb.WriteString(" ")
		sb.WriteString(suffix)
	}
	return sb.String()
}

func formatValueExpr(value schema.ValueExpr, prefixes *schema.PrefixTable) string {
	switch v := value.(type) {
	case nil:
		return "."
	case *schema.ShapeRef:
		return "@" + shapeLabel(v.Name, prefixes)
	case *schema.ShapeOr:
		parts := make([]string, len(v.Names))
		for i, name := range v.Names {
			parts[i] = "@" + shapeLabel(name, prefixes)
		}
		return "(" + strings.Join(parts, " OR ") + ")"
	case *schema.NodeConstraint:
		return formatNodeConstraint(v, prefixes)
	}
	return "."
}

func formatNodeConstraint(nc *schema.NodeConstraint, prefixes *schema.PrefixTable) string {
	if len(nc.Values) > 0 {
		parts := make([]string, len(nc.Values))
		for i, v := range nc.Values {
			parts[i] = formatValueSetItem(v, prefixes)
		}
		return "[" + strings.Join(parts, " ") + "]"
	}
	if nc.NodeKind != "" {
		switch nc.NodeKind {
		case schema.NodeKindIRI:
			return "IRI"
		case schema.NodeKindLiteral:
			return "LITERAL"
		case schema.NodeKindBlankNode:
			return "BNODE"
		case schema.NodeKindBlankNodeOrIRI:
			return "NONLITERAL"
		default:
			// Node kinds without a ShExC keyword degrade to the wildcard.
			return "."
		}
	}
	if nc.Datatype != "" {
		return compactIRI(nc.Datatype, prefixes)
	}
	return "."
}

func formatValueSetItem(v schema.ValueSetItem, prefixes *schema.PrefixTable) string {
	switch item := v.(type) {
	case schema.IRI:
		return compactIRI(item, prefixes)
	case schema.IriStem:
		return "<" + item.Stem + ">~"
	case schema.Literal:
		var sb strings.Builder
		sb.WriteString(`"`)
		sb.WriteString(escapeString(item.Value))
		sb.WriteString(`"`)
		if item.Datatype != "" {
			sb.WriteString("^^")
			sb.WriteString(compactIRI(item.Datatype, prefixes))
		} else if item.Language != "" {
			sb.WriteString("@")
			sb.WriteString(item.Language)
		}
		return sb.String()
	}
	return ""
}

// shapeLabel renders a shape id or reference target: prefixed when a
// namespace matches, <...> otherwise.
func shapeLabel(id schema.IRI, prefixes *schema.PrefixTable) string {
	if pname, ok := prefixes.Compact(string(id)); ok {
		return pname
	}
	return "<" + string(id) + ">"
}

// compactIRI renders an IRI as a prefixed name when a namespace
// matches, angle-bracketed otherwise.
func compactIRI(iri schema.IRI, prefixes *schema.PrefixTable) string {
	if pname, ok := prefixes.Compact(string(iri)); ok {
		return pname
	}
	return "<" + string(iri) + ">"
}

func escapeString(s string) string {
	s = strings.ReplaceAll(s, `\`, `\\`)
	s = strings.ReplaceAll(s, `"`, `\"`)
	s = strings.ReplaceAll(s, "\n", `\n`)
	s = strings.ReplaceAll(s, "\r", `\r`)
	s = strings.ReplaceAll(s, "\t", `\t`)
	return s
}
