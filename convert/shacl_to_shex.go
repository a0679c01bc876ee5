package convert

import (
	"slices"
	"strings"

	"github.com/c360studio/shaclex/schema"
	"github.com/c360studio/shaclex/vocabulary/rdfvoc"
)

// ToShEx rewrites a SHACL schema as a ShEx schema. Each node shape
// becomes a named shape; sh:or constraints, and sh:class constraints
// that reference undeclared classes, are expressed through auxiliary
// shapes minted by a deterministic allocator and emitted directly after
// the shape that first needed them.
func ToShEx(src *schema.SHACLSchema) (*schema.ShExSchema, []Warning) {
	c := &shexBuilder{
		src:     src,
		alloc:   newNameAllocator(),
		names:   make(map[schema.IRI]schema.IRI),
		byClass: make(map[schema.IRI]schema.IRI),
	}

	// Reserve every principal name first so auxiliary shapes can never
	// shadow a shape that appears later in the schema.
	for _, sh := range src.Shapes {
		name := shexShapeName(sh, c.alloc)
		c.names[sh.ID] = name
		for _, target := range sh.TargetClasses {
			if _, ok := c.byClass[target]; !ok {
				c.byClass[target] = name
			}
		}
	}

	out := &schema.ShExSchema{Prefixes: shexPrefixes(src)}
	for _, sh := range src.Shapes {
		shape := c.convertNodeShape(sh)
		out.Shapes = append(out.Shapes, shape)
		// Auxiliary shapes follow the shape that minted them.
		out.Shapes = append(out.Shapes, c.pending...)
		c.pending = nil
		if out.Start == "" {
			out.Start = shape.ID
		}
	}

	return out, c.warnings
}

type shexBuilder struct {
	src   *schema.SHACLSchema
	alloc *nameAllocator
	// names maps SHACL shape ids to their ShEx shape names.
	names map[schema.IRI]schema.IRI
	// byClass maps declared target classes to the owning shape name.
	byClass  map[schema.IRI]schema.IRI
	pending  []*schema.Shape
	warnings []Warning
}

func (c *shexBuilder) convertNodeShape(sh *schema.NodeShape) *schema.Shape {
	var constraints []*schema.TripleConstraint

	if len(sh.TargetClasses) > 0 {
		values := make([]schema.ValueSetItem, len(sh.TargetClasses))
		for i, target := range sh.TargetClasses {
			values[i] = target
		}
		card := schema.DefaultCardinality()
		if len(sh.TargetClasses) > 1 {
			card = schema.Cardinality{Min: 1, Max: schema.Unbounded}
		}
		constraints = append(constraints, &schema.TripleConstraint{
			Predicate:   rdfvoc.Type,
			Value:       &schema.NodeConstraint{Values: values},
			Cardinality: card,
		})
	}

	for _, ps := range sh.Properties {
		// An explicit rdf:type property restating the target class is
		// already covered by the constraint above.
		if ps.Path.IRI == rdfvoc.Type && !ps.Path.Inverse {
			if class, ok := ps.HasValue.(schema.IRI); ok && slices.Contains(sh.TargetClasses, class) {
				continue
			}
		}
		constraints = append(constraints, c.convertPropertyShape(ps))
	}

	out := &schema.Shape{
		ID:     c.names[sh.ID],
		Extra:  []schema.IRI{rdfvoc.Type},
		Closed: sh.Closed,
	}
	switch len(constraints) {
	case 0:
	case 1:
		out.Expression = constraints[0]
	default:
		exprs := make([]schema.TripleExpr, len(constraints))
		for i, tc := range constraints {
			exprs[i] = tc
		}
		out.Expression = &schema.EachOf{Expressions: exprs}
	}
	if len(sh.IgnoredProperties) > 0 {
		c.warnings = append(c.warnings, warnf(WarnUnsupportedConstruct,
			"sh:ignoredProperties on %s has no ShEx counterpart", sh.ID))
	}
	return out
}

func (c *shexBuilder) convertPropertyShape(ps *schema.PropertyShape) *schema.TripleConstraint {
	tc := &schema.TripleConstraint{
		Predicate:   ps.Path.IRI,
		Inverse:     ps.Path.Inverse,
		Cardinality: convertCardinality(ps.MinCount, ps.MaxCount),
	}

	switch {
	case ps.HasValue != nil:
		tc.Value = &schema.NodeConstraint{Values: []schema.ValueSetItem{ps.HasValue}}

	case len(ps.In) > 0:
		tc.Value = &schema.NodeConstraint{Values: ps.In}

	case len(ps.Or) > 0:
		name := c.auxShape(ps.Or, upperFirst(ps.Path.IRI.LocalName()))
		tc.Value = &schema.ShapeRef{Name: name}

	case ps.ClassRef != "":
		tc.Value = &schema.ShapeRef{Name: c.classShape(ps.ClassRef)}

	case ps.NodeRef != "":
		if name, ok := c.names[ps.NodeRef]; ok {
			tc.Value = &schema.ShapeRef{Name: name}
		} else {
			tc.Value = &schema.ShapeRef{Name: schema.IRI(ps.NodeRef.LocalName())}
		}

	case ps.NodeKind != "":
		tc.Value = &schema.NodeConstraint{NodeKind: ps.NodeKind}

	case ps.Datatype != "":
		tc.Value = &schema.NodeConstraint{Datatype: ps.Datatype}

	case ps.Pattern != "":
		if stem, ok := patternToStem(ps.Pattern); ok {
			tc.Value = &schema.NodeConstraint{Values: []schema.ValueSetItem{schema.IriStem{Stem: stem}}}
		} else {
			c.warnings = append(c.warnings, warnf(WarnDroppedPattern,
				"sh:pattern %q on %s is not an IRI-stem pattern", ps.Pattern, ps.Path.IRI))
		}
	}

	return tc
}

// classShape resolves sh:class: a declared shape id or target class
// maps to that shape; anything else gets an auxiliary shape.
func (c *shexBuilder) classShape(class schema.IRI) schema.IRI {
	if name, ok := c.names[class]; ok {
		return name
	}
	if name, ok := c.byClass[class]; ok {
		return name
	}
	return c.auxShape([]schema.IRI{class}, class.LocalName())
}

// auxShape returns the shape expressing "rdf:type within this class
// set", minting it on first use.
func (c *shexBuilder) auxShape(classes []schema.IRI, seed string) schema.IRI {
	name, minted := c.alloc.auxFor(classes, seed)
	if !minted {
		return name
	}
	values := make([]schema.ValueSetItem, len(classes))
	for i, class := range classes {
		values[i] = class
	}
	c.pending = append(c.pending, &schema.Shape{
		ID:    name,
		Extra: []schema.IRI{rdfvoc.Type},
		Expression: &schema.TripleConstraint{
			Predicate:   rdfvoc.Type,
			Value:       &schema.NodeConstraint{Values: values},
			Cardinality: schema.DefaultCardinality(),
		},
	})
	return name
}

// convertCardinality maps SHACL counts to an explicit ShEx
// cardinality. SHACL's default is (0,unbounded); when neither count is
// present the braced {0,*} form is used so the reverse conversion can
// restore the absent counts.
func convertCardinality(min, max *int) schema.Cardinality {
	if min == nil && max == nil {
		return schema.Cardinality{Min: 0, Max: schema.Unbounded, Braced: true}
	}
	c := schema.Cardinality{Min: 0, Max: schema.Unbounded}
	if min != nil {
		c.Min = *min
	}
	if max != nil {
		c.Max = *max
	}
	switch {
	case c.Min == 1 && c.Max == 1:
	case c.Min == 0 && c.Max == 1:
	case c.Min == 0 && c.Max == schema.Unbounded:
	case c.Min == 1 && c.Max == schema.Unbounded:
	default:
		c.Braced = true
	}
	return c
}

// shexPrefixes builds the output prefix table: the well-known ShEx
// namespaces plus every source prefix, except the SHACL namespace
// which has no business in ShExC output.
func shexPrefixes(src *schema.SHACLSchema) *schema.PrefixTable {
	out := schema.NewPrefixTable()
	for _, p := range schema.WellKnownPrefixes().Entries() {
		if p.Name == "sh" {
			continue
		}
		out.Add(p.Name, p.IRI)
	}
	if src.Prefixes != nil {
		for _, p := range src.Prefixes.Entries() {
			if p.Name == "sh" || strings.HasPrefix(p.IRI, "http://www.w3.org/ns/shacl") {
				continue
			}
			out.Add(p.Name, p.IRI)
		}
	}
	return out
}
