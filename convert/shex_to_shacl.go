package convert

import (
	"strings"

	"github.com/c360studio/shaclex/schema"
	"github.com/c360studio/shaclex/vocabulary/rdfvoc"
)

// DefaultShapeBase is the namespace SHACL shape IRIs are minted under
// when no base is configured.
const DefaultShapeBase = "http://shaclshapes.org/"

// SHACLOptions tunes the ShEx to SHACL conversion.
type SHACLOptions struct {
	// ShapeBase is the namespace for minted shape IRIs; defaults to
	// DefaultShapeBase.
	ShapeBase string
}

// ToSHACL rewrites a ShEx schema as a SHACL schema. Principal shapes
// become node shapes; rdf:type value-set constraints are promoted to
// sh:targetClass; auxiliary class shapes are inlined as sh:class or
// sh:or and not emitted themselves.
func ToSHACL(src *schema.ShExSchema, opts SHACLOptions) (*schema.SHACLSchema, []Warning) {
	if opts.ShapeBase == "" {
		opts.ShapeBase = DefaultShapeBase
	}
	c := &shaclBuilder{src: src, opts: opts}

	principals := principalShapes(src)
	out := &schema.SHACLSchema{Prefixes: shaclPrefixes(src)}
	for _, sh := range src.Shapes {
		if !principals[sh.ID] {
			continue
		}
		out.Shapes = append(out.Shapes, c.convertShape(sh))
	}
	return out, c.warnings
}

type shaclBuilder struct {
	src      *schema.ShExSchema
	opts     SHACLOptions
	warnings []Warning
}

// principalShapes picks the shapes that become SHACL node shapes: the
// start shape when declared, plus every shape with more than one
// triple constraint; when neither exists, the first shape. The rest
// are auxiliary class shapes that get inlined at their references.
func principalShapes(src *schema.ShExSchema) map[schema.IRI]bool {
	out := make(map[schema.IRI]bool)
	if src.Start != "" {
		out[src.Start] = true
	}
	for _, sh := range src.Shapes {
		if len(sh.TripleConstraints()) > 1 {
			out[sh.ID] = true
		}
	}
	if len(out) == 0 && len(src.Shapes) > 0 {
		out[src.Shapes[0].ID] = true
	}
	return out
}

func (c *shaclBuilder) convertShape(sh *schema.Shape) *schema.NodeShape {
	out := &schema.NodeShape{
		ID:     c.shapeIRI(sh.ID),
		Closed: sh.Closed,
	}

	for _, extra := range sh.Extra {
		if !rdfvoc.IsTypePredicate(extra) {
			c.warnings = append(c.warnings, warnf(WarnUnsupportedConstruct,
				"EXTRA %s on %s has no SHACL counterpart", extra, sh.ID))
		}
	}

	for _, tc := range sh.TripleConstraints() {
		if classes, ok := promotableTypeConstraint(tc); ok {
			out.TargetClasses = append(out.TargetClasses, classes...)
			continue
		}
		out.Properties = append(out.Properties, c.convertTripleConstraint(tc))
	}
	return out
}

// promotableTypeConstraint reports whether a triple constraint is a
// type assertion over a pure IRI value set, which is promoted to
// sh:targetClass instead of becoming a property shape.
func promotableTypeConstraint(tc *schema.TripleConstraint) ([]schema.IRI, bool) {
	if !rdfvoc.IsTypePredicate(tc.Predicate) || tc.Inverse {
		return nil, false
	}
	nc, ok := tc.Value.(*schema.NodeConstraint)
	if !ok || len(nc.Values) == 0 {
		return nil, false
	}
	classes := make([]schema.IRI, 0, len(nc.Values))
	for _, v := range nc.Values {
		iri, ok := v.(schema.IRI)
		if !ok {
			return nil, false
		}
		classes = append(classes, iri)
	}
	return classes, true
}

func (c *shaclBuilder) convertTripleConstraint(tc *schema.TripleConstraint) *schema.PropertyShape {
	ps := &schema.PropertyShape{
		Path: schema.Path{IRI: tc.Predicate, Inverse: tc.Inverse},
	}
	ps.MinCount, ps.MaxCount = shaclCounts(tc.Cardinality)

	switch v := tc.Value.(type) {
	case nil:
		// Wildcard: only the path and counts constrain the values.

	case *schema.ShapeRef:
		c.applyShapeRef(ps, v.Name)

	case *schema.ShapeOr:
		var classes []schema.IRI
		for _, name := range v.Names {
			if class, ok := c.refClass(name); ok {
				classes = append(classes, class)
			} else {
				c.warnings = append(c.warnings, warnf(WarnUnsupportedConstruct,
					"shape disjunct @%s is not a class shape", name))
			}
		}
		ps.Or = classes

	case *schema.NodeConstraint:
		c.applyNodeConstraint(ps, v)
	}
	return ps
}

// applyShapeRef inlines a shape reference: a class shape collapses to
// sh:class, a multi-class shape to sh:or, any other defined shape to
// sh:node. A name with no shape in the schema becomes sh:class of that
// name.
func (c *shaclBuilder) applyShapeRef(ps *schema.PropertyShape, name schema.IRI) {
	ref := c.src.ShapeByID(name)
	if ref == nil {
		ps.ClassRef = name
		return
	}
	if classes, ok := classShapeValues(ref); ok {
		if len(classes) == 1 {
			ps.ClassRef = classes[0]
		} else {
			ps.Or = classes
		}
		return
	}
	// A complex shape keeps its own node shape; reference it.
	ps.NodeRef = c.shapeIRI(name)
}

// classShapeValues recognizes an auxiliary class shape: a single type
// constraint whose value set is all IRIs.
func classShapeValues(sh *schema.Shape) ([]schema.IRI, bool) {
	tcs := sh.TripleConstraints()
	if len(tcs) != 1 {
		return nil, false
	}
	return promotableTypeConstraint(tcs[0])
}

// refClass resolves a shape reference to a single class IRI, for
// disjunctions of class shapes.
func (c *shaclBuilder) refClass(name schema.IRI) (schema.IRI, bool) {
	ref := c.src.ShapeByID(name)
	if ref == nil {
		return "", false
	}
	classes, ok := classShapeValues(ref)
	if !ok || len(classes) != 1 {
		return "", false
	}
	return classes[0], true
}

func (c *shaclBuilder) applyNodeConstraint(ps *schema.PropertyShape, nc *schema.NodeConstraint) {
	switch {
	case len(nc.Values) == 1:
		if stem, ok := nc.Values[0].(schema.IriStem); ok {
			ps.Pattern = stemToPattern(stem.Stem)
		} else {
			ps.HasValue = nc.Values[0]
		}
	case len(nc.Values) > 1:
		ps.In = nc.Values
	case nc.Datatype != "":
		ps.Datatype = nc.Datatype
	case nc.NodeKind != "":
		ps.NodeKind = nc.NodeKind
	}
}

// shaclCounts maps an explicit ShEx cardinality back to SHACL counts.
// The braced {0,*} form marks the SHACL default, which restores to
// absent counts; an unbounded max never emits sh:maxCount.
func shaclCounts(card schema.Cardinality) (*int, *int) {
	if card.Braced && card.Min == 0 && card.Max == schema.Unbounded {
		return nil, nil
	}
	mn := card.Min
	var mx *int
	if card.Max != schema.Unbounded {
		v := card.Max
		mx = &v
	}
	return &mn, mx
}

// shapeIRI mints the SHACL shape IRI for a ShEx shape name. Names that
// are already absolute IRIs are kept; bare names get the configured
// shape base and a "Shape" suffix.
func (c *shaclBuilder) shapeIRI(name schema.IRI) schema.IRI {
	if strings.Contains(string(name), "://") {
		return name
	}
	return schema.IRI(c.opts.ShapeBase + string(name) + "Shape")
}

// shaclPrefixes builds the output prefix table: the well-known SHACL
// namespaces plus every source prefix that does not collide.
func shaclPrefixes(src *schema.ShExSchema) *schema.PrefixTable {
	out := schema.WellKnownPrefixes()
	if src.Prefixes != nil {
		out.Merge(src.Prefixes)
	}
	return out
}
