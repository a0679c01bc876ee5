package schema

// ShExSchema is a parsed or converted ShEx schema: prefix table, base
// IRI, optional start shape, and the shapes in insertion order.
type ShExSchema struct {
	Prefixes *PrefixTable
	Base     string
	Start    IRI
	Shapes   []*Shape
}

// ShapeByID returns the shape with the given id, or nil.
func (s *ShExSchema) ShapeByID(id IRI) *Shape {
	for _, sh := range s.Shapes {
		if sh.ID == id {
			return sh
		}
	}
	return nil
}

// Shape is a named ShEx shape.
type Shape struct {
	ID     IRI
	Extra  []IRI
	Closed bool
	// Expression is nil for an empty shape body.
	Expression TripleExpr
}

// TripleConstraints flattens the shape body into its triple
// constraints: the sole constraint, or the members of a conjunction.
func (s *Shape) TripleConstraints() []*TripleConstraint {
	switch e := s.Expression.(type) {
	case nil:
		return nil
	case *TripleConstraint:
		return []*TripleConstraint{e}
	case *EachOf:
		out := make([]*TripleConstraint, 0, len(e.Expressions))
		for _, sub := range e.Expressions {
			if tc, ok := sub.(*TripleConstraint); ok {
				out = append(out, tc)
			}
		}
		return out
	}
	return nil
}

// TripleExpr is a triple expression: a TripleConstraint or a flat
// EachOf conjunction of them.
type TripleExpr interface {
	tripleExpr()
}

func (*TripleConstraint) tripleExpr() {}
func (*EachOf) tripleExpr()           {}

// EachOf is a conjunction of triple expressions, ;-separated in ShExC.
type EachOf struct {
	Expressions []TripleExpr
}

// TripleConstraint constrains a single predicate within a shape.
type TripleConstraint struct {
	Predicate IRI
	Inverse   bool
	// Value is nil for the "." wildcard.
	Value       ValueExpr
	Cardinality Cardinality
}

// ValueExpr is the value side of a triple constraint: a node
// constraint, a shape reference, or a disjunction of shape references.
type ValueExpr interface {
	valueExpr()
}

func (*NodeConstraint) valueExpr() {}
func (*ShapeRef) valueExpr()       {}
func (*ShapeOr) valueExpr()        {}

// NodeConstraint restricts the value by node kind, datatype and/or an
// explicit value set.
type NodeConstraint struct {
	NodeKind NodeKind
	Datatype IRI
	Values   []ValueSetItem
}

// ShapeRef is a reference to another shape: @<id>.
type ShapeRef struct {
	Name IRI
}

// ShapeOr is a disjunction of shape references: (@<a> OR @<b>).
type ShapeOr struct {
	Names []IRI
}
