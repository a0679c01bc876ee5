package shexc

import (
	"strconv"
	"strings"

	"github.com/c360studio/shaclex/schema"
)

// Parser is a recursive-descent ShExC parser with one-token lookahead.
// Prefixed names are resolved against the prefix table at parse time.
type Parser struct {
	lex  *Lexer
	cur  Token
	prev Token

	// prefixes resolves PNAMEs: the well-known defaults overlaid with
	// declarations. declared holds only the PREFIX directives so that
	// re-serialization reproduces the input's prefix block.
	prefixes *schema.PrefixTable
	declared *schema.PrefixTable
	base     string
	start    schema.IRI
	shapes   []*schema.Shape
	seen     map[schema.IRI]bool
}

// Parse parses ShExC source into a ShEx schema. It fails fast with a
// *ParseError carrying the position of the first error.
func Parse(src string) (*schema.ShExSchema, error) {
	p := &Parser{
		lex:      NewLexer(src),
		prefixes: schema.WellKnownPrefixes(),
		declared: schema.NewPrefixTable(),
		seen:     make(map[schema.IRI]bool),
	}
	if err := p.advance(); err != nil {
		return nil, err
	}
	if err := p.parseSchema(); err != nil {
		return nil, err
	}
	return &schema.ShExSchema{
		Prefixes: p.declared,
		Base:     p.base,
		Start:    p.start,
		Shapes:   p.shapes,
	}, nil
}

func (p *Parser) advance() *ParseError {
	p.prev = p.cur
	tok, err := p.lex.Next()
	if err != nil {
		return err
	}
	p.cur = tok
	return nil
}

func (p *Parser) isPunct(v string) bool {
	return p.cur.Type == TokenPunct && p.cur.Value == v
}

func (p *Parser) isWord(v string) bool {
	return p.cur.Type == TokenWord && p.cur.Value == v
}

func (p *Parser) expectPunct(v string) *ParseError {
	if !p.isPunct(v) {
		return errAt(ErrUnexpectedToken, p.cur, "expected %q, got %s %q", v, p.cur.Type, p.cur.Value)
	}
	return p.advance()
}

func (p *Parser) parseSchema() *ParseError {
	for p.cur.Type != TokenEOF {
		switch {
		case p.isWord("PREFIX"):
			if err := p.parsePrefixDirective(); err != nil {
				return err
			}
		case p.isWord("BASE"):
			if err := p.advance(); err != nil {
				return err
			}
			if p.cur.Type != TokenIRIRef {
				return errAt(ErrUnexpectedToken, p.cur, "expected IRI reference after BASE, got %q", p.cur.Value)
			}
			p.base = p.cur.Value
			if err := p.advance(); err != nil {
				return err
			}
		case p.isWord("start"):
			if err := p.parseStartDirective(); err != nil {
				return err
			}
		case p.cur.Type == TokenIRIRef || p.cur.Type == TokenPName:
			if err := p.parseShape(); err != nil {
				return err
			}
		case p.cur.Type == TokenWord:
			return errAt(ErrUnknownKeyword, p.cur, "unknown keyword %q", p.cur.Value)
		default:
			return errAt(ErrUnexpectedToken, p.cur, "expected directive or shape, got %s %q", p.cur.Type, p.cur.Value)
		}
	}
	return nil
}

func (p *Parser) parsePrefixDirective() *ParseError {
	if err := p.advance(); err != nil {
		return err
	}
	if p.cur.Type != TokenPName {
		return errAt(ErrUnexpectedToken, p.cur, "expected prefix name after PREFIX, got %q", p.cur.Value)
	}
	raw := p.cur.Value
	name := raw[:strings.IndexByte(raw, ':')]
	if local := raw[strings.IndexByte(raw, ':')+1:]; local != "" {
		return errAt(ErrUnexpectedToken, p.cur, "prefix declaration %q must end at the colon", raw)
	}
	if err := p.advance(); err != nil {
		return err
	}
	if p.cur.Type != TokenIRIRef {
		return errAt(ErrUnexpectedToken, p.cur, "expected IRI reference in PREFIX directive, got %q", p.cur.Value)
	}
	p.prefixes.Add(name, p.cur.Value)
	p.declared.Add(name, p.cur.Value)
	return p.advance()
}

func (p *Parser) parseStartDirective() *ParseError {
	if err := p.advance(); err != nil {
		return err
	}
	if err := p.expectPunct("="); err != nil {
		return err
	}
	if err := p.expectPunct("@"); err != nil {
		return err
	}
	id, err := p.parseShapeID()
	if err != nil {
		return err
	}
	p.start = id
	return nil
}

// parseShapeID consumes an IRIREF or PNAME naming a shape.
func (p *Parser) parseShapeID() (schema.IRI, *ParseError) {
	switch p.cur.Type {
	case TokenIRIRef:
		id := schema.IRI(p.cur.Value)
		return id, p.advance()
	case TokenPName:
		iri, err := p.resolvePName(p.cur)
		if err != nil {
			return "", err
		}
		return iri, p.advance()
	}
	return "", errAt(ErrUnexpectedToken, p.cur, "expected shape name, got %s %q", p.cur.Type, p.cur.Value)
}

// resolvePName expands a prefixed-name token against the prefix table.
func (p *Parser) resolvePName(tok Token) (schema.IRI, *ParseError) {
	idx := strings.IndexByte(tok.Value, ':')
	name, local := tok.Value[:idx], tok.Value[idx+1:]
	ns, ok := p.prefixes.Expand(name)
	if !ok {
		return "", errAt(ErrUnknownPrefix, tok, "unknown prefix %q", name)
	}
	return schema.IRI(ns + local), nil
}

// parseIRI consumes an IRIREF or PNAME as an absolute IRI.
func (p *Parser) parseIRI() (schema.IRI, *ParseError) {
	return p.parseShapeID()
}

func (p *Parser) parseShape() *ParseError {
	id, err := p.parseShapeID()
	if err != nil {
		return err
	}
	if p.seen[id] {
		return errAt(ErrDuplicateShapeID, p.prev, "shape %q is already defined", id)
	}
	p.seen[id] = true

	sh := &schema.Shape{ID: id}

	// EXTRA and CLOSED may appear in either order before the body.
	for {
		if p.isWord("EXTRA") {
			if err := p.advance(); err != nil {
				return err
			}
			for p.cur.Type == TokenIRIRef || p.cur.Type == TokenPName {
				iri, err := p.parseIRI()
				if err != nil {
					return err
				}
				sh.Extra = append(sh.Extra, iri)
			}
			if len(sh.Extra) == 0 {
				return errAt(ErrUnexpectedToken, p.cur, "EXTRA requires at least one predicate")
			}
			continue
		}
		if p.isWord("CLOSED") {
			sh.Closed = true
			if err := p.advance(); err != nil {
				return err
			}
			continue
		}
		break
	}

	if err := p.expectPunct("{"); err != nil {
		return err
	}

	var constraints []*schema.TripleConstraint
	for !p.isPunct("}") {
		tc, err := p.parseTripleConstraint()
		if err != nil {
			return err
		}
		constraints = append(constraints, tc)
		if p.isPunct(";") {
			if err := p.advance(); err != nil {
				return err
			}
			continue
		}
		break
	}
	if err := p.expectPunct("}"); err != nil {
		return err
	}

	switch len(constraints) {
	case 0:
	case 1:
		sh.Expression = constraints[0]
	default:
		exprs := make([]schema.TripleExpr, len(constraints))
		for i, tc := range constraints {
			exprs[i] = tc
		}
		sh.Expression = &schema.EachOf{Expressions: exprs}
	}

	p.shapes = append(p.shapes, sh)
	return nil
}

func (p *Parser) parseTripleConstraint() (*schema.TripleConstraint, *ParseError) {
	tc := &schema.TripleConstraint{Cardinality: schema.DefaultCardinality()}

	if p.isPunct("^") {
		tc.Inverse = true
		if err := p.advance(); err != nil {
			return nil, err
		}
	}

	pred, err := p.parseIRI()
	if err != nil {
		return nil, err
	}
	tc.Predicate = pred

	value, err := p.parseValueExpr()
	if err != nil {
		return nil, err
	}
	tc.Value = value

	card, err := p.parseCardinality()
	if err != nil {
		return nil, err
	}
	tc.Cardinality = card
	return tc, nil
}

func (p *Parser) parseValueExpr() (schema.ValueExpr, *ParseError) {
	switch {
	case p.isPunct("@"):
		if err := p.advance(); err != nil {
			return nil, err
		}
		name, err := p.parseShapeID()
		if err != nil {
			return nil, err
		}
		return &schema.ShapeRef{Name: name}, nil

	case p.isPunct("("):
		return p.parseShapeOr()

	case p.isPunct("["):
		values, err := p.parseValueSet()
		if err != nil {
			return nil, err
		}
		return &schema.NodeConstraint{Values: values}, nil

	case p.isPunct("."):
		return nil, p.advance()

	case p.cur.Type == TokenWord:
		var nk schema.NodeKind
		switch p.cur.Value {
		case "IRI":
			nk = schema.NodeKindIRI
		case "LITERAL":
			nk = schema.NodeKindLiteral
		case "BNODE":
			nk = schema.NodeKindBlankNode
		case "NONLITERAL":
			nk = schema.NodeKindBlankNodeOrIRI
		default:
			return nil, errAt(ErrUnknownKeyword, p.cur, "unknown node kind %q", p.cur.Value)
		}
		return &schema.NodeConstraint{NodeKind: nk}, p.advance()

	case p.cur.Type == TokenIRIRef || p.cur.Type == TokenPName:
		dt, err := p.parseIRI()
		if err != nil {
			return nil, err
		}
		return &schema.NodeConstraint{Datatype: dt}, nil
	}

	return nil, errAt(ErrUnexpectedToken, p.cur, "expected value expression, got %s %q", p.cur.Type, p.cur.Value)
}

// parseShapeOr parses a parenthesized disjunction of shape references:
// (@<a> OR @<b>).
func (p *Parser) parseShapeOr() (schema.ValueExpr, *ParseError) {
	if err := p.advance(); err != nil { // '('
		return nil, err
	}
	var names []schema.IRI
	for {
		if err := p.expectPunct("@"); err != nil {
			return nil, err
		}
		name, err := p.parseShapeID()
		if err != nil {
			return nil, err
		}
		names = append(names, name)
		if p.isWord("OR") {
			if err := p.advance(); err != nil {
				return nil, err
			}
			continue
		}
		break
	}
	if err := p.expectPunct(")"); err != nil {
		return nil, err
	}
	if len(names) == 1 {
		return &schema.ShapeRef{Name: names[0]}, nil
	}
	return &schema.ShapeOr{Names: names}, nil
}

func (p *Parser) parseValueSet() ([]schema.ValueSetItem, *ParseError) {
	open := p.cur
	if err := p.advance(); err != nil { // '['
		return nil, err
	}
	var values []schema.ValueSetItem
	for !p.isPunct("]") {
		switch {
		case p.cur.Type == TokenIRIRef || p.cur.Type == TokenPName:
			iri, err := p.parseIRI()
			if err != nil {
				return nil, err
			}
			if p.isPunct("~") {
				values = append(values, schema.IriStem{Stem: string(iri)})
				if err := p.advance(); err != nil {
					return nil, err
				}
			} else {
				values = append(values, iri)
			}
		case p.cur.Type == TokenString:
			lit, err := p.parseLiteral()
			if err != nil {
				return nil, err
			}
			values = append(values, lit)
		default:
			return nil, errAt(ErrUnexpectedToken, p.cur, "expected value set element, got %s %q", p.cur.Type, p.cur.Value)
		}
	}
	if len(values) == 0 {
		return nil, errAt(ErrUnexpectedToken, open, "empty value set")
	}
	return values, p.advance()
}

// parseLiteral parses a quoted string with an optional ^^datatype or
// @lang suffix.
func (p *Parser) parseLiteral() (schema.Literal, *ParseError) {
	lit := schema.Literal{Value: p.cur.Value}
	if err := p.advance(); err != nil {
		return lit, err
	}
	if p.isPunct("^") {
		if err := p.advance(); err != nil {
			return lit, err
		}
		if err := p.expectPunct("^"); err != nil {
			return lit, err
		}
		dt, err := p.parseIRI()
		if err != nil {
			return lit, err
		}
		lit.Datatype = dt
	} else if p.isPunct("@") {
		if err := p.advance(); err != nil {
			return lit, err
		}
		if p.cur.Type != TokenWord {
			return lit, errAt(ErrUnexpectedToken, p.cur, "expected language tag, got %q", p.cur.Value)
		}
		lit.Language = p.cur.Value
		if err := p.advance(); err != nil {
			return lit, err
		}
	}
	return lit, nil
}

// parseCardinality parses an optional cardinality suffix. Absent means
// the ShEx default of exactly one.
func (p *Parser) parseCardinality() (schema.Cardinality, *ParseError) {
	card := schema.DefaultCardinality()
	if p.cur.Type != TokenPunct {
		return card, nil
	}
	switch p.cur.Value {
	case "?":
		return schema.Cardinality{Min: 0, Max: 1}, p.advance()
	case "*":
		return schema.Cardinality{Min: 0, Max: schema.Unbounded}, p.advance()
	case "+":
		return schema.Cardinality{Min: 1, Max: schema.Unbounded}, p.advance()
	case "{":
		return p.parseBracedCardinality()
	}
	return card, nil
}

func (p *Parser) parseBracedCardinality() (schema.Cardinality, *ParseError) {
	open := p.cur
	card := schema.Cardinality{Braced: true}
	if err := p.advance(); err != nil { // '{'
		return card, err
	}
	if p.cur.Type != TokenInteger {
		return card, errAt(ErrInvalidCardinality, p.cur, "expected integer, got %q", p.cur.Value)
	}
	min, _ := strconv.Atoi(p.cur.Value)
	card.Min = min
	card.Max = min
	if err := p.advance(); err != nil {
		return card, err
	}
	if p.isPunct(",") {
		if err := p.advance(); err != nil {
			return card, err
		}
		switch {
		case p.cur.Type == TokenInteger:
			max, _ := strconv.Atoi(p.cur.Value)
			card.Max = max
			if err := p.advance(); err != nil {
				return card, err
			}
		case p.isPunct("*"):
			card.Max = schema.Unbounded
			if err := p.advance(); err != nil {
				return card, err
			}
		default:
			card.Max = schema.Unbounded
		}
	}
	if err := p.expectPunct("}"); err != nil {
		return card, err
	}
	if card.Max != schema.Unbounded && card.Min > card.Max {
		return card, errAt(ErrInvalidCardinality, open, "min %d exceeds max %d", card.Min, card.Max)
	}
	return card, nil
}
