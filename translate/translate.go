// Package translate is the top-level facade: it chains parser,
// converter and emitter into a single text-to-text translation in
// either direction. A translation is a pure function from input bytes
// to output bytes; it either completes or fails with the first parse
// error.
package translate

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/c360studio/shaclex/convert"
	"github.com/c360studio/shaclex/schema"
	"github.com/c360studio/shaclex/shexc"
	"github.com/c360studio/shaclex/turtle"
)

// Direction selects which way a translation runs.
type Direction string

const (
	// SHACLToShEx reads Turtle and writes ShExC.
	SHACLToShEx Direction = "shacl2shex"

	// ShExToSHACL reads ShExC and writes Turtle.
	ShExToSHACL Direction = "shex2shacl"
)

// Options tunes a translation.
type Options struct {
	// ShapeBase is the namespace minted SHACL shape IRIs are placed
	// under; empty uses convert.DefaultShapeBase.
	ShapeBase string

	// ExtraPrefixes are additional prefix bindings applied to the
	// output prefix table.
	ExtraPrefixes map[string]string
}

// Result is a completed translation: the output text plus any lossy
// conversion warnings.
type Result struct {
	Output   string
	Warnings []convert.Warning
}

// DetectDirection infers the translation direction from a file
// extension: .ttl and .turtle are SHACL, .shex is ShEx.
func DetectDirection(filename string) (Direction, error) {
	switch strings.ToLower(filepath.Ext(filename)) {
	case ".ttl", ".turtle":
		return SHACLToShEx, nil
	case ".shex":
		return ShExToSHACL, nil
	}
	return "", fmt.Errorf("cannot infer direction from %q: expected .ttl, .turtle or .shex", filename)
}

// Run translates input in the given direction.
func Run(input []byte, dir Direction, opts Options) (*Result, error) {
	switch dir {
	case SHACLToShEx:
		return SHACLToShExText(input, opts)
	case ShExToSHACL:
		return ShExToSHACLText(input, opts)
	}
	return nil, fmt.Errorf("unknown direction %q", dir)
}

// SHACLToShExText parses SHACL Turtle and emits ShExC.
func SHACLToShExText(input []byte, opts Options) (*Result, error) {
	shaclSchema, err := turtle.Parse(input)
	if err != nil {
		return nil, err
	}
	shexSchema, warnings := convert.ToShEx(shaclSchema)
	applyExtraPrefixes(shexSchema.Prefixes, opts)
	return &Result{Output: shexc.Serialize(shexSchema), Warnings: warnings}, nil
}

// ShExToSHACLText parses ShExC and emits SHACL Turtle.
func ShExToSHACLText(input []byte, opts Options) (*Result, error) {
	shexSchema, err := shexc.Parse(string(input))
	if err != nil {
		return nil, err
	}
	shaclSchema, warnings := convert.ToSHACL(shexSchema, convert.SHACLOptions{ShapeBase: opts.ShapeBase})
	applyExtraPrefixes(shaclSchema.Prefixes, opts)
	return &Result{Output: turtle.Emit(shaclSchema), Warnings: warnings}, nil
}

func applyExtraPrefixes(table *schema.PrefixTable, opts Options) {
	for name, iri := range opts.ExtraPrefixes {
		table.Add(name, iri)
	}
}
