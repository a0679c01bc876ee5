package turtle

import (
	"bufio"
	"regexp"
	"strings"

	"github.com/c360studio/shaclex/schema"
)

// The underlying graph library resolves prefixed names during parsing
// but does not expose the prefix table, so declarations are scanned
// from the source text. Both Turtle (@prefix ... .) and SPARQL-style
// (PREFIX ...) forms are accepted.
var prefixLine = regexp.MustCompile(`(?i)^\s*@?prefix\s+([A-Za-z0-9_.-]*):\s*<([^>]*)>`)

// ScanPrefixes extracts prefix declarations from Turtle source and
// merges them over the well-known defaults.
func ScanPrefixes(src string) *schema.PrefixTable {
	table := schema.WellKnownPrefixes()
	scanner := bufio.NewScanner(strings.NewReader(src))
	for scanner.Scan() {
		if m := prefixLine.FindStringSubmatch(scanner.Text()); m != nil {
			table.Add(m[1], m[2])
		}
	}
	return table
}
