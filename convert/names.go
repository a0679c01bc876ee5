package convert

import (
	"fmt"
	"sort"
	"strings"

	"github.com/c360studio/shaclex/schema"
)

// nameAllocator mints shape names deterministically. Principal names
// are reserved up front; auxiliary shapes are deduplicated on their
// canonical class-IRI set, so the same class set is minted exactly
// once no matter how often it is referenced.
type nameAllocator struct {
	taken      map[schema.IRI]bool
	byClassSet map[string]schema.IRI
	blankSeq   int
}

func newNameAllocator() *nameAllocator {
	return &nameAllocator{
		taken:      make(map[schema.IRI]bool),
		byClassSet: make(map[string]schema.IRI),
	}
}

func (a *nameAllocator) reserve(name schema.IRI) {
	a.taken[name] = true
}

// alloc returns seed, or seed with the lowest free numeric suffix.
func (a *nameAllocator) alloc(seed string) schema.IRI {
	if seed == "" {
		seed = "Shape"
	}
	name := schema.IRI(seed)
	for i := 2; a.taken[name]; i++ {
		name = schema.IRI(fmt.Sprintf("%s%d", seed, i))
	}
	a.taken[name] = true
	return name
}

// auxFor returns the auxiliary shape name for a class set, minting it
// with the given seed on first use. The second result reports whether
// the name was newly minted.
func (a *nameAllocator) auxFor(classes []schema.IRI, seed string) (schema.IRI, bool) {
	key := classSetKey(classes)
	if name, ok := a.byClassSet[key]; ok {
		return name, false
	}
	name := a.alloc(seed)
	a.byClassSet[key] = name
	return name, true
}

// nextBlankName returns the fallback name for a blank-node shape with
// no target class to derive a name from.
func (a *nameAllocator) nextBlankName() schema.IRI {
	a.blankSeq++
	return a.alloc(fmt.Sprintf("_Shape%d", a.blankSeq))
}

func classSetKey(classes []schema.IRI) string {
	set := make([]string, len(classes))
	for i, c := range classes {
		set[i] = string(c)
	}
	sort.Strings(set)
	return strings.Join(set, "\x00")
}

// shexShapeName derives the ShEx name for a SHACL node shape: the IRI
// local name with a trailing "Shape" stripped, or for blank-node
// shapes the local name of the first target class.
func shexShapeName(sh *schema.NodeShape, alloc *nameAllocator) schema.IRI {
	if !sh.ID.IsBlank() {
		name := sh.ID.LocalName()
		if strings.HasSuffix(name, "Shape") && len(name) > len("Shape") {
			name = name[:len(name)-len("Shape")]
		}
		return alloc.alloc(name)
	}
	if len(sh.TargetClasses) > 0 {
		return alloc.alloc(sh.TargetClasses[0].LocalName())
	}
	return alloc.nextBlankName()
}

// upperFirst capitalizes the first byte, used to seed auxiliary shape
// names from property local names.
func upperFirst(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}
