// Package convert rewrites SHACL models as ShEx models and back,
// reconciling the semantic gaps between the two languages: default
// cardinalities, class targets versus class value sets, regex patterns
// versus IRI stems, and the auxiliary shapes ShEx needs to express
// class constraints as shape references.
//
// Converters never fail on a well-formed model. Constructs that cannot
// be carried across are dropped and reported as warnings.
package convert

import "fmt"

// WarningCode classifies a lossy conversion.
type WarningCode string

const (
	// WarnDroppedPattern reports an sh:pattern that is not an IRI-stem
	// pattern and was dropped.
	WarnDroppedPattern WarningCode = "DroppedPattern"

	// WarnUnsupportedConstruct reports a construct with no counterpart
	// in the target language.
	WarnUnsupportedConstruct WarningCode = "UnsupportedConstruct"
)

// Warning describes a construct that was dropped or weakened during
// conversion.
type Warning struct {
	Code   WarningCode
	Detail string
}

func (w Warning) String() string {
	return fmt.Sprintf("%s: %s", w.Code, w.Detail)
}

func warnf(code WarningCode, format string, args ...any) Warning {
	return Warning{Code: code, Detail: fmt.Sprintf(format, args...)}
}
