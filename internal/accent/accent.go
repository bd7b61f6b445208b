// Package accent defines the target accent labels accepted by the
// conversion pipeline.
package accent

import (
	"fmt"
	"strings"
)

// Accent identifies a target accent for synthesis.
type Accent string

// Supported target accents.
const (
	American   Accent = "american"
	British    Accent = "british"
	Australian Accent = "australian"
	Indian     Accent = "indian"
	Spanish    Accent = "spanish"
	French     Accent = "french"
	German     Accent = "german"
	Chinese    Accent = "chinese"
	Japanese   Accent = "japanese"
	Russian    Accent = "russian"
)

// Default is the accent used when the caller does not pick one.
const Default = American

// All returns the supported accents in display order.
func All() []Accent {
	return []Accent{
		American, British, Australian, Indian, Spanish,
		French, German, Chinese, Japanese, Russian,
	}
}

// Parse converts a caller-supplied label into an Accent. Labels are
// matched case-insensitively with surrounding whitespace ignored.
func Parse(label string) (Accent, error) {
	normalized := Accent(strings.ToLower(strings.TrimSpace(label)))
	for _, a := range All() {
		if a == normalized {
			return a, nil
		}
	}
	return "", fmt.Errorf("accent: unknown label %q (supported: %s)", label, Labels())
}

// Labels returns the supported labels as a comma-separated string for
// usage and error messages.
func Labels() string {
	all := All()
	labels := make([]string, len(all))
	for i, a := range all {
		labels[i] = string(a)
	}
	return strings.Join(labels, ", ")
}

func (a Accent) String() string {
	return string(a)
}
