package columns

import (
	"fmt"
	"regexp"
)

// BoundaryMode controls how index 0 of a mask is treated when extracting
// boundaries.
type BoundaryMode int

const (
	// LeadingEdge makes index 0 a boundary whenever it holds content.
	LeadingEdge BoundaryMode = iota

	// Wraparound compares index 0 against the last mask entry, as if the
	// mask were circular. Content at index 0 only starts a column when the
	// mask ends in a separator. Kept for output compatibility with earlier
	// tooling that indexed the mask with -1.
	Wraparound
)

// String returns the configuration name of the mode.
func (m BoundaryMode) String() string {
	switch m {
	case LeadingEdge:
		return "leading_edge"
	case Wraparound:
		return "wraparound"
	default:
		return fmt.Sprintf("BoundaryMode(%d)", int(m))
	}
}

// ParseBoundaryMode parses a configuration name into a BoundaryMode.
// The empty string selects LeadingEdge.
func ParseBoundaryMode(s string) (BoundaryMode, error) {
	switch s {
	case "", "leading_edge":
		return LeadingEdge, nil
	case "wraparound":
		return Wraparound, nil
	default:
		return LeadingEdge, fmt.Errorf("invalid boundary mode %q (must be leading_edge or wraparound)", s)
	}
}

type options struct {
	separator *regexp.Regexp
	mode      BoundaryMode
}

// Option configures boundary inference.
type Option func(*options)

// WithSeparator sets the pattern that identifies separator runs.
// A nil pattern is ignored.
func WithSeparator(re *regexp.Regexp) Option {
	return func(o *options) {
		if re != nil {
			o.separator = re
		}
	}
}

// WithMinRun treats runs of at least n whitespace characters as separators.
// Values below 1 are ignored.
func WithMinRun(n int) Option {
	return func(o *options) {
		if n > 0 {
			o.separator = MinRunSeparator(n)
		}
	}
}

// WithBoundaryMode sets how index 0 is handled.
func WithBoundaryMode(m BoundaryMode) Option {
	return func(o *options) {
		o.mode = m
	}
}

// MinRunSeparator returns a pattern matching n or more whitespace characters.
func MinRunSeparator(n int) *regexp.Regexp {
	if n == 2 {
		return DefaultSeparator
	}
	return regexp.MustCompile(fmt.Sprintf("%s{%d,}", Whitespace, n))
}

func newOptions(opts []Option) *options {
	o := &options{
		separator: DefaultSeparator,
		mode:      LeadingEdge,
	}
	for _, opt := range opts {
		opt(o)
	}
	return o
}
