// Package columns infers column boundaries in whitespace-aligned text and
// slices rows into fields along those boundaries.
//
// Reports produced by legacy systems often separate columns with runs of
// spaces but do not keep every row aligned, and empty cells shift the
// apparent column edges. Rather than guessing per row, the package unions
// the content positions of every row in a batch into a Mask and derives one
// boundary list for the whole batch.
package columns

import (
	"regexp"
	"unicode/utf8"
)

// Whitespace is the character class a separator run is made of. It covers
// Unicode whitespace, so runs of NBSP or ideographic space separate columns.
const Whitespace = `[\s\v\x1c-\x1f\x{85}\p{Z}]`

// DefaultSeparator matches a run of two or more whitespace characters.
var DefaultSeparator = regexp.MustCompile(Whitespace + `{2,}`)

// Mask records, per character index, whether any classified line had
// non-separator content at that position.
type Mask []bool

// Len returns the number of character positions covered by the mask.
func (m Mask) Len() int {
	return len(m)
}

// Breaks returns the boundary list for the mask. See ExtractBreaks.
func (m Mask) Breaks(mode BoundaryMode) []int {
	return ExtractBreaks(m, mode)
}

// Classifier accumulates a Mask over a sequence of lines.
// A Classifier is not safe for concurrent use.
type Classifier struct {
	sep  *regexp.Regexp
	mask Mask
}

// NewClassifier creates a Classifier. Only separator options apply; other
// options are ignored.
func NewClassifier(opts ...Option) *Classifier {
	o := newOptions(opts)
	return &Classifier{sep: o.separator}
}

// Add marks the content positions of line in the mask.
//
// Positions are character (rune) indices. The mask is extended with
// separator entries when line is longer than any line seen so far, then
// every position outside a separator run is marked as content.
func (c *Classifier) Add(line string) {
	width := utf8.RuneCountInString(line)
	if width > len(c.mask) {
		c.mask = append(c.mask, make([]bool, width-len(c.mask))...)
	}

	// Regexp offsets are bytes; walk the line once converting them to
	// rune positions as matches are consumed.
	bytePos, runePos := 0, 0
	toRune := func(off int) int {
		runePos += utf8.RuneCountInString(line[bytePos:off])
		bytePos = off
		return runePos
	}

	i := 0
	for _, m := range c.sep.FindAllStringIndex(line, -1) {
		start := toRune(m[0])
		for ; i < start; i++ {
			c.mask[i] = true
		}
		i = toRune(m[1])
	}
	for ; i < width; i++ {
		c.mask[i] = true
	}
}

// Mask returns the accumulated mask. The returned slice is shared with the
// classifier and must not be modified while lines are still being added.
func (c *Classifier) Mask() Mask {
	return c.mask
}

// ClassifyLines builds the content mask for a batch of lines.
func ClassifyLines(lines []string, opts ...Option) Mask {
	c := NewClassifier(opts...)
	for _, line := range lines {
		c.Add(line)
	}
	return c.Mask()
}
