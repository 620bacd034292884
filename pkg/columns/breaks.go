package columns

// ExtractBreaks returns the ascending start indices of content regions in
// mask: every i where mask[i] is content and the position before it is a
// separator.
//
// With LeadingEdge, index 0 is a boundary if mask[0] is content. With
// Wraparound, the position before index 0 is the last mask entry, so an
// all-content mask yields no boundaries at all.
func ExtractBreaks(mask Mask, mode BoundaryMode) []int {
	var breaks []int
	for i, content := range mask {
		if !content {
			continue
		}
		if i == 0 {
			if mode == Wraparound && mask[len(mask)-1] {
				continue
			}
			breaks = append(breaks, 0)
			continue
		}
		if !mask[i-1] {
			breaks = append(breaks, i)
		}
	}
	return breaks
}

// InferBreaks classifies lines and extracts their column boundaries.
func InferBreaks(lines []string, opts ...Option) []int {
	o := newOptions(opts)
	mask := ClassifyLines(lines, WithSeparator(o.separator))
	return ExtractBreaks(mask, o.mode)
}

// Widths converts a boundary list into column widths for lines of the given
// total width. The last column extends to width; a column whose boundary
// lies at or beyond width gets width 0.
func Widths(breaks []int, width int) []int {
	widths := make([]int, len(breaks))
	for i, b := range breaks {
		end := width
		if i < len(breaks)-1 {
			end = breaks[i+1]
		}
		if end > b {
			widths[i] = end - b
		}
	}
	return widths
}
