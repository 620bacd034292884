package columns

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// countyRows is a three-column report where the middle cell of one row is empty.
func countyRows() []string {
	return []string{
		fmt.Sprintf("%-13s%-9s%s", "Adair", "1,234", "567"),
		fmt.Sprintf("%-13s%-9s%s", "Adams", "", "890"),
		fmt.Sprintf("%-13s%-9s%s", "Allamakee", "2,001", "345"),
	}
}

func TestClassifyLines(t *testing.T) {
	tests := []struct {
		name  string
		lines []string
		want  Mask
	}{
		{
			name:  "two columns",
			lines: []string{"Foo   Bar"},
			want:  Mask{true, true, true, false, false, false, true, true, true},
		},
		{
			name:  "single spaces are content",
			lines: []string{"a b c"},
			want:  Mask{true, true, true, true, true},
		},
		{
			name:  "empty line adds nothing",
			lines: []string{""},
			want:  Mask{},
		},
		{
			name:  "leading run",
			lines: []string{"  x"},
			want:  Mask{false, false, true},
		},
		{
			name:  "trailing run",
			lines: []string{"x   "},
			want:  Mask{true, false, false, false},
		},
		{
			name:  "tabs count as whitespace",
			lines: []string{"a\t\tb"},
			want:  Mask{true, false, false, true},
		},
		{
			name:  "union across lines",
			lines: []string{"ab    cd", "   x"},
			want:  Mask{true, true, false, true, false, false, true, true},
		},
		{
			name:  "rune indices",
			lines: []string{"é   b"},
			want:  Mask{true, false, false, false, true},
		},
		{
			name:  "no-break spaces",
			lines: []string{"Ames\u00a0\u00a0Story"},
			want:  Mask{true, true, true, true, false, false, true, true, true, true, true},
		},
		{
			name:  "vertical tabs",
			lines: []string{"a\v\vb"},
			want:  Mask{true, false, false, true},
		},
		{
			name:  "ideographic space mixed with space",
			lines: []string{"Polk\u3000\u3000 12"},
			want:  Mask{true, true, true, true, false, false, false, true, true},
		},
		{
			name:  "single no-break space is content",
			lines: []string{"a\u00a0b"},
			want:  Mask{true, true, true},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ClassifyLines(tt.lines)
			if got == nil {
				got = Mask{}
			}
			if diff := cmp.Diff(tt.want, got); diff != "" {
				t.Errorf("ClassifyLines() mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestClassifyLines_NoSeparatorIsAllContent(t *testing.T) {
	for _, line := range []string{"x", "Foobar Ba", "one two three", " lead", "trail "} {
		mask := ClassifyLines([]string{line})
		require.Len(t, mask, len(line))
		for i, content := range mask {
			assert.Truef(t, content, "line %q index %d should be content", line, i)
		}
	}
}

func TestClassifier_MaskNeverShrinks(t *testing.T) {
	c := NewClassifier()
	prev := 0
	for _, line := range []string{"ab", "abcd   x", "", "a", "abcdefghij  k", "z"} {
		c.Add(line)
		got := c.Mask().Len()
		assert.GreaterOrEqual(t, got, prev)
		assert.GreaterOrEqual(t, got, len([]rune(line)))
		prev = got
	}
	assert.Equal(t, 13, prev)
}

func TestClassifier_ContentStaysMarked(t *testing.T) {
	c := NewClassifier()
	c.Add("abc")
	c.Add("a    ")
	assert.Equal(t, Mask{true, true, true, false, false}, c.Mask())
}

func TestClassifier_MinRun(t *testing.T) {
	got := ClassifyLines([]string{"a  b   c"}, WithMinRun(3))
	assert.Equal(t, Mask{true, true, true, true, false, false, false, true}, got)

	got = ClassifyLines([]string{"a b"}, WithMinRun(1))
	assert.Equal(t, Mask{true, false, true}, got)
}

func TestClassifier_CustomSeparator(t *testing.T) {
	got := ClassifyLines([]string{"a||b"}, WithSeparator(regexp.MustCompile(`\|+`)))
	assert.Equal(t, Mask{true, false, false, true}, got)
}

func TestExtractBreaks(t *testing.T) {
	tests := []struct {
		name     string
		mask     Mask
		leading  []int
		wrapping []int
	}{
		{
			name:     "content at both ends",
			mask:     Mask{true, true, false, false, true},
			leading:  []int{0, 4},
			wrapping: []int{4},
		},
		{
			name:     "separator at end",
			mask:     Mask{true, false, true, false},
			leading:  []int{0, 2},
			wrapping: []int{0, 2},
		},
		{
			name:     "leading separator",
			mask:     Mask{false, false, true, true, false, true},
			leading:  []int{2, 5},
			wrapping: []int{2, 5},
		},
		{
			name:     "all content",
			mask:     Mask{true, true, true},
			leading:  []int{0},
			wrapping: nil,
		},
		{
			name:     "all separator",
			mask:     Mask{false, false},
			leading:  nil,
			wrapping: nil,
		},
		{
			name:     "empty",
			mask:     Mask{},
			leading:  nil,
			wrapping: nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.leading, ExtractBreaks(tt.mask, LeadingEdge), "leading edge")
			assert.Equal(t, tt.wrapping, ExtractBreaks(tt.mask, Wraparound), "wraparound")
		})
	}
}

func TestExtractBreaks_Idempotent(t *testing.T) {
	mask := ClassifyLines(countyRows())
	for _, mode := range []BoundaryMode{LeadingEdge, Wraparound} {
		first := mask.Breaks(mode)
		second := mask.Breaks(mode)
		assert.Equal(t, first, second, mode.String())
	}
}

func TestInferBreaks_EmptyCell(t *testing.T) {
	lines := countyRows()

	breaks := InferBreaks(lines)
	require.Equal(t, []int{0, 13, 22}, breaks)

	rows, err := SplitRows(lines, breaks)
	require.NoError(t, err)

	want := [][]string{
		{"Adair", "1,234", "567"},
		{"Adams", "", "890"},
		{"Allamakee", "2,001", "345"},
	}
	if diff := cmp.Diff(want, rows); diff != "" {
		t.Errorf("SplitRows() mismatch (-want +got):\n%s", diff)
	}
}

func TestInferBreaks_WraparoundDropsFirstColumn(t *testing.T) {
	breaks := InferBreaks(countyRows(), WithBoundaryMode(Wraparound))
	assert.Equal(t, []int{13, 22}, breaks)
}

func TestInferBreaks_UnicodeWhitespace(t *testing.T) {
	tests := []struct {
		line       string
		want       []int
		wraparound []int
	}{
		{"Ames\u00a0\u00a0Story", []int{0, 6}, []int{6}},
		{"a\v\vb", []int{0, 3}, []int{3}},
		{"Polk\u3000\u3000 12", []int{0, 7}, []int{7}},
	}
	for _, tt := range tests {
		t.Run(strconv.Quote(tt.line), func(t *testing.T) {
			assert.Equal(t, tt.want, InferBreaks([]string{tt.line}))
			assert.Equal(t, tt.wraparound, InferBreaks([]string{tt.line}, WithBoundaryMode(Wraparound)))
		})
	}
}

func TestInferBreaks_RoundTrip(t *testing.T) {
	lines := []string{
		"Name    Votes   Pct",
		"Foo   Bar",
		"  Precinct 1     412      33.2%  ",
		"a  b  c  d",
	}
	for _, line := range lines {
		t.Run(line, func(t *testing.T) {
			fields, err := SplitRow(line, InferBreaks([]string{line}))
			require.NoError(t, err)
			want := DefaultSeparator.Split(strings.TrimSpace(line), -1)
			assert.Equal(t, want, fields)
		})
	}
}

func TestInferBreaks_UnalignedRowsMerge(t *testing.T) {
	// "Foobar Ba" has no separator run, so its content covers every index
	// and the batch collapses to a single column.
	lines := []string{"Foo   Bar", "Foobar Ba"}

	breaks := InferBreaks(lines)
	require.Equal(t, []int{0}, breaks)

	rows, err := SplitRows(lines, breaks)
	require.NoError(t, err)
	assert.Equal(t, [][]string{{"Foo   Bar"}, {"Foobar Ba"}}, rows)

	assert.Empty(t, InferBreaks(lines, WithBoundaryMode(Wraparound)))
}

func TestSplitRow(t *testing.T) {
	tests := []struct {
		name   string
		line   string
		breaks []int
		want   []string
	}{
		{
			name:   "two fields",
			line:   "Foo   Bar",
			breaks: []int{0, 6},
			want:   []string{"Foo", "Bar"},
		},
		{
			name:   "short line",
			line:   "ab",
			breaks: []int{0, 6},
			want:   []string{"ab", ""},
		},
		{
			name:   "empty line",
			line:   "",
			breaks: []int{0, 4, 8},
			want:   []string{"", "", ""},
		},
		{
			name:   "line ends inside a field",
			line:   "abc   de",
			breaks: []int{0, 6, 12},
			want:   []string{"abc", "de", ""},
		},
		{
			name:   "single break",
			line:   "  whole line  ",
			breaks: []int{0},
			want:   []string{"whole line"},
		},
		{
			name:   "adjacent breaks",
			line:   "abcd",
			breaks: []int{0, 1, 2},
			want:   []string{"", "", "cd"},
		},
		{
			name:   "multibyte",
			line:   "Décorah   12",
			breaks: []int{0, 10},
			want:   []string{"Décorah", "12"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := SplitRow(tt.line, tt.breaks)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestSplitRow_InvalidBreaks(t *testing.T) {
	_, err := SplitRow("abc", nil)
	assert.ErrorIs(t, err, ErrNoBreaks)

	_, err = SplitRow("abc", []int{})
	assert.ErrorIs(t, err, ErrNoBreaks)

	_, err = SplitRow("abc", []int{-1, 2})
	assert.ErrorIs(t, err, ErrInvalidBreaks)

	_, err = SplitRow("abc", []int{0, 3, 3})
	assert.ErrorIs(t, err, ErrInvalidBreaks)

	_, err = SplitRows([]string{"abc"}, []int{2, 1})
	assert.ErrorIs(t, err, ErrInvalidBreaks)
}

func TestSplitRows_PreservesOrder(t *testing.T) {
	lines := []string{"c  3", "a  1", "b  2"}
	rows, err := SplitRows(lines, []int{0, 3})
	require.NoError(t, err)
	assert.Equal(t, [][]string{{"c", "3"}, {"a", "1"}, {"b", "2"}}, rows)
}

func TestSplitRows_Empty(t *testing.T) {
	rows, err := SplitRows(nil, []int{0})
	require.NoError(t, err)
	assert.Empty(t, rows)
}

func TestWidths(t *testing.T) {
	assert.Equal(t, []int{13, 9, 3}, Widths([]int{0, 13, 22}, 25))
	assert.Equal(t, []int{6, 0}, Widths([]int{0, 6}, 5))
	assert.Empty(t, Widths(nil, 10))
}

func TestParseBoundaryMode(t *testing.T) {
	tests := []struct {
		in      string
		want    BoundaryMode
		wantErr bool
	}{
		{in: "", want: LeadingEdge},
		{in: "leading_edge", want: LeadingEdge},
		{in: "wraparound", want: Wraparound},
		{in: "circular", wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseBoundaryMode(tt.in)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
			assert.Equal(t, got, mustParse(t, got.String()))
		})
	}
}

func mustParse(t *testing.T, s string) BoundaryMode {
	t.Helper()
	m, err := ParseBoundaryMode(s)
	require.NoError(t, err)
	return m
}
