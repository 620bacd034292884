package fixedwidth

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSlice(t *testing.T) {
	tests := []struct {
		name   string
		widths []int
		line   string
		want   []string
	}{
		{
			name:   "exact length",
			widths: []int{3, 4},
			line:   "ab cdef",
			want:   []string{"ab", "cdef"},
		},
		{
			name:   "padded",
			widths: []int{3, 4},
			line:   "ab",
			want:   []string{"ab", ""},
		},
		{
			name:   "empty line",
			widths: []int{2, 2, 2},
			line:   "",
			want:   []string{"", "", ""},
		},
		{
			name:   "trims both sides",
			widths: []int{6, 5},
			line:   "  ab   12  ",
			want:   []string{"ab", "12"},
		},
		{
			name:   "multibyte",
			widths: []int{4, 2},
			line:   "Écho42",
			want:   []string{"Écho", "42"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Slice(tt.widths, tt.line)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestSlice_LengthMismatch(t *testing.T) {
	_, err := Slice([]int{3, 4}, "ab cdefgh")
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrLengthMismatch)

	var lm *LengthMismatchError
	require.True(t, errors.As(err, &lm))
	assert.Equal(t, 7, lm.Want)
	assert.Equal(t, 9, lm.Got)
}

func TestSlice_InvalidWidths(t *testing.T) {
	for _, widths := range [][]int{nil, {}, {3, 0}, {-1}} {
		_, err := Slice(widths, "abc")
		assert.ErrorIs(t, err, ErrInvalidWidth, "widths %v", widths)
	}
}

func TestLayout_Slice(t *testing.T) {
	layout, err := NewLayout(
		Field{Name: "district", Width: 20},
		Field{Name: "party", Width: 4},
		Field{Name: "votes", Width: 6},
	)
	require.NoError(t, err)
	assert.Equal(t, []int{20, 4, 6}, layout.Widths())

	rec, err := layout.Slice("Twenty-First        DEM  1204")
	require.NoError(t, err)
	assert.Equal(t, []string{"district", "party", "votes"}, rec.Names)
	assert.Equal(t, "Twenty-First", rec.Get("district"))
	assert.Equal(t, "DEM", rec.Get("party"))
	assert.Equal(t, "1204", rec.Get("votes"))
}

func TestNewLayout_Invalid(t *testing.T) {
	tests := []struct {
		name   string
		fields []Field
	}{
		{name: "no fields"},
		{name: "missing name", fields: []Field{{Width: 3}}},
		{name: "duplicate", fields: []Field{{Name: "a", Width: 1}, {Name: "a", Width: 2}}},
		{name: "zero width", fields: []Field{{Name: "a", Width: 0}}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewLayout(tt.fields...)
			assert.Error(t, err)
		})
	}
}
