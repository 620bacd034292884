package columns

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrNoBreaks is returned when a row is split with an empty boundary list.
	ErrNoBreaks = errors.New("no column breaks")

	// ErrInvalidBreaks is returned when a boundary list is negative or not
	// strictly increasing.
	ErrInvalidBreaks = errors.New("invalid column breaks")
)

// ValidateBreaks checks that breaks is a usable boundary list.
func ValidateBreaks(breaks []int) error {
	if len(breaks) == 0 {
		return ErrNoBreaks
	}
	if breaks[0] < 0 {
		return fmt.Errorf("%w: negative index %d", ErrInvalidBreaks, breaks[0])
	}
	for i := 1; i < len(breaks); i++ {
		if breaks[i] <= breaks[i-1] {
			return fmt.Errorf("%w: %d does not follow %d", ErrInvalidBreaks, breaks[i], breaks[i-1])
		}
	}
	return nil
}

// SplitRow slices line into one trimmed field per boundary.
//
// Field i spans [breaks[i], breaks[i+1]-1); the character just before the
// next boundary is always a separator position and is dropped. The last
// field runs to the end of the line. Boundaries past the end of a short
// line produce empty fields.
func SplitRow(line string, breaks []int) ([]string, error) {
	if err := ValidateBreaks(breaks); err != nil {
		return nil, err
	}
	return splitRow([]rune(line), breaks), nil
}

// SplitRows applies SplitRow to every line, preserving input order.
func SplitRows(lines []string, breaks []int) ([][]string, error) {
	if err := ValidateBreaks(breaks); err != nil {
		return nil, err
	}
	rows := make([][]string, 0, len(lines))
	for _, line := range lines {
		rows = append(rows, splitRow([]rune(line), breaks))
	}
	return rows, nil
}

func splitRow(line []rune, breaks []int) []string {
	fields := make([]string, len(breaks))
	last := len(breaks) - 1
	for i := 0; i < last; i++ {
		fields[i] = field(line, breaks[i], breaks[i+1]-1)
	}
	fields[last] = field(line, breaks[last], len(line))
	return fields
}

// field returns line[start:end] trimmed, clamping both ends to the line.
func field(line []rune, start, end int) string {
	if end > len(line) {
		end = len(line)
	}
	if start >= end {
		return ""
	}
	return strings.TrimSpace(string(line[start:end]))
}
