// Package fixedwidth slices lines into fields of known, fixed widths.
package fixedwidth

import (
	"errors"
	"fmt"
	"strings"
	"unicode/utf8"
)

var (
	// ErrInvalidWidth is returned when no widths are given or a width is not positive.
	ErrInvalidWidth = errors.New("invalid field width")

	// ErrLengthMismatch is returned when a line cannot be partitioned by the widths.
	ErrLengthMismatch = errors.New("line length does not match field widths")
)

// LengthMismatchError reports a line that is longer than its layout.
type LengthMismatchError struct {
	Want int // sum of the field widths
	Got  int // line length in characters after padding
}

func (e *LengthMismatchError) Error() string {
	return fmt.Sprintf("%s: widths cover %d characters, line has %d", ErrLengthMismatch, e.Want, e.Got)
}

// Unwrap allows errors.Is(err, ErrLengthMismatch).
func (e *LengthMismatchError) Unwrap() error {
	return ErrLengthMismatch
}

// Total returns the sum of widths, or an error if any width is not positive.
func Total(widths []int) (int, error) {
	if len(widths) == 0 {
		return 0, fmt.Errorf("%w: no widths", ErrInvalidWidth)
	}
	total := 0
	for i, w := range widths {
		if w <= 0 {
			return 0, fmt.Errorf("%w: widths[%d] = %d", ErrInvalidWidth, i, w)
		}
		total += w
	}
	return total, nil
}

// Slice pads line with spaces to the sum of widths, cuts it into consecutive
// fields of those widths and trims each field. Widths count characters.
func Slice(widths []int, line string) ([]string, error) {
	total, err := Total(widths)
	if err != nil {
		return nil, err
	}

	n := utf8.RuneCountInString(line)
	if n < total {
		line += strings.Repeat(" ", total-n)
		n = total
	}
	if n != total {
		return nil, &LengthMismatchError{Want: total, Got: n}
	}

	runes := []rune(line)
	fields := make([]string, len(widths))
	pos := 0
	for i, w := range widths {
		fields[i] = strings.TrimSpace(string(runes[pos : pos+w]))
		pos += w
	}
	return fields, nil
}
