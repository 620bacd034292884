// Package numwords converts English number words such as "twenty-first" or
// "Forty Two" into integers. Only the vocabulary needed for district and
// precinct names is supported: cardinals and ordinals up to nineteen and
// the tens from twenty to ninety.
package numwords

import (
	"errors"
	"fmt"
	"strings"

	"golang.org/x/text/cases"
)

// DefaultSeparator joins the words of a compound number.
const DefaultSeparator = "-"

// ErrUnknownWord is returned when a token is not in the vocabulary.
var ErrUnknownWord = errors.New("unknown number word")

// UnknownWordError identifies the token that could not be resolved.
type UnknownWordError struct {
	Word   string
	Phrase string
}

func (e *UnknownWordError) Error() string {
	return fmt.Sprintf("%s %q in %q", ErrUnknownWord, e.Word, e.Phrase)
}

// Unwrap allows errors.Is(err, ErrUnknownWord).
func (e *UnknownWordError) Unwrap() error {
	return ErrUnknownWord
}

var vocabulary = map[string]int{
	"zero":      0,
	"one":       1,
	"two":       2,
	"three":     3,
	"four":      4,
	"five":      5,
	"six":       6,
	"seven":     7,
	"eight":     8,
	"nine":      9,
	"ten":       10,
	"eleven":    11,
	"twelve":    12,
	"thirteen":  13,
	"fourteen":  14,
	"fifteen":   15,
	"sixteen":   16,
	"seventeen": 17,
	"eighteen":  18,
	"nineteen":  19,
	"twenty":    20,
	"thirty":    30,
	"forty":     40,
	"fifty":     50,
	"sixty":     60,
	"seventy":   70,
	"eighty":    80,
	"ninety":    90,

	"first":       1,
	"second":      2,
	"third":       3,
	"fourth":      4,
	"fifth":       5,
	"sixth":       6,
	"seventh":     7,
	"eighth":      8,
	"ninth":       9,
	"tenth":       10,
	"eleventh":    11,
	"twelfth":     12,
	"thirteenth":  13,
	"fourteenth":  14,
	"fifteenth":   15,
	"sixteenth":   16,
	"seventeenth": 17,
	"eighteenth":  18,
	"nineteenth":  19,
	"twentieth":   20,
	"thirtieth":   30,
	"fortieth":    40,
	"fiftieth":    50,
	"sixtieth":    60,
	"seventieth":  70,
	"eightieth":   80,
	"ninetieth":   90,
}

// Lookup returns the value of a single word, ignoring case.
func Lookup(word string) (int, bool) {
	v, ok := vocabulary[cases.Fold().String(word)]
	return v, ok
}

// Resolve converts a hyphen-joined phrase to its value.
func Resolve(phrase string) (int, error) {
	return ResolveSep(phrase, DefaultSeparator)
}

// ResolveSep splits phrase on sep and returns the sum of the word values.
// An empty sep selects DefaultSeparator.
func ResolveSep(phrase, sep string) (int, error) {
	if sep == "" {
		sep = DefaultSeparator
	}
	total := 0
	for _, word := range strings.Split(phrase, sep) {
		v, ok := Lookup(word)
		if !ok {
			return 0, &UnknownWordError{Word: word, Phrase: phrase}
		}
		total += v
	}
	return total, nil
}
