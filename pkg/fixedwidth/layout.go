package fixedwidth

import (
	"errors"
	"fmt"
)

// Field is a named fixed-width column.
type Field struct {
	Name  string `yaml:"name" json:"name"`
	Width int    `yaml:"width" json:"width"`
}

// Layout is an ordered set of fixed-width columns.
type Layout struct {
	Fields []Field
	widths []int
}

// Record holds the values of one sliced line.
type Record struct {
	// Names lists the field names in layout order.
	Names []string

	// Values maps a field name to its trimmed value.
	Values map[string]string
}

// Get returns the value for a field name.
func (r *Record) Get(name string) string {
	return r.Values[name]
}

// NewLayout validates fields and builds a Layout. Field names must be
// non-empty and unique.
func NewLayout(fields ...Field) (*Layout, error) {
	if len(fields) == 0 {
		return nil, errors.New("layout has no fields")
	}
	seen := make(map[string]bool, len(fields))
	widths := make([]int, len(fields))
	for i, f := range fields {
		if f.Name == "" {
			return nil, fmt.Errorf("fields[%d]: name is required", i)
		}
		if seen[f.Name] {
			return nil, fmt.Errorf("fields[%d]: duplicate name %q", i, f.Name)
		}
		seen[f.Name] = true
		if f.Width <= 0 {
			return nil, fmt.Errorf("fields[%d] (%s): %w: %d", i, f.Name, ErrInvalidWidth, f.Width)
		}
		widths[i] = f.Width
	}
	return &Layout{Fields: fields, widths: widths}, nil
}

// Widths returns the field widths in order.
func (l *Layout) Widths() []int {
	return append([]int(nil), l.widths...)
}

// Names returns the field names in order.
func (l *Layout) Names() []string {
	names := make([]string, len(l.Fields))
	for i, f := range l.Fields {
		names[i] = f.Name
	}
	return names
}

// Slice cuts line according to the layout.
func (l *Layout) Slice(line string) (*Record, error) {
	values, err := Slice(l.widths, line)
	if err != nil {
		return nil, err
	}
	rec := &Record{
		Names:  l.Names(),
		Values: make(map[string]string, len(values)),
	}
	for i, v := range values {
		rec.Values[rec.Names[i]] = v
	}
	return rec, nil
}
