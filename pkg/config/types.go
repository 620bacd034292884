// Package config provides configuration loading and validation for colsplit.
package config

import (
	"github.com/ccollicutt/colsplit/pkg/columns"
	"github.com/ccollicutt/colsplit/pkg/fixedwidth"
	"github.com/ccollicutt/colsplit/pkg/reader"
)

// Config is the root configuration structure loaded from YAML.
type Config struct {
	// Sources lists report paths or glob patterns used by layouts that do
	// not name their own.
	Sources []string `yaml:"sources,omitempty" json:"sources,omitempty"`

	Layouts []LayoutConfig `yaml:"layouts" json:"layouts"`
}

// Mode selects how a layout finds its columns.
type Mode string

const (
	// ModeInferred derives column breaks from whitespace runs across the file.
	ModeInferred Mode = "inferred"
	// ModeFixed slices every line with explicit field widths.
	ModeFixed Mode = "fixed"
)

// LayoutConfig describes how to split one family of report files.
type LayoutConfig struct {
	Name        string `yaml:"name" json:"name"`
	Description string `yaml:"description,omitempty" json:"description,omitempty"`
	Mode        Mode   `yaml:"mode" json:"mode"`

	// Sources overrides the top-level sources for this layout.
	Sources []string `yaml:"sources,omitempty" json:"sources,omitempty"`

	// Line filtering
	SkipBlank     bool   `yaml:"skip_blank,omitempty" json:"skip_blank,omitempty"`
	CommentPrefix string `yaml:"comment_prefix,omitempty" json:"comment_prefix,omitempty"`

	// Inferred layout fields
	MinSeparatorRun int    `yaml:"min_separator_run,omitempty" json:"min_separator_run,omitempty"`
	BoundaryMode    string `yaml:"boundary_mode,omitempty" json:"boundary_mode,omitempty"` // leading_edge, wraparound

	// Fixed layout fields
	Fields []fixedwidth.Field `yaml:"fields,omitempty" json:"fields,omitempty"`

	// Populated during validation
	boundaryMode columns.BoundaryMode
	fixed        *fixedwidth.Layout
}

// ColumnOptions returns the inference options for an inferred layout.
func (l *LayoutConfig) ColumnOptions() []columns.Option {
	return []columns.Option{
		columns.WithMinRun(l.MinSeparatorRun),
		columns.WithBoundaryMode(l.boundaryMode),
	}
}

// Boundary returns the validated boundary mode of an inferred layout.
func (l *LayoutConfig) Boundary() columns.BoundaryMode {
	return l.boundaryMode
}

// FixedLayout returns the validated fixed-width layout, or nil for inferred layouts.
func (l *LayoutConfig) FixedLayout() *fixedwidth.Layout {
	return l.fixed
}

// ReaderOptions returns the line filtering options for the layout.
func (l *LayoutConfig) ReaderOptions() reader.Options {
	return reader.Options{
		SkipBlank:     l.SkipBlank,
		CommentPrefix: l.CommentPrefix,
	}
}

// SourcePatterns returns the layout's own sources, falling back to the
// top-level sources of cfg.
func (l *LayoutConfig) SourcePatterns(cfg *Config) []string {
	if len(l.Sources) > 0 {
		return l.Sources
	}
	return cfg.Sources
}

// Layout returns the layout with the given name, or nil.
func (c *Config) Layout(name string) *LayoutConfig {
	for i := range c.Layouts {
		if c.Layouts[i].Name == name {
			return &c.Layouts[i]
		}
	}
	return nil
}
