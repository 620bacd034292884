package config

import (
	"os"
	"strings"
)

// Default values for configuration.
const (
	DefaultMinSeparatorRun = 2
	DefaultBoundaryMode    = "leading_edge"
	DefaultCommentPrefix   = "#"
)

// Environment variable names.
const (
	EnvSources      = "COLSPLIT_SOURCES"
	EnvBoundaryMode = "COLSPLIT_BOUNDARY_MODE"
)

// DefaultConfig returns an empty configuration.
func DefaultConfig() *Config {
	return &Config{
		Sources: []string{},
		Layouts: []LayoutConfig{},
	}
}

// applyEnvironmentOverrides applies environment variable overrides to the config.
func (c *Config) applyEnvironmentOverrides() {
	if v := os.Getenv(EnvSources); v != "" {
		var sources []string
		for _, s := range strings.Split(v, ",") {
			if s = strings.TrimSpace(s); s != "" {
				sources = append(sources, s)
			}
		}
		c.Sources = sources
	}

	if mode := os.Getenv(EnvBoundaryMode); mode != "" {
		for i := range c.Layouts {
			if c.Layouts[i].Mode == ModeInferred {
				c.Layouts[i].BoundaryMode = mode
			}
		}
	}
}
