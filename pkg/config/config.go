package config

import (
	"context"
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/ccollicutt/colsplit/pkg/columns"
	"github.com/ccollicutt/colsplit/pkg/fixedwidth"
)

// Load reads and validates a configuration file.
func Load(_ context.Context, path string) (*Config, error) {
	data, err := os.ReadFile(path) // #nosec G304 -- user-provided config path is expected
	if err != nil {
		return nil, fmt.Errorf("reading config file: %w", err)
	}

	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parsing config file: %w", err)
	}

	cfg.applyEnvironmentOverrides()

	if err := Validate(cfg); err != nil {
		return nil, fmt.Errorf("validating config: %w", err)
	}

	return cfg, nil
}

// Validate checks a configuration for errors, fills defaults and builds
// the fixed-width layouts.
func Validate(cfg *Config) error {
	if len(cfg.Layouts) == 0 {
		return errors.New("layouts: at least one layout is required")
	}

	seen := make(map[string]bool, len(cfg.Layouts))
	for i := range cfg.Layouts {
		layout := &cfg.Layouts[i]
		if err := validateLayout(layout); err != nil {
			return fmt.Errorf("layouts[%d] (%s): %w", i, layout.Name, err)
		}
		if seen[layout.Name] {
			return fmt.Errorf("layouts[%d] (%s): duplicate layout name", i, layout.Name)
		}
		seen[layout.Name] = true

		if len(layout.SourcePatterns(cfg)) == 0 {
			return fmt.Errorf("layouts[%d] (%s): no sources (set sources at top level or on the layout)", i, layout.Name)
		}
	}

	return nil
}

func validateLayout(layout *LayoutConfig) error {
	if layout.Name == "" {
		return errors.New("name is required")
	}

	switch layout.Mode {
	case ModeInferred:
		return validateInferredLayout(layout)
	case ModeFixed:
		return validateFixedLayout(layout)
	default:
		return fmt.Errorf("invalid mode %q (must be inferred or fixed)", layout.Mode)
	}
}

func validateInferredLayout(layout *LayoutConfig) error {
	if len(layout.Fields) > 0 {
		return errors.New("fields are only valid for fixed layouts")
	}

	if layout.MinSeparatorRun < 0 {
		return fmt.Errorf("min_separator_run must be >= 1, got %d", layout.MinSeparatorRun)
	}
	if layout.MinSeparatorRun == 0 {
		layout.MinSeparatorRun = DefaultMinSeparatorRun
	}

	if layout.BoundaryMode == "" {
		layout.BoundaryMode = DefaultBoundaryMode
	}
	mode, err := columns.ParseBoundaryMode(layout.BoundaryMode)
	if err != nil {
		return fmt.Errorf("boundary_mode: %w", err)
	}
	layout.boundaryMode = mode

	return nil
}

func validateFixedLayout(layout *LayoutConfig) error {
	if len(layout.Fields) == 0 {
		return errors.New("fields are required for fixed layouts")
	}
	if layout.MinSeparatorRun != 0 || layout.BoundaryMode != "" {
		return errors.New("min_separator_run and boundary_mode are only valid for inferred layouts")
	}

	fixed, err := fixedwidth.NewLayout(layout.Fields...)
	if err != nil {
		return err
	}
	layout.fixed = fixed

	return nil
}
