package config

import (
	"fmt"
	"slices"
	"strings"

	"github.com/leapstack-labs/querydef/internal/catalog"
)

var (
	validOutputs = []string{"auto", "text", "markdown", "json", "yaml"}
	validColors  = []string{"auto", "always", "never"}
)

// Validate checks if the configuration is valid.
func (c *Config) Validate() error {
	if !slices.Contains(validOutputs, c.OutputFormat) {
		return fmt.Errorf("invalid output format %q (expected one of %s)", c.OutputFormat, strings.Join(validOutputs, ", "))
	}
	if !slices.Contains(validColors, c.Color) {
		return fmt.Errorf("invalid color setting %q (expected one of %s)", c.Color, strings.Join(validColors, ", "))
	}
	if !catalog.ValidPrefix(c.Prefix) {
		return fmt.Errorf("invalid prefix %q: must start with a letter or underscore and contain only letters, digits and underscores", c.Prefix)
	}
	if c.Watch.Debounce < 0 {
		return fmt.Errorf("watch.debounce must not be negative, got %s", c.Watch.Debounce)
	}
	return nil
}
