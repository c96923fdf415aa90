package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/hay-kot/criterio"

	"github.com/colonyops/trek/internal/core/catalog"
	"github.com/colonyops/trek/internal/core/styles"
	"github.com/colonyops/trek/internal/core/trip"
)

// Validate checks that the configuration is structurally valid.
func (c *Config) Validate() error {
	var errs criterio.FieldErrorsBuilder

	if c.DataDir == "" {
		errs = errs.Append("data_dir", fmt.Errorf("cannot be empty"))
	}

	switch c.Storage.Backend {
	case BackendJSON, BackendSQLite:
	default:
		errs = errs.Append("storage.backend", fmt.Errorf("unknown backend %q (want json or sqlite)", c.Storage.Backend))
	}

	if c.Storage.Database.BusyTimeout < 0 {
		errs = errs.Append("storage.database.busy_timeout", fmt.Errorf("must not be negative"))
	}

	if _, ok := styles.GetPalette(c.TUI.Theme); !ok {
		errs = errs.Append("tui.theme", fmt.Errorf("unknown theme %q (want one of %s)", c.TUI.Theme, strings.Join(styles.ThemeNames(), ", ")))
	}

	if _, err := catalog.ParseCategory(c.Defaults.Category); err != nil {
		errs = errs.Append("defaults.category", err)
	}

	if _, err := trip.ParsePriority(c.Defaults.Priority); err != nil {
		errs = errs.Append("defaults.priority", err)
	}

	if err := validateDateFormat(c.DateFormat); err != nil {
		errs = errs.Append("date_format", err)
	}

	return errs.ToError()
}

// ValidateDeep runs Validate and then checks the files the configuration
// points at. An empty configPath skips the config file check.
func (c *Config) ValidateDeep(configPath string) error {
	if err := c.Validate(); err != nil {
		return err
	}

	return criterio.ValidateStruct(
		validateConfigFile(configPath),
		criterio.Run("data_dir", c.DataDir, isDirectoryOrNotExist),
	)
}

// validateDateFormat rejects layouts that do not render a calendar date.
func validateDateFormat(layout string) error {
	sample := time.Date(2031, time.November, 23, 0, 0, 0, 0, time.UTC)
	out := sample.Format(layout)
	if out == layout {
		return fmt.Errorf("%q is not a Go time layout", layout)
	}
	parsed, err := time.Parse(layout, out)
	if err != nil {
		return fmt.Errorf("%q cannot be parsed back: %w", layout, err)
	}
	if !parsed.Equal(sample) {
		return fmt.Errorf("%q must include year, month and day", layout)
	}
	return nil
}

func validateConfigFile(configPath string) error {
	if configPath == "" {
		return nil
	}

	info, err := os.Stat(configPath)
	if os.IsNotExist(err) {
		return nil // not found is fine, using defaults
	}
	if err != nil {
		return criterio.NewFieldErrors("config_file", fmt.Errorf("cannot access: %w", err))
	}
	if info.IsDir() {
		return criterio.NewFieldErrors("config_file", fmt.Errorf("%s is a directory, not a file", configPath))
	}
	return nil
}

// isDirectoryOrNotExist validates that a path is a directory or doesn't exist.
func isDirectoryOrNotExist(path string) error {
	info, err := os.Stat(path)
	if os.IsNotExist(err) {
		return nil // will be created
	}
	if err != nil {
		return fmt.Errorf("cannot access: %w", err)
	}
	if !info.IsDir() {
		return fmt.Errorf("exists but is not a directory")
	}
	return nil
}
