package config

import (
	"errors"
	"fmt"
	"regexp"

	"github.com/indaco/cutrelease/internal/release"
	"github.com/indaco/cutrelease/internal/syncfiles"
	"github.com/indaco/cutrelease/internal/tagmanager"
	"github.com/indaco/cutrelease/internal/toolchain"
	"github.com/indaco/cutrelease/internal/tui"
)

// ValidationResult represents the result of a validation check.
type ValidationResult struct {
	// Category is the validation category (e.g., "Policy", "Sync files").
	Category string

	// Passed indicates if the check passed.
	Passed bool

	// Message provides details about the validation result.
	Message string

	// Warning indicates if this is a warning rather than an error.
	Warning bool
}

// Validate returns an ErrInvalidConfig error listing every failed check.
// Warnings are ignored.
func Validate(cfg *Config) error {
	var errs []error
	for _, r := range Check(cfg) {
		if !r.Passed && !r.Warning {
			errs = append(errs, fmt.Errorf("%s: %s", r.Category, r.Message))
		}
	}
	if len(errs) == 0 {
		return nil
	}
	return fmt.Errorf("%w: %w", ErrInvalidConfig, errors.Join(errs...))
}

// Check runs all configuration checks and returns one result per check.
func Check(cfg *Config) []ValidationResult {
	var results []ValidationResult
	add := func(category string, passed bool, message string, warning bool) {
		results = append(results, ValidationResult{Category: category, Passed: passed, Message: message, Warning: warning})
	}

	policy, err := release.ParsePolicy(cfg.Policy)
	if err != nil {
		add("Policy", false, err.Error(), false)
	} else {
		add("Policy", true, fmt.Sprintf("release policy is %s", policy), false)

		c, err := tagmanager.ParseConstraint(cfg.Base, policy == release.Patch)
		if err != nil {
			add("Base", false, err.Error(), false)
		} else {
			add("Base", true, fmt.Sprintf("releases matching %s", c), false)
		}
	}

	if _, err := cfg.Profile(); err != nil {
		add("Toolchain", false, err.Error(), false)
	} else {
		add("Toolchain", true, fmt.Sprintf("toolchain %s", cfg.toolchainName()), false)
	}

	for _, f := range cfg.SyncFiles {
		if err := checkSyncFile(f); err != nil {
			add("Sync files", false, err.Error(), false)
		} else {
			add("Sync files", true, fmt.Sprintf("%s (%s)", f.Path, f.Resolved().Format), false)
		}
	}

	if cfg.Theme != "" && !tui.IsValidTheme(cfg.Theme) {
		add("Theme", false, fmt.Sprintf("unknown theme %q, using the default", cfg.Theme), true)
	}
	if cfg.Tag.Message != "" && !cfg.Tag.Annotate {
		add("Tag", false, "tag.message is ignored for lightweight tags, set tag.annotate", true)
	}
	return results
}

// Profile resolves the toolchain profile with the configured overrides.
func (c *Config) Profile() (toolchain.Profile, error) {
	return toolchain.Resolve(c.toolchainName(), c.Commands)
}

func (c *Config) toolchainName() string {
	if c.Toolchain == "" {
		return toolchain.DefaultProfile
	}
	return c.Toolchain
}

func checkSyncFile(f syncfiles.File) error {
	if f.Path == "" {
		return fmt.Errorf("sync file with empty path")
	}
	r := f.Resolved()
	if !r.Format.IsValid() {
		return fmt.Errorf("%s: unknown format %q", f.Path, f.Format)
	}
	if r.Format != syncfiles.FormatRegex {
		return nil
	}
	if r.Pattern == "" {
		return fmt.Errorf("%s: regex format requires a pattern", f.Path)
	}
	re, err := regexp.Compile(r.Pattern)
	if err != nil {
		return fmt.Errorf("%s: invalid pattern: %v", f.Path, err)
	}
	if re.NumSubexp() < 1 {
		return fmt.Errorf("%s: pattern needs a capturing group", f.Path)
	}
	return nil
}

// HasErrors returns true if any validation failed.
func HasErrors(results []ValidationResult) bool {
	return ErrorCount(results) > 0
}

// ErrorCount returns the number of failed validations.
func ErrorCount(results []ValidationResult) int {
	count := 0
	for _, r := range results {
		if !r.Passed && !r.Warning {
			count++
		}
	}
	return count
}

// WarningCount returns the number of warnings.
func WarningCount(results []ValidationResult) int {
	count := 0
	for _, r := range results {
		if r.Warning {
			count++
		}
	}
	return count
}
