// Package config loads the release configuration from .cutrelease.yaml and
// the CUTRELEASE_* environment variables.
package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"

	"github.com/goccy/go-yaml"
	"github.com/indaco/cutrelease/internal/core"
	"github.com/indaco/cutrelease/internal/syncfiles"
	"github.com/indaco/cutrelease/internal/toolchain"
)

// FileName is the configuration file looked up in the repository root.
const FileName = ".cutrelease.yaml"

// ConfigFilePerm defines secure file permissions for config files (owner read/write only).
const ConfigFilePerm = core.PermOwnerRW

// ErrInvalidConfig marks every configuration error: unreadable or malformed
// file, bad environment value, or a rejected combination of settings.
var ErrInvalidConfig = errors.New("invalid configuration")

// TagConfig controls how release tags are created.
type TagConfig struct {
	Annotate bool   `yaml:"annotate,omitempty"`
	Message  string `yaml:"message,omitempty"`
}

// Config is the release configuration. Every field can also be set by a
// command-line flag, which takes precedence.
type Config struct {
	Repo      string             `yaml:"repo,omitempty"`
	Branch    string             `yaml:"branch,omitempty"`
	Policy    string             `yaml:"policy,omitempty"`
	Base      string             `yaml:"base,omitempty"`
	Install   bool               `yaml:"install,omitempty"`
	NoPush    bool               `yaml:"no-push,omitempty"`
	Confirm   bool               `yaml:"confirm,omitempty"`
	Manifest  string             `yaml:"manifest,omitempty"`
	Toolchain string             `yaml:"toolchain,omitempty"`
	Commands  *toolchain.Profile `yaml:"commands,omitempty"`
	Tag       TagConfig          `yaml:"tag,omitempty"`
	SyncFiles []syncfiles.File   `yaml:"sync-files,omitempty"`
	Theme     string             `yaml:"theme,omitempty"`
}

// Default returns the configuration used when no file exists.
func Default() *Config {
	return &Config{
		Policy:    "minor",
		Toolchain: toolchain.DefaultProfile,
	}
}

// LoadFn is the loader used by the CLI; tests replace it.
var LoadFn = Load

// Load reads the configuration at path. A missing file yields Default unless
// required is true.
func Load(path string, required bool) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) && !required {
			return Default(), nil
		}
		return nil, fmt.Errorf("%w: %v", ErrInvalidConfig, err)
	}

	cfg := Default()
	decoder := yaml.NewDecoder(bytes.NewReader(data), yaml.Strict())
	if err := decoder.Decode(cfg); err != nil {
		if errors.Is(err, io.EOF) {
			return cfg, nil
		}
		return nil, fmt.Errorf("%w: %s: %v", ErrInvalidConfig, path, err)
	}
	return cfg, nil
}

// PathIn returns the configuration file path for a repository directory.
func PathIn(repo string) string {
	if repo == "" {
		return FileName
	}
	return filepath.Join(repo, FileName)
}

// Env variable names.
const (
	EnvRepo      = "CUTRELEASE_REPO"
	EnvToolchain = "CUTRELEASE_TOOLCHAIN"
	EnvNoPush    = "CUTRELEASE_NO_PUSH"
)

// ApplyEnv overrides cfg with the CUTRELEASE_* variables returned by getenv.
func ApplyEnv(cfg *Config, getenv func(string) string) error {
	if v := getenv(EnvRepo); v != "" {
		cfg.Repo = filepath.Clean(v)
	}
	if v := getenv(EnvToolchain); v != "" {
		cfg.Toolchain = v
	}
	if v := getenv(EnvNoPush); v != "" {
		b, err := strconv.ParseBool(v)
		if err != nil {
			return fmt.Errorf("%w: %s=%q is not a boolean", ErrInvalidConfig, EnvNoPush, v)
		}
		cfg.NoPush = b
	}
	return nil
}

// Save writes cfg as YAML to path.
func Save(cfg *Config, path string) error {
	data, err := yaml.MarshalWithOptions(cfg, yaml.Indent(2), yaml.IndentSequence(true))
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}
	if err := os.WriteFile(path, data, ConfigFilePerm); err != nil {
		return fmt.Errorf("failed to write config to %q: %w", path, err)
	}
	return nil
}
