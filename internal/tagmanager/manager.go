// Package tagmanager resolves release versions from the repository's tags and
// creates and publishes new release tags.
package tagmanager

import (
	"context"
	"fmt"

	"github.com/indaco/cutrelease/internal/core"
	"github.com/indaco/cutrelease/internal/semver"
)

// Config holds configuration for release tags.
type Config struct {
	// Annotate creates annotated tags instead of lightweight tags.
	Annotate bool

	// MessageTemplate is the annotated tag message.
	// Supports placeholders: {version}, {tag}, {major}, {minor}, {patch}.
	MessageTemplate string
}

// DefaultConfig returns lightweight tags with a "Release {version}" message
// template for when annotation is switched on.
func DefaultConfig() *Config {
	return &Config{
		Annotate:        false,
		MessageTemplate: "Release {version}",
	}
}

// Manager reads and writes release tags through git.
type Manager struct {
	config *Config
	gitOps core.GitTagOperations
}

// NewManager creates a Manager. A nil cfg means DefaultConfig.
func NewManager(cfg *Config, gitOps core.GitTagOperations) *Manager {
	if cfg == nil {
		cfg = DefaultConfig()
	}
	return &Manager{config: cfg, gitOps: gitOps}
}

// FormatTagName formats a version as a release tag name.
func FormatTagName(version semver.SemVersion) string {
	return ReleasePrefix + version.String()
}

// FormatTagName formats a version as a release tag name.
func (m *Manager) FormatTagName(version semver.SemVersion) string {
	return FormatTagName(version)
}

// Releases lists the tags and keeps the release ones.
func (m *Manager) Releases(ctx context.Context) (ReleaseSet, error) {
	names, err := m.gitOps.ListTags(ctx)
	if err != nil {
		return ReleaseSet{}, fmt.Errorf("failed to list tags: %w", err)
	}
	return NewReleaseSet(names), nil
}

// Latest returns the greatest release satisfying c.
func (m *Manager) Latest(ctx context.Context, c Constraint) (semver.SemVersion, error) {
	set, err := m.Releases(ctx)
	if err != nil {
		return semver.SemVersion{}, err
	}
	return set.Latest(c)
}

// CreateTag tags HEAD with the release tag of version.
func (m *Manager) CreateTag(ctx context.Context, version semver.SemVersion) error {
	name := m.FormatTagName(version)
	if m.config.Annotate {
		if err := m.gitOps.CreateAnnotatedTag(ctx, name, m.FormatTagMessage(version)); err != nil {
			return fmt.Errorf("failed to create annotated tag %s: %w", name, err)
		}
		return nil
	}
	if err := m.gitOps.CreateLightweightTag(ctx, name); err != nil {
		return fmt.Errorf("failed to create tag %s: %w", name, err)
	}
	return nil
}

// PushTag pushes the release tag of version to origin.
func (m *Manager) PushTag(ctx context.Context, version semver.SemVersion) error {
	name := m.FormatTagName(version)
	if err := m.gitOps.PushTag(ctx, name); err != nil {
		return fmt.Errorf("failed to push tag %s: %w", name, err)
	}
	return nil
}

// FormatTagMessage renders the configured message template for version.
func (m *Manager) FormatTagMessage(version semver.SemVersion) string {
	template := m.config.MessageTemplate
	if template == "" {
		template = "Release {version}"
	}
	return FormatMessage(template, version)
}
