// Package toolchain runs the build tool of the released project: dependency
// resync, lint, format and local install.
package toolchain

import (
	"fmt"
	"slices"
	"sort"
	"strings"
)

// DefaultProfile is used when no toolchain is configured.
const DefaultProfile = "cargo"

// Profile lists the commands of one build toolchain. Each command is an argv
// slice; a step may hold several commands run in order.
type Profile struct {
	Name     string     `yaml:"name,omitempty"`
	Manifest string     `yaml:"manifest,omitempty"`
	Resync   [][]string `yaml:"resync,omitempty"`
	Lint     [][]string `yaml:"lint,omitempty"`
	Format   [][]string `yaml:"format,omitempty"`
	Install  [][]string `yaml:"install,omitempty"`
}

var builtins = map[string]Profile{
	"cargo": {
		Name:     "cargo",
		Manifest: "Cargo.toml",
		Resync:   [][]string{{"cargo", "update"}},
		Lint:     [][]string{{"cargo", "clippy", "--", "-D", "warnings"}},
		Format:   [][]string{{"cargo", "fmt"}},
		Install:  [][]string{{"cargo", "install", "--path", "."}},
	},
	"uv": {
		Name:     "uv",
		Manifest: "pyproject.toml",
		Resync:   [][]string{{"uv", "lock"}},
		Lint:     [][]string{{"uv", "run", "ruff", "check"}},
		Format:   [][]string{{"uv", "run", "ruff", "format"}},
		Install:  [][]string{{"uv", "tool", "install", "."}},
	},
}

// Builtin returns a copy of the named built-in profile.
func Builtin(name string) (Profile, bool) {
	p, ok := builtins[name]
	if !ok {
		return Profile{}, false
	}
	return p.clone(), true
}

// BuiltinNames returns the built-in profile names, sorted.
func BuiltinNames() []string {
	names := make([]string, 0, len(builtins))
	for name := range builtins {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Resolve picks the named built-in profile and applies the non-empty fields
// of override on top of it. An unknown name is accepted only when override
// defines every step itself.
func Resolve(name string, override *Profile) (Profile, error) {
	if name == "" {
		name = DefaultProfile
	}

	base, ok := Builtin(name)
	if !ok {
		if override == nil || !override.complete() {
			return Profile{}, fmt.Errorf("unknown toolchain %q (available: %s)", name, strings.Join(BuiltinNames(), ", "))
		}
		base = Profile{Name: name}
	}
	if override == nil {
		return base, nil
	}

	if override.Manifest != "" {
		base.Manifest = override.Manifest
	}
	if len(override.Resync) > 0 {
		base.Resync = cloneCommands(override.Resync)
	}
	if len(override.Lint) > 0 {
		base.Lint = cloneCommands(override.Lint)
	}
	if len(override.Format) > 0 {
		base.Format = cloneCommands(override.Format)
	}
	if len(override.Install) > 0 {
		base.Install = cloneCommands(override.Install)
	}
	return base, base.Validate()
}

// Validate checks that no command is empty.
func (p Profile) Validate() error {
	steps := map[string][][]string{
		"resync":  p.Resync,
		"lint":    p.Lint,
		"format":  p.Format,
		"install": p.Install,
	}
	for step, cmds := range steps {
		for i, argv := range cmds {
			if len(argv) == 0 || argv[0] == "" {
				return fmt.Errorf("toolchain %q: %s command %d is empty", p.Name, step, i+1)
			}
		}
	}
	return nil
}

func (p Profile) complete() bool {
	return p.Manifest != "" && len(p.Resync) > 0 && len(p.Lint) > 0 && len(p.Format) > 0 && len(p.Install) > 0
}

func (p Profile) clone() Profile {
	p.Resync = cloneCommands(p.Resync)
	p.Lint = cloneCommands(p.Lint)
	p.Format = cloneCommands(p.Format)
	p.Install = cloneCommands(p.Install)
	return p
}

func cloneCommands(cmds [][]string) [][]string {
	out := make([][]string, len(cmds))
	for i, argv := range cmds {
		out[i] = slices.Clone(argv)
	}
	return out
}
