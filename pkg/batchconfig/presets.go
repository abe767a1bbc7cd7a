// Copyright 2026 Google LLC
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//      http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package batchconfig

import (
	"embed"
	"io/fs"
	"path"
	"sort"
	"strings"

	"github.com/agext/levenshtein"
	"github.com/pkg/errors"
)

//go:embed presets
var packaged embed.FS

const maxHintDist = 3

// Preset is a packaged configuration and the names it answers to.
type Preset struct {
	Name        string
	Aliases     []string
	Description string
	Config      *Config
}

// Registry maps preset names and aliases to configurations.
type Registry struct {
	presets map[string]Preset
	aliases map[string]string
}

// NewRegistry reads every *.json and *.yaml document at the root of fsys.
// A preset is named after its file stem and also answers to its Aliases.
func NewRegistry(fsys fs.FS) (*Registry, error) {
	entries, err := fs.ReadDir(fsys, ".")
	if err != nil {
		return nil, errors.Wrap(err, "failed to list presets")
	}

	r := &Registry{presets: map[string]Preset{}, aliases: map[string]string{}}
	for _, e := range entries {
		ext := path.Ext(e.Name())
		if e.IsDir() || (ext != ".json" && ext != ".yaml" && ext != ".yml") {
			continue
		}
		data, err := fs.ReadFile(fsys, e.Name())
		if err != nil {
			return nil, errors.Wrapf(err, "failed to read preset %s", e.Name())
		}
		c, err := Parse(data, e.Name())
		if err != nil {
			return nil, err
		}

		name := strings.TrimSuffix(e.Name(), ext)
		r.presets[name] = Preset{Name: name, Aliases: c.Aliases, Description: c.Description, Config: c}
		for _, a := range append([]string{name}, c.Aliases...) {
			key := strings.ToLower(a)
			if prev, ok := r.aliases[key]; ok && prev != name {
				return nil, errors.Errorf("preset alias %q is claimed by both %s and %s", a, prev, name)
			}
			r.aliases[key] = name
		}
	}
	return r, nil
}

// Lookup returns a copy of the preset named or aliased by name.
func (r *Registry) Lookup(name string) (*Config, error) {
	canonical, ok := r.aliases[strings.ToLower(name)]
	if !ok {
		if hint := r.hint(name); hint != "" {
			return nil, errors.Wrapf(ErrUnknownPreset, "no preset %q (did you mean %q?)", name, hint)
		}
		return nil, errors.Wrapf(ErrUnknownPreset, "no preset %q (available: %s)", name, strings.Join(r.Names(), ", "))
	}
	return r.presets[canonical].Config.Clone(), nil
}

// Has reports whether name is a known preset name or alias.
func (r *Registry) Has(name string) bool {
	_, ok := r.aliases[strings.ToLower(name)]
	return ok
}

// Names returns the canonical preset names, sorted.
func (r *Registry) Names() []string {
	names := make([]string, 0, len(r.presets))
	for n := range r.presets {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}

// Presets returns the packaged presets sorted by name.
func (r *Registry) Presets() []Preset {
	var out []Preset
	for _, n := range r.Names() {
		p := r.presets[n]
		p.Config = p.Config.Clone()
		out = append(out, p)
	}
	return out
}

func (r *Registry) hint(name string) string {
	best, bestDist := "", maxHintDist+1
	for alias, canonical := range r.aliases {
		d := levenshtein.Distance(strings.ToLower(name), alias, nil)
		if d < bestDist || (d == bestDist && canonical < best) {
			best, bestDist = canonical, d
		}
	}
	return best
}

// DefaultRegistry returns the registry of presets shipped with the module.
func DefaultRegistry() (*Registry, error) {
	sub, err := fs.Sub(packaged, "presets")
	if err != nil {
		return nil, errors.Wrap(err, "failed to open packaged presets")
	}
	return NewRegistry(sub)
}

// FromDefault resolves a packaged preset by name or alias.
func FromDefault(name string) (*Config, error) {
	r, err := DefaultRegistry()
	if err != nil {
		return nil, err
	}
	return r.Lookup(name)
}

// Presets lists the packaged presets.
func Presets() ([]Preset, error) {
	r, err := DefaultRegistry()
	if err != nil {
		return nil, err
	}
	return r.Presets(), nil
}
