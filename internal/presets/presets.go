// Package presets is the read-only catalogue of named parameter snapshots
// offered as shortcuts for common business profiles.
package presets

import (
	"errors"
	"fmt"
	"sort"

	"github.com/iwvelando/roi-forecast/internal/calculator"
	"github.com/iwvelando/roi-forecast/internal/params"
)

// ErrNotFound is returned by Get for a name that is not in the library.
var ErrNotFound = errors.New("no such preset")

// ErrUnknownProfile is returned for a preset naming a profile the library
// does not hold.
var ErrUnknownProfile = errors.New("unknown profile")

// Preset is a named, immutable parameter snapshot. Profile names the set of
// calculator assumptions the preset is computed with; an empty profile uses
// the deployment's base assumptions.
type Preset struct {
	Name        string          `json:"name" yaml:"name"`
	Description string          `json:"description" yaml:"description"`
	Profile     string          `json:"profile,omitempty" yaml:"profile,omitempty"`
	Params      params.Snapshot `json:"params" yaml:"params"`
}

// Library is an ordered, read-only set of presets and the assumption
// profiles they refer to.
type Library struct {
	presets  []Preset
	index    map[string]int
	profiles map[string]calculator.Assumptions
}

// New builds a library from presets using the built-in profiles. Names must be
// non-empty and unique, every profile must exist and every snapshot must
// satisfy the parameter invariants.
func New(presets ...Preset) (*Library, error) {
	return build(BuiltinProfiles(), presets)
}

func build(profiles map[string]calculator.Assumptions, presets []Preset) (*Library, error) {
	l := &Library{
		index:    make(map[string]int, len(presets)),
		profiles: make(map[string]calculator.Assumptions, len(profiles)),
	}
	for name, a := range profiles {
		l.profiles[name] = a
	}
	for _, p := range presets {
		if p.Name == "" {
			return nil, errors.New("preset name is empty")
		}
		if _, dup := l.index[p.Name]; dup {
			return nil, fmt.Errorf("duplicate preset %q", p.Name)
		}
		if p.Profile != "" && !l.HasProfile(p.Profile) {
			return nil, fmt.Errorf("preset %q: %w %q", p.Name, ErrUnknownProfile, p.Profile)
		}
		if err := p.Params.Validate(); err != nil {
			return nil, fmt.Errorf("preset %q: %w", p.Name, err)
		}
		l.index[p.Name] = len(l.presets)
		l.presets = append(l.presets, clonePreset(p))
	}
	return l, nil
}

// Get returns a copy of the named preset's snapshot.
func (l *Library) Get(name string) (params.Snapshot, error) {
	p, ok := l.Lookup(name)
	if !ok {
		return params.Snapshot{}, fmt.Errorf("%w: %q", ErrNotFound, name)
	}
	return p.Params, nil
}

// Lookup returns a copy of the named preset.
func (l *Library) Lookup(name string) (Preset, bool) {
	i, ok := l.index[name]
	if !ok {
		return Preset{}, false
	}
	return clonePreset(l.presets[i]), true
}

// Names lists preset names in catalogue order.
func (l *Library) Names() []string {
	names := make([]string, len(l.presets))
	for i, p := range l.presets {
		names[i] = p.Name
	}
	return names
}

// Presets returns copies of every preset in catalogue order.
func (l *Library) Presets() []Preset {
	out := make([]Preset, len(l.presets))
	for i, p := range l.presets {
		out[i] = clonePreset(p)
	}
	return out
}

// Len returns the number of presets.
func (l *Library) Len() int {
	return len(l.presets)
}

// WithOverrides returns a new library where each extra preset replaces the
// built-in of the same name in place or is appended after the built-ins.
func (l *Library) WithOverrides(extra ...Preset) (*Library, error) {
	merged := l.Presets()
	for _, p := range extra {
		if i, ok := l.index[p.Name]; ok {
			merged[i] = p
			continue
		}
		merged = append(merged, p)
	}
	return build(l.profiles, merged)
}

// WithProfiles returns a new library where each extra profile replaces the
// profile of the same name or is added.
func (l *Library) WithProfiles(extra map[string]calculator.Assumptions) (*Library, error) {
	merged := make(map[string]calculator.Assumptions, len(l.profiles)+len(extra))
	for name, a := range l.profiles {
		merged[name] = a
	}
	for name, a := range extra {
		if name == "" {
			return nil, errors.New("profile name is empty")
		}
		merged[name] = a
	}
	return build(merged, l.presets)
}

// HasProfile reports whether the library holds the named profile.
func (l *Library) HasProfile(name string) bool {
	_, ok := l.profiles[name]
	return ok
}

// Profile returns the named assumption profile.
func (l *Library) Profile(name string) (calculator.Assumptions, bool) {
	a, ok := l.profiles[name]
	return a, ok
}

// ProfileNames lists the profile names in lexical order.
func (l *Library) ProfileNames() []string {
	names := make([]string, 0, len(l.profiles))
	for name := range l.profiles {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// AssumptionsFor returns the assumptions the named preset is computed with.
// It reports false for unknown presets and presets without a profile.
func (l *Library) AssumptionsFor(preset string) (calculator.Assumptions, bool) {
	i, ok := l.index[preset]
	if !ok || l.presets[i].Profile == "" {
		return calculator.Assumptions{}, false
	}
	return l.Profile(l.presets[i].Profile)
}

func clonePreset(p Preset) Preset {
	p.Params = p.Params.Clone()
	return p
}
