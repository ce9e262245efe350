package params

import (
	"errors"
	"fmt"
)

// ErrPresetNotFound is returned when a preset name cannot be resolved.
var ErrPresetNotFound = errors.New("preset not found")

// PresetSource resolves preset names to parameter snapshots.
type PresetSource interface {
	Get(name string) (Snapshot, error)
}

// Selection records whether the current snapshot is an unedited preset
// (Active) or has been edited by hand (Custom).
type Selection struct {
	active bool
	preset string
}

// Custom is the selection after any manual edit.
func Custom() Selection { return Selection{} }

// Active is the selection right after a preset has been applied.
func Active(name string) Selection { return Selection{active: true, preset: name} }

// Preset returns the active preset name, or false when the selection is custom.
func (s Selection) Preset() (string, bool) {
	return s.preset, s.active
}

// IsCustom reports whether the snapshot was edited after the last preset.
func (s Selection) IsCustom() bool { return !s.active }

func (s Selection) String() string {
	if s.IsCustom() {
		return "custom"
	}
	return s.preset
}

// Listener receives every snapshot the store emits.
type Listener func(Snapshot)

// Store holds the current snapshot of one view and notifies listeners on
// every change. It is not safe for concurrent use.
type Store struct {
	current   Snapshot
	selection Selection
	listeners []Listener
}

// NewStore creates a store seeded with initial. The selection starts custom.
func NewStore(initial Snapshot) *Store {
	return &Store{current: initial.Clone()}
}

// Snapshot returns a copy of the current snapshot.
func (s *Store) Snapshot() Snapshot {
	return s.current.Clone()
}

// Selection returns the active preset flag.
func (s *Store) Selection() Selection {
	return s.selection
}

// Subscribe registers fn to be called synchronously, in registration order,
// with every snapshot the store emits.
func (s *Store) Subscribe(fn Listener) {
	if fn == nil {
		return
	}
	s.listeners = append(s.listeners, fn)
}

// SetField replaces one field, marks the selection custom and emits the new
// snapshot. On error the store is left unchanged.
func (s *Store) SetField(path string, value float64) (Snapshot, error) {
	next, err := s.current.With(path, value)
	if err != nil {
		return s.Snapshot(), err
	}
	s.current = next
	s.selection = Custom()
	s.emit()
	return s.Snapshot(), nil
}

// Replace overwrites the whole snapshot with a normalized copy of snap and
// marks the selection custom.
func (s *Store) Replace(snap Snapshot) Snapshot {
	s.current = snap.Normalize()
	s.selection = Custom()
	s.emit()
	return s.Snapshot()
}

// ApplyPreset overwrites the whole snapshot with snap and marks name active.
func (s *Store) ApplyPreset(name string, snap Snapshot) Snapshot {
	s.current = snap.Clone()
	s.selection = Active(name)
	s.emit()
	return s.Snapshot()
}

// SelectPreset looks name up in src and applies it. An unknown name leaves
// the store unchanged and emits nothing.
func (s *Store) SelectPreset(src PresetSource, name string) (Snapshot, error) {
	snap, err := src.Get(name)
	if err != nil {
		return s.Snapshot(), fmt.Errorf("select preset %q: %w: %w", name, ErrPresetNotFound, err)
	}
	return s.ApplyPreset(name, snap), nil
}

func (s *Store) emit() {
	for _, fn := range s.listeners {
		fn(s.Snapshot())
	}
}
