// Package presets holds the fixed table of camera filter presets.
package presets

import (
	"errors"
	"fmt"
)

// ErrDuplicateID is returned by New when two presets share an id.
var ErrDuplicateID = errors.New("presets: duplicate id")

// ErrEmptyID is returned by New for a preset without an id.
var ErrEmptyID = errors.New("presets: empty id")

// Preset is a named bundle of adjustments. Nil fields are absent and leave
// the frame untouched; a non-nil zero still counts and is applied.
type Preset struct {
	ID    string
	Title string

	Saturation *float64
	Brightness *float64
	Contrast   *float64
	Sharpness  *float64
	// HueRotate is an angle in degrees.
	HueRotate *float64
	// Vignette is the normalized radius in (0,1) at which darkening peaks.
	Vignette *float64

	// Steps, when set, replaces the four tone fields above and runs in the
	// listed order.
	Steps []ToneStep
}

// ToneOp names one tone adjustment.
type ToneOp int

const (
	OpSaturate ToneOp = iota
	OpBrightness
	OpContrast
	OpHueRotate
)

// ToneStep is one tone adjustment with its value.
type ToneStep struct {
	Op    ToneOp
	Value float64
}

// ToneSteps returns the tone adjustments in the order they are applied:
// Steps if set, otherwise saturate, brightness, contrast, hue-rotate for the
// fields present.
func (p Preset) ToneSteps() []ToneStep {
	if p.Steps != nil {
		return p.Steps
	}
	var steps []ToneStep
	add := func(op ToneOp, v *float64) {
		if v != nil {
			steps = append(steps, ToneStep{Op: op, Value: *v})
		}
	}
	add(OpSaturate, p.Saturation)
	add(OpBrightness, p.Brightness)
	add(OpContrast, p.Contrast)
	add(OpHueRotate, p.HueRotate)
	return steps
}

// Entry is one (id, title) pair for a selection UI.
type Entry struct {
	ID    string `json:"id"`
	Title string `json:"title"`
}

// HasTone reports whether any tone/color adjustment is present.
func (p Preset) HasTone() bool {
	return len(p.Steps) > 0 || p.Saturation != nil || p.Brightness != nil || p.Contrast != nil || p.HueRotate != nil
}

// IsIdentity reports whether the preset changes nothing.
func (p Preset) IsIdentity() bool {
	return !p.HasTone() && p.Vignette == nil && p.Sharpness == nil
}

// Registry is an ordered, read-only set of presets.
type Registry struct {
	order []string
	byID  map[string]Preset
}

// New builds a registry that keeps the given registration order.
func New(presets ...Preset) (*Registry, error) {
	r := &Registry{
		order: make([]string, 0, len(presets)),
		byID:  make(map[string]Preset, len(presets)),
	}
	for _, p := range presets {
		if p.ID == "" {
			return nil, ErrEmptyID
		}
		if _, ok := r.byID[p.ID]; ok {
			return nil, fmt.Errorf("%w: %q", ErrDuplicateID, p.ID)
		}
		r.order = append(r.order, p.ID)
		r.byID[p.ID] = p
	}
	return r, nil
}

// MustNew is New for static tables; it panics on an invalid table.
func MustNew(presets ...Preset) *Registry {
	r, err := New(presets...)
	if err != nil {
		panic(err)
	}
	return r
}

// Lookup returns the preset for id. A miss returns the zero Preset, which
// applies no adjustment, and false.
func (r *Registry) Lookup(id string) (Preset, bool) {
	if r == nil {
		return Preset{}, false
	}
	p, ok := r.byID[id]
	return p, ok
}

// Title returns the display title for id, or "" if unknown.
func (r *Registry) Title(id string) string {
	p, _ := r.Lookup(id)
	return p.Title
}

// TitleOr returns the display title for id, falling back to id itself.
func (r *Registry) TitleOr(id string) string {
	if t := r.Title(id); t != "" {
		return t
	}
	return id
}

// Entries returns (id, title) pairs in registration order.
func (r *Registry) Entries() []Entry {
	if r == nil {
		return nil
	}
	out := make([]Entry, 0, len(r.order))
	for _, id := range r.order {
		out = append(out, Entry{ID: id, Title: r.byID[id].Title})
	}
	return out
}

// Len returns the number of registered presets.
func (r *Registry) Len() int {
	if r == nil {
		return 0
	}
	return len(r.order)
}

// F returns a pointer to v, for building preset literals.
func F(v float64) *float64 {
	return &v
}
