package live

import "sync/atomic"

// Zoom levels of the preview toggle.
const (
	ZoomNone = 1.0
	ZoomIn   = 2.0
)

// RenderParams is an immutable snapshot of what the UI has selected. The
// With* methods return modified copies.
type RenderParams struct {
	PresetID     string  `json:"preset"`
	Zoom         float64 `json:"zoom"`
	Monochrome   bool    `json:"monochrome"`
	Flash        bool    `json:"flash"`
	PanelVisible bool    `json:"panelVisible"`
}

// DefaultParams selects presetID with every toggle off and the panel shown.
func DefaultParams(presetID string) RenderParams {
	return RenderParams{
		PresetID:     presetID,
		Zoom:         ZoomNone,
		PanelVisible: true,
	}
}

func (p RenderParams) WithPreset(id string) RenderParams {
	p.PresetID = id
	return p
}

// ToggleZoom switches between 1x and 2x.
func (p RenderParams) ToggleZoom() RenderParams {
	if p.Zoom == ZoomIn {
		p.Zoom = ZoomNone
	} else {
		p.Zoom = ZoomIn
	}
	return p
}

func (p RenderParams) ToggleMonochrome() RenderParams {
	p.Monochrome = !p.Monochrome
	return p
}

func (p RenderParams) ToggleFlash() RenderParams {
	p.Flash = !p.Flash
	return p
}

func (p RenderParams) TogglePanel() RenderParams {
	p.PanelVisible = !p.PanelVisible
	return p
}

// ParamsStore holds the latest snapshot. Writers replace it, the render loop
// reads it once per cycle.
type ParamsStore struct {
	cur atomic.Pointer[RenderParams]
}

// NewParamsStore starts with initial.
func NewParamsStore(initial RenderParams) *ParamsStore {
	s := &ParamsStore{}
	s.cur.Store(&initial)
	return s
}

// Load returns the current snapshot.
func (s *ParamsStore) Load() RenderParams {
	return *s.cur.Load()
}

// Store replaces the snapshot.
func (s *ParamsStore) Store(p RenderParams) {
	s.cur.Store(&p)
}

// Update applies fn to the current snapshot and stores the result, retrying
// if another writer got there first. It returns the stored snapshot.
func (s *ParamsStore) Update(fn func(RenderParams) RenderParams) RenderParams {
	for {
		old := s.cur.Load()
		next := fn(*old)
		if s.cur.CompareAndSwap(old, &next) {
			return next
		}
	}
}
