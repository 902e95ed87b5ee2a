package live

import (
	"image"
	"image/png"
	"io"
	"sync"
	"time"
)

// Surface holds the most recently presented output frame. Only the render
// loop presents; readers get the frame itself, which is never modified after
// Present.
type Surface struct {
	mu          sync.RWMutex
	frame       *image.NRGBA
	seq         uint64
	presentedAt time.Time
}

// NewSurface returns an empty surface.
func NewSurface() *Surface {
	return &Surface{}
}

// Present replaces the surface contents. The surface takes ownership of f.
func (s *Surface) Present(f *image.NRGBA) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.frame = f
	s.seq++
	s.presentedAt = time.Now()
}

// Frame returns the current frame and its presentation counter. frame is nil
// before the first Present.
func (s *Surface) Frame() (frame *image.NRGBA, seq uint64) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.frame, s.seq
}

// Size returns the dimensions of the current frame.
func (s *Surface) Size() image.Point {
	f, _ := s.Frame()
	if f == nil {
		return image.Point{}
	}
	return f.Bounds().Size()
}

// PresentedAt reports when the current frame was presented.
func (s *Surface) PresentedAt() time.Time {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.presentedAt
}

// EncodePNG writes the current frame as PNG. It reports false when nothing
// has been presented yet.
func (s *Surface) EncodePNG(w io.Writer) (bool, error) {
	f, _ := s.Frame()
	if f == nil {
		return false, nil
	}
	return true, png.Encode(w, f)
}
