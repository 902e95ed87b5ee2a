package live

import (
	"context"
	"image"
	"image/color"
	"sync"

	"thirdcoast.systems/camfilter/pkg/compositor"
)

// fakeStream is a Stream fed by the test.
type fakeStream struct {
	size image.Point

	mu    sync.Mutex
	frame *image.NRGBA
	seq   uint64

	done     chan struct{}
	doneOnce sync.Once
	err      error
}

func newFakeStream(w, h int) *fakeStream {
	return &fakeStream{size: image.Pt(w, h), done: make(chan struct{})}
}

func (s *fakeStream) push(f *image.NRGBA) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.frame = f
	s.seq++
}

func (s *fakeStream) end(err error) {
	s.doneOnce.Do(func() {
		s.err = err
		close(s.done)
	})
}

func (s *fakeStream) Size() image.Point { return s.size }

func (s *fakeStream) Latest() (*image.NRGBA, uint64, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.frame, s.seq, s.frame != nil
}

func (s *fakeStream) Done() <-chan struct{} { return s.done }
func (s *fakeStream) Err() error            { return s.err }

func (s *fakeStream) Close() error {
	s.end(nil)
	return nil
}

// fakeSource hands out queued results in order.
type fakeSource struct {
	mu      sync.Mutex
	results []fakeResult
	opened  []Constraints
}

type fakeResult struct {
	stream *fakeStream
	err    error
}

func (f *fakeSource) queue(r fakeResult) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.results = append(f.results, r)
}

func (f *fakeSource) Open(ctx context.Context, c Constraints) (Stream, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.opened = append(f.opened, c)
	if len(f.results) == 0 {
		return nil, &AcquisitionError{Reason: ReasonNoDevice}
	}
	r := f.results[0]
	f.results = f.results[1:]
	if r.err != nil {
		return nil, r.err
	}
	return r.stream, nil
}

func (f *fakeSource) openCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.opened)
}

func (f *fakeSource) constraints() []Constraints {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]Constraints(nil), f.opened...)
}

func solid(w, h int, c color.NRGBA) *image.NRGBA {
	f := compositor.NewFrame(w, h)
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			f.SetNRGBA(x, y, c)
		}
	}
	return f
}
