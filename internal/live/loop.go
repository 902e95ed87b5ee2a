package live

import (
	"context"
	"errors"
	"image"
	"log/slog"
	"sync/atomic"
	"time"

	"thirdcoast.systems/camfilter/pkg/compositor"
	"thirdcoast.systems/camfilter/pkg/presets"
)

// ErrNoFrame is returned by RenderOnce when no camera frame is available.
var ErrNoFrame = errors.New("live: no camera frame available")

// errStreamEnded stands in for a stream that closed without an error.
var errStreamEnded = errors.New("live: camera stream ended")

// DefaultInterval is one tick of a 30 Hz display.
const DefaultInterval = time.Second / 30

// LoopConfig configures a Loop.
type LoopConfig struct {
	Constraints Constraints
	// Interval is the refresh tick. Zero means DefaultInterval.
	Interval time.Duration
}

// Stats are render counters for diagnostics.
type Stats struct {
	Frames     uint64
	LastRender time.Duration
}

type oneShotRequest struct {
	preset presets.Preset
	reply  chan oneShotResult
}

type oneShotResult struct {
	frame *image.NRGBA
	err   error
}

// Loop is the single render goroutine. Everything that writes the surface
// runs inside Run, so compositor calls never overlap.
type Loop struct {
	source      Source
	registry    *presets.Registry
	params      *ParamsStore
	surface     *Surface
	hub         *Hub
	constraints Constraints
	interval    time.Duration

	retry   chan struct{}
	oneShot chan oneShotRequest

	frames     atomic.Uint64
	lastRender atomic.Int64
}

// NewLoop wires a loop. It does nothing until Run is called.
func NewLoop(source Source, registry *presets.Registry, params *ParamsStore, surface *Surface, hub *Hub, cfg LoopConfig) *Loop {
	interval := cfg.Interval
	if interval <= 0 {
		interval = DefaultInterval
	}
	return &Loop{
		source:      source,
		registry:    registry,
		params:      params,
		surface:     surface,
		hub:         hub,
		constraints: cfg.Constraints,
		interval:    interval,
		retry:       make(chan struct{}, 1),
		oneShot:     make(chan oneShotRequest),
	}
}

// Run acquires the camera and renders until ctx is cancelled. A failed
// acquisition, or a stream that dies, leaves the failure notice up until
// Retry is called.
func (l *Loop) Run(ctx context.Context) error {
	slog.Info("Render loop started", "interval", l.interval)
	defer func() {
		l.hub.PublishStatus(Status{State: StateStopped})
		slog.Info("Render loop stopped", "frames", l.frames.Load())
	}()

	for {
		stream, err := l.acquire(ctx)
		if err == nil {
			err = l.render(ctx, stream)
			_ = stream.Close()
		}
		if ctx.Err() != nil {
			return nil
		}
		if stream != nil {
			l.fail(err)
		}
		if !l.waitRetry(ctx) {
			return nil
		}
	}
}

// Retry asks a failed loop to re-attempt acquisition. It reports false when
// a retry is already pending.
func (l *Loop) Retry() bool {
	select {
	case l.retry <- struct{}{}:
		return true
	default:
		return false
	}
}

// RenderOnce composites the newest camera frame with p on the next cycle,
// presents it, and returns it.
func (l *Loop) RenderOnce(ctx context.Context, p presets.Preset) (*image.NRGBA, error) {
	req := oneShotRequest{preset: p, reply: make(chan oneShotResult, 1)}
	select {
	case l.oneShot <- req:
	case <-ctx.Done():
		return nil, ctx.Err()
	}
	select {
	case res := <-req.reply:
		return res.frame, res.err
	case <-ctx.Done():
		return nil, ctx.Err()
	}
}

// Stats returns the render counters.
func (l *Loop) Stats() Stats {
	return Stats{
		Frames:     l.frames.Load(),
		LastRender: time.Duration(l.lastRender.Load()),
	}
}

func (l *Loop) acquire(ctx context.Context) (Stream, error) {
	l.hub.PublishStatus(Status{State: StateStarting})
	stream, err := l.source.Open(ctx, l.constraints)
	if err != nil {
		if ctx.Err() == nil {
			l.fail(err)
		}
		return nil, err
	}
	size := stream.Size()
	slog.Info("Camera ready", "width", size.X, "height", size.Y)
	l.hub.PublishStatus(Status{State: StateReady, Size: size})
	return stream, nil
}

func (l *Loop) fail(err error) {
	ae := AsAcquisitionError(err)
	slog.Warn("camera unavailable", "reason", ae.Reason, "error", ae.Err)
	l.hub.PublishStatus(Status{
		State:   StateFailed,
		Reason:  ae.Reason,
		Message: ae.Reason.Message(),
	})
}

func (l *Loop) waitRetry(ctx context.Context) bool {
	for {
		select {
		case <-ctx.Done():
			return false
		case <-l.retry:
			slog.Info("Retrying camera acquisition")
			return true
		case req := <-l.oneShot:
			req.reply <- oneShotResult{err: ErrNoFrame}
		}
	}
}

func (l *Loop) render(ctx context.Context, stream Stream) error {
	ticker := time.NewTicker(l.interval)
	defer ticker.Stop()

	var (
		lastSeq uint64
		seen    bool
		size    = stream.Size()
	)
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()

		case <-stream.Done():
			if err := stream.Err(); err != nil {
				return err
			}
			return errStreamEnded

		case req := <-l.oneShot:
			frame, _, ok := stream.Latest()
			if !ok {
				req.reply <- oneShotResult{err: ErrNoFrame}
				continue
			}
			out := compositor.Compose(frame, req.preset)
			l.surface.Present(out)
			req.reply <- oneShotResult{frame: out}

		case <-ticker.C:
			frame, seq, ok := stream.Latest()
			if !ok || (seen && seq == lastSeq) {
				continue
			}
			lastSeq, seen = seq, true

			if fs := frame.Bounds().Size(); fs != size {
				size = fs
				slog.Info("Camera resolution changed", "width", size.X, "height", size.Y)
				l.hub.PublishStatus(Status{State: StateReady, Size: size})
			}
			l.renderFrame(frame)
		}
	}
}

// renderFrame runs one compositor cycle with the snapshot current at the
// start of the cycle.
func (l *Loop) renderFrame(frame *image.NRGBA) {
	start := time.Now()
	p, _ := l.registry.Lookup(l.params.Load().PresetID)
	l.surface.Present(compositor.Compose(frame, p))
	l.frames.Add(1)
	l.lastRender.Store(int64(time.Since(start)))
}
