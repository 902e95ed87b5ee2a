// Package camera implements live.Source on top of an ffmpeg capture process.
package camera

import (
	"context"
	"errors"
	"fmt"
	"image"
	"io"
	"log/slog"
	"os/exec"
	"strings"
	"sync"
	"sync/atomic"

	"thirdcoast.systems/camfilter/internal/live"
	"thirdcoast.systems/camfilter/pkg/ffmpeg"
)

// Source opens capture devices through ffmpeg.
type Source struct {
	// Format is the ffmpeg input device API (v4l2, avfoundation, dshow, lavfi).
	Format string
	// Device is used for the environment-facing camera.
	Device string
	// FrontDevice is used for the user-facing camera. Empty means Device.
	FrontDevice string
}

var _ live.Source = (*Source)(nil)

// Open probes the device and starts streaming frames from it.
func (s *Source) Open(ctx context.Context, c live.Constraints) (live.Stream, error) {
	spec := ffmpeg.CameraSpec{
		Format:    s.Format,
		Device:    s.deviceFor(c.FacingMode),
		Width:     c.Width,
		Height:    c.Height,
		FrameRate: c.FrameRate,
	}

	input, inputOpts, err := ffmpeg.CameraInput(spec)
	if err != nil {
		return nil, &live.AcquisitionError{Reason: live.ReasonConstraintMismatch, Err: err}
	}

	probe, err := ffmpeg.ProbeDevice(ctx, input, inputOpts...)
	if err != nil {
		return nil, Classify(err)
	}
	if probe.Width <= 0 || probe.Height <= 0 {
		return nil, &live.AcquisitionError{
			Reason: live.ReasonConstraintMismatch,
			Err:    fmt.Errorf("device reported %dx%d", probe.Width, probe.Height),
		}
	}
	slog.Debug("Probed camera",
		"device", spec.Device,
		"width", probe.Width,
		"height", probe.Height,
		"fps", probe.FPS,
		"codec", probe.VideoCodec,
		"pix_fmt", probe.PixelFormat)

	cmd, err := ffmpeg.CameraCommand(spec)
	if err != nil {
		return nil, &live.AcquisitionError{Reason: live.ReasonConstraintMismatch, Err: err}
	}

	slog.Debug("Starting camera capture", "command", cmd.String())
	// The process outlives Open, so it must not be bound to ctx.
	proc, err := cmd.Start(context.Background())
	if err != nil {
		return nil, Classify(err)
	}

	reader, err := ffmpeg.NewFrameReader(proc.Stdout(), probe.Width, probe.Height)
	if err != nil {
		_ = proc.Close()
		return nil, &live.AcquisitionError{Reason: live.ReasonConstraintMismatch, Err: err}
	}

	st := &stream{
		proc:   proc,
		reader: reader,
		size:   image.Pt(probe.Width, probe.Height),
		done:   make(chan struct{}),
	}
	go st.pump()
	slog.Info("Camera stream started", "device", spec.Device, "pid", proc.PID())
	return st, nil
}

func (s *Source) deviceFor(facing string) string {
	if facing == live.FacingUser && s.FrontDevice != "" {
		return s.FrontDevice
	}
	return s.Device
}

type stream struct {
	proc   *ffmpeg.Process
	reader *ffmpeg.FrameReader
	size   image.Point

	latest atomic.Pointer[image.NRGBA]
	seq    atomic.Uint64

	done      chan struct{}
	err       error
	closed    atomic.Bool
	closeOnce sync.Once
}

func (s *stream) Size() image.Point { return s.size }

func (s *stream) Latest() (*image.NRGBA, uint64, bool) {
	seq := s.seq.Load()
	f := s.latest.Load()
	return f, seq, f != nil
}

func (s *stream) Done() <-chan struct{} { return s.done }

// Err is only meaningful once Done is closed.
func (s *stream) Err() error { return s.err }

func (s *stream) Close() error {
	var err error
	s.closeOnce.Do(func() {
		s.closed.Store(true)
		err = s.proc.Close()
		<-s.done
	})
	return err
}

// pump reads frames until the process ends. Each frame is a fresh buffer so
// readers of Latest never see it change.
func (s *stream) pump() {
	defer close(s.done)
	for {
		f, err := s.reader.Next()
		if err != nil {
			_ = s.proc.Close()
			waitErr := s.proc.Wait()
			if s.closed.Load() {
				return
			}
			if errors.Is(err, io.EOF) && waitErr == nil {
				return
			}
			if waitErr != nil {
				err = waitErr
			}
			var fe *ffmpeg.Error
			if errors.As(err, &fe) {
				slog.Warn("Camera process exited", "command", fe.Command(), "error", err)
			}
			s.err = Classify(err)
			return
		}
		s.latest.Store(f)
		s.seq.Add(1)
	}
}

// Classify maps an ffmpeg or exec failure onto a user-facing reason.
func Classify(err error) *live.AcquisitionError {
	if err == nil {
		return nil
	}
	var ae *live.AcquisitionError
	if errors.As(err, &ae) {
		return ae
	}
	if errors.Is(err, exec.ErrNotFound) {
		return &live.AcquisitionError{Reason: live.ReasonNoDevice, Err: err}
	}

	text := err.Error()
	var fe *ffmpeg.Error
	if errors.As(err, &fe) {
		text = fe.FullStderr() + "\n" + text
	}
	return &live.AcquisitionError{Reason: reasonFromStderr(text), Err: err}
}

var stderrReasons = []struct {
	needle string
	reason live.Reason
}{
	{"permission denied", live.ReasonPermissionDenied},
	{"operation not permitted", live.ReasonPermissionDenied},
	{"not authorized", live.ReasonPermissionDenied},
	{"no such file or directory", live.ReasonNoDevice},
	{"no such device", live.ReasonNoDevice},
	{"could not find", live.ReasonNoDevice},
	{"cannot find a proper format", live.ReasonConstraintMismatch},
	{"invalid argument", live.ReasonConstraintMismatch},
	{"not supported", live.ReasonConstraintMismatch},
}

func reasonFromStderr(text string) live.Reason {
	lower := strings.ToLower(text)
	for _, r := range stderrReasons {
		if strings.Contains(lower, r.needle) {
			return r.reason
		}
	}
	return live.ReasonUnknown
}
