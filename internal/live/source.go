// Package live drives the per-frame render cycle: it pulls the newest camera
// frame, composites the selected preset, and presents the result on a shared
// surface.
package live

import (
	"context"
	"errors"
	"fmt"
	"image"
)

// Facing modes a source may be asked for.
const (
	FacingEnvironment = "environment"
	FacingUser        = "user"
)

// Constraints are what the render loop asks of a video source. Width, Height
// and FrameRate are ideals, not requirements.
type Constraints struct {
	FacingMode string
	Width      int
	Height     int
	FrameRate  int
}

// DefaultConstraints prefers the rear camera at 1920x1080.
func DefaultConstraints() Constraints {
	return Constraints{
		FacingMode: FacingEnvironment,
		Width:      1920,
		Height:     1080,
		FrameRate:  30,
	}
}

// Source opens video streams. Open is the only call in the package that may
// block for a noticeable time.
type Source interface {
	Open(ctx context.Context, c Constraints) (Stream, error)
}

// Stream is a running video stream. Frames returned by Latest are never
// written again by the stream and may be read freely.
type Stream interface {
	// Size is the native resolution, known once Open returns.
	Size() image.Point
	// Latest returns the newest frame and its sequence number. ok is false
	// until the first frame arrives.
	Latest() (frame *image.NRGBA, seq uint64, ok bool)
	// Done closes when the stream ends; Err then reports why.
	Done() <-chan struct{}
	Err() error
	Close() error
}

// Reason classifies an acquisition failure.
type Reason string

const (
	ReasonPermissionDenied   Reason = "permission_denied"
	ReasonNoDevice           Reason = "no_device"
	ReasonConstraintMismatch Reason = "constraint_mismatch"
	ReasonUnknown            Reason = "unknown"
)

// AcquisitionError is the one failure the system surfaces to the user.
type AcquisitionError struct {
	Reason Reason
	Err    error
}

func (e *AcquisitionError) Error() string {
	if e.Err == nil {
		return fmt.Sprintf("camera acquisition failed: %s", e.Reason)
	}
	return fmt.Sprintf("camera acquisition failed: %s: %v", e.Reason, e.Err)
}

func (e *AcquisitionError) Unwrap() error {
	return e.Err
}

// AsAcquisitionError returns err as an *AcquisitionError, wrapping it with
// ReasonUnknown when it is not one already.
func AsAcquisitionError(err error) *AcquisitionError {
	var ae *AcquisitionError
	if errors.As(err, &ae) {
		return ae
	}
	return &AcquisitionError{Reason: ReasonUnknown, Err: err}
}

// Message is the notice shown to the user for r.
func (r Reason) Message() string {
	switch r {
	case ReasonPermissionDenied:
		return "Camera access was denied. Allow camera access and retry."
	case ReasonNoDevice:
		return "No camera was found. Connect a camera and retry."
	case ReasonConstraintMismatch:
		return "The camera does not support the requested mode."
	default:
		return "The camera could not be started."
	}
}
