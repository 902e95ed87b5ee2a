package ffmpeg

import (
	"fmt"
	"strings"
)

// Capture device APIs understood by CameraInput.
const (
	FormatV4L2         = "v4l2"
	FormatAVFoundation = "avfoundation"
	FormatDShow        = "dshow"
	FormatLavfi        = "lavfi"
)

// CameraSpec describes a capture device and the mode requested from it.
type CameraSpec struct {
	Format    string
	Device    string
	Width     int
	Height    int
	FrameRate int
}

// CameraInput returns the -i argument and input options for spec. The
// resolution and frame rate are requests; the device may choose another
// mode, which ffprobe reports.
func CameraInput(spec CameraSpec) (string, []Option, error) {
	switch spec.Format {
	case FormatV4L2, FormatAVFoundation:
		return spec.Device, []Option{
			InputFormat(spec.Format),
			VideoSize(spec.Width, spec.Height),
			InputFrameRate(spec.FrameRate),
		}, nil
	case FormatDShow:
		device := spec.Device
		if !strings.HasPrefix(device, "video=") {
			device = "video=" + device
		}
		return device, []Option{
			InputFormat(spec.Format),
			VideoSize(spec.Width, spec.Height),
			InputFrameRate(spec.FrameRate),
		}, nil
	case FormatLavfi:
		// Device names a source filter such as testsrc2.
		src := fmt.Sprintf("%s=size=%dx%d:rate=%d", spec.Device, spec.Width, spec.Height, spec.FrameRate)
		return src, []Option{InputFormat(spec.Format)}, nil
	default:
		return "", nil, fmt.Errorf("ffmpeg: unsupported camera format %q", spec.Format)
	}
}

// CameraCommand builds the capture command that streams raw rgba frames from
// spec to stdout.
func CameraCommand(spec CameraSpec, extra ...Option) (*Command, error) {
	input, opts, err := CameraInput(spec)
	if err != nil {
		return nil, err
	}
	opts = append([]Option{LogLevel("error")}, opts...)
	opts = append(opts, NoAudio, RawRGBA)
	opts = append(opts, extra...)
	return NewCommand(input, PipeOutput, opts...), nil
}
