package ffmpeg

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os/exec"
)

// ProbeBinary is the ffprobe executable looked up on PATH.
var ProbeBinary = "ffprobe"

// ErrNoVideoStream is returned when the probed input has no video stream.
var ErrNoVideoStream = errors.New("ffprobe: no video stream")

// ProbeResult describes the first video stream of a capture device.
type ProbeResult struct {
	Width       int     // Native width in pixels
	Height      int     // Native height in pixels
	FPS         float64 // Frames per second
	VideoCodec  string  // Codec the device delivers (rawvideo, mjpeg, ...)
	PixelFormat string  // Pixel format (yuyv422, ...)
}

// ffprobeOutput matches ffprobe JSON output structure.
type ffprobeOutput struct {
	Streams []struct {
		Index       int    `json:"index"`
		CodecType   string `json:"codec_type"`
		CodecName   string `json:"codec_name"`
		Width       int    `json:"width"`
		Height      int    `json:"height"`
		RFrameRate  string `json:"r_frame_rate"`
		PixelFormat string `json:"pix_fmt"`
	} `json:"streams"`
}

// ProbeArgs returns the ffprobe arguments for a device opened with the
// given input options (the same ones later passed to the capture command).
func ProbeArgs(device string, opts ...Option) []string {
	cmd := NewCommand(device, "", opts...)
	args := []string{"-hide_banner", "-v", "error", "-print_format", "json", "-show_streams", "-select_streams", "v:0"}
	args = append(args, cmd.preInput...)
	return append(args, "-i", device)
}

// ProbeDevice asks ffprobe what the device actually delivers once opened
// with opts. Only input options are used.
func ProbeDevice(ctx context.Context, device string, opts ...Option) (*ProbeResult, error) {
	args := ProbeArgs(device, opts...)
	cmd := exec.CommandContext(ctx, ProbeBinary, args...)

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		return nil, &Error{Args: args, Stderr: stderr.String(), Err: err}
	}
	return parseProbeOutput(stdout.Bytes())
}

func parseProbeOutput(raw []byte) (*ProbeResult, error) {
	var output ffprobeOutput
	if err := json.Unmarshal(raw, &output); err != nil {
		return nil, fmt.Errorf("ffprobe: failed to parse output: %w", err)
	}
	for _, stream := range output.Streams {
		if stream.CodecType != "video" {
			continue
		}
		return &ProbeResult{
			Width:       stream.Width,
			Height:      stream.Height,
			FPS:         parseFrameRate(stream.RFrameRate),
			VideoCodec:  stream.CodecName,
			PixelFormat: stream.PixelFormat,
		}, nil
	}
	return nil, ErrNoVideoStream
}

// parseFrameRate parses ffprobe frame rate format (e.g., "30/1" or "30000/1001").
func parseFrameRate(rate string) float64 {
	var num, den int
	_, err := fmt.Sscanf(rate, "%d/%d", &num, &den)
	if err != nil || den == 0 {
		return 0
	}
	return float64(num) / float64(den)
}
