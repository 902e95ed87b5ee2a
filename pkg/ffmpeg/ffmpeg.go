// Package ffmpeg builds and runs the ffmpeg processes that feed camera frames
// into the render loop.
package ffmpeg

import (
	"context"
	"strconv"
	"strings"
)

// PipeOutput writes the encoded stream to stdout.
const PipeOutput = "pipe:1"

// Command represents an ffmpeg command being built.
type Command struct {
	input     string
	output    string
	preInput  []string // args before -i (input format and device options)
	postInput []string // args after -i
}

// Option modifies a Command. Options are composable and order-independent
// (ffmpeg will receive args in correct order regardless of option order).
type Option interface {
	Apply(cmd *Command)
}

// OptionFunc is a function that implements Option.
type OptionFunc func(cmd *Command)

// Apply implements Option.
func (f OptionFunc) Apply(cmd *Command) { f(cmd) }

// NewCommand creates a command with input/output and applies options.
func NewCommand(input, output string, opts ...Option) *Command {
	cmd := &Command{
		input:  input,
		output: output,
	}
	for _, opt := range opts {
		opt.Apply(cmd)
	}
	return cmd
}

// Build returns the complete ffmpeg argument list.
func (c *Command) Build() []string {
	args := []string{"-hide_banner", "-nostdin"}
	args = append(args, c.preInput...)
	args = append(args, "-i", c.input)
	args = append(args, c.postInput...)
	args = append(args, c.output)
	return args
}

// Start starts the command with stdout piped back to the caller.
// The caller is responsible for calling Wait() or Kill() to clean up.
func (c *Command) Start(ctx context.Context) (*Process, error) {
	return Start(ctx, c.Build())
}

// String renders the command line for logs.
func (c *Command) String() string {
	return "ffmpeg " + strings.Join(c.Build(), " ")
}

// --- Input Options ---

// InputFormat selects the demuxer or capture device API (-f before -i),
// e.g. v4l2, avfoundation, dshow, lavfi.
func InputFormat(name string) Option {
	return OptionFunc(func(cmd *Command) {
		cmd.preInput = append(cmd.preInput, "-f", name)
	})
}

// VideoSize requests a capture resolution from the device (-video_size).
func VideoSize(width, height int) Option {
	return OptionFunc(func(cmd *Command) {
		cmd.preInput = append(cmd.preInput, "-video_size", itoa(width)+"x"+itoa(height))
	})
}

// InputFrameRate requests a capture frame rate from the device (-framerate).
func InputFrameRate(fps int) Option {
	return OptionFunc(func(cmd *Command) {
		cmd.preInput = append(cmd.preInput, "-framerate", itoa(fps))
	})
}

// --- Output Options ---

// OutputFormat sets the muxer (-f after -i).
func OutputFormat(name string) Option {
	return OptionFunc(func(cmd *Command) {
		cmd.postInput = append(cmd.postInput, "-f", name)
	})
}

// PixelFormat sets the pixel format (-pix_fmt).
func PixelFormat(fmt string) Option {
	return OptionFunc(func(cmd *Command) {
		cmd.postInput = append(cmd.postInput, "-pix_fmt", fmt)
	})
}

// RawRGBA emits uncompressed 8-bit RGBA frames back to back.
var RawRGBA Option = OptionFunc(func(cmd *Command) {
	OutputFormat("rawvideo").Apply(cmd)
	PixelFormat("rgba").Apply(cmd)
})

// NoAudio disables audio in output (-an).
var NoAudio Option = OptionFunc(func(cmd *Command) {
	cmd.postInput = append(cmd.postInput, "-an")
})

// --- Misc ---

// LogLevel sets the logging level.
func LogLevel(level string) Option {
	return OptionFunc(func(cmd *Command) {
		// Insert at beginning of preInput so it's early in args
		cmd.preInput = append([]string{"-loglevel", level}, cmd.preInput...)
	})
}

func itoa(n int) string {
	return strconv.Itoa(n)
}
