package ffmpeg

import (
	"errors"
	"fmt"
	"image"
	"io"
)

// ErrShortFrame is returned when the stream ends in the middle of a frame.
var ErrShortFrame = errors.New("ffmpeg: truncated rawvideo frame")

// FrameReader splits a rawvideo rgba stream into frames.
type FrameReader struct {
	r      io.Reader
	width  int
	height int
}

// NewFrameReader reads width*height*4 byte frames from r.
func NewFrameReader(r io.Reader, width, height int) (*FrameReader, error) {
	if width <= 0 || height <= 0 {
		return nil, fmt.Errorf("ffmpeg: invalid frame size %dx%d", width, height)
	}
	return &FrameReader{r: r, width: width, height: height}, nil
}

// Next reads one frame into a newly allocated image. It returns io.EOF at a
// clean end of stream and ErrShortFrame if the stream stops mid-frame.
//
// ffmpeg's rgba output is straight alpha, so the bytes map directly onto
// image.NRGBA.
func (fr *FrameReader) Next() (*image.NRGBA, error) {
	img := image.NewNRGBA(image.Rect(0, 0, fr.width, fr.height))
	if err := fr.ReadInto(img); err != nil {
		return nil, err
	}
	return img, nil
}

// ReadInto fills img, which must match the reader's size.
func (fr *FrameReader) ReadInto(img *image.NRGBA) error {
	b := img.Bounds()
	if b.Dx() != fr.width || b.Dy() != fr.height || img.Stride != fr.width*4 {
		return fmt.Errorf("ffmpeg: frame buffer %dx%d does not match stream %dx%d", b.Dx(), b.Dy(), fr.width, fr.height)
	}
	n, err := io.ReadFull(fr.r, img.Pix[:fr.width*fr.height*4])
	switch {
	case err == nil:
		return nil
	case errors.Is(err, io.EOF) && n == 0:
		return io.EOF
	case errors.Is(err, io.ErrUnexpectedEOF):
		return ErrShortFrame
	default:
		return err
	}
}
