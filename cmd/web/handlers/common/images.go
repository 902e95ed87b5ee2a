package common

import (
	"fmt"
	"image"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
	"io"
)

// DefaultMaxUploadPixels caps uploads when no ceiling is configured.
const DefaultMaxUploadPixels = 40_000_000

// DecodeImage decodes an uploaded image. The header is read first and images
// declaring more than maxPixels pixels are rejected before any pixel buffer
// is allocated. All failures are 400s.
func DecodeImage(r io.ReadSeeker, maxPixels int) (image.Image, string, error) {
	if maxPixels <= 0 {
		maxPixels = DefaultMaxUploadPixels
	}
	cfg, _, err := image.DecodeConfig(r)
	if err != nil {
		return nil, "", ErrBadRequest("could not read the image")
	}
	if cfg.Width <= 0 || cfg.Height <= 0 {
		return nil, "", ErrBadRequest("image has no pixels")
	}
	if int64(cfg.Width)*int64(cfg.Height) > int64(maxPixels) {
		return nil, "", ErrBadRequest(fmt.Sprintf("image is %dx%d, larger than %d pixels", cfg.Width, cfg.Height, maxPixels))
	}
	if _, err := r.Seek(0, io.SeekStart); err != nil {
		return nil, "", ErrBadRequest("could not read the image")
	}
	img, format, err := image.Decode(r)
	if err != nil {
		return nil, "", ErrBadRequest("could not decode the image")
	}
	return img, format, nil
}
