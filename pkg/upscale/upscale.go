// Package upscale enlarges captured stills before they are handed back for
// download.
package upscale

import (
	"fmt"
	"image"
	"strings"

	"golang.org/x/image/draw"
)

// Technique selects the interpolation used to fill new pixels.
type Technique string

const (
	Bilinear Technique = "bilinear"
	Nearest  Technique = "nearest"
)

// DefaultScale is the factor used by the capture endpoint.
const DefaultScale = 2

// ParseTechnique maps a user value onto a Technique. Unknown or empty values
// fall back to Bilinear.
func ParseTechnique(s string) Technique {
	switch Technique(strings.ToLower(strings.TrimSpace(s))) {
	case Nearest:
		return Nearest
	default:
		return Bilinear
	}
}

func (t Technique) scaler() draw.Scaler {
	if t == Nearest {
		return draw.NearestNeighbor
	}
	return draw.BiLinear
}

// Image returns src scaled by an integer factor into a new NRGBA image.
func Image(src image.Image, scale int, t Technique) (*image.NRGBA, error) {
	if scale < 1 {
		return nil, fmt.Errorf("upscale: invalid scale %d", scale)
	}
	b := src.Bounds()
	if b.Empty() {
		return nil, fmt.Errorf("upscale: empty image")
	}
	dst := image.NewNRGBA(image.Rect(0, 0, b.Dx()*scale, b.Dy()*scale))
	t.scaler().Scale(dst, dst.Bounds(), src, b, draw.Src, nil)
	return dst, nil
}
