package compositor

import (
	"image"

	"golang.org/x/image/draw"
)

// flashBrightness is the brightness multiplier of the simulated flash.
const flashBrightness = 1.5

// PreviewOptions are display-only toggles. They never change a captured
// frame.
type PreviewOptions struct {
	Zoom       float64
	Monochrome bool
	Flash      bool
}

// IsZero reports whether the options leave the frame unchanged.
func (o PreviewOptions) IsZero() bool {
	return o.Zoom <= 1 && !o.Monochrome && !o.Flash
}

// Preview renders the live preview layer for f into a new frame: a centred
// zoom, then grayscale, then flash brightening. f is not modified.
func Preview(f *image.NRGBA, o PreviewOptions) *image.NRGBA {
	var out *image.NRGBA
	if o.Zoom > 1 {
		out = zoom(f, o.Zoom)
	} else {
		out = Clone(f)
	}
	var c toneChain
	if o.Monochrome {
		c = append(c, grayscaleMatrix())
	}
	if o.Flash {
		c = append(c, brightnessMatrix(flashBrightness))
	}
	c.apply(out)
	return out
}

// zoom scales the centre 1/factor of f back up to f's full size, the way a
// centred CSS scale() crops the element.
func zoom(f *image.NRGBA, factor float64) *image.NRGBA {
	b := f.Bounds()
	w, h := b.Dx(), b.Dy()
	cw := max(1, int(float64(w)/factor))
	ch := max(1, int(float64(h)/factor))
	x0 := b.Min.X + (w-cw)/2
	y0 := b.Min.Y + (h-ch)/2
	crop := image.Rect(x0, y0, x0+cw, y0+ch)

	dst := NewFrame(w, h)
	draw.ApproxBiLinear.Scale(dst, dst.Bounds(), f, crop, draw.Src, nil)
	return dst
}
