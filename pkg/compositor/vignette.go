package compositor

import (
	"image"
	"math"
)

// vignetteMaxOpacity is the opacity of the black stop at the vignette radius.
const vignetteMaxOpacity = 0.5

// vignetteOpacity interpolates the radial gradient (0 -> transparent,
// v -> 50% black) and holds the last stop beyond v.
func vignetteOpacity(d, v float64) float64 {
	if v <= 0 || d >= v {
		return vignetteMaxOpacity
	}
	if d <= 0 {
		return 0
	}
	return vignetteMaxOpacity * d / v
}

// applyVignette multiplies every pixel by (1 - opacity). The gradient is
// centred on the frame and its radius is max(width, height), so the
// normalized distance of a pixel centre is dist / max(width, height).
func applyVignette(f *image.NRGBA, v float64) {
	b := f.Bounds()
	w, h := b.Dx(), b.Dy()
	radius := float64(max(w, h))
	if radius == 0 {
		return
	}
	cx, cy := float64(w)/2, float64(h)/2
	for y := 0; y < h; y++ {
		dy := float64(y) + 0.5 - cy
		i := f.PixOffset(b.Min.X, b.Min.Y+y)
		for x := 0; x < w; x, i = x+1, i+4 {
			dx := float64(x) + 0.5 - cx
			keep := 1 - vignetteOpacity(math.Hypot(dx, dy)/radius, v)
			if keep == 1 {
				continue
			}
			f.Pix[i+0] = toByte(float64(f.Pix[i+0]) * keep)
			f.Pix[i+1] = toByte(float64(f.Pix[i+1]) * keep)
			f.Pix[i+2] = toByte(float64(f.Pix[i+2]) * keep)
		}
	}
}
