package compositor

import (
	"image"

	"golang.org/x/image/draw"
)

// NewFrame allocates a zeroed frame of the given size.
func NewFrame(width, height int) *image.NRGBA {
	return image.NewNRGBA(image.Rect(0, 0, width, height))
}

// ToNRGBA converts any image into a frame whose origin is (0,0). An
// *image.NRGBA that already starts at the origin is copied, never aliased.
func ToNRGBA(src image.Image) *image.NRGBA {
	b := src.Bounds()
	dst := NewFrame(b.Dx(), b.Dy())
	if n, ok := src.(*image.NRGBA); ok {
		copyRows(dst, n)
		return dst
	}
	draw.Draw(dst, dst.Bounds(), src, b.Min, draw.Src)
	return dst
}

// Clone returns a deep copy of f with its origin moved to (0,0).
func Clone(f *image.NRGBA) *image.NRGBA {
	b := f.Bounds()
	dst := NewFrame(b.Dx(), b.Dy())
	copyRows(dst, f)
	return dst
}

func copyRows(dst, src *image.NRGBA) {
	b := src.Bounds()
	rowBytes := b.Dx() * 4
	for y := 0; y < b.Dy(); y++ {
		s := src.PixOffset(b.Min.X, b.Min.Y+y)
		d := y * dst.Stride
		copy(dst.Pix[d:d+rowBytes], src.Pix[s:s+rowBytes])
	}
}
