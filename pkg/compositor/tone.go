package compositor

import (
	"image"
	"math"
)

// Luma weights used by the saturate and hue-rotate matrices.
const (
	lumR = 0.213
	lumG = 0.715
	lumB = 0.072
)

// colorMatrix transforms straight-alpha RGB in [0,255]:
//
//	[R']   [m0 m1 m2  ]   [R]   [m3 ]
//	[G'] = [m4 m5 m6  ] * [G] + [m7 ]
//	[B']   [m8 m9 m10 ]   [B]   [m11]
//
// Alpha is never touched.
type colorMatrix [12]float64

func saturateMatrix(s float64) colorMatrix {
	return colorMatrix{
		lumR + (1-lumR)*s, lumG - lumG*s, lumB - lumB*s, 0,
		lumR - lumR*s, lumG + (1-lumG)*s, lumB - lumB*s, 0,
		lumR - lumR*s, lumG - lumG*s, lumB + (1-lumB)*s, 0,
	}
}

func brightnessMatrix(k float64) colorMatrix {
	return colorMatrix{
		k, 0, 0, 0,
		0, k, 0, 0,
		0, 0, k, 0,
	}
}

// contrastMatrix pivots around mid-gray: (c - 0.5) * k + 0.5 in unit range.
func contrastMatrix(k float64) colorMatrix {
	off := 127.5 * (1 - k)
	return colorMatrix{
		k, 0, 0, off,
		0, k, 0, off,
		0, 0, k, off,
	}
}

func hueRotateMatrix(degrees float64) colorMatrix {
	rad := math.Mod(degrees, 360) * math.Pi / 180
	cos, sin := math.Cos(rad), math.Sin(rad)
	return colorMatrix{
		lumR + cos*(1-lumR) - sin*lumR, lumG - cos*lumG - sin*lumG, lumB - cos*lumB + sin*(1-lumB), 0,
		lumR - cos*lumR + sin*0.143, lumG + cos*(1-lumG) + sin*0.140, lumB - cos*lumB - sin*0.283, 0,
		lumR - cos*lumR - sin*(1-lumR), lumG - cos*lumG + sin*lumG, lumB + cos*(1-lumB) + sin*lumB, 0,
	}
}

// grayscaleMatrix is a full grayscale(100%), which uses the exact BT.709
// weights rather than the rounded ones above.
func grayscaleMatrix() colorMatrix {
	return colorMatrix{
		0.2126, 0.7152, 0.0722, 0,
		0.2126, 0.7152, 0.0722, 0,
		0.2126, 0.7152, 0.0722, 0,
	}
}

// toneChain is a sequence of matrices, applied one after another with the
// result clamped to [0,255] between steps.
type toneChain []colorMatrix

// apply runs the chain over every pixel of f in place.
func (c toneChain) apply(f *image.NRGBA) {
	if len(c) == 0 {
		return
	}
	b := f.Bounds()
	for y := b.Min.Y; y < b.Max.Y; y++ {
		i := f.PixOffset(b.Min.X, y)
		end := i + b.Dx()*4
		for ; i < end; i += 4 {
			r := float64(f.Pix[i+0])
			g := float64(f.Pix[i+1])
			bl := float64(f.Pix[i+2])
			for k := range c {
				m := &c[k]
				nr := clampUnit(m[0]*r + m[1]*g + m[2]*bl + m[3])
				ng := clampUnit(m[4]*r + m[5]*g + m[6]*bl + m[7])
				nb := clampUnit(m[8]*r + m[9]*g + m[10]*bl + m[11])
				r, g, bl = nr, ng, nb
			}
			f.Pix[i+0] = toByte(r)
			f.Pix[i+1] = toByte(g)
			f.Pix[i+2] = toByte(bl)
		}
	}
}

func clampUnit(v float64) float64 {
	switch {
	case v < 0:
		return 0
	case v > 255:
		return 255
	}
	return v
}

// toByte clamps and rounds half to even, the rounding used when writing
// into a clamped 8-bit pixel buffer.
func toByte(v float64) uint8 {
	if v <= 0 || math.IsNaN(v) {
		return 0
	}
	if v >= 255 {
		return 255
	}
	return uint8(math.RoundToEven(v))
}
