package compositor

import "image"

// laplacian is the 3x3 kernel: centre 4, every neighbour -1.
var laplacian = [9]int{
	-1, -1, -1,
	-1, 4, -1,
	-1, -1, -1,
}

// laplacianNorm divides the kernel sum before it is scaled by sharpness.
const laplacianNorm = 8

// applySharpen adds sharpness * (kernel sum / 8) to the RGB channels of every
// interior pixel of f. All taps read a snapshot of f taken before the pass.
// The outermost rows and columns are left as they are.
func applySharpen(f *image.NRGBA, sharpness float64) {
	b := f.Bounds()
	w, h := b.Dx(), b.Dy()
	if w < 3 || h < 3 {
		return
	}
	src := Clone(f)
	stride := src.Stride
	scale := sharpness / laplacianNorm

	for y := 1; y < h-1; y++ {
		for x := 1; x < w-1; x++ {
			var sr, sg, sb int
			k := 0
			for ky := -1; ky <= 1; ky++ {
				row := (y+ky)*stride + (x-1)*4
				for kx := 0; kx < 3; kx, k = kx+1, k+1 {
					wgt := laplacian[k]
					j := row + kx*4
					sr += int(src.Pix[j+0]) * wgt
					sg += int(src.Pix[j+1]) * wgt
					sb += int(src.Pix[j+2]) * wgt
				}
			}
			c := y*stride + x*4
			o := f.PixOffset(b.Min.X+x, b.Min.Y+y)
			f.Pix[o+0] = toByte(float64(sr)*scale + float64(src.Pix[c+0]))
			f.Pix[o+1] = toByte(float64(sg)*scale + float64(src.Pix[c+1]))
			f.Pix[o+2] = toByte(float64(sb)*scale + float64(src.Pix[c+2]))
		}
	}
}
