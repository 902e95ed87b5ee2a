package upscale

import (
	"image"
	"image/color"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func checker(w, h int) *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			c := color.NRGBA{0, 0, 0, 255}
			if (x+y)%2 == 0 {
				c = color.NRGBA{255, 255, 255, 255}
			}
			img.SetNRGBA(x, y, c)
		}
	}
	return img
}

func TestParseTechnique(t *testing.T) {
	assert.Equal(t, Nearest, ParseTechnique("nearest"))
	assert.Equal(t, Nearest, ParseTechnique(" NEAREST "))
	assert.Equal(t, Bilinear, ParseTechnique("bilinear"))
	assert.Equal(t, Bilinear, ParseTechnique(""))
	assert.Equal(t, Bilinear, ParseTechnique("lanczos"))
}

func TestImage_DoublesDimensions(t *testing.T) {
	for _, tech := range []Technique{Bilinear, Nearest} {
		out, err := Image(checker(5, 3), DefaultScale, tech)
		require.NoError(t, err)
		assert.Equal(t, image.Rect(0, 0, 10, 6), out.Bounds(), tech)
	}
}

func TestImage_NearestReplicatesPixels(t *testing.T) {
	src := checker(3, 3)
	out, err := Image(src, 2, Nearest)
	require.NoError(t, err)
	for y := 0; y < 6; y++ {
		for x := 0; x < 6; x++ {
			require.Equal(t, src.NRGBAAt(x/2, y/2), out.NRGBAAt(x, y), "pixel %d,%d", x, y)
		}
	}
}

func TestImage_Errors(t *testing.T) {
	_, err := Image(checker(2, 2), 0, Bilinear)
	require.Error(t, err)

	_, err = Image(image.NewNRGBA(image.Rect(0, 0, 0, 0)), 2, Bilinear)
	require.Error(t, err)
}
