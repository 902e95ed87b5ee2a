package common

import (
	"bytes"
	"encoding/binary"
	"hash/crc32"
	"image"
	"image/png"
	"net/http"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func encodePNG(t *testing.T, img image.Image) []byte {
	t.Helper()
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, img))
	return buf.Bytes()
}

// hugePNG declares w x h in its header but carries no pixel data.
func hugePNG(t *testing.T, w, h int) []byte {
	t.Helper()
	raw := encodePNG(t, image.NewGray(image.Rect(0, 0, 1, 1)))
	// IHDR type and data are bytes 12-28, width and height at 16-23, and the
	// chunk CRC follows at 29.
	binary.BigEndian.PutUint32(raw[16:], uint32(w))
	binary.BigEndian.PutUint32(raw[20:], uint32(h))
	binary.BigEndian.PutUint32(raw[29:], crc32.ChecksumIEEE(raw[12:29]))
	return raw
}

func TestDecodeImage(t *testing.T) {
	img, format, err := DecodeImage(bytes.NewReader(encodePNG(t, image.NewNRGBA(image.Rect(0, 0, 4, 3)))), 12)
	require.NoError(t, err)
	assert.Equal(t, "png", format)
	assert.Equal(t, image.Pt(4, 3), img.Bounds().Size())
}

func TestDecodeImage_RejectsOversized(t *testing.T) {
	tests := []struct {
		name string
		raw  []byte
		max  int
	}{
		{"over ceiling", encodePNG(t, image.NewNRGBA(image.Rect(0, 0, 4, 3))), 11},
		{"declared 40000x40000", hugePNG(t, 40000, 40000), 0},
		{"not an image", []byte("hello"), 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, _, err := DecodeImage(bytes.NewReader(tt.raw), tt.max)
			var he *echo.HTTPError
			require.ErrorAs(t, err, &he)
			assert.Equal(t, http.StatusBadRequest, he.Code)
		})
	}
}
