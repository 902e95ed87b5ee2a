package frame_api

import (
	"bytes"
	"image"
	"image/color"
	"image/png"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"thirdcoast.systems/camfilter/pkg/compositor"
	"thirdcoast.systems/camfilter/pkg/presets"
)

func upload(t *testing.T, preset string, img image.Image) *http.Request {
	t.Helper()
	var body bytes.Buffer
	mw := multipart.NewWriter(&body)
	if preset != "" {
		require.NoError(t, mw.WriteField("preset", preset))
	}
	if img != nil {
		fw, err := mw.CreateFormFile("image", "in.png")
		require.NoError(t, err)
		require.NoError(t, png.Encode(fw, img))
	}
	require.NoError(t, mw.Close())

	req := httptest.NewRequest(http.MethodPost, "/api/frames/render", &body)
	req.Header.Set(echo.HeaderContentType, mw.FormDataContentType())
	return req
}

func gray(w, h int, v uint8) *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.SetNRGBA(x, y, color.NRGBA{v, v, v, 255})
		}
	}
	return img
}

func decode(t *testing.T, rec *httptest.ResponseRecorder) *image.NRGBA {
	t.Helper()
	require.Equal(t, http.StatusOK, rec.Code)
	img, err := png.Decode(rec.Body)
	require.NoError(t, err)
	// Opaque images come back from png as RGBA.
	return compositor.ToNRGBA(img)
}

func TestHandleRender_AppliesPreset(t *testing.T) {
	e := echo.New()
	rec := httptest.NewRecorder()
	err := HandleRender(presets.Default(), 0)(e.NewContext(upload(t, " Super_Night ", gray(4, 4, 100)), rec))
	require.NoError(t, err)

	out := decode(t, rec)
	assert.Equal(t, color.NRGBA{70, 70, 70, 255}, out.NRGBAAt(2, 2))
}

func TestHandleRender_UnknownPresetIsIdentity(t *testing.T) {
	e := echo.New()
	in := gray(3, 3, 123)
	rec := httptest.NewRecorder()
	require.NoError(t, HandleRender(presets.Default(), 0)(e.NewContext(upload(t, "does_not_exist", in), rec)))
	assert.Equal(t, in.Pix, decode(t, rec).Pix)
}

func TestHandleRender_MissingImage(t *testing.T) {
	e := echo.New()
	err := HandleRender(presets.Default(), 0)(e.NewContext(upload(t, presets.Selfie, nil), httptest.NewRecorder()))
	var he *echo.HTTPError
	require.ErrorAs(t, err, &he)
	assert.Equal(t, http.StatusBadRequest, he.Code)
}

func TestHandleRender_RejectsOversized(t *testing.T) {
	e := echo.New()
	err := HandleRender(presets.Default(), 15)(e.NewContext(upload(t, presets.Selfie, gray(4, 4, 100)), httptest.NewRecorder()))
	var he *echo.HTTPError
	require.ErrorAs(t, err, &he)
	assert.Equal(t, http.StatusBadRequest, he.Code)
}
