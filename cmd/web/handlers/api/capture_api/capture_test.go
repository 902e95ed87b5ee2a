package capture_api

import (
	"bytes"
	"encoding/base64"
	"encoding/json"
	"image"
	"image/color"
	"image/png"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"thirdcoast.systems/camfilter/cmd/web/handlers/api/fileserver"
	"thirdcoast.systems/camfilter/pkg/upscale"
)

func pngDataURL(t *testing.T, w, h int) string {
	t.Helper()
	img := image.NewNRGBA(image.Rect(0, 0, w, h))
	for i := range img.Pix {
		img.Pix[i] = 200
	}
	img.SetNRGBA(0, 0, color.NRGBA{10, 20, 30, 255})
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, img))
	return "data:image/png;base64," + base64.StdEncoding.EncodeToString(buf.Bytes())
}

func postCapture(t *testing.T, h echo.HandlerFunc, body string) (*httptest.ResponseRecorder, error) {
	t.Helper()
	e := echo.New()
	req := httptest.NewRequest(http.MethodPost, "/capture", strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	return rec, h(e.NewContext(req, rec))
}

func TestHandleCapture_UpscalesTwice(t *testing.T) {
	body, _ := json.Marshal(map[string]string{"image": pngDataURL(t, 3, 2)})
	rec, err := postCapture(t, HandleCapture(Config{Technique: upscale.Nearest}), string(body))
	require.NoError(t, err)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "image/png", rec.Header().Get(echo.HeaderContentType))
	assert.Equal(t, `attachment; filename="enhanced_photo.png"`, rec.Header().Get(echo.HeaderContentDisposition))
	assert.Empty(t, rec.Header().Get(HeaderCaptureID))

	out, err := png.Decode(rec.Body)
	require.NoError(t, err)
	assert.Equal(t, image.Pt(6, 4), out.Bounds().Size())
	r, g, b, _ := out.At(1, 1).RGBA()
	assert.Equal(t, []uint32{10, 20, 30}, []uint32{r >> 8, g >> 8, b >> 8})
}

func TestHandleCapture_BadInput(t *testing.T) {
	h := HandleCapture(Config{Technique: upscale.Bilinear})
	for name, body := range map[string]string{
		"not json":     "{",
		"missing":      `{}`,
		"bad base64":   `{"image":"data:image/png;base64,!!!"}`,
		"not an image": `{"image":"data:image/png;base64,` + base64.StdEncoding.EncodeToString([]byte("hello")) + `"}`,
	} {
		t.Run(name, func(t *testing.T) {
			_, err := postCapture(t, h, body)
			var he *echo.HTTPError
			require.ErrorAs(t, err, &he)
			assert.Equal(t, http.StatusBadRequest, he.Code)
		})
	}
}

func TestHandleCapture_RejectsOversized(t *testing.T) {
	body, _ := json.Marshal(map[string]string{"image": pngDataURL(t, 4, 4)})
	_, err := postCapture(t, HandleCapture(Config{Technique: upscale.Bilinear, MaxPixels: 15}), string(body))
	var he *echo.HTTPError
	require.ErrorAs(t, err, &he)
	assert.Equal(t, http.StatusBadRequest, he.Code)

	rec, err := postCapture(t, HandleCapture(Config{Technique: upscale.Bilinear, MaxPixels: 16}), string(body))
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestHandleCapture_KeepsCopies(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "captures")
	store := fileserver.NewFileServer(dir)
	body, _ := json.Marshal(map[string]string{"image": pngDataURL(t, 2, 2)})

	rec, err := postCapture(t, HandleCapture(Config{Technique: upscale.Bilinear, Store: store}), string(body))
	require.NoError(t, err)
	id := rec.Header().Get(HeaderCaptureID)
	require.NotEmpty(t, id)

	_, err = os.Stat(filepath.Join(dir, "original_"+id+".png"))
	require.NoError(t, err)
	kept, err := os.ReadFile(filepath.Join(dir, "upscaled_"+id+".png"))
	require.NoError(t, err)
	assert.Equal(t, rec.Body.Bytes(), kept)

	e := echo.New()
	getRec := httptest.NewRecorder()
	c := e.NewContext(httptest.NewRequest(http.MethodGet, "/captures/"+id, nil), getRec)
	c.SetParamNames("id")
	c.SetParamValues(id)
	require.NoError(t, HandleKept(store)(c))
	assert.Equal(t, kept, getRec.Body.Bytes())

	c = e.NewContext(httptest.NewRequest(http.MethodGet, "/captures/nope", nil), httptest.NewRecorder())
	c.SetParamNames("id")
	c.SetParamValues("../../etc/passwd")
	var he *echo.HTTPError
	require.ErrorAs(t, HandleKept(store)(c), &he)
	assert.Equal(t, http.StatusNotFound, he.Code)
}

func TestDecodeDataURL(t *testing.T) {
	raw, err := decodeDataURL(base64.StdEncoding.EncodeToString([]byte("abc")))
	require.NoError(t, err)
	assert.Equal(t, []byte("abc"), raw)

	raw, err = decodeDataURL("data:image/png;base64," + base64.StdEncoding.EncodeToString([]byte("xyz")))
	require.NoError(t, err)
	assert.Equal(t, []byte("xyz"), raw)
}
