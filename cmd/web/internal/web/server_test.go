package web

import (
	"context"
	"image"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"thirdcoast.systems/camfilter/internal/config"
	"thirdcoast.systems/camfilter/internal/live"
	"thirdcoast.systems/camfilter/pkg/presets"
)

type idleLoop struct{}

func (idleLoop) Retry() bool { return true }

func (idleLoop) RenderOnce(context.Context, presets.Preset) (*image.NRGBA, error) {
	return nil, live.ErrNoFrame
}

func testConfig() *config.Config {
	return &config.Config{
		WebServerPort:      8080,
		RenderFPS:          30,
		DefaultPreset:      presets.AquaSky,
		PanelBreakpoint:    600,
		PreviewJPEGQuality: 80,
		UploadLimit:        "1KB",
		UploadLimitBytes:   1000,
		UpscaleTechnique:   "bilinear",
		MaxUploadPixels:    1_000_000,
	}
}

func newTestServer(t *testing.T, conf *config.Config) *Webserver {
	t.Helper()
	s, err := NewWebserver(conf, Deps{
		Registry: presets.Default(),
		Params:   live.NewParamsStore(live.DefaultParams(conf.DefaultPreset)),
		Surface:  live.NewSurface(),
		Hub:      live.NewHub(),
		Loop:     idleLoop{},
	})
	require.NoError(t, err)
	return s
}

func do(s *Webserver, method, target, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, target, strings.NewReader(body))
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	rec := httptest.NewRecorder()
	s.ServeHTTP(rec, req)
	return rec
}

func TestWebserver_Routes(t *testing.T) {
	s := newTestServer(t, testConfig())

	tests := []struct {
		method string
		target string
		want   int
	}{
		{http.MethodGet, "/healthz", http.StatusOK},
		{http.MethodGet, "/", http.StatusOK},
		{http.MethodGet, "/help", http.StatusOK},
		{http.MethodGet, "/api/presets", http.StatusOK},
		{http.MethodGet, "/static/dist/app.js", http.StatusOK},
		{http.MethodGet, "/static/dist/nope.js", http.StatusNotFound},
		{http.MethodGet, "/api/live/capture.png", http.StatusServiceUnavailable},
		{http.MethodGet, "/api/live/save.png", http.StatusServiceUnavailable},
		{http.MethodPost, "/api/live/enhance", http.StatusServiceUnavailable},
		{http.MethodPost, "/api/live/retry", http.StatusNoContent},
		{http.MethodPost, "/api/live/toggles/flash", http.StatusOK},
		{http.MethodPost, "/api/live/toggles/bogus", http.StatusBadRequest},
		{http.MethodGet, "/captures/0b0e7d36-3f8b-4b8e-9d59-0d5d1b7d1c11", http.StatusNotFound},
	}
	for _, tt := range tests {
		t.Run(tt.method+" "+tt.target, func(t *testing.T) {
			rec := do(s, tt.method, tt.target, "")
			assert.Equal(t, tt.want, rec.Code)
		})
	}
}

func TestWebserver_BodyLimit(t *testing.T) {
	s := newTestServer(t, testConfig())
	rec := do(s, http.MethodPost, "/capture", `{"image":"`+strings.Repeat("A", 2000)+`"}`)
	assert.Equal(t, http.StatusRequestEntityTooLarge, rec.Code)
}

func TestWebserver_CaptureDirRoute(t *testing.T) {
	conf := testConfig()
	conf.CaptureDir = t.TempDir()
	s := newTestServer(t, conf)
	require.NotNil(t, s.captures)

	rec := do(s, http.MethodGet, "/captures/not-a-uuid", "")
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestWebserver_RequiresUploadLimit(t *testing.T) {
	conf := testConfig()
	conf.UploadLimitBytes = 0
	_, err := NewWebserver(conf, Deps{Registry: presets.Default()})
	require.Error(t, err)
}
