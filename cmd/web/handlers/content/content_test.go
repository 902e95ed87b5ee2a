package content

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"thirdcoast.systems/camfilter/internal/live"
	"thirdcoast.systems/camfilter/pkg/presets"
)

func TestHelpMarkdown_ListsEveryPreset(t *testing.T) {
	reg := presets.Default()
	md := HelpMarkdown(reg)
	for _, e := range reg.Entries() {
		assert.Contains(t, md, "`"+e.ID+"`")
	}
	assert.Contains(t, md, "| 🍎RED APPLE | `red_apple` | saturation 1.5, hue 90° |")
	assert.Contains(t, md, "| 🔬MACRO LENS | `macro_lens` | saturation 2, sharpness 2 |")
}

func TestDescribe_Empty(t *testing.T) {
	assert.Equal(t, "none", describe(presets.Preset{}))
	assert.Equal(t, "saturation 0", describe(presets.Preset{Saturation: presets.F(0)}))
}

func TestHandleHelpPage(t *testing.T) {
	e := echo.New()
	rec := httptest.NewRecorder()
	require.NoError(t, HandleHelpPage(presets.Default())(e.NewContext(httptest.NewRequest(http.MethodGet, "/help", nil), rec)))
	body := rec.Body.String()
	assert.Contains(t, body, "<table>")
	assert.Contains(t, body, "<dt>Enhance</dt>")
	assert.Contains(t, body, "<code>aqua_sky</code>")
}

func TestHandleHomePage(t *testing.T) {
	reg := presets.Default()
	params := live.NewParamsStore(live.DefaultParams("unknown"))
	hub := live.NewHub()
	hub.PublishStatus(live.Status{State: live.StateFailed, Reason: live.ReasonPermissionDenied, Message: "denied"})

	e := echo.New()
	rec := httptest.NewRecorder()
	require.NoError(t, HandleHomePage(reg, params, hub, 600)(e.NewContext(httptest.NewRequest(http.MethodGet, "/", nil), rec)))
	body := rec.Body.String()
	assert.Contains(t, body, `<h1 id="preset-title">unknown</h1>`)
	assert.Contains(t, body, "retryPermission")
	assert.Equal(t, reg.Len(), strings.Count(body, "<option "))
}
