package live_api

import (
	"fmt"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/starfederation/datastar-go/datastar"
	"thirdcoast.systems/camfilter/cmd/web/handlers/common"
	"thirdcoast.systems/camfilter/cmd/web/templates"
	"thirdcoast.systems/camfilter/internal/live"
	"thirdcoast.systems/camfilter/pkg/presets"
)

// KeepAlive is the interval between SSE keep-alive comments.
var KeepAlive = 15 * time.Second

// HandleStatus streams the camera status notice and the current title and
// toggles to the page.
func HandleStatus(reg *presets.Registry, params *live.ParamsStore, hub *live.Hub) echo.HandlerFunc {
	return func(c echo.Context) error {
		resp := c.Response()
		flusher, ok := resp.Writer.(http.Flusher)
		if !ok {
			return common.ErrInternal("streaming unsupported")
		}

		// Subscribe before the first patch so no change slips between them.
		evtCh, unsubscribe := hub.Subscribe()
		defer unsubscribe()

		common.SetSSEHeaders(c)
		sse := datastar.NewSSE(resp, c.Request())

		patchStatus := func(s live.Status) {
			_ = sse.PatchElementTempl(templates.CameraStatus(s), datastar.WithSelectorID(templates.CameraStatusID), datastar.WithModeReplace())
		}
		patchParams := func(p live.RenderParams) {
			_ = sse.PatchElementTempl(templates.PresetTitle(reg.TitleOr(p.PresetID)), datastar.WithSelectorID(templates.PresetTitleID), datastar.WithModeReplace())
			_ = sse.PatchElementTempl(templates.ToggleBar(p), datastar.WithSelectorID(templates.ToggleBarID), datastar.WithModeReplace())
		}

		patchStatus(hub.Status())
		patchParams(params.Load())
		flusher.Flush()

		ticker := time.NewTicker(KeepAlive)
		defer ticker.Stop()

		for {
			select {
			case <-c.Request().Context().Done():
				return nil
			case evt, ok := <-evtCh:
				if !ok {
					return nil
				}
				switch evt.Typ {
				case live.EventStatus:
					patchStatus(evt.Status)
				case live.EventParams:
					patchParams(evt.Params)
				default:
					continue
				}
				flusher.Flush()
			case <-ticker.C:
				_, _ = fmt.Fprintf(resp, ": keepalive\n\n")
				flusher.Flush()
			}
		}
	}
}

// HandleRetry re-attempts camera acquisition. The outcome arrives on the
// status stream.
func HandleRetry(ctrl Controller) echo.HandlerFunc {
	return func(c echo.Context) error {
		if !ctrl.Retry() {
			return c.NoContent(http.StatusAccepted)
		}
		return c.NoContent(http.StatusNoContent)
	}
}
