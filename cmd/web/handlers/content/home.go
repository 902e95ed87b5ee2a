package content

import (
	"github.com/labstack/echo/v4"
	"thirdcoast.systems/camfilter/cmd/web/templates"
	"thirdcoast.systems/camfilter/internal/live"
	"thirdcoast.systems/camfilter/pkg/presets"
)

// HandleHomePage renders the camera page. Status, title and toggles are kept
// current afterwards by the /api/live/status stream.
func HandleHomePage(reg *presets.Registry, params *live.ParamsStore, hub *live.Hub, panelBreakpoint int) echo.HandlerFunc {
	return func(c echo.Context) error {
		p := params.Load()
		return templates.Index(templates.IndexView{
			Entries:         reg.Entries(),
			Params:          p,
			Title:           reg.TitleOr(p.PresetID),
			Status:          hub.Status(),
			PanelBreakpoint: panelBreakpoint,
		}).Render(c.Request().Context(), c.Response())
	}
}
