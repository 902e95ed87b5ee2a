package live_api

import (
	"log/slog"

	"github.com/labstack/echo/v4"
	"github.com/starfederation/datastar-go/datastar"
	"thirdcoast.systems/camfilter/cmd/web/handlers/common"
	"thirdcoast.systems/camfilter/cmd/web/templates"
	"thirdcoast.systems/camfilter/internal/live"
	"thirdcoast.systems/camfilter/pkg/presets"
)

var toggles = map[string]func(live.RenderParams) live.RenderParams{
	"monochrome": live.RenderParams.ToggleMonochrome,
	"flash":      live.RenderParams.ToggleFlash,
	"zoom":       live.RenderParams.ToggleZoom,
	"panel":      live.RenderParams.TogglePanel,
}

// HandleToggle flips one display toggle and patches the controls that show it.
func HandleToggle(reg *presets.Registry, params *live.ParamsStore, hub *live.Hub) echo.HandlerFunc {
	return func(c echo.Context) error {
		name, err := common.RequireParam(c, "name", "monochrome", "flash", "zoom", "panel")
		if err != nil {
			return err
		}

		next := params.Update(toggles[name])
		hub.PublishParams(next)
		slog.Debug("Toggle changed", "toggle", name, "params", next)

		sse := datastar.NewSSE(c.Response().Writer, c.Request())
		if err := sse.PatchElementTempl(templates.ToggleBar(next), datastar.WithSelectorID(templates.ToggleBarID), datastar.WithModeReplace()); err != nil {
			return err
		}
		if name == "panel" {
			return sse.PatchElementTempl(templates.PresetPanel(reg.Entries(), next), datastar.WithSelectorID("filter-panel"), datastar.WithModeReplace())
		}
		return nil
	}
}
