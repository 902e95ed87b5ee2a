package live_api

import (
	"log/slog"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/starfederation/datastar-go/datastar"
	"thirdcoast.systems/camfilter/cmd/web/handlers/common"
	"thirdcoast.systems/camfilter/cmd/web/templates"
	"thirdcoast.systems/camfilter/internal/live"
	"thirdcoast.systems/camfilter/pkg/presets"
)

// HandlePresets lists the registry as (id, title) pairs in registration order.
func HandlePresets(reg *presets.Registry) echo.HandlerFunc {
	return func(c echo.Context) error {
		return c.JSON(http.StatusOK, reg.Entries())
	}
}

// HandleSelectPreset swaps the render snapshot to the preset signal. Unknown
// ids are accepted and render unadjusted.
func HandleSelectPreset(reg *presets.Registry, params *live.ParamsStore, hub *live.Hub) echo.HandlerFunc {
	return func(c echo.Context) error {
		// IMPORTANT: ReadSignals MUST happen BEFORE NewSSE.
		type Signals struct {
			Preset string `json:"preset"`
		}
		signals := &Signals{}
		if err := datastar.ReadSignals(c.Request(), signals); err != nil {
			slog.Warn("failed to read preset signals", "error", err)
			return common.ErrBadRequest("invalid signals")
		}

		id := common.FoldID(signals.Preset)
		next := params.Update(func(p live.RenderParams) live.RenderParams {
			return p.WithPreset(id)
		})
		hub.PublishParams(next)
		slog.Debug("Preset selected", "preset", id)

		sse := datastar.NewSSE(c.Response().Writer, c.Request())
		return sse.PatchElementTempl(
			templates.PresetTitle(reg.TitleOr(id)),
			datastar.WithSelectorID(templates.PresetTitleID),
			datastar.WithModeReplace(),
		)
	}
}
