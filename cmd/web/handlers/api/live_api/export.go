package live_api

import (
	"bytes"
	"errors"
	"log/slog"
	"net/http"

	"github.com/labstack/echo/v4"
	"thirdcoast.systems/camfilter/cmd/web/handlers/common"
	"thirdcoast.systems/camfilter/internal/live"
	"thirdcoast.systems/camfilter/pkg/presets"
)

// ExportFilename is the download name for captured and saved frames.
const ExportFilename = "photo.png"

// HandleExport downloads the current surface contents as PNG. Capture and
// save are both served by it, so they return identical bytes for the same
// presented frame.
func HandleExport(surface *live.Surface) echo.HandlerFunc {
	return func(c echo.Context) error {
		var buf bytes.Buffer
		ok, err := surface.EncodePNG(&buf)
		if err != nil {
			slog.Error("failed to encode surface", "error", err)
			return common.ErrInternal("failed to encode frame")
		}
		if !ok {
			return common.ErrUnavailable("no frame has been rendered yet")
		}

		common.SetNoStore(c)
		common.SetAttachment(c, ExportFilename)
		return c.Blob(http.StatusOK, "image/png", buf.Bytes())
	}
}

// HandleEnhance renders the newest camera frame once with the enhance
// adjustment and presents it.
func HandleEnhance(ctrl Controller) echo.HandlerFunc {
	return func(c echo.Context) error {
		_, err := ctrl.RenderOnce(c.Request().Context(), presets.Enhance)
		switch {
		case errors.Is(err, live.ErrNoFrame):
			return common.ErrUnavailable("no camera frame available")
		case err != nil:
			// Client went away.
			return nil
		}
		return c.NoContent(http.StatusNoContent)
	}
}
