// Package frame_api composites uploaded stills with a preset.
package frame_api

import (
	"bytes"
	"image/png"
	"log/slog"
	"net/http"

	"github.com/labstack/echo/v4"
	"thirdcoast.systems/camfilter/cmd/web/handlers/common"
	"thirdcoast.systems/camfilter/pkg/compositor"
	"thirdcoast.systems/camfilter/pkg/presets"
)

// HandleRender composites the uploaded "image" file with the "preset" form
// value and returns the result as PNG. Unknown presets return the image
// unadjusted. Images over maxPixels are rejected.
func HandleRender(reg *presets.Registry, maxPixels int) echo.HandlerFunc {
	return func(c echo.Context) error {
		fh, err := c.FormFile("image")
		if err != nil {
			return common.ErrBadRequest("missing image")
		}
		f, err := fh.Open()
		if err != nil {
			return common.ErrBadRequest("unreadable image")
		}
		defer f.Close()

		src, format, err := common.DecodeImage(f, maxPixels)
		if err != nil {
			return err
		}

		id := common.FoldID(c.FormValue("preset"))
		p, found := reg.Lookup(id)
		out := compositor.Compose(compositor.ToNRGBA(src), p)

		var buf bytes.Buffer
		if err := png.Encode(&buf, out); err != nil {
			slog.Error("failed to encode rendered frame", "error", err)
			return common.ErrInternal("failed to encode image")
		}

		slog.Debug("Frame rendered", "preset", id, "known", found, "format", format, "size", out.Bounds().Size())
		common.SetAttachment(c, "photo.png")
		return c.Blob(http.StatusOK, "image/png", buf.Bytes())
	}
}
