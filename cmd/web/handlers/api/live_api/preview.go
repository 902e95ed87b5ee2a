package live_api

import (
	"bytes"
	"image/jpeg"
	"log/slog"
	"mime/multipart"
	"net/http"
	"net/textproto"
	"strconv"
	"time"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"thirdcoast.systems/camfilter/cmd/web/handlers/common"
	"thirdcoast.systems/camfilter/internal/live"
	"thirdcoast.systems/camfilter/pkg/compositor"
)

// PreviewConfig tunes the MJPEG preview stream.
type PreviewConfig struct {
	// Interval is how often the surface is polled for a new frame.
	Interval time.Duration
	// Quality is the JPEG quality, 1-100.
	Quality int
}

// HandlePreview streams the presented surface as multipart MJPEG with the
// display toggles applied. A new part is written whenever the surface or the
// toggles change.
func HandlePreview(surface *live.Surface, params *live.ParamsStore, cfg PreviewConfig) echo.HandlerFunc {
	if cfg.Interval <= 0 {
		cfg.Interval = live.DefaultInterval
	}
	if cfg.Quality <= 0 || cfg.Quality > 100 {
		cfg.Quality = jpeg.DefaultQuality
	}

	return func(c echo.Context) error {
		resp := c.Response()
		flusher, ok := resp.Writer.(http.Flusher)
		if !ok {
			return common.ErrInternal("streaming unsupported")
		}

		mw := multipart.NewWriter(resp)
		if err := mw.SetBoundary(uuid.NewString()); err != nil {
			return common.ErrInternal("failed to set boundary")
		}

		common.SetNoStore(c)
		resp.Header().Set(echo.HeaderContentType, "multipart/x-mixed-replace; boundary="+mw.Boundary())
		common.SetSSEHeaders(c)
		resp.WriteHeader(http.StatusOK)
		flusher.Flush()

		ticker := time.NewTicker(cfg.Interval)
		defer ticker.Stop()

		var (
			lastSeq    uint64
			lastParams live.RenderParams
			sent       bool
			buf        bytes.Buffer
			jpegOpts   = &jpeg.Options{Quality: cfg.Quality}
			ctx        = c.Request().Context()
		)
		for {
			select {
			case <-ctx.Done():
				return nil
			case <-ticker.C:
			}

			frame, seq := surface.Frame()
			p := params.Load()
			if frame == nil || (sent && seq == lastSeq && p == lastParams) {
				continue
			}
			lastSeq, lastParams, sent = seq, p, true

			view := frame
			if opts := previewOptions(p); !opts.IsZero() {
				view = compositor.Preview(frame, opts)
			}

			buf.Reset()
			if err := jpeg.Encode(&buf, view, jpegOpts); err != nil {
				slog.Error("failed to encode preview frame", "error", err)
				return nil
			}

			part, err := mw.CreatePart(textproto.MIMEHeader{
				"Content-Type":   {"image/jpeg"},
				"Content-Length": {strconv.Itoa(buf.Len())},
			})
			if err != nil {
				return nil
			}
			if _, err := part.Write(buf.Bytes()); err != nil {
				return nil
			}
			flusher.Flush()
		}
	}
}
