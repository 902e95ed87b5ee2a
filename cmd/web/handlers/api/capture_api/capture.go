// Package capture_api upscales stills posted by the browser and serves the
// copies kept on disk.
package capture_api

import (
	"bytes"
	"encoding/base64"
	"fmt"
	"image/png"
	"log/slog"
	"net/http"
	"os"
	"path/filepath"
	"strings"

	"github.com/dustin/go-humanize"
	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"thirdcoast.systems/camfilter/cmd/web/handlers/api/fileserver"
	"thirdcoast.systems/camfilter/cmd/web/handlers/common"
	"thirdcoast.systems/camfilter/pkg/upscale"
)

// Filename is the download name of an upscaled capture.
const Filename = "enhanced_photo.png"

// HeaderCaptureID names the kept copy when a capture directory is set.
const HeaderCaptureID = "X-Capture-ID"

type captureRequest struct {
	Image string `json:"image"`
}

// Config controls how captures are upscaled and kept.
type Config struct {
	Technique upscale.Technique
	// Store keeps originals and upscaled copies. Nil keeps nothing.
	Store     *fileserver.FileServer
	// MaxPixels caps the decoded size of a capture. Zero means
	// common.DefaultMaxUploadPixels.
	MaxPixels int
}

// HandleCapture decodes a data URL still, upscales it 2x and returns it as
// an attachment.
func HandleCapture(cfg Config) echo.HandlerFunc {
	return func(c echo.Context) error {
		var req captureRequest
		if err := c.Bind(&req); err != nil {
			return common.ErrBadRequest("invalid capture request")
		}

		raw, err := decodeDataURL(req.Image)
		if err != nil {
			return common.ErrBadRequest(err.Error())
		}

		src, format, err := common.DecodeImage(bytes.NewReader(raw), cfg.MaxPixels)
		if err != nil {
			return err
		}

		out, err := upscale.Image(src, upscale.DefaultScale, cfg.Technique)
		if err != nil {
			return common.ErrBadRequest(err.Error())
		}

		var buf bytes.Buffer
		if err := png.Encode(&buf, out); err != nil {
			slog.Error("failed to encode upscaled capture", "error", err)
			return common.ErrInternal("failed to encode image")
		}

		b := src.Bounds()
		slog.Info("Capture upscaled",
			"format", format,
			"technique", cfg.Technique,
			"src", fmt.Sprintf("%dx%d", b.Dx(), b.Dy()),
			"dst", fmt.Sprintf("%dx%d", out.Bounds().Dx(), out.Bounds().Dy()),
			"in", humanize.Bytes(uint64(len(raw))),
			"out", humanize.Bytes(uint64(buf.Len())))

		if cfg.Store != nil {
			id, err := keep(cfg.Store, raw, format, buf.Bytes())
			if err != nil {
				slog.Warn("failed to keep capture", "dir", cfg.Store.Root(), "error", err)
			} else {
				c.Response().Header().Set(HeaderCaptureID, id)
			}
		}

		common.SetAttachment(c, Filename)
		return c.Blob(http.StatusOK, "image/png", buf.Bytes())
	}
}

// HandleKept serves an upscaled copy by capture id.
func HandleKept(store *fileserver.FileServer) echo.HandlerFunc {
	return func(c echo.Context) error {
		id, err := uuid.Parse(c.Param("id"))
		if err != nil {
			return common.ErrNotFound("capture not found")
		}
		return store.ServeFile(c, upscaledName(id.String()), "image/png", "private, max-age=86400", fileserver.ETagStrongSHA256)
	}
}

func decodeDataURL(s string) ([]byte, error) {
	if s == "" {
		return nil, fmt.Errorf("missing image")
	}
	// Bare base64 is accepted as well as data:image/...;base64,<payload>.
	if i := strings.IndexByte(s, ','); i >= 0 {
		s = s[i+1:]
	}
	raw, err := base64.StdEncoding.DecodeString(strings.TrimSpace(s))
	if err != nil {
		return nil, fmt.Errorf("invalid base64 image: %w", err)
	}
	return raw, nil
}

func originalName(id, format string) string {
	return "original_" + id + "." + format
}

func upscaledName(id string) string {
	return "upscaled_" + id + ".png"
}

func keep(store *fileserver.FileServer, original []byte, format string, upscaled []byte) (string, error) {
	dir := store.Root()
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("create capture dir: %w", err)
	}
	id := uuid.NewString()
	if err := os.WriteFile(filepath.Join(dir, originalName(id, format)), original, 0o644); err != nil {
		return "", fmt.Errorf("write original: %w", err)
	}
	if err := os.WriteFile(filepath.Join(dir, upscaledName(id)), upscaled, 0o644); err != nil {
		return "", fmt.Errorf("write upscaled: %w", err)
	}
	return id, nil
}
