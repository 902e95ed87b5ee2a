// Package live_api serves the live camera controls, the status stream and
// the preview and export endpoints.
package live_api

import (
	"context"
	"image"

	"thirdcoast.systems/camfilter/internal/live"
	"thirdcoast.systems/camfilter/pkg/compositor"
	"thirdcoast.systems/camfilter/pkg/presets"
)

// Controller is the part of the render loop the handlers drive.
type Controller interface {
	Retry() bool
	RenderOnce(ctx context.Context, p presets.Preset) (*image.NRGBA, error)
}

var _ Controller = (*live.Loop)(nil)

func previewOptions(p live.RenderParams) compositor.PreviewOptions {
	return compositor.PreviewOptions{
		Zoom:       p.Zoom,
		Monochrome: p.Monochrome,
		Flash:      p.Flash,
	}
}
