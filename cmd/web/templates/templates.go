// Package templates holds the HTML components served by cmd/web. Every
// component is a templ.Component so handlers can render pages and patch
// fragments over datastar SSE the same way.
package templates

import (
	"context"
	"fmt"
	"html/template"
	"io"
	"strings"

	"github.com/a-h/templ"
	"thirdcoast.systems/camfilter/cmd/web/viewtypes"
	"thirdcoast.systems/camfilter/internal/live"
	"thirdcoast.systems/camfilter/pkg/presets"
)

// datastarScript is the datastar client bundle matching datastar-go v1.
const datastarScript = "https://cdn.jsdelivr.net/gh/starfederation/datastar@1.0.0/bundles/datastar.js"

// Element ids patched by the live stream.
const (
	PresetTitleID  = "preset-title"
	CameraStatusID = "camera-status"
	ToggleBarID    = "toggles"
)

var esc = templ.EscapeString[string]

// writer accumulates the first write error so components read top to bottom.
type writer struct {
	w   io.Writer
	err error
}

func (w *writer) print(parts ...string) {
	for _, p := range parts {
		if w.err != nil {
			return
		}
		_, w.err = io.WriteString(w.w, p)
	}
}

func (w *writer) render(ctx context.Context, c templ.Component) {
	if w.err != nil {
		return
	}
	w.err = c.Render(ctx, w.w)
}

// Empty renders nothing. It is the payload for remove patches.
func Empty() templ.Component {
	return templ.ComponentFunc(func(context.Context, io.Writer) error { return nil })
}

// Layout wraps body in the page shell.
func Layout(title string, body templ.Component) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		out := &writer{w: w}
		out.print(
			"<!DOCTYPE html><html lang=\"en\"><head><meta charset=\"utf-8\">",
			"<meta name=\"viewport\" content=\"width=device-width, initial-scale=1\">",
			"<title>", esc(title), "</title>",
			"<link rel=\"stylesheet\" href=\"/static/dist/app.css\">",
			"<script type=\"module\" src=\"", datastarScript, "\"></script>",
			"<script type=\"module\" src=\"/static/dist/app.js\"></script>",
			"</head><body class=\"", viewtypes.PageBody, "\">",
		)
		out.render(ctx, body)
		out.print("</body></html>")
		return out.err
	})
}

// IndexView is everything the camera page needs at first render.
type IndexView struct {
	Entries         []presets.Entry
	Params          live.RenderParams
	Title           string
	Status          live.Status
	PanelBreakpoint int
}

// Index is the live camera page.
func Index(v IndexView) templ.Component {
	body := templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		out := &writer{w: w}
		out.print(
			"<main id=\"camera\" class=\"", viewtypes.CameraShell, "\"",
			" data-signals=\"", esc(signalsJSON(v.Params)), "\"",
			" data-panel-breakpoint=\"", fmt.Sprint(v.PanelBreakpoint), "\"",
			" data-init=\"@get('/api/live/status')\">",
			"<header class=\"", viewtypes.PageHeading, "\">",
		)
		out.render(ctx, PresetTitle(v.Title))
		out.print("</header>")
		out.render(ctx, CameraStatus(v.Status))
		out.print(
			"<div class=\"", viewtypes.PreviewFrame, "\">",
			"<img id=\"preview\" src=\"/api/live/preview.mjpeg\" alt=\"Live camera preview\">",
			"</div>",
			"<nav class=\"", viewtypes.ActionBar, "\">",
			"<a id=\"capture\" class=\"", viewtypes.GhostButtonSm, "\" href=\"/api/live/capture.png\" download=\"photo.png\">Capture</a>",
			"<a id=\"save\" class=\"", viewtypes.GhostButtonSm, "\" href=\"/api/live/save.png\" download=\"photo.png\">Save</a>",
			"<button id=\"enhance\" class=\"", viewtypes.GhostButtonSm, "\" data-on:click=\"@post('/api/live/enhance')\">Enhance</button>",
			"<button id=\"upscale\" class=\"", viewtypes.GhostButtonSm, "\" data-upscale>Upscale</button>",
			"<button id=\"toggleFullscreen\" class=\"", viewtypes.GhostButtonSm, "\">Fullscreen</button>",
			"<a class=\"", viewtypes.GhostButtonSm, "\" href=\"/help\">Help</a>",
			"</nav>",
		)
		out.render(ctx, ToggleBar(v.Params))
		out.render(ctx, PresetPanel(v.Entries, v.Params))
		out.print("</main>")
		return out.err
	})
	return Layout("Camera", body)
}

func signalsJSON(p live.RenderParams) string {
	return fmt.Sprintf(`{"preset":%q}`, p.PresetID)
}

// PresetTitle is the heading showing the selected preset's title.
func PresetTitle(title string) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		out := &writer{w: w}
		out.print("<h1 id=\"", PresetTitleID, "\">", esc(title), "</h1>")
		return out.err
	})
}

// CameraStatus is the acquisition notice. It is empty while the camera is
// ready and carries the retry button when acquisition failed.
func CameraStatus(s live.Status) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		out := &writer{w: w}
		switch s.State {
		case live.StateReady:
			out.print(
				"<div id=\"", CameraStatusID, "\" class=\"hidden\" data-state=\"ready\"",
				" data-width=\"", fmt.Sprint(s.Size.X), "\" data-height=\"", fmt.Sprint(s.Size.Y), "\"></div>",
			)
		case live.StateFailed:
			out.print(
				"<div id=\"", CameraStatusID, "\" class=\"", viewtypes.NoticeError, "\" role=\"alert\" data-state=\"failed\" data-reason=\"", esc(string(s.Reason)), "\">",
				"<p>", esc(s.Message), "</p>",
				"<button id=\"retryPermission\" class=\"", viewtypes.GhostButtonSm, "\" data-on:click=\"@post('/api/live/retry')\">Retry</button>",
				"</div>",
			)
		case live.StateStopped:
			out.print("<div id=\"", CameraStatusID, "\" class=\"", viewtypes.NoticeInfo, "\" data-state=\"stopped\"><p>Camera stopped.</p></div>")
		default:
			out.print("<div id=\"", CameraStatusID, "\" class=\"", viewtypes.NoticeInfo, "\" data-state=\"starting\"><p>Starting camera&hellip;</p></div>")
		}
		return out.err
	})
}

type toggle struct {
	name  string
	label string
	on    bool
}

// ToggleBar renders the display toggles with their current state.
func ToggleBar(p live.RenderParams) templ.Component {
	toggles := []toggle{
		{"monochrome", "Mono", p.Monochrome},
		{"flash", "Flash", p.Flash},
		{"zoom", "Zoom", p.Zoom != live.ZoomNone},
		{"panel", "Filters", p.PanelVisible},
	}
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		out := &writer{w: w}
		out.print("<div id=\"", ToggleBarID, "\" class=\"", viewtypes.ActionBar, "\">")
		for _, t := range toggles {
			out.print(
				"<button id=\"toggle-", t.name, "\" class=\"", viewtypes.GhostButtonSm, "\"",
				" aria-pressed=\"", fmt.Sprint(t.on), "\"",
				" data-on:click=\"@post('/api/live/toggles/", t.name, "')\">",
				esc(t.label), "</button>",
			)
		}
		out.print("</div>")
		return out.err
	})
}

// PresetPanel is the preset selector. Changing it posts the preset signal.
func PresetPanel(entries []presets.Entry, p live.RenderParams) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		out := &writer{w: w}
		display := "flex"
		if !p.PanelVisible {
			display = "none"
		}
		out.print(
			"<div id=\"filter-panel\" class=\"", viewtypes.InfoBoxClass, "\" style=\"display:", display, "\">",
			"<label class=\"", viewtypes.SectionLabel, "\" for=\"filter\">Filter</label>",
			"<select id=\"filter\" class=\"", viewtypes.InputClass, "\" data-bind:preset data-on:change=\"@post('/api/live/preset')\">",
		)
		for _, e := range entries {
			sel := ""
			if e.ID == p.PresetID {
				sel = " selected"
			}
			out.print("<option value=\"", esc(e.ID), "\"", sel, ">", esc(e.Title), "</option>")
		}
		out.print("</select></div>")
		return out.err
	})
}

// HelpPage renders already-sanitized help HTML.
func HelpPage(content template.HTML) templ.Component {
	body := templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		out := &writer{w: w}
		out.print(
			"<main class=\"", viewtypes.HelpShell, "\">",
			"<a class=\"", viewtypes.GhostButtonSm, "\" href=\"/\">Back</a>",
			"<article class=\"prose\">", strings.TrimSpace(string(content)), "</article>",
			"</main>",
		)
		return out.err
	})
	return Layout("Filters", body)
}
