package content

import (
	_ "embed"
	"fmt"
	"strconv"
	"strings"

	"github.com/labstack/echo/v4"
	"thirdcoast.systems/camfilter/cmd/web/templates"
	"thirdcoast.systems/camfilter/pkg/presets"
	"thirdcoast.systems/camfilter/pkg/utils/markdown"
)

//go:embed help.md
var helpIntro string

// HandleHelpPage renders the help markdown followed by a table of every
// registered filter. The page is built once.
func HandleHelpPage(reg *presets.Registry) echo.HandlerFunc {
	md := markdown.NewMarkdown(HelpMarkdown(reg))
	return func(c echo.Context) error {
		return templates.HelpPage(md.Render()).Render(c.Request().Context(), c.Response())
	}
}

// HelpMarkdown is the help page source for reg.
func HelpMarkdown(reg *presets.Registry) string {
	var b strings.Builder
	b.WriteString(strings.TrimSpace(helpIntro))
	b.WriteString("\n\n| Filter | Id | Adjustments |\n| --- | --- | --- |\n")
	for _, e := range reg.Entries() {
		p, _ := reg.Lookup(e.ID)
		fmt.Fprintf(&b, "| %s | `%s` | %s |\n", e.Title, e.ID, describe(p))
	}
	return b.String()
}

func describe(p presets.Preset) string {
	var parts []string
	add := func(name string, v *float64, unit string) {
		if v != nil {
			parts = append(parts, name+" "+strconv.FormatFloat(*v, 'f', -1, 64)+unit)
		}
	}
	add("saturation", p.Saturation, "")
	add("brightness", p.Brightness, "")
	add("contrast", p.Contrast, "")
	add("hue", p.HueRotate, "°")
	add("vignette", p.Vignette, "")
	add("sharpness", p.Sharpness, "")
	if len(parts) == 0 {
		return "none"
	}
	return strings.Join(parts, ", ")
}
