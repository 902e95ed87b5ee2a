package common

import (
	"strings"

	"github.com/labstack/echo/v4"
	"golang.org/x/text/cases"
)

// FoldID normalizes a user-supplied identifier: trimmed, case folded.
// A Caser is stateful, so each call gets its own.
func FoldID(s string) string {
	return cases.Fold().String(strings.TrimSpace(s))
}

// SetAttachment marks the response as a download named filename.
func SetAttachment(c echo.Context, filename string) {
	c.Response().Header().Set(echo.HeaderContentDisposition, `attachment; filename="`+filename+`"`)
}

// SetNoStore disables caching for responses that change every frame.
func SetNoStore(c echo.Context) {
	c.Response().Header().Set(echo.HeaderCacheControl, "no-store, no-cache, must-revalidate")
	c.Response().Header().Set("Pragma", "no-cache")
}
