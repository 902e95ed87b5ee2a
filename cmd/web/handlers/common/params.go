package common

import (
	"slices"

	"github.com/labstack/echo/v4"
)

// RequireParam extracts a route parameter, folded, that must be one of
// allowed. It returns a 400 error otherwise.
func RequireParam(c echo.Context, param string, allowed ...string) (string, error) {
	v := FoldID(c.Param(param))
	if v == "" || (len(allowed) > 0 && !slices.Contains(allowed, v)) {
		return "", ErrBadRequest("invalid " + param)
	}
	return v, nil
}
