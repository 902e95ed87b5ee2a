package static

import (
	"io/fs"
	"sort"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEmbeddedAssets(t *testing.T) {
	var got []string
	err := fs.WalkDir(FS, ".", func(path string, d fs.DirEntry, err error) error {
		if err != nil || d.IsDir() {
			return err
		}
		got = append(got, path)
		return nil
	})
	require.NoError(t, err)
	sort.Strings(got)
	require.Equal(t, []string{"dist/app.css", "dist/app.js"}, got)
}

func TestAppScriptEndpoints(t *testing.T) {
	js, err := fs.ReadFile(FS, "dist/app.js")
	require.NoError(t, err)

	// The script talks to these server routes directly.
	for _, needle := range []string{
		"/api/live/capture.png",
		"/capture",
		"panelBreakpoint",
		"requestFullscreen",
		"toggle.style.display",
	} {
		assert.Contains(t, string(js), needle)
	}
}
