package static

import (
	"crypto/sha256"
	"fmt"
	"io"
	"io/fs"
	"mime"
	"net/http"
	"path"
	"strings"
	"time"

	"github.com/labstack/echo/v4"
)

// CachedFileInfo holds metadata for a static file used in HTTP cache headers.
type CachedFileInfo struct {
	ETag         string
	Size         int64
	LastModified time.Time
}

// StaticCache serves an immutable asset filesystem with precomputed ETags.
// The entries map is built once and only read afterwards.
type StaticCache struct {
	entries map[string]CachedFileInfo
	fs      fs.FS
}

// NewStaticCache scans fsys and computes ETag and Last-Modified for each file.
// Embedded files carry no modtime, so they are stamped with the scan time.
func NewStaticCache(fsys fs.FS) (*StaticCache, error) {
	c := &StaticCache{
		entries: make(map[string]CachedFileInfo),
		fs:      fsys,
	}
	started := time.Now().UTC().Truncate(time.Second)

	err := fs.WalkDir(fsys, ".", func(p string, d fs.DirEntry, err error) error {
		if err != nil || d.IsDir() {
			return err
		}
		f, err := fsys.Open(p)
		if err != nil {
			return err
		}
		defer f.Close()

		info, err := f.Stat()
		if err != nil {
			return err
		}

		h := sha256.New()
		if _, err := io.Copy(h, f); err != nil {
			return err
		}
		modTime := info.ModTime()
		if modTime.IsZero() {
			modTime = started
		}

		c.entries[p] = CachedFileInfo{
			ETag:         fmt.Sprintf("\"%x\"", h.Sum(nil)),
			Size:         info.Size(),
			LastModified: modTime,
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("scan static assets: %w", err)
	}
	return c, nil
}

// Lookup returns the cache entry for an asset path such as "dist/app.js".
func (s *StaticCache) Lookup(name string) (CachedFileInfo, bool) {
	ci, ok := s.entries[name]
	return ci, ok
}

func cacheControlFor(name string) string {
	ext := path.Ext(name)
	// dist assets are not fingerprinted, so they must revalidate.
	if strings.HasPrefix(name, "dist/") && (ext == ".css" || ext == ".js") {
		return "no-cache, must-revalidate"
	}
	switch ext {
	case ".png", ".jpg", ".jpeg", ".gif", ".svg", ".ico", ".woff", ".woff2", ".ttf":
		return "public, max-age=31536000, stale-while-revalidate=86400" // 1 year
	default:
		return "public, max-age=3600, stale-while-revalidate=300" // 1 hour
	}
}

// ServeStaticFile serves assets below the URL prefix.
func (s *StaticCache) ServeStaticFile(prefix string) echo.HandlerFunc {
	return func(c echo.Context) error {
		name := strings.TrimPrefix(c.Request().URL.Path, prefix)

		ci, ok := s.entries[name]
		if !ok {
			return echo.ErrNotFound
		}

		// If client has up-to-date version, return 304
		if inm := c.Request().Header.Get("If-None-Match"); inm != "" && inm == ci.ETag {
			return c.NoContent(http.StatusNotModified)
		}
		if ims := c.Request().Header.Get(echo.HeaderIfModifiedSince); ims != "" {
			if t, err := http.ParseTime(ims); err == nil && !ci.LastModified.After(t) {
				return c.NoContent(http.StatusNotModified)
			}
		}

		f, err := s.fs.Open(name)
		if err != nil {
			return echo.ErrNotFound
		}
		defer f.Close()

		h := c.Response().Header()
		h.Set(echo.HeaderCacheControl, cacheControlFor(name))
		h.Set("ETag", ci.ETag)
		h.Set(echo.HeaderLastModified, ci.LastModified.Format(http.TimeFormat))

		contentType := mime.TypeByExtension(path.Ext(name))
		if contentType == "" {
			contentType = "application/octet-stream"
		}
		return c.Stream(http.StatusOK, contentType, f)
	}
}
