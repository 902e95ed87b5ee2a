// Package fileserver serves files kept on disk by the capture endpoint.
package fileserver

import (
	"crypto/sha256"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/labstack/echo/v4"
)

// ETagMode determines how ETags are computed.
type ETagMode int

const (
	// ETagWeakStat uses file size and modtime for a weak ETag.
	ETagWeakStat ETagMode = iota
	// ETagStrongSHA256 computes a SHA256 hash of the file content.
	ETagStrongSHA256
)

type cacheEntry struct {
	size    int64
	modTime time.Time
	mode    ETagMode
	etag    string
}

// ETagCache memoizes ETags for on-disk files. An entry is recomputed when
// the file's size or modtime changes.
type ETagCache struct {
	mu      sync.RWMutex
	entries map[string]cacheEntry
}

func NewETagCache() *ETagCache {
	return &ETagCache{entries: make(map[string]cacheEntry)}
}

// ETag computes or retrieves a cached ETag for the given file.
func (c *ETagCache) ETag(path string, info os.FileInfo, mode ETagMode) (string, error) {
	c.mu.RLock()
	e, ok := c.entries[path]
	c.mu.RUnlock()
	if ok && e.size == info.Size() && e.modTime.Equal(info.ModTime()) && e.mode == mode {
		return e.etag, nil
	}

	etag, err := computeETag(path, info, mode)
	if err != nil {
		return "", err
	}

	c.mu.Lock()
	c.entries[path] = cacheEntry{size: info.Size(), modTime: info.ModTime(), mode: mode, etag: etag}
	c.mu.Unlock()
	return etag, nil
}

func computeETag(path string, info os.FileInfo, mode ETagMode) (string, error) {
	switch mode {
	case ETagWeakStat:
		return fmt.Sprintf(`W/"%x-%x"`, info.ModTime().Unix(), info.Size()), nil
	case ETagStrongSHA256:
		f, err := os.Open(path)
		if err != nil {
			return "", err
		}
		defer f.Close()
		h := sha256.New()
		if _, err := io.Copy(h, f); err != nil {
			return "", err
		}
		return fmt.Sprintf(`"%x"`, h.Sum(nil)), nil
	default:
		return "", fmt.Errorf("unknown etag mode: %d", mode)
	}
}

// FileServer serves files from a single directory with conditional request
// support.
type FileServer struct {
	root  string
	cache *ETagCache
}

// NewFileServer serves files under root.
func NewFileServer(root string) *FileServer {
	return &FileServer{root: root, cache: NewETagCache()}
}

// Root is the served directory.
func (fs *FileServer) Root() string {
	return fs.root
}

// Resolve maps a bare file name onto a path under root. Names containing a
// separator or dot-dot are rejected.
func (fs *FileServer) Resolve(name string) (string, bool) {
	if fs.root == "" || name == "" || name != filepath.Base(name) || strings.HasPrefix(name, ".") {
		return "", false
	}
	return filepath.Join(fs.root, name), true
}

// ServeFile serves name from root with caching headers.
func (fs *FileServer) ServeFile(c echo.Context, name, contentType, cacheControl string, mode ETagMode) error {
	path, ok := fs.Resolve(name)
	if !ok {
		return echo.ErrNotFound
	}

	info, err := os.Stat(path)
	if err != nil || info.IsDir() {
		return echo.ErrNotFound
	}

	etag, err := fs.cache.ETag(path, info, mode)
	if err != nil {
		etag = ""
	}
	if etag != "" {
		if inm := c.Request().Header.Get("If-None-Match"); strings.TrimSpace(inm) == etag {
			return c.NoContent(http.StatusNotModified)
		}
	}

	h := c.Response().Header()
	h.Set(echo.HeaderCacheControl, cacheControl)
	if etag != "" {
		h.Set("ETag", etag)
	}
	if contentType != "" {
		h.Set(echo.HeaderContentType, contentType)
	}

	f, err := os.Open(path)
	if err != nil {
		return echo.ErrNotFound
	}
	defer f.Close()

	// ServeContent handles Range, HEAD and If-Modified-Since.
	http.ServeContent(c.Response(), c.Request(), info.Name(), info.ModTime(), f)
	return nil
}
