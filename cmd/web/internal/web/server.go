package web

import (
	"fmt"
	"log/slog"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"thirdcoast.systems/camfilter/cmd/web/handlers/api/capture_api"
	"thirdcoast.systems/camfilter/cmd/web/handlers/api/fileserver"
	"thirdcoast.systems/camfilter/cmd/web/handlers/api/frame_api"
	"thirdcoast.systems/camfilter/cmd/web/handlers/api/live_api"
	"thirdcoast.systems/camfilter/cmd/web/handlers/content"
	staticpkg "thirdcoast.systems/camfilter/cmd/web/internal/web/utils/static"
	"thirdcoast.systems/camfilter/internal/config"
	"thirdcoast.systems/camfilter/internal/live"
	"thirdcoast.systems/camfilter/pkg/presets"
	"thirdcoast.systems/camfilter/pkg/upscale"
	"thirdcoast.systems/camfilter/static"
)

// Deps are the live components the routes operate on.
type Deps struct {
	Registry *presets.Registry
	Params   *live.ParamsStore
	Surface  *live.Surface
	Hub      *live.Hub
	Loop     live_api.Controller
}

type Webserver struct {
	*echo.Echo
	conf        *config.Config
	deps        Deps
	staticCache *staticpkg.StaticCache
	captures    *fileserver.FileServer
}

// Routes that hold the connection open; they are neither logged nor gzipped.
var streamingPaths = map[string]bool{
	"/api/live/status":        true,
	"/api/live/preview.mjpeg": true,
}

// Routes that return already-compressed images.
var imagePaths = map[string]bool{
	"/api/live/capture.png": true,
	"/api/live/save.png":    true,
	"/api/frames/render":    true,
	"/capture":              true,
	"/captures/:id":         true,
}

func NewWebserver(conf *config.Config, deps Deps) (*Webserver, error) {
	e := echo.New()

	staticCache, err := staticpkg.NewStaticCache(static.FS)
	if err != nil {
		return nil, err
	}

	webserver := &Webserver{
		Echo:        e,
		conf:        conf,
		deps:        deps,
		staticCache: staticCache,
	}
	if conf.CaptureDir != "" {
		webserver.captures = fileserver.NewFileServer(conf.CaptureDir)
		slog.Info("Keeping captures", "dir", conf.CaptureDir)
	}

	if err = webserver.setupMiddleware(); err != nil {
		return nil, err
	}

	if err = webserver.registerRoutes(); err != nil {
		return nil, err
	}

	return webserver, nil
}

func (s *Webserver) setupMiddleware() error {
	if s.conf.UploadLimitBytes == 0 {
		return fmt.Errorf("upload limit must be set")
	}

	s.HideBanner = true
	s.HidePort = true
	s.Use(middleware.BodyLimit(fmt.Sprintf("%dB", s.conf.UploadLimitBytes)))
	s.Use(middleware.Recover())
	s.Use(middleware.RequestID())
	s.Use(middleware.GzipWithConfig(middleware.GzipConfig{
		Level: 5,
		Skipper: func(c echo.Context) bool {
			return streamingPaths[c.Path()] || imagePaths[c.Path()] || strings.HasSuffix(c.Request().URL.Path, ".png")
		},
	}))
	s.Use(middleware.RequestLoggerWithConfig(middleware.RequestLoggerConfig{
		Skipper: func(c echo.Context) bool {
			return streamingPaths[c.Path()]
		},
		LogURI:       true,
		LogMethod:    true,
		LogStatus:    true,
		LogLatency:   true,
		LogRemoteIP:  true,
		LogRequestID: true,
		LogError:     true,
		HandleError:  false,
		LogValuesFunc: func(c echo.Context, v middleware.RequestLoggerValues) error {
			fields := []any{
				"method", v.Method,
				"uri", v.URI,
				"status", v.Status,
				"latency", v.Latency,
				"remote_ip", v.RemoteIP,
				"request_id", v.RequestID,
			}
			if v.Error != nil {
				fields = append(fields, "error", v.Error)
			}
			slog.Info("request", fields...)
			return nil
		},
	}))

	return nil
}

func (s *Webserver) registerRoutes() error {
	d := s.deps

	apiGroup := s.Group("/api")
	apiGroup.GET("/presets", live_api.HandlePresets(d.Registry))
	apiGroup.POST("/frames/render", frame_api.HandleRender(d.Registry, s.conf.MaxUploadPixels))

	liveGroup := apiGroup.Group("/live")
	liveGroup.POST("/preset", live_api.HandleSelectPreset(d.Registry, d.Params, d.Hub))
	liveGroup.POST("/toggles/:name", live_api.HandleToggle(d.Registry, d.Params, d.Hub))
	liveGroup.GET("/status", live_api.HandleStatus(d.Registry, d.Params, d.Hub))
	liveGroup.POST("/retry", live_api.HandleRetry(d.Loop))
	liveGroup.POST("/enhance", live_api.HandleEnhance(d.Loop))
	liveGroup.GET("/preview.mjpeg", live_api.HandlePreview(d.Surface, d.Params, live_api.PreviewConfig{
		Interval: s.conf.RenderInterval(),
		Quality:  s.conf.PreviewJPEGQuality,
	}))
	liveGroup.GET("/capture.png", live_api.HandleExport(d.Surface))
	liveGroup.GET("/save.png", live_api.HandleExport(d.Surface))

	s.POST("/capture", capture_api.HandleCapture(capture_api.Config{
		Technique: upscale.ParseTechnique(s.conf.UpscaleTechnique),
		Store:     s.captures,
		MaxPixels: s.conf.MaxUploadPixels,
	}))
	if s.captures != nil {
		s.GET("/captures/:id", capture_api.HandleKept(s.captures))
	}

	// Health check
	s.GET("/healthz", func(c echo.Context) error {
		return c.String(http.StatusOK, "ok")
	})

	// Static file serving
	s.GET("/static/*", s.staticCache.ServeStaticFile("/static/"))

	// Content routes
	s.GET("/help", content.HandleHelpPage(d.Registry))
	s.GET("/", content.HandleHomePage(d.Registry, d.Params, d.Hub, s.conf.PanelBreakpoint))

	return nil
}
