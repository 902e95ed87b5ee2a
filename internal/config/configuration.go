package config

import (
	"context"
	"fmt"
	"log/slog"
	"reflect"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/go-playground/validator/v10"
	"github.com/spf13/viper"
)

type Config struct {
	// WebServer Configuration
	WebServerPort int `mapstructure:"WEBSERVER_PORT" validate:"min=1,max=65535"`

	// Camera Configuration
	Camera CameraConfig `mapstructure:",squash"`

	// Render Configuration
	RenderFPS          int    `mapstructure:"RENDER_FPS" validate:"min=1,max=240"`
	DefaultPreset      string `mapstructure:"DEFAULT_PRESET"`
	PanelBreakpoint    int    `mapstructure:"PANEL_BREAKPOINT" validate:"gt=0"`
	PreviewJPEGQuality int    `mapstructure:"PREVIEW_JPEG_QUALITY" validate:"min=1,max=100"`

	// Capture Configuration
	UploadLimit      string `mapstructure:"UPLOAD_LIMIT" validate:"required"`
	CaptureDir       string `mapstructure:"CAPTURE_DIR"`
	UpscaleTechnique string `mapstructure:"UPSCALE_TECHNIQUE" validate:"oneof=bilinear nearest"`
	MaxUploadPixels  int    `mapstructure:"MAX_UPLOAD_PIXELS" validate:"gt=0"`

	// UploadLimitBytes is UploadLimit parsed by LoadConfig.
	UploadLimitBytes uint64
}

type CameraConfig struct {
	InputFormat string `mapstructure:"CAMERA_INPUT_FORMAT" validate:"oneof=v4l2 avfoundation dshow lavfi"`
	Device      string `mapstructure:"CAMERA_DEVICE" validate:"required"`
	FrontDevice string `mapstructure:"CAMERA_FRONT_DEVICE"`
	FacingMode  string `mapstructure:"CAMERA_FACING_MODE" validate:"oneof=environment user"`
	Width       int    `mapstructure:"CAMERA_WIDTH" validate:"gt=0"`
	Height      int    `mapstructure:"CAMERA_HEIGHT" validate:"gt=0"`
	FrameRate   int    `mapstructure:"CAMERA_FRAME_RATE" validate:"gt=0"`
}

// RenderInterval is the render loop tick for RenderFPS.
func (c *Config) RenderInterval() time.Duration {
	return time.Second / time.Duration(c.RenderFPS)
}

// use reflect to bind environment variables based on mapstructure tags
func bindEnv(c Config) {
	val := reflect.ValueOf(c)
	typ := val.Type()

	for i := 0; i < val.NumField(); i++ {
		field := typ.Field(i)
		fieldVal := val.Field(i)
		tag := field.Tag.Get("mapstructure")

		// Handle nested structs
		if field.Type.Kind() == reflect.Struct {
			nestedTyp := fieldVal.Type()
			for j := 0; j < fieldVal.NumField(); j++ {
				nestedField := nestedTyp.Field(j)
				nestedTag := nestedField.Tag.Get("mapstructure")
				if nestedTag != "" {
					viper.BindEnv(nestedTag)
				}
			}
			continue
		}

		if tag != "" {
			viper.BindEnv(tag)
		}
	}
	slog.Debug("Environment variables bound", "config", c)
}

func LoadConfig(ctx context.Context) (*Config, error) {
	bindEnv(Config{})
	viper.AutomaticEnv()

	// Defaults
	viper.SetDefault("WEBSERVER_PORT", 8080)
	viper.SetDefault("CAMERA_INPUT_FORMAT", "v4l2")
	viper.SetDefault("CAMERA_DEVICE", "/dev/video0")
	viper.SetDefault("CAMERA_FACING_MODE", "environment")
	viper.SetDefault("CAMERA_WIDTH", 1920)
	viper.SetDefault("CAMERA_HEIGHT", 1080)
	viper.SetDefault("CAMERA_FRAME_RATE", 30)
	viper.SetDefault("RENDER_FPS", 30)
	viper.SetDefault("DEFAULT_PRESET", "aqua_sky")
	viper.SetDefault("PANEL_BREAKPOINT", 600)
	viper.SetDefault("PREVIEW_JPEG_QUALITY", 80)
	viper.SetDefault("UPLOAD_LIMIT", "16MB")
	viper.SetDefault("UPSCALE_TECHNIQUE", "bilinear")
	viper.SetDefault("MAX_UPLOAD_PIXELS", 40_000_000)

	cfg := Config{}
	if err := viper.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}

	slog.Info("Loaded configuration", "config", cfg)

	validate := validator.New()
	if err := validate.Struct(cfg); err != nil {
		return nil, fmt.Errorf("validate config: %w", err)
	}

	limit, err := humanize.ParseBytes(cfg.UploadLimit)
	if err != nil {
		return nil, fmt.Errorf("parse UPLOAD_LIMIT: %w", err)
	}
	if limit == 0 {
		return nil, fmt.Errorf("parse UPLOAD_LIMIT: must be greater than zero")
	}
	cfg.UploadLimitBytes = limit

	return &cfg, nil
}
