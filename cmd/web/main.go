package main

import (
	"context"
	"errors"
	"log/slog"
	"os"
	"os/signal"
	"strconv"
	"sync"
	"syscall"
	"time"

	"thirdcoast.systems/camfilter/cmd/web/internal/web"
	"thirdcoast.systems/camfilter/internal/camera"
	"thirdcoast.systems/camfilter/internal/config"
	"thirdcoast.systems/camfilter/internal/live"
	"thirdcoast.systems/camfilter/pkg/presets"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	slog.Info("Starting web service")

	conf, err := config.LoadConfig(ctx)
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	registry := presets.Default()
	if _, ok := registry.Lookup(conf.DefaultPreset); !ok {
		slog.Warn("default preset is not registered; frames render unadjusted", "preset", conf.DefaultPreset)
	}

	params := live.NewParamsStore(live.DefaultParams(conf.DefaultPreset))
	surface := live.NewSurface()
	hub := live.NewHub()

	source := &camera.Source{
		Format:      conf.Camera.InputFormat,
		Device:      conf.Camera.Device,
		FrontDevice: conf.Camera.FrontDevice,
	}
	loop := live.NewLoop(source, registry, params, surface, hub, live.LoopConfig{
		Constraints: live.Constraints{
			FacingMode: conf.Camera.FacingMode,
			Width:      conf.Camera.Width,
			Height:     conf.Camera.Height,
			FrameRate:  conf.Camera.FrameRate,
		},
		Interval: conf.RenderInterval(),
	})

	e, err := web.NewWebserver(conf, web.Deps{
		Registry: registry,
		Params:   params,
		Surface:  surface,
		Hub:      hub,
		Loop:     loop,
	})
	if err != nil {
		slog.Error("failed to create webserver", "error", err)
		os.Exit(1)
	}

	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		if err := loop.Run(ctx); err != nil {
			slog.Error("render loop failed", "error", err)
		}
	}()

	addr := ":" + strconv.Itoa(conf.WebServerPort)

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = e.Shutdown(shutdownCtx)
	}()

	slog.Info("Listening", "addr", addr)
	if err := e.Start(addr); err != nil {
		if errors.Is(err, context.Canceled) {
			wg.Wait()
			return
		}
		// Echo returns an error on Shutdown; treat it as normal if context is done.
		if ctx.Err() != nil {
			wg.Wait()
			return
		}
		slog.Error("server failed", "error", err)
		os.Exit(1)
	}
	wg.Wait()
}
