// Package main is the entry point for the meshview OBJ viewer.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"go.uber.org/zap"

	"github.com/Faultbox/meshview/internal/config"
	"github.com/Faultbox/meshview/internal/engine/input/sdlinput"
	"github.com/Faultbox/meshview/internal/engine/renderer/glbackend"
	"github.com/Faultbox/meshview/internal/engine/window"
	"github.com/Faultbox/meshview/internal/logger"
	"github.com/Faultbox/meshview/internal/viewer"
)

// exitUsage is the conventional exit code for command-line misuse.
const exitUsage = 2

func usage() {
	out := flag.CommandLine.Output()
	fmt.Fprintf(out, "Usage: %s [flags] <model.obj> [texture.bmp]\n\nFlags:\n", os.Args[0])
	flag.PrintDefaults()
	fmt.Fprintf(out, `
Controls:
  arrows, Q/E      rotate the object (Shift: turn or raise the camera)
  W/A/S/D          move the object (Shift: move the camera)
  PageUp/PageDown  move along Z (Shift: camera up/down)
  F                cycle fill, wireframe and points
  T                fade between face colors and texture
  R                restore the initial pose
  P                save a screenshot
  Esc              quit
`)
}

func main() {
	flag.Usage = usage
	config.ParseFlags()

	args := config.Args()
	if len(args) < 1 || len(args) > 2 {
		flag.Usage()
		os.Exit(exitUsage)
	}
	modelPath := args[0]
	texturePath := ""
	if len(args) == 2 {
		texturePath = args[1]
	}

	os.Exit(run(modelPath, texturePath))
}

// run owns every deferred release so they happen before os.Exit.
func run(modelPath, texturePath string) int {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Config error: %v\n", err)
		return 1
	}

	if err := logger.Init(cfg.Logging.Level, cfg.Logging.LogFile); err != nil {
		fmt.Fprintf(os.Stderr, "Logger error: %v\n", err)
		return 1
	}
	defer logger.Sync()

	logger.Info("=== meshview ===")
	logger.Sugar.Debugf("Config: %+v", cfg)

	if config.SaveRequested() {
		path, err := cfg.SaveEffective()
		if err != nil {
			logger.Error("failed to save config", zap.Error(err))
			return 1
		}
		logger.Info("config saved", zap.String("path", path))
	}

	scene, err := viewer.LoadScene(modelPath, texturePath, viewer.LoadOptions{
		Strict: cfg.Parser.Strict,
		Seed:   cfg.Viewer.ColorSeed,
	})
	if err != nil {
		logger.Error("failed to load scene", zap.Error(err))
		return 1
	}

	bindings, err := sdlinput.DefaultBindings().WithOverrides(cfg.Controls.Bindings)
	if err != nil {
		logger.Error("invalid key bindings", zap.Error(err))
		return 1
	}

	title := cfg.Window.Title + " - " + modelPath
	win, err := window.New(window.Config{
		Title:      title,
		Width:      cfg.Window.Width,
		Height:     cfg.Window.Height,
		Fullscreen: cfg.Window.Fullscreen,
		VSync:      cfg.Window.VSync,
		Resizable:  cfg.Window.Resizable,
	})
	if err != nil {
		logger.Error("failed to create window", zap.Error(err))
		return 1
	}
	defer win.Close()

	width, height := win.DrawableSize()
	gfx, err := glbackend.New(glbackend.Config{
		Width:      width,
		Height:     height,
		Background: cfg.Viewer.Background,
		PointSize:  cfg.Viewer.PointSize,
	}, win)
	if err != nil {
		logger.Error("failed to create renderer", zap.Error(err))
		return 1
	}
	defer gfx.Close()

	v, err := viewer.New(viewer.SettingsFromConfig(cfg.Viewer), gfx, sdlinput.New(bindings, win.DrawableSize), scene, width, height)
	if err != nil {
		logger.Error("failed to create viewer", zap.Error(err))
		return 1
	}
	defer v.Close()
	v.ShowStatus(win, title)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := v.Run(ctx); err != nil {
		logger.Error("viewer error", zap.Error(err))
		return 1
	}

	logger.Info("viewer closed normally")
	return 0
}
