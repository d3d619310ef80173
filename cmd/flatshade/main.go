// flatshade - flat-shaded software renderer for OBJ meshes.
// Draws a mesh in the terminal, to a PNG file or in a desktop window.
//
// Controls (terminal and window):
//
//	R           - Reset spin
//	Esc/Q       - Quit
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"go.uber.org/zap"

	"github.com/taigrr/flatshade/internal/config"
	"github.com/taigrr/flatshade/internal/logger"
	"github.com/taigrr/flatshade/internal/scene"
)

func main() {
	fl := config.RegisterFlags(flag.CommandLine)
	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "flatshade - flat-shaded software renderer\n\n")
		fmt.Fprintf(os.Stderr, "Usage: flatshade [options] <model.obj>\n\n")
		fmt.Fprintf(os.Stderr, "Options:\n")
		flag.PrintDefaults()
		fmt.Fprintf(os.Stderr, "\nControls:\n")
		fmt.Fprintf(os.Stderr, "  R           - Reset spin\n")
		fmt.Fprintf(os.Stderr, "  Esc/Q       - Quit\n")
	}
	flag.Parse()

	cfg, err := config.Load(fl)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	if fl.PrintConfig {
		if err := cfg.Encode(os.Stdout); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		return
	}

	if cfg.Scene.Model == "" {
		flag.Usage()
		os.Exit(1)
	}

	if err := run(cfg); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// newLogger builds the process logger. The terminal presenter owns stdout,
// so console output is only enabled for the other modes.
func newLogger(cfg *config.Config) *zap.Logger {
	opts := logger.Options{Level: cfg.Logging.Level}
	if cfg.Display.Mode != config.ModeTerminal {
		opts.Console = os.Stderr
	}
	if cfg.Logging.LogFile != "" {
		opts.File = logger.DefaultFileConfig(cfg.Logging.LogFile)
	}
	return logger.New(opts)
}

func run(cfg *config.Config) error {
	log := newLogger(cfg)
	defer logger.Sync(log)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	sc := scene.New(log)
	if err := sc.Load(cfg.Scene.Model); err != nil {
		return fmt.Errorf("load model: %w", err)
	}

	var changes <-chan struct{}
	if cfg.Scene.Watch {
		w, err := scene.NewWatcher(cfg.Scene.Model)
		if err != nil {
			return fmt.Errorf("watch model: %w", err)
		}
		defer w.Close()
		changes = w.Changes()

		go func() {
			for {
				select {
				case <-ctx.Done():
					return
				case err := <-w.Errors():
					log.Warn("watcher error", zap.Error(err))
				}
			}
		}()
		log.Info("watching model", zap.String("path", w.Path()))
	}

	v, err := newViewer(cfg, sc, changes, log)
	if err != nil {
		return err
	}

	switch cfg.Display.Mode {
	case config.ModePNG:
		return runPNG(ctx, v, cfg.Display.Frames, cfg.Display.Out)
	case config.ModeWindow:
		return runWindow(ctx, v, cfg.Display.FPS)
	default:
		return runTerminal(ctx, v, cfg.Display.FPS)
	}
}
