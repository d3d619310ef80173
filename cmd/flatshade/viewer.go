package main

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/taigrr/flatshade/internal/config"
	"github.com/taigrr/flatshade/internal/motion"
	"github.com/taigrr/flatshade/internal/scene"
	"github.com/taigrr/flatshade/pkg/math3d"
	"github.com/taigrr/flatshade/pkg/render"
)

// viewer ties the scene, the spin state and the renderer together. All of
// its methods run on the render goroutine.
type viewer struct {
	scene    *scene.Scene
	changes  <-chan struct{}
	spinner  *motion.Spinner
	pipeline *render.Pipeline
	renderer *render.Renderer
	fb       *render.Framebuffer
	fit      bool
	log      *zap.Logger
	frames   int
}

func newViewer(cfg *config.Config, sc *scene.Scene, changes <-chan struct{}, log *zap.Logger) (*viewer, error) {
	if log == nil {
		log = zap.NewNop()
	}

	bg, err := cfg.Display.BackgroundColor()
	if err != nil {
		return nil, err
	}

	camera := render.NewCamera()
	camera.SetFOV(cfg.Render.FOVRadians())
	camera.SetClipPlanes(cfg.Render.Near, cfg.Render.Far)

	fb := render.NewFramebuffer(cfg.Render.Width, cfg.Render.Height)
	pipeline := render.NewPipeline(camera, fb.Width, fb.Height)
	pipeline.SetOffset(vec3(cfg.Scene.Offset))
	if cfg.Scene.Fit {
		pipeline.Fit(sc.Mesh())
	}
	pipeline.LightDir = vec3(cfg.Scene.Light)
	pipeline.ShadeFloor = cfg.Scene.ShadeFloor

	renderer := render.NewRenderer(pipeline, fb, log)
	renderer.Background = bg

	spinner := motion.NewSpinner(cfg.Display.FPS)
	spinner.SetTarget(0, cfg.Scene.Spin)

	return &viewer{
		scene:    sc,
		changes:  changes,
		spinner:  spinner,
		pipeline: pipeline,
		renderer: renderer,
		fb:       fb,
		fit:      cfg.Scene.Fit,
		log:      log,
	}, nil
}

func vec3(v config.Vec3) math3d.Vec3 {
	return math3d.V3(v.X, v.Y, v.Z)
}

// resize replaces the framebuffer when the output size changes.
func (v *viewer) resize(width, height int) {
	if width <= 0 || height <= 0 || (width == v.fb.Width && height == v.fb.Height) {
		return
	}
	v.fb = render.NewFramebuffer(width, height)
	v.renderer.SetSurface(v.fb)
	v.pipeline.SetViewport(width, height)
	v.log.Debug("viewport resized", zap.Int("width", width), zap.Int("height", height))
}

// step picks up pending reloads, advances the spin and renders one frame
// into the framebuffer.
func (v *viewer) step() render.FrameStats {
	// Failures are logged by the scene, which keeps the previous mesh
	if reloaded, _ := v.scene.ReloadIfChanged(v.changes); reloaded && v.fit {
		v.pipeline.Fit(v.scene.Mesh())
		v.log.Debug("offset refitted", zap.Any("offset", v.pipeline.Offset()))
	}

	v.spinner.Step()
	pitch, yaw := v.spinner.Angles()
	v.pipeline.SetRotation(pitch, yaw, 0)

	v.frames++
	return v.renderer.RenderFrame(v.scene.Mesh())
}

// runPNG renders frames frames and saves the last one.
func runPNG(ctx context.Context, v *viewer, frames int, out string) error {
	var stats render.FrameStats
	for range frames {
		if err := ctx.Err(); err != nil {
			return err
		}
		stats = v.step()
	}

	if err := v.fb.SavePNG(out); err != nil {
		return fmt.Errorf("save frame: %w", err)
	}
	v.log.Info("frame written",
		zap.String("path", out),
		zap.Int("frames", v.frames),
		zap.Int("visible", stats.Visible),
		zap.Int("culled", stats.Culled),
		zap.Int("degenerate", stats.Degenerate),
	)
	return nil
}
