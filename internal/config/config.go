// Package config handles flatshade configuration loading and management.
package config

import (
	"errors"
	"fmt"
	"image/color"
	"math"
	"strconv"
	"strings"
)

// Presentation modes.
const (
	ModeTerminal = "terminal"
	ModePNG      = "png"
	ModeWindow   = "window"
)

// Config holds all renderer settings.
type Config struct {
	Render  RenderConfig  `yaml:"render"`
	Scene   SceneConfig   `yaml:"scene"`
	Display DisplayConfig `yaml:"display"`
	Logging LoggingConfig `yaml:"logging"`
}

// RenderConfig holds viewport and projection settings.
type RenderConfig struct {
	Width  int     `yaml:"width"`  // Pixels; ignored by the terminal presenter
	Height int     `yaml:"height"` // Pixels; ignored by the terminal presenter
	FOV    float64 `yaml:"fov"`    // Vertical field of view in degrees
	Near   float64 `yaml:"near"`
	Far    float64 `yaml:"far"`
}

// Vec3 is a YAML-friendly vector.
type Vec3 struct {
	X float64 `yaml:"x"`
	Y float64 `yaml:"y"`
	Z float64 `yaml:"z"`
}

// SceneConfig holds the model and lighting.
type SceneConfig struct {
	Model      string  `yaml:"model"`
	Offset     Vec3    `yaml:"offset"`      // World translation of the mesh
	Fit        bool    `yaml:"fit"`         // Derive the offset from the mesh bounds
	Light      Vec3    `yaml:"light"`       // Direction the light travels
	ShadeFloor float64 `yaml:"shade_floor"` // Negative disables the floor
	Spin       float64 `yaml:"spin"`        // Yaw speed in radians per second
	Watch      bool    `yaml:"watch"`       // Reload the model when it changes
}

// DisplayConfig holds presentation settings.
type DisplayConfig struct {
	Mode       string `yaml:"mode"`
	FPS        int    `yaml:"fps"`
	Out        string `yaml:"out"`        // PNG path for png mode
	Frames     int    `yaml:"frames"`     // Frames rendered in png mode; the last one is saved
	Background string `yaml:"background"` // "R,G,B"
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	Level   string `yaml:"level"`
	LogFile string `yaml:"log_file"`
}

// Default returns a Config with sensible default values.
func Default() *Config {
	return &Config{
		Render: RenderConfig{
			Width:  800,
			Height: 600,
			FOV:    90,
			Near:   0.1,
			Far:    1000,
		},
		Scene: SceneConfig{
			Offset:     Vec3{Z: 16},
			Light:      Vec3{Z: -1},
			ShadeFloor: 0.1,
		},
		Display: DisplayConfig{
			Mode:       ModeTerminal,
			FPS:        30,
			Out:        "frame.png",
			Frames:     1,
			Background: "0,0,0",
		},
		Logging: LoggingConfig{
			Level: "info",
		},
	}
}

// FOVRadians returns the field of view in radians.
func (r RenderConfig) FOVRadians() float64 {
	return r.FOV * math.Pi / 180
}

// BackgroundColor parses the background as an opaque color.
func (d DisplayConfig) BackgroundColor() (color.RGBA, error) {
	parts := strings.Split(d.Background, ",")
	if len(parts) != 3 {
		return color.RGBA{}, fmt.Errorf("background %q: want R,G,B", d.Background)
	}

	var rgb [3]uint8
	for i, p := range parts {
		v, err := strconv.ParseUint(strings.TrimSpace(p), 10, 8)
		if err != nil {
			return color.RGBA{}, fmt.Errorf("background %q: %w", d.Background, err)
		}
		rgb[i] = uint8(v)
	}
	return color.RGBA{rgb[0], rgb[1], rgb[2], 255}, nil
}

// Validate reports every setting the renderer cannot run with.
func (c *Config) Validate() error {
	var errs []error

	if c.Render.Width <= 0 || c.Render.Height <= 0 {
		errs = append(errs, fmt.Errorf("render size %dx%d must be positive", c.Render.Width, c.Render.Height))
	}
	if c.Render.FOV <= 0 || c.Render.FOV >= 180 {
		errs = append(errs, fmt.Errorf("fov %v must be in (0, 180) degrees", c.Render.FOV))
	}
	if c.Render.Near <= 0 || c.Render.Far <= c.Render.Near {
		errs = append(errs, fmt.Errorf("clip planes near=%v far=%v: need 0 < near < far", c.Render.Near, c.Render.Far))
	}

	if c.Scene.Light == (Vec3{}) {
		errs = append(errs, errors.New("light direction must be non-zero"))
	}

	switch c.Display.Mode {
	case ModeTerminal, ModePNG, ModeWindow:
	default:
		errs = append(errs, fmt.Errorf("unknown display mode %q", c.Display.Mode))
	}
	if c.Display.FPS <= 0 {
		errs = append(errs, fmt.Errorf("fps %d must be positive", c.Display.FPS))
	}
	if c.Display.Mode == ModePNG {
		if c.Display.Out == "" {
			errs = append(errs, errors.New("png mode needs an output path"))
		}
		if c.Display.Frames < 1 {
			errs = append(errs, fmt.Errorf("frames %d must be at least 1", c.Display.Frames))
		}
	}
	if _, err := c.Display.BackgroundColor(); err != nil {
		errs = append(errs, err)
	}

	return errors.Join(errs...)
}
