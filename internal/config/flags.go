package config

import "flag"

// Flags holds the command-line overrides. Only flags given on the command
// line override file values.
type Flags struct {
	Config      string
	PrintConfig bool

	debug  bool
	mode   string
	out    string
	frames int
	width  int
	height int
	offset float64
	fit    bool
	spin   float64
	watch  bool

	fs *flag.FlagSet
}

// RegisterFlags defines the flatshade flags on fs.
func RegisterFlags(fs *flag.FlagSet) *Flags {
	f := &Flags{fs: fs}
	fs.StringVar(&f.Config, "config", "", "Path to config file")
	fs.BoolVar(&f.PrintConfig, "print-config", false, "Print the effective config as YAML and exit")
	fs.BoolVar(&f.debug, "debug", false, "Enable debug logging")
	fs.StringVar(&f.mode, "mode", ModeTerminal, "Presentation: terminal, png or window")
	fs.StringVar(&f.out, "out", "frame.png", "Output file for png mode")
	fs.IntVar(&f.frames, "frames", 1, "Frames to render in png mode")
	fs.IntVar(&f.width, "width", 800, "Viewport width in pixels (png and window modes)")
	fs.IntVar(&f.height, "height", 600, "Viewport height in pixels (png and window modes)")
	fs.Float64Var(&f.offset, "offset", 16, "Distance of the model along +Z")
	fs.BoolVar(&f.fit, "fit", false, "Place the model so its bounds fill the view, ignoring -offset")
	fs.Float64Var(&f.spin, "spin", 0, "Yaw speed in radians per second")
	fs.BoolVar(&f.watch, "watch", false, "Reload the model when the file changes")
	return f
}

// apply applies flags set on the command line to cfg. The first positional
// argument names the model.
func (f *Flags) apply(cfg *Config) {
	f.fs.Visit(func(fl *flag.Flag) {
		switch fl.Name {
		case "debug":
			if f.debug {
				cfg.Logging.Level = "debug"
			}
		case "mode":
			cfg.Display.Mode = f.mode
		case "out":
			cfg.Display.Out = f.out
		case "frames":
			cfg.Display.Frames = f.frames
		case "width":
			cfg.Render.Width = f.width
		case "height":
			cfg.Render.Height = f.height
		case "offset":
			cfg.Scene.Offset.Z = f.offset
		case "fit":
			cfg.Scene.Fit = f.fit
		case "spin":
			cfg.Scene.Spin = f.spin
		case "watch":
			cfg.Scene.Watch = f.watch
		}
	})

	if model := f.fs.Arg(0); model != "" {
		cfg.Scene.Model = model
	}
}
