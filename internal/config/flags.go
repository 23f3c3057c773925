package config

import "flag"

var (
	flagConfig     = flag.String("config", "", "Path to config file")
	flagDebug      = flag.Bool("debug", false, "Enable debug logging")
	flagFullscreen = flag.Bool("fullscreen", false, "Run in fullscreen mode")
	flagWidth      = flag.Int("width", 0, "Window width")
	flagHeight     = flag.Int("height", 0, "Window height")
	flagSeed       = flag.Uint64("seed", 0, "Face color seed (0 = random)")
	flagStrict     = flag.Bool("strict", false, "Reject malformed OBJ lines instead of skipping them")
	flagBake       = flag.Bool("bake", false, "Bake object rotation into the vertex buffer")
	flagSaveConfig = flag.Bool("save-config", false, "Write the effective config back to the config file")
)

// ParseFlags parses command-line flags. Call this early in main().
func ParseFlags() {
	flag.Parse()
}

// Args returns the positional arguments left after flag parsing.
func Args() []string {
	return flag.Args()
}

// ConfigPath returns the explicit config path if provided via -config flag.
func ConfigPath() string {
	return *flagConfig
}

// SaveRequested reports whether -save-config was given.
func SaveRequested() bool {
	return *flagSaveConfig
}

// applyFlags applies CLI flag overrides to the config.
func applyFlags(cfg *Config) {
	if *flagDebug {
		cfg.Logging.Level = "debug"
	}
	if *flagFullscreen {
		cfg.Window.Fullscreen = true
	}
	if *flagWidth > 0 {
		cfg.Window.Width = *flagWidth
	}
	if *flagHeight > 0 {
		cfg.Window.Height = *flagHeight
	}
	if *flagSeed != 0 {
		cfg.Viewer.ColorSeed = *flagSeed
	}
	if *flagStrict {
		cfg.Parser.Strict = true
	}
	if *flagBake {
		cfg.Viewer.BakeRotation = true
	}
}
