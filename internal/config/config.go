// Package config handles viewer configuration loading and management.
package config

// Config holds all viewer settings.
type Config struct {
	Window   WindowConfig   `yaml:"window"`
	Viewer   ViewerConfig   `yaml:"viewer"`
	Parser   ParserConfig   `yaml:"parser"`
	Controls ControlsConfig `yaml:"controls"`
	Logging  LoggingConfig  `yaml:"logging"`
}

// WindowConfig holds display settings.
type WindowConfig struct {
	Title      string `yaml:"title"`
	Width      int    `yaml:"width"`
	Height     int    `yaml:"height"`
	Fullscreen bool   `yaml:"fullscreen"`
	VSync      bool   `yaml:"vsync"`
	Resizable  bool   `yaml:"resizable"`
}

// ViewerConfig holds camera, animation and rendering settings.
type ViewerConfig struct {
	FOV           float32    `yaml:"fov"` // vertical, degrees
	Near          float32    `yaml:"near"`
	Far           float32    `yaml:"far"`
	RotateStep    float32    `yaml:"rotate_step"` // degrees per frame
	MoveStep      float32    `yaml:"move_step"`   // units per frame
	TurnStep      float32    `yaml:"turn_step"`   // camera degrees per frame
	MixStep       float64    `yaml:"mix_step"`
	BakeRotation  bool       `yaml:"bake_rotation"`
	ColorSeed     uint64     `yaml:"color_seed"` // 0 = time-derived
	CameraZ       float32    `yaml:"camera_z"`
	PointSize     float32    `yaml:"point_size"`
	Background    [3]float32 `yaml:"background"`
	ScreenshotDir string     `yaml:"screenshot_dir"`
}

// ParserConfig holds OBJ parsing settings.
type ParserConfig struct {
	Strict bool `yaml:"strict"`
}

// ControlsConfig overrides key bindings, mapping SDL scancode names
// ("W", "Left Shift") to action names ("move_forward").
type ControlsConfig struct {
	Bindings map[string]string `yaml:"bindings"`
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	Level   string `yaml:"level"`
	LogFile string `yaml:"log_file"`
}

// Default returns a Config with sensible default values.
func Default() *Config {
	return &Config{
		Window: WindowConfig{
			Title:      "meshview",
			Width:      1280,
			Height:     720,
			Fullscreen: false,
			VSync:      true,
			Resizable:  true,
		},
		Viewer: ViewerConfig{
			FOV:           45,
			Near:          0.1,
			Far:           100,
			RotateStep:    2.5,
			MoveStep:      0.02,
			TurnStep:      1.5,
			MixStep:       0.02,
			BakeRotation:  false,
			ColorSeed:     0,
			CameraZ:       2,
			PointSize:     3,
			Background:    [3]float32{0.1, 0.1, 0.12},
			ScreenshotDir: "screenshots",
		},
		Logging: LoggingConfig{
			Level:   "info",
			LogFile: "",
		},
	}
}
