package config

import (
	"errors"
	"flag"
	"fmt"
	"os"
	"strings"

	"github.com/go-gl/glfw/v3.3/glfw"
	"github.com/pelletier/go-toml/v2"

	"glmotion/internal/input"
)

const (
	minFPSLimit = 10
	maxFPSLimit = 1000
)

// WindowSettings holds window configuration
type WindowSettings struct {
	Width     int    `toml:"width"`
	Height    int    `toml:"height"`
	Title     string `toml:"title"`
	VSync     bool   `toml:"vsync"`
	Resizable bool   `toml:"resizable"`
	// FPSLimit caps the frame rate when vsync is off; 0 means uncapped.
	FPSLimit int `toml:"fps_limit"`
}

// OffsetSettings drives the symmetric X translation.
type OffsetSettings struct {
	Limit float32 `toml:"limit"`
	Step  float32 `toml:"step"`
}

// SizeSettings drives the scale oscillation.
type SizeSettings struct {
	Start float32 `toml:"start"`
	Min   float32 `toml:"min"`
	Max   float32 `toml:"max"`
	Step  float32 `toml:"step"`
}

// SpinSettings drives rotation, in degrees per frame.
type SpinSettings struct {
	Step float32 `toml:"step"`
}

// AnimationSettings groups the per-frame constants of every scene.
type AnimationSettings struct {
	Offset OffsetSettings `toml:"offset"`
	Size   SizeSettings   `toml:"size"`
	Spin   SpinSettings   `toml:"spin"`
}

// Settings is the complete program configuration.
type Settings struct {
	Scene      string            `toml:"scene"`
	ShaderDir  string            `toml:"shader_dir"`
	CaptureDir string            `toml:"capture_dir"`
	SlowFrame  int               `toml:"slow_frame_ms"`
	Window     WindowSettings    `toml:"window"`
	Animation  AnimationSettings `toml:"animation"`
	// Keys maps action names ("reload") to key names ("r").
	Keys map[string]string `toml:"keys"`
}

// Defaults returns the compiled-in configuration.
func Defaults() Settings {
	return Settings{
		Scene:      "triangle",
		CaptureDir: "captures",
		SlowFrame:  16,
		Window: WindowSettings{
			Width:  720,
			Height: 600,
			Title:  "Test Window",
			VSync:  true,
		},
		Animation: AnimationSettings{
			Offset: OffsetSettings{Limit: 0.7, Step: 0.005},
			Size:   SizeSettings{Start: 0.4, Min: 0.1, Max: 0.8, Step: 0.001},
			Spin:   SpinSettings{Step: 0.5},
		},
	}
}

// Load reads a TOML file over the defaults. An empty path returns the
// defaults unchanged. Unknown keys are rejected.
func Load(path string) (Settings, error) {
	s := Defaults()
	if path == "" {
		return s, nil
	}
	f, err := os.Open(path)
	if err != nil {
		return s, fmt.Errorf("open config: %w", err)
	}
	defer func() { _ = f.Close() }()

	dec := toml.NewDecoder(f).DisallowUnknownFields()
	if err := dec.Decode(&s); err != nil {
		var strict *toml.StrictMissingError
		if errors.As(err, &strict) {
			keys := make([]string, 0, len(strict.Errors))
			for _, e := range strict.Errors {
				keys = append(keys, strings.Join(e.Key(), "."))
			}
			return s, fmt.Errorf("config %s: unknown keys %s", path, strings.Join(keys, ", "))
		}
		return s, fmt.Errorf("config %s: %w", path, err)
	}
	return s, nil
}

// Validate rejects unusable values and clamps the FPS limit into range.
func (s *Settings) Validate() error {
	if s.Window.Width <= 0 || s.Window.Height <= 0 {
		return fmt.Errorf("window size %dx%d must be positive", s.Window.Width, s.Window.Height)
	}
	if s.Window.FPSLimit < 0 {
		s.Window.FPSLimit = 0
	}
	if s.Window.FPSLimit > 0 && s.Window.FPSLimit < minFPSLimit {
		s.Window.FPSLimit = minFPSLimit
	}
	if s.Window.FPSLimit > maxFPSLimit {
		s.Window.FPSLimit = maxFPSLimit
	}
	if s.SlowFrame < 0 {
		return fmt.Errorf("slow_frame_ms %d must not be negative", s.SlowFrame)
	}
	if _, err := s.Bindings(); err != nil {
		return err
	}
	return nil
}

// SwapInterval converts the vsync flag for glfw.SwapInterval.
func (s Settings) SwapInterval() int {
	if s.Window.VSync {
		return 1
	}
	return 0
}

// Bindings resolves the Keys table.
func (s Settings) Bindings() (map[input.Action]glfw.Key, error) {
	out := make(map[input.Action]glfw.Key, len(s.Keys))
	for actionName, keyName := range s.Keys {
		a, err := input.ParseAction(actionName)
		if err != nil {
			return nil, fmt.Errorf("keys: %w", err)
		}
		k, err := input.ParseKey(keyName)
		if err != nil {
			return nil, fmt.Errorf("keys.%s: %w", actionName, err)
		}
		out[a] = k
	}
	return out, nil
}

// Overrides holds command-line values that win over the config file.
type Overrides struct {
	fs *flag.FlagSet

	scene      string
	shaderDir  string
	captureDir string
	width      int
	height     int
	vsync      bool
	fps        int
}

// RegisterFlags defines the override flags on fs.
func RegisterFlags(fs *flag.FlagSet) *Overrides {
	d := Defaults()
	o := &Overrides{fs: fs}
	fs.StringVar(&o.scene, "scene", d.Scene, "scene to start with (triangle, tetrahedron, orbit)")
	fs.StringVar(&o.shaderDir, "shaders", d.ShaderDir, "directory with <variant>.vert/.frag overrides, watched for changes")
	fs.StringVar(&o.captureDir, "capture-dir", d.CaptureDir, "directory for F12 frame captures")
	fs.IntVar(&o.width, "width", d.Window.Width, "window width")
	fs.IntVar(&o.height, "height", d.Window.Height, "window height")
	fs.BoolVar(&o.vsync, "vsync", d.Window.VSync, "wait for vertical sync on swap")
	fs.IntVar(&o.fps, "fps", d.Window.FPSLimit, "frame rate cap when vsync is off (0 = uncapped)")
	return o
}

// Apply copies every flag that was set explicitly into s.
func (o *Overrides) Apply(s *Settings) {
	o.fs.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "scene":
			s.Scene = o.scene
		case "shaders":
			s.ShaderDir = o.shaderDir
		case "capture-dir":
			s.CaptureDir = o.captureDir
		case "width":
			s.Window.Width = o.width
		case "height":
			s.Window.Height = o.height
		case "vsync":
			s.Window.VSync = o.vsync
		case "fps":
			s.Window.FPSLimit = o.fps
		}
	})
}
