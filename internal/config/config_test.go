package config

import (
	"flag"
	"os"
	"path/filepath"
	"testing"

	"github.com/go-gl/glfw/v3.3/glfw"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"glmotion/internal/input"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "glmotion.toml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
	return path
}

func TestDefaults(t *testing.T) {
	s := Defaults()
	require.NoError(t, s.Validate())

	assert.Equal(t, 720, s.Window.Width)
	assert.Equal(t, 600, s.Window.Height)
	assert.Equal(t, "triangle", s.Scene)
	assert.Equal(t, 1, s.SwapInterval())
	assert.Equal(t, float32(0.7), s.Animation.Offset.Limit)
	assert.Equal(t, float32(0.005), s.Animation.Offset.Step)
}

func TestLoadEmptyPath(t *testing.T) {
	s, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, Defaults(), s)
}

func TestLoadOverlay(t *testing.T) {
	path := writeConfig(t, `
scene = "tetrahedron"

[window]
vsync = false
fps_limit = 144

[animation.spin]
step = 2.0

[keys]
reload = "f5"
`)
	s, err := Load(path)
	require.NoError(t, err)
	require.NoError(t, s.Validate())

	assert.Equal(t, "tetrahedron", s.Scene)
	assert.False(t, s.Window.VSync)
	assert.Equal(t, 0, s.SwapInterval())
	assert.Equal(t, 144, s.Window.FPSLimit)
	assert.Equal(t, float32(2), s.Animation.Spin.Step)
	// untouched keys keep their defaults
	assert.Equal(t, 720, s.Window.Width)
	assert.Equal(t, float32(0.8), s.Animation.Size.Max)

	b, err := s.Bindings()
	require.NoError(t, err)
	assert.Equal(t, map[input.Action]glfw.Key{input.ActionReloadShaders: glfw.KeyF5}, b)
}

func TestLoadRejectsUnknownKeys(t *testing.T) {
	path := writeConfig(t, `
[window]
widht = 100
`)
	_, err := Load(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "widht")
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.toml"))
	assert.Error(t, err)
}

func TestValidateClampsFPS(t *testing.T) {
	s := Defaults()
	s.Window.FPSLimit = 5000
	require.NoError(t, s.Validate())
	assert.Equal(t, maxFPSLimit, s.Window.FPSLimit)

	s.Window.FPSLimit = 3
	require.NoError(t, s.Validate())
	assert.Equal(t, minFPSLimit, s.Window.FPSLimit)

	s.Window.FPSLimit = -1
	require.NoError(t, s.Validate())
	assert.Equal(t, 0, s.Window.FPSLimit)
}

func TestValidateErrors(t *testing.T) {
	s := Defaults()
	s.Window.Width = 0
	assert.Error(t, s.Validate())

	s = Defaults()
	s.Keys = map[string]string{"reload": "hyper"}
	assert.Error(t, s.Validate())

	s = Defaults()
	s.Keys = map[string]string{"jump": "space"}
	assert.Error(t, s.Validate())
}

func TestOverridesApplyOnlySetFlags(t *testing.T) {
	fs := flag.NewFlagSet("glmotion", flag.ContinueOnError)
	o := RegisterFlags(fs)
	require.NoError(t, fs.Parse([]string{"-scene", "orbit", "-vsync=false"}))

	s := Defaults()
	s.Window.Width = 1024 // as if set by a config file
	o.Apply(&s)

	assert.Equal(t, "orbit", s.Scene)
	assert.False(t, s.Window.VSync)
	assert.Equal(t, 1024, s.Window.Width)
}
