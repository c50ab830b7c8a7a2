package input

import (
	"testing"

	"github.com/go-gl/glfw/v3.3/glfw"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEdgeDetection(t *testing.T) {
	m := NewManager()

	m.HandleKey(glfw.KeySpace, glfw.Press)
	assert.True(t, m.JustPressed(ActionTogglePause))

	m.PostUpdate()
	assert.False(t, m.JustPressed(ActionTogglePause))

	// key repeat while held is not a new press
	m.HandleKey(glfw.KeySpace, glfw.Repeat)
	assert.False(t, m.JustPressed(ActionTogglePause))

	// a press after a release is
	m.HandleKey(glfw.KeySpace, glfw.Release)
	assert.False(t, m.JustPressed(ActionTogglePause))
	m.HandleKey(glfw.KeySpace, glfw.Press)
	assert.True(t, m.JustPressed(ActionTogglePause))
}

func TestUnboundKeyIgnored(t *testing.T) {
	m := NewManager()
	m.HandleKey(glfw.KeyZ, glfw.Press)
	for a := range ActionCount {
		assert.False(t, m.JustPressed(a), a.String())
	}
}

func TestRebind(t *testing.T) {
	m := NewManager()
	m.Rebind(ActionReloadShaders, glfw.KeyF5)

	m.HandleKey(glfw.KeyR, glfw.Press)
	assert.False(t, m.JustPressed(ActionReloadShaders))

	m.HandleKey(glfw.KeyF5, glfw.Press)
	assert.True(t, m.JustPressed(ActionReloadShaders))
}

func TestOutOfRangeAction(t *testing.T) {
	m := NewManager()
	m.Bind(glfw.KeyQ, ActionCount)
	m.HandleKey(glfw.KeyQ, glfw.Press)
	assert.False(t, m.JustPressed(ActionCount))
	assert.False(t, m.JustPressed(-1))
}

func TestParseKey(t *testing.T) {
	cases := map[string]glfw.Key{
		"r":     glfw.KeyR,
		"A":     glfw.KeyA,
		"7":     glfw.Key7,
		"Space": glfw.KeySpace,
		"f12":   glfw.KeyF12,
	}
	for name, want := range cases {
		got, err := ParseKey(name)
		require.NoError(t, err, name)
		assert.Equal(t, want, got, name)
	}

	_, err := ParseKey("hyper")
	assert.Error(t, err)
}

func TestParseAction(t *testing.T) {
	a, err := ParseAction("capture")
	require.NoError(t, err)
	assert.Equal(t, ActionCapture, a)
	assert.Equal(t, "capture", a.String())

	_, err = ParseAction("jump")
	assert.Error(t, err)
}
