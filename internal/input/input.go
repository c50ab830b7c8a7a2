package input

import (
	"fmt"
	"strings"

	"github.com/go-gl/glfw/v3.3/glfw"
)

// Action represents a logical command, not a physical key
type Action int

const (
	ActionQuit Action = iota
	ActionTogglePause
	ActionNextScene
	ActionReloadShaders
	ActionCapture
	ActionCount // Sentinel value for array sizing
)

var actionNames = [ActionCount]string{
	ActionQuit:          "quit",
	ActionTogglePause:   "pause",
	ActionNextScene:     "next_scene",
	ActionReloadShaders: "reload",
	ActionCapture:       "capture",
}

func (a Action) String() string {
	if a < 0 || a >= ActionCount {
		return fmt.Sprintf("action(%d)", int(a))
	}
	return actionNames[a]
}

// ParseAction resolves a config name such as "reload".
func ParseAction(name string) (Action, error) {
	for i, n := range actionNames {
		if n == name {
			return Action(i), nil
		}
	}
	return 0, fmt.Errorf("unknown action %q", name)
}

// Manager maps keys to actions and tracks per-frame edges. Key events
// arrive from glfw.PollEvents on the render thread, so no locking is needed.
type Manager struct {
	keyToActions map[glfw.Key][]Action

	current     [ActionCount]bool
	justPressed [ActionCount]bool
}

// NewManager creates a Manager with the default bindings.
func NewManager() *Manager {
	m := &Manager{keyToActions: make(map[glfw.Key][]Action)}
	m.Bind(glfw.KeyEscape, ActionQuit)
	m.Bind(glfw.KeySpace, ActionTogglePause)
	m.Bind(glfw.KeyTab, ActionNextScene)
	m.Bind(glfw.KeyR, ActionReloadShaders)
	m.Bind(glfw.KeyF12, ActionCapture)
	return m
}

// Bind adds action to key. A key may drive several actions.
func (m *Manager) Bind(key glfw.Key, action Action) {
	if action < 0 || action >= ActionCount {
		return
	}
	m.keyToActions[key] = append(m.keyToActions[key], action)
}

// Rebind replaces every key currently bound to action with key.
func (m *Manager) Rebind(action Action, key glfw.Key) {
	for k, acts := range m.keyToActions {
		kept := acts[:0]
		for _, a := range acts {
			if a != action {
				kept = append(kept, a)
			}
		}
		if len(kept) == 0 {
			delete(m.keyToActions, k)
		} else {
			m.keyToActions[k] = kept
		}
	}
	m.Bind(key, action)
}

// HandleKey records a key event. Matches the window key callback shape.
func (m *Manager) HandleKey(key glfw.Key, action glfw.Action) {
	acts, ok := m.keyToActions[key]
	if !ok {
		return
	}
	pressed := action == glfw.Press || action == glfw.Repeat
	for _, a := range acts {
		if pressed && !m.current[a] {
			m.justPressed[a] = true
		}
		m.current[a] = pressed
	}
}

// PostUpdate clears the edge flags. Call once at the end of every frame.
func (m *Manager) PostUpdate() {
	for i := range ActionCount {
		m.justPressed[i] = false
	}
}

// JustPressed reports a press edge in the current frame.
func (m *Manager) JustPressed(a Action) bool {
	if a < 0 || a >= ActionCount {
		return false
	}
	return m.justPressed[a]
}

var keyNames = map[string]glfw.Key{
	"escape": glfw.KeyEscape,
	"space":  glfw.KeySpace,
	"tab":    glfw.KeyTab,
	"enter":  glfw.KeyEnter,
	"f1":     glfw.KeyF1,
	"f2":     glfw.KeyF2,
	"f5":     glfw.KeyF5,
	"f12":    glfw.KeyF12,
}

// ParseKey resolves a key name: a single letter or digit, or one of the
// named keys such as "space" or "f12".
func ParseKey(name string) (glfw.Key, error) {
	n := strings.ToLower(strings.TrimSpace(name))
	if k, ok := keyNames[n]; ok {
		return k, nil
	}
	if len(n) == 1 {
		c := n[0]
		switch {
		case c >= 'a' && c <= 'z':
			return glfw.KeyA + glfw.Key(c-'a'), nil
		case c >= '0' && c <= '9':
			return glfw.Key0 + glfw.Key(c-'0'), nil
		}
	}
	return glfw.KeyUnknown, fmt.Errorf("unknown key %q", name)
}
