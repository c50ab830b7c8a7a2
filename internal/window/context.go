package window

import (
	"fmt"
	"log"

	"github.com/go-gl/gl/v4.1-core/gl"
	"github.com/go-gl/glfw/v3.3/glfw"
)

// InitStage names the step of context creation that failed.
type InitStage string

const (
	StageGLFW   InitStage = "glfw init"
	StageWindow InitStage = "window creation"
	StageLoader InitStage = "gl loader"
)

// InitError is returned when the window or GL context cannot be brought up.
// It is fatal for the program.
type InitError struct {
	Stage InitStage
	Err   error
}

func (e *InitError) Error() string {
	return fmt.Sprintf("%s failed: %v", e.Stage, e.Err)
}

func (e *InitError) Unwrap() error {
	return e.Err
}

// Options tune window creation.
type Options struct {
	// SwapInterval is passed to glfw.SwapInterval; 1 waits for vsync.
	SwapInterval int
	Resizable    bool
	Hidden       bool
}

// Context owns a glfw window and its current GL context. It must be used
// from the thread that created it.
type Context struct {
	window *glfw.Window
}

// Create initialises glfw, opens a window and loads GL entry points. On
// failure everything acquired so far is released before returning.
func Create(width, height int, title string, opts Options) (*Context, error) {
	if err := glfw.Init(); err != nil {
		return nil, &InitError{Stage: StageGLFW, Err: err}
	}

	glfw.WindowHint(glfw.ContextVersionMajor, 4)
	glfw.WindowHint(glfw.ContextVersionMinor, 1)
	// Core profile, no backwards compatibility
	glfw.WindowHint(glfw.OpenGLProfile, glfw.OpenGLCoreProfile)
	glfw.WindowHint(glfw.OpenGLForwardCompatible, glfw.True)
	glfw.WindowHint(glfw.Resizable, boolHint(opts.Resizable))
	glfw.WindowHint(glfw.Visible, boolHint(!opts.Hidden))

	win, err := glfw.CreateWindow(width, height, title, nil, nil)
	if err != nil {
		glfw.Terminate()
		return nil, &InitError{Stage: StageWindow, Err: err}
	}
	win.MakeContextCurrent()

	if err := gl.Init(); err != nil {
		win.Destroy()
		glfw.Terminate()
		return nil, &InitError{Stage: StageLoader, Err: err}
	}
	glfw.SwapInterval(opts.SwapInterval)

	fbw, fbh := win.GetFramebufferSize()
	gl.Viewport(0, 0, int32(fbw), int32(fbh))
	win.SetFramebufferSizeCallback(func(_ *glfw.Window, w, h int) {
		gl.Viewport(0, 0, int32(w), int32(h))
	})

	log.Printf("GL %s on %s", gl.GoStr(gl.GetString(gl.VERSION)), gl.GoStr(gl.GetString(gl.RENDERER)))
	return &Context{window: win}, nil
}

func boolHint(v bool) int {
	if v {
		return glfw.True
	}
	return glfw.False
}

// ShouldClose reports whether the user asked to close the window.
func (c *Context) ShouldClose() bool {
	return c.window.ShouldClose()
}

// SetShouldClose requests or cancels closing.
func (c *Context) SetShouldClose(v bool) {
	c.window.SetShouldClose(v)
}

// PollEvents processes pending input events without blocking.
func (c *Context) PollEvents() {
	glfw.PollEvents()
}

// SwapBuffers presents the frame. Blocks for vsync when enabled.
func (c *Context) SwapBuffers() {
	c.window.SwapBuffers()
}

// MakeCurrent makes the context current on the calling thread.
func (c *Context) MakeCurrent() {
	c.window.MakeContextCurrent()
}

// FramebufferSize returns the drawable size in pixels.
func (c *Context) FramebufferSize() (int, int) {
	return c.window.GetFramebufferSize()
}

// SetKeyCallback routes key events to fn.
func (c *Context) SetKeyCallback(fn func(key glfw.Key, action glfw.Action)) {
	c.window.SetKeyCallback(func(_ *glfw.Window, key glfw.Key, _ int, action glfw.Action, _ glfw.ModifierKey) {
		fn(key, action)
	})
}

// Destroy closes the window and then terminates glfw. Safe to call twice.
func (c *Context) Destroy() {
	if c.window == nil {
		return
	}
	c.window.Destroy()
	c.window = nil
	glfw.Terminate()
}
