package app

import (
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/go-gl/gl/v4.1-core/gl"

	"glmotion/internal/anim"
	"glmotion/internal/config"
	"glmotion/internal/graphics"
	"glmotion/internal/input"
	"glmotion/internal/profiling"
	"glmotion/internal/scene"
	"glmotion/internal/window"
)

// App runs the frame loop over one window.
type App struct {
	ctx      *window.Context
	settings config.Settings
	input    *input.Manager
	loader   graphics.SourceLoader
	watcher  *graphics.ShaderWatcher

	programs map[graphics.Variant]*graphics.ShaderProgram
	meshes   map[*scene.Scene]*graphics.Mesh
	states   map[*scene.Scene]*anim.State

	scene   *scene.Scene
	binding scene.Binding
	paused  bool

	prof    *profiling.Frame
	limiter *FPSLimiter
	frames  uint64
}

// New compiles every shader variant and uploads every scene mesh. It makes
// ctx current on the calling thread, which must then run the loop.
func New(ctx *window.Context, s config.Settings) (*App, error) {
	start, err := scene.Lookup(s.Scene)
	if err != nil {
		return nil, err
	}
	ctx.MakeCurrent()

	a := &App{
		ctx:      ctx,
		settings: s,
		input:    input.NewManager(),
		loader:   graphics.SourceLoader{Dir: s.ShaderDir},
		meshes:   make(map[*scene.Scene]*graphics.Mesh),
		states:   make(map[*scene.Scene]*anim.State),
		prof:     profiling.NewFrame(),
		limiter:  NewFPSLimiter(),
	}

	bindings, err := s.Bindings()
	if err != nil {
		return nil, err
	}
	for action, key := range bindings {
		a.input.Rebind(action, key)
	}

	a.programs, err = a.compileAll()
	if err != nil {
		return nil, err
	}

	for _, sc := range scene.All() {
		m, err := graphics.NewMesh(sc.Vertices, sc.Indices)
		if err != nil {
			a.Close()
			return nil, fmt.Errorf("scene %s: %w", sc.Name, err)
		}
		a.meshes[sc] = m

		st, err := sc.NewState(s.Animation)
		if err != nil {
			a.Close()
			return nil, err
		}
		a.states[sc] = &st
	}

	if s.ShaderDir != "" {
		a.watcher, err = graphics.WatchShaders(s.ShaderDir)
		if err != nil {
			log.Printf("shader hot reload disabled: %v", err)
		}
	}

	ctx.SetKeyCallback(a.input.HandleKey)
	a.switchTo(start)
	return a, nil
}

func (a *App) compileAll() (map[graphics.Variant]*graphics.ShaderProgram, error) {
	out := make(map[graphics.Variant]*graphics.ShaderProgram)
	for _, v := range graphics.Variants() {
		p, err := a.loader.CompileVariant(v)
		if err != nil {
			for _, done := range out {
				done.Delete()
			}
			return nil, err
		}
		if verr := p.Validation(); verr != nil {
			log.Printf("%s: %v", v, verr)
		}
		out[v] = p
	}
	return out, nil
}

// Reload recompiles every variant. On failure the running programs are kept.
func (a *App) Reload() error {
	fresh, err := a.compileAll()
	if err != nil {
		return err
	}
	for _, p := range a.programs {
		p.Delete()
	}
	a.programs = fresh
	a.rebind()
	log.Printf("shaders reloaded")
	return nil
}

func (a *App) switchTo(sc *scene.Scene) {
	a.scene = sc
	a.rebind()
	log.Printf("scene %s", sc.Name)
}

func (a *App) rebind() {
	b, err := a.scene.Bind(a.programs[a.scene.Variant])
	if err != nil {
		// keep drawing; the uniform upload becomes a no-op
		log.Printf("%v", err)
	}
	a.binding = b
}

// State returns the animation state of the active scene.
func (a *App) State() *anim.State {
	return a.states[a.scene]
}

// Run loops until the window is asked to close.
func (a *App) Run() {
	for !a.ctx.ShouldClose() {
		a.tick()
	}
}

func (a *App) tick() {
	a.prof.Reset()
	start := time.Now()

	func() { defer a.prof.Track("glfw.PollEvents")(); a.ctx.PollEvents() }()
	a.handleActions()

	if !a.paused {
		func() { defer a.prof.Track("anim.Advance")(); a.State().Advance(1) }()
	}

	func() { defer a.prof.Track("render.Draw")(); a.render() }()

	if a.input.JustPressed(input.ActionCapture) {
		a.capture()
	}
	a.pollReload()

	func() { defer a.prof.Track("wait.SwapBuffers")(); a.ctx.SwapBuffers() }()
	a.frames++

	slow := time.Duration(a.settings.SlowFrame) * time.Millisecond
	// time blocked on vsync is not work
	if busy := time.Since(start) - a.prof.SumWithPrefix("wait."); slow > 0 && busy > slow {
		log.Printf("Slow frame: %v. Top tasks: %s", busy, a.prof.TopN(3))
	}

	a.input.PostUpdate()
	if !a.settings.Window.VSync {
		a.limiter.Wait(a.settings.Window.FPSLimit)
	}
}

func (a *App) handleActions() {
	if a.input.JustPressed(input.ActionQuit) {
		a.ctx.SetShouldClose(true)
	}
	if a.input.JustPressed(input.ActionTogglePause) {
		a.paused = !a.paused
	}
	if a.input.JustPressed(input.ActionNextScene) {
		a.switchTo(scene.Next(a.scene))
	}
	if a.input.JustPressed(input.ActionReloadShaders) {
		if err := a.Reload(); err != nil {
			logReloadError(err)
		}
	}
}

func (a *App) pollReload() {
	if a.watcher == nil {
		return
	}
	name, ok := a.watcher.Pending()
	if !ok {
		return
	}
	log.Printf("%s changed", name)
	if err := a.Reload(); err != nil {
		logReloadError(err)
	}
}

func logReloadError(err error) {
	var ce *graphics.ShaderCompileError
	if errors.As(err, &ce) {
		log.Printf("reload failed, keeping previous shaders: %s shader log:\n%s", ce.Stage, ce.Log)
		return
	}
	log.Printf("reload failed, keeping previous shaders: %v", err)
}

func (a *App) render() {
	gl.ClearColor(0, 0, 0, 1)
	gl.Clear(gl.COLOR_BUFFER_BIT | gl.DEPTH_BUFFER_BIT)

	if a.scene.DepthTest {
		gl.Enable(gl.DEPTH_TEST)
	} else {
		gl.Disable(gl.DEPTH_TEST)
	}

	p := a.programs[a.scene.Variant]
	m := a.meshes[a.scene]

	p.Use()
	a.scene.Push(p, a.binding, a.State())
	m.Bind()
	m.Draw()
	m.Unbind()
	p.Unuse()
}

func (a *App) capture() {
	w, h := a.ctx.FramebufferSize()
	img, err := graphics.ReadFramebuffer(w, h)
	if err != nil {
		log.Printf("capture skipped: %v", err)
		return
	}
	path, err := graphics.SaveCapture(a.settings.CaptureDir, img, time.Now())
	if err != nil {
		log.Printf("capture failed: %v", err)
		return
	}
	log.Printf("captured %s", path)
}

// Frames returns the number of frames presented.
func (a *App) Frames() uint64 {
	return a.frames
}

// Close releases GL objects and stops the watcher. The context stays alive.
func (a *App) Close() {
	if a.watcher != nil {
		if err := a.watcher.Close(); err != nil {
			log.Printf("shader watcher: %v", err)
		}
		a.watcher = nil
	}
	for sc, m := range a.meshes {
		m.Delete()
		delete(a.meshes, sc)
	}
	for v, p := range a.programs {
		p.Delete()
		delete(a.programs, v)
	}
}
