package main

import (
	"errors"
	"flag"
	"fmt"
	"log"
	"os"
	"runtime"

	"glmotion/internal/app"
	"glmotion/internal/config"
	"glmotion/internal/graphics"
	"glmotion/internal/window"
)

func init() {
	runtime.LockOSThread()
}

func main() {
	os.Exit(run(os.Args[1:]))
}

func run(args []string) int {
	fs := flag.NewFlagSet("glmotion", flag.ContinueOnError)
	configPath := fs.String("config", "", "TOML file overriding the compiled-in settings")
	overrides := config.RegisterFlags(fs)
	if err := fs.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return 0
		}
		return 2
	}

	settings, err := config.Load(*configPath)
	if err != nil {
		log.Printf("%v", err)
		return 1
	}
	overrides.Apply(&settings)
	if err := settings.Validate(); err != nil {
		log.Printf("invalid configuration: %v", err)
		return 1
	}

	ctx, err := window.Create(settings.Window.Width, settings.Window.Height, settings.Window.Title, window.Options{
		SwapInterval: settings.SwapInterval(),
		Resizable:    settings.Window.Resizable,
	})
	if err != nil {
		log.Printf("%v", err)
		return 1
	}
	defer ctx.Destroy()

	a, err := app.New(ctx, settings)
	if err != nil {
		report(err)
		return 1
	}
	defer a.Close()

	a.Run()
	log.Printf("closed after %d frames", a.Frames())
	return 0
}

// report prints shader logs verbatim on their own lines.
func report(err error) {
	var ce *graphics.ShaderCompileError
	var le *graphics.ShaderLinkError
	switch {
	case errors.As(err, &ce):
		fmt.Fprintf(os.Stderr, "error compiling the %s shader:\n%s\n", ce.Stage, ce.Log)
	case errors.As(err, &le):
		fmt.Fprintf(os.Stderr, "error linking program:\n%s\n", le.Log)
	default:
		log.Printf("%v", err)
	}
}
