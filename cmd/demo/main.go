//go:build !js && !nogl

package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"runtime"

	"github.com/kjkrol/cleargl/internal/platform"
	"github.com/kjkrol/cleargl/internal/renderer"
	"github.com/kjkrol/cleargl/pkg/gfx"
)

const keyEscape = 256

func init() {
	// glfw must run on the main thread
	runtime.LockOSThread()
}

func main() {
	configPath := flag.String("config", "", "YAML window configuration")
	fps := flag.Int("fps", 0, "target frame rate, 0 keeps the configured one")
	fullscreen := flag.Bool("fullscreen", false, "start in fullscreen")
	anaglyph := flag.Bool("anaglyph", false, "use the left eye's stereo projection")
	verbose := flag.Bool("v", false, "log lifecycle details")
	flag.Parse()

	if *verbose {
		gfx.SetLogger(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelDebug})))
	}

	if err := run(*configPath, *fps, *fullscreen, *anaglyph); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func run(configPath string, fps int, fullscreen, anaglyph bool) error {
	cfg := gfx.DefaultConfig()
	if configPath != "" {
		loaded, err := gfx.LoadConfig(configPath)
		if err != nil {
			return err
		}
		cfg = loaded
	}
	cfg = cfg.FromEnv(nil)
	if fps > 0 {
		cfg.FPS = fps
	}
	defer platform.Terminate()

	sceneConf := renderer.DefaultConfig()
	sceneConf.Anaglyph = anaglyph
	scene := renderer.NewScene(sceneConf)

	window, err := gfx.NewWindowFromConfig(cfg, scene)
	if err != nil {
		return err
	}
	defer window.Close()

	window.SetUpdateFPSFrames(cfg.FPS, os.Stdout)
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	window.AddKeyListener(func(event gfx.Event) {
		e, ok := event.(gfx.KeyPress)
		if !ok {
			return
		}
		switch {
		case e.Code == keyEscape:
			cancel()
		case e.Label == "f":
			window.ToggleFullScreen()
		}
	})
	window.AddWindowListener(func(event gfx.Event) {
		if _, ok := event.(gfx.CloseRequest); ok {
			cancel()
		}
	})

	if err := window.SetVisible(true); err != nil {
		return err
	}
	if fullscreen {
		if err := window.SetFullscreen(true); err != nil {
			return err
		}
	}
	if err := window.Start(cfg.FPS); err != nil {
		return err
	}
	fmt.Printf("%v retina=%v capabilities=%v\n", window, window.IsRetina(), window.Capabilities())

	window.ListenEvents(ctx, gfx.DrainMax(64))

	window.Stop()
	fmt.Printf("Program closed after %d frames, last fps %.2f\n", scene.Frames(), window.LastFPS())
	return nil
}
