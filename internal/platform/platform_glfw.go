//go:build !js && !nogl

package platform

import (
	"errors"
	"fmt"
	"image"
	"log/slog"
	"sync"

	"github.com/go-gl/gl/v3.3-core/gl"
	"github.com/go-gl/glfw/v3.3/glfw"
)

var errWindowDestroyed = errors.New("platform: window destroyed")

var (
	initOnce sync.Once
	initErr  error
)

type glfwPlatform struct {
	logger *slog.Logger
}

// NewPlatform initializes glfw once per process and returns the desktop
// backend. It must be called from the main OS thread.
func NewPlatform(logger *slog.Logger) (Platform, error) {
	initOnce.Do(func() {
		initErr = glfw.Init()
	})
	if initErr != nil {
		return nil, fmt.Errorf("platform: glfw init: %w", initErr)
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &glfwPlatform{logger: logger}, nil
}

// Terminate releases every glfw resource. Windows must be destroyed first.
func Terminate() {
	glfw.Terminate()
}

func (p *glfwPlatform) MaxProgrammable() Capabilities {
	best := programmableVersions[0]
	return Capabilities{
		Profile:      "GL_CORE",
		ContextMajor: best.major,
		ContextMinor: best.minor,
	}
}

func (p *glfwPlatform) NewWindow(conf WindowConfig) (PlatformWindowWrapper, error) {
	caps := conf.Capabilities
	var (
		window *glfw.Window
		err    error
	)
	for _, v := range candidateVersions(caps) {
		glfw.DefaultWindowHints()
		glfw.WindowHint(glfw.Visible, glfw.False)
		glfw.WindowHint(glfw.ContextVersionMajor, v.major)
		glfw.WindowHint(glfw.ContextVersionMinor, v.minor)
		glfw.WindowHint(glfw.OpenGLProfile, glfw.OpenGLCoreProfile)
		glfw.WindowHint(glfw.OpenGLForwardCompatible, glfw.True)
		glfw.WindowHint(glfw.DepthBits, caps.DepthBits)
		if caps.SampleBuffers {
			glfw.WindowHint(glfw.Samples, caps.Samples)
		} else {
			glfw.WindowHint(glfw.Samples, 0)
		}
		window, err = glfw.CreateWindow(conf.Width, conf.Height, conf.Title, nil, nil)
		if err == nil {
			caps.ContextMajor, caps.ContextMinor = v.major, v.minor
			break
		}
		p.logger.Debug("context version unavailable", "major", v.major, "minor", v.minor, "err", err)
	}
	if window == nil {
		return nil, fmt.Errorf("platform: create window: %w", err)
	}

	window.MakeContextCurrent()
	if err := gl.Init(); err != nil {
		window.Destroy()
		return nil, fmt.Errorf("platform: gl init: %w", err)
	}
	caps = readBackCapabilities(caps)
	glfw.DetachCurrentContext()

	w := &glfwWindowWrapper{
		window:   window,
		caps:     caps,
		events:   newEventQueue(1024),
		logger:   p.logger,
		windowed: [4]int{0, 0, conf.Width, conf.Height},
	}
	// GetFramebufferSize is main-thread only; Display merely consumes it
	w.surface.resize(window.GetFramebufferSize())
	w.installCallbacks()
	return w, nil
}

func (p *glfwPlatform) Monitors() ([]Monitor, error) {
	monitors := glfw.GetMonitors()
	out := make([]Monitor, 0, len(monitors))
	for i, m := range monitors {
		x, y := m.GetPos()
		monitor := Monitor{Index: i, Name: m.GetName(), X: x, Y: y, handle: m}
		if mode := m.GetVideoMode(); mode != nil {
			monitor.Width, monitor.Height, monitor.RefreshRate = mode.Width, mode.Height, mode.RefreshRate
		}
		out = append(out, monitor)
	}
	return out, nil
}

func readBackCapabilities(caps Capabilities) Capabilities {
	var sampleBuffers, samples, depth int32
	gl.GetIntegerv(gl.SAMPLE_BUFFERS, &sampleBuffers)
	gl.GetIntegerv(gl.SAMPLES, &samples)
	gl.GetFramebufferAttachmentParameteriv(gl.FRAMEBUFFER, gl.DEPTH, gl.FRAMEBUFFER_ATTACHMENT_DEPTH_SIZE, &depth)
	caps.SampleBuffers = sampleBuffers > 0
	caps.Samples = int(samples)
	if depth > 0 {
		caps.DepthBits = int(depth)
	}
	// queries unsupported by the driver must not leak into later error checks
	for gl.GetError() != gl.NO_ERROR {
	}
	return caps
}

// ----------------------------------------------------------------------------

type glfwWindowWrapper struct {
	mu        sync.Mutex
	window    *glfw.Window
	caps      Capabilities
	drawable  Drawable
	events    eventQueue
	logger    *slog.Logger
	destroyed bool

	initialized bool
	surface     surfaceState
	windowed    [4]int
}

func (w *glfwWindowWrapper) installCallbacks() {
	w.window.SetKeyCallback(func(_ *glfw.Window, key glfw.Key, scancode int, action glfw.Action, _ glfw.ModifierKey) {
		label := glfw.GetKeyName(key, scancode)
		switch action {
		case glfw.Press, glfw.Repeat:
			w.events.push(KeyPress{Code: uint64(key), Label: label})
		case glfw.Release:
			w.events.push(KeyRelease{Code: uint64(key), Label: label})
		}
	})
	w.window.SetMouseButtonCallback(func(win *glfw.Window, button glfw.MouseButton, action glfw.Action, _ glfw.ModifierKey) {
		x, y := win.GetCursorPos()
		switch action {
		case glfw.Press:
			w.events.push(ButtonPress{Button: uint32(button), X: int(x), Y: int(y)})
		case glfw.Release:
			w.events.push(ButtonRelease{Button: uint32(button), X: int(x), Y: int(y)})
		}
	})
	w.window.SetCursorPosCallback(func(_ *glfw.Window, x, y float64) {
		w.events.push(MotionNotify{X: int(x), Y: int(y)})
	})
	w.window.SetScrollCallback(func(win *glfw.Window, dx, dy float64) {
		x, y := win.GetCursorPos()
		w.events.push(MouseWheel{DeltaX: dx, DeltaY: dy, X: int(x), Y: int(y)})
	})
	w.window.SetCursorEnterCallback(func(_ *glfw.Window, entered bool) {
		if entered {
			w.events.push(EnterNotify{})
			return
		}
		w.events.push(LeaveNotify{})
	})
	w.window.SetRefreshCallback(func(_ *glfw.Window) {
		w.events.push(Expose{})
	})
	w.window.SetFramebufferSizeCallback(func(_ *glfw.Window, width, height int) {
		w.mu.Lock()
		w.surface.resize(width, height)
		w.mu.Unlock()
		w.events.push(Resize{Width: width, Height: height})
	})
	w.window.SetCloseCallback(func(win *glfw.Window) {
		// the owner decides whether the window really goes away
		win.SetShouldClose(false)
		w.events.push(CloseRequest{})
	})
}

func (w *glfwWindowWrapper) SetDrawable(d Drawable) {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.drawable = d
	w.initialized = false
	w.surface.invalidate()
}

func (w *glfwWindowWrapper) Capabilities() Capabilities {
	return w.caps
}

func (w *glfwWindowWrapper) SetTitle(title string) {
	if w.destroyed {
		return
	}
	w.window.SetTitle(title)
}

func (w *glfwWindowWrapper) SetVisible(visible bool) error {
	if w.destroyed {
		return errWindowDestroyed
	}
	if visible {
		w.window.Show()
	} else {
		w.window.Hide()
	}
	return nil
}

func (w *glfwWindowWrapper) Visible() bool {
	if w.destroyed {
		return false
	}
	return w.window.GetAttrib(glfw.Visible) == glfw.True
}

func (w *glfwWindowWrapper) SetSize(width, height int) {
	if w.destroyed {
		return
	}
	w.window.SetSize(width, height)
}

func (w *glfwWindowWrapper) Size() (int, int) {
	if w.destroyed {
		return 0, 0
	}
	return w.window.GetSize()
}

func (w *glfwWindowWrapper) SurfaceSize() (int, int) {
	if w.destroyed {
		return 0, 0
	}
	return w.window.GetFramebufferSize()
}

func (w *glfwWindowWrapper) ConvertToPixelUnits(size [2]int) [2]int {
	width, height := w.Size()
	fbWidth, fbHeight := w.SurfaceSize()
	if width <= 0 || height <= 0 {
		return size
	}
	return [2]int{size[0] * fbWidth / width, size[1] * fbHeight / height}
}

func (w *glfwWindowWrapper) SetIcons(icons []image.Image) {
	if w.destroyed {
		return
	}
	w.window.SetIcon(icons)
}

func (w *glfwWindowWrapper) Fullscreen() bool {
	if w.destroyed {
		return false
	}
	return w.window.GetMonitor() != nil
}

func (w *glfwWindowWrapper) SetFullscreen(fullscreen bool) error {
	if !fullscreen {
		return w.SetFullscreenOn(nil)
	}
	primary := glfw.GetPrimaryMonitor()
	if primary == nil {
		return errors.New("platform: no primary monitor")
	}
	return w.SetFullscreenOn([]Monitor{{Name: primary.GetName(), handle: primary}})
}

// SetFullscreenOn makes the window cover the first monitor given, or restores
// the windowed geometry when monitors is empty.
func (w *glfwWindowWrapper) SetFullscreenOn(monitors []Monitor) error {
	if w.destroyed {
		return errWindowDestroyed
	}
	if len(monitors) == 0 {
		if w.window.GetMonitor() == nil {
			return nil
		}
		g := w.windowed
		w.window.SetMonitor(nil, g[0], g[1], g[2], g[3], 0)
		return nil
	}
	monitor, ok := monitors[0].handle.(*glfw.Monitor)
	if !ok || monitor == nil {
		return fmt.Errorf("platform: monitor %q has no native handle", monitors[0].Name)
	}
	if len(monitors) > 1 {
		w.logger.Warn("spanning several monitors is not supported, using the first", "monitor", monitors[0].Name)
	}
	if w.window.GetMonitor() == nil {
		x, y := w.window.GetPos()
		width, height := w.window.GetSize()
		w.windowed = [4]int{x, y, width, height}
	}
	mode := monitor.GetVideoMode()
	if mode == nil {
		return fmt.Errorf("platform: monitor %q has no video mode", monitors[0].Name)
	}
	w.window.SetMonitor(monitor, 0, 0, mode.Width, mode.Height, mode.RefreshRate)
	return nil
}

func (w *glfwWindowWrapper) Realized() bool {
	return w.window != nil && !w.destroyed
}

func (w *glfwWindowWrapper) Destroy() error {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.destroyed {
		return errWindowDestroyed
	}
	if w.drawable != nil && w.initialized {
		w.window.MakeContextCurrent()
		w.drawable.Dispose()
		glfw.DetachCurrentContext()
	}
	w.window.Destroy()
	w.destroyed = true
	return nil
}

// Display renders one frame through the drawable on the calling thread.
func (w *glfwWindowWrapper) Display() error {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.destroyed {
		return errWindowDestroyed
	}
	if w.drawable == nil {
		return nil
	}
	w.window.MakeContextCurrent()
	defer glfw.DetachCurrentContext()

	if !w.initialized {
		if err := w.drawable.Init(); err != nil {
			return err
		}
		w.initialized = true
	}
	if size, ok := w.surface.take(); ok {
		w.drawable.Reshape(0, 0, size[0], size[1])
	}
	if err := w.drawable.Display(); err != nil {
		return err
	}
	w.window.SwapBuffers()
	return nil
}

func (w *glfwWindowWrapper) NextEventTimeout(timeoutMs int) Event {
	if event, ok := w.events.pop(); ok {
		return event
	}
	if timeoutMs <= 0 {
		glfw.PollEvents()
	} else {
		glfw.WaitEventsTimeout(float64(timeoutMs) / 1000)
	}
	if event, ok := w.events.pop(); ok {
		return event
	}
	return TimeoutEvent{}
}
