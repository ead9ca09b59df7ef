package gfx

import (
	"errors"
	"fmt"
	"image"
	"io"
	"sync"
	"sync/atomic"

	"github.com/kjkrol/cleargl/internal/platform"
)

var (
	ErrAlreadyAnimating = errors.New("window is already animating")
	ErrAnimatorStopped  = errors.New("animator stopped before it started animating")
	ErrNoSuchMonitor    = errors.New("no such monitor")
	ErrNoListener       = errors.New("event listener is required")
)

// retinaSample is converted to pixel units to detect surfaces denser than
// window coordinates.
const retinaSample = 512

type Window struct {
	platform platform.Platform
	native   platform.PlatformWindowWrapper
	gl       GL
	listener EventListener
	config   Config
	desired  platform.Capabilities

	title         string
	defaultWidth  int
	defaultHeight int
	projection    *Matrix
	view          *Matrix

	mu           sync.Mutex
	newAnimator  AnimatorFactory
	animator     Animator
	fps          int
	updateFrames int
	statsOut     io.Writer
	lastFPS      float32

	closeMode       CloseMode
	mouseListeners  []MouseListener
	keyListeners    []KeyListener
	windowListeners []WindowListener
	pending         chan Event
	closing         atomic.Bool
	closed          atomic.Bool
}

// NewDefaultWindow creates a window asking for 16 samples per pixel.
func NewDefaultWindow(title string, width, height int, listener EventListener, opts ...Option) (*Window, error) {
	return NewWindow(title, width, height, 16, listener, opts...)
}

// NewWindow creates a hidden window with a GL context from the best
// programmable profile, multisampled when samples > 1 and with a 32-bit
// depth buffer, and binds listener to it.
func NewWindow(title string, width, height, samples int, listener EventListener, opts ...Option) (*Window, error) {
	o := applyOptions(opts)
	cfg := *o.config
	cfg.Title, cfg.Width, cfg.Height, cfg.Samples = title, width, height, samples
	return newWindow(cfg, listener, o)
}

func NewWindowFromConfig(cfg Config, listener EventListener, opts ...Option) (*Window, error) {
	o := applyOptions(opts)
	return newWindow(cfg, listener, o)
}

func applyOptions(opts []Option) windowOptions {
	o := windowOptions{newAnimator: NewFPSAnimator}
	for _, opt := range opts {
		opt(&o)
	}
	if o.config == nil {
		cfg := DefaultConfig()
		o.config = &cfg
	}
	return o
}

func newWindow(cfg Config, listener EventListener, o windowOptions) (*Window, error) {
	if listener == nil {
		return nil, ErrNoListener
	}
	logger := Logger()
	if o.platform == nil {
		p, err := platform.NewPlatform(logger)
		if err != nil {
			return nil, err
		}
		o.platform = p
	}
	if o.gl == nil {
		o.gl = defaultGL(logger)
	}

	desired := requestedCapabilities(o.platform.MaxProgrammable(), cfg.Samples)
	logger.Info("requesting capabilities", "window", cfg.Title, "capabilities", desired.String())

	native, err := o.platform.NewWindow(platform.WindowConfig{
		Title:        cfg.Title,
		Width:        cfg.Width,
		Height:       cfg.Height,
		Capabilities: desired,
	})
	if err != nil {
		return nil, fmt.Errorf("create window %q: %w", cfg.Title, err)
	}
	if icons := loadConfiguredIcons(cfg.Icons); len(icons) > 0 {
		native.SetIcons(icons)
	}

	fps := cfg.FPS
	if fps <= 0 {
		fps = defaultFPS
	}
	w := &Window{
		platform:      o.platform,
		native:        native,
		gl:            o.gl,
		listener:      listener,
		config:        cfg,
		desired:       desired,
		title:         cfg.Title,
		defaultWidth:  cfg.Width,
		defaultHeight: cfg.Height,
		projection:    NewMatrix(),
		view:          NewMatrix(),
		newAnimator:   o.newAnimator,
		fps:           fps,
		updateFrames:  defaultUpdateFrames,
		closeMode:     cfg.CloseMode,
		pending:       make(chan Event, 64),
	}
	listener.SetWindow(w)
	native.SetDrawable(drawable{w: w})
	native.SetTitle(cfg.Title)
	native.SetSize(cfg.Width, cfg.Height)
	return w, nil
}

func loadConfiguredIcons(paths []string) []image.Image {
	if len(paths) == 0 {
		return nil
	}
	icons, err := LoadIcons(paths...)
	if err != nil {
		Logger().Warn("window icons not set", "err", err)
		return nil
	}
	return icons
}

// SetFPS changes the target frame rate, also for a running redraw loop.
func (w *Window) SetFPS(fps int) {
	w.mu.Lock()
	defer w.mu.Unlock()
	if fps <= 0 {
		return
	}
	w.fps = fps
	if w.animator != nil {
		w.animator.SetFPS(fps)
	}
}

// Start begins the redraw loop at fps frames per second (fps <= 0 keeps the
// current rate) and returns once the loop is running.
func (w *Window) Start(fps int) error {
	w.mu.Lock()
	if w.animatingLocked() {
		w.mu.Unlock()
		return ErrAlreadyAnimating
	}
	if fps > 0 {
		w.fps = fps
	}
	a := w.newAnimator(w.native.Display, w.fps)
	a.SetUpdateFPSFrames(w.updateFrames, w.statsOut)
	if err := a.Start(); err != nil {
		w.mu.Unlock()
		return err
	}
	w.animator = a
	w.mu.Unlock()

	select {
	case <-a.Animating():
		return nil
	case <-a.Stopped():
		return ErrAnimatorStopped
	}
}

// Stop halts the redraw loop and returns once it has fully stopped. Display
// failures during teardown are ignored.
func (w *Window) Stop() {
	w.mu.Lock()
	a := w.animator
	w.animator = nil
	w.mu.Unlock()
	if a == nil {
		return
	}
	a.SetIgnoreExceptions(true)
	a.Pause()
	a.Stop()
	<-a.Stopped()

	w.mu.Lock()
	w.lastFPS = a.LastFPS()
	w.mu.Unlock()
}

func (w *Window) IsAnimating() bool {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.animatingLocked()
}

func (w *Window) animatingLocked() bool {
	if w.animator == nil {
		return false
	}
	select {
	case <-w.animator.Stopped():
		return false
	default:
		return true
	}
}

// SetUpdateFPSFrames sets how many frames LastFPS is averaged over; when out
// is non-nil each new value is printed there.
func (w *Window) SetUpdateFPSFrames(frames int, out io.Writer) {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.updateFrames = frames
	w.statsOut = out
	if w.animator != nil {
		w.animator.SetUpdateFPSFrames(frames, out)
	}
}

func (w *Window) LastFPS() float32 {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.animator != nil {
		return w.animator.LastFPS()
	}
	return w.lastFPS
}

// Close stops the redraw loop, hides the window and destroys it if it was
// realized. Each step is attempted even if an earlier one failed; failures
// are logged, never returned. Only the first call has an effect.
func (w *Window) Close() {
	if !w.closing.CompareAndSwap(false, true) {
		return
	}
	w.guard("stop redraw loop", func() error {
		w.Stop()
		return nil
	})
	w.guard("hide window", func() error {
		return w.native.SetVisible(false)
	})
	w.guard("destroy window", func() error {
		if !w.native.Realized() {
			return nil
		}
		return w.native.Destroy()
	})
	w.closed.Store(true)
}

func (w *Window) guard(step string, fn func() error) {
	defer func() {
		if r := recover(); r != nil {
			Logger().Warn("close step panicked", "window", w.title, "step", step, "panic", r)
		}
	}()
	if err := fn(); err != nil {
		Logger().Warn("close step failed", "window", w.title, "step", step, "err", err)
	}
}

func (w *Window) Closed() bool {
	return w.closed.Load()
}

func (w *Window) Display() error {
	return w.native.Display()
}

func (w *Window) SetWindowTitle(title string) {
	w.title = title
	w.native.SetTitle(title)
}

func (w *Window) WindowTitle() string {
	return w.title
}

func (w *Window) SetVisible(visible bool) error {
	return w.native.SetVisible(visible)
}

func (w *Window) IsVisible() bool {
	return w.native.Visible()
}

func (w *Window) SetSize(width, height int) {
	w.native.SetSize(width, height)
}

func (w *Window) IsFullscreen() bool {
	return w.native.Fullscreen()
}

// SetFullscreen toggles fullscreen. With VR enabled in the config the window
// instead goes fullscreen on exactly the configured monitor, or on none when
// disabling. An unparsable monitor index selects monitor 0.
func (w *Window) SetFullscreen(fullscreen bool) error {
	if !w.config.VR.Enabled {
		return w.native.SetFullscreen(fullscreen)
	}
	logger := Logger()
	monitors, err := w.platform.Monitors()
	if err != nil {
		return fmt.Errorf("enumerate monitors: %w", err)
	}
	for _, m := range monitors {
		logger.Info("monitor", "window", w.title, "monitor", m.String())
	}

	index, ok := w.config.VR.MonitorIndex()
	if ok {
		logger.Info("HMD monitor selected by configuration", "index", index)
	} else {
		logger.Warn("invalid HMD monitor index, using 0", "value", w.config.VR.Monitor)
	}

	var targets []platform.Monitor
	if fullscreen {
		if index >= len(monitors) {
			return fmt.Errorf("%w: index %d of %d", ErrNoSuchMonitor, index, len(monitors))
		}
		logger.Info("HMD fullscreen", "monitor", monitors[index].String())
		targets = append(targets, monitors[index])
	}
	return w.native.SetFullscreenOn(targets)
}

// ToggleFullScreen leaves fullscreen, or restores the default size and enters
// it, then requests a redraw. Failures are logged.
func (w *Window) ToggleFullScreen() {
	var err error
	if w.native.Fullscreen() {
		err = w.SetFullscreen(false)
	} else {
		w.native.SetSize(w.defaultWidth, w.defaultHeight)
		err = w.SetFullscreen(true)
	}
	if err != nil {
		Logger().Warn("toggle fullscreen failed", "window", w.title, "err", err)
		return
	}
	if err := w.native.Display(); err != nil {
		Logger().Warn("display after fullscreen toggle failed", "window", w.title, "err", err)
	}
}

func (w *Window) SetPerspectiveProjectionMatrix(fov, ratio, near, far float32) {
	w.projection.SetPerspectiveProjectionMatrix(fov, ratio, near, far)
}

func (w *Window) SetPerspectiveAnaglyphProjectionMatrix(fov, convergenceDist, aspectRatio, eyeSeparation, near, far float32) {
	w.projection.SetPerspectiveAnaglyphProjectionMatrix(fov, convergenceDist, aspectRatio, eyeSeparation, near, far)
}

func (w *Window) SetOrthoProjectionMatrix(left, right, bottom, top, near, far float32) {
	w.projection.SetOrthoProjectionMatrix(left, right, bottom, top, near, far)
}

func (w *Window) LookAt(posX, posY, posZ, targetX, targetY, targetZ, upX, upY, upZ float32) {
	w.view.SetCamera(posX, posY, posZ, targetX, targetY, targetZ, upX, upY, upZ)
}

func (w *Window) ProjectionMatrix() *Matrix { return w.projection }
func (w *Window) ViewMatrix() *Matrix       { return w.view }

// IsRetina reports whether the surface addresses more pixels than window
// coordinates.
func (w *Window) IsRetina() bool {
	sample := [2]int{retinaSample, retinaSample}
	return w.native.ConvertToPixelUnits(sample) != sample
}

func (w *Window) Width() int {
	width, _ := w.native.Size()
	return width * w.retinaFactor()
}

func (w *Window) Height() int {
	_, height := w.native.Size()
	return height * w.retinaFactor()
}

func (w *Window) retinaFactor() int {
	if w.IsRetina() {
		return 2
	}
	return 1
}

func (w *Window) AspectRatio() float32 {
	width, height := w.native.SurfaceSize()
	if height == 0 {
		return 0
	}
	return float32(width) / float32(height)
}

// SetDefaultCloseOperation sets what a CloseRequest does and returns the
// previous mode.
func (w *Window) SetDefaultCloseOperation(mode CloseMode) CloseMode {
	w.mu.Lock()
	defer w.mu.Unlock()
	prev := w.closeMode
	w.closeMode = mode
	return prev
}

func (w *Window) DisableClose() {
	w.SetDefaultCloseOperation(CloseModeDoNothing)
}

// Listeners may be added from any goroutine; they are invoked on the
// goroutine running ListenEvents or ProcessEvents.
func (w *Window) AddMouseListener(l MouseListener) {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.mouseListeners = append(w.mouseListeners, l)
}

func (w *Window) AddKeyListener(l KeyListener) {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.keyListeners = append(w.keyListeners, l)
}

func (w *Window) AddWindowListener(l WindowListener) {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.windowListeners = append(w.windowListeners, l)
}

// SetIcons sets the window icons, ordered from low to high resolution.
func (w *Window) SetIcons(icons ...image.Image) {
	w.native.SetIcons(icons)
}

func (w *Window) GL() GL { return w.gl }

func (w *Window) Capabilities() platform.Capabilities {
	return w.native.Capabilities()
}

func (w *Window) String() string {
	return fmt.Sprintf("Window{title=%q, defaultWidth=%d, defaultHeight=%d}", w.title, w.defaultWidth, w.defaultHeight)
}
