package gfx

import (
	"errors"
	"image"
	"io"
	"sync"
	"sync/atomic"
	"time"
	"unsafe"

	"github.com/kjkrol/cleargl/internal/platform"
)

// fakeGL tracks buffer names and the bytes uploaded to each of them.
type fakeGL struct {
	mu          sync.Mutex
	next        uint32
	live        map[uint32]bool
	bound       uint32
	data        map[uint32][]byte
	usage       map[uint32]uint32
	errors      []uint32
	genCalls    int
	deleteCalls int
	skipNames   bool
	integers    map[uint32]int32
}

func newFakeGL() *fakeGL {
	return &fakeGL{
		live:     make(map[uint32]bool),
		data:     make(map[uint32][]byte),
		usage:    make(map[uint32]uint32),
		integers: make(map[uint32]int32),
	}
}

func (g *fakeGL) GenBuffers(n int32, buffers *uint32) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.genCalls++
	if g.skipNames {
		return
	}
	ids := unsafe.Slice(buffers, n)
	for i := range ids {
		g.next++
		ids[i] = g.next
		g.live[g.next] = true
	}
}

func (g *fakeGL) DeleteBuffers(n int32, buffers *uint32) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.deleteCalls++
	for _, id := range unsafe.Slice(buffers, n) {
		delete(g.live, id)
		delete(g.data, id)
	}
}

func (g *fakeGL) BindBuffer(target uint32, buffer uint32) {
	g.mu.Lock()
	defer g.mu.Unlock()
	if target == ArrayBuffer {
		g.bound = buffer
	}
}

func (g *fakeGL) BufferData(target uint32, size int, data unsafe.Pointer, usage uint32) {
	g.mu.Lock()
	defer g.mu.Unlock()
	if target != ArrayBuffer || g.bound == 0 {
		g.errors = append(g.errors, 0x0502)
		return
	}
	buf := make([]byte, size)
	if data != nil {
		copy(buf, unsafe.Slice((*byte)(data), size))
	}
	g.data[g.bound] = buf
	g.usage[g.bound] = usage
}

func (g *fakeGL) GetError() uint32 {
	g.mu.Lock()
	defer g.mu.Unlock()
	if len(g.errors) == 0 {
		return NoError
	}
	code := g.errors[0]
	g.errors = g.errors[1:]
	return code
}

func (g *fakeGL) GetIntegerv(pname uint32, data *int32) {
	g.mu.Lock()
	defer g.mu.Unlock()
	*data = g.integers[pname]
}

func (g *fakeGL) Viewport(x, y, width, height int32) {}
func (g *fakeGL) ClearColor(r, gr, b, a float32)     {}
func (g *fakeGL) Clear(mask uint32)                  {}

func (g *fakeGL) outstanding() int {
	g.mu.Lock()
	defer g.mu.Unlock()
	return len(g.live)
}

// ----------------------------------------------------------------------------

type fakePlatform struct {
	caps       platform.Capabilities
	monitors   []platform.Monitor
	native     *fakeNative
	lastConfig platform.WindowConfig
	err        error
}

func newFakePlatform() *fakePlatform {
	return &fakePlatform{
		caps: platform.Capabilities{Profile: "GL_CORE", ContextMajor: 4, ContextMinor: 6},
		monitors: []platform.Monitor{
			{Index: 0, Name: "primary", Width: 1920, Height: 1080, RefreshRate: 60},
			{Index: 1, Name: "side", X: 1920, Width: 1920, Height: 1080, RefreshRate: 60},
			{Index: 2, Name: "hmd", X: 3840, Width: 2160, Height: 1200, RefreshRate: 90},
		},
		native: newFakeNative(),
	}
}

func (p *fakePlatform) MaxProgrammable() platform.Capabilities { return p.caps }

func (p *fakePlatform) NewWindow(conf platform.WindowConfig) (platform.PlatformWindowWrapper, error) {
	if p.err != nil {
		return nil, p.err
	}
	p.lastConfig = conf
	p.native.width, p.native.height = conf.Width, conf.Height
	p.native.surfaceW, p.native.surfaceH = conf.Width, conf.Height
	if p.native.caps == (platform.Capabilities{}) {
		p.native.caps = conf.Capabilities
	}
	return p.native, nil
}

func (p *fakePlatform) Monitors() ([]platform.Monitor, error) { return p.monitors, nil }

// ----------------------------------------------------------------------------

type fakeNative struct {
	mu sync.Mutex

	caps       platform.Capabilities
	drawable   platform.Drawable
	title      string
	visible    bool
	width      int
	height     int
	surfaceW   int
	surfaceH   int
	pixelScale int
	fullscreen bool
	realized   bool

	hideErr   error
	hidePanic bool

	fullscreenCalls []bool
	fullscreenOn    [][]platform.Monitor
	sizeCalls       [][2]int
	hideCalls       int
	destroyCalls    int
	displayCalls    int
	displayErr      error
	iconCalls       [][]image.Image
	events          []platform.Event
}

func newFakeNative() *fakeNative {
	return &fakeNative{pixelScale: 1, realized: true}
}

func (n *fakeNative) SetDrawable(d platform.Drawable)     { n.drawable = d }
func (n *fakeNative) Capabilities() platform.Capabilities { return n.caps }
func (n *fakeNative) SetTitle(title string)               { n.title = title }

func (n *fakeNative) SetVisible(visible bool) error {
	if !visible {
		n.hideCalls++
		if n.hidePanic {
			panic("hide exploded")
		}
		if n.hideErr != nil {
			return n.hideErr
		}
	}
	n.visible = visible
	return nil
}

func (n *fakeNative) Visible() bool { return n.visible }

func (n *fakeNative) SetIcons(icons []image.Image) {
	n.iconCalls = append(n.iconCalls, icons)
}

func (n *fakeNative) SetSize(width, height int) {
	n.sizeCalls = append(n.sizeCalls, [2]int{width, height})
	n.width, n.height = width, height
}

func (n *fakeNative) Size() (int, int)        { return n.width, n.height }
func (n *fakeNative) SurfaceSize() (int, int) { return n.surfaceW, n.surfaceH }

func (n *fakeNative) ConvertToPixelUnits(size [2]int) [2]int {
	return [2]int{size[0] * n.pixelScale, size[1] * n.pixelScale}
}

func (n *fakeNative) Fullscreen() bool { return n.fullscreen }

func (n *fakeNative) SetFullscreen(fullscreen bool) error {
	n.fullscreenCalls = append(n.fullscreenCalls, fullscreen)
	n.fullscreen = fullscreen
	return nil
}

func (n *fakeNative) SetFullscreenOn(monitors []platform.Monitor) error {
	n.fullscreenOn = append(n.fullscreenOn, monitors)
	n.fullscreen = len(monitors) > 0
	return nil
}

func (n *fakeNative) Realized() bool { return n.realized }

func (n *fakeNative) Destroy() error {
	n.destroyCalls++
	if !n.realized {
		return errors.New("not realized")
	}
	n.realized = false
	return nil
}

func (n *fakeNative) Display() error {
	n.mu.Lock()
	n.displayCalls++
	err := n.displayErr
	n.mu.Unlock()
	return err
}

func (n *fakeNative) NextEventTimeout(timeoutMs int) platform.Event {
	if len(n.events) == 0 {
		return platform.TimeoutEvent{}
	}
	event := n.events[0]
	n.events = n.events[1:]
	return event
}

// ----------------------------------------------------------------------------

// fakeAnimator reports animating/stopped only after the configured delays.
type fakeAnimator struct {
	startDelay time.Duration
	stopDelay  time.Duration

	fps       atomic.Int32
	ignore    atomic.Bool
	paused    atomic.Bool
	stopCalls atomic.Int32
	animating chan struct{}
	stopped   chan struct{}
	stopOnce  sync.Once
}

func newFakeAnimator(startDelay, stopDelay time.Duration) *fakeAnimator {
	return &fakeAnimator{
		startDelay: startDelay,
		stopDelay:  stopDelay,
		animating:  make(chan struct{}),
		stopped:    make(chan struct{}),
	}
}

func (a *fakeAnimator) Start() error {
	go func() {
		time.Sleep(a.startDelay)
		close(a.animating)
	}()
	return nil
}

func (a *fakeAnimator) Stop() {
	a.stopCalls.Add(1)
	a.stopOnce.Do(func() {
		go func() {
			time.Sleep(a.stopDelay)
			close(a.stopped)
		}()
	})
}

func (a *fakeAnimator) Pause()                            { a.paused.Store(true) }
func (a *fakeAnimator) Resume()                           { a.paused.Store(false) }
func (a *fakeAnimator) SetFPS(fps int)                    { a.fps.Store(int32(fps)) }
func (a *fakeAnimator) SetIgnoreExceptions(ignore bool)   { a.ignore.Store(ignore) }
func (a *fakeAnimator) SetUpdateFPSFrames(int, io.Writer) {}
func (a *fakeAnimator) LastFPS() float32                  { return 42 }
func (a *fakeAnimator) Animating() <-chan struct{}        { return a.animating }
func (a *fakeAnimator) Stopped() <-chan struct{}          { return a.stopped }

// ----------------------------------------------------------------------------

type recordingListener struct {
	window   *Window
	inits    int
	displays int
	disposes int
	reshapes [][4]int
}

func (l *recordingListener) SetWindow(w *Window) { l.window = w }
func (l *recordingListener) Init(gl GL) error {
	l.inits++
	return nil
}
func (l *recordingListener) Reshape(gl GL, x, y, width, height int) {
	l.reshapes = append(l.reshapes, [4]int{x, y, width, height})
}
func (l *recordingListener) Display(gl GL) error {
	l.displays++
	return nil
}
func (l *recordingListener) Dispose(gl GL) { l.disposes++ }
