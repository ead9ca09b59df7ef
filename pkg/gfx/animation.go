package gfx

import (
	"context"
	"errors"
	"fmt"
	"io"
	"math"
	"runtime"
	"sync"
	"sync/atomic"
	"time"
)

const (
	defaultFPS          = 60
	defaultUpdateFrames = 30
)

var ErrAnimatorStarted = errors.New("animator already started")

// Animator drives a paced redraw loop. Animating is closed once the loop
// runs, Stopped once it has fully exited.
type Animator interface {
	Start() error
	Pause()
	Resume()
	Stop()
	SetFPS(fps int)
	SetIgnoreExceptions(ignore bool)
	SetUpdateFPSFrames(frames int, out io.Writer)
	LastFPS() float32
	Animating() <-chan struct{}
	Stopped() <-chan struct{}
}

type AnimatorFactory func(display func() error, fps int) Animator

type fpsAnimator struct {
	display func() error

	fps              atomic.Int32
	rate             chan int
	paused           atomic.Bool
	ignoreExceptions atomic.Bool
	started          atomic.Bool

	ctx       context.Context
	cancel    context.CancelFunc
	animating chan struct{}
	stopped   chan struct{}

	statsMu      sync.Mutex
	updateFrames int
	statsOut     io.Writer
	frames       int
	statsStart   time.Time
	lastFPS      atomic.Uint32
}

// NewFPSAnimator calls display at fps frames per second on a goroutine
// locked to its own OS thread.
func NewFPSAnimator(display func() error, fps int) Animator {
	if fps <= 0 {
		fps = defaultFPS
	}
	a := &fpsAnimator{
		display:   display,
		rate:      make(chan int, 1),
		animating: make(chan struct{}),
		stopped:   make(chan struct{}),
	}
	a.fps.Store(int32(fps))
	a.ctx, a.cancel = context.WithCancel(context.Background())
	return a
}

func (a *fpsAnimator) Start() error {
	if !a.started.CompareAndSwap(false, true) {
		return ErrAnimatorStarted
	}
	go a.run()
	return nil
}

func (a *fpsAnimator) run() {
	runtime.LockOSThread()
	defer runtime.UnlockOSThread()
	defer close(a.stopped)

	ticker := time.NewTicker(frameDelay(int(a.fps.Load())))
	defer ticker.Stop()
	a.resetStats(time.Now())
	close(a.animating)

	for {
		select {
		case <-a.ctx.Done():
			return
		case fps := <-a.rate:
			ticker.Reset(frameDelay(fps))
		case now := <-ticker.C:
			if a.paused.Load() {
				continue
			}
			if err := a.frame(); err != nil {
				if a.ignoreExceptions.Load() {
					Logger().Debug("display failed, ignored", "err", err)
					continue
				}
				Logger().Error("display failed, stopping redraw loop", "err", err)
				return
			}
			a.countFrame(now)
		}
	}
}

func (a *fpsAnimator) frame() (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("display panicked: %v", r)
		}
	}()
	return a.display()
}

func (a *fpsAnimator) Pause()  { a.paused.Store(true) }
func (a *fpsAnimator) Resume() { a.paused.Store(false) }

// Stop cancels the loop without waiting; use Stopped to wait. Stopping an
// animator that never started marks it stopped.
func (a *fpsAnimator) Stop() {
	a.cancel()
	if a.started.CompareAndSwap(false, true) {
		close(a.stopped)
	}
}

func (a *fpsAnimator) SetFPS(fps int) {
	if fps <= 0 {
		return
	}
	a.fps.Store(int32(fps))
	select {
	case <-a.rate:
	default:
	}
	select {
	case a.rate <- fps:
	default:
	}
}

func (a *fpsAnimator) SetIgnoreExceptions(ignore bool) {
	a.ignoreExceptions.Store(ignore)
}

// SetUpdateFPSFrames recomputes LastFPS every frames frames and, when out is
// non-nil, prints it there.
func (a *fpsAnimator) SetUpdateFPSFrames(frames int, out io.Writer) {
	a.statsMu.Lock()
	defer a.statsMu.Unlock()
	a.updateFrames = frames
	a.statsOut = out
	a.frames = 0
	a.statsStart = time.Now()
}

func (a *fpsAnimator) LastFPS() float32 {
	return math.Float32frombits(a.lastFPS.Load())
}

func (a *fpsAnimator) Animating() <-chan struct{} { return a.animating }
func (a *fpsAnimator) Stopped() <-chan struct{}   { return a.stopped }

func (a *fpsAnimator) resetStats(now time.Time) {
	a.statsMu.Lock()
	a.frames = 0
	a.statsStart = now
	a.statsMu.Unlock()
}

func (a *fpsAnimator) countFrame(now time.Time) {
	a.statsMu.Lock()
	defer a.statsMu.Unlock()
	a.frames++
	if a.updateFrames <= 0 || a.frames < a.updateFrames {
		return
	}
	elapsed := now.Sub(a.statsStart).Seconds()
	if elapsed > 0 {
		fps := float32(float64(a.frames) / elapsed)
		a.lastFPS.Store(math.Float32bits(fps))
		if a.statsOut != nil {
			fmt.Fprintf(a.statsOut, "fps: %.2f\n", fps)
		}
	}
	a.frames = 0
	a.statsStart = now
}

func frameDelay(fps int) time.Duration {
	if fps <= 0 {
		fps = defaultFPS
	}
	return time.Second / time.Duration(fps)
}
