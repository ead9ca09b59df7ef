package gfx

import (
	"bytes"
	"errors"
	"strings"
	"sync"
	"sync/atomic"
	"testing"
	"time"
)

func waitClosed(t *testing.T, ch <-chan struct{}, what string) {
	t.Helper()
	select {
	case <-ch:
	case <-time.After(2 * time.Second):
		t.Fatalf("timed out waiting for %s", what)
	}
}

func TestFPSAnimatorCallsDisplayUntilStopped(t *testing.T) {
	var frames atomic.Int32
	a := NewFPSAnimator(func() error {
		frames.Add(1)
		return nil
	}, 200)

	if err := a.Start(); err != nil {
		t.Fatalf("Start() error: %v", err)
	}
	waitClosed(t, a.Animating(), "animating")

	deadline := time.Now().Add(2 * time.Second)
	for frames.Load() < 3 && time.Now().Before(deadline) {
		time.Sleep(5 * time.Millisecond)
	}
	if frames.Load() < 3 {
		t.Fatalf("display called %d times, want at least 3", frames.Load())
	}

	a.Stop()
	waitClosed(t, a.Stopped(), "stopped")
	after := frames.Load()
	time.Sleep(30 * time.Millisecond)
	if frames.Load() != after {
		t.Errorf("display called after Stopped was closed")
	}
}

func TestFPSAnimatorStartTwice(t *testing.T) {
	a := NewFPSAnimator(func() error { return nil }, 60)
	defer func() {
		a.Stop()
		<-a.Stopped()
	}()
	if err := a.Start(); err != nil {
		t.Fatalf("first Start() error: %v", err)
	}
	if err := a.Start(); !errors.Is(err, ErrAnimatorStarted) {
		t.Fatalf("second Start() error = %v, want ErrAnimatorStarted", err)
	}
}

func TestFPSAnimatorStopsOnDisplayError(t *testing.T) {
	SetLogger(nil)
	defer SetLogger(defaultLogger())

	var frames atomic.Int32
	a := NewFPSAnimator(func() error {
		frames.Add(1)
		return errors.New("context lost")
	}, 200)
	if err := a.Start(); err != nil {
		t.Fatalf("Start() error: %v", err)
	}
	waitClosed(t, a.Stopped(), "loop to stop after display error")
	if got := frames.Load(); got != 1 {
		t.Errorf("display called %d times, want 1", got)
	}
}

func TestFPSAnimatorIgnoresErrorsAndPanics(t *testing.T) {
	SetLogger(nil)
	defer SetLogger(defaultLogger())

	var frames atomic.Int32
	a := NewFPSAnimator(func() error {
		if frames.Add(1)%2 == 0 {
			panic("driver crashed")
		}
		return errors.New("context lost")
	}, 200)
	a.SetIgnoreExceptions(true)
	if err := a.Start(); err != nil {
		t.Fatalf("Start() error: %v", err)
	}
	deadline := time.Now().Add(2 * time.Second)
	for frames.Load() < 4 && time.Now().Before(deadline) {
		time.Sleep(5 * time.Millisecond)
	}
	select {
	case <-a.Stopped():
		t.Fatal("loop stopped although failures are ignored")
	default:
	}
	a.Stop()
	waitClosed(t, a.Stopped(), "stopped")
	if frames.Load() < 4 {
		t.Errorf("display called %d times, want at least 4", frames.Load())
	}
}

func TestFPSAnimatorPauseSkipsFrames(t *testing.T) {
	var frames atomic.Int32
	a := NewFPSAnimator(func() error {
		frames.Add(1)
		return nil
	}, 200)
	a.Pause()
	if err := a.Start(); err != nil {
		t.Fatalf("Start() error: %v", err)
	}
	waitClosed(t, a.Animating(), "animating")
	time.Sleep(40 * time.Millisecond)
	if got := frames.Load(); got != 0 {
		t.Errorf("paused animator displayed %d frames", got)
	}
	a.Resume()
	deadline := time.Now().Add(2 * time.Second)
	for frames.Load() == 0 && time.Now().Before(deadline) {
		time.Sleep(5 * time.Millisecond)
	}
	a.Stop()
	waitClosed(t, a.Stopped(), "stopped")
	if frames.Load() == 0 {
		t.Error("resumed animator never displayed")
	}
}

func TestFPSAnimatorStopBeforeStart(t *testing.T) {
	a := NewFPSAnimator(func() error { return nil }, 60)
	a.Stop()
	waitClosed(t, a.Stopped(), "stopped")
	if err := a.Start(); !errors.Is(err, ErrAnimatorStarted) {
		t.Errorf("Start() after Stop error = %v, want ErrAnimatorStarted", err)
	}
	// stopping twice must not panic on the closed channel
	a.Stop()
}

type syncBuffer struct {
	mu  sync.Mutex
	buf bytes.Buffer
}

func (b *syncBuffer) Write(p []byte) (int, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.Write(p)
}

func (b *syncBuffer) String() string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.String()
}

func TestFPSAnimatorReportsFPS(t *testing.T) {
	out := &syncBuffer{}
	a := NewFPSAnimator(func() error { return nil }, 200)
	a.SetUpdateFPSFrames(2, out)
	if err := a.Start(); err != nil {
		t.Fatalf("Start() error: %v", err)
	}
	deadline := time.Now().Add(2 * time.Second)
	for a.LastFPS() == 0 && time.Now().Before(deadline) {
		time.Sleep(5 * time.Millisecond)
	}
	a.Stop()
	waitClosed(t, a.Stopped(), "stopped")

	if a.LastFPS() <= 0 {
		t.Fatalf("LastFPS() = %v, want > 0", a.LastFPS())
	}
	if !strings.HasPrefix(out.String(), "fps: ") {
		t.Errorf("stats output = %q, want fps lines", out.String())
	}
}

func TestFPSAnimatorSetFPSWhileRunning(t *testing.T) {
	var frames atomic.Int32
	a := NewFPSAnimator(func() error {
		frames.Add(1)
		return nil
	}, 1)
	if err := a.Start(); err != nil {
		t.Fatalf("Start() error: %v", err)
	}
	waitClosed(t, a.Animating(), "animating")
	a.SetFPS(0)
	a.SetFPS(250)
	deadline := time.Now().Add(2 * time.Second)
	for frames.Load() < 5 && time.Now().Before(deadline) {
		time.Sleep(5 * time.Millisecond)
	}
	a.Stop()
	waitClosed(t, a.Stopped(), "stopped")
	if frames.Load() < 5 {
		t.Errorf("display called %d times after raising fps, want at least 5", frames.Load())
	}
}

func TestFrameDelay(t *testing.T) {
	tests := []struct {
		fps  int
		want time.Duration
	}{
		{60, time.Second / 60},
		{1, time.Second},
		{0, time.Second / defaultFPS},
		{-5, time.Second / defaultFPS},
	}
	for _, tt := range tests {
		if got := frameDelay(tt.fps); got != tt.want {
			t.Errorf("frameDelay(%d) = %v, want %v", tt.fps, got, tt.want)
		}
	}
}
