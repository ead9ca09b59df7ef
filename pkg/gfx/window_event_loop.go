package gfx

import (
	"context"
	"runtime"
	"time"

	"github.com/kjkrol/cleargl/internal/platform"
)

const maxEventWait = 50 * time.Millisecond

// EmitEvent queues an event for dispatch on the next poll. It is safe to call
// from any goroutine, including listeners running on the redraw loop.
func (w *Window) EmitEvent(event Event) {
	if w == nil || event == nil {
		return
	}
	select {
	case w.pending <- event:
	default:
		// drop if buffer full to avoid blocking producer
	}
}

// ProcessEvents polls the platform once, waiting up to timeout for the first
// event, and dispatches what the strategy takes. It returns the number of
// dispatched events.
func (w *Window) ProcessEvents(timeout time.Duration, strategy EventsConsumerStrategy) int {
	if strategy == nil {
		strategy = DrainAll()
	}
	return strategy.Consume(w.poll, w.dispatch, timeout)
}

// ListenEvents dispatches events on the calling goroutine until ctx is done
// or the window is closed. Windowing toolkits require this to run on the main
// OS thread.
func (w *Window) ListenEvents(ctx context.Context, strategy EventsConsumerStrategy) {
	runtime.LockOSThread()
	defer runtime.UnlockOSThread()

	for {
		select {
		case <-ctx.Done():
			return
		default:
			if w.Closed() {
				return
			}
			w.ProcessEvents(maxEventWait, strategy)
		}
	}
}

func (w *Window) poll(timeout time.Duration) (Event, bool) {
	select {
	case event := <-w.pending:
		return event, true
	default:
	}
	if w.Closed() {
		return nil, false
	}
	timeoutMs := int(timeout / time.Millisecond)
	if timeout > 0 && timeoutMs == 0 {
		timeoutMs = 1
	}
	platformEvent := w.native.NextEventTimeout(timeoutMs)
	if _, ok := platformEvent.(platform.TimeoutEvent); ok {
		return nil, false
	}
	return convert(platformEvent), true
}

func (w *Window) dispatch(event Event) {
	w.mu.Lock()
	mouse, keys, window := w.mouseListeners, w.keyListeners, w.windowListeners
	w.mu.Unlock()

	switch {
	case isMouseEvent(event):
		for _, l := range mouse {
			l(event)
		}
	case isKeyEvent(event):
		for _, l := range keys {
			l(event)
		}
	default:
		for _, l := range window {
			l(event)
		}
	}

	if _, ok := event.(CloseRequest); !ok {
		return
	}
	// listeners may have changed the close mode
	w.mu.Lock()
	mode := w.closeMode
	w.mu.Unlock()
	if mode == CloseModeDispose {
		w.Close()
	}
}
