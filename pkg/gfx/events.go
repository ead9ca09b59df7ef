package gfx

import (
	"github.com/kjkrol/cleargl/internal/platform"
)

type Event interface{}

type Expose struct{}
type KeyPress struct {
	Code  uint64
	Label string
}
type KeyRelease struct {
	Code  uint64
	Label string
}
type ButtonPress struct {
	Button uint32
	X, Y   int
}
type ButtonRelease struct {
	Button uint32
	X, Y   int
}
type MotionNotify struct {
	X, Y int
}
type EnterNotify struct{}
type LeaveNotify struct{}
type MouseWheel struct {
	DeltaX float64
	DeltaY float64
	X, Y   int
}

// Resize reports the new drawable surface size in pixels.
type Resize struct {
	Width, Height int
}

// CloseRequest is sent when the user asks to close the window. Whether the
// window is then closed depends on its CloseMode.
type CloseRequest struct{}
type UnexpectedEvent struct{}

type MouseListener func(event Event)
type KeyListener func(event Event)
type WindowListener func(event Event)

func convert(event platform.Event) Event {
	switch e := event.(type) {
	case platform.KeyPress:
		return KeyPress{Code: e.Code, Label: e.Label}
	case platform.KeyRelease:
		return KeyRelease{Code: e.Code, Label: e.Label}
	case platform.ButtonPress:
		return ButtonPress{Button: e.Button, X: e.X, Y: e.Y}
	case platform.ButtonRelease:
		return ButtonRelease{Button: e.Button, X: e.X, Y: e.Y}
	case platform.MotionNotify:
		return MotionNotify{X: e.X, Y: e.Y}
	case platform.MouseWheel:
		return MouseWheel{DeltaX: e.DeltaX, DeltaY: e.DeltaY, X: e.X, Y: e.Y}
	case platform.EnterNotify:
		return EnterNotify{}
	case platform.LeaveNotify:
		return LeaveNotify{}
	case platform.Expose:
		return Expose{}
	case platform.Resize:
		return Resize{Width: e.Width, Height: e.Height}
	case platform.CloseRequest:
		return CloseRequest{}
	default:
		return UnexpectedEvent{}
	}
}

func isMouseEvent(event Event) bool {
	switch event.(type) {
	case ButtonPress, ButtonRelease, MotionNotify, MouseWheel, EnterNotify, LeaveNotify:
		return true
	}
	return false
}

func isKeyEvent(event Event) bool {
	switch event.(type) {
	case KeyPress, KeyRelease:
		return true
	}
	return false
}
