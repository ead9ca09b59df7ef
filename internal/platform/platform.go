package platform

import (
	"fmt"
	"image"
)

type Capabilities struct {
	Profile       string
	ContextMajor  int
	ContextMinor  int
	SampleBuffers bool
	Samples       int
	DepthBits     int
}

func (c Capabilities) String() string {
	return fmt.Sprintf("%s %d.%d samples=%d(%t) depth=%d",
		c.Profile, c.ContextMajor, c.ContextMinor, c.Samples, c.SampleBuffers, c.DepthBits)
}

type WindowConfig struct {
	Title        string
	Width        int
	Height       int
	Capabilities Capabilities
}

type Monitor struct {
	Index       int
	Name        string
	X, Y        int
	Width       int
	Height      int
	RefreshRate int

	handle any
}

func (m Monitor) String() string {
	return fmt.Sprintf("%d: %s [%d,%d %dx%d@%dHz]", m.Index, m.Name, m.X, m.Y, m.Width, m.Height, m.RefreshRate)
}

// Drawable receives the GL lifecycle callbacks of a native window. Display and
// Init run with the window's context current on the calling thread.
type Drawable interface {
	Init() error
	Display() error
	Reshape(x, y, width, height int)
	Dispose()
}

type Platform interface {
	// MaxProgrammable reports the best programmable profile the backend offers.
	MaxProgrammable() Capabilities
	NewWindow(conf WindowConfig) (PlatformWindowWrapper, error)
	Monitors() ([]Monitor, error)
}

type PlatformWindowWrapper interface {
	SetDrawable(d Drawable)
	Capabilities() Capabilities

	SetTitle(title string)
	SetVisible(visible bool) error
	Visible() bool
	SetSize(width, height int)
	Size() (int, int)
	SurfaceSize() (int, int)
	ConvertToPixelUnits(size [2]int) [2]int
	SetIcons(icons []image.Image)

	Fullscreen() bool
	SetFullscreen(fullscreen bool) error
	SetFullscreenOn(monitors []Monitor) error

	Realized() bool
	Destroy() error
	Display() error

	NextEventTimeout(timeoutMs int) Event
}
