package gfx

// EventListener receives the GL lifecycle of a window. Init, Reshape, Display
// and Dispose run on the thread that owns the context at that moment, which
// is the redraw loop's thread while the window is animating.
type EventListener interface {
	SetWindow(w *Window)
	Init(gl GL) error
	Reshape(gl GL, x, y, width, height int)
	Display(gl GL) error
	Dispose(gl GL)
}

// drawable adapts an EventListener to the platform callbacks.
type drawable struct {
	w *Window
}

func (d drawable) Init() error {
	if initer, ok := d.w.gl.(interface{ Init() error }); ok {
		if err := initer.Init(); err != nil {
			return err
		}
	}
	obtained := obtainedCapabilities(d.w.gl, d.w.native.Capabilities())
	checkAntialiasing(d.w.desired, obtained)
	return d.w.listener.Init(d.w.gl)
}

func (d drawable) Display() error {
	return d.w.listener.Display(d.w.gl)
}

func (d drawable) Reshape(x, y, width, height int) {
	d.w.listener.Reshape(d.w.gl, x, y, width, height)
}

func (d drawable) Dispose() {
	d.w.listener.Dispose(d.w.gl)
}
