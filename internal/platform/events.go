package platform

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
type Resize struct {
	Width, Height int
}
type CloseRequest struct{}
type MouseWheel struct {
	DeltaX float64
	DeltaY float64
	X, Y   int
}
type UnexpectedEvent struct{}
type TimeoutEvent struct{}

// eventQueue buffers events produced by toolkit callbacks until the owner
// thread drains them.
type eventQueue chan Event

func newEventQueue(size int) eventQueue {
	if size <= 0 {
		size = 1024
	}
	return make(eventQueue, size)
}

func (q eventQueue) push(event Event) {
	select {
	case q <- event:
	default:
		// drop if buffer full to avoid blocking the callback
	}
}

func (q eventQueue) pop() (Event, bool) {
	select {
	case event := <-q:
		return event, true
	default:
		return nil, false
	}
}
