package platform

import "testing"

func TestEventQueueFIFO(t *testing.T) {
	q := newEventQueue(4)
	q.push(KeyPress{Code: 1})
	q.push(ButtonPress{Button: 2})

	first, ok := q.pop()
	if !ok {
		t.Fatal("pop() on non-empty queue returned false")
	}
	if kp, isKey := first.(KeyPress); !isKey || kp.Code != 1 {
		t.Errorf("first event = %#v, want KeyPress{Code: 1}", first)
	}
	second, _ := q.pop()
	if _, isButton := second.(ButtonPress); !isButton {
		t.Errorf("second event = %#v, want ButtonPress", second)
	}
	if _, ok := q.pop(); ok {
		t.Error("pop() on drained queue returned true")
	}
}

func TestEventQueueDropsWhenFull(t *testing.T) {
	q := newEventQueue(2)
	for i := 0; i < 5; i++ {
		q.push(MotionNotify{X: i})
	}
	if got := len(q); got != 2 {
		t.Fatalf("len(queue) = %d, want 2", got)
	}
	ev, _ := q.pop()
	if m := ev.(MotionNotify); m.X != 0 {
		t.Errorf("oldest kept event X = %d, want 0", m.X)
	}
}

func TestNewEventQueueDefaultSize(t *testing.T) {
	if got := cap(newEventQueue(0)); got != 1024 {
		t.Errorf("cap(newEventQueue(0)) = %d, want 1024", got)
	}
}
