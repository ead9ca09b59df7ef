package platform

// surfaceState remembers the drawable surface size reported on the owner
// thread and hands it to the render thread once per change.
type surfaceState struct {
	size    [2]int
	pending bool
}

func (s *surfaceState) resize(width, height int) {
	s.size = [2]int{width, height}
	s.pending = true
}

// invalidate redelivers the last known size, e.g. to a newly bound drawable.
func (s *surfaceState) invalidate() {
	s.pending = true
}

func (s *surfaceState) take() ([2]int, bool) {
	if !s.pending {
		return s.size, false
	}
	s.pending = false
	return s.size, true
}
