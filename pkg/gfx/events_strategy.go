package gfx

import "time"

// EventPoller waits up to timeout for the next event; ok is false when none
// arrived in time.
type EventPoller func(timeout time.Duration) (event Event, ok bool)

type EventDispatcher func(Event)

type EventsConsumerStrategy interface {
	Consume(poll EventPoller, dispatch EventDispatcher, timeout time.Duration) int
}

// DrainAllStrategy waits for one event, then takes everything already queued.
type DrainAllStrategy struct{}

func (DrainAllStrategy) Consume(poll EventPoller, dispatch EventDispatcher, timeout time.Duration) int {
	return drain(poll, dispatch, timeout, -1)
}

// DrainMaxStrategy is DrainAllStrategy capped at Max events per call.
type DrainMaxStrategy struct {
	Max int
}

func (s DrainMaxStrategy) Consume(poll EventPoller, dispatch EventDispatcher, timeout time.Duration) int {
	limit := s.Max
	if limit <= 0 {
		limit = 1
	}
	return drain(poll, dispatch, timeout, limit)
}

func drain(poll EventPoller, dispatch EventDispatcher, timeout time.Duration, limit int) int {
	count := 0
	for limit < 0 || count < limit {
		wait := time.Duration(0)
		if count == 0 {
			wait = timeout
		}
		event, ok := poll(wait)
		if !ok {
			break
		}
		dispatch(event)
		count++
	}
	return count
}

func DrainAll() EventsConsumerStrategy {
	return DrainAllStrategy{}
}

func DrainMax(max int) EventsConsumerStrategy {
	return DrainMaxStrategy{Max: max}
}
