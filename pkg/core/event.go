package core

import (
	"sync"
	"time"
)

// Event - manual reset gate for waiting on exchange milestones
// (offer sent, answer applied). Blocking on a completed exchange is
// the caller's concern, so this lives next to the types and not
// inside the negotiation state machine.
type Event struct {
	mu  sync.Mutex
	ch  chan struct{}
	set bool
}

func (e *Event) Set() {
	e.mu.Lock()
	if !e.set {
		e.set = true
		if e.ch != nil {
			close(e.ch)
			e.ch = nil
		}
	}
	e.mu.Unlock()
}

func (e *Event) Reset() {
	e.mu.Lock()
	e.set = false
	e.mu.Unlock()
}

func (e *Event) IsSet() (set bool) {
	e.mu.Lock()
	set = e.set
	e.mu.Unlock()
	return
}

// Wait - true if the event is set before the timeout expires
func (e *Event) Wait(timeout time.Duration) bool {
	e.mu.Lock()
	if e.set {
		e.mu.Unlock()
		return true
	}
	if e.ch == nil {
		e.ch = make(chan struct{})
	}
	ch := e.ch
	e.mu.Unlock()

	select {
	case <-ch:
		return true
	case <-time.After(timeout):
		return false
	}
}
