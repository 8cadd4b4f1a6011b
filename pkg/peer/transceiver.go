package peer

import (
	"sync"

	"github.com/rtcdir/rtcdir/pkg/core"
)

// StateReason - why a state-updated observer fires
type StateReason byte

const (
	ReasonLocalDesc StateReason = iota + 1
	ReasonRemoteDesc
	ReasonSetDirection
)

func (r StateReason) String() string {
	switch r {
	case ReasonLocalDesc:
		return "local-desc"
	case ReasonRemoteDesc:
		return "remote-desc"
	case ReasonSetDirection:
		return "set-direction"
	}
	return "unknown"
}

// StateFunc - state-updated observer. Invoked synchronously after the
// mutation with no lock held; must not call back into the transceiver.
type StateFunc func(reason StateReason, negotiated core.OptDirection, desired core.Direction)

// Transceiver - one direction-negotiation unit. The desired direction
// belongs to the application, the negotiated one to the coordinator.
// All fields live behind a single mutex, local API calls and
// description application run on different goroutines.
type Transceiver struct {
	conn *Conn
	name string
	kind string

	mu         sync.Mutex
	desired    core.Direction
	negotiated core.OptDirection
	local      core.Track
	remote     core.Track
	observer   StateFunc
	closed     bool

	// offer/answer bookkeeping, coordinator only
	offered        core.Direction // direction written into the last local description
	hasOffered     bool
	remoteOffered  core.Direction // direction declared by the pending remote offer
	hasRemoteOffer bool
}

func (t *Transceiver) Name() string {
	return t.name
}

func (t *Transceiver) Kind() string {
	return t.kind
}

func (t *Transceiver) Direction() core.Direction {
	if t == nil {
		return core.DirectionInactive
	}
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.desired
}

func (t *Transceiver) Negotiated() core.OptDirection {
	if t == nil {
		return core.DirectionNotSet
	}
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.negotiated
}

// SetDirection - updates the desired direction even when unchanged,
// so re-issuing the same value still fires one observer event
func (t *Transceiver) SetDirection(d core.Direction) error {
	if t == nil {
		return core.ErrInvalidHandle
	}

	t.mu.Lock()
	if t.closed {
		t.mu.Unlock()
		return core.ErrInvalidHandle
	}
	t.desired = d
	negotiated := t.negotiated
	observer := t.observer
	t.mu.Unlock()

	if observer != nil {
		observer(ReasonSetDirection, negotiated, d)
	}

	t.conn.markDirty()
	t.conn.dispatchNegotiationNeeded()
	return nil
}

// SetLocalTrack - replaces the local track reference, nil detaches.
// Directions stay untouched and no state event fires, but the local
// description changes with the track, so renegotiation is needed.
func (t *Transceiver) SetLocalTrack(track core.Track) error {
	if t == nil {
		return core.ErrInvalidHandle
	}

	t.mu.Lock()
	if t.closed {
		t.mu.Unlock()
		return core.ErrInvalidHandle
	}
	t.local = track
	t.mu.Unlock()

	t.conn.markDirty()
	t.conn.dispatchNegotiationNeeded()
	return nil
}

// LocalTrack - nil when no track attached, never an error
func (t *Transceiver) LocalTrack() core.Track {
	if t == nil {
		return nil
	}
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.local
}

// RemoteTrack - nil until negotiation yields a receiving direction
func (t *Transceiver) RemoteTrack() core.Track {
	if t == nil {
		return nil
	}
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.remote
}

// OnStateUpdated - replaces the observer, at most one at a time.
// Past transitions are not replayed.
func (t *Transceiver) OnStateUpdated(f StateFunc) error {
	if t == nil {
		return core.ErrInvalidHandle
	}

	t.mu.Lock()
	if t.closed {
		t.mu.Unlock()
		return core.ErrInvalidHandle
	}
	t.observer = f
	t.mu.Unlock()
	return nil
}

// Close - marks the handle stale, every later call rejects it.
// The conn keeps its slot so transceiver ordering stays stable.
func (t *Transceiver) Close() error {
	if t == nil {
		return core.ErrInvalidHandle
	}

	t.mu.Lock()
	if t.closed {
		t.mu.Unlock()
		return core.ErrInvalidHandle
	}
	t.closed = true
	t.observer = nil
	t.local = nil
	t.remote = nil
	t.mu.Unlock()
	return nil
}

// applyNegotiated - coordinator only, runs during description
// application. Fires the observer only on a value change.
func (t *Transceiver) applyNegotiated(d core.Direction, reason StateReason) {
	t.mu.Lock()
	changed := t.negotiated != d.Opt()
	t.negotiated = d.Opt()

	if d.Recv() {
		if t.remote == nil && t.conn.engine != nil {
			t.remote = t.conn.engine.NewRemoteTrack(t.name, t.kind)
		}
	} else {
		t.remote = nil
	}

	desired := t.desired
	observer := t.observer
	t.mu.Unlock()

	if changed && observer != nil {
		observer(reason, d.Opt(), desired)
	}
}
