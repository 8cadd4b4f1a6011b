package peer

import (
	"sync"

	"github.com/rtcdir/rtcdir/pkg/core"
)

// MediaEngine - collaborator that materializes receive paths.
// Called when a completed exchange yields a receiving direction
// for the named transceiver.
type MediaEngine interface {
	NewRemoteTrack(name, kind string) core.Track
}

// Conn - one peer connection: ordered transceiver list, the single
// negotiation-needed observer slot and the offer/answer state.
type Conn struct {
	mu sync.Mutex

	engine MediaEngine

	transceivers []*Transceiver

	onNegotiationNeeded func()
	needNegotiation     bool

	localOffer  bool // CreateOffer issued, waiting for remote answer
	remoteOffer bool // remote offer applied, waiting for CreateAnswer

	sessionID      uint64
	sessionVersion uint64
}

func NewConn(engine MediaEngine) *Conn {
	return &Conn{engine: engine, sessionID: 1}
}

// TransceiverInit - creation config. The zero Direction is inactive
// and is honored verbatim; use DefaultInit for the usual sendrecv.
type TransceiverInit struct {
	Name      string
	Kind      string // video when empty
	Direction core.Direction
}

func DefaultInit(name string) TransceiverInit {
	return TransceiverInit{Name: name, Direction: core.DirectionSendRecv}
}

// AddTransceiver - validates the name, appends the transceiver and
// fires one negotiation-needed signal before returning
func (c *Conn) AddTransceiver(init TransceiverInit) (*Transceiver, error) {
	if err := core.ValidateName(init.Name); err != nil {
		return nil, err
	}

	kind := init.Kind
	if kind == "" {
		kind = core.KindVideo
	}

	t := &Transceiver{
		conn:       c,
		name:       init.Name,
		kind:       kind,
		desired:    init.Direction,
		negotiated: core.DirectionNotSet,
	}

	c.mu.Lock()
	c.transceivers = append(c.transceivers, t)
	c.needNegotiation = true
	c.mu.Unlock()

	c.dispatchNegotiationNeeded()

	return t, nil
}

// OnNegotiationNeeded - replaces the observer, at most one at a time
func (c *Conn) OnNegotiationNeeded(f func()) {
	c.mu.Lock()
	c.onNegotiationNeeded = f
	c.mu.Unlock()
}

func (c *Conn) Transceivers() []*Transceiver {
	c.mu.Lock()
	list := make([]*Transceiver, len(c.transceivers))
	copy(list, c.transceivers)
	c.mu.Unlock()
	return list
}

func (c *Conn) GetTransceiver(name string) *Transceiver {
	c.mu.Lock()
	defer c.mu.Unlock()
	for _, t := range c.transceivers {
		if t.name == name {
			return t
		}
	}
	return nil
}

// dispatchNegotiationNeeded - reads and clears the dirty flag, then
// signals the observer. The clear happens before the next mutating
// call begins, so every Add/SetDirection/SetLocalTrack fires its own
// signal, there is no batching window.
func (c *Conn) dispatchNegotiationNeeded() {
	c.mu.Lock()
	fire := c.needNegotiation
	c.needNegotiation = false
	f := c.onNegotiationNeeded
	c.mu.Unlock()

	if fire && f != nil {
		f()
	}
}

func (c *Conn) markDirty() {
	c.mu.Lock()
	c.needNegotiation = true
	c.mu.Unlock()
}
