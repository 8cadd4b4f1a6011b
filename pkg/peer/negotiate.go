package peer

import (
	"errors"
	"strconv"

	"github.com/pion/sdp/v3"
	"github.com/rtcdir/rtcdir/pkg/core"
)

const (
	TypeOffer  = "offer"
	TypeAnswer = "answer"
)

var (
	ErrNoLocalOffer  = errors.New("peer: answer without a pending local offer")
	ErrNoRemoteOffer = errors.New("peer: no pending remote offer")
	ErrBadType       = errors.New("peer: unknown description type")
)

// CreateOffer - encodes every transceiver's desired direction into a
// local description. Negotiated directions never change here and the
// offering side never fires a local-desc event: what gets emitted is
// exactly the desired direction.
func (c *Conn) CreateOffer() (string, error) {
	list := c.Transceivers()
	emitted := make(map[*Transceiver]core.Direction, len(list))

	for _, t := range list {
		t.mu.Lock()
		if t.closed {
			// closed slots stay in the description to keep section
			// ordering stable across renegotiations
			emitted[t] = core.DirectionInactive
		} else {
			t.offered = t.desired
			t.hasOffered = true
			emitted[t] = t.offered
		}
		t.mu.Unlock()
	}

	c.mu.Lock()
	c.localOffer = true
	c.remoteOffer = false
	c.mu.Unlock()

	return c.marshalDescription(list, emitted)
}

// CreateAnswer - requires an applied remote offer. Emits the
// intersection of the desired direction with the remote offer and
// fires a local-desc event for every transceiver whose emitted
// direction had to be coerced away from its desired one.
func (c *Conn) CreateAnswer() (string, error) {
	c.mu.Lock()
	if !c.remoteOffer {
		c.mu.Unlock()
		return "", ErrNoRemoteOffer
	}
	c.remoteOffer = false
	c.mu.Unlock()

	list := c.Transceivers()
	emitted := make(map[*Transceiver]core.Direction, len(list))

	for _, t := range list {
		t.mu.Lock()
		if t.closed || !t.hasRemoteOffer {
			t.mu.Unlock()
			continue
		}
		emit := core.Intersect(t.desired, t.remoteOffered)
		t.offered = emit
		t.hasOffered = true
		t.hasRemoteOffer = false
		coerced := emit != t.desired
		negotiated := t.negotiated
		desired := t.desired
		observer := t.observer
		t.mu.Unlock()

		emitted[t] = emit

		if coerced && observer != nil {
			observer(ReasonLocalDesc, negotiated, desired)
		}
	}

	return c.marshalDescription(list, emitted)
}

// SetRemoteDescription - applies the already-exchanged SDP text.
// For every matched transceiver the negotiated direction becomes
// intersect(local declared, remote declared); a remote-desc event
// fires only when the value actually changed. Transceivers without a
// matching entry keep their previous negotiated direction.
func (c *Conn) SetRemoteDescription(sdpType, text string) error {
	sd := &sdp.SessionDescription{}
	if err := sd.Unmarshal([]byte(text)); err != nil {
		return err
	}

	switch sdpType {
	case TypeOffer:
		return c.applyRemoteOffer(sd)
	case TypeAnswer:
		return c.applyRemoteAnswer(sd)
	}
	return ErrBadType
}

type remoteSection struct {
	mid       string
	kind      string
	direction core.Direction
}

func (c *Conn) applyRemoteOffer(sd *sdp.SessionDescription) error {
	sections := unmarshalSections(sd)

	c.mu.Lock()
	c.remoteOffer = true
	c.localOffer = false
	c.mu.Unlock()

	for i, s := range sections {
		t := c.matchSection(i, s)
		if t == nil {
			// remote peer announced a section we never created:
			// mirror it with a receive-only transceiver, without
			// firing the negotiation-needed signal
			t = c.addRemoteTransceiver(i, s)
		}

		t.mu.Lock()
		if t.closed {
			t.mu.Unlock()
			continue
		}
		t.remoteOffered = s.direction
		t.hasRemoteOffer = true
		local := t.desired
		t.mu.Unlock()

		t.applyNegotiated(core.Intersect(local, s.direction), ReasonRemoteDesc)
	}

	return nil
}

func (c *Conn) applyRemoteAnswer(sd *sdp.SessionDescription) error {
	c.mu.Lock()
	if !c.localOffer {
		c.mu.Unlock()
		return ErrNoLocalOffer
	}
	c.localOffer = false
	c.mu.Unlock()

	sections := unmarshalSections(sd)

	for i, s := range sections {
		t := c.matchSection(i, s)
		if t == nil {
			continue
		}

		t.mu.Lock()
		if t.closed {
			t.mu.Unlock()
			continue
		}
		local := t.desired
		if t.hasOffered {
			local = t.offered
			t.hasOffered = false
		}
		t.mu.Unlock()

		t.applyNegotiated(core.Intersect(local, s.direction), ReasonRemoteDesc)
	}

	return nil
}

// matchSection - by mid first, by position second
func (c *Conn) matchSection(i int, s remoteSection) *Transceiver {
	if s.mid != "" {
		if t := c.GetTransceiver(s.mid); t != nil {
			return t
		}
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	if i < len(c.transceivers) {
		return c.transceivers[i]
	}
	return nil
}

func (c *Conn) addRemoteTransceiver(i int, s remoteSection) *Transceiver {
	name := s.mid
	if core.ValidateName(name) != nil {
		name = "remote" + strconv.Itoa(i)
	}

	t := &Transceiver{
		conn:       c,
		name:       name,
		kind:       s.kind,
		desired:    core.DirectionRecvonly,
		negotiated: core.DirectionNotSet,
	}

	c.mu.Lock()
	c.transceivers = append(c.transceivers, t)
	c.mu.Unlock()

	return t
}

// marshalDescription - one media section per transceiver present in
// the emitted map. Follows the same pion/sdp shape as RTSP/WebRTC
// producers use.
func (c *Conn) marshalDescription(list []*Transceiver, emitted map[*Transceiver]core.Direction) (string, error) {
	c.mu.Lock()
	c.sessionVersion++
	sd := &sdp.SessionDescription{
		Origin: sdp.Origin{
			Username: "-", SessionID: c.sessionID, SessionVersion: c.sessionVersion,
			NetworkType: "IN", AddressType: "IP4", UnicastAddress: "0.0.0.0",
		},
		SessionName: "rtcdir",
		ConnectionInformation: &sdp.ConnectionInformation{
			NetworkType: "IN", AddressType: "IP4", Address: &sdp.Address{
				Address: "0.0.0.0",
			},
		},
		TimeDescriptions: []sdp.TimeDescription{
			{Timing: sdp.Timing{}},
		},
	}
	c.mu.Unlock()

	for _, t := range list {
		direction, ok := emitted[t]
		if !ok {
			continue
		}

		t.mu.Lock()
		local := t.local
		t.mu.Unlock()

		md := &sdp.MediaDescription{
			MediaName: sdp.MediaName{
				Media:  t.kind,
				Port:   sdp.RangedPort{Value: 9},
				Protos: []string{"RTP", "AVP"},
			},
		}

		if t.kind == core.KindAudio {
			md.WithCodec(111, "opus", 48000, 2, "")
		} else {
			md.WithCodec(96, "VP8", 90000, 0, "")
		}

		md.WithValueAttribute("mid", t.name)
		md.WithPropertyAttribute(direction.String())

		// track presence changes the media description even when the
		// direction text is identical
		if local != nil {
			md.WithValueAttribute("msid", t.name+" "+local.ID())
		}

		sd.MediaDescriptions = append(sd.MediaDescriptions, md)
	}

	raw, err := sd.Marshal()
	if err != nil {
		return "", err
	}
	return string(raw), nil
}

func unmarshalSections(sd *sdp.SessionDescription) []remoteSection {
	sections := make([]remoteSection, 0, len(sd.MediaDescriptions))

	for _, md := range sd.MediaDescriptions {
		// sendrecv is the SDP default when no direction attribute present
		s := remoteSection{
			kind:      md.MediaName.Media,
			direction: core.DirectionSendRecv,
		}

		for _, attr := range md.Attributes {
			switch attr.Key {
			case "sendonly", "recvonly", "sendrecv", "inactive":
				s.direction, _ = core.ParseDirection(attr.Key)
			case "mid":
				s.mid = attr.Value
			}
		}

		sections = append(sections, s)
	}

	return sections
}
