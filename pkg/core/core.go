package core

import "errors"

// Direction - desired media flow for one transceiver,
// packed as independent send/recv bits
type Direction byte

const (
	FlagSend Direction = 1 << iota
	FlagRecv
)

const (
	DirectionInactive Direction = 0
	DirectionSendonly           = FlagSend
	DirectionRecvonly           = FlagRecv
	DirectionSendRecv           = FlagSend | FlagRecv
)

func (d Direction) Send() bool {
	return d&FlagSend != 0
}

func (d Direction) Recv() bool {
	return d&FlagRecv != 0
}

// Reverse - same flow seen from the other peer (their send is our recv)
func (d Direction) Reverse() Direction {
	var r Direction
	if d.Send() {
		r |= FlagRecv
	}
	if d.Recv() {
		r |= FlagSend
	}
	return r
}

func (d Direction) String() string {
	switch d {
	case DirectionSendonly:
		return "sendonly"
	case DirectionRecvonly:
		return "recvonly"
	case DirectionSendRecv:
		return "sendrecv"
	}
	return "inactive"
}

func ParseDirection(s string) (Direction, error) {
	switch s {
	case "sendonly":
		return DirectionSendonly, nil
	case "recvonly":
		return DirectionRecvonly, nil
	case "sendrecv":
		return DirectionSendRecv, nil
	case "inactive":
		return DirectionInactive, nil
	}
	return DirectionInactive, ErrInvalidParameter
}

// Intersect - agreed flow after an offer/answer exchange:
// send stays only if we want to send and they want to receive,
// recv stays only if we want to receive and they want to send
func Intersect(local, remote Direction) Direction {
	return local & remote.Reverse()
}

// OptDirection - negotiated direction, DirectionNotSet until the first
// completed exchange that contains the transceiver
type OptDirection byte

const DirectionNotSet OptDirection = 0xFF

func (d OptDirection) String() string {
	if d == DirectionNotSet {
		return "notset"
	}
	return Direction(d).String()
}

func (d OptDirection) Send() bool {
	return d != DirectionNotSet && Direction(d).Send()
}

func (d OptDirection) Recv() bool {
	return d != DirectionNotSet && Direction(d).Recv()
}

// Opt - negotiated value for a concrete direction
func (d Direction) Opt() OptDirection {
	return OptDirection(d)
}

const (
	KindVideo = "video"
	KindAudio = "audio"
)

// Track - narrow surface of a media engine track, local or remote.
// A transceiver only holds the reference, it never owns the lifetime.
type Track interface {
	ID() string
	Kind() string
}

var (
	ErrInvalidParameter = errors.New("invalid parameter")
	ErrInvalidHandle    = errors.New("invalid handle")
)

// ValidateName - transceiver names go into SDP mid attributes,
// so only letters, digits, underscore and dash are allowed
func ValidateName(name string) error {
	if name == "" {
		return ErrInvalidParameter
	}
	for _, c := range name {
		switch {
		case c >= 'a' && c <= 'z':
		case c >= 'A' && c <= 'Z':
		case c >= '0' && c <= '9':
		case c == '_' || c == '-':
		default:
			return ErrInvalidParameter
		}
	}
	return nil
}
