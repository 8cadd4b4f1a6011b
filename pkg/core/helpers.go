package core

import "github.com/pion/webrtc/v3"

// ToPion - map a direction onto the pion transceiver enum,
// for feeding negotiated state into a real media engine
func ToPion(d Direction) webrtc.RTPTransceiverDirection {
	switch d {
	case DirectionSendonly:
		return webrtc.RTPTransceiverDirectionSendonly
	case DirectionRecvonly:
		return webrtc.RTPTransceiverDirectionRecvonly
	case DirectionSendRecv:
		return webrtc.RTPTransceiverDirectionSendrecv
	}
	return webrtc.RTPTransceiverDirectionInactive
}

func FromPion(d webrtc.RTPTransceiverDirection) Direction {
	switch d {
	case webrtc.RTPTransceiverDirectionSendonly:
		return DirectionSendonly
	case webrtc.RTPTransceiverDirectionRecvonly:
		return DirectionRecvonly
	case webrtc.RTPTransceiverDirectionSendrecv:
		return DirectionSendRecv
	}
	return DirectionInactive
}
