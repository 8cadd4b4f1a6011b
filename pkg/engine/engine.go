package engine

import (
	"github.com/pion/webrtc/v3"
	"github.com/rtcdir/rtcdir/pkg/core"
)

// Engine - media engine collaborator for peer.Conn. Local tracks sit
// on pion sample tracks, remote ones are plain references minted when
// negotiation yields a receiving direction.
type Engine struct{}

func New() *Engine {
	return &Engine{}
}

func (e *Engine) NewRemoteTrack(name, kind string) core.Track {
	return &remoteTrack{id: name, kind: kind}
}

type remoteTrack struct {
	id   string
	kind string
}

func (t *remoteTrack) ID() string {
	return t.id
}

func (t *remoteTrack) Kind() string {
	return t.kind
}

// NewLocalTrack - sample-based local track, VP8 for video and opus
// for audio, same defaults as the offer/answer codec lines
func NewLocalTrack(id, kind string) (core.Track, error) {
	caps := webrtc.RTPCodecCapability{
		MimeType: webrtc.MimeTypeVP8, ClockRate: 90000,
	}
	if kind == core.KindAudio {
		caps = webrtc.RTPCodecCapability{
			MimeType: webrtc.MimeTypeOpus, ClockRate: 48000, Channels: 2,
		}
	}

	track, err := webrtc.NewTrackLocalStaticSample(caps, id, "rtcdir")
	if err != nil {
		return nil, err
	}

	return &localTrack{track}, nil
}

type localTrack struct {
	*webrtc.TrackLocalStaticSample
}

func (t *localTrack) Kind() string {
	return t.TrackLocalStaticSample.Kind().String()
}
