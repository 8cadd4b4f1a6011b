package core

import (
	"testing"

	"github.com/pion/webrtc/v3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIntersect(t *testing.T) {
	tests := []struct {
		local, remote, negotiated Direction
	}{
		{DirectionSendRecv, DirectionRecvonly, DirectionSendonly},
		{DirectionRecvonly, DirectionInactive, DirectionInactive},
		{DirectionSendRecv, DirectionSendRecv, DirectionSendRecv},
		{DirectionSendonly, DirectionSendonly, DirectionInactive},
		{DirectionSendonly, DirectionRecvonly, DirectionSendonly},
		{DirectionRecvonly, DirectionSendonly, DirectionRecvonly},
		{DirectionInactive, DirectionSendRecv, DirectionInactive},
	}

	for _, test := range tests {
		assert.Equal(
			t, test.negotiated, Intersect(test.local, test.remote),
			"local=%s remote=%s", test.local, test.remote,
		)
	}
}

func TestReverse(t *testing.T) {
	assert.Equal(t, DirectionRecvonly, DirectionSendonly.Reverse())
	assert.Equal(t, DirectionSendonly, DirectionRecvonly.Reverse())
	assert.Equal(t, DirectionSendRecv, DirectionSendRecv.Reverse())
	assert.Equal(t, DirectionInactive, DirectionInactive.Reverse())
}

func TestParseDirection(t *testing.T) {
	for _, s := range []string{"sendrecv", "sendonly", "recvonly", "inactive"} {
		d, err := ParseDirection(s)
		require.Nil(t, err)
		assert.Equal(t, s, d.String())
	}

	_, err := ParseDirection("sendrecv ")
	assert.Equal(t, ErrInvalidParameter, err)
}

func TestOptDirection(t *testing.T) {
	assert.Equal(t, "notset", DirectionNotSet.String())
	assert.False(t, DirectionNotSet.Send())
	assert.False(t, DirectionNotSet.Recv())

	assert.Equal(t, "sendonly", DirectionSendonly.Opt().String())
	assert.True(t, DirectionSendRecv.Opt().Send())
	assert.True(t, DirectionSendRecv.Opt().Recv())
	assert.False(t, DirectionRecvonly.Opt().Send())
}

func TestValidateName(t *testing.T) {
	require.Nil(t, ValidateName("video_transceiver_1"))
	require.Nil(t, ValidateName("Cam-2"))

	assert.Equal(t, ErrInvalidParameter, ValidateName(""))
	assert.Equal(t, ErrInvalidParameter, ValidateName("invalid name with space"))
	assert.Equal(t, ErrInvalidParameter, ValidateName("tab\there"))
	assert.Equal(t, ErrInvalidParameter, ValidateName("semi;colon"))
}

func TestPionConversion(t *testing.T) {
	dirs := []Direction{
		DirectionInactive, DirectionSendonly, DirectionRecvonly, DirectionSendRecv,
	}
	for _, d := range dirs {
		assert.Equal(t, d, FromPion(ToPion(d)))
	}

	assert.Equal(t, webrtc.RTPTransceiverDirectionSendrecv, ToPion(DirectionSendRecv))
	assert.Equal(t, DirectionInactive, FromPion(webrtc.RTPTransceiverDirection(0)))
}
