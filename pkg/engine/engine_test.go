package engine

import (
	"testing"

	"github.com/rtcdir/rtcdir/pkg/core"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLocalTrack(t *testing.T) {
	track, err := NewLocalTrack("cam1", core.KindVideo)
	require.Nil(t, err)
	assert.Equal(t, "cam1", track.ID())
	assert.Equal(t, core.KindVideo, track.Kind())

	track, err = NewLocalTrack("mic1", core.KindAudio)
	require.Nil(t, err)
	assert.Equal(t, core.KindAudio, track.Kind())
}

func TestRemoteTrack(t *testing.T) {
	e := New()
	track := e.NewRemoteTrack("video1", core.KindVideo)
	require.NotNil(t, track)
	assert.Equal(t, "video1", track.ID())
	assert.Equal(t, core.KindVideo, track.Kind())
}
