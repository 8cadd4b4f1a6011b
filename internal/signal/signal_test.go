package signal

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gorilla/websocket"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestServer() *httptest.Server {
	log = zerolog.Nop()
	wsUp = &websocket.Upgrader{}

	mux := http.NewServeMux()
	mux.HandleFunc("/api/ws", apiWS)
	return httptest.NewServer(mux)
}

func wsURL(server *httptest.Server) string {
	return "ws" + strings.TrimPrefix(server.URL, "http") + "/api/ws"
}

func TestRelay(t *testing.T) {
	server := newTestServer()
	defer server.Close()

	a, err := Dial(wsURL(server), "room1")
	require.Nil(t, err)
	defer a.Close()

	b, err := Dial(wsURL(server), "room1")
	require.Nil(t, err)
	defer b.Close()

	require.Nil(t, a.Send(&Message{Type: MsgOffer, Value: "v=0 fake offer"}))

	msg, err := b.Recv()
	require.Nil(t, err)
	assert.Equal(t, MsgOffer, msg.Type)
	assert.Equal(t, "v=0 fake offer", msg.Value)
	assert.Equal(t, "room1", msg.Room)

	require.Nil(t, b.Send(&Message{Type: MsgAnswer, Value: "v=0 fake answer"}))

	msg, err = a.Recv()
	require.Nil(t, err)
	assert.Equal(t, MsgAnswer, msg.Type)
	assert.Equal(t, "v=0 fake answer", msg.Value)
}

func TestRoomFull(t *testing.T) {
	server := newTestServer()
	defer server.Close()

	a, err := Dial(wsURL(server), "room2")
	require.Nil(t, err)
	defer a.Close()

	b, err := Dial(wsURL(server), "room2")
	require.Nil(t, err)
	defer b.Close()

	c, err := Dial(wsURL(server), "room2")
	require.Nil(t, err)
	defer c.Close()

	msg, err := c.Recv()
	require.Nil(t, err)
	assert.Equal(t, MsgError, msg.Type)
}
