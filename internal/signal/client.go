package signal

import (
	"sync"

	"github.com/gorilla/websocket"
)

// Client - one signaling connection joined to a room
type Client struct {
	conn *websocket.Conn
	wrmx sync.Mutex
}

// Dial - connect to a signaling server (ws://host:port/api/ws) and
// join the room
func Dial(url, room string) (*Client, error) {
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	if err != nil {
		return nil, err
	}

	c := &Client{conn: conn}
	if err = c.Send(&Message{Type: MsgJoin, Room: room}); err != nil {
		_ = conn.Close()
		return nil, err
	}
	return c, nil
}

func (c *Client) Send(msg *Message) error {
	c.wrmx.Lock()
	defer c.wrmx.Unlock()
	return c.conn.WriteJSON(msg)
}

func (c *Client) Recv() (*Message, error) {
	msg := new(Message)
	if err := c.conn.ReadJSON(msg); err != nil {
		return nil, err
	}
	return msg, nil
}

func (c *Client) Close() error {
	return c.conn.Close()
}
