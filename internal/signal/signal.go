package signal

import (
	"net/http"
	"sync"

	"github.com/gorilla/websocket"
	"github.com/rs/zerolog"
	"github.com/rtcdir/rtcdir/internal/api"
	"github.com/rtcdir/rtcdir/internal/app"
)

func Init() {
	var cfg struct {
		Mod struct {
			Origin string `yaml:"origin"`
			MDNS   bool   `yaml:"mdns"`
			Listen string `yaml:"listen"` // advertised port, from api listen by default
		} `yaml:"signal"`
	}

	app.LoadConfig(&cfg)

	log = app.GetLogger("signal")

	wsUp = &websocket.Upgrader{
		ReadBufferSize:  4096, // for SDP
		WriteBufferSize: 4096,
	}

	if cfg.Mod.Origin == "*" {
		wsUp.CheckOrigin = func(r *http.Request) bool {
			return true
		}
	}

	api.HandleFunc("api/ws", apiWS)

	if cfg.Mod.MDNS {
		advertise(cfg.Mod.Listen)
	}
}

var log zerolog.Logger
var wsUp *websocket.Upgrader

// Message - signaling exchange unit; Value carries SDP text for
// offer/answer types
type Message struct {
	Type  string `json:"type"` // join, offer, answer, leave
	Room  string `json:"room,omitempty"`
	Value string `json:"value,omitempty"`
}

const (
	MsgJoin   = "join"
	MsgOffer  = "offer"
	MsgAnswer = "answer"
	MsgLeave  = "leave"
	MsgError  = "error"
)

type member struct {
	conn *websocket.Conn
	wrmx sync.Mutex
}

func (m *member) write(msg *Message) error {
	m.wrmx.Lock()
	defer m.wrmx.Unlock()
	return m.conn.WriteJSON(msg)
}

var roomsMu sync.Mutex
var rooms = map[string][]*member{}

// apiWS - pairs two peers per room name and relays everything after
// the join message to the other member
func apiWS(w http.ResponseWriter, r *http.Request) {
	ws, err := wsUp.Upgrade(w, r, nil)
	if err != nil {
		log.Error().Err(err).Caller().Msgf("host=%s", r.Host)
		return
	}

	var join Message
	if err = ws.ReadJSON(&join); err != nil || join.Type != MsgJoin || join.Room == "" {
		_ = ws.Close()
		return
	}

	me := &member{conn: ws}

	roomsMu.Lock()
	if len(rooms[join.Room]) >= 2 {
		roomsMu.Unlock()
		_ = me.write(&Message{Type: MsgError, Value: "room is full"})
		_ = ws.Close()
		return
	}
	rooms[join.Room] = append(rooms[join.Room], me)
	roomsMu.Unlock()

	log.Debug().Str("room", join.Room).Msg("[signal] peer joined")

	for {
		var msg Message
		if err = ws.ReadJSON(&msg); err != nil {
			break
		}

		msg.Room = join.Room

		log.Trace().Str("type", msg.Type).Str("room", msg.Room).Msg("[signal] relay")

		if other := otherMember(join.Room, me); other != nil {
			if err = other.write(&msg); err != nil {
				log.Debug().Err(err).Msg("[signal] relay")
			}
		}
	}

	leave(join.Room, me)
	_ = ws.Close()
}

func otherMember(room string, me *member) *member {
	roomsMu.Lock()
	defer roomsMu.Unlock()
	for _, m := range rooms[room] {
		if m != me {
			return m
		}
	}
	return nil
}

func leave(room string, me *member) {
	roomsMu.Lock()
	members := rooms[room][:0]
	for _, m := range rooms[room] {
		if m != me {
			members = append(members, m)
		}
	}
	if len(members) == 0 {
		delete(rooms, room)
	} else {
		rooms[room] = members
	}
	roomsMu.Unlock()

	log.Debug().Str("room", room).Msg("[signal] peer left")
}
