package peers

import (
	"net/http"
	"time"

	"github.com/rs/zerolog"
	"github.com/rtcdir/rtcdir/internal/api"
	"github.com/rtcdir/rtcdir/internal/app"
	"github.com/rtcdir/rtcdir/internal/signal"
	"github.com/rtcdir/rtcdir/pkg/core"
	"github.com/rtcdir/rtcdir/pkg/engine"
	"github.com/rtcdir/rtcdir/pkg/peer"
)

func Init() {
	var cfg struct {
		Mod map[string]peerConfig `yaml:"peers"`
	}

	app.LoadConfig(&cfg)

	log = app.GetLogger("peers")

	for name, pc := range cfg.Mod {
		p, err := start(name, pc)
		if err != nil {
			log.Error().Err(err).Str("peer", name).Msg("[peers] start")
			continue
		}
		peers[name] = p
	}

	api.HandleFunc("api/peers", apiPeers)
}

var log zerolog.Logger
var peers = map[string]*Peer{}

type peerConfig struct {
	Room   string `yaml:"room"`
	Server string `yaml:"server"` // ws://host:port/api/ws or "mdns"
	Role   string `yaml:"role"`   // offer or answer

	Transceivers []struct {
		Name      string `yaml:"name"`
		Kind      string `yaml:"kind"`
		Direction string `yaml:"direction"`
		Track     string `yaml:"track"` // local track id, optional
	} `yaml:"transceivers"`
}

// Peer - one configured peer connection bridged to the signaling
// transport. The offer role drives exchanges when the connection
// reports negotiation needed; the answer role only reacts.
type Peer struct {
	Name string
	Conn *peer.Conn

	// Exchanged - set when the current offer/answer round completed
	Exchanged core.Event

	client *signal.Client
	role   string
	need   chan struct{}
}

func start(name string, pc peerConfig) (*Peer, error) {
	p := &Peer{
		Name: name,
		Conn: peer.NewConn(engine.New()),
		role: pc.Role,
		need: make(chan struct{}, 1),
	}

	p.Conn.OnNegotiationNeeded(func() {
		select {
		case p.need <- struct{}{}:
		default:
		}
	})

	for _, tc := range pc.Transceivers {
		tcInit := peer.DefaultInit(tc.Name)
		if tc.Kind != "" {
			tcInit.Kind = tc.Kind
		}
		if tc.Direction != "" {
			d, err := core.ParseDirection(tc.Direction)
			if err != nil {
				return nil, err
			}
			tcInit.Direction = d
		}

		t, err := p.Conn.AddTransceiver(tcInit)
		if err != nil {
			return nil, err
		}

		if tc.Track != "" {
			track, err := engine.NewLocalTrack(tc.Track, t.Kind())
			if err != nil {
				return nil, err
			}
			if err = t.SetLocalTrack(track); err != nil {
				return nil, err
			}
		}
	}

	server := pc.Server
	if server == "mdns" {
		addr := signal.Discover(2 * time.Second)
		if addr == "" {
			log.Warn().Str("peer", name).Msg("[peers] mdns discover failed")
			return p, nil
		}
		server = "ws://" + addr + "/api/ws"
	}

	if server == "" {
		return p, nil
	}

	client, err := signal.Dial(server, pc.Room)
	if err != nil {
		return nil, err
	}
	p.client = client

	go p.readLoop()
	if p.role == "offer" {
		go p.offerLoop()
	}

	return p, nil
}

func (p *Peer) offerLoop() {
	for range p.need {
		p.Exchanged.Reset()

		offer, err := p.Conn.CreateOffer()
		if err != nil {
			log.Error().Err(err).Str("peer", p.Name).Msg("[peers] offer")
			continue
		}

		if err = p.client.Send(&signal.Message{Type: signal.MsgOffer, Value: offer}); err != nil {
			log.Error().Err(err).Str("peer", p.Name).Msg("[peers] send offer")
			return
		}

		// one exchange at a time, answer arrives via readLoop
		if !p.Exchanged.Wait(10 * time.Second) {
			log.Warn().Str("peer", p.Name).Msg("[peers] exchange timeout")
		}
	}
}

func (p *Peer) readLoop() {
	for {
		msg, err := p.client.Recv()
		if err != nil {
			log.Debug().Err(err).Str("peer", p.Name).Msg("[peers] signaling closed")
			return
		}

		switch msg.Type {
		case signal.MsgOffer:
			if err = p.Conn.SetRemoteDescription(peer.TypeOffer, msg.Value); err != nil {
				log.Error().Err(err).Str("peer", p.Name).Msg("[peers] remote offer")
				continue
			}
			answer, err := p.Conn.CreateAnswer()
			if err != nil {
				log.Error().Err(err).Str("peer", p.Name).Msg("[peers] answer")
				continue
			}
			if err = p.client.Send(&signal.Message{Type: signal.MsgAnswer, Value: answer}); err != nil {
				log.Error().Err(err).Str("peer", p.Name).Msg("[peers] send answer")
				return
			}
			p.Exchanged.Set()

		case signal.MsgAnswer:
			if err = p.Conn.SetRemoteDescription(peer.TypeAnswer, msg.Value); err != nil {
				log.Error().Err(err).Str("peer", p.Name).Msg("[peers] remote answer")
				continue
			}
			p.Exchanged.Set()

		case signal.MsgError:
			log.Warn().Str("peer", p.Name).Str("error", msg.Value).Msg("[peers] signaling")
		}
	}
}

type transceiverStatus struct {
	Name        string `json:"name"`
	Kind        string `json:"kind"`
	Desired     string `json:"desired"`
	Negotiated  string `json:"negotiated"`
	LocalTrack  string `json:"local_track,omitempty"`
	RemoteTrack string `json:"remote_track,omitempty"`
}

func apiPeers(w http.ResponseWriter, r *http.Request) {
	status := map[string][]transceiverStatus{}

	for name, p := range peers {
		for _, t := range p.Conn.Transceivers() {
			ts := transceiverStatus{
				Name:       t.Name(),
				Kind:       t.Kind(),
				Desired:    t.Direction().String(),
				Negotiated: t.Negotiated().String(),
			}
			if track := t.LocalTrack(); track != nil {
				ts.LocalTrack = track.ID()
			}
			if track := t.RemoteTrack(); track != nil {
				ts.RemoteTrack = track.ID()
			}
			status[name] = append(status[name], ts)
		}
	}

	api.ResponseJSON(w, status)
}
