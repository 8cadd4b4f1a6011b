package main

import (
	"github.com/rtcdir/rtcdir/internal/api"
	"github.com/rtcdir/rtcdir/internal/app"
	"github.com/rtcdir/rtcdir/internal/peers"
	"github.com/rtcdir/rtcdir/internal/signal"
	"github.com/rtcdir/rtcdir/pkg/shell"
)

func main() {
	app.Init() // init config and logs

	api.Init()    // init HTTP API server
	signal.Init() // init websocket signaling and mdns
	peers.Init()  // load peers list and start exchanges

	shell.RunUntilSignal()
}
