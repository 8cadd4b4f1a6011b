package signal

import (
	"net"
	"os"
	"strconv"
	"time"

	"github.com/hashicorp/mdns"
)

const serviceName = "_rtcdir._tcp"

// advertise - announce the signaling endpoint on the LAN so peers
// configured with server "mdns" can find it
func advertise(listen string) {
	port := 1984
	if _, p, err := net.SplitHostPort(listen); err == nil {
		if v, err := strconv.Atoi(p); err == nil {
			port = v
		}
	}

	host, _ := os.Hostname()

	service, err := mdns.NewMDNSService(host, serviceName, "", "", port, nil, []string{"rtcdir signaling"})
	if err != nil {
		log.Warn().Err(err).Msg("[signal] mdns service")
		return
	}

	if _, err = mdns.NewServer(&mdns.Config{Zone: service}); err != nil {
		log.Warn().Err(err).Msg("[signal] mdns server")
		return
	}

	log.Info().Int("port", port).Msg("[signal] mdns advertise")
}

// Discover - first advertised signaling endpoint on the LAN, empty
// string when nothing answers before the timeout
func Discover(timeout time.Duration) string {
	entries := make(chan *mdns.ServiceEntry, 4)

	go func() {
		_ = mdns.Query(&mdns.QueryParam{
			Service: serviceName,
			Timeout: timeout,
			Entries: entries,
		})
		close(entries)
	}()

	for entry := range entries {
		if entry.AddrV4 != nil {
			return net.JoinHostPort(entry.AddrV4.String(), strconv.Itoa(entry.Port))
		}
	}

	return ""
}
