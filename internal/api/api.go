package api

import (
	"encoding/json"
	"net"
	"net/http"
	"time"

	"github.com/rs/zerolog"
	"github.com/rtcdir/rtcdir/internal/app"
)

func Init() {
	var cfg struct {
		Mod struct {
			Listen   string `yaml:"listen"`
			BasePath string `yaml:"base_path"`
			Origin   string `yaml:"origin"`
		} `yaml:"api"`
	}

	// default config
	cfg.Mod.Listen = ":1984"

	app.LoadConfig(&cfg)

	basePath = cfg.Mod.BasePath
	log = app.GetLogger("api")

	if cfg.Mod.Listen == "" {
		return
	}

	HandleFunc("api", apiHandler)

	Handler = http.DefaultServeMux

	if cfg.Mod.Origin == "*" {
		Handler = middlewareCORS(Handler)
	}

	if log.Trace().Enabled() {
		Handler = middlewareLog(Handler)
	}

	go listen("tcp", cfg.Mod.Listen)
}

var Port int

var Handler http.Handler

var basePath string
var log zerolog.Logger

func listen(network, address string) {
	ln, err := net.Listen(network, address)
	if err != nil {
		log.Error().Err(err).Msg("[api] listen")
		return
	}

	log.Info().Str("addr", address).Msg("[api] listen")

	Port = ln.Addr().(*net.TCPAddr).Port

	server := http.Server{
		Handler:           Handler,
		ReadHeaderTimeout: 5 * time.Second,
	}
	if err = server.Serve(ln); err != nil {
		log.Fatal().Err(err).Msg("[api] serve")
	}
}

// HandleFunc handle pattern with relative path:
// - "api/ws"  => "{basepath}/api/ws"
// - "/ws"     => "/ws"
func HandleFunc(pattern string, handler http.HandlerFunc) {
	if len(pattern) == 0 || pattern[0] != '/' {
		pattern = basePath + "/" + pattern
	}
	log.Trace().Str("path", pattern).Msg("[api] register path")
	http.HandleFunc(pattern, handler)
}

const MimeJSON = "application/json"

// ResponseJSON important always add Content-Type
// so go won't need to call http.DetectContentType
func ResponseJSON(w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", MimeJSON)
	_ = json.NewEncoder(w).Encode(v)
}

func apiHandler(w http.ResponseWriter, r *http.Request) {
	ResponseJSON(w, app.Info)
}

func middlewareLog(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		log.Trace().Msgf("[api] %s %s %s", r.Method, r.URL, r.RemoteAddr)
		next.ServeHTTP(w, r)
	})
}

func middlewareCORS(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		if r.Method == "OPTIONS" {
			return
		}
		next.ServeHTTP(w, r)
	})
}
