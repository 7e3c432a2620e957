package ws

import (
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"net/url"
	"strings"

	"github.com/gorilla/websocket"

	"github.com/tuio-bridge/backend/internal/bridge"
	"github.com/tuio-bridge/backend/internal/monitor"
	"github.com/tuio-bridge/backend/internal/session"
)

// Server accepts event notifications over WebSocket and feeds them to the
// bridge, one connection read loop at a time. It also serves the small
// JSON API used for operator visibility.
type Server struct {
	bridge *bridge.Bridge
	health *monitor.Health
}

func NewServer(b *bridge.Bridge, health *monitor.Health) *Server {
	return &Server{
		bridge: b,
		health: health,
	}
}

func (s *Server) SetupRoutes(mux *http.ServeMux) {
	mux.HandleFunc("/ws", s.handleWS)
	mux.HandleFunc("/api/sessions", s.handleSessions)
	mux.HandleFunc("/api/stats", s.handleStats)
	mux.HandleFunc("/api/health", s.handleHealth)
}

func (s *Server) handleWS(w http.ResponseWriter, r *http.Request) {
	upgrader := websocket.Upgrader{
		CheckOrigin: checkOrigin,
	}

	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Printf("ws upgrade error: %v", err)
		return
	}

	log.Printf("event source connected: %s", r.RemoteAddr)
	go s.readLoop(conn, r.RemoteAddr)
}

// readLoop consumes notifications until the connection drops, then sends
// the teardown sequence as a best-effort cleanup signal for whatever the
// lost source was tracking.
func (s *Server) readLoop(conn *websocket.Conn, remote string) {
	defer func() {
		conn.Close()
		log.Printf("event source disconnected: %s", remote)
		s.bridge.TeardownAlive()
	}()

	for {
		_, data, err := conn.ReadMessage()
		if err != nil {
			return
		}
		s.dispatch(data)
	}
}

// dispatch decodes and routes one notification. Malformed payloads and
// unknown types are dropped here; they never reach the bridge.
func (s *Server) dispatch(data []byte) {
	var note Notification
	if err := json.Unmarshal(data, &note); err != nil {
		log.Printf("ws: dropping malformed payload: %v", err)
		return
	}

	switch note.Type {
	case TypeFrame:
		s.bridge.EmitFrame()
	case TypeReset:
		s.bridge.Reset()
	default:
		class, ok := session.ParseClass(note.Type)
		if !ok {
			log.Printf("ws: ignoring notification with unknown type %q", note.Type)
			return
		}
		action, ok := bridge.ParseAction(note.Action)
		if !ok {
			// Unrecognized actions are a silent no-op.
			return
		}
		s.bridge.Handle(note.event(class, action))
	}
}

func (s *Server) handleSessions(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(s.bridge.ActiveSessions())
}

func (s *Server) handleStats(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(s.bridge.Stats())
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	if s.health == nil {
		http.Error(w, "health not available", http.StatusServiceUnavailable)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(s.health.Snapshot())
}

func checkOrigin(r *http.Request) bool {
	origin := r.Header.Get("Origin")
	if origin == "" {
		return true
	}

	parsed, err := url.Parse(origin)
	if err != nil {
		return false
	}

	host := parsed.Host
	if host == "" {
		return false
	}

	if host == r.Host {
		return true
	}

	if strings.HasPrefix(host, "localhost:") || host == "localhost" {
		return true
	}
	if strings.HasPrefix(host, "127.0.0.1:") || host == "127.0.0.1" {
		return true
	}
	if strings.HasPrefix(host, "[::1]:") || host == "::1" {
		return true
	}

	return false
}

func ListenAndServe(host string, port int, mux *http.ServeMux) error {
	addr := fmt.Sprintf("%s:%d", host, port)
	log.Printf("listening for event notifications on %s", addr)
	return http.ListenAndServe(addr, mux)
}
