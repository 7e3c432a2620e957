package ws

import (
	"bytes"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"

	"github.com/tuio-bridge/backend/internal/bridge"
	"github.com/tuio-bridge/backend/internal/osc"
)

// chanSender surfaces every datagram the bridge encodes on a channel so
// tests can wait for asynchronous dispatch.
type chanSender struct {
	ch chan []byte
}

func newChanSender() *chanSender {
	return &chanSender{ch: make(chan []byte, 64)}
}

func (s *chanSender) Send(datagram []byte) {
	s.ch <- datagram
}

func (s *chanSender) next(t *testing.T) []byte {
	t.Helper()
	select {
	case d := <-s.ch:
		return d
	case <-time.After(2 * time.Second):
		t.Fatal("timed out waiting for a datagram")
		return nil
	}
}

func (s *chanSender) expectNone(t *testing.T) {
	t.Helper()
	select {
	case d := <-s.ch:
		t.Fatalf("unexpected datagram: % x", d)
	case <-time.After(100 * time.Millisecond):
	}
}

func newTestServer(t *testing.T) (*httptest.Server, *chanSender, *websocket.Conn) {
	t.Helper()

	sender := newChanSender()
	srv := NewServer(bridge.New(sender), nil)
	mux := http.NewServeMux()
	srv.SetupRoutes(mux)

	ts := httptest.NewServer(mux)
	t.Cleanup(ts.Close)

	wsURL := "ws" + strings.TrimPrefix(ts.URL, "http") + "/ws"
	conn, _, err := websocket.DefaultDialer.Dial(wsURL, nil)
	if err != nil {
		t.Fatalf("dial: %v", err)
	}
	t.Cleanup(func() { conn.Close() })

	return ts, sender, conn
}

func mustEncode(t *testing.T, msg osc.Message) []byte {
	t.Helper()
	data, err := msg.Encode()
	if err != nil {
		t.Fatalf("encoding expected message: %v", err)
	}
	return data
}

func TestCursorAddOverWebSocket(t *testing.T) {
	_, sender, conn := newTestServer(t)

	payload := `{"type":"cursor","action":"add","sessionId":1,"x":0.5,"y":0.5,"xSpeed":0,"ySpeed":0,"motionAccel":0}`
	if err := conn.WriteMessage(websocket.TextMessage, []byte(payload)); err != nil {
		t.Fatalf("write: %v", err)
	}

	want := mustEncode(t, osc.NewMessage(bridge.CursorAddress,
		osc.String("set"), osc.Int(1),
		osc.Float(0.5), osc.Float(0.5),
		osc.Float(0), osc.Float(0), osc.Float(0)))
	if got := sender.next(t); !bytes.Equal(got, want) {
		t.Errorf("datagram = % x, want % x", got, want)
	}
}

func TestFrameNotification(t *testing.T) {
	_, sender, conn := newTestServer(t)

	if err := conn.WriteMessage(websocket.TextMessage, []byte(`{"type":"frame"}`)); err != nil {
		t.Fatalf("write: %v", err)
	}

	// Empty registries: exactly the three fseq messages.
	for _, addr := range []string{bridge.CursorAddress, bridge.ObjectAddress, bridge.BlobAddress} {
		want := mustEncode(t, osc.NewMessage(addr, osc.String("fseq"), osc.Int(0)))
		if got := sender.next(t); !bytes.Equal(got, want) {
			t.Errorf("datagram for %s = % x, want % x", addr, got, want)
		}
	}
	sender.expectNone(t)
}

func TestMalformedAndUnknownPayloadsDropped(t *testing.T) {
	_, sender, conn := newTestServer(t)

	for _, payload := range []string{
		`{not json`,
		`{"type":"pressure","action":"add","sessionId":1}`,
		`{"type":"cursor","action":"wiggle","sessionId":1}`,
	} {
		if err := conn.WriteMessage(websocket.TextMessage, []byte(payload)); err != nil {
			t.Fatalf("write: %v", err)
		}
	}
	sender.expectNone(t)

	// The connection survived all three; a valid event still flows.
	if err := conn.WriteMessage(websocket.TextMessage, []byte(`{"type":"frame"}`)); err != nil {
		t.Fatalf("write after bad payloads: %v", err)
	}
	sender.next(t)
}

func TestDisconnectTriggersTeardown(t *testing.T) {
	_, sender, conn := newTestServer(t)

	conn.Close()

	// Teardown: zero-id cursor alive, then a full (empty) frame.
	want := []osc.Message{
		osc.NewMessage(bridge.CursorAddress, osc.String("alive")),
		osc.NewMessage(bridge.CursorAddress, osc.String("fseq"), osc.Int(0)),
		osc.NewMessage(bridge.ObjectAddress, osc.String("fseq"), osc.Int(0)),
		osc.NewMessage(bridge.BlobAddress, osc.String("fseq"), osc.Int(0)),
	}
	for _, msg := range want {
		if got := sender.next(t); !bytes.Equal(got, mustEncode(t, msg)) {
			t.Errorf("teardown datagram = % x, want %s", got, msg.Addr)
		}
	}
}

func TestStatsEndpoint(t *testing.T) {
	ts, sender, conn := newTestServer(t)

	if err := conn.WriteMessage(websocket.TextMessage, []byte(`{"type":"blob","action":"add","sessionId":3,"width":0.1,"height":0.2,"area":0.02}`)); err != nil {
		t.Fatalf("write: %v", err)
	}
	sender.next(t) // wait for the set message, so the add has landed

	resp, err := http.Get(ts.URL + "/api/stats")
	if err != nil {
		t.Fatalf("GET /api/stats: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d, want 200", resp.StatusCode)
	}
	buf := new(bytes.Buffer)
	buf.ReadFrom(resp.Body)
	if !strings.Contains(buf.String(), `"activeBlobs":1`) {
		t.Errorf("stats body = %s, want activeBlobs 1", buf.String())
	}
}

func TestHealthEndpointUnavailable(t *testing.T) {
	ts, _, _ := newTestServer(t)

	resp, err := http.Get(ts.URL + "/api/health")
	if err != nil {
		t.Fatalf("GET /api/health: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusServiceUnavailable {
		t.Errorf("status = %d, want 503 when health is not configured", resp.StatusCode)
	}
}

func TestCheckOrigin(t *testing.T) {
	tests := []struct {
		name   string
		origin string
		host   string
		want   bool
	}{
		{"no origin", "", "example.com", true},
		{"same host", "http://example.com", "example.com", true},
		{"localhost", "http://localhost:3000", "example.com", true},
		{"loopback", "http://127.0.0.1:5173", "example.com", true},
		{"foreign", "http://evil.test", "example.com", false},
		{"garbage", "://", "example.com", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := httptest.NewRequest(http.MethodGet, "/ws", nil)
			r.Host = tt.host
			if tt.origin != "" {
				r.Header.Set("Origin", tt.origin)
			}
			if got := checkOrigin(r); got != tt.want {
				t.Errorf("checkOrigin(origin=%q) = %v, want %v", tt.origin, got, tt.want)
			}
		})
	}
}
