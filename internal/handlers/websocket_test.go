package handlers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"
	"time"

	"settingshub/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
)

// --- parseInterval unit tests ---

func TestParseInterval(t *testing.T) {
	h := NewHandler(&service.Service{}, nil, Options{})

	cases := []struct {
		name string
		u    string
		want time.Duration
	}{
		{"default_when_missing", "/ws/starfield", defaultInterval},
		{"interval_string_valid", "/ws/starfield?interval=200ms", 200 * time.Millisecond},
		{"interval_ms_valid", "/ws/starfield?interval_ms=150", 150 * time.Millisecond},
		{"interval_too_small", "/ws/starfield?interval=1ms", defaultInterval},
		{"interval_too_large", "/ws/starfield?interval=20s", defaultInterval},
		{"interval_ms_too_large", "/ws/starfield?interval_ms=20000", defaultInterval},
		{"interval_invalid_string", "/ws/starfield?interval=bogus", defaultInterval},
		{"interval_ms_invalid", "/ws/starfield?interval_ms=NaN", defaultInterval},
		{"both_present_interval_wins", "/ws/starfield?interval=500ms&interval_ms=150", 500 * time.Millisecond},
		{"both_present_invalid_interval_ms_used", "/ws/starfield?interval=bogus&interval_ms=250", 250 * time.Millisecond},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			w := httptest.NewRecorder()
			req := httptest.NewRequest(http.MethodGet, tc.u, nil)
			c, _ := gin.CreateTestContext(w)
			c.Request = req
			got := h.parseInterval(c)
			if got != tc.want {
				t.Fatalf("got %v, want %v for %s", got, tc.want, tc.u)
			}
		})
	}
}

// --- websocket integration test ---

func TestWebSocket_FrameStream_InitialAndPeriodic(t *testing.T) {
	s := &service.Service{Starfield: service.NewStarfieldService()}

	r := gin.New()
	h := NewHandler(s, nil, Options{})
	r.GET("/ws/starfield", h.wsStarfield)

	srv := httptest.NewServer(r)
	defer srv.Close()

	u, _ := url.Parse(srv.URL)
	u.Scheme = "ws"
	u.Path = "/ws/starfield"
	q := u.Query()
	q.Set("interval_ms", "20") // fast ticks for the test
	q.Set("width", "320")
	q.Set("height", "200")
	u.RawQuery = q.Encode()

	dialer := websocket.Dialer{HandshakeTimeout: 2 * time.Second}
	conn, _, err := dialer.Dial(u.String(), nil)
	if err != nil {
		t.Fatalf("dial error: %v", err)
	}
	defer conn.Close()

	type envelope struct {
		Type  string          `json:"type"`
		Data  json.RawMessage `json:"data"`
		Error string          `json:"error"`
	}

	// Read the initial frame.
	_ = conn.SetReadDeadline(time.Now().Add(1 * time.Second))
	var env envelope
	if err := conn.ReadJSON(&env); err != nil {
		t.Fatalf("read initial: %v", err)
	}
	if env.Type != "frame" || len(env.Data) == 0 {
		t.Fatalf("bad envelope: %+v", env)
	}
	var frame service.Frame
	if err := json.Unmarshal(env.Data, &frame); err != nil {
		t.Fatalf("unmarshal frame: %v", err)
	}
	if frame.Width != 320 || frame.Height != 200 {
		t.Fatalf("unexpected dimensions: %+v", frame)
	}
	if len(frame.Stars) == 0 {
		t.Fatalf("frame has no stars")
	}

	// Read a subsequent tick and check the field kept its population.
	_ = conn.SetReadDeadline(time.Now().Add(1 * time.Second))
	env = envelope{}
	if err := conn.ReadJSON(&env); err != nil {
		t.Fatalf("read second: %v", err)
	}
	if env.Type != "frame" {
		t.Fatalf("expected type=frame, got %+v", env)
	}
	var second service.Frame
	if err := json.Unmarshal(env.Data, &second); err != nil {
		t.Fatalf("unmarshal second frame: %v", err)
	}
	if len(second.Stars) != len(frame.Stars) {
		t.Fatalf("star count changed: %d -> %d", len(frame.Stars), len(second.Stars))
	}
}
