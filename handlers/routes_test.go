package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"

	"antworld/messages"
	"antworld/models"
	"antworld/services"
)

func newTestAPI(t *testing.T) (*services.Simulation, http.Handler) {
	t.Helper()
	layout := models.EmptyLayout("test", 10, 10)
	sim, err := services.NewSimulationFromLayout(layout)
	if err != nil {
		t.Fatalf("NewSimulationFromLayout failed: %v", err)
	}
	if err := sim.World().Set(3, 4, models.NewCherry(3, 4)); err != nil {
		t.Fatalf("Set failed: %v", err)
	}
	if err := sim.World().Set(5, 5, models.NewSand(5, 5)); err != nil {
		t.Fatalf("Set failed: %v", err)
	}
	return sim, NewRouter(context.Background(), sim, NewClientManager())
}

func doRequest(t *testing.T, h http.Handler, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func TestHTTPInteract(t *testing.T) {
	sim, h := newTestAPI(t)

	rec := doRequest(t, h, http.MethodPost, "/api/interact", `{"x": 3, "y": 4}`)
	if rec.Code != http.StatusOK {
		t.Fatalf("Expected 200, got %d: %s", rec.Code, rec.Body.String())
	}

	var event models.Event
	if err := json.Unmarshal(rec.Body.Bytes(), &event); err != nil {
		t.Fatalf("failed to decode event: %v", err)
	}
	if event.Kind != models.KindCherry || !event.Moved || event.Ant != (models.Coord{X: 3, Y: 4}) {
		t.Errorf("Unexpected event %+v", event)
	}

	e, _ := sim.World().At(3, 4)
	if !e.IsEmpty() {
		t.Errorf("Expected (3, 4) to be empty, got %s", e.Kind)
	}
}

func TestHTTPLook(t *testing.T) {
	sim, h := newTestAPI(t)
	before := sim.State()

	rec := doRequest(t, h, http.MethodPost, "/api/look", `{"x": 5, "y": 5}`)
	if rec.Code != http.StatusOK {
		t.Fatalf("Expected 200, got %d", rec.Code)
	}

	var event models.Event
	json.Unmarshal(rec.Body.Bytes(), &event)
	if event.Action != models.ActionLook || event.Kind != models.KindSand || event.Description == "" {
		t.Errorf("Unexpected event %+v", event)
	}
	if after := sim.State(); after.Ant != before.Ant || after.Rows[5] != before.Rows[5] {
		t.Error("Look changed the world")
	}
}

func TestHTTPErrors(t *testing.T) {
	_, h := newTestAPI(t)

	tests := []struct {
		name   string
		method string
		path   string
		body   string
		status int
		code   string
	}{
		{"look out of bounds", http.MethodPost, "/api/look", `{"x": -1, "y": 0}`, http.StatusBadRequest, messages.CodeOutOfBounds},
		{"interact out of bounds", http.MethodPost, "/api/interact", `{"x": 10, "y": 0}`, http.StatusBadRequest, messages.CodeOutOfBounds},
		{"cell out of bounds", http.MethodGet, "/api/map/0/10", "", http.StatusBadRequest, messages.CodeOutOfBounds},
		{"cell bad coordinate", http.MethodGet, "/api/map/a/1", "", http.StatusBadRequest, messages.CodeBadRequest},
		{"malformed body", http.MethodPost, "/api/look", `{`, http.StatusBadRequest, messages.CodeBadRequest},
		{"unknown command", http.MethodPost, "/api/command", `{"text": "sing"}`, http.StatusBadRequest, messages.CodeUnknownIntent},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := doRequest(t, h, tt.method, tt.path, tt.body)
			if rec.Code != tt.status {
				t.Fatalf("Expected %d, got %d", tt.status, rec.Code)
			}
			var errMsg messages.ErrorMessage
			if err := json.Unmarshal(rec.Body.Bytes(), &errMsg); err != nil {
				t.Fatalf("failed to decode error: %v", err)
			}
			if errMsg.Code != tt.code {
				t.Errorf("Expected code %s, got %s", tt.code, errMsg.Code)
			}
		})
	}
}

func TestHTTPReads(t *testing.T) {
	_, h := newTestAPI(t)

	rec := doRequest(t, h, http.MethodGet, "/api/map/3/4", "")
	var e models.Entity
	json.Unmarshal(rec.Body.Bytes(), &e)
	if rec.Code != http.StatusOK || e.Kind != models.KindCherry {
		t.Errorf("Expected cherry, got %d %+v", rec.Code, e)
	}

	rec = doRequest(t, h, http.MethodGet, "/api/map", "")
	var state models.WorldState
	json.Unmarshal(rec.Body.Bytes(), &state)
	if state.Width != 10 || state.Height != 10 || len(state.Rows) != 10 {
		t.Errorf("Unexpected state %+v", state)
	}

	rec = doRequest(t, h, http.MethodGet, "/api/health", "")
	if rec.Code != http.StatusOK {
		t.Errorf("Expected healthy, got %d", rec.Code)
	}
}

func TestHTTPCommand(t *testing.T) {
	sim, h := newTestAPI(t)

	rec := doRequest(t, h, http.MethodPost, "/api/command", `{"text": "go east"}`)
	if rec.Code != http.StatusOK {
		t.Fatalf("Expected 200, got %d: %s", rec.Code, rec.Body.String())
	}
	if pos := sim.Ant().Position(); pos != (models.Coord{X: 1, Y: 0}) {
		t.Errorf("Expected ant at (1, 0), got %s", pos)
	}
}

type envelope struct {
	Type    messages.MessageType `json:"type"`
	Payload json.RawMessage      `json:"payload"`
}

func readEnvelope(t *testing.T, conn *websocket.Conn) envelope {
	t.Helper()
	conn.SetReadDeadline(time.Now().Add(5 * time.Second))
	var env envelope
	if err := conn.ReadJSON(&env); err != nil {
		t.Fatalf("failed to read message: %v", err)
	}
	return env
}

func TestWebSocketRoundTrip(t *testing.T) {
	layout := models.EmptyLayout("ws", 10, 10)
	sim, err := services.NewSimulationFromLayout(layout)
	if err != nil {
		t.Fatalf("NewSimulationFromLayout failed: %v", err)
	}
	sim.World().Set(3, 4, models.NewCherry(3, 4))

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	cm := NewClientManager()
	events, unsubscribe := sim.Subscribe()
	defer unsubscribe()
	go cm.Run(ctx, events)

	srv := httptest.NewServer(NewRouter(ctx, sim, cm))
	defer srv.Close()

	url := "ws" + strings.TrimPrefix(srv.URL, "http") + "/ws"
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	if err != nil {
		t.Fatalf("failed to dial: %v", err)
	}
	defer conn.Close()

	if env := readEnvelope(t, conn); env.Type != messages.MessageTypeState {
		t.Fatalf("Expected initial state, got %s", env.Type)
	}

	conn.WriteJSON(map[string]interface{}{
		"type":    "interact",
		"payload": map[string]int{"x": 3, "y": 4},
	})
	env := readEnvelope(t, conn)
	if env.Type != messages.MessageTypeEvent {
		t.Fatalf("Expected event, got %s: %s", env.Type, env.Payload)
	}
	var eventMsg messages.EventMessage
	if err := json.Unmarshal(env.Payload, &eventMsg); err != nil {
		t.Fatalf("failed to decode event: %v", err)
	}
	if eventMsg.Event.Kind != models.KindCherry || eventMsg.Event.Ant != (models.Coord{X: 3, Y: 4}) {
		t.Errorf("Unexpected event %+v", eventMsg.Event)
	}

	conn.WriteJSON(map[string]interface{}{
		"type":    "look",
		"payload": map[string]int{"x": -1, "y": 0},
	})
	env = readEnvelope(t, conn)
	var errMsg messages.ErrorMessage
	json.Unmarshal(env.Payload, &errMsg)
	if env.Type != messages.MessageTypeError || errMsg.Code != messages.CodeOutOfBounds {
		t.Errorf("Expected out of bounds error, got %s %+v", env.Type, errMsg)
	}

	conn.WriteJSON(map[string]interface{}{"type": "dance"})
	env = readEnvelope(t, conn)
	json.Unmarshal(env.Payload, &errMsg)
	if errMsg.Code != messages.CodeUnknownType {
		t.Errorf("Expected unknown type error, got %+v", errMsg)
	}
}
