package command

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/boardlink/core/internal/realtime"
	"github.com/boardlink/core/internal/store"
	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

const ownerToken = "owner-jwt"

func newDeviceBackend(t *testing.T) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		bearer := strings.TrimPrefix(r.Header.Get("Authorization"), "Bearer ")
		rows := []map[string]interface{}{}
		if bearer == ownerToken {
			rows = append(rows, map[string]interface{}{"id": "dev-1", "name": "Board", "owner_id": "user-a"})
		}
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(rows)
	}))
	t.Cleanup(srv.Close)
	return srv
}

func newRelay(t *testing.T, payloads chan map[string]interface{}) string {
	t.Helper()
	upgrader := websocket.Upgrader{CheckOrigin: func(*http.Request) bool { return true }}
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		conn, err := upgrader.Upgrade(w, r, nil)
		if err != nil {
			return
		}
		defer conn.Close()
		for {
			var f struct {
				Event   string                 `json:"event"`
				Payload map[string]interface{} `json:"payload"`
			}
			conn.SetReadDeadline(time.Now().Add(3 * time.Second))
			if err := conn.ReadJSON(&f); err != nil {
				return
			}
			if f.Event == "broadcast" {
				payloads <- f.Payload
			}
		}
	}))
	t.Cleanup(srv.Close)
	return "ws" + strings.TrimPrefix(srv.URL, "http")
}

func TestSendPingEnvelopeShape(t *testing.T) {
	backend := newDeviceBackend(t)
	payloads := make(chan map[string]interface{}, 1)
	relayURL := newRelay(t, payloads)

	st := store.New(backend.URL, "anon-key", "service-key", zap.NewNop())
	pub := realtime.NewPublisher(relayURL, "anon-key", "1.0.0", time.Second, zap.NewNop())
	svc := NewService(st, pub, zap.NewNop())

	receipt, err := svc.Send(context.Background(), st.Caller(ownerToken), "dev-1", "PING", nil)
	require.NoError(t, err)
	assert.NotEmpty(t, receipt)

	select {
	case payload := <-payloads:
		assert.Equal(t, map[string]interface{}{"type": "PING", "payload": map[string]interface{}{}}, payload)
	case <-time.After(2 * time.Second):
		t.Fatal("command never reached the relay")
	}
}

func TestSendForbiddenDoesNotPublish(t *testing.T) {
	backend := newDeviceBackend(t)
	payloads := make(chan map[string]interface{}, 1)
	relayURL := newRelay(t, payloads)

	st := store.New(backend.URL, "anon-key", "service-key", zap.NewNop())
	pub := realtime.NewPublisher(relayURL, "anon-key", "1.0.0", time.Second, zap.NewNop())
	svc := NewService(st, pub, zap.NewNop())

	_, err := svc.Send(context.Background(), st.Caller("stranger-jwt"), "dev-1", "PING", nil)
	assert.ErrorIs(t, err, store.ErrNotOwned)
	assert.Empty(t, payloads)
}

func TestSendFailsWhenRelayUnreachable(t *testing.T) {
	backend := newDeviceBackend(t)
	dead := httptest.NewServer(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {}))
	dead.Close()

	st := store.New(backend.URL, "anon-key", "service-key", zap.NewNop())
	pub := realtime.NewPublisher("ws"+strings.TrimPrefix(dead.URL, "http"), "anon-key", "1.0.0", 500*time.Millisecond, zap.NewNop())
	svc := NewService(st, pub, zap.NewNop())

	_, err := svc.Send(context.Background(), st.Caller(ownerToken), "dev-1", "PING", nil)
	assert.Error(t, err, "a command has no durable fallback, so a failed broadcast fails the call")
}
