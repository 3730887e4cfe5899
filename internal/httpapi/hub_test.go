package httpapi

import (
	"encoding/json"
	"io"
	"log/slog"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWebsocketEventDelivery(t *testing.T) {
	srv, _ := newTestServer(t)
	ts := httptest.NewServer(srv.Router())
	defer ts.Close()

	url := "ws" + strings.TrimPrefix(ts.URL, "http") + "/ws"
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	require.NoError(t, err)
	defer conn.Close()

	// Give the hub loop a beat to register the client before publishing.
	time.Sleep(100 * time.Millisecond)
	srv.hub.Publish("player_up", map[string]string{"player": "Streamed Name"})

	require.NoError(t, conn.SetReadDeadline(time.Now().Add(2*time.Second)))
	_, msg, err := conn.ReadMessage()
	require.NoError(t, err)

	var ev Event
	require.NoError(t, json.Unmarshal(msg, &ev))
	assert.Equal(t, "player_up", ev.Type)

	payload, ok := ev.Payload.(map[string]interface{})
	require.True(t, ok)
	assert.Equal(t, "Streamed Name", payload["player"])
}

func TestPublish_NeverBlocks(t *testing.T) {
	// A hub whose loop was never started: the broadcast queue fills up
	// and further publishes must drop instead of stalling the caller.
	hub := NewHub(slog.New(slog.NewTextHandler(io.Discard, nil)))
	done := make(chan struct{})
	go func() {
		defer close(done)
		for i := 0; i < 1000; i++ {
			hub.Publish("bid_placed", map[string]int{"n": i})
		}
	}()

	select {
	case <-done:
	case <-time.After(5 * time.Second):
		t.Fatal("Publish blocked on a full broadcast queue")
	}
}

func TestHubClose_StopsRun(t *testing.T) {
	hub := NewHub(slog.New(slog.NewTextHandler(io.Discard, nil)))
	stopped := make(chan struct{})
	go func() {
		hub.Run()
		close(stopped)
	}()

	hub.Close()
	hub.Close() // safe to repeat

	select {
	case <-stopped:
	case <-time.After(time.Second):
		t.Fatal("Run did not return after Close")
	}
}

func TestServerClose_DisconnectsClients(t *testing.T) {
	srv, _ := newTestServer(t)
	ts := httptest.NewServer(srv.Router())
	defer ts.Close()

	url := "ws" + strings.TrimPrefix(ts.URL, "http") + "/ws"
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	require.NoError(t, err)
	defer conn.Close()

	time.Sleep(100 * time.Millisecond)
	srv.Close()

	require.NoError(t, conn.SetReadDeadline(time.Now().Add(2*time.Second)))
	if _, _, err := conn.ReadMessage(); err == nil {
		t.Fatal("connection still open after server close")
	}
}
