package telemetry

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/Demilade01/starstrike/internal/game"
	"github.com/gorilla/websocket"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func startHub(t *testing.T) (*Hub, *httptest.Server) {
	t.Helper()
	ctx, cancel := context.WithCancel(context.Background())
	hub := NewHub(zerolog.Nop())
	go hub.Run(ctx)
	srv := httptest.NewServer(Handler(hub))
	t.Cleanup(func() {
		srv.Close()
		cancel()
	})
	return hub, srv
}

func dial(t *testing.T, srv *httptest.Server) *websocket.Conn {
	t.Helper()
	url := "ws" + strings.TrimPrefix(srv.URL, "http") + "/ws"
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	require.NoError(t, err)
	t.Cleanup(func() { conn.Close() })
	return conn
}

func TestHub_BroadcastsSnapshots(t *testing.T) {
	hub, srv := startHub(t)
	a := dial(t, srv)
	b := dial(t, srv)
	require.Eventually(t, func() bool { return hub.Clients() == 2 }, time.Second, 5*time.Millisecond)

	snap := game.Snapshot{Tick: 42, Mined: 3, Quota: 5}
	ok, err := hub.Publish("snapshot", snap)
	require.NoError(t, err)
	require.True(t, ok)

	for _, conn := range []*websocket.Conn{a, b} {
		require.NoError(t, conn.SetReadDeadline(time.Now().Add(2*time.Second)))
		_, data, err := conn.ReadMessage()
		require.NoError(t, err)

		var msg struct {
			Type    string        `json:"type"`
			Payload game.Snapshot `json:"payload"`
			Sender  string        `json:"sender"`
		}
		require.NoError(t, json.Unmarshal(data, &msg))
		assert.Equal(t, "snapshot", msg.Type)
		assert.Equal(t, "session", msg.Sender)
		assert.Equal(t, uint64(42), msg.Payload.Tick)
		assert.Equal(t, 3, msg.Payload.Mined)
	}
}

func TestHub_ViewerDisconnect(t *testing.T) {
	hub, srv := startHub(t)
	conn := dial(t, srv)
	require.Eventually(t, func() bool { return hub.Clients() == 1 }, time.Second, 5*time.Millisecond)

	require.NoError(t, conn.Close())

	assert.Eventually(t, func() bool { return hub.Clients() == 0 }, time.Second, 5*time.Millisecond)
}

func TestHub_PublishNeverBlocks(t *testing.T) {
	hub := NewHub(zerolog.Nop())

	sent := 0
	for range 20 {
		ok, err := hub.Publish("snapshot", game.Snapshot{})
		require.NoError(t, err)
		if ok {
			sent++
		}
	}

	assert.Equal(t, 16, sent)
	assert.Equal(t, uint64(4), hub.Dropped())
}

func TestHub_PublishEncodeError(t *testing.T) {
	hub := NewHub(zerolog.Nop())

	_, err := hub.Publish("bad", func() {})

	assert.ErrorContains(t, err, "encode bad")
}

func TestHandler_Healthz(t *testing.T) {
	_, srv := startHub(t)

	resp, err := http.Get(srv.URL + "/healthz")
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusOK, resp.StatusCode)
}
