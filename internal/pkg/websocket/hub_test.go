package websocket

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func startHub(t *testing.T) *Hub {
	t.Helper()
	hub := NewHub(zerolog.Nop())
	ctx, cancel := context.WithCancel(context.Background())
	t.Cleanup(cancel)
	go hub.Run(ctx)
	return hub
}

func dial(t *testing.T, hub *Hub, studentID int64) *websocket.Conn {
	t.Helper()
	up := NewUpgrader(hub, nil, zerolog.Nop())
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_ = up.Serve(w, r, studentID)
	}))
	t.Cleanup(srv.Close)

	conn, _, err := websocket.DefaultDialer.Dial("ws"+strings.TrimPrefix(srv.URL, "http"), nil)
	require.NoError(t, err)
	t.Cleanup(func() { conn.Close() })

	require.Eventually(t, func() bool { return hub.ClientCount(studentID) > 0 }, time.Second, 10*time.Millisecond)
	return conn
}

func TestHubDeliversOnlyToRecipients(t *testing.T) {
	hub := startHub(t)
	alice := dial(t, hub, 1)
	bob := dial(t, hub, 2)

	push := Push{Type: PushTypeMessage, ConversationID: 9, SenderID: 1, Content: "hi", CreatedAt: time.Now().UTC()}
	require.NoError(t, hub.Publish(context.Background(), Delivery{RecipientIDs: []int64{2}, Push: push}))

	_ = bob.SetReadDeadline(time.Now().Add(2 * time.Second))
	_, data, err := bob.ReadMessage()
	require.NoError(t, err)

	var got Push
	require.NoError(t, json.Unmarshal(data, &got))
	assert.Equal(t, "message", got.Type)
	assert.Equal(t, int64(9), got.ConversationID)
	assert.Equal(t, "hi", got.Content)

	_ = alice.SetReadDeadline(time.Now().Add(100 * time.Millisecond))
	_, _, err = alice.ReadMessage()
	assert.Error(t, err, "sender is not a recipient")
}

func TestHubUnregistersOnClose(t *testing.T) {
	hub := startHub(t)
	conn := dial(t, hub, 5)
	require.Equal(t, 1, hub.ClientCount(5))

	require.NoError(t, conn.Close())
	assert.Eventually(t, func() bool { return hub.ClientCount(5) == 0 }, 2*time.Second, 10*time.Millisecond)
}

func TestHubPublishHonoursContext(t *testing.T) {
	hub := NewHub(zerolog.Nop())
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	for i := 0; i < cap(hub.deliver); i++ {
		hub.deliver <- Delivery{}
	}
	assert.ErrorIs(t, hub.Publish(ctx, Delivery{}), context.Canceled)
}
