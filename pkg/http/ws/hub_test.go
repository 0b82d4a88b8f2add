package ws

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newEchoServer(t *testing.T, hub *Hub) *httptest.Server {
	t.Helper()
	upgrader := websocket.Upgrader{CheckOrigin: func(*http.Request) bool { return true }}
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		raw, err := upgrader.Upgrade(w, r, nil)
		if err != nil {
			return
		}
		conn := NewConnection(raw, zerolog.Nop())
		id := hub.Register(conn)
		go conn.WritePump()
		conn.ReadPump(func(msg Message) error {
			if msg.Type == TypePing {
				return hub.SendTo(id, Message{Type: TypePong, RequestID: msg.RequestID})
			}
			return nil
		})
		hub.Unregister(id)
	}))
	t.Cleanup(srv.Close)
	return srv
}

func dial(t *testing.T, srv *httptest.Server) *websocket.Conn {
	t.Helper()
	url := "ws" + strings.TrimPrefix(srv.URL, "http")
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	require.NoError(t, err)
	t.Cleanup(func() { conn.Close() })
	return conn
}

func readMessage(t *testing.T, conn *websocket.Conn) Message {
	t.Helper()
	require.NoError(t, conn.SetReadDeadline(time.Now().Add(2*time.Second)))
	var msg Message
	require.NoError(t, conn.ReadJSON(&msg))
	return msg
}

func TestHubPingPong(t *testing.T) {
	hub := NewHub(zerolog.Nop())
	conn := dial(t, newEchoServer(t, hub))

	require.NoError(t, conn.WriteJSON(Message{Type: TypePing, RequestID: "r1"}))
	msg := readMessage(t, conn)
	assert.Equal(t, TypePong, msg.Type)
	assert.Equal(t, "r1", msg.RequestID)
}

func TestHubBroadcastAll(t *testing.T) {
	hub := NewHub(zerolog.Nop())
	srv := newEchoServer(t, hub)
	a := dial(t, srv)
	b := dial(t, srv)
	require.Eventually(t, func() bool { return hub.Count() == 2 }, 2*time.Second, 10*time.Millisecond)

	msg, err := NewMessage(TypeError, ErrorPayload{Code: "x", Message: "boom"})
	require.NoError(t, err)
	require.NoError(t, hub.BroadcastAll(msg))

	for _, conn := range []*websocket.Conn{a, b} {
		got := readMessage(t, conn)
		assert.Equal(t, TypeError, got.Type)
		var payload ErrorPayload
		require.NoError(t, json.Unmarshal(got.Payload, &payload))
		assert.Equal(t, "boom", payload.Message)
	}
}

func TestHubUnregisterOnDisconnect(t *testing.T) {
	hub := NewHub(zerolog.Nop())
	conn := dial(t, newEchoServer(t, hub))
	require.Eventually(t, func() bool { return hub.Count() == 1 }, 2*time.Second, 10*time.Millisecond)

	conn.Close()
	require.Eventually(t, func() bool { return hub.Count() == 0 }, 2*time.Second, 10*time.Millisecond)
}

func TestHubSendToUnknownConnection(t *testing.T) {
	hub := NewHub(zerolog.Nop())
	err := hub.SendTo(uuid.New(), Message{Type: TypePong})
	assert.ErrorIs(t, err, ErrConnectionNotFound)
}

func TestNewMessage(t *testing.T) {
	msg, err := NewMessage(TypeChooseVariant, ChooseVariantPayload{Variant: "basic"})
	require.NoError(t, err)
	assert.JSONEq(t, `{"variant":"basic"}`, string(msg.Payload))

	msg, err = NewMessage(TypeSubmit, nil)
	require.NoError(t, err)
	assert.Empty(t, msg.Payload)

	_, err = NewMessage(TypeSnapshot, make(chan int))
	assert.Error(t, err)
}
