package arcade

import (
	"encoding/json"
	"errors"
	"net"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"
	"github.com/minaorangina/arcade/engine"
	"github.com/minaorangina/arcade/protocol"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func dialHub(t *testing.T, h *Hub) *websocket.Conn {
	t.Helper()

	upgrader := websocket.Upgrader{}
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		conn, err := upgrader.Upgrade(w, r, nil)
		if err != nil {
			return
		}
		if _, err := NewWSClient(h, conn); err != nil {
			conn.Close()
		}
	}))
	t.Cleanup(server.Close)

	url := "ws" + strings.TrimPrefix(server.URL, "http")
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	require.NoError(t, err)
	t.Cleanup(func() { conn.Close() })
	return conn
}

// readUntil reads messages until one matches
func readUntil(t *testing.T, conn *websocket.Conn, match func(OutboundMessage) bool) OutboundMessage {
	t.Helper()

	conn.SetReadDeadline(time.Now().Add(2 * time.Second))
	for {
		var msg OutboundMessage
		require.NoError(t, conn.ReadJSON(&msg))
		if match(msg) {
			return msg
		}
	}
}

func TestWSClientQueue(t *testing.T) {
	snapshotAt := func(dept string) OutboundMessage {
		return buildSnapshotMessage("arcade-id", engine.Snapshot{DepartmentID: dept})
	}
	decode := func(t *testing.T, out outbound) OutboundMessage {
		t.Helper()
		var msg OutboundMessage
		require.NoError(t, json.Unmarshal(out.data, &msg))
		return msg
	}

	t.Run("a stalled reader keeps only the latest snapshot", func(t *testing.T) {
		c := newWSClient(nil, nil)

		for i := 0; i < 10*sendBuffer; i++ {
			require.NoError(t, c.Send(snapshotAt("hr")))
		}
		require.NoError(t, c.Send(snapshotAt("pm")))

		pending := c.take()
		require.Len(t, pending, 1)
		assert.Equal(t, "pm", decode(t, pending[0]).Snapshot.DepartmentID)
	})

	t.Run("other messages keep their place", func(t *testing.T) {
		c := newWSClient(nil, nil)

		require.NoError(t, c.Send(snapshotAt("hr")))
		require.NoError(t, c.Send(OutboundMessage{ArcadeID: "arcade-id", Command: protocol.Error, Error: "nope"}))
		require.NoError(t, c.Send(snapshotAt("pm")))
		require.NoError(t, c.Send(snapshotAt("it")))

		pending := c.take()
		require.Len(t, pending, 3)
		assert.Equal(t, protocol.Snapshot, decode(t, pending[0]).Command)
		assert.Equal(t, protocol.Error, decode(t, pending[1]).Command)
		assert.Equal(t, "it", decode(t, pending[2]).Snapshot.DepartmentID)
	})

	t.Run("backs up on replies that cannot coalesce", func(t *testing.T) {
		c := newWSClient(nil, nil)

		for i := 0; i < sendBuffer; i++ {
			require.NoError(t, c.Send(OutboundMessage{Command: protocol.Error}))
		}
		assert.ErrorIs(t, c.Send(OutboundMessage{Command: protocol.Error}), ErrClientBackedUp)
	})

	t.Run("refuses messages once closed", func(t *testing.T) {
		c := newWSClient(nil, nil)
		c.Close()
		c.Close()
		assert.ErrorIs(t, c.Send(snapshotAt("hr")), ErrClientClosed)
	})
}

func TestWSClient(t *testing.T) {
	t.Run("receives the snapshot on connect", func(t *testing.T) {
		h := newTestHub(t, nil)
		conn := dialHub(t, h)

		msg := readUntil(t, conn, func(m OutboundMessage) bool { return m.Command == protocol.Snapshot })
		assert.Equal(t, "arcade-id", msg.ArcadeID)
		assert.Equal(t, engine.Unmounted, msg.Snapshot.Screen)
	})

	t.Run("plays over the socket", func(t *testing.T) {
		h := newTestHub(t, nil)
		conn := dialHub(t, h)

		for _, msg := range []protocol.InboundMessage{
			{Command: protocol.Open, Department: "hr"},
			{Command: protocol.Start},
			guessLeader(),
		} {
			require.NoError(t, conn.WriteJSON(msg))
		}

		msg := readUntil(t, conn, func(m OutboundMessage) bool { return m.Command == protocol.Won })
		assert.Equal(t, "hr", msg.Snapshot.DepartmentID)
	})

	t.Run("reports messages it cannot decode", func(t *testing.T) {
		h := newTestHub(t, nil)
		conn := dialHub(t, h)

		require.NoError(t, conn.WriteMessage(websocket.TextMessage, []byte(`{"command":"Juggle"}`)))

		msg := readUntil(t, conn, func(m OutboundMessage) bool { return m.Command == protocol.Error })
		assert.Contains(t, msg.Error, "Juggle")
	})

	t.Run("closing the hub closes the socket", func(t *testing.T) {
		h := newTestHub(t, nil)
		conn := dialHub(t, h)
		readUntil(t, conn, func(m OutboundMessage) bool { return m.Command == protocol.Snapshot })

		h.Close()

		conn.SetReadDeadline(time.Now().Add(2 * time.Second))
		var err error
		for err == nil {
			_, _, err = conn.ReadMessage()
		}
		var netErr net.Error
		if errors.As(err, &netErr) {
			assert.False(t, netErr.Timeout(), "socket was left open")
		}
	})
}
