package arcade

import (
	"encoding/json"
	"errors"
	"sync"
	"time"

	"github.com/gorilla/websocket"
	"github.com/minaorangina/arcade/protocol"
)

const (
	// Time allowed to write a message to the peer.
	writeWait = 10 * time.Second

	// Time allowed to read the next pong message from the peer.
	pongWait = 60 * time.Second

	// Send pings to peer with this period. Must be less than pongWait.
	pingPeriod = (pongWait * 9) / 10

	// Maximum message size allowed from peer.
	maxMessageSize = 4096

	// Pending messages allowed before a client is dropped. Snapshots
	// coalesce, so only replies and errors count towards it.
	sendBuffer = 64
)

var (
	ErrClientClosed   = errors.New("client is closed")
	ErrClientBackedUp = errors.New("client is not keeping up")
)

// Client is a connection a hub fans its messages out to
type Client interface {
	ID() string
	Send(msg OutboundMessage) error
	Close()
}

// WSClient is a visitor's browser, connected over a websocket
type WSClient struct {
	id   string
	hub  *Hub
	conn *websocket.Conn

	mu      sync.Mutex
	pending []outbound
	closed  bool
	wake    chan struct{}
	done    chan struct{}
}

type outbound struct {
	snapshot bool
	data     []byte
}

// NewWSClient registers a websocket connection with a hub and starts
// pumping messages both ways
func NewWSClient(hub *Hub, conn *websocket.Conn) (*WSClient, error) {
	c := newWSClient(hub, conn)

	go c.writePump()
	if err := hub.Register(c); err != nil {
		c.Close()
		return nil, err
	}
	go c.readPump()

	return c, nil
}

func newWSClient(hub *Hub, conn *websocket.Conn) *WSClient {
	return &WSClient{
		id:   NewID(),
		hub:  hub,
		conn: conn,
		wake: make(chan struct{}, 1),
		done: make(chan struct{}),
	}
}

func (c *WSClient) ID() string {
	return c.id
}

// Send queues msg for the write pump. A snapshot replaces a snapshot that
// has not been written yet, so a slow reader only ever gets the latest state.
func (c *WSClient) Send(msg OutboundMessage) error {
	data, err := json.Marshal(msg)
	if err != nil {
		return err
	}
	out := outbound{snapshot: msg.Command == protocol.Snapshot, data: data}

	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed {
		return ErrClientClosed
	}

	if n := len(c.pending); out.snapshot && n > 0 && c.pending[n-1].snapshot {
		c.pending[n-1] = out
	} else {
		if n >= sendBuffer {
			return ErrClientBackedUp
		}
		c.pending = append(c.pending, out)
	}

	select {
	case c.wake <- struct{}{}:
	default:
	}
	return nil
}

// Close stops the write pump once it has flushed, which closes the
// connection
func (c *WSClient) Close() {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed {
		return
	}
	c.closed = true
	close(c.done)
}

// take empties the queue
func (c *WSClient) take() []outbound {
	c.mu.Lock()
	defer c.mu.Unlock()
	out := c.pending
	c.pending = nil
	return out
}

func (c *WSClient) readPump() {
	defer func() {
		c.hub.Unregister(c.id)
		c.Close()
	}()

	c.conn.SetReadLimit(maxMessageSize)
	c.conn.SetReadDeadline(time.Now().Add(pongWait))
	c.conn.SetPongHandler(func(string) error {
		c.conn.SetReadDeadline(time.Now().Add(pongWait))
		return nil
	})

	for {
		_, data, err := c.conn.ReadMessage()
		if err != nil {
			return
		}

		var msg protocol.InboundMessage
		if err := json.Unmarshal(data, &msg); err != nil {
			c.Send(buildErrorMessage(c.hub.ID(), err))
			continue
		}
		c.hub.Receive(c.id, msg)
	}
}

func (c *WSClient) writePump() {
	ticker := time.NewTicker(pingPeriod)

	defer func() {
		ticker.Stop()
		c.conn.Close()
	}()

	for {
		select {
		case <-c.wake:
			if err := c.flush(); err != nil {
				return
			}

		case <-c.done:
			if err := c.flush(); err != nil {
				return
			}
			c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			c.conn.WriteMessage(websocket.CloseMessage, []byte{})
			return

		case <-ticker.C:
			c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}

func (c *WSClient) flush() error {
	for _, out := range c.take() {
		c.conn.SetWriteDeadline(time.Now().Add(writeWait))

		w, err := c.conn.NextWriter(websocket.TextMessage)
		if err != nil {
			return err
		}
		w.Write(out.data)
		if err := w.Close(); err != nil {
			return err
		}
	}
	return nil
}
