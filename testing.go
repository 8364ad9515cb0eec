package arcade

import (
	"sync"

	"github.com/minaorangina/arcade/protocol"
)

// SpyClient records every message a hub sends it
type SpyClient struct {
	id string

	mu       sync.Mutex
	messages []OutboundMessage
	closed   bool
	// Fail makes Send return an error
	Fail error
}

func NewSpyClient(id string) *SpyClient {
	return &SpyClient{id: id}
}

func (c *SpyClient) ID() string {
	return c.id
}

func (c *SpyClient) Send(msg OutboundMessage) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.Fail != nil {
		return c.Fail
	}
	c.messages = append(c.messages, msg)
	return nil
}

func (c *SpyClient) Close() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.closed = true
}

func (c *SpyClient) Closed() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.closed
}

func (c *SpyClient) Messages() []OutboundMessage {
	c.mu.Lock()
	defer c.mu.Unlock()
	return append([]OutboundMessage(nil), c.messages...)
}

// Last returns the most recent message with the given command
func (c *SpyClient) Last(cmd protocol.Cmd) (OutboundMessage, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	for i := len(c.messages) - 1; i >= 0; i-- {
		if c.messages[i].Command == cmd {
			return c.messages[i], true
		}
	}
	return OutboundMessage{}, false
}
