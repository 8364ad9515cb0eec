package terminal

import (
	"bufio"
	"context"
	"errors"
	"io"

	"github.com/minaorangina/arcade"
	"github.com/minaorangina/arcade/engine"
	"github.com/minaorangina/arcade/protocol"
	"github.com/minaorangina/arcade/registry"
	"github.com/minaorangina/arcade/sched"
)

// Session is one visitor at the prompt, playing their own arcade
type Session struct {
	hub *arcade.Hub
	reg registry.Registry
	r   *Renderer
}

func NewSession(hub *arcade.Hub, reg registry.Registry, r *Renderer) *Session {
	return &Session{hub: hub, reg: reg, r: r}
}

// Run reads commands until quit, end of input or ctx is done
func (s *Session) Run(ctx context.Context, in io.Reader) error {
	notices := &noticeClient{id: arcade.NewID(), r: s.r}
	if err := s.hub.Register(notices); err != nil {
		return err
	}
	defer s.hub.Unregister(notices.ID())

	s.r.Welcome()
	s.r.Prompt()

	scanner := bufio.NewScanner(in)
	for scanner.Scan() {
		if err := ctx.Err(); err != nil {
			return err
		}

		quit, err := s.Exec(ctx, scanner.Text())
		if quit {
			return err
		}
		s.r.Prompt()
	}
	return scanner.Err()
}

// Exec runs a single line. Only a stopped arcade ends the session with an
// error; everything else is reported at the prompt.
func (s *Session) Exec(ctx context.Context, line string) (bool, error) {
	cmd, err := Parse(line)
	if errors.Is(err, ErrEmptyCommand) {
		return false, nil
	}
	if err != nil {
		s.r.Error(err)
		return false, nil
	}

	switch {
	case cmd.Quit:
		return true, nil
	case cmd.Help:
		s.r.Help()
		return false, nil
	}

	reply, err := s.hub.Do(ctx, cmd.Msg)
	if errors.Is(err, sched.ErrLoopStopped) {
		return true, err
	}
	if err != nil {
		s.r.Error(err)
		return false, nil
	}

	switch {
	case cmd.Msg.Command == protocol.Departments:
		s.r.Departments(reply.Departments, s.reg)
	case reply.Snapshot == nil:
	case reply.Snapshot.Screen == engine.Win && cmd.Msg.Command != protocol.Snapshot:
		// announced by the notice client
	default:
		s.r.Snapshot(*reply.Snapshot)
	}
	return false, nil
}

// noticeClient prints what happens between commands, such as a win that
// lands on a timer
type noticeClient struct {
	id string
	r  *Renderer
}

func (c *noticeClient) ID() string {
	return c.id
}

func (c *noticeClient) Send(msg arcade.OutboundMessage) error {
	if msg.Command == protocol.Won && msg.Snapshot != nil {
		c.r.write("\n")
		c.r.Snapshot(*msg.Snapshot)
	}
	return nil
}

func (c *noticeClient) Close() {}
