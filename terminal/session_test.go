package terminal

import (
	"bytes"
	"context"
	"io"
	"log"
	"strings"
	"testing"

	"github.com/minaorangina/arcade"
	"github.com/minaorangina/arcade/game"
	"github.com/minaorangina/arcade/registry"
	"github.com/minaorangina/arcade/sched"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestSession(t *testing.T) (*Session, *arcade.Hub, *bytes.Buffer) {
	t.Helper()

	hub, err := arcade.NewHub(arcade.HubOpts{
		Rand:   &game.ScriptedRand{},
		Logger: log.New(io.Discard, "", 0),
	})
	require.NoError(t, err)
	t.Cleanup(hub.Close)

	r, buffer := newPlainRenderer()
	return NewSession(hub, registry.Default(), r), hub, buffer
}

func TestSession(t *testing.T) {
	t.Run("plays a department to the win", func(t *testing.T) {
		s, hub, buffer := newTestSession(t)

		input := strings.Join([]string{
			"list",
			"open hr",
			"start",
			"guess leader",
			"show",
			"quit",
			"this is never read",
		}, "\n")

		err := s.Run(context.Background(), strings.NewReader(input))
		require.NoError(t, err)
		hub.Close()

		out := buffer.String()
		assert.Contains(t, out, "Information Technology")
		assert.Contains(t, out, introHintText)
		assert.Contains(t, out, winText)
		assert.Contains(t, out, registry.Default().Resolve("hr").Quote)
		assert.NotContains(t, out, "this is never read")
	})

	t.Run("reports errors and carries on", func(t *testing.T) {
		s, hub, buffer := newTestSession(t)

		input := "dance\nstart\nopen hr\n"
		require.NoError(t, s.Run(context.Background(), strings.NewReader(input)))
		hub.Close()

		out := buffer.String()
		assert.Contains(t, out, ErrUnknownVerb.Error())
		assert.Contains(t, out, "no department is mounted")
		assert.Contains(t, out, introHintText)
	})

	t.Run("help stays local", func(t *testing.T) {
		s, _, buffer := newTestSession(t)

		quit, err := s.Exec(context.Background(), "help")
		require.NoError(t, err)
		assert.False(t, quit)
		assert.Contains(t, buffer.String(), "ring cipher")
	})

	t.Run("a closed arcade ends the session", func(t *testing.T) {
		s, hub, _ := newTestSession(t)
		hub.Close()

		quit, err := s.Exec(context.Background(), "show")
		assert.True(t, quit)
		assert.ErrorIs(t, err, sched.ErrLoopStopped)
	})
}
