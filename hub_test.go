package arcade

import (
	"context"
	"errors"
	"io"
	"log"
	"testing"
	"time"

	"github.com/minaorangina/arcade/engine"
	"github.com/minaorangina/arcade/game"
	utils "github.com/minaorangina/arcade/internal"
	"github.com/minaorangina/arcade/protocol"
	"github.com/minaorangina/arcade/registry"
	"github.com/minaorangina/arcade/sched"
	"github.com/minaorangina/arcade/store"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const eventually = time.Second

func newTestHub(t *testing.T, results store.ResultStore) *Hub {
	t.Helper()

	// a hidden role of "leader" for hr
	h, err := NewHub(HubOpts{
		ID:      "arcade-id",
		Rand:    &game.ScriptedRand{},
		Results: results,
		Logger:  log.New(io.Discard, "", 0),
	})
	require.NoError(t, err)
	t.Cleanup(h.Close)
	return h
}

func guessLeader() protocol.InboundMessage {
	return protocol.InboundMessage{
		Command: protocol.Play,
		Input:   &protocol.Input{Action: protocol.Guess, ID: "leader"},
	}
}

func TestHub(t *testing.T) {
	ctx := context.Background()

	t.Run("generates an ID", func(t *testing.T) {
		h, err := NewHub(HubOpts{Logger: log.New(io.Discard, "", 0)})
		require.NoError(t, err)
		defer h.Close()

		utils.AssertNotEmptyString(t, h.ID())
		assert.Equal(t, registry.Default().Departments(), h.Departments())
	})

	t.Run("Do replies with a snapshot", func(t *testing.T) {
		h := newTestHub(t, nil)

		reply, err := h.Do(ctx, protocol.InboundMessage{Command: protocol.Open, Department: "hr"})
		require.NoError(t, err)
		assert.Equal(t, "arcade-id", reply.ArcadeID)
		assert.Equal(t, protocol.Snapshot, reply.Command)
		require.NotNil(t, reply.Snapshot)
		assert.Equal(t, engine.Intro, reply.Snapshot.Screen)

		reply, err = h.Do(ctx, protocol.InboundMessage{Command: protocol.Departments})
		require.NoError(t, err)
		assert.Equal(t, protocol.Departments, reply.Command)
		assert.Len(t, reply.Departments, len(h.Departments()))
	})

	t.Run("Do returns errors alongside the snapshot", func(t *testing.T) {
		h := newTestHub(t, nil)

		reply, err := h.Do(ctx, protocol.InboundMessage{Command: protocol.Start})
		assert.ErrorIs(t, err, engine.ErrNotMounted)
		require.NotNil(t, reply.Snapshot)
		assert.Equal(t, engine.Unmounted, reply.Snapshot.Screen)
	})

	t.Run("records a win", func(t *testing.T) {
		results := store.NewInMemoryResultStore()
		h := newTestHub(t, results)

		for _, msg := range []protocol.InboundMessage{
			{Command: protocol.Open, Department: "hr"},
			{Command: protocol.Start},
			guessLeader(),
		} {
			_, err := h.Do(ctx, msg)
			require.NoError(t, err)
		}

		snap, err := h.Snapshot(ctx)
		require.NoError(t, err)
		assert.Equal(t, engine.Win, snap.Screen)

		var got []store.Result
		assert.Eventually(t, func() bool {
			got, err = results.List(ctx, "hr")
			return err == nil && len(got) == 1
		}, eventually, 10*time.Millisecond)
		require.Len(t, got, 1)
		assert.Equal(t, "arcade-id", got[0].ArcadeID)
		assert.Equal(t, registry.RoleGuessing, got[0].Kind)
		assert.False(t, got[0].WonAt.Before(got[0].StartedAt))
	})

	t.Run("a slow result store does not hold up the loop", func(t *testing.T) {
		results := newBlockingResults()
		h := newTestHub(t, results)

		for _, msg := range []protocol.InboundMessage{
			{Command: protocol.Open, Department: "hr"},
			{Command: protocol.Start},
			guessLeader(),
		} {
			_, err := h.Do(ctx, msg)
			require.NoError(t, err)
		}

		utils.Within(t, eventually, func() {
			_, err := h.Do(ctx, protocol.InboundMessage{Command: protocol.Restart})
			assert.NoError(t, err)
		})

		close(results.release)
		assert.Eventually(t, func() bool {
			got, err := results.List(ctx, "hr")
			return err == nil && len(got) == 1
		}, eventually, 10*time.Millisecond)
	})

	t.Run("Close waits for queued results", func(t *testing.T) {
		results := store.NewInMemoryResultStore()
		h := newTestHub(t, results)

		for _, msg := range []protocol.InboundMessage{
			{Command: protocol.Open, Department: "hr"},
			{Command: protocol.Start},
			guessLeader(),
		} {
			_, err := h.Do(ctx, msg)
			require.NoError(t, err)
		}
		h.Close()

		got, err := results.List(ctx, "")
		require.NoError(t, err)
		assert.Len(t, got, 1)
	})

	t.Run("answers a snapshot request even when nothing changed", func(t *testing.T) {
		h := newTestHub(t, nil)
		spy := NewSpyClient("spy")
		require.NoError(t, h.Register(spy))
		assert.Eventually(t, func() bool { return len(spy.Messages()) == 1 }, eventually, 10*time.Millisecond)

		h.Receive("spy", protocol.InboundMessage{Command: protocol.Snapshot})

		assert.Eventually(t, func() bool { return len(spy.Messages()) == 2 }, eventually, 10*time.Millisecond)
		msg, ok := spy.Last(protocol.Snapshot)
		require.True(t, ok)
		assert.Equal(t, engine.Unmounted, msg.Snapshot.Screen)
	})

	t.Run("sends new clients the current snapshot", func(t *testing.T) {
		h := newTestHub(t, nil)
		_, err := h.Do(ctx, protocol.InboundMessage{Command: protocol.Open, Department: "pm"})
		require.NoError(t, err)

		spy := NewSpyClient("spy")
		require.NoError(t, h.Register(spy))

		assert.Eventually(t, func() bool {
			msg, ok := spy.Last(protocol.Snapshot)
			return ok && msg.Snapshot.DepartmentID == "pm"
		}, eventually, 10*time.Millisecond)
	})

	t.Run("broadcasts changes and the win to every client", func(t *testing.T) {
		h := newTestHub(t, nil)
		spies := []*SpyClient{NewSpyClient("one"), NewSpyClient("two")}
		for _, spy := range spies {
			require.NoError(t, h.Register(spy))
		}

		h.Receive("one", protocol.InboundMessage{Command: protocol.Open, Department: "hr"})
		h.Receive("one", protocol.InboundMessage{Command: protocol.Start})
		h.Receive("one", guessLeader())

		for _, spy := range spies {
			spy := spy
			assert.Eventually(t, func() bool {
				msg, ok := spy.Last(protocol.Won)
				return ok && msg.Snapshot.Screen == engine.Win
			}, eventually, 10*time.Millisecond, spy.ID())
		}
	})

	t.Run("errors only go to the sender", func(t *testing.T) {
		h := newTestHub(t, nil)
		sender, other := NewSpyClient("sender"), NewSpyClient("other")
		require.NoError(t, h.Register(sender))
		require.NoError(t, h.Register(other))

		h.Receive("sender", protocol.InboundMessage{Command: protocol.Abort})

		assert.Eventually(t, func() bool {
			msg, ok := sender.Last(protocol.Error)
			return ok && msg.Error == engine.ErrNotMounted.Error()
		}, eventually, 10*time.Millisecond)

		_, err := h.Snapshot(ctx)
		require.NoError(t, err)
		_, ok := other.Last(protocol.Error)
		assert.False(t, ok)
	})

	t.Run("drops clients that fail", func(t *testing.T) {
		h := newTestHub(t, nil)
		spy := NewSpyClient("broken")
		spy.Fail = errors.New("gone")
		require.NoError(t, h.Register(spy))

		assert.Eventually(t, spy.Closed, eventually, 10*time.Millisecond)
	})

	t.Run("Close disconnects clients and stops the loop", func(t *testing.T) {
		h := newTestHub(t, nil)
		spy := NewSpyClient("spy")
		require.NoError(t, h.Register(spy))

		h.Close()
		utils.Within(t, eventually, func() { <-h.Done() })
		assert.True(t, spy.Closed())

		assert.ErrorIs(t, h.Register(NewSpyClient("late")), sched.ErrLoopStopped)
		_, err := h.Do(ctx, protocol.InboundMessage{Command: protocol.Snapshot})
		assert.ErrorIs(t, err, sched.ErrLoopStopped)
	})
}

func TestHubIdle(t *testing.T) {
	const idle = 100 * time.Millisecond

	newIdleHub := func(t *testing.T, onIdle func(string)) *Hub {
		t.Helper()
		h, err := NewHub(HubOpts{
			ID:          "arcade-id",
			Rand:        &game.ScriptedRand{},
			Logger:      log.New(io.Discard, "", 0),
			IdleTimeout: idle,
			OnIdle:      onIdle,
		})
		require.NoError(t, err)
		t.Cleanup(h.Close)
		return h
	}

	t.Run("closes itself when nobody connects", func(t *testing.T) {
		h := newIdleHub(t, nil)
		utils.Within(t, eventually, func() { <-h.Done() })
	})

	t.Run("hands the close to OnIdle", func(t *testing.T) {
		ids := make(chan string, 1)
		h := newIdleHub(t, func(id string) { ids <- id })

		select {
		case id := <-ids:
			assert.Equal(t, "arcade-id", id)
		case <-time.After(eventually):
			t.Fatal("OnIdle was not called")
		}
		_, err := h.Snapshot(context.Background())
		assert.NoError(t, err, "OnIdle owns the close")
	})

	t.Run("stays open while a client is connected", func(t *testing.T) {
		h := newIdleHub(t, nil)
		require.NoError(t, h.Register(NewSpyClient("spy")))

		time.Sleep(4 * idle)
		_, err := h.Snapshot(context.Background())
		require.NoError(t, err)

		h.Unregister("spy")
		utils.Within(t, eventually, func() { <-h.Done() })
	})
}

// blockingResults holds every Record until release is closed
type blockingResults struct {
	*store.InMemoryResultStore
	release chan struct{}
}

func newBlockingResults() *blockingResults {
	return &blockingResults{
		InMemoryResultStore: store.NewInMemoryResultStore(),
		release:             make(chan struct{}),
	}
}

func (r *blockingResults) Record(ctx context.Context, res store.Result) error {
	select {
	case <-r.release:
	case <-ctx.Done():
		return ctx.Err()
	}
	return r.InMemoryResultStore.Record(ctx, res)
}
