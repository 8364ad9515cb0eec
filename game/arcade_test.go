package game

import (
	"testing"
	"time"

	utils "github.com/minaorangina/arcade/internal"
	"github.com/minaorangina/arcade/protocol"
	"github.com/minaorangina/arcade/registry"
	"github.com/stretchr/testify/assert"
)

func TestCipher(t *testing.T) {
	t.Run("rings lock when released near north, snapped to a full turn", func(t *testing.T) {
		h := play(t, registry.RingCipher, &ScriptedRand{Ints: []int{0, 10, 350}})

		for i := 0; i < 3; i++ {
			h.do(t, protocol.Input{Action: protocol.Release, Index: i})
		}

		rings := h.game.View().Board.(CipherBoard).Rings
		assert.Equal(t, []Ring{
			{Radius: 150, Rotation: 0, Locked: true},
			{Radius: 110, Rotation: 0, Locked: true},
			{Radius: 70, Rotation: 360, Locked: true},
		}, rings)
		utils.AssertEqual(t, h.game.View().Status, Correct)
		utils.AssertEqual(t, h.game.View().Score, 3)

		h.clock.Advance(499 * time.Millisecond)
		utils.AssertEqual(t, h.wins, 0)
		h.clock.Advance(time.Millisecond)
		utils.AssertEqual(t, h.wins, 1)
		utils.AssertTrue(t, h.game.Won())
	})

	t.Run("a ring released off north keeps turning", func(t *testing.T) {
		h := play(t, registry.RingCipher, &ScriptedRand{Ints: []int{40}})

		h.do(t, protocol.Input{Action: protocol.Release, Index: 0})
		ring := h.game.View().Board.(CipherBoard).Rings[0]
		utils.AssertEqual(t, ring.Locked, false)

		h.do(t, protocol.Input{Action: protocol.Rotate, Index: 0, Delta: -30})
		h.do(t, protocol.Input{Action: protocol.Release, Index: 0})
		ring = h.game.View().Board.(CipherBoard).Rings[0]
		utils.AssertTrue(t, ring.Locked)
		utils.AssertEqual(t, ring.Rotation, 0.0)
	})

	t.Run("the tolerance boundary does not lock", func(t *testing.T) {
		h := play(t, registry.RingCipher, &ScriptedRand{Ints: []int{15}})
		h.do(t, protocol.Input{Action: protocol.Release, Index: 0})
		utils.AssertEqual(t, h.game.View().Board.(CipherBoard).Rings[0].Locked, false)
	})

	t.Run("locked rings ignore rotation", func(t *testing.T) {
		h := play(t, registry.RingCipher, &ScriptedRand{})
		h.do(t, protocol.Input{Action: protocol.Release, Index: 1})
		h.do(t, protocol.Input{Action: protocol.Rotate, Index: 1, Delta: 90})
		utils.AssertEqual(t, h.game.View().Board.(CipherBoard).Rings[1].Rotation, 0.0)
	})

	t.Run("negative rotations normalise", func(t *testing.T) {
		utils.AssertTrue(t, aligned(-5))
		utils.AssertTrue(t, aligned(725))
		utils.AssertEqual(t, aligned(-180), false)
	})

	t.Run("unknown ring", func(t *testing.T) {
		h := play(t, registry.RingCipher, &ScriptedRand{})
		err := h.game.Handle(protocol.Input{Action: protocol.Rotate, Index: 3})
		assert.ErrorIs(t, err, ErrInvalidInput)
	})
}

// waitTurn advances until the memory game hands the turn to the player
func waitTurn(t *testing.T, h *harness) MemoryBoard {
	t.Helper()
	for i := 0; i < 200; i++ {
		board := h.game.View().Board.(MemoryBoard)
		if board.UserTurn {
			return board
		}
		h.clock.Advance(100 * time.Millisecond)
	}
	t.Fatal("never became the player's turn")
	return MemoryBoard{}
}

func TestMemory(t *testing.T) {
	t.Run("plays the sequence back before the player's turn", func(t *testing.T) {
		h := play(t, registry.MemorySequence, &ScriptedRand{Ints: []int{2}})

		h.clock.Advance(time.Second)
		board := h.game.View().Board.(MemoryBoard)
		utils.AssertEqual(t, board.Length, 1)
		utils.AssertEqual(t, board.UserTurn, false)

		h.clock.Advance(800 * time.Millisecond)
		utils.AssertEqual(t, h.game.View().Board.(MemoryBoard).Showing, 2)

		h.clock.Advance(400 * time.Millisecond)
		utils.AssertEqual(t, h.game.View().Board.(MemoryBoard).Showing, -1)

		h.clock.Advance(400 * time.Millisecond)
		utils.AssertTrue(t, h.game.View().Board.(MemoryBoard).UserTurn)
	})

	t.Run("taps outside the player's turn are ignored", func(t *testing.T) {
		h := play(t, registry.MemorySequence, &ScriptedRand{Ints: []int{2}})
		h.do(t, protocol.Input{Action: protocol.Tap, Index: 1})
		utils.AssertEqual(t, h.game.View().Status, Idle)
	})

	t.Run("completing four steps wins", func(t *testing.T) {
		h := play(t, registry.MemorySequence, &ScriptedRand{Ints: []int{2}})

		for round := 1; round <= 4; round++ {
			board := waitTurn(t, h)
			utils.AssertEqual(t, board.Length, round)
			for i := 0; i < round; i++ {
				h.do(t, protocol.Input{Action: protocol.Tap, Index: 2})
			}
		}

		utils.AssertEqual(t, h.wins, 1)
		utils.AssertEqual(t, h.game.View().Status, Correct)
	})

	t.Run("a wrong tap replays the same sequence", func(t *testing.T) {
		h := play(t, registry.MemorySequence, &ScriptedRand{Ints: []int{2}})
		waitTurn(t, h)

		h.do(t, protocol.Input{Action: protocol.Tap, Index: 0})
		utils.AssertEqual(t, h.game.View().Status, Wrong)

		h.clock.Advance(time.Second)
		utils.AssertEqual(t, h.game.View().Status, Idle)

		board := waitTurn(t, h)
		utils.AssertEqual(t, board.Length, 1)
		utils.AssertEqual(t, h.wins, 0)
	})

	t.Run("unknown pad", func(t *testing.T) {
		h := play(t, registry.MemorySequence, &ScriptedRand{})
		assert.ErrorIs(t, h.game.Handle(protocol.Input{Action: protocol.Tap, Index: 4}), ErrInvalidInput)
	})
}

func TestReflex(t *testing.T) {
	t.Run("spawn interval quickens with score down to a floor", func(t *testing.T) {
		cases := map[int]time.Duration{
			0:  time.Second,
			5:  700 * time.Millisecond,
			8:  520 * time.Millisecond,
			9:  500 * time.Millisecond,
			20: 500 * time.Millisecond,
		}
		for score, want := range cases {
			utils.AssertEqual(t, reflexInterval(score), want)
		}
	})

	t.Run("hitting an active cell scores", func(t *testing.T) {
		h := play(t, registry.ReflexGrid, &ScriptedRand{Ints: []int{3}})
		h.clock.Advance(time.Second)
		utils.AssertTrue(t, h.game.View().Board.(ReflexBoard).Cells[3])

		h.do(t, protocol.Input{Action: protocol.Tap, Index: 3})
		view := h.game.View()
		utils.AssertEqual(t, view.Score, 1)
		utils.AssertEqual(t, view.Board.(ReflexBoard).Cells[3], false)
		utils.AssertEqual(t, view.Board.(ReflexBoard).Interval, int64(940))
	})

	t.Run("tapping an empty cell does nothing", func(t *testing.T) {
		h := play(t, registry.ReflexGrid, &ScriptedRand{Ints: []int{3}})
		h.clock.Advance(time.Second)
		h.do(t, protocol.Input{Action: protocol.Tap, Index: 4})
		utils.AssertEqual(t, h.game.View().Score, 0)
	})

	t.Run("a backlog over five clears the grid and the score", func(t *testing.T) {
		h := play(t, registry.ReflexGrid, &ScriptedRand{Ints: []int{0, 1, 2, 3, 4, 5, 6}})
		r := h.game.(*reflex)

		h.clock.Advance(6 * time.Second)
		utils.AssertEqual(t, r.active.Size(), 6)

		h.clock.Advance(time.Second)
		utils.AssertEqual(t, r.active.Size(), 0)
		utils.AssertEqual(t, h.game.View().Score, 0)
	})

	t.Run("ten hits win and stop spawning", func(t *testing.T) {
		h := play(t, registry.ReflexGrid, &ScriptedRand{Ints: []int{4}})

		for i := 0; i < reflexGoal; i++ {
			h.clock.Advance(reflexInterval(h.game.View().Score))
			h.do(t, protocol.Input{Action: protocol.Tap, Index: 4})
		}

		utils.AssertEqual(t, h.wins, 1)
		utils.AssertEqual(t, h.game.View().Status, Correct)

		h.clock.Advance(time.Minute)
		assert.NotContains(t, h.game.View().Board.(ReflexBoard).Cells, true)
	})
}

func TestCatch(t *testing.T) {
	t.Run("an item falling onto the paddle scores", func(t *testing.T) {
		h := play(t, registry.FallingCatch, &ScriptedRand{Floats: []float64{0.5, 0.1}})

		h.clock.Advance(4 * time.Second)
		utils.AssertEqual(t, h.game.View().Score, 1)
	})

	t.Run("long frames cannot skip the catch band", func(t *testing.T) {
		h := playWith(t, registry.FallingCatch, &ScriptedRand{Floats: []float64{0.5, 0.1}},
			registry.Descriptor{}, time.Second)

		h.clock.Advance(5 * time.Second)
		utils.AssertEqual(t, h.game.View().Score, 1)
	})

	t.Run("a bad catch costs two points", func(t *testing.T) {
		h := play(t, registry.FallingCatch, &ScriptedRand{Floats: []float64{0.5, 0.9}})
		h.game.(*catcher).score = 5

		h.clock.Advance(4 * time.Second)
		utils.AssertEqual(t, h.game.View().Score, 3)
	})

	t.Run("the score never drops below zero", func(t *testing.T) {
		h := play(t, registry.FallingCatch, &ScriptedRand{Floats: []float64{0.5, 0.9}})
		h.game.(*catcher).score = 1

		h.clock.Advance(4 * time.Second)
		utils.AssertEqual(t, h.game.View().Score, 0)
	})

	t.Run("items spawn in the play field and fall out the bottom", func(t *testing.T) {
		h := play(t, registry.FallingCatch, &ScriptedRand{Floats: []float64{0.0, 0.1}})

		h.clock.Advance(850 * time.Millisecond)
		items := h.game.View().Board.(CatchBoard).Items
		if assert.Len(t, items, 1) {
			assert.InDelta(t, 5.0, items[0].X, 0.001)
			assert.Less(t, items[0].Y, 0.0)
		}

		h.clock.Advance(4 * time.Second)
		utils.AssertEqual(t, h.game.View().Score, 0)
	})

	t.Run("the paddle stays on the field", func(t *testing.T) {
		h := play(t, registry.FallingCatch, &ScriptedRand{})
		h.do(t, protocol.Input{Action: protocol.Move, X: 150})
		utils.AssertEqual(t, h.game.View().Board.(CatchBoard).Paddle, 100.0)
		h.do(t, protocol.Input{Action: protocol.Move, X: -5})
		utils.AssertEqual(t, h.game.View().Board.(CatchBoard).Paddle, 0.0)
	})

	t.Run("ten points win", func(t *testing.T) {
		h := play(t, registry.FallingCatch, &ScriptedRand{Floats: []float64{0.5, 0.1}})
		h.game.(*catcher).score = 9

		h.clock.Advance(4 * time.Second)
		utils.AssertEqual(t, h.wins, 1)
		utils.AssertEqual(t, h.game.View().Status, Correct)
	})

	t.Run("two catches in one frame past the goal win once", func(t *testing.T) {
		h := playWith(t, registry.FallingCatch, &ScriptedRand{}, registry.Descriptor{}, 50*time.Millisecond)
		c := h.game.(*catcher)
		c.score = 9
		c.items = []Item{{ID: 1, X: 45, Y: 84}, {ID: 2, X: 55, Y: 84}}

		h.clock.Advance(50 * time.Millisecond)
		utils.AssertEqual(t, h.game.View().Score, 11)
		utils.AssertEqual(t, h.wins, 1)

		h.clock.Advance(time.Second)
		utils.AssertEqual(t, h.wins, 1)
	})
}

func TestRhythm(t *testing.T) {
	t.Run("the marker bounces off the ends", func(t *testing.T) {
		h := play(t, registry.RhythmTimingLock, &ScriptedRand{})
		r := h.game.(*rhythm)

		r.pos, r.dir = 90, 1
		r.advance(500 * time.Millisecond)
		assert.InDelta(t, 95.0, r.pos, 0.0001)
		utils.AssertEqual(t, r.dir, -1.0)

		r.pos, r.dir = 10, -1
		r.advance(time.Second)
		assert.InDelta(t, 20.0, r.pos, 0.0001)
		utils.AssertEqual(t, r.dir, 1.0)
	})

	t.Run("frames move the marker at the current speed", func(t *testing.T) {
		h := playWith(t, registry.RhythmTimingLock, &ScriptedRand{}, registry.Descriptor{}, 100*time.Millisecond)

		h.clock.Advance(time.Second)
		assert.InDelta(t, 30.0, h.game.View().Board.(RhythmBoard).Marker, 0.0001)
	})

	t.Run("a hit inside the window scores and moves the target", func(t *testing.T) {
		h := playWith(t, registry.RhythmTimingLock, &ScriptedRand{Floats: []float64{0.25}}, registry.Descriptor{}, 100*time.Millisecond)

		h.clock.Advance(1500 * time.Millisecond)
		h.do(t, protocol.Input{Action: protocol.Hit})

		view := h.game.View()
		utils.AssertEqual(t, view.Score, 1)
		assert.InDelta(t, 30.0, view.Board.(RhythmBoard).Target, 0.0001)
	})

	t.Run("a miss resets the streak and keeps the target", func(t *testing.T) {
		h := play(t, registry.RhythmTimingLock, &ScriptedRand{})
		r := h.game.(*rhythm)
		r.score, r.pos = 3, 5

		h.do(t, protocol.Input{Action: protocol.Hit})
		utils.AssertEqual(t, h.game.View().Score, 0)
		utils.AssertEqual(t, r.target, 50.0)
	})

	t.Run("five hits in a row win", func(t *testing.T) {
		h := play(t, registry.RhythmTimingLock, &ScriptedRand{Floats: []float64{0.5}})
		r := h.game.(*rhythm)

		for i := 0; i < rhythmGoal; i++ {
			r.pos = r.target + 5
			h.do(t, protocol.Input{Action: protocol.Hit})
		}
		utils.AssertEqual(t, h.wins, 1)
	})
}
