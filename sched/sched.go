// Package sched provides the three scheduling primitives game sessions run
// on: fire-once delays, repeating intervals and per-frame callbacks.
//
// Every callback of a Scheduler runs on a single goroutine, so game state
// needs no locking. Manual drives virtual time for tests; Loop drives real
// time for a live session.
package sched

import "time"

// Timer is a handle on scheduled work
type Timer interface {
	// Stop cancels the timer. It reports whether the timer was active.
	Stop() bool
	Active() bool
}

type Scheduler interface {
	Now() time.Time
	// After calls fn once, d from now
	After(d time.Duration, fn func()) Timer
	// Every calls fn each d until stopped
	Every(d time.Duration, fn func()) Timer
	// Frames calls fn once per display frame with the time elapsed since
	// the previous frame (or since the loop was requested, for the first)
	Frames(fn func(elapsed time.Duration)) Timer
}

// minInterval keeps a zero or negative interval from spinning
const minInterval = time.Millisecond

func clampInterval(d time.Duration) time.Duration {
	if d < minInterval {
		return minInterval
	}
	return d
}

type deadTimer struct{}

func (deadTimer) Stop() bool   { return false }
func (deadTimer) Active() bool { return false }

// Group tracks everything scheduled through it so it can all be cancelled
// at once. A closed Group schedules nothing.
type Group struct {
	s      Scheduler
	timers []Timer
	closed bool
}

func NewGroup(s Scheduler) *Group {
	return &Group{s: s}
}

func (g *Group) Now() time.Time {
	return g.s.Now()
}

func (g *Group) After(d time.Duration, fn func()) Timer {
	if g.closed {
		return deadTimer{}
	}
	return g.track(g.s.After(d, fn))
}

func (g *Group) Every(d time.Duration, fn func()) Timer {
	if g.closed {
		return deadTimer{}
	}
	return g.track(g.s.Every(d, fn))
}

func (g *Group) Frames(fn func(time.Duration)) Timer {
	if g.closed {
		return deadTimer{}
	}
	return g.track(g.s.Frames(fn))
}

func (g *Group) track(t Timer) Timer {
	// drop finished timers so long sessions don't accumulate handles
	live := g.timers[:0]
	for _, existing := range g.timers {
		if existing.Active() {
			live = append(live, existing)
		}
	}
	g.timers = append(live, t)
	return t
}

// Pending is the number of timers still active
func (g *Group) Pending() int {
	n := 0
	for _, t := range g.timers {
		if t.Active() {
			n++
		}
	}
	return n
}

// StopAll cancels every active timer but leaves the group usable
func (g *Group) StopAll() {
	for _, t := range g.timers {
		t.Stop()
	}
	g.timers = nil
}

// Close cancels every timer and refuses further scheduling
func (g *Group) Close() {
	g.StopAll()
	g.closed = true
}

func (g *Group) Closed() bool {
	return g.closed
}
