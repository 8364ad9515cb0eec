package sched

import "time"

// DefaultFrame is a 60Hz display frame
const DefaultFrame = time.Second / 60

// Manual is a Scheduler on a virtual clock. Nothing fires until Advance is
// called; timers then fire in due order, ties broken by scheduling order.
type Manual struct {
	now    time.Time
	frame  time.Duration
	seq    int
	timers []*manualTimer
}

type manualTimer struct {
	at      time.Time
	every   time.Duration
	seq     int
	active  bool
	fn      func()
	frameFn func(time.Duration)
	last    time.Time
}

func (t *manualTimer) Stop() bool {
	was := t.active
	t.active = false
	return was
}

func (t *manualTimer) Active() bool {
	return t.active
}

// NewManual constructs a Manual clock whose frame loops tick every frame.
// A zero frame uses DefaultFrame.
func NewManual(frame time.Duration) *Manual {
	if frame <= 0 {
		frame = DefaultFrame
	}
	return &Manual{
		now:   time.Date(2024, time.January, 1, 0, 0, 0, 0, time.UTC),
		frame: frame,
	}
}

func (m *Manual) Now() time.Time {
	return m.now
}

func (m *Manual) add(t *manualTimer) *manualTimer {
	m.seq++
	t.seq = m.seq
	t.active = true
	m.timers = append(m.timers, t)
	return t
}

func (m *Manual) After(d time.Duration, fn func()) Timer {
	if d < 0 {
		d = 0
	}
	return m.add(&manualTimer{at: m.now.Add(d), fn: fn})
}

func (m *Manual) Every(d time.Duration, fn func()) Timer {
	d = clampInterval(d)
	return m.add(&manualTimer{at: m.now.Add(d), every: d, fn: fn})
}

func (m *Manual) Frames(fn func(time.Duration)) Timer {
	return m.add(&manualTimer{at: m.now.Add(m.frame), every: m.frame, frameFn: fn, last: m.now})
}

// Advance moves the clock forward by d, firing everything that falls due
func (m *Manual) Advance(d time.Duration) {
	target := m.now.Add(d)
	for {
		next := m.next(target)
		if next == nil {
			break
		}
		m.now = next.at
		m.fire(next)
	}
	m.now = target
	m.prune()
}

// Flush fires whatever is due without moving the clock
func (m *Manual) Flush() {
	m.Advance(0)
}

// Pending is the number of active timers
func (m *Manual) Pending() int {
	n := 0
	for _, t := range m.timers {
		if t.active {
			n++
		}
	}
	return n
}

func (m *Manual) next(target time.Time) *manualTimer {
	var best *manualTimer
	for _, t := range m.timers {
		if !t.active || t.at.After(target) {
			continue
		}
		if best == nil || t.at.Before(best.at) || (t.at.Equal(best.at) && t.seq < best.seq) {
			best = t
		}
	}
	return best
}

func (m *Manual) fire(t *manualTimer) {
	switch {
	case t.frameFn != nil:
		elapsed := t.at.Sub(t.last)
		t.last = t.at
		t.at = t.at.Add(t.every)
		t.frameFn(elapsed)
	case t.every > 0:
		t.at = t.at.Add(t.every)
		t.fn()
	default:
		t.active = false
		t.fn()
	}
}

func (m *Manual) prune() {
	live := m.timers[:0]
	for _, t := range m.timers {
		if t.active {
			live = append(live, t)
		}
	}
	m.timers = live
}
