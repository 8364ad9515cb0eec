package sched

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"time"
)

var ErrLoopStopped = errors.New("loop has stopped")

const queueSize = 256

// Loop is a real-time Scheduler. Posted work and timer callbacks all run on
// the goroutine that called Run, one at a time.
type Loop struct {
	frame     time.Duration
	queue     chan func()
	done      chan struct{}
	stopOnce  sync.Once
	afterEach func()
}

// NewLoop constructs a Loop whose frame callbacks tick every frame.
// A zero frame uses DefaultFrame.
func NewLoop(frame time.Duration) *Loop {
	if frame <= 0 {
		frame = DefaultFrame
	}
	return &Loop{
		frame: frame,
		queue: make(chan func(), queueSize),
		done:  make(chan struct{}),
	}
}

// AfterEach registers a hook that runs on the loop after every callback.
// It must be set before Run.
func (l *Loop) AfterEach(fn func()) {
	l.afterEach = fn
}

// Run executes posted work until ctx is cancelled or Stop is called
func (l *Loop) Run(ctx context.Context) {
	defer l.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-l.done:
			return
		case fn := <-l.queue:
			fn()
			if l.afterEach != nil {
				l.afterEach()
			}
		}
	}
}

// Stop ends Run. Work posted afterwards is dropped.
func (l *Loop) Stop() {
	l.stopOnce.Do(func() { close(l.done) })
}

func (l *Loop) Done() <-chan struct{} {
	return l.done
}

// Post queues fn to run on the loop. It returns false once the loop has
// stopped.
func (l *Loop) Post(fn func()) bool {
	select {
	case <-l.done:
		return false
	default:
	}
	select {
	case l.queue <- fn:
		return true
	case <-l.done:
		return false
	}
}

// Call runs fn on the loop and waits for it to finish
func (l *Loop) Call(ctx context.Context, fn func()) error {
	finished := make(chan struct{})
	if !l.Post(func() {
		defer close(finished)
		fn()
	}) {
		return ErrLoopStopped
	}
	select {
	case <-finished:
		return nil
	case <-l.done:
		return ErrLoopStopped
	case <-ctx.Done():
		return ctx.Err()
	}
}

func (l *Loop) Now() time.Time {
	return time.Now()
}

// loopTimer state is only touched on the loop goroutine, except for the
// stop channel which tells the background ticker to exit.
type loopTimer struct {
	active bool
	timer  *time.Timer
	stop   chan struct{}
}

func (t *loopTimer) Stop() bool {
	was := t.active
	t.active = false
	if t.timer != nil {
		t.timer.Stop()
	}
	if t.stop != nil && was {
		close(t.stop)
	}
	return was
}

func (t *loopTimer) Active() bool {
	return t.active
}

func (l *Loop) After(d time.Duration, fn func()) Timer {
	t := &loopTimer{active: true}
	t.timer = time.AfterFunc(d, func() {
		l.Post(func() {
			if !t.active {
				return
			}
			t.active = false
			fn()
		})
	})
	return t
}

func (l *Loop) Every(d time.Duration, fn func()) Timer {
	d = clampInterval(d)
	t := &loopTimer{active: true, stop: make(chan struct{})}
	go l.tick(d, t.stop, func() {
		if t.active {
			fn()
		}
	})
	return t
}

func (l *Loop) Frames(fn func(time.Duration)) Timer {
	t := &loopTimer{active: true, stop: make(chan struct{})}
	last := time.Now()
	var queued atomic.Bool

	go func() {
		ticker := time.NewTicker(l.frame)
		defer ticker.Stop()
		for {
			select {
			case <-t.stop:
				return
			case <-l.done:
				return
			case <-ticker.C:
				// a slow loop gets one frame with the whole elapsed time
				// rather than a backlog of frames
				if !queued.CompareAndSwap(false, true) {
					continue
				}
				l.Post(func() {
					queued.Store(false)
					if !t.active {
						return
					}
					now := time.Now()
					elapsed := now.Sub(last)
					last = now
					fn(elapsed)
				})
			}
		}
	}()
	return t
}

func (l *Loop) tick(d time.Duration, stop <-chan struct{}, fn func()) {
	ticker := time.NewTicker(d)
	defer ticker.Stop()
	for {
		select {
		case <-stop:
			return
		case <-l.done:
			return
		case <-ticker.C:
			l.Post(fn)
		}
	}
}
