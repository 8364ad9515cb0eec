package game

import (
	"fmt"
	"time"

	"github.com/minaorangina/arcade/sched"
)

// Status is the transient feedback state shared by every kind
type Status int

const (
	Idle Status = iota
	Wrong
	Correct
)

var statusNames = map[Status]string{
	Idle:    "idle",
	Wrong:   "wrong",
	Correct: "correct",
}

func (s Status) String() string {
	return statusNames[s]
}

func (s Status) MarshalText() ([]byte, error) {
	name, ok := statusNames[s]
	if !ok {
		return nil, fmt.Errorf("unknown status %d", int(s))
	}
	return []byte(name), nil
}

func (s *Status) UnmarshalText(text []byte) error {
	for status, name := range statusNames {
		if name == string(text) {
			*s = status
			return nil
		}
	}
	return fmt.Errorf("unknown status %q", string(text))
}

// Machine is the part every game kind shares: the timers it owns, the
// feedback status and the once-only win signal.
type Machine struct {
	env     Env
	timers  *sched.Group
	status  Status
	flashT  sched.Timer
	winning bool
	won     bool
	stopped bool
}

func newMachine(env Env) *Machine {
	return &Machine{
		env:    env,
		timers: sched.NewGroup(env.Sched),
	}
}

func (m *Machine) Status() Status {
	return m.status
}

func (m *Machine) Won() bool {
	return m.won
}

func (m *Machine) Stopped() bool {
	return m.stopped
}

func (m *Machine) Stop() {
	m.stopped = true
	m.timers.Close()
}

func (m *Machine) guard() error {
	if m.stopped {
		return ErrStopped
	}
	return nil
}

func (m *Machine) rand() Rand {
	return m.env.Rand
}

// flash shows s for d, then returns to Idle and runs then, if given.
// A newer flash replaces an older one.
func (m *Machine) flash(s Status, d time.Duration, then func()) {
	if m.flashT != nil {
		m.flashT.Stop()
	}
	m.status = s
	m.flashT = m.timers.After(d, func() {
		m.status = Idle
		if then != nil {
			then()
		}
	})
}

// winAfter signals the win once d has passed, giving the final state time
// on screen
func (m *Machine) winAfter(d time.Duration) {
	if m.won || m.winning {
		return
	}
	m.winning = true
	m.timers.After(d, m.win)
}

func (m *Machine) win() {
	if m.won || m.stopped {
		return
	}
	m.won = true
	if m.env.OnWin != nil {
		m.env.OnWin()
	}
}

func (m *Machine) view(g Game, score, goal int, board interface{}) View {
	return View{
		Kind:   g.Kind(),
		Status: m.status,
		Score:  score,
		Goal:   goal,
		Board:  board,
	}
}
