package game

import (
	"time"

	"github.com/minaorangina/arcade/protocol"
	"github.com/minaorangina/arcade/registry"
	"github.com/minaorangina/arcade/sched"
	"github.com/zyedidia/generic/mapset"
)

const (
	reflexCells   = 9
	reflexGoal    = 10
	reflexBacklog = 5
	reflexBase    = 1000 * time.Millisecond
	reflexStep    = 60 * time.Millisecond
	reflexFloor   = 500 * time.Millisecond
)

// reflexInterval is the spawn cadence at a given score
func reflexInterval(score int) time.Duration {
	d := reflexBase - time.Duration(score)*reflexStep
	if d < reflexFloor {
		return reflexFloor
	}
	return d
}

type ReflexBoard struct {
	Cells    []bool `json:"cells"`
	Interval int64  `json:"intervalMs"`
}

type reflex struct {
	*Machine
	score  int
	active mapset.Set[int]
	spawn  sched.Timer
}

func newReflex(env Env) *reflex {
	return &reflex{Machine: newMachine(env), active: mapset.New[int]()}
}

func (g *reflex) Kind() registry.Kind {
	return registry.ReflexGrid
}

func (g *reflex) Start() {
	g.arm()
}

// arm restarts the spawn interval at the cadence for the current score
func (g *reflex) arm() {
	if g.spawn != nil {
		g.spawn.Stop()
	}
	g.spawn = g.timers.Every(reflexInterval(g.score), g.tick)
}

func (g *reflex) tick() {
	if g.active.Size() > reflexBacklog {
		g.active = mapset.New[int]()
		g.setScore(0)
		return
	}
	g.active.Put(g.rand().Intn(reflexCells))
}

func (g *reflex) setScore(score int) {
	if score == g.score {
		return
	}
	g.score = score
	g.arm()
}

func (g *reflex) Handle(in protocol.Input) error {
	if err := g.guard(); err != nil {
		return err
	}
	if in.Action != protocol.Tap {
		return unknownAction(g.Kind(), in.Action)
	}
	if in.Index < 0 || in.Index >= reflexCells {
		return invalidInput(g.Kind(), "no cell %d", in.Index)
	}
	if !g.active.Has(in.Index) {
		return nil
	}

	g.active.Remove(in.Index)
	if g.score+1 >= reflexGoal {
		g.score++
		g.spawn.Stop()
		g.status = Correct
		g.win()
		return nil
	}
	g.setScore(g.score + 1)
	return nil
}

func (g *reflex) View() View {
	cells := make([]bool, reflexCells)
	g.active.Each(func(i int) {
		cells[i] = true
	})
	return g.view(g, g.score, reflexGoal, ReflexBoard{
		Cells:    cells,
		Interval: reflexInterval(g.score).Milliseconds(),
	})
}
