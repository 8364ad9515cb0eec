package game

import (
	"time"

	"github.com/minaorangina/arcade/protocol"
	"github.com/minaorangina/arcade/registry"
	"github.com/minaorangina/arcade/sched"
)

const (
	memoryPads      = 4
	memoryWinLength = 4
	memoryFirstStep = time.Second
	memoryStepEvery = 800 * time.Millisecond
	memoryLitFor    = 400 * time.Millisecond
	memoryTapLitFor = 200 * time.Millisecond
	memoryPause     = time.Second
)

type MemoryBoard struct {
	Pads     int  `json:"pads"`
	Length   int  `json:"length"`
	Showing  int  `json:"showing"`
	UserTurn bool `json:"userTurn"`
	UserStep int  `json:"userStep"`
}

type memory struct {
	*Machine
	sequence []int
	showing  int
	userTurn bool
	userStep int
	playback sched.Timer
}

func newMemory(env Env) *memory {
	return &memory{Machine: newMachine(env), showing: -1}
}

func (g *memory) Kind() registry.Kind {
	return registry.MemorySequence
}

func (g *memory) Start() {
	g.timers.After(memoryFirstStep, g.addStep)
}

func (g *memory) addStep() {
	g.sequence = append(g.sequence, g.rand().Intn(memoryPads))
	g.play()
}

// play shows the whole sequence from the first step, then hands the turn
// to the player
func (g *memory) play() {
	if g.playback != nil {
		g.playback.Stop()
	}
	g.userTurn = false
	g.userStep = 0

	i := 0
	g.playback = g.timers.Every(memoryStepEvery, func() {
		if i >= len(g.sequence) {
			g.playback.Stop()
			g.showing = -1
			g.userTurn = true
			return
		}
		pad := g.sequence[i]
		g.light(pad, memoryLitFor)
		i++
	})
}

func (g *memory) light(pad int, d time.Duration) {
	g.showing = pad
	g.timers.After(d, func() {
		if g.showing == pad {
			g.showing = -1
		}
	})
}

func (g *memory) Handle(in protocol.Input) error {
	if err := g.guard(); err != nil {
		return err
	}
	if in.Action != protocol.Tap {
		return unknownAction(g.Kind(), in.Action)
	}
	if in.Index < 0 || in.Index >= memoryPads {
		return invalidInput(g.Kind(), "no pad %d", in.Index)
	}
	if !g.userTurn {
		return nil
	}

	g.light(in.Index, memoryTapLitFor)

	if g.sequence[g.userStep] != in.Index {
		g.userTurn = false
		g.flash(Wrong, memoryPause, nil)
		g.timers.After(memoryPause, g.play)
		return nil
	}

	if g.userStep+1 < len(g.sequence) {
		g.userStep++
		return nil
	}

	g.userStep++
	g.userTurn = false
	if len(g.sequence) >= memoryWinLength {
		g.status = Correct
		g.win()
		return nil
	}
	g.timers.After(memoryPause, g.addStep)
	return nil
}

func (g *memory) View() View {
	return g.view(g, len(g.sequence), memoryWinLength, MemoryBoard{
		Pads:     memoryPads,
		Length:   len(g.sequence),
		Showing:  g.showing,
		UserTurn: g.userTurn,
		UserStep: g.userStep,
	})
}
