package game

import (
	"math"
	"time"

	"github.com/minaorangina/arcade/protocol"
	"github.com/minaorangina/arcade/registry"
)

const (
	rhythmGoal   = 5
	rhythmWindow = 10.0
	// marker speed in percent of the track per second, rising with the streak
	rhythmBaseSpeed = 30.0
	rhythmSpeedStep = 6.0
	rhythmStart     = 50.0
)

type RhythmBoard struct {
	Marker    float64 `json:"marker"`
	Direction int     `json:"direction"`
	Target    float64 `json:"target"`
	Window    float64 `json:"window"`
}

type rhythm struct {
	*Machine
	pos    float64
	dir    float64
	target float64
	score  int
}

func newRhythm(env Env) *rhythm {
	return &rhythm{Machine: newMachine(env), dir: 1, target: rhythmStart}
}

func (g *rhythm) Kind() registry.Kind {
	return registry.RhythmTimingLock
}

func (g *rhythm) Start() {
	g.timers.Frames(g.advance)
}

func (g *rhythm) speed() float64 {
	return rhythmBaseSpeed + rhythmSpeedStep*float64(g.score)
}

// advance moves the marker as a function of elapsed time. The bounce
// between 0 and 100 is unfolded onto a 200-long cycle so any frame length
// lands on the same position.
func (g *rhythm) advance(elapsed time.Duration) {
	phase := g.pos
	if g.dir < 0 {
		phase = 200 - g.pos
	}
	phase = math.Mod(phase+g.speed()*elapsed.Seconds(), 200)
	if phase <= 100 {
		g.pos, g.dir = phase, 1
	} else {
		g.pos, g.dir = 200-phase, -1
	}
}

func (g *rhythm) Handle(in protocol.Input) error {
	if err := g.guard(); err != nil {
		return err
	}
	if in.Action != protocol.Hit {
		return unknownAction(g.Kind(), in.Action)
	}

	if math.Abs(g.pos-g.target) >= rhythmWindow {
		g.score = 0
		return nil
	}

	g.score++
	g.target = g.rand().Float64()*80 + 10
	if g.score >= rhythmGoal {
		g.status = Correct
		g.win()
	}
	return nil
}

func (g *rhythm) View() View {
	return g.view(g, g.score, rhythmGoal, RhythmBoard{
		Marker:    g.pos,
		Direction: int(g.dir),
		Target:    g.target,
		Window:    rhythmWindow,
	})
}
