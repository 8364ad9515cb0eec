package game

import (
	"math"
	"time"

	"github.com/minaorangina/arcade/protocol"
	"github.com/minaorangina/arcade/registry"
)

const (
	catchGoal       = 10
	catchSpawnEvery = 800 * time.Millisecond
	// an item is bad when the draw exceeds this, roughly 30% of the time
	catchBadAbove = 0.7
	// fall speed in percent of the play field per second
	catchFallRate   = 36.0
	catchBandTop    = 85.0
	catchBandBottom = 95.0
	catchReach      = 15.0
	catchPenalty    = 2
	// long frames are integrated in steps no larger than this so an item
	// cannot jump over the catch band
	catchMaxStep = 50 * time.Millisecond
)

type Item struct {
	ID  int     `json:"id"`
	X   float64 `json:"x"`
	Y   float64 `json:"y"`
	Bad bool    `json:"bad"`
}

type CatchBoard struct {
	Paddle float64 `json:"paddle"`
	Items  []Item  `json:"items"`
}

type catcher struct {
	*Machine
	paddle     float64
	score      int
	items      []Item
	nextID     int
	sinceSpawn time.Duration
}

func newCatcher(env Env) *catcher {
	return &catcher{Machine: newMachine(env), paddle: 50}
}

func (g *catcher) Kind() registry.Kind {
	return registry.FallingCatch
}

func (g *catcher) Start() {
	g.timers.Frames(g.advance)
}

// advance integrates the field over elapsed time
func (g *catcher) advance(elapsed time.Duration) {
	for elapsed > 0 && !g.stopped {
		step := elapsed
		if step > catchMaxStep {
			step = catchMaxStep
		}
		elapsed -= step
		g.step(step)
	}
}

func (g *catcher) step(dt time.Duration) {
	g.sinceSpawn += dt
	if g.sinceSpawn >= catchSpawnEvery {
		g.sinceSpawn -= catchSpawnEvery
		g.spawn()
	}

	fall := catchFallRate * dt.Seconds()
	falling := make([]Item, 0, len(g.items))
	for _, item := range g.items {
		y := item.Y + fall
		if y > catchBandTop && y < catchBandBottom && math.Abs(item.X-g.paddle) < catchReach {
			g.catch(item)
			continue
		}
		if y < 100 {
			item.Y = y
			falling = append(falling, item)
		}
	}
	g.items = falling
}

func (g *catcher) spawn() {
	g.nextID++
	x := g.rand().Float64()*90 + 5
	bad := g.rand().Float64() > catchBadAbove
	g.items = append(g.items, Item{ID: g.nextID, X: x, Y: -10, Bad: bad})
}

func (g *catcher) catch(item Item) {
	if item.Bad {
		g.score -= catchPenalty
		if g.score < 0 {
			g.score = 0
		}
		return
	}
	g.score++
	if g.score >= catchGoal {
		g.status = Correct
		g.win()
	}
}

func (g *catcher) Handle(in protocol.Input) error {
	if err := g.guard(); err != nil {
		return err
	}
	if in.Action != protocol.Move {
		return unknownAction(g.Kind(), in.Action)
	}
	g.paddle = math.Max(0, math.Min(100, in.X))
	return nil
}

func (g *catcher) View() View {
	items := make([]Item, len(g.items))
	copy(items, g.items)
	return g.view(g, g.score, catchGoal, CatchBoard{Paddle: g.paddle, Items: items})
}
