package game

import (
	"time"

	"github.com/minaorangina/arcade/protocol"
	"github.com/minaorangina/arcade/registry"
	"github.com/minaorangina/arcade/sched"
)

// The runner is simulated in fixed 60Hz steps on a 600x300 field, y down.
const (
	runnerGoal   = 2
	runnerStep   = time.Second / 60
	runnerWidth  = 600.0
	runnerHeight = 300.0
	// lowest top edge of the player, standing on a floor 10 high
	runnerGround     = runnerHeight - 60
	runnerGravity    = 0.6
	runnerJumpForce  = -10.0
	runnerSpeed      = 5.0
	runnerSpawnEvery = 100
	runnerPlayerX    = 50.0
	runnerPlayerW    = 30.0
	runnerPlayerH    = 50.0
	runnerObstacleW  = 20.0
)

type Obstacle struct {
	X float64 `json:"x"`
	W float64 `json:"w"`
	H float64 `json:"h"`
}

type RunnerBoard struct {
	Width     float64    `json:"width"`
	Height    float64    `json:"height"`
	PlayerY   float64    `json:"playerY"`
	Jumping   bool       `json:"jumping"`
	Obstacles []Obstacle `json:"obstacles"`
	Frame     int        `json:"frame"`
	Lost      bool       `json:"lost"`
	HighScore int        `json:"highScore"`
}

// runner jumps a stick figure over obstacles scrolling in from the right.
// Hitting one ends the run until the next jump starts a fresh one.
type runner struct {
	*Machine
	frames    sched.Timer
	acc       time.Duration
	playerY   float64
	velocity  float64
	jumping   bool
	obstacles []Obstacle
	frame     int
	score     int
	lost      bool
	highScore int
}

func newRunner(env Env) *runner {
	return &runner{Machine: newMachine(env), playerY: runnerGround}
}

func (g *runner) Kind() registry.Kind {
	return registry.PixelRunner
}

func (g *runner) Start() {
	g.frames = g.timers.Frames(g.advance)
}

// advance runs one step per elapsed 60th of a second
func (g *runner) advance(elapsed time.Duration) {
	g.acc += elapsed
	for g.acc >= runnerStep && g.running() {
		g.acc -= runnerStep
		g.step()
	}
}

func (g *runner) running() bool {
	return !g.stopped && !g.lost && !g.won
}

func (g *runner) step() {
	if g.score >= runnerGoal {
		g.keepHighScore()
		g.halt()
		g.status = Correct
		g.win()
		return
	}

	g.velocity += runnerGravity
	g.playerY += g.velocity
	if g.playerY > runnerGround {
		g.playerY = runnerGround
		g.velocity = 0
		g.jumping = false
	}

	g.frame++
	if g.frame%runnerSpawnEvery == 0 {
		h := 60.0
		if g.rand().Float64() > 0.5 {
			h = 40
		}
		g.obstacles = append(g.obstacles, Obstacle{X: runnerWidth, W: runnerObstacleW, H: h})
	}

	for i := range g.obstacles {
		g.obstacles[i].X -= runnerSpeed
	}
	if len(g.obstacles) > 0 && g.obstacles[0].X < -runnerObstacleW {
		g.obstacles = g.obstacles[1:]
		g.score++
	}

	for _, o := range g.obstacles {
		if g.hits(o) {
			g.lost = true
			g.status = Wrong
			g.keepHighScore()
			g.halt()
			return
		}
	}
}

func (g *runner) hits(o Obstacle) bool {
	top := runnerHeight - o.H
	return runnerPlayerX < o.X+o.W &&
		runnerPlayerX+runnerPlayerW > o.X &&
		g.playerY < top+o.H &&
		g.playerY+runnerPlayerH > top
}

func (g *runner) keepHighScore() {
	if g.score > g.highScore {
		g.highScore = g.score
	}
}

// halt stops the frame clock while nothing moves
func (g *runner) halt() {
	if g.frames != nil {
		g.frames.Stop()
	}
}

// reset starts a fresh run, keeping the high score
func (g *runner) reset() {
	g.playerY = runnerGround
	g.velocity = 0
	g.jumping = false
	g.obstacles = nil
	g.frame = 0
	g.score = 0
	g.lost = false
	g.acc = 0
	g.status = Idle
	g.frames = g.timers.Frames(g.advance)
}

func (g *runner) Handle(in protocol.Input) error {
	if err := g.guard(); err != nil {
		return err
	}
	if in.Action != protocol.Jump {
		return unknownAction(g.Kind(), in.Action)
	}
	if g.frames == nil {
		return ErrNotStarted
	}

	switch {
	case g.won:
		// the win screen takes over
	case g.lost:
		g.reset()
	case !g.jumping:
		g.velocity = runnerJumpForce
		g.jumping = true
	}
	return nil
}

func (g *runner) View() View {
	obstacles := make([]Obstacle, len(g.obstacles))
	copy(obstacles, g.obstacles)
	return g.view(g, g.score, runnerGoal, RunnerBoard{
		Width:     runnerWidth,
		Height:    runnerHeight,
		PlayerY:   g.playerY,
		Jumping:   g.jumping,
		Obstacles: obstacles,
		Frame:     g.frame,
		Lost:      g.lost,
		HighScore: g.highScore,
	})
}
