package game

import (
	"fmt"
	"time"

	"github.com/minaorangina/arcade/protocol"
	"github.com/minaorangina/arcade/registry"
	"github.com/minaorangina/arcade/sched"
)

const (
	spinTicks       = 16
	spinTickEvery   = 100 * time.Millisecond
	headlineMinLen  = 5
	spinWinAbove    = 0.5
	spinLikesRandom = 500
	spinLikesBase   = 100
	spinLikesPerCh  = 10
)

type Phase int

const (
	Spinning Phase = iota
	Writing
	Published
)

var phaseNames = map[Phase]string{
	Spinning:  "spin",
	Writing:   "write",
	Published: "result",
}

func (p Phase) String() string {
	return phaseNames[p]
}

func (p Phase) MarshalText() ([]byte, error) {
	name, ok := phaseNames[p]
	if !ok {
		return nil, fmt.Errorf("unknown phase %d", int(p))
	}
	return []byte(name), nil
}

type SpinBoard struct {
	Phase    Phase  `json:"phase"`
	Topic    string `json:"topic"`
	Spinning bool   `json:"spinning"`
	Headline string `json:"headline"`
	Likes    int    `json:"likes"`
	Shares   int    `json:"shares"`
}

type spinStory struct {
	*Machine
	phase    Phase
	topic    string
	wheel    sched.Timer
	ticks    int
	headline string
	likes    int
	shares   int
}

func newSpinStory(env Env) *spinStory {
	return &spinStory{Machine: newMachine(env)}
}

func (g *spinStory) Kind() registry.Kind {
	return registry.SpinStory
}

func (g *spinStory) Start() {}

func (g *spinStory) spinning() bool {
	return g.wheel != nil && g.wheel.Active()
}

func (g *spinStory) turn() {
	g.topic = prTopics[g.rand().Intn(len(prTopics))]
	g.ticks++
	if g.ticks >= spinTicks {
		g.wheel.Stop()
		g.phase = Writing
	}
}

func (g *spinStory) Handle(in protocol.Input) error {
	if err := g.guard(); err != nil {
		return err
	}

	switch in.Action {
	case protocol.Spin:
		if g.phase != Spinning || g.spinning() {
			return nil
		}
		g.ticks = 0
		g.wheel = g.timers.Every(spinTickEvery, g.turn)
		return nil

	case protocol.Type:
		if g.phase == Writing {
			g.headline = in.Text
		}
		return nil

	case protocol.Publish:
		if g.phase != Writing || len([]rune(g.headline)) < headlineMinLen {
			return nil
		}
		g.likes = g.rand().Intn(spinLikesRandom) + len([]rune(g.headline))*spinLikesPerCh + spinLikesBase
		g.shares = g.likes / 4
		g.phase = Published
		return nil

	case protocol.Next:
		if g.phase != Published {
			return nil
		}
		g.phase = Spinning
		g.topic, g.headline = "", ""
		g.likes, g.shares = 0, 0
		if g.rand().Float64() > spinWinAbove {
			g.status = Correct
			g.win()
		}
		return nil
	}

	return unknownAction(g.Kind(), in.Action)
}

func (g *spinStory) View() View {
	return g.view(g, g.likes, 0, SpinBoard{
		Phase:    g.phase,
		Topic:    g.topic,
		Spinning: g.spinning(),
		Headline: g.headline,
		Likes:    g.likes,
		Shares:   g.shares,
	})
}
