package game

import (
	"time"

	"github.com/minaorangina/arcade/protocol"
	"github.com/minaorangina/arcade/registry"
)

const (
	techMaxComponents = 5
	techWrongFor      = 500 * time.Millisecond
	techWinDelay      = 600 * time.Millisecond
)

type TechBoard struct {
	Stage      int      `json:"stage"`
	Riddle     Riddle   `json:"riddle"`
	WrongPick  int      `json:"wrongPick"`
	Build      Build    `json:"build"`
	Palette    []string `json:"palette"`
	Components []string `json:"components"`
}

type techChallenge struct {
	*Machine
	riddle     Riddle
	build      Build
	building   bool
	wrongPick  int
	components []string
}

func newTechChallenge(env Env) *techChallenge {
	return &techChallenge{Machine: newMachine(env), wrongPick: -1}
}

func (g *techChallenge) Kind() registry.Kind {
	return registry.TechChallenge
}

func (g *techChallenge) Start() {
	g.riddle = itRiddles[g.rand().Intn(len(itRiddles))]
	g.build = itBuilds[g.rand().Intn(len(itBuilds))]
}

func (g *techChallenge) Handle(in protocol.Input) error {
	if err := g.guard(); err != nil {
		return err
	}

	switch in.Action {
	case protocol.Answer:
		if g.building {
			return nil
		}
		if in.Index < 0 || in.Index >= len(g.riddle.Options) {
			return invalidInput(g.Kind(), "no option %d", in.Index)
		}
		if in.Index == g.riddle.Correct {
			if g.flashT != nil {
				g.flashT.Stop()
			}
			g.status, g.wrongPick = Idle, -1
			g.building = true
			return nil
		}
		g.wrongPick = in.Index
		g.flash(Wrong, techWrongFor, func() { g.wrongPick = -1 })
		return nil

	case protocol.Build:
		if !g.building || g.status == Correct {
			return nil
		}
		if !inPalette(in.ID) {
			return invalidInput(g.Kind(), "no component %q", in.ID)
		}
		if len(g.components) >= techMaxComponents {
			return nil
		}
		g.components = append(g.components, in.ID)
		if covers(g.components, g.build.Required) {
			g.status = Correct
			g.winAfter(techWinDelay)
		}
		return nil

	case protocol.Clear:
		if g.building && g.status != Correct {
			g.components = nil
		}
		return nil
	}

	return unknownAction(g.Kind(), in.Action)
}

func inPalette(id string) bool {
	for _, p := range buildPalette {
		if p == id {
			return true
		}
	}
	return false
}

// covers reports whether have contains required as a multiset
func covers(have, required []string) bool {
	counts := map[string]int{}
	for _, c := range have {
		counts[c]++
	}
	for _, r := range required {
		if counts[r] == 0 {
			return false
		}
		counts[r]--
	}
	return true
}

func (g *techChallenge) View() View {
	stage := 1
	if g.building {
		stage = 2
	}
	score := stage - 1
	if g.status == Correct {
		score = 2
	}
	components := make([]string, len(g.components))
	copy(components, g.components)

	return g.view(g, score, 2, TechBoard{
		Stage:      stage,
		Riddle:     g.riddle,
		WrongPick:  g.wrongPick,
		Build:      g.build,
		Palette:    buildPalette,
		Components: components,
	})
}
