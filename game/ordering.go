package game

import (
	"time"

	"github.com/minaorangina/arcade/protocol"
	"github.com/minaorangina/arcade/registry"
)

const (
	orderingWinDelay = 800 * time.Millisecond
	orderingWrongFor = time.Second
)

type OrderingBoard struct {
	Scenario string `json:"scenario"`
	Items    []Step `json:"items"`
}

type ordering struct {
	*Machine
	table    []Scenario
	scenario Scenario
	items    []Step
}

func newOrdering(env Env) *ordering {
	table, ok := orderingScenarios[env.Descriptor.Scenario]
	if !ok {
		table = orderingScenarios[defaultOrderingTable]
	}
	return &ordering{Machine: newMachine(env), table: table}
}

func (g *ordering) Kind() registry.Kind {
	return registry.SequenceOrdering
}

func (g *ordering) Start() {
	g.scenario = g.table[g.rand().Intn(len(g.table))]
	g.items = make([]Step, len(g.scenario.Steps))
	copy(g.items, g.scenario.Steps)
	g.rand().Shuffle(len(g.items), func(i, j int) {
		g.items[i], g.items[j] = g.items[j], g.items[i]
	})
}

func (g *ordering) Handle(in protocol.Input) error {
	if err := g.guard(); err != nil {
		return err
	}
	if g.status == Correct {
		return nil
	}

	switch in.Action {
	case protocol.Swap:
		if !g.inRange(in.Index) || !g.inRange(in.To) {
			return invalidInput(g.Kind(), "cannot swap %d and %d", in.Index, in.To)
		}
		g.items[in.Index], g.items[in.To] = g.items[in.To], g.items[in.Index]
		return nil

	case protocol.Order:
		items, err := g.arrange(in.Order)
		if err != nil {
			return err
		}
		g.items = items
		return nil

	case protocol.Submit:
		g.check()
		return nil
	}

	return unknownAction(g.Kind(), in.Action)
}

func (g *ordering) inRange(i int) bool {
	return i >= 0 && i < len(g.items)
}

// arrange maps ids onto the scenario's steps. The ids must be a
// permutation of the scenario.
func (g *ordering) arrange(ids []string) ([]Step, error) {
	if len(ids) != len(g.scenario.Steps) {
		return nil, invalidInput(g.Kind(), "expected %d steps, got %d", len(g.scenario.Steps), len(ids))
	}

	byID := map[string]Step{}
	for _, s := range g.scenario.Steps {
		byID[s.ID] = s
	}

	items := make([]Step, 0, len(ids))
	for _, id := range ids {
		step, ok := byID[id]
		if !ok {
			return nil, invalidInput(g.Kind(), "unknown or repeated step %q", id)
		}
		delete(byID, id)
		items = append(items, step)
	}
	return items, nil
}

func (g *ordering) inOrder() bool {
	for i, s := range g.scenario.Steps {
		if g.items[i].ID != s.ID {
			return false
		}
	}
	return true
}

func (g *ordering) check() {
	if g.inOrder() {
		if g.flashT != nil {
			g.flashT.Stop()
		}
		g.status = Correct
		g.winAfter(orderingWinDelay)
		return
	}
	g.flash(Wrong, orderingWrongFor, nil)
}

func (g *ordering) placed() int {
	n := 0
	for i, s := range g.scenario.Steps {
		if i < len(g.items) && g.items[i].ID == s.ID {
			n++
		}
	}
	return n
}

func (g *ordering) View() View {
	items := make([]Step, len(g.items))
	copy(items, g.items)
	// steps in place are only reported once solved
	score := 0
	if g.status == Correct {
		score = g.placed()
	}
	return g.view(g, score, len(g.scenario.Steps), OrderingBoard{
		Scenario: g.scenario.Name,
		Items:    items,
	})
}
