package game

import (
	"strings"
	"time"

	"github.com/minaorangina/arcade/protocol"
	"github.com/minaorangina/arcade/registry"
	"github.com/minaorangina/arcade/sched"
)

const builderWinDelay = time.Second

type builderLayout struct {
	prompts   []Prompt
	fields    []Field
	countdown time.Duration
}

var builderLayouts = map[registry.Kind]builderLayout{
	registry.OneMinutePitchBuilder:    {pitchPrompts, pitchFields, 60 * time.Second},
	registry.ChaosOrganizer:           {chaosPrompts, chaosFields, 90 * time.Second},
	registry.CreativeConstraintWriter: {creativePrompts, creativeFields, 90 * time.Second},
	registry.VisualAnalysis:           {visualPrompts, visualFields, 90 * time.Second},
	registry.SystemDecomposition:      {systemPrompts, systemFields, 120 * time.Second},
}

type FieldValue struct {
	Field
	Value string `json:"value"`
}

type BuilderBoard struct {
	Prompt    Prompt       `json:"prompt"`
	Fields    []FieldValue `json:"fields"`
	Remaining int          `json:"remainingSeconds"`
	Expired   bool         `json:"expired"`
	CanSubmit bool         `json:"canSubmit"`
	Submitted bool         `json:"submitted"`
}

// builder is the shared shape of the text-entry kinds: a drawn prompt,
// required fields and a countdown that only ever stops.
type builder struct {
	*Machine
	kind      registry.Kind
	layout    builderLayout
	prompt    Prompt
	values    map[string]string
	remaining time.Duration
	clock     sched.Timer
	submitted bool
}

func newBuilder(kind registry.Kind, env Env) *builder {
	layout := builderLayouts[kind]
	return &builder{
		Machine:   newMachine(env),
		kind:      kind,
		layout:    layout,
		values:    map[string]string{},
		remaining: layout.countdown,
	}
}

func (g *builder) Kind() registry.Kind {
	return g.kind
}

func (g *builder) Start() {
	g.prompt = g.layout.prompts[g.rand().Intn(len(g.layout.prompts))]
	g.clock = g.timers.Every(time.Second, g.tick)
}

func (g *builder) tick() {
	g.remaining -= time.Second
	if g.remaining <= 0 {
		g.remaining = 0
		g.clock.Stop()
	}
}

func (g *builder) hasField(name string) bool {
	for _, f := range g.layout.fields {
		if f.Name == name {
			return true
		}
	}
	return false
}

// CanSubmit reports whether every required field holds more than whitespace
func (g *builder) CanSubmit() bool {
	for _, f := range g.layout.fields {
		if strings.TrimSpace(g.values[f.Name]) == "" {
			return false
		}
	}
	return true
}

func (g *builder) Handle(in protocol.Input) error {
	if err := g.guard(); err != nil {
		return err
	}
	if g.clock == nil {
		return ErrNotStarted
	}

	switch in.Action {
	case protocol.Type:
		if !g.hasField(in.Field) {
			return invalidInput(g.kind, "no field %q", in.Field)
		}
		if g.submitted {
			return nil
		}
		g.values[in.Field] = in.Text
		return nil

	case protocol.Submit:
		if g.submitted || !g.CanSubmit() {
			return nil
		}
		g.submitted = true
		g.clock.Stop()
		g.status = Correct
		g.winAfter(builderWinDelay)
		return nil
	}

	return unknownAction(g.kind, in.Action)
}

func (g *builder) View() View {
	fields := make([]FieldValue, 0, len(g.layout.fields))
	filled := 0
	for _, f := range g.layout.fields {
		v := g.values[f.Name]
		if strings.TrimSpace(v) != "" {
			filled++
		}
		fields = append(fields, FieldValue{Field: f, Value: v})
	}

	return g.view(g, filled, len(g.layout.fields), BuilderBoard{
		Prompt:    g.prompt,
		Fields:    fields,
		Remaining: int(g.remaining / time.Second),
		Expired:   g.remaining == 0,
		CanSubmit: !g.submitted && g.CanSubmit(),
		Submitted: g.submitted,
	})
}
