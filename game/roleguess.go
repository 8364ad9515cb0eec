package game

import (
	"strings"
	"time"

	"github.com/minaorangina/arcade/protocol"
	"github.com/minaorangina/arcade/registry"
	"github.com/zyedidia/generic/mapset"
)

const (
	roleQuestionsOffered = 5
	roleWrongFor         = 500 * time.Millisecond
)

type Answer struct {
	Question string `json:"question"`
	Yes      bool   `json:"yes"`
}

type RoleBoard struct {
	Questions  []Question `json:"questions"`
	History    []Answer   `json:"history"`
	Roles      []Role     `json:"roles"`
	Guessing   bool       `json:"guessing"`
	WrongGuess string     `json:"wrongGuess,omitempty"`
}

type roleGuess struct {
	*Machine
	hidden     Role
	questions  []Question
	asked      mapset.Set[string]
	history    []Answer
	guessing   bool
	wrongGuess string
}

func newRoleGuess(env Env) *roleGuess {
	return &roleGuess{Machine: newMachine(env), asked: mapset.New[string]()}
}

func (g *roleGuess) Kind() registry.Kind {
	return registry.RoleGuessing
}

func (g *roleGuess) Start() {
	g.hidden = hrRoles[g.rand().Intn(len(hrRoles))]

	pool := make([]Question, len(hrQuestions))
	copy(pool, hrQuestions)
	g.rand().Shuffle(len(pool), func(i, j int) {
		pool[i], pool[j] = pool[j], pool[i]
	})
	g.questions = pool[:roleQuestionsOffered]
}

// answer is the hidden role's reply to a question
func (g *roleGuess) answer(q Question) bool {
	if strings.HasPrefix(q.ID, "!") {
		return !g.hidden.Traits[strings.TrimPrefix(q.ID, "!")]
	}
	return g.hidden.Traits[q.ID]
}

func (g *roleGuess) offered(id string) (Question, bool) {
	for _, q := range g.questions {
		if q.ID == id {
			return q, true
		}
	}
	return Question{}, false
}

func (g *roleGuess) Handle(in protocol.Input) error {
	if err := g.guard(); err != nil {
		return err
	}
	if g.won {
		return nil
	}

	switch in.Action {
	case protocol.Ask:
		q, ok := g.offered(in.ID)
		if !ok {
			return invalidInput(g.Kind(), "question %q is not on offer", in.ID)
		}
		if g.guessing || g.asked.Has(q.ID) {
			return nil
		}
		g.asked.Put(q.ID)
		g.history = append(g.history, Answer{Question: q.Text, Yes: g.answer(q)})
		return nil

	case protocol.Guessing:
		g.guessing = in.On
		return nil

	case protocol.Guess:
		if !knownRole(in.ID) {
			return invalidInput(g.Kind(), "no role %q", in.ID)
		}
		if in.ID == g.hidden.ID {
			g.status = Correct
			g.win()
			return nil
		}
		g.wrongGuess = in.ID
		g.flash(Wrong, roleWrongFor, func() { g.wrongGuess = "" })
		return nil
	}

	return unknownAction(g.Kind(), in.Action)
}

func knownRole(id string) bool {
	for _, r := range hrRoles {
		if r.ID == id {
			return true
		}
	}
	return false
}

func (g *roleGuess) View() View {
	questions := make([]Question, len(g.questions))
	copy(questions, g.questions)
	history := make([]Answer, len(g.history))
	copy(history, g.history)

	return g.view(g, len(g.history), len(g.questions), RoleBoard{
		Questions:  questions,
		History:    history,
		Roles:      hrRoles,
		Guessing:   g.guessing,
		WrongGuess: g.wrongGuess,
	})
}
