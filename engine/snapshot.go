package engine

import (
	"fmt"
	"time"

	"github.com/minaorangina/arcade/game"
	"github.com/minaorangina/arcade/registry"
)

// Screen is where the stage is in its flow
type Screen int

const (
	Unmounted Screen = iota
	Intro
	Playing
	Win
)

var screenNames = map[Screen]string{
	Unmounted: "unmounted",
	Intro:     "intro",
	Playing:   "game",
	Win:       "win",
}

func (s Screen) String() string {
	return screenNames[s]
}

func (s Screen) MarshalText() ([]byte, error) {
	name, ok := screenNames[s]
	if !ok {
		return nil, fmt.Errorf("unknown screen %d", int(s))
	}
	return []byte(name), nil
}

func (s *Screen) UnmarshalText(text []byte) error {
	for screen, name := range screenNames {
		if name == string(text) {
			*s = screen
			return nil
		}
	}
	return fmt.Errorf("unknown screen %q", string(text))
}

type EventType int

const (
	Started EventType = iota
	Won
	Aborted
)

var eventNames = map[EventType]string{
	Started: "started",
	Won:     "won",
	Aborted: "aborted",
}

func (e EventType) String() string {
	return eventNames[e]
}

func (e EventType) MarshalText() ([]byte, error) {
	name, ok := eventNames[e]
	if !ok {
		return nil, fmt.Errorf("unknown event %d", int(e))
	}
	return []byte(name), nil
}

// Event reports a session boundary. StartedAt is when the session began;
// At is when this event happened, both on the stage's clock.
type Event struct {
	Type         EventType     `json:"type"`
	DepartmentID string        `json:"departmentID"`
	Kind         registry.Kind `json:"kind"`
	Session      int           `json:"session"`
	StartedAt    time.Time     `json:"startedAt"`
	At           time.Time     `json:"at"`
}

// Duration is how long the session had been running at the event
func (e Event) Duration() time.Duration {
	return e.At.Sub(e.StartedAt)
}

type Snapshot struct {
	Screen       Screen               `json:"screen"`
	DepartmentID string               `json:"departmentID,omitempty"`
	Descriptor   *registry.Descriptor `json:"descriptor,omitempty"`
	Game         *game.View           `json:"game,omitempty"`
	// Quote is the part of the closing quote revealed so far
	Quote     string `json:"quote,omitempty"`
	QuoteDone bool   `json:"quoteDone,omitempty"`
	Session   int    `json:"session"`
}
