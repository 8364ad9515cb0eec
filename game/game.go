// Package game holds the arcade's mini-games.
//
// Every kind is a self-contained state machine built on Machine: it draws
// its content when started, reacts to protocol.Input, and reports a win
// through Env.OnWin at most once. Stop cancels everything a game scheduled.
package game

import (
	"errors"
	"fmt"

	"github.com/minaorangina/arcade/protocol"
	"github.com/minaorangina/arcade/registry"
	"github.com/minaorangina/arcade/sched"
)

var (
	ErrStopped       = errors.New("game has stopped")
	ErrUnknownAction = errors.New("unknown action")
	ErrInvalidInput  = errors.New("invalid input")
	ErrUnknownKind   = errors.New("unknown game kind")
	ErrNoScheduler   = errors.New("game needs a scheduler")
	ErrNotStarted    = errors.New("game has not started")
)

// Rand is the randomness a game draws its content from
type Rand interface {
	Intn(n int) int
	Float64() float64
	Shuffle(n int, swap func(i, j int))
}

// Env is everything a game receives from the stage that mounts it
type Env struct {
	Descriptor registry.Descriptor
	Rand       Rand
	Sched      sched.Scheduler
	OnWin      func()
}

type Game interface {
	Kind() registry.Kind
	// Start draws the session's content and starts its timers
	Start()
	Handle(in protocol.Input) error
	View() View
	// Stop cancels every timer; further input returns ErrStopped
	Stop()
	Won() bool
}

// View is what a renderer needs to draw a game. Board holds the
// kind-specific state.
type View struct {
	Kind   registry.Kind `json:"kind"`
	Status Status        `json:"status"`
	Score  int           `json:"score"`
	Goal   int           `json:"goal"`
	Board  interface{}   `json:"board"`
}

// New constructs an unstarted game of the given kind
func New(kind registry.Kind, env Env) (Game, error) {
	if env.Sched == nil {
		return nil, ErrNoScheduler
	}
	if env.Rand == nil {
		return nil, fmt.Errorf("%s: %w", kind, ErrInvalidInput)
	}

	switch kind {
	case registry.RingCipher:
		return newCipher(env), nil
	case registry.MemorySequence:
		return newMemory(env), nil
	case registry.ReflexGrid:
		return newReflex(env), nil
	case registry.FallingCatch:
		return newCatcher(env), nil
	case registry.RhythmTimingLock:
		return newRhythm(env), nil
	case registry.SequenceOrdering:
		return newOrdering(env), nil
	case registry.RoleGuessing:
		return newRoleGuess(env), nil
	case registry.SpinStory:
		return newSpinStory(env), nil
	case registry.TechChallenge:
		return newTechChallenge(env), nil
	case registry.PixelRunner:
		return newRunner(env), nil
	case registry.OneMinutePitchBuilder,
		registry.ChaosOrganizer,
		registry.CreativeConstraintWriter,
		registry.VisualAnalysis,
		registry.SystemDecomposition:
		return newBuilder(kind, env), nil
	}

	return nil, fmt.Errorf("%w: %d", ErrUnknownKind, int(kind))
}

func unknownAction(kind registry.Kind, action protocol.Action) error {
	return fmt.Errorf("%w: %s does not handle %q", ErrUnknownAction, kind, action)
}

func invalidInput(kind registry.Kind, format string, args ...interface{}) error {
	return fmt.Errorf("%w: %s: %s", ErrInvalidInput, kind, fmt.Sprintf(format, args...))
}
