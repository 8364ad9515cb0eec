// Package engine runs the intro → game → win flow around whichever game a
// department plays.
package engine

import (
	"errors"
	"fmt"
	"time"

	"github.com/minaorangina/arcade/game"
	"github.com/minaorangina/arcade/protocol"
	"github.com/minaorangina/arcade/registry"
	"github.com/minaorangina/arcade/sched"
)

// QuoteRuneEvery is the typewriter pace of the closing quote
const QuoteRuneEvery = 20 * time.Millisecond

var (
	ErrInvalidTransition = errors.New("invalid stage transition")
	ErrNotMounted        = errors.New("no department is mounted")
	ErrNotPlaying        = errors.New("no game in progress")
	ErrIncompleteOpts    = errors.New("stage needs a scheduler and a source of randomness")
)

// GameFactory constructs an unstarted game
type GameFactory func(kind registry.Kind, env game.Env) (game.Game, error)

type StageOpts struct {
	Registry  registry.Registry
	Scheduler sched.Scheduler
	Rand      game.Rand
	// NewGame defaults to game.New
	NewGame GameFactory
	OnEvent func(Event)
}

// Stage is the modal a department's game is played in. All methods must be
// called from the goroutine that runs the scheduler's callbacks.
type Stage struct {
	opts    StageOpts
	timers  *sched.Group
	screen  Screen
	deptID  string
	desc    registry.Descriptor
	game    game.Game
	session int
	started time.Time
	quote   []rune
	shown   int
}

func NewStage(opts StageOpts) (*Stage, error) {
	if opts.Scheduler == nil || opts.Rand == nil {
		return nil, ErrIncompleteOpts
	}
	if opts.Registry == nil {
		opts.Registry = registry.Default()
	}
	if opts.NewGame == nil {
		opts.NewGame = game.New
	}

	return &Stage{
		opts:   opts,
		timers: sched.NewGroup(opts.Scheduler),
	}, nil
}

func (s *Stage) Screen() Screen {
	return s.screen
}

func (s *Stage) DepartmentID() string {
	return s.deptID
}

func (s *Stage) Descriptor() registry.Descriptor {
	return s.desc
}

// Mount opens the stage on a department's intro screen, discarding any
// session in progress
func (s *Stage) Mount(departmentID string) {
	s.mount(departmentID, s.opts.Registry.Resolve(departmentID))
}

// MountKind mounts a department with another game for practice play
func (s *Stage) MountKind(departmentID string, kind registry.Kind) error {
	if !kind.Valid() {
		return fmt.Errorf("%w: %d", game.ErrUnknownKind, int(kind))
	}
	s.mount(departmentID, s.opts.Registry.Resolve(departmentID).WithKind(kind))
	return nil
}

func (s *Stage) mount(departmentID string, desc registry.Descriptor) {
	s.teardown()
	s.screen = Intro
	s.deptID = departmentID
	s.desc = desc
}

// Unmount tears the session down and closes the stage
func (s *Stage) Unmount() {
	s.teardown()
	s.screen = Unmounted
	s.deptID = ""
	s.desc = registry.Descriptor{}
}

// Start draws a fresh session and moves from intro to the game
func (s *Stage) Start() error {
	switch s.screen {
	case Unmounted:
		return ErrNotMounted
	case Intro:
	default:
		return fmt.Errorf("%w: start from %s", ErrInvalidTransition, s.screen)
	}

	session := s.session + 1
	g, err := s.opts.NewGame(s.desc.Kind, game.Env{
		Descriptor: s.desc,
		Rand:       s.opts.Rand,
		Sched:      s.opts.Scheduler,
		OnWin:      s.winner(session),
	})
	if err != nil {
		return err
	}

	s.session = session
	s.game = g
	s.screen = Playing
	s.started = s.opts.Scheduler.Now()
	g.Start()

	s.emit(Started)
	return nil
}

// Abort abandons the game or the win screen for the intro
func (s *Stage) Abort() error {
	return s.back("abort")
}

// Restart returns to the intro so a fresh session can be started
func (s *Stage) Restart() error {
	return s.back("restart")
}

func (s *Stage) back(action string) error {
	switch s.screen {
	case Unmounted:
		return ErrNotMounted
	case Intro:
		return fmt.Errorf("%w: %s from %s", ErrInvalidTransition, action, s.screen)
	}
	s.teardown()
	s.screen = Intro
	return nil
}

// Handle forwards gameplay input to the mounted game
func (s *Stage) Handle(in protocol.Input) error {
	switch s.screen {
	case Unmounted:
		return ErrNotMounted
	case Playing:
		return s.game.Handle(in)
	}
	return ErrNotPlaying
}

// winner is the win callback for one session. Calls for any other session,
// or outside the game screen, do nothing.
func (s *Stage) winner(session int) func() {
	return func() {
		if session != s.session || s.screen != Playing {
			return
		}
		s.game.Stop()
		s.screen = Win
		s.emit(Won)
		s.reveal()
	}
}

func (s *Stage) reveal() {
	s.quote = []rune(s.desc.Quote)
	s.shown = 0
	if len(s.quote) == 0 {
		return
	}

	var typing sched.Timer
	typing = s.timers.Every(QuoteRuneEvery, func() {
		s.shown++
		if s.shown >= len(s.quote) {
			typing.Stop()
		}
	})
}

// teardown stops the session's game and every stage timer, reporting a
// game abandoned mid-play
func (s *Stage) teardown() {
	if s.screen == Playing {
		s.emit(Aborted)
	}
	if s.game != nil {
		s.game.Stop()
		s.game = nil
	}
	s.timers.StopAll()
	s.quote = nil
	s.shown = 0
}

func (s *Stage) emit(t EventType) {
	if s.opts.OnEvent == nil {
		return
	}
	s.opts.OnEvent(Event{
		Type:         t,
		DepartmentID: s.deptID,
		Kind:         s.desc.Kind,
		Session:      s.session,
		StartedAt:    s.started,
		At:           s.opts.Scheduler.Now(),
	})
}

// Snapshot is the stage as a renderer sees it
func (s *Stage) Snapshot() Snapshot {
	snap := Snapshot{
		Screen:       s.screen,
		DepartmentID: s.deptID,
		Session:      s.session,
	}
	if s.screen == Unmounted {
		return snap
	}

	desc := s.desc
	snap.Descriptor = &desc
	if s.game != nil {
		view := s.game.View()
		snap.Game = &view
	}
	if s.screen == Win {
		snap.Quote = string(s.quote[:s.shown])
		snap.QuoteDone = s.shown >= len(s.quote)
	}
	return snap
}
