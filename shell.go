// Package arcade is the department arcade: a selection grid of departments,
// each opening a stage on which its mini-game is played.
package arcade

import (
	"errors"
	"fmt"

	"github.com/minaorangina/arcade/engine"
	"github.com/minaorangina/arcade/game"
	"github.com/minaorangina/arcade/protocol"
	"github.com/minaorangina/arcade/registry"
)

var ErrUnknownCommand = errors.New("unknown command")

// Shell is the selection grid and the modal stage it opens
type Shell struct {
	reg   registry.Registry
	stage *engine.Stage
}

func NewShell(reg registry.Registry, stage *engine.Stage) *Shell {
	return &Shell{reg: reg, stage: stage}
}

func (s *Shell) Departments() []registry.Department {
	return s.reg.Departments()
}

// Open mounts a department's stage. A non-empty kind swaps in another game
// for practice.
func (s *Shell) Open(departmentID, kind string) error {
	if kind == "" {
		s.stage.Mount(departmentID)
		return nil
	}

	k, err := registry.ParseKind(kind)
	if err != nil {
		return fmt.Errorf("%w: %q", game.ErrUnknownKind, kind)
	}
	return s.stage.MountKind(departmentID, k)
}

// Close closes the modal, tearing down whatever was running in it
func (s *Shell) Close() {
	s.stage.Unmount()
}

func (s *Shell) Snapshot() engine.Snapshot {
	return s.stage.Snapshot()
}

// Receive applies one inbound message
func (s *Shell) Receive(msg protocol.InboundMessage) error {
	switch msg.Command {
	case protocol.Departments, protocol.Snapshot:
		return nil
	case protocol.Open:
		return s.Open(msg.Department, msg.Kind)
	case protocol.Close:
		s.Close()
		return nil
	case protocol.Start:
		return s.stage.Start()
	case protocol.Abort:
		return s.stage.Abort()
	case protocol.Restart:
		return s.stage.Restart()
	case protocol.Play:
		if msg.Input == nil {
			return fmt.Errorf("%w: play needs an input", game.ErrInvalidInput)
		}
		return s.stage.Handle(*msg.Input)
	}

	return fmt.Errorf("%w: %s", ErrUnknownCommand, msg.Command)
}
