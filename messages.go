package arcade

import (
	"github.com/minaorangina/arcade/engine"
	"github.com/minaorangina/arcade/protocol"
	"github.com/minaorangina/arcade/registry"
)

// OutboundMessage is a message from an arcade to the visitor's clients
type OutboundMessage struct {
	ArcadeID    string                `json:"arcadeID"`
	Command     protocol.Cmd          `json:"command"`
	Departments []registry.Department `json:"departments,omitempty"`
	Snapshot    *engine.Snapshot      `json:"snapshot,omitempty"`
	Error       string                `json:"error,omitempty"`
}

func buildErrorMessage(arcadeID string, err error) OutboundMessage {
	return OutboundMessage{
		ArcadeID: arcadeID,
		Command:  protocol.Error,
		Error:    err.Error(),
	}
}

func buildSnapshotMessage(arcadeID string, snap engine.Snapshot) OutboundMessage {
	return OutboundMessage{
		ArcadeID: arcadeID,
		Command:  protocol.Snapshot,
		Snapshot: &snap,
	}
}
