package protocol

import "fmt"

// Cmd represents a command
type Cmd int

const (
	Null Cmd = iota
	// combining shell and stage protocol messages.
	Departments
	Open
	Close
	Start
	Abort
	Restart
	Play
	// Snapshot is sent inbound to ask for a fresh one
	Snapshot
	// outbound only
	Won
	Error
)

var CmdNames = map[Cmd]string{
	Null:        "Null",
	Departments: "Departments",
	Open:        "Open",
	Close:       "Close",
	Start:       "Start",
	Abort:       "Abort",
	Restart:     "Restart",
	Play:        "Play",
	Snapshot:    "Snapshot",
	Won:         "Won",
	Error:       "Error",
}

var NameToCmd = map[string]Cmd{
	"Null":        Null,
	"Departments": Departments,
	"Open":        Open,
	"Close":       Close,
	"Start":       Start,
	"Abort":       Abort,
	"Restart":     Restart,
	"Play":        Play,
	"Snapshot":    Snapshot,
	"Won":         Won,
	"Error":       Error,
}

func (c Cmd) String() string {
	return CmdNames[c]
}

func (c Cmd) MarshalText() ([]byte, error) {
	name, ok := CmdNames[c]
	if !ok {
		return nil, fmt.Errorf("unknown command %d", int(c))
	}
	return []byte(name), nil
}

func (c *Cmd) UnmarshalText(text []byte) error {
	cmd, ok := NameToCmd[string(text)]
	if !ok {
		return fmt.Errorf("unknown command %q", string(text))
	}
	*c = cmd
	return nil
}
