package terminal

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/minaorangina/arcade/protocol"
)

var (
	ErrEmptyCommand   = errors.New("empty command")
	ErrUnknownVerb    = errors.New("unknown command")
	ErrMissingArgs    = errors.New("missing arguments")
	ErrInvalidNumeric = errors.New("not a number")
)

// Command is one parsed line. Local commands never reach the arcade.
type Command struct {
	Msg  protocol.InboundMessage
	Quit bool
	Help bool
}

// Parse turns a line typed at the prompt into a command
func Parse(line string) (Command, error) {
	words := strings.Fields(line)
	if len(words) == 0 {
		return Command{}, ErrEmptyCommand
	}
	verb, args := strings.ToLower(words[0]), words[1:]

	switch verb {
	case "quit", "exit", "q":
		return Command{Quit: true}, nil
	case "help", "?":
		return Command{Help: true}, nil
	case "list", "ls":
		return message(protocol.Departments), nil
	case "show", "look":
		return message(protocol.Snapshot), nil
	case "start":
		return message(protocol.Start), nil
	case "abort":
		return message(protocol.Abort), nil
	case "restart":
		return message(protocol.Restart), nil
	case "close":
		return message(protocol.Close), nil
	case "open":
		if len(args) == 0 {
			return Command{}, fmt.Errorf("%w: open <department> [kind]", ErrMissingArgs)
		}
		cmd := message(protocol.Open)
		cmd.Msg.Department = args[0]
		if len(args) > 1 {
			cmd.Msg.Kind = args[1]
		}
		return cmd, nil
	}

	in, err := parseInput(verb, args)
	if err != nil {
		return Command{}, err
	}
	return Command{Msg: protocol.InboundMessage{Command: protocol.Play, Input: &in}}, nil
}

func message(cmd protocol.Cmd) Command {
	return Command{Msg: protocol.InboundMessage{Command: cmd}}
}

func parseInput(verb string, args []string) (protocol.Input, error) {
	switch verb {
	case "tap", "release", "answer":
		index, err := intArgs(verb, args, 1)
		if err != nil {
			return protocol.Input{}, err
		}
		return protocol.Input{Action: protocol.Action(verb), Index: index[0]}, nil

	case "rotate":
		if len(args) < 2 {
			return protocol.Input{}, fmt.Errorf("%w: rotate <ring> <degrees>", ErrMissingArgs)
		}
		index, err := intArgs(verb, args[:1], 1)
		if err != nil {
			return protocol.Input{}, err
		}
		delta, err := floatArg(args[1])
		if err != nil {
			return protocol.Input{}, err
		}
		return protocol.Input{Action: protocol.Rotate, Index: index[0], Delta: delta}, nil

	case "move":
		if len(args) < 1 {
			return protocol.Input{}, fmt.Errorf("%w: move <x>", ErrMissingArgs)
		}
		x, err := floatArg(args[0])
		if err != nil {
			return protocol.Input{}, err
		}
		return protocol.Input{Action: protocol.Move, X: x}, nil

	case "swap":
		pos, err := intArgs(verb, args, 2)
		if err != nil {
			return protocol.Input{}, err
		}
		return protocol.Input{Action: protocol.Swap, Index: pos[0], To: pos[1]}, nil

	case "order":
		if len(args) == 0 {
			return protocol.Input{}, fmt.Errorf("%w: order <step id>...", ErrMissingArgs)
		}
		return protocol.Input{Action: protocol.Order, Order: args}, nil

	case "type":
		if len(args) < 1 {
			return protocol.Input{}, fmt.Errorf("%w: type <field> <text>", ErrMissingArgs)
		}
		return protocol.Input{Action: protocol.Type, Field: args[0], Text: strings.Join(args[1:], " ")}, nil

	case "headline":
		return protocol.Input{Action: protocol.Type, Field: "headline", Text: strings.Join(args, " ")}, nil

	case "ask", "guess", "build":
		if len(args) < 1 {
			return protocol.Input{}, fmt.Errorf("%w: %s <id>", ErrMissingArgs, verb)
		}
		return protocol.Input{Action: protocol.Action(verb), ID: args[0]}, nil

	case "guessing":
		on := len(args) == 0 || strings.ToLower(args[0]) != "off"
		return protocol.Input{Action: protocol.Guessing, On: on}, nil

	case "hit", "submit", "spin", "publish", "next", "clear", "jump":
		return protocol.Input{Action: protocol.Action(verb)}, nil
	}

	return protocol.Input{}, fmt.Errorf("%w: %q", ErrUnknownVerb, verb)
}

func intArgs(verb string, args []string, n int) ([]int, error) {
	if len(args) < n {
		return nil, fmt.Errorf("%w: %s needs %d", ErrMissingArgs, verb, n)
	}
	out := make([]int, n)
	for i := range out {
		v, err := strconv.Atoi(args[i])
		if err != nil {
			return nil, fmt.Errorf("%w: %q", ErrInvalidNumeric, args[i])
		}
		out[i] = v
	}
	return out, nil
}

func floatArg(arg string) (float64, error) {
	v, err := strconv.ParseFloat(arg, 64)
	if err != nil {
		return 0, fmt.Errorf("%w: %q", ErrInvalidNumeric, arg)
	}
	return v, nil
}
