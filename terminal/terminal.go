// Package terminal plays an arcade from a line-oriented terminal.
package terminal

import (
	"os"

	"golang.org/x/term"
)

const DefaultWidth = 80

// Width returns the width of the terminal on stdout, or DefaultWidth when
// stdout is not a terminal
func Width() int {
	width, _, err := term.GetSize(int(os.Stdout.Fd()))
	if err != nil || width <= 0 {
		return DefaultWidth
	}
	return width
}

// IsTerminal reports whether stdout is attached to a terminal
func IsTerminal() bool {
	return term.IsTerminal(int(os.Stdout.Fd()))
}
