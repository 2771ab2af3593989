// Package color emits ANSI escape sequences when output goes to a
// terminal.
package color

import (
	"os"
	"strconv"

	"golang.org/x/term"
)

// Enabled is true when standard error is a terminal and NO_COLOR is not
// set.
var Enabled = os.Getenv("NO_COLOR") == "" && term.IsTerminal(int(os.Stderr.Fd()))

type Code int

const (
	Reset Code = 0
	Bold  Code = 1
	Red   Code = 31
)

func (c Code) String() string {
	return "\033[" + strconv.Itoa(int(c)) + "m"
}

// Wrap surrounds s with c and a reset when color is enabled.
func (c Code) Wrap(s string) string {
	if !Enabled {
		return s
	}
	return c.String() + s + Reset.String()
}
