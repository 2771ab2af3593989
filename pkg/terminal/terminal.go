package terminal

import (
	"os"

	"golang.org/x/term"
)

const defaultWidth = 80

// Width returns the width of the terminal on standard output or 80 if
// standard output is not a terminal.
func Width() int {
	w, _, err := term.GetSize(int(os.Stdout.Fd()))
	if err != nil || w <= 0 {
		return defaultWidth
	}
	return w
}

func IsTerminalFile(f *os.File) bool {
	return term.IsTerminal(int(f.Fd()))
}
