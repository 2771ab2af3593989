// Package repl is a simple read-eval-print loop.  It calls the Consumer
// to do all the eval work.
package repl

import (
	"errors"
	"io"

	"github.com/peterh/liner"
)

type Consumer interface {
	// Consume evaluates line and returns true when the loop should end.
	Consume(line string) bool
	Prompt() string
}

// Run executes the REPL until the Consumer asks to stop or input ends.
// End of input and an aborted prompt are not errors.
func Run(c Consumer) error {
	l := liner.NewLiner()
	defer l.Close()
	l.SetCtrlCAborts(true)
	l.SetMultiLineMode(true)
	for {
		line, err := l.Prompt(c.Prompt())
		if errors.Is(err, io.EOF) || errors.Is(err, liner.ErrPromptAborted) {
			return nil
		}
		if err != nil {
			return err
		}
		if line == "" {
			continue
		}
		if c.Consume(line) {
			return nil
		}
		l.AppendHistory(line)
	}
}
