package repl

import (
	"bufio"
	"errors"
	"fmt"
	"io"

	"github.com/hpkotak/termuxbud/internal/ui"
	"github.com/peterh/liner"
)

// ErrInterrupted is returned by a LineReader when the user presses Ctrl+C at
// the prompt.
var ErrInterrupted = errors.New("interrupted")

const plainPrompt = "> "

// LineReader prompts for and yields one line of user input per call. io.EOF
// ends the session.
type LineReader interface {
	ReadLine() (string, error)
	Close() error
}

// NewScannerReader reads lines from in, printing the prompt to out. It is
// used when stdin is not a terminal.
func NewScannerReader(in io.Reader, out io.Writer) LineReader {
	return &scannerReader{scanner: bufio.NewScanner(in), out: out}
}

type scannerReader struct {
	scanner *bufio.Scanner
	out     io.Writer
}

func (r *scannerReader) ReadLine() (string, error) {
	_, _ = fmt.Fprint(r.out, ui.Prompt())
	if !r.scanner.Scan() {
		if err := r.scanner.Err(); err != nil {
			return "", err
		}
		return "", io.EOF
	}
	return r.scanner.Text(), nil
}

func (r *scannerReader) Close() error { return nil }

// NewTerminalReader reads lines with line editing and in-memory history.
// Ctrl+C at the prompt returns ErrInterrupted, Ctrl+D returns io.EOF.
func NewTerminalReader() LineReader {
	state := liner.NewLiner()
	state.SetCtrlCAborts(true)
	return &terminalReader{state: state}
}

type terminalReader struct {
	state *liner.State
}

func (r *terminalReader) ReadLine() (string, error) {
	// liner measures the prompt in runes, so it must not carry color codes.
	line, err := r.state.Prompt(plainPrompt)
	switch {
	case errors.Is(err, liner.ErrPromptAborted):
		return "", ErrInterrupted
	case err != nil:
		return "", err
	}
	if line != "" {
		r.state.AppendHistory(line)
	}
	return line, nil
}

func (r *terminalReader) Close() error { return r.state.Close() }
