// Package repl implements the interactive assistant loop: read a request,
// translate it into a command, then either run the command or show the
// model's reply.
//
// Queries are handled strictly one at a time. An interrupt ends the loop
// while it waits for input; a query already in flight and a command already
// running are left to finish, bounded only by the request timeout.
package repl

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/hpkotak/termuxbud/internal/executor"
	"github.com/hpkotak/termuxbud/internal/progress"
	"github.com/hpkotak/termuxbud/internal/sanitize"
	"github.com/hpkotak/termuxbud/internal/translate"
	"github.com/hpkotak/termuxbud/internal/ui"
)

const banner = "Android AI Controller Active. (Ctrl+D to exit)"

// Package-level function variables for testability.
var (
	runCommand = executor.Run
)

// Translator produces sanitized commands from natural-language requests.
type Translator interface {
	Command(ctx context.Context, request string) (string, error)
	Stream(ctx context.Context, request string) <-chan translate.Event
}

// Options tune how each query is processed.
type Options struct {
	// Stream consumes the response as it is generated.
	Stream bool
	// Timer shows the elapsed-time indicator while waiting.
	Timer bool
	// Timeout bounds a single query. Zero leaves it to the HTTP client.
	Timeout time.Duration
	// Run executes an accepted command. Nil runs it through the shell.
	Run func(command string) error
}

type lineResult struct {
	line string
	err  error
}

// Run starts the interactive loop and returns nil on end of input or
// interrupt. Cancelling ctx counts as an interrupt.
func Run(ctx context.Context, t Translator, in LineReader, out io.Writer, opts Options) error {
	defer func() { _ = in.Close() }()

	ui.Banner(out, banner)

	for {
		line, err := readLine(ctx, in)
		if err != nil {
			if errors.Is(err, io.EOF) || errors.Is(err, ErrInterrupted) || errors.Is(err, context.Canceled) {
				_, _ = fmt.Fprintln(out)
				ui.Shutdown(out)
				return nil
			}
			ui.Error(out, err)
			return err
		}

		request := strings.TrimSpace(line)
		if request == "" {
			continue
		}
		if request == "exit" || request == "quit" {
			ui.Shutdown(out)
			return nil
		}

		handleQuery(ctx, t, request, out, opts)
	}
}

// readLine waits for the next line or for ctx to be cancelled, whichever
// comes first.
func readLine(ctx context.Context, in LineReader) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	result := make(chan lineResult, 1)
	go func() {
		line, err := in.ReadLine()
		result <- lineResult{line: line, err: err}
	}()

	select {
	case r := <-result:
		return r.line, r.err
	case <-ctx.Done():
		return "", ctx.Err()
	}
}

func handleQuery(ctx context.Context, t Translator, request string, out io.Writer, opts Options) {
	// An interrupt does not cancel the query in flight.
	qctx := context.WithoutCancel(ctx)
	if opts.Timeout > 0 {
		var cancel context.CancelFunc
		qctx, cancel = context.WithTimeout(qctx, opts.Timeout)
		defer cancel()
	}

	var timer *progress.Timer
	if opts.Timer {
		timer = progress.Start(out)
	}

	var command string
	var err error
	if opts.Stream {
		command, err = streamCommand(qctx, t, request, timer)
	} else {
		command, err = t.Command(qctx, request)
	}

	if timer != nil {
		timer.Stop()
	}

	if err != nil {
		ui.Error(out, err)
		return
	}

	if sanitize.Executable(command) {
		ui.Executing(out, command)
		run := opts.Run
		if run == nil {
			run = runCommand
		}
		// The command's own exit status is not reported back.
		_ = run(command)
		return
	}
	ui.Response(out, command)
}

// streamCommand collects a streamed translation. The translator's final
// value is preferred; if the stream ends without one, the accumulated
// fragments are sanitized here.
func streamCommand(ctx context.Context, t Translator, request string, timer *progress.Timer) (string, error) {
	var raw strings.Builder
	for ev := range t.Stream(ctx, request) {
		switch ev.Kind {
		case translate.EventFragment:
			raw.WriteString(ev.Text)
			if timer != nil {
				timer.Update(raw.String())
			}
		case translate.EventFinal:
			return ev.Text, nil
		case translate.EventError:
			return "", ev.Err
		}
	}
	if err := ctx.Err(); err != nil {
		return "", fmt.Errorf("query failed: %w", err)
	}
	return sanitize.Command(raw.String()), nil
}
