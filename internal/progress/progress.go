// Package progress draws a one-line elapsed-time indicator while the model
// is working. It is purely cosmetic: nothing it does affects the outcome of
// a query.
package progress

import (
	"fmt"
	"io"
	"strings"
	"sync"
	"time"

	"github.com/charmbracelet/bubbles/spinner"
)

const (
	clearLine  = "\x1b[2K"
	maxPartial = 40
)

// Timer repaints the spinner, the elapsed seconds and the tail of any
// streamed text until Stop is called.
type Timer struct {
	out      io.Writer
	frames   []string
	interval time.Duration
	start    time.Time

	mu      sync.Mutex
	partial string

	done     chan struct{}
	stopOnce sync.Once
	wg       sync.WaitGroup
}

// Start begins repainting on out.
func Start(out io.Writer) *Timer {
	return start(out, spinner.MiniDot)
}

func start(out io.Writer, s spinner.Spinner) *Timer {
	t := &Timer{
		out:      out,
		frames:   s.Frames,
		interval: s.FPS,
		start:    time.Now(),
		done:     make(chan struct{}),
	}
	t.wg.Add(1)
	go t.run()
	return t
}

// Update sets the streamed text shown after the elapsed time.
func (t *Timer) Update(text string) {
	t.mu.Lock()
	t.partial = text
	t.mu.Unlock()
}

// Stop halts repainting, waits for the painter to exit and clears the line.
// It returns the elapsed time and is safe to call more than once.
func (t *Timer) Stop() time.Duration {
	t.stopOnce.Do(func() {
		close(t.done)
		t.wg.Wait()
		_, _ = fmt.Fprint(t.out, "\r"+clearLine)
	})
	return time.Since(t.start)
}

func (t *Timer) run() {
	defer t.wg.Done()

	ticker := time.NewTicker(t.interval)
	defer ticker.Stop()

	for frame := 0; ; frame++ {
		t.paint(frame)
		select {
		case <-t.done:
			return
		case <-ticker.C:
		}
	}
}

func (t *Timer) paint(frame int) {
	t.mu.Lock()
	partial := t.partial
	t.mu.Unlock()

	line := fmt.Sprintf("%s %.1fs", t.frames[frame%len(t.frames)], time.Since(t.start).Seconds())
	if tail := tail(partial); tail != "" {
		line += "  " + tail
	}
	_, _ = fmt.Fprint(t.out, "\r"+clearLine+line)
}

// tail returns the last line of s, cut to its final maxPartial runes.
func tail(s string) string {
	s = strings.TrimRight(s, " \r\n")
	if i := strings.LastIndexAny(s, "\r\n"); i >= 0 {
		s = s[i+1:]
	}
	r := []rune(s)
	if len(r) > maxPartial {
		return "…" + string(r[len(r)-maxPartial:])
	}
	return s
}
