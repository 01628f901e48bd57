// Package server checks that the local Ollama server is up and, when it is
// not, launches it in the background. The assistant never owns the server's
// lifecycle: a server it starts keeps running after the assistant exits.
package server

import (
	"fmt"
	"io"
	"net"
	"net/http"
	"net/url"
	"os/exec"
	"time"

	"github.com/hpkotak/termuxbud/internal/executor"
)

const (
	probeTimeout = 2 * time.Second
	// startupAttempts is how many one-second polls a freshly started server gets.
	startupAttempts = 10
)

// Package-level function variables for testability.
var (
	lookPath     = exec.LookPath
	startServer  = func() error { return executor.StartDetached("ollama", "serve") }
	sleep        = time.Sleep
	pollInterval = time.Second
)

// Reachable probes the server's base address; a 200 means ready.
func Reachable(host string) bool {
	client := http.Client{Timeout: probeTimeout}
	resp, err := client.Get(host)
	if err != nil {
		return false
	}
	_ = resp.Body.Close()
	return resp.StatusCode == http.StatusOK
}

// EnsureRunning returns nil once host answers the readiness probe. A local
// server that is down is started with `ollama serve` and polled for up to
// startupAttempts seconds.
func EnsureRunning(host string, out io.Writer) error {
	if Reachable(host) {
		return nil
	}

	if !isLocal(host) {
		return fmt.Errorf("ollama is not reachable at %s", host)
	}
	if _, err := lookPath("ollama"); err != nil {
		return fmt.Errorf("ollama is not running and was not found in PATH. Install it with: pkg install ollama")
	}

	_, _ = fmt.Fprint(out, "Starting Ollama in background")
	if err := startServer(); err != nil {
		_, _ = fmt.Fprintln(out)
		return fmt.Errorf("failed to start ollama: %w", err)
	}

	for i := 0; i < startupAttempts; i++ {
		sleep(pollInterval)
		if Reachable(host) {
			_, _ = fmt.Fprintln(out, " [ok]")
			return nil
		}
		_, _ = fmt.Fprint(out, ".")
	}
	_, _ = fmt.Fprintln(out)

	return fmt.Errorf("ollama did not start within %d seconds", startupAttempts)
}

// isLocal reports whether host points at this device, the only place a
// server can be launched.
func isLocal(host string) bool {
	u, err := url.Parse(host)
	if err != nil {
		return false
	}
	name := u.Hostname()
	if name == "localhost" {
		return true
	}
	ip := net.ParseIP(name)
	return ip != nil && ip.IsLoopback()
}
