// Package executor handles user confirmation and shell command execution.
// Commands run as a pass-through: output goes straight to the terminal and is
// never captured.
package executor

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"os/exec"
	"strings"

	"github.com/hpkotak/termuxbud/internal/platform"
)

// Confirm prompts the user for yes/no confirmation.
// defaultYes is the answer for an empty line; EOF and unrecognized input
// count as no.
func Confirm(prompt string, defaultYes bool, in io.Reader, out io.Writer) bool {
	hint := "[Y/n]"
	if !defaultYes {
		hint = "[y/N]"
	}
	_, _ = fmt.Fprintf(out, "%s %s: ", prompt, hint)

	scanner := bufio.NewScanner(in)
	if !scanner.Scan() {
		return false
	}

	switch strings.TrimSpace(strings.ToLower(scanner.Text())) {
	case "":
		return defaultYes
	case "y", "yes":
		return true
	default:
		return false
	}
}

// Run executes a shell command through the user's shell, inheriting
// stdin/stdout/stderr. A non-zero exit is returned as *exec.ExitError.
func Run(command string) error {
	cmd := exec.Command(platform.Shell(), "-c", command)
	cmd.Stdin = os.Stdin
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr
	return cmd.Run()
}

// StartDetached launches name in its own process group with stdio discarded
// and returns without waiting. The process keeps running after we exit.
func StartDetached(name string, args ...string) error {
	cmd := exec.Command(name, args...)
	detach(cmd)
	if err := cmd.Start(); err != nil {
		return fmt.Errorf("starting %s: %w", name, err)
	}
	return cmd.Process.Release()
}
