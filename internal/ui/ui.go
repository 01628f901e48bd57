// Package ui styles the assistant's terminal output. Colors follow the
// terminal's capabilities: when output is not a TTY, lipgloss renders plain
// text, so the helpers are safe to use with any io.Writer.
package ui

import (
	"fmt"
	"io"

	"github.com/charmbracelet/lipgloss"
)

var (
	bannerStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("14"))
	promptStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("10"))
	execStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("12"))
	responseStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("11"))
	errorStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("9"))
	infoStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))
)

// Prompt returns the input prompt.
func Prompt() string {
	return promptStyle.Render(">") + " "
}

func Banner(out io.Writer, msg string) {
	_, _ = fmt.Fprintln(out, bannerStyle.Render(msg))
}

// Info prints a dim one-line notice.
func Info(out io.Writer, msg string) {
	_, _ = fmt.Fprintln(out, infoStyle.Render(msg))
}

// Executing announces a command that is about to run.
func Executing(out io.Writer, command string) {
	_, _ = fmt.Fprintf(out, "%s %s\n", execStyle.Render("Executing:"), command)
}

// Response prints model text that was not treated as a command.
func Response(out io.Writer, text string) {
	_, _ = fmt.Fprintf(out, "%s %s\n", responseStyle.Render("AI Response:"), text)
}

func Error(out io.Writer, err error) {
	_, _ = fmt.Fprintf(out, "%s %v\n", errorStyle.Render("Error:"), err)
}

// Shutdown prints the goodbye line.
func Shutdown(out io.Writer) {
	_, _ = fmt.Fprintln(out, errorStyle.Render("Shutting down assistant..."))
}
