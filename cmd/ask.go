package cmd

import (
	"context"
	"fmt"
	"strings"

	"github.com/hpkotak/termuxbud/internal/executor"
	"github.com/hpkotak/termuxbud/internal/sanitize"
	"github.com/hpkotak/termuxbud/internal/translate"
	"github.com/hpkotak/termuxbud/internal/ui"
	"github.com/spf13/cobra"
)

var askCmd = &cobra.Command{
	Use:   "ask <request...>",
	Short: "Translate one request and run it after confirmation",
	Long: `Translate a single request into a Termux command, show it, and run it
once confirmed.

Examples:
  tb ask set volume to 30 percent
  tb ask turn off the flashlight`,
	Args: cobra.MinimumNArgs(1),
	RunE: runAsk,
}

func init() {
	rootCmd.AddCommand(askCmd)
}

func runAsk(cmd *cobra.Command, args []string) error {
	cfg, dir, err := loadConfig()
	if err != nil {
		return err
	}

	if err := ensureServer(cfg.Host, ioOut); err != nil {
		return err
	}

	extra := loadExtra(dir)

	p, err := buildProvider(cfg)
	if err != nil {
		return err
	}
	timeout, _ := cfg.TimeoutDuration()

	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	command, err := translate.New(p, extra).Command(ctx, strings.Join(args, " "))
	if err != nil {
		return err
	}

	if !sanitize.Executable(command) {
		ui.Response(ioOut, command)
		return nil
	}

	_, _ = fmt.Fprintf(ioOut, "\n  %s\n\n", command)

	if !executor.Confirm("  Run this?", true, ioIn, ioOut) {
		_, _ = fmt.Fprintln(ioOut, "  Cancelled.")
		return nil
	}

	_, _ = fmt.Fprintln(ioOut)
	return runCommand(command)
}
