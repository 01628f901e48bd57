package cmd

import (
	"context"
	"fmt"
	"time"

	"github.com/hpkotak/termuxbud/internal/platform"
	"github.com/spf13/cobra"
)

const statusTimeout = 5 * time.Second

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Check that Ollama is up and the model is installed",
	Args:  cobra.NoArgs,
	RunE:  runStatus,
}

func init() {
	rootCmd.AddCommand(statusCmd)
}

func runStatus(cmd *cobra.Command, args []string) error {
	cfg, _, err := loadConfig()
	if err != nil {
		return err
	}

	_, _ = fmt.Fprintf(ioOut, "Host:  %s\nModel: %s\nShell: %s (%s)\n\n", cfg.Host, cfg.Model, platform.Shell(), platform.OS())

	if !probeServer(cfg.Host) {
		_, _ = fmt.Fprintf(ioOut, "  [!!] Ollama is not reachable at %s\n", cfg.Host)
		return fmt.Errorf("ollama is not running")
	}
	_, _ = fmt.Fprintln(ioOut, "  [ok] Ollama is reachable")

	p, err := buildProvider(cfg)
	if err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(context.Background(), statusTimeout)
	defer cancel()

	if err := p.Available(ctx); err != nil {
		_, _ = fmt.Fprintf(ioOut, "  [!!] %v\n", err)
		return err
	}
	_, _ = fmt.Fprintf(ioOut, "  [ok] Model %s is installed\n", cfg.Model)
	return nil
}
