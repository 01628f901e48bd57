package cmd

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"

	"github.com/hpkotak/termuxbud/internal/config"
	"github.com/hpkotak/termuxbud/internal/executor"
	"github.com/hpkotak/termuxbud/internal/platform"
	"github.com/hpkotak/termuxbud/internal/prompt"
	"github.com/hpkotak/termuxbud/internal/provider"
	"github.com/hpkotak/termuxbud/internal/repl"
	"github.com/hpkotak/termuxbud/internal/server"
	"github.com/hpkotak/termuxbud/internal/translate"
	"github.com/hpkotak/termuxbud/internal/ui"
	"github.com/spf13/cobra"
)

var (
	modelFlag    string
	dirFlag      string
	noStreamFlag bool
)

// Package-level function variables for testability.
// Tests override these to avoid real provider/executor/server calls.
var (
	newProvider = func(cfg provider.BuildConfig) (provider.Provider, error) {
		p, err := provider.NewFromConfig(cfg)
		if err != nil {
			return nil, err
		}
		return p, nil
	}
	runCommand    = executor.Run
	ensureServer  = server.EnsureRunning
	probeServer   = server.Reachable
	isInteractive = func() bool {
		return platform.IsTerminal(os.Stdin) && platform.IsTerminal(os.Stdout)
	}
	ioIn  io.Reader = os.Stdin
	ioOut io.Writer = os.Stdout
)

var rootCmd = &cobra.Command{
	Use:   "tb",
	Short: "Control your Android device with natural language",
	Long: `TermuxBud (tb) turns plain-language requests into Termux commands using a
local Ollama model, and runs them.

Run tb with no arguments to start the assistant, then type requests such as:
  set volume to 50 percent
  turn on the flashlight
  vibrate for half a second`,
	Args:              cobra.NoArgs,
	RunE:              runAssistant,
	SilenceUsage:      true,
	DisableAutoGenTag: true,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&modelFlag, "model", "", "override model for this session")
	rootCmd.PersistentFlags().StringVar(&dirFlag, "dir", "", "base directory (default $"+config.HomeEnv+" or ~/.termuxbud)")
	rootCmd.PersistentFlags().BoolVar(&noStreamFlag, "no-stream", false, "wait for the full model response")
}

func Execute() error {
	return rootCmd.Execute()
}

func baseDir() string {
	if dirFlag != "" {
		return dirFlag
	}
	return config.Dir()
}

// loadConfig reads the config from the base directory and applies the
// session flags.
func loadConfig() (*config.Config, string, error) {
	dir := baseDir()
	cfg, err := config.LoadFrom(dir)
	if err != nil {
		return nil, "", fmt.Errorf("loading config: %w", err)
	}
	if modelFlag != "" {
		cfg.Model = modelFlag
	}
	if noStreamFlag {
		cfg.Stream = false
	}
	return cfg, dir, nil
}

// buildProvider creates the provider for a validated config.
func buildProvider(cfg *config.Config) (provider.Provider, error) {
	keepAlive, err := cfg.KeepAliveDuration()
	if err != nil {
		return nil, err
	}
	timeout, err := cfg.TimeoutDuration()
	if err != nil {
		return nil, err
	}

	p, err := newProvider(provider.BuildConfig{
		Host:       cfg.Host,
		Model:      cfg.Model,
		KeepAlive:  keepAlive,
		NumPredict: cfg.NumPredict,
		Timeout:    timeout,
		Stop:       prompt.StopSequences,
	})
	if err != nil {
		return nil, fmt.Errorf("creating provider: %w", err)
	}
	return p, nil
}

// loadExtra returns the reference context and announces it when present.
func loadExtra(dir string) string {
	extra, ok := config.LoadExtraContext(dir)
	if ok {
		ui.Info(ioOut, "[Config: Extra context loaded from "+config.ExtraFile+"]")
	}
	return extra
}

func runAssistant(cmd *cobra.Command, args []string) error {
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

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	interactive := isInteractive()
	var in repl.LineReader
	if interactive {
		in = repl.NewTerminalReader()
	} else {
		in = repl.NewScannerReader(ioIn, ioOut)
	}

	return repl.Run(ctx, translate.New(p, extra), in, ioOut, repl.Options{
		Stream:  cfg.Stream,
		Timer:   interactive,
		Timeout: timeout,
		Run:     runCommand,
	})
}
