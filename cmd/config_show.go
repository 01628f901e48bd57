package cmd

import (
	"fmt"

	"github.com/hpkotak/termuxbud/internal/config"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show current configuration",
	RunE:  runConfigShow,
}

func init() {
	configCmd.AddCommand(configShowCmd)
}

func runConfigShow(cmd *cobra.Command, args []string) error {
	dir := baseDir()
	cfg, err := config.LoadFrom(dir)
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("encoding config: %w", err)
	}

	extra := "disabled"
	if config.ExtraEnabled(dir) {
		extra = "enabled"
	}

	_, _ = fmt.Fprintf(ioOut, "Config file: %s\n\n", config.Path(dir))
	_, _ = fmt.Fprint(ioOut, string(data))
	_, _ = fmt.Fprintf(ioOut, "\nExtra context: %s (%s)\n", extra, config.SettingsFile)
	return nil
}
