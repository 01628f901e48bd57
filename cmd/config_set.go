package cmd

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/hpkotak/termuxbud/internal/config"
	"github.com/spf13/cobra"
)

var configSetCmd = &cobra.Command{
	Use:   "set <key> <value>",
	Short: "Update a configuration value",
	Long: `Update a configuration value. Supported keys:
  host         Ollama server URL
  model        Model name (e.g., android-1b)
  stream       Stream responses (true/false)
  keep_alive   How long Ollama keeps the model loaded (e.g., 1h)
  num_predict  Maximum tokens per response
  timeout      Per-request timeout (e.g., 30s)
  extra        Load extra.md as reference context (yes/no)`,
	Args: cobra.ExactArgs(2),
	RunE: runConfigSet,
}

func init() {
	configCmd.AddCommand(configSetCmd)
}

func runConfigSet(cmd *cobra.Command, args []string) error {
	key, value := args[0], strings.TrimSpace(args[1])
	dir := baseDir()

	if key == "extra" {
		enabled, err := parseSwitch(value)
		if err != nil {
			return err
		}
		if err := config.SetExtra(dir, enabled); err != nil {
			return err
		}
		_, _ = fmt.Fprintf(ioOut, "Set %s = %s\n", key, value)
		return nil
	}

	cfg, err := config.LoadFrom(dir)
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	switch key {
	case "host":
		cfg.Host = value
	case "model":
		if value == "" {
			return fmt.Errorf("model cannot be empty")
		}
		cfg.Model = value
	case "stream":
		b, err := parseSwitch(value)
		if err != nil {
			return err
		}
		cfg.Stream = b
	case "keep_alive":
		cfg.KeepAlive = value
	case "num_predict":
		n, err := strconv.Atoi(value)
		if err != nil {
			return fmt.Errorf("invalid num_predict %q: %w", value, err)
		}
		cfg.NumPredict = n
	case "timeout":
		cfg.Timeout = value
	default:
		return fmt.Errorf("unknown config key: %s", key)
	}

	if err := cfg.Validate(); err != nil {
		return err
	}

	if err := config.Save(dir, cfg); err != nil {
		return err
	}

	_, _ = fmt.Fprintf(ioOut, "Set %s = %s\n", key, value)
	return nil
}

// parseSwitch accepts the yes/no spellings used in settings.conf as well as
// Go boolean literals.
func parseSwitch(value string) (bool, error) {
	switch strings.ToLower(value) {
	case "yes", "on":
		return true, nil
	case "no", "off":
		return false, nil
	}
	b, err := strconv.ParseBool(value)
	if err != nil {
		return false, fmt.Errorf("invalid value %q: want yes or no", value)
	}
	return b, nil
}
