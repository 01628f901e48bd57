package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

const (
	SettingsFile = "settings.conf"
	ExtraFile    = "extra.md"

	extraKey    = "extra="
	extraMarker = "extra=yes"
)

// LoadExtraContext returns the trimmed contents of dir/extra.md when
// dir/settings.conf contains "extra=yes" (case-insensitive). Missing files
// disable the feature; they are never an error. ok reports whether the
// document was read.
func LoadExtraContext(dir string) (extra string, ok bool) {
	if !ExtraEnabled(dir) {
		return "", false
	}
	data, err := os.ReadFile(filepath.Join(dir, ExtraFile))
	if err != nil {
		return "", false
	}
	return strings.TrimSpace(string(data)), true
}

// ExtraEnabled reports whether settings.conf turns on the extra context.
func ExtraEnabled(dir string) bool {
	data, err := os.ReadFile(filepath.Join(dir, SettingsFile))
	if err != nil {
		return false
	}
	return strings.Contains(strings.ToLower(string(data)), extraMarker)
}

// SetExtra rewrites the extra= line of settings.conf, appending one if the
// file has none. Other lines are preserved.
func SetExtra(dir string, enabled bool) error {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("creating config dir: %w", err)
	}

	value := "no"
	if enabled {
		value = "yes"
	}
	line := extraKey + value

	path := filepath.Join(dir, SettingsFile)
	data, err := os.ReadFile(path)
	if err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("reading settings: %w", err)
	}

	var lines []string
	replaced := false
	if text := strings.TrimRight(string(data), "\n"); text != "" {
		for _, l := range strings.Split(text, "\n") {
			if strings.HasPrefix(strings.ToLower(strings.TrimSpace(l)), extraKey) {
				if replaced {
					continue
				}
				l = line
				replaced = true
			}
			lines = append(lines, l)
		}
	}
	if !replaced {
		lines = append(lines, line)
	}

	if err := os.WriteFile(path, []byte(strings.Join(lines, "\n")+"\n"), 0o644); err != nil {
		return fmt.Errorf("writing settings: %w", err)
	}
	return nil
}
