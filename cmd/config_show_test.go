package cmd

import (
	"path/filepath"
	"strings"
	"testing"

	"github.com/hpkotak/termuxbud/internal/config"
)

func TestRunConfigShow(t *testing.T) {
	t.Run("config exists", func(t *testing.T) {
		cfg := config.Default()
		cfg.Model = "phone-3b"
		dir := setupTestConfig(t, cfg)
		out, _ := stubServices(t, &mockProvider{}, "")

		if err := runConfigShow(nil, nil); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		for _, want := range []string{
			"Config file: " + config.Path(dir),
			"model: phone-3b",
			"num_predict: 50",
			"Extra context: disabled (settings.conf)",
		} {
			if !strings.Contains(out.String(), want) {
				t.Errorf("output missing %q:\n%s", want, out.String())
			}
		}
	})

	t.Run("config missing shows defaults", func(t *testing.T) {
		setupTestConfig(t, nil)
		out, _ := stubServices(t, &mockProvider{}, "")

		if err := runConfigShow(nil, nil); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if !strings.Contains(out.String(), "host: "+config.DefaultHost) {
			t.Errorf("output missing default host:\n%s", out.String())
		}
	})

	t.Run("extra enabled", func(t *testing.T) {
		dir := setupTestConfig(t, nil)
		writeFile(t, filepath.Join(dir, config.SettingsFile), "extra=yes\n")
		out, _ := stubServices(t, &mockProvider{}, "")

		if err := runConfigShow(nil, nil); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if !strings.Contains(out.String(), "Extra context: enabled") {
			t.Errorf("output missing extra status:\n%s", out.String())
		}
	})

	t.Run("invalid config", func(t *testing.T) {
		dir := setupTestConfig(t, nil)
		writeFile(t, config.Path(dir), "host: [unterminated\n")
		stubServices(t, &mockProvider{}, "")

		err := runConfigShow(nil, nil)
		if err == nil || !strings.Contains(err.Error(), "loading config") {
			t.Fatalf("runConfigShow() error = %v, want config error", err)
		}
	})
}
