// Package config manages the termuxbud base directory (~/.termuxbud): the
// config.yaml settings, the optional .env overrides, and the extra reference
// context enabled through settings.conf.
package config

import (
	"errors"
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

var ErrNotFound = errors.New("config file not found")

const (
	DefaultHost       = "http://localhost:11434"
	DefaultModel      = "android-1b"
	DefaultKeepAlive  = "1h"
	DefaultNumPredict = 50
	DefaultTimeout    = "30s"

	// HomeEnv overrides the base directory.
	HomeEnv  = "TERMUXBUD_HOME"
	HostEnv  = "TERMUXBUD_HOST"
	ModelEnv = "TERMUXBUD_MODEL"

	configFile = "config.yaml"
	envFile    = ".env"
)

type Config struct {
	Host       string `yaml:"host"`
	Model      string `yaml:"model"`
	Stream     bool   `yaml:"stream"`
	KeepAlive  string `yaml:"keep_alive"`
	NumPredict int    `yaml:"num_predict"`
	Timeout    string `yaml:"timeout"`
}

// Dir returns the base directory: $TERMUXBUD_HOME, or ~/.termuxbud.
func Dir() string {
	if d := os.Getenv(HomeEnv); d != "" {
		return d
	}
	home, _ := os.UserHomeDir()
	return filepath.Join(home, ".termuxbud")
}

// Path returns the config file path inside dir.
func Path(dir string) string {
	return filepath.Join(dir, configFile)
}

// Load reads the config from the default base directory.
func Load() (*Config, error) {
	return LoadFrom(Dir())
}

// LoadFrom reads dir/config.yaml on top of Default(), then applies .env and
// environment overrides. A missing config file is not an error.
func LoadFrom(dir string) (*Config, error) {
	// Missing .env is the common case.
	_ = godotenv.Load(filepath.Join(dir, envFile))

	cfg, err := loadFile(Path(dir))
	if err != nil {
		if !errors.Is(err, ErrNotFound) {
			return nil, err
		}
		cfg = Default()
	}

	if v := strings.TrimSpace(os.Getenv(HostEnv)); v != "" {
		cfg.Host = v
	}
	if v := strings.TrimSpace(os.Getenv(ModelEnv)); v != "" {
		cfg.Model = v
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func loadFile(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("reading config: %w", err)
	}

	// Unset keys keep their defaults.
	cfg := Default()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}
	return cfg, nil
}

// Save writes the config into dir, creating the directory if needed.
func Save(dir string, cfg *Config) error {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("creating config dir: %w", err)
	}

	data, err := marshalConfig(cfg)
	if err != nil {
		return err
	}

	if err := os.WriteFile(Path(dir), data, 0o644); err != nil {
		return fmt.Errorf("writing config: %w", err)
	}
	return nil
}

func marshalConfig(cfg *Config) ([]byte, error) {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return nil, fmt.Errorf("encoding config: %w", err)
	}
	return data, nil
}

// Default returns a config with sensible defaults.
func Default() *Config {
	return &Config{
		Host:       DefaultHost,
		Model:      DefaultModel,
		Stream:     true,
		KeepAlive:  DefaultKeepAlive,
		NumPredict: DefaultNumPredict,
		Timeout:    DefaultTimeout,
	}
}

// Validate checks the config for values the client cannot work with.
func (c *Config) Validate() error {
	if _, err := url.ParseRequestURI(c.Host); err != nil {
		return fmt.Errorf("invalid host %q: %w", c.Host, err)
	}
	if strings.TrimSpace(c.Model) == "" {
		return fmt.Errorf("model cannot be empty")
	}
	if c.NumPredict <= 0 {
		return fmt.Errorf("num_predict must be positive, got %d", c.NumPredict)
	}
	if _, err := c.KeepAliveDuration(); err != nil {
		return err
	}
	if _, err := c.TimeoutDuration(); err != nil {
		return err
	}
	return nil
}

// KeepAliveDuration parses KeepAlive, the hint for how long the server keeps
// the model resident after a request.
func (c *Config) KeepAliveDuration() (time.Duration, error) {
	d, err := time.ParseDuration(c.KeepAlive)
	if err != nil {
		return 0, fmt.Errorf("invalid keep_alive %q: %w", c.KeepAlive, err)
	}
	return d, nil
}

// TimeoutDuration parses Timeout, the per-request network timeout.
func (c *Config) TimeoutDuration() (time.Duration, error) {
	d, err := time.ParseDuration(c.Timeout)
	if err != nil {
		return 0, fmt.Errorf("invalid timeout %q: %w", c.Timeout, err)
	}
	if d <= 0 {
		return 0, fmt.Errorf("timeout must be positive, got %s", c.Timeout)
	}
	return d, nil
}
