// Package config handles reportctl configuration loading.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	errorslib "github.com/goliatone/go-errors"
	"gopkg.in/yaml.v3"
)

// Error text codes returned by Load and Validate.
const (
	CodeConfigNotFound = "CONFIG_NOT_FOUND"
	CodeConfigRead     = "CONFIG_READ"
	CodeConfigParse    = "CONFIG_PARSE"
	CodeConfigInvalid  = "CONFIG_INVALID"
)

// Theme store drivers.
const (
	StoreFile   = "file"
	StoreSQLite = "sqlite"
)

// System preference sources.
const (
	SystemEnv      = "env"
	SystemChromium = "chromium"
	SystemLight    = "light"
	SystemDark     = "dark"
)

// Config is the root configuration structure.
type Config struct {
	Report   ReportConfig   `yaml:"report"`
	Theme    ThemeConfig    `yaml:"theme"`
	Chromium ChromiumConfig `yaml:"chromium"`
}

// ReportConfig holds export settings.
type ReportConfig struct {
	Locale             string `yaml:"locale"`
	ProductName        string `yaml:"product_name"`
	OutputDir          string `yaml:"output_dir"`
	Format             string `yaml:"format"`
	ConsumptionTableID string `yaml:"consumption_table_id"`
}

// ThemeConfig holds theme preference settings.
type ThemeConfig struct {
	Store  string `yaml:"store"`
	Path   string `yaml:"path"`
	Key    string `yaml:"key"`
	System string `yaml:"system"`
	URL    string `yaml:"url"` // page checked when System is "chromium"
}

// ChromiumConfig holds headless browser settings.
type ChromiumConfig struct {
	ExecPath    string        `yaml:"exec_path"`
	Headless    bool          `yaml:"headless"`
	Timeout     time.Duration `yaml:"timeout"`
	Args        []string      `yaml:"args"`
	ColorScheme string        `yaml:"color_scheme"`
}

// Default returns the default configuration.
func Default() *Config {
	return &Config{
		Report: ReportConfig{
			Locale:             "pt-BR",
			ProductName:        "Flcomm Manager",
			OutputDir:          ".",
			Format:             "pdf",
			ConsumptionTableID: "consumption-by-date-table",
		},
		Theme: ThemeConfig{
			Store:  StoreFile,
			Path:   "preferences.json",
			Key:    "theme",
			System: SystemEnv,
		},
		Chromium: ChromiumConfig{
			Headless: true,
			Timeout:  30 * time.Second,
		},
	}
}

// Load loads configuration from a file.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errorslib.Wrap(err, errorslib.CategoryNotFound, "config file not found: "+path).
				WithTextCode(CodeConfigNotFound)
		}
		return nil, errorslib.Wrap(err, errorslib.CategoryInternal, "failed to read config").
			WithTextCode(CodeConfigRead)
	}

	cfg := Default()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, errorslib.Wrap(err, errorslib.CategoryValidation, "failed to parse config").
			WithTextCode(CodeConfigParse)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// LoadOrDefault loads config from path, or returns default if not found.
func LoadOrDefault(path string) (*Config, error) {
	if path == "" {
		return Default(), nil
	}
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return Default(), nil
	}
	return Load(path)
}

func invalid(format string, args ...any) error {
	return errorslib.New(fmt.Sprintf(format, args...), errorslib.CategoryValidation).
		WithTextCode(CodeConfigInvalid)
}

// Validate checks enumerated settings.
func (c *Config) Validate() error {
	switch c.Report.Format {
	case "pdf", "xlsx":
	default:
		return invalid("invalid report format %q", c.Report.Format)
	}
	switch c.Theme.Store {
	case StoreFile, StoreSQLite:
	default:
		return invalid("invalid theme store %q", c.Theme.Store)
	}
	switch c.Theme.System {
	case SystemEnv, SystemLight, SystemDark:
	case SystemChromium:
		if c.Theme.URL == "" {
			return invalid("theme system %q requires theme.url", c.Theme.System)
		}
	default:
		return invalid("invalid theme system %q", c.Theme.System)
	}
	if c.Theme.Path == "" {
		return invalid("theme path is required")
	}
	if c.Chromium.Timeout < 0 {
		return invalid("chromium timeout must not be negative")
	}
	return nil
}

// Save saves configuration to a file.
func (c *Config) Save(path string) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}
	return nil
}
