// Package config loads payroll settings from defaults, an optional YAML file
// and PAYROLL_* environment variables, in increasing order of precedence.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"

	"github.com/csg33k/payroll-roster/internal/domain"
)

const (
	EnvPrefix = "PAYROLL"
	FileName  = "payroll"

	DriverText   = "text"
	DriverSQLite = "sqlite"

	FormatLegacy = "legacy"
	FormatInline = "inline"
)

type Config struct {
	DataFile   string         `yaml:"data_file" mapstructure:"data_file"`
	Storage    StorageConfig  `yaml:"storage" mapstructure:"storage"`
	Currency   CurrencyConfig `yaml:"currency" mapstructure:"currency"`
	ReportsDir string         `yaml:"reports_dir" mapstructure:"reports_dir"`
	Log        LogConfig      `yaml:"log" mapstructure:"log"`
}

type StorageConfig struct {
	Driver string `yaml:"driver" mapstructure:"driver"` // text | sqlite
	Format string `yaml:"format" mapstructure:"format"` // legacy | inline; text driver only
}

type CurrencyConfig struct {
	Symbol string `yaml:"symbol" mapstructure:"symbol"`
	Locale string `yaml:"locale" mapstructure:"locale"`
}

type LogConfig struct {
	Level string `yaml:"level" mapstructure:"level"`
	File  string `yaml:"file" mapstructure:"file"` // empty means stderr
}

func DefaultConfig() *Config {
	return &Config{
		DataFile: domain.DefaultDataFile,
		Storage: StorageConfig{
			Driver: DriverText,
			Format: FormatLegacy,
		},
		Currency: CurrencyConfig{
			Symbol: "$",
			Locale: "en-US",
		},
		ReportsDir: "reports",
		Log: LogConfig{
			Level: "info",
		},
	}
}

func setDefaults(v *viper.Viper) {
	d := DefaultConfig()
	v.SetDefault("data_file", d.DataFile)
	v.SetDefault("storage.driver", d.Storage.Driver)
	v.SetDefault("storage.format", d.Storage.Format)
	v.SetDefault("currency.symbol", d.Currency.Symbol)
	v.SetDefault("currency.locale", d.Currency.Locale)
	v.SetDefault("reports_dir", d.ReportsDir)
	v.SetDefault("log.level", d.Log.Level)
	v.SetDefault("log.file", d.Log.File)
}

// Load reads configuration. When path is empty, payroll.yaml is searched for
// in the working directory and the user config dir; a missing file is fine.
// An explicit path must exist.
func Load(path string) (*Config, error) {
	v := viper.New()
	setDefaults(v)

	if path != "" {
		v.SetConfigFile(path)
	} else {
		v.SetConfigName(FileName)
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		if dir := userConfigDir(); dir != "" {
			v.AddConfigPath(dir)
		}
	}

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if path != "" || !errors.As(err, &notFound) {
			return nil, fmt.Errorf("config: read: %w", err)
		}
	}

	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("config: decode: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func userConfigDir() string {
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		return filepath.Join(xdg, "payroll")
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".config", "payroll")
}

// Validate checks the configuration for errors and normalises case.
func (c *Config) Validate() error {
	c.DataFile = strings.TrimSpace(c.DataFile)
	if c.DataFile == "" {
		return fmt.Errorf("config: data_file is required")
	}
	c.Storage.Driver = strings.ToLower(strings.TrimSpace(c.Storage.Driver))
	switch c.Storage.Driver {
	case DriverText, DriverSQLite:
	default:
		return fmt.Errorf("config: storage.driver %q is invalid (must be %s or %s)", c.Storage.Driver, DriverText, DriverSQLite)
	}
	c.Storage.Format = strings.ToLower(strings.TrimSpace(c.Storage.Format))
	switch c.Storage.Format {
	case FormatLegacy, FormatInline:
	default:
		return fmt.Errorf("config: storage.format %q is invalid (must be %s or %s)", c.Storage.Format, FormatLegacy, FormatInline)
	}
	c.Log.Level = strings.ToLower(strings.TrimSpace(c.Log.Level))
	switch c.Log.Level {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("config: log.level %q is invalid (must be debug, info, warn or error)", c.Log.Level)
	}
	if c.ReportsDir == "" {
		c.ReportsDir = "."
	}
	return nil
}

// WriteDefault writes the default configuration as YAML to path. An existing
// file is left alone.
func WriteDefault(path string) error {
	if _, err := os.Stat(path); err == nil {
		return fmt.Errorf("config: %s already exists", path)
	}
	data, err := yaml.Marshal(DefaultConfig())
	if err != nil {
		return err
	}
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("config: ensure dir: %w", err)
		}
	}
	header := "# payroll configuration; PAYROLL_* environment variables override these values\n"
	return os.WriteFile(path, append([]byte(header), data...), 0o644)
}
