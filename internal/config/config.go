package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/awaistahir/energy-opt/internal/energy"
	"github.com/spf13/viper"
)

var ErrInvalidConfig = errors.New("invalid configuration")

// Config holds settings shared by the CLI and the HTTP server
type Config struct {
	Days      int    `mapstructure:"days"`
	TableRows int    `mapstructure:"table_rows"`
	Port      int    `mapstructure:"port"`
	DBPath    string `mapstructure:"db"`
	WebDir    string `mapstructure:"web_dir"`
}

// DefaultDir returns $HOME/.energyopt
func DefaultDir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".energyopt"), nil
}

// Load reads configuration from cfgFile, or from config.yaml in the default
// directory when cfgFile is empty. Environment variables prefixed with
// ENERGYOPT_ override file values.
func Load(cfgFile string) (*Config, error) {
	v := viper.New()

	dir, err := DefaultDir()
	if err != nil {
		return nil, err
	}

	v.SetDefault("days", energy.DefaultDays)
	v.SetDefault("table_rows", energy.DefaultTableRows)
	v.SetDefault("port", 8080)
	v.SetDefault("db", filepath.Join(dir, "energyopt.db"))
	v.SetDefault("web_dir", "web")

	if cfgFile != "" {
		v.SetConfigFile(cfgFile)
	} else {
		v.AddConfigPath(dir)
		v.SetConfigName("config")
		v.SetConfigType("yaml")
	}

	v.SetEnvPrefix("energyopt")
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		// Only an explicitly requested file has to exist
		if cfgFile != "" || !errors.As(err, &notFound) {
			return nil, fmt.Errorf("reading config: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("decoding config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// Validate checks value ranges
func (c *Config) Validate() error {
	if c.Days < energy.MinDays || c.Days > energy.MaxDays {
		return fmt.Errorf("%w: days must be between %d and %d, got %d", ErrInvalidConfig, energy.MinDays, energy.MaxDays, c.Days)
	}
	if c.TableRows <= 0 {
		return fmt.Errorf("%w: table_rows must be positive, got %d", ErrInvalidConfig, c.TableRows)
	}
	if c.Port <= 0 || c.Port > 65535 {
		return fmt.Errorf("%w: port out of range: %d", ErrInvalidConfig, c.Port)
	}
	return nil
}
