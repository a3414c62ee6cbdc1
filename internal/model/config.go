package model

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/viper"
)

// ServerConfig holds the connection settings for the ResourceHub service.
type ServerConfig struct {
	// BaseURL is the root URL of the ResourceHub API
	// (e.g. https://resourcehub.example.com/api).
	BaseURL string `mapstructure:"base_url" yaml:"base_url"`
}

// DisplayConfig holds UI/rendering preferences.
type DisplayConfig struct {
	// Theme selects the color theme.
	Theme string `mapstructure:"theme" yaml:"theme"`

	// PageSize is the number of notifications shown per page.
	PageSize int `mapstructure:"page_size" yaml:"page_size"`

	// DropdownRows is the number of rows per page in the compact
	// notification panel.
	DropdownRows int `mapstructure:"dropdown_rows" yaml:"dropdown_rows"`
}

// AppConfig is the top-level application configuration.
type AppConfig struct {
	Server ServerConfig `mapstructure:"server" yaml:"server"`

	// Role selects the polling cadence: "user" surfaces poll the unread
	// count on an interval, "admin" surfaces fetch it once on startup.
	Role string `mapstructure:"role" yaml:"role"`

	// PollIntervalMS is how often (in milliseconds) the unread count is
	// refreshed for user-role sessions.
	PollIntervalMS int `mapstructure:"poll_interval_ms" yaml:"poll_interval_ms"`

	Display DisplayConfig `mapstructure:"display" yaml:"display"`
}

// DefaultConfigPath returns the default path for the configuration file,
// located at ~/.config/resourcehub/config.yaml.
func DefaultConfigPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return filepath.Join(".", "config.yaml")
	}
	return filepath.Join(home, ".config", "resourcehub", "config.yaml")
}

// defaultAppConfig returns a sensible default configuration.
func defaultAppConfig() *AppConfig {
	return &AppConfig{
		Role:           "user",
		PollIntervalMS: 2000,
		Display: DisplayConfig{
			Theme:        "default",
			PageSize:     7,
			DropdownRows: 5,
		},
	}
}

// LoadConfig reads configuration from the given YAML file path using Viper.
// If the file does not exist, it returns a default configuration.
func LoadConfig(path string) (*AppConfig, error) {
	v := viper.New()
	v.SetConfigFile(path)
	v.SetConfigType("yaml")

	// Set defaults so missing keys resolve to sensible values.
	v.SetDefault("role", "user")
	v.SetDefault("poll_interval_ms", 2000)
	v.SetDefault("display.theme", "default")
	v.SetDefault("display.page_size", 7)
	v.SetDefault("display.dropdown_rows", 5)

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(*os.PathError); ok {
			return defaultAppConfig(), nil
		}
		if _, ok := err.(viper.ConfigFileNotFoundError); ok {
			return defaultAppConfig(), nil
		}
		return nil, fmt.Errorf("reading config %s: %w", path, err)
	}

	cfg := defaultAppConfig()
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("parsing config %s: %w", path, err)
	}

	if cfg.PollIntervalMS <= 0 {
		cfg.PollIntervalMS = 2000
	}
	if cfg.Display.PageSize <= 0 {
		cfg.Display.PageSize = 7
	}
	if cfg.Display.DropdownRows <= 0 {
		cfg.Display.DropdownRows = 5
	}

	return cfg, nil
}

// SaveConfig writes the given configuration to a YAML file at path,
// creating parent directories if needed.
func SaveConfig(path string, cfg *AppConfig) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("creating config directory %s: %w", dir, err)
	}

	v := viper.New()
	v.SetConfigFile(path)
	v.SetConfigType("yaml")

	v.Set("server", cfg.Server)
	v.Set("role", cfg.Role)
	v.Set("poll_interval_ms", cfg.PollIntervalMS)
	v.Set("display", cfg.Display)

	if err := v.WriteConfigAs(path); err != nil {
		return fmt.Errorf("writing config to %s: %w", path, err)
	}

	return nil
}
