package model

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/viper"
)

// DatabaseConfig locates the local SQLite database.
type DatabaseConfig struct {
	Path string `mapstructure:"path" yaml:"path"`
}

// QuotesConfig configures the remote quote service.
type QuotesConfig struct {
	// BaseURL is the root URL of the quote API.
	BaseURL string `mapstructure:"base_url" yaml:"base_url"`
}

// AuthConfig configures the hosted identity provider.
type AuthConfig struct {
	// BaseURL is the root URL of the identity REST API.
	BaseURL string `mapstructure:"base_url" yaml:"base_url"`

	// APIKey is the web API key passed on every identity request.
	APIKey string `mapstructure:"api_key" yaml:"api_key"`
}

// TelegramConfig configures the optional Telegram notification channel.
// When Token is empty, reminders fall back to the log notifier.
type TelegramConfig struct {
	Token  string `mapstructure:"token" yaml:"token"`
	ChatID int64  `mapstructure:"chat_id" yaml:"chat_id"`
}

// RemindersConfig tunes the reminder daemon.
type RemindersConfig struct {
	// SummaryHour is the local hour (0-23) of the evening summary.
	SummaryHour int `mapstructure:"summary_hour" yaml:"summary_hour"`
}

// AppConfig is the top-level application configuration.
type AppConfig struct {
	Database  DatabaseConfig  `mapstructure:"database" yaml:"database"`
	Quotes    QuotesConfig    `mapstructure:"quotes" yaml:"quotes"`
	Auth      AuthConfig      `mapstructure:"auth" yaml:"auth"`
	Telegram  TelegramConfig  `mapstructure:"telegram" yaml:"telegram"`
	Reminders RemindersConfig `mapstructure:"reminders" yaml:"reminders"`
}

// DefaultConfigPath returns the default path for the configuration file,
// located at ~/.config/habitchain/config.yaml.
func DefaultConfigPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return filepath.Join(".", "config.yaml")
	}
	return filepath.Join(home, ".config", "habitchain", "config.yaml")
}

// DefaultDatabasePath returns the default SQLite database location,
// next to the configuration file.
func DefaultDatabasePath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return filepath.Join(".", "habitchain.db")
	}
	return filepath.Join(home, ".config", "habitchain", "habitchain.db")
}

// defaultAppConfig returns a sensible default configuration.
func defaultAppConfig() *AppConfig {
	return &AppConfig{
		Database: DatabaseConfig{Path: DefaultDatabasePath()},
		Quotes:   QuotesConfig{BaseURL: "https://zenquotes.io"},
		Auth: AuthConfig{
			BaseURL: "https://identitytoolkit.googleapis.com",
		},
		Reminders: RemindersConfig{SummaryHour: 21},
	}
}

// LoadConfig reads configuration from the given YAML file path using Viper.
// If the file does not exist, it returns a default configuration.
func LoadConfig(path string) (*AppConfig, error) {
	v := viper.New()
	v.SetConfigFile(path)
	v.SetConfigType("yaml")

	// Set defaults so missing keys resolve to sensible values.
	v.SetDefault("database.path", DefaultDatabasePath())
	v.SetDefault("quotes.base_url", "https://zenquotes.io")
	v.SetDefault("auth.base_url", "https://identitytoolkit.googleapis.com")
	v.SetDefault("reminders.summary_hour", 21)

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

	v.Set("database", cfg.Database)
	v.Set("quotes", cfg.Quotes)
	v.Set("auth", cfg.Auth)
	v.Set("telegram", cfg.Telegram)
	v.Set("reminders", cfg.Reminders)

	if err := v.WriteConfigAs(path); err != nil {
		return fmt.Errorf("writing config to %s: %w", path, err)
	}

	return nil
}
