// Package config provides Viper-based hierarchical configuration management
// plus .env loading for local development.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"
	"github.com/spf13/viper"

	"gobudget/internal/logging"
)

var envOnce sync.Once

// Config represents the complete application configuration
type Config struct {
	Log struct {
		Level  string `mapstructure:"level" yaml:"level"`
		Format string `mapstructure:"format" yaml:"format"`
	} `mapstructure:"log" yaml:"log"`

	Data struct {
		LedgerFile string `mapstructure:"ledger_file" yaml:"ledger_file"`
		BudgetFile string `mapstructure:"budget_file" yaml:"budget_file"`
	} `mapstructure:"data" yaml:"data"`

	Labeling struct {
		BatchSize int `mapstructure:"batch_size" yaml:"batch_size"`
		MaxSplit  int `mapstructure:"max_split" yaml:"max_split"`
	} `mapstructure:"labeling" yaml:"labeling"`

	AI struct {
		Enabled bool   `mapstructure:"enabled" yaml:"enabled"`
		Model   string `mapstructure:"model" yaml:"model"`
		APIKey  string `mapstructure:"api_key" yaml:"-"` // Never serialize API key
	} `mapstructure:"ai" yaml:"ai"`
}

// InitializeConfig loads configuration hierarchically: defaults, then an
// optional config.yaml, then GOBUDGET_-prefixed environment variables.
func InitializeConfig() (*Config, error) {
	v := viper.New()

	setDefaults(v)

	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath("$HOME/.gobudget")
	v.AddConfigPath(".gobudget")
	v.AddConfigPath(".")

	v.SetEnvPrefix("GOBUDGET")
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("reading config file %s: %w", v.ConfigFileUsed(), err)
		}
		// No config file is fine, defaults and env vars still apply.
	}

	// API key always comes from the unprefixed env var.
	if err := v.BindEnv("ai.api_key", "GEMINI_API_KEY"); err != nil {
		return nil, fmt.Errorf("binding GEMINI_API_KEY: %w", err)
	}

	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if err := validateConfig(&config); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return &config, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "text")

	v.SetDefault("data.ledger_file", "data/ledger.csv")
	v.SetDefault("data.budget_file", "data/budget.yaml")

	v.SetDefault("labeling.batch_size", 20)
	v.SetDefault("labeling.max_split", 5)

	v.SetDefault("ai.enabled", false)
	v.SetDefault("ai.model", "gemini-2.0-flash")
}

func validateConfig(config *Config) error {
	if _, err := logrus.ParseLevel(config.Log.Level); err != nil {
		return fmt.Errorf("invalid log level: %s", config.Log.Level)
	}
	if config.Log.Format != "text" && config.Log.Format != "json" {
		return fmt.Errorf("invalid log format: %s (must be 'text' or 'json')", config.Log.Format)
	}
	if config.Data.LedgerFile == "" {
		return fmt.Errorf("data.ledger_file must not be empty")
	}
	if config.Data.BudgetFile == "" {
		return fmt.Errorf("data.budget_file must not be empty")
	}
	if config.Labeling.BatchSize < 1 {
		return fmt.Errorf("labeling.batch_size must be positive, got: %d", config.Labeling.BatchSize)
	}
	if config.Labeling.MaxSplit < 1 {
		return fmt.Errorf("labeling.max_split must be positive, got: %d", config.Labeling.MaxSplit)
	}
	if config.AI.Enabled && config.AI.APIKey == "" {
		return fmt.Errorf("GEMINI_API_KEY required when AI is enabled")
	}
	return nil
}

// LoadEnv loads environment variables from a .env file if one exists in the
// current or parent directory.
func LoadEnv() {
	envOnce.Do(func() {
		logger := logging.GetLogger()

		envFile := ".env"
		if _, err := os.Stat(envFile); os.IsNotExist(err) {
			envFile = filepath.Join("..", ".env")
			if _, err := os.Stat(envFile); os.IsNotExist(err) {
				logger.Debug("No .env file found, using environment variables")
				return
			}
		}

		if err := godotenv.Load(envFile); err != nil {
			logger.WithError(err).Warn("Error loading .env file")
			return
		}
		logger.Debug("Loaded environment variables", logging.Field{Key: "file", Value: envFile})
	})
}
