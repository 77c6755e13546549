// Package config provides hierarchical configuration for the converter:
// defaults, an optional YAML config file, environment variables, and the
// LEXOFFICE_API_KEY secret. The resulting Config object is passed
// explicitly into the pipeline; there is no global mutable state.
package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/spf13/viper"
)

// Config is the complete application configuration for one run.
type Config struct {
	Log struct {
		Level  string `mapstructure:"level" yaml:"level"`
		Format string `mapstructure:"format" yaml:"format"`
	} `mapstructure:"log" yaml:"log"`

	Lexoffice struct {
		BaseURL string `mapstructure:"base_url" yaml:"base_url"`
		APIKey  string `mapstructure:"api_key" yaml:"-"` // Never serialize the API key
	} `mapstructure:"lexoffice" yaml:"lexoffice"`

	Invoice struct {
		// TaxRegime selects the payload variant: "vatfree" or "net".
		TaxRegime string `mapstructure:"tax_regime" yaml:"tax_regime"`
		// StandardTaxRate is the percentage applied under the net regime.
		StandardTaxRate int `mapstructure:"standard_tax_rate" yaml:"standard_tax_rate"`
	} `mapstructure:"invoice" yaml:"invoice"`

	Submit struct {
		// MinIntervalMS spaces out API submissions; 0 disables pacing.
		MinIntervalMS int `mapstructure:"min_interval_ms" yaml:"min_interval_ms"`
	} `mapstructure:"submit" yaml:"submit"`
}

// MinInterval returns the submission pacing as a duration.
func (c *Config) MinInterval() time.Duration {
	return time.Duration(c.Submit.MinIntervalMS) * time.Millisecond
}

// InitializeConfig loads the configuration: defaults, then an optional
// config.yaml, then CARDMARKET_* environment variables, then the
// LEXOFFICE_API_KEY secret.
func InitializeConfig() (*Config, error) {
	v := viper.New()

	setDefaults(v)

	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath("$HOME/.cardmarket-lexoffice")
	v.AddConfigPath(".cardmarket-lexoffice")
	v.AddConfigPath(".")

	v.SetEnvPrefix("CARDMARKET")
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			// A broken config file is worth a warning, but defaults and
			// environment variables still make a runnable configuration.
			fmt.Printf("Warning: error reading config file %s: %v\n", v.ConfigFileUsed(), err)
		}
	}

	// The API key is always read from its unprefixed environment variable.
	if err := v.BindEnv("lexoffice.api_key", "LEXOFFICE_API_KEY"); err != nil {
		fmt.Printf("Warning: failed to bind LEXOFFICE_API_KEY environment variable: %v\n", err)
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

	v.SetDefault("lexoffice.base_url", "https://api.lexoffice.io")

	v.SetDefault("invoice.tax_regime", "vatfree")
	v.SetDefault("invoice.standard_tax_rate", 19)

	v.SetDefault("submit.min_interval_ms", 500)
}

func validateConfig(config *Config) error {
	if _, err := logrus.ParseLevel(config.Log.Level); err != nil {
		return fmt.Errorf("invalid log level: %s", config.Log.Level)
	}

	if config.Log.Format != "text" && config.Log.Format != "json" {
		return fmt.Errorf("invalid log format: %s (must be 'text' or 'json')", config.Log.Format)
	}

	if config.Invoice.TaxRegime != "vatfree" && config.Invoice.TaxRegime != "net" {
		return fmt.Errorf("invalid tax regime: %s (must be 'vatfree' or 'net')", config.Invoice.TaxRegime)
	}

	if config.Invoice.StandardTaxRate < 0 || config.Invoice.StandardTaxRate > 100 {
		return fmt.Errorf("invoice.standard_tax_rate must be between 0 and 100, got: %d", config.Invoice.StandardTaxRate)
	}

	if config.Submit.MinIntervalMS < 0 {
		return fmt.Errorf("submit.min_interval_ms must not be negative, got: %d", config.Submit.MinIntervalMS)
	}

	return nil
}

// ConfigureLoggingFromConfig builds a logrus logger from the Log section.
func ConfigureLoggingFromConfig(config *Config) *logrus.Logger {
	logger := logrus.New()

	logLevel, err := logrus.ParseLevel(strings.ToLower(config.Log.Level))
	if err != nil {
		logger.Warnf("Invalid log level '%s', using 'info'", config.Log.Level)
		logLevel = logrus.InfoLevel
	}
	logger.SetLevel(logLevel)

	if strings.ToLower(config.Log.Format) == "json" {
		logger.SetFormatter(&logrus.JSONFormatter{})
	} else {
		logger.SetFormatter(&logrus.TextFormatter{
			FullTimestamp: true,
		})
	}

	return logger
}
