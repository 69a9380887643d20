// Package config provides Viper-based hierarchical configuration: defaults,
// an optional YAML config file, then POS_-prefixed environment variables.
// The column-name map is configuration rather than code so the tool can be
// pointed at exports with different header labels without rebuilding.
package config

import (
	"fmt"
	"strings"

	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"
	"github.com/spf13/viper"

	"fkondo/pos-receipts/internal/schema"
)

// Config represents the complete application configuration.
type Config struct {
	Log struct {
		Level  string `mapstructure:"level" yaml:"level"`
		Format string `mapstructure:"format" yaml:"format"`
	} `mapstructure:"log" yaml:"log"`

	// Columns maps logical fields to the literal header strings of the
	// export. ReceiptID may be empty, which forces synthetic transaction
	// keys; the other optional names may be empty as well.
	Columns struct {
		Member      string `mapstructure:"member" yaml:"member"`
		Date        string `mapstructure:"date" yaml:"date"`
		Time        string `mapstructure:"time" yaml:"time"`
		ReceiptID   string `mapstructure:"receipt_id" yaml:"receipt_id"`
		Store       string `mapstructure:"store" yaml:"store"`
		Item        string `mapstructure:"item" yaml:"item"`
		Amount      string `mapstructure:"amount" yaml:"amount"`
		Quantity    string `mapstructure:"quantity" yaml:"quantity"`
		Maker       string `mapstructure:"maker" yaml:"maker"`
		Category1   string `mapstructure:"category1" yaml:"category1"`
		Category2   string `mapstructure:"category2" yaml:"category2"`
		Category3   string `mapstructure:"category3" yaml:"category3"`
		ProductCode string `mapstructure:"product_code" yaml:"product_code"`
	} `mapstructure:"columns" yaml:"columns"`
}

// LoadEnv loads a .env file if one is present. Missing files are fine.
func LoadEnv() {
	_ = godotenv.Load()
}

// InitializeConfig initializes Viper configuration with hierarchical loading.
func InitializeConfig() (*Config, error) {
	v := viper.New()

	setDefaults(v)

	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath("$HOME/.pos-receipts")
	v.AddConfigPath(".pos-receipts")
	v.AddConfigPath(".")

	v.SetEnvPrefix("POS")
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			// Continue with defaults and env vars.
			fmt.Printf("Warning: error reading config file %s: %v\n", v.ConfigFileUsed(), err)
		}
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

// setDefaults sets default configuration values. The column defaults match
// the plain English headers of the reference export.
func setDefaults(v *viper.Viper) {
	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "text")

	v.SetDefault("columns.member", "member_id")
	v.SetDefault("columns.date", "date")
	v.SetDefault("columns.time", "time")
	v.SetDefault("columns.receipt_id", "")
	v.SetDefault("columns.store", "store_name")
	v.SetDefault("columns.item", "item_name")
	v.SetDefault("columns.amount", "amount")
	v.SetDefault("columns.quantity", "quantity")
	v.SetDefault("columns.maker", "maker")
	v.SetDefault("columns.category1", "category1")
	v.SetDefault("columns.category2", "category2")
	v.SetDefault("columns.category3", "category3")
	v.SetDefault("columns.product_code", "product_code")
}

// validateConfig validates the configuration values.
func validateConfig(config *Config) error {
	if _, err := logrus.ParseLevel(config.Log.Level); err != nil {
		return fmt.Errorf("invalid log level: %s", config.Log.Level)
	}
	if config.Log.Format != "text" && config.Log.Format != "json" {
		return fmt.Errorf("invalid log format: %s (must be 'text' or 'json')", config.Log.Format)
	}

	required := map[string]string{
		"columns.member": config.Columns.Member,
		"columns.date":   config.Columns.Date,
		"columns.time":   config.Columns.Time,
		"columns.store":  config.Columns.Store,
		"columns.item":   config.Columns.Item,
		"columns.amount": config.Columns.Amount,
	}
	seen := make(map[string]string)
	for key, name := range required {
		if name == "" {
			return fmt.Errorf("%s must not be empty", key)
		}
		if other, ok := seen[name]; ok {
			return fmt.Errorf("%s and %s map to the same header '%s'", other, key, name)
		}
		seen[name] = key
	}

	return nil
}

// ColumnNames converts the configured column map into the schema type the
// record builder consumes.
func (c *Config) ColumnNames() schema.ColumnNames {
	return schema.ColumnNames{
		Member:      c.Columns.Member,
		Date:        c.Columns.Date,
		Time:        c.Columns.Time,
		ReceiptID:   c.Columns.ReceiptID,
		Store:       c.Columns.Store,
		Item:        c.Columns.Item,
		Amount:      c.Columns.Amount,
		Quantity:    c.Columns.Quantity,
		Maker:       c.Columns.Maker,
		Category1:   c.Columns.Category1,
		Category2:   c.Columns.Category2,
		Category3:   c.Columns.Category3,
		ProductCode: c.Columns.ProductCode,
	}
}

// ConfigureLogging configures a logrus logger from the Config struct.
func ConfigureLogging(config *Config) *logrus.Logger {
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
