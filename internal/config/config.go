// Package config loads application configuration from file and environment.
package config

import (
	"strings"
	"time"

	"github.com/spf13/viper"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Config holds all application configuration.
type Config struct {
	Server ServerConfig `mapstructure:"server"`
	Engine EngineConfig `mapstructure:"engine"`
	GST    GSTConfig    `mapstructure:"gst"`
	Log    LogConfig    `mapstructure:"log"`
}

// ServerConfig holds HTTP server settings.
type ServerConfig struct {
	Address      string        `mapstructure:"address"`
	ReadTimeout  time.Duration `mapstructure:"read_timeout"`
	WriteTimeout time.Duration `mapstructure:"write_timeout"`
	Debug        bool          `mapstructure:"debug"`
}

// EngineConfig holds accounting engine connection settings.
type EngineConfig struct {
	// Endpoint is the engine's XML/HTTP endpoint.
	Endpoint string        `mapstructure:"endpoint"`
	Timeout  time.Duration `mapstructure:"timeout"`

	// InlineTax selects the voucher variant with explicit tax ledger
	// entries; when false the engine computes tax itself.
	InlineTax bool `mapstructure:"inline_tax"`

	// SalesLedger is the default revenue ledger credited on invoices.
	SalesLedger string `mapstructure:"sales_ledger"`

	// Demo swaps the live gateway for the in-memory repository.
	Demo bool `mapstructure:"demo"`
}

// GSTConfig holds the simplified tax policy.
type GSTConfig struct {
	// RatePercent is the policy tax rate, e.g. 18.
	RatePercent float64 `mapstructure:"rate_percent"`

	// SellerState is the seller jurisdiction the buyer state is compared
	// against.
	SellerState string `mapstructure:"seller_state"`
}

// LogConfig holds logging settings.
type LogConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}

// Build constructs a zap logger from the settings.
func (l LogConfig) Build() (*zap.Logger, error) {
	var cfg zap.Config
	if l.Format == "console" {
		cfg = zap.NewDevelopmentConfig()
	} else {
		cfg = zap.NewProductionConfig()
	}
	level, err := zapcore.ParseLevel(l.Level)
	if err != nil {
		level = zapcore.InfoLevel
	}
	cfg.Level = zap.NewAtomicLevelAt(level)
	return cfg.Build()
}

// Load reads configuration from an optional tally-bridge.yaml and from
// environment variables with the TALLY_BRIDGE_ prefix. Every setting has a
// default; a missing config file is not an error.
func Load(path string) (*Config, error) {
	v := viper.New()

	v.SetDefault("server.address", ":8080")
	v.SetDefault("server.read_timeout", 30*time.Second)
	v.SetDefault("server.write_timeout", 2*time.Minute)
	v.SetDefault("server.debug", false)
	v.SetDefault("engine.endpoint", "http://localhost:9000")
	v.SetDefault("engine.timeout", 60*time.Second)
	v.SetDefault("engine.inline_tax", true)
	v.SetDefault("engine.sales_ledger", "Sales")
	v.SetDefault("engine.demo", false)
	v.SetDefault("gst.rate_percent", 18.0)
	v.SetDefault("gst.seller_state", "Maharashtra")
	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "json")

	v.SetEnvPrefix("TALLY_BRIDGE")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, err
		}
	} else {
		v.SetConfigName("tally-bridge")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		if err := v.ReadInConfig(); err != nil {
			if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
				return nil, err
			}
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}
