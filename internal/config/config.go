// Package config loads service configuration from a config file and
// environment variables. Environment variables take the VERDANT_
// prefix, e.g. VERDANT_NATS_URL.
package config

import (
	"fmt"
	"strings"

	"github.com/spf13/viper"
)

// Config holds everything the moderation services need to run.
type Config struct {
	LogLevel  string `mapstructure:"LOG_LEVEL"`
	LogFormat string `mapstructure:"LOG_FORMAT"`

	// Tracing is opt-in; the OTLP endpoint comes from the standard
	// OTEL_EXPORTER_OTLP_ENDPOINT variable.
	TracingEnabled bool `mapstructure:"TRACING_ENABLED"`

	NATSURL string `mapstructure:"NATS_URL"`

	// Policy document location. The document is re-fetched on a short
	// TTL so list edits take effect without a redeploy.
	PolicyBucket string `mapstructure:"POLICY_BUCKET"`
	PolicyKey    string `mapstructure:"POLICY_KEY"`

	AWSRegion          string `mapstructure:"AWS_REGION"`
	ComprehendLanguage string `mapstructure:"COMPREHEND_LANGUAGE"`
	CognitoUserPoolID  string `mapstructure:"COGNITO_USER_POOL_ID"`

	AccountsDBPath string `mapstructure:"ACCOUNTS_DB_PATH"`
	ReviewDBPath   string `mapstructure:"REVIEW_DB_PATH"`

	MetricsAddr string `mapstructure:"METRICS_ADDR"`
}

// Load reads config.yaml (if present) merged with VERDANT_-prefixed
// environment variables. Missing files are fine; missing keys fall
// back to defaults suitable for local development.
func Load() (*Config, error) {
	v := viper.New()
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")
	v.AddConfigPath("./configs")

	v.AutomaticEnv()
	v.SetEnvPrefix("VERDANT")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))

	v.SetDefault("LOG_LEVEL", "info")
	v.SetDefault("LOG_FORMAT", "console")
	v.SetDefault("TRACING_ENABLED", false)
	v.SetDefault("NATS_URL", "nats://localhost:4222")
	v.SetDefault("POLICY_BUCKET", "verdant-moderation")
	v.SetDefault("POLICY_KEY", "policy/lists.json")
	v.SetDefault("AWS_REGION", "us-east-1")
	v.SetDefault("COMPREHEND_LANGUAGE", "en")
	v.SetDefault("COGNITO_USER_POOL_ID", "")
	v.SetDefault("ACCOUNTS_DB_PATH", "verdant.db")
	v.SetDefault("REVIEW_DB_PATH", "reviews.db")
	v.SetDefault("METRICS_ADDR", ":9090")

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("read config: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}
	return &cfg, nil
}
