// Package config loads application configuration from file and environment.
package config

import (
	"fmt"
	"time"

	"github.com/spf13/viper"
)

// Config holds all application configuration
type Config struct {
	Server   ServerConfig   `mapstructure:"server"`
	Upstream UpstreamConfig `mapstructure:"upstream"`
	Logger   LoggerConfig   `mapstructure:"logger"`
}

// ServerConfig holds HTTP server configuration
type ServerConfig struct {
	Host         string        `mapstructure:"host"`
	Port         int           `mapstructure:"port"`
	ReadTimeout  time.Duration `mapstructure:"read_timeout"`
	WriteTimeout time.Duration `mapstructure:"write_timeout"`
}

// UpstreamConfig holds reporting API client configuration
type UpstreamConfig struct {
	BaseURL    string        `mapstructure:"base_url"`
	Timeout    time.Duration `mapstructure:"timeout"`
	RetryCount int           `mapstructure:"retry_count"`
	RetryWait  time.Duration `mapstructure:"retry_wait"`
}

// LoggerConfig holds logger configuration
type LoggerConfig struct {
	Level       string `mapstructure:"level"`
	Development bool   `mapstructure:"development"`
}

// Load loads configuration from file and environment variables.
// The file is optional; defaults plus RXCONSOLE_* env vars are enough to run.
func Load(configPath string) (*Config, error) {
	v := viper.New()
	v.SetEnvPrefix("RXCONSOLE")
	v.AutomaticEnv()

	setDefaults(v)

	if configPath != "" {
		v.SetConfigFile(configPath)
		v.SetConfigType("yaml")
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("read config file: %w", err)
		}
	}

	bindEnvVars(v)

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}

	if cfg.Upstream.BaseURL == "" {
		return nil, fmt.Errorf("upstream.base_url is required")
	}

	return &cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("server.host", "0.0.0.0")
	v.SetDefault("server.port", 8080)
	v.SetDefault("server.read_timeout", 15*time.Second)
	v.SetDefault("server.write_timeout", 30*time.Second)

	v.SetDefault("upstream.timeout", 30*time.Second)
	v.SetDefault("upstream.retry_count", 0)
	v.SetDefault("upstream.retry_wait", time.Second)

	v.SetDefault("logger.level", "info")
	v.SetDefault("logger.development", false)
}

func bindEnvVars(v *viper.Viper) {
	_ = v.BindEnv("server.host", "RXCONSOLE_SERVER_HOST")
	_ = v.BindEnv("server.port", "RXCONSOLE_SERVER_PORT")
	_ = v.BindEnv("upstream.base_url", "RXCONSOLE_UPSTREAM_BASE_URL")
	_ = v.BindEnv("upstream.timeout", "RXCONSOLE_UPSTREAM_TIMEOUT")
	_ = v.BindEnv("logger.level", "RXCONSOLE_LOG_LEVEL")
	_ = v.BindEnv("logger.development", "RXCONSOLE_LOG_DEV")
}
