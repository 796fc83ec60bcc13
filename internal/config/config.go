package config

import (
	"time"

	"github.com/spf13/viper"
)

// Config holds all configuration for the dashboard agent.
type Config struct {
	Server ServerConfig
	Jobs   JobsAPIConfig
}

type ServerConfig struct {
	Port         int           `mapstructure:"AGENT_PORT"`
	ReadTimeout  time.Duration `mapstructure:"AGENT_READ_TIMEOUT"`
	WriteTimeout time.Duration `mapstructure:"AGENT_WRITE_TIMEOUT"`
	RateLimit    int           `mapstructure:"AGENT_RATE_LIMIT"`
	GinMode      string        `mapstructure:"GIN_MODE"`
}

type JobsAPIConfig struct {
	BaseURL string        `mapstructure:"JOBS_API_URL"`
	Timeout time.Duration `mapstructure:"JOBS_HTTP_TIMEOUT"`
}

// Load reads configuration from environment variables and .env file.
func Load() (*Config, error) {
	viper.SetConfigFile(".env")
	viper.AutomaticEnv()

	// Set defaults
	viper.SetDefault("AGENT_PORT", 7430)
	viper.SetDefault("AGENT_READ_TIMEOUT", "10s")
	viper.SetDefault("AGENT_WRITE_TIMEOUT", "30s")
	viper.SetDefault("AGENT_RATE_LIMIT", 100)
	viper.SetDefault("GIN_MODE", "debug")
	viper.SetDefault("JOBS_API_URL", "http://127.0.0.1:8000/api/jobs/")
	viper.SetDefault("JOBS_HTTP_TIMEOUT", "15s")

	// Attempt to read .env file (non-fatal if missing)
	_ = viper.ReadInConfig()

	cfg := &Config{}
	cfg.Server.Port = viper.GetInt("AGENT_PORT")
	cfg.Server.ReadTimeout = viper.GetDuration("AGENT_READ_TIMEOUT")
	cfg.Server.WriteTimeout = viper.GetDuration("AGENT_WRITE_TIMEOUT")
	cfg.Server.RateLimit = viper.GetInt("AGENT_RATE_LIMIT")
	cfg.Server.GinMode = viper.GetString("GIN_MODE")
	cfg.Jobs.BaseURL = viper.GetString("JOBS_API_URL")
	cfg.Jobs.Timeout = viper.GetDuration("JOBS_HTTP_TIMEOUT")

	return cfg, nil
}
