package config

import (
	"time"

	"github.com/kelseyhightower/envconfig"
	"github.com/rs/zerolog/log"
)

// Config holds the connection settings shared by the CLI and MCP server.
type Config struct {
	APIKey   string        `envconfig:"NEBULA_API_KEY"`
	BaseURL  string        `envconfig:"NEBULA_BASE_URL" default:"https://api.nebulacloud.app"`
	Timeout  time.Duration `envconfig:"NEBULA_TIMEOUT" default:"30s"`
	LogLevel string        `envconfig:"NEBULA_LOG_LEVEL" default:"info"`
}

// Load reads configuration from environment variables.
func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Init initializes logging from the loaded configuration.
func (c *Config) Init() {
	InitLogger()
	SetLogLevel(ParseLogLevel(c.LogLevel))

	log.Info().
		Str("base_url", c.BaseURL).
		Dur("timeout", c.Timeout).
		Str("log_level", c.LogLevel).
		Msg("configuration loaded")
}
