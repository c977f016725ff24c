// Package config loads the runtime configuration from the environment, with
// defaults suited to local simulation runs.
package config

import (
	"strings"

	"github.com/spf13/viper"

	"github.com/fiscalis/dgi-api/constants"
)

// Config represents the application configuration
type Config struct {
	Stage    string       `mapstructure:"stage"`
	LogLevel string       `mapstructure:"log_level"`
	Server   ServerConfig `mapstructure:"server"`
	CORS     CORSConfig   `mapstructure:"cors"`
}

// ServerConfig contains HTTP server settings
type ServerConfig struct {
	Port int `mapstructure:"port"`
}

// CORSConfig contains cross-origin settings
type CORSConfig struct {
	AllowedOrigins   []string `mapstructure:"allowed_origins"`
	AllowedMethods   []string `mapstructure:"allowed_methods"`
	AllowedHeaders   []string `mapstructure:"allowed_headers"`
	AllowCredentials bool     `mapstructure:"allow_credentials"`
}

// Load reads configuration from environment variables prefixed with DGI_
// (e.g. DGI_SERVER_PORT), plus STAGE and LOG_LEVEL which keep their
// unprefixed names.
func Load() (*Config, error) {
	v := viper.New()

	v.SetDefault("stage", constants.StageLocal)
	v.SetDefault("log_level", "info")
	v.SetDefault("server.port", 3001)
	v.SetDefault("cors.allowed_origins", []string{"http://localhost:3000"})
	v.SetDefault("cors.allowed_methods", []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"})
	v.SetDefault("cors.allowed_headers", []string{"Origin", "Content-Type", "Accept", "Authorization", "X-Correlation-ID"})
	v.SetDefault("cors.allow_credentials", false)

	v.SetEnvPrefix("DGI")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// STAGE and LOG_LEVEL are shared with the logger and keep their
	// historical unprefixed names.
	_ = v.BindEnv("stage", "STAGE")
	_ = v.BindEnv("log_level", "LOG_LEVEL")

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, err
	}

	if !constants.IsValidStage(cfg.Stage) {
		cfg.Stage = constants.StageLocal
	}

	return &cfg, nil
}
