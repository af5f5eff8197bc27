package config

import (
	"strings"
	"time"
)

// Config holds all application configuration.
// It is constructed once at startup by Load and passed to constructors;
// nothing in the application reads configuration through package-level state.
type Config struct {
	App      AppConfig      `mapstructure:"app"      validate:"required"`
	Server   ServerConfig   `mapstructure:"server"   validate:"required"`
	Database DatabaseConfig `mapstructure:"database" validate:"required"`
	LLM      LLMConfig      `mapstructure:"llm"      validate:"required"`
}

// AppConfig contains service identity settings.
type AppConfig struct {
	Name string `mapstructure:"name" validate:"required"`
	Env  string `mapstructure:"env"  validate:"required,oneof=development staging production"`
}

// IsProduction reports whether the service runs in the production environment.
// Unhandled error detail is hidden from responses when it does.
func (c AppConfig) IsProduction() bool {
	return strings.EqualFold(c.Env, "production")
}

// ServerConfig contains all server-related configuration settings.
type ServerConfig struct {
	Port     int    `mapstructure:"port"      validate:"required,gt=0,lt=65536"`
	LogLevel string `mapstructure:"log_level" validate:"required,oneof=debug info warn error"`
}

// DatabaseConfig contains all database-related configuration settings.
type DatabaseConfig struct {
	URL string `mapstructure:"url" validate:"required"`
}

// LLMConfig contains the settings for the external summarization API.
// An empty APIKey disables summary generation without failing requests.
type LLMConfig struct {
	APIKey            string  `mapstructure:"api_key"`
	APIURL            string  `mapstructure:"api_url"             validate:"required,url"`
	Model             string  `mapstructure:"model"               validate:"required"`
	TimeoutSeconds    int     `mapstructure:"timeout_seconds"     validate:"required,gt=0"`
	MaxRetries        int     `mapstructure:"max_retries"         validate:"required,gt=0"`
	RetryDelaySeconds float64 `mapstructure:"retry_delay_seconds" validate:"required,gt=0"`
}

// Timeout returns the per-request timeout for summarization calls.
func (c LLMConfig) Timeout() time.Duration {
	return time.Duration(c.TimeoutSeconds) * time.Second
}

// RetryDelay returns the base delay between retry attempts.
func (c LLMConfig) RetryDelay() time.Duration {
	return time.Duration(c.RetryDelaySeconds * float64(time.Second))
}
