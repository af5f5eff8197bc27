package config

import (
	"fmt"

	"github.com/go-playground/validator/v10"
	"github.com/spf13/viper"
)

// envBindings maps internal configuration keys to the environment variables
// they are sourced from. The names follow the service's deployment
// convention rather than a common prefix.
var envBindings = map[string]string{
	"app.name":                "APP_NAME",
	"app.env":                 "APP_ENV",
	"server.port":             "SERVER_PORT",
	"server.log_level":        "LOG_LEVEL",
	"database.url":            "DATABASE_URL",
	"llm.api_key":             "OPENAI_API_KEY",
	"llm.api_url":             "OPENAI_API_URL",
	"llm.model":               "OPENAI_MODEL",
	"llm.timeout_seconds":     "EXTERNAL_API_TIMEOUT",
	"llm.max_retries":         "EXTERNAL_API_MAX_RETRIES",
	"llm.retry_delay_seconds": "EXTERNAL_API_RETRY_DELAY",
}

// Load reads configuration from environment variables, applies defaults,
// and validates the result. Returns a populated Config or an error if a
// required value is missing or out of range.
func Load() (*Config, error) {
	v := viper.New()

	v.SetDefault("app.name", "TaskBrief API")
	v.SetDefault("app.env", "development")
	v.SetDefault("server.port", 8080)
	v.SetDefault("server.log_level", "info")
	v.SetDefault("database.url", "")
	v.SetDefault("llm.api_key", "")
	v.SetDefault("llm.api_url", "https://api.openai.com/v1/chat/completions")
	v.SetDefault("llm.model", "gpt-3.5-turbo")
	v.SetDefault("llm.timeout_seconds", 30)
	v.SetDefault("llm.max_retries", 3)
	v.SetDefault("llm.retry_delay_seconds", 1.0)

	for key, env := range envBindings {
		if err := v.BindEnv(key, env); err != nil {
			return nil, fmt.Errorf("failed to bind environment variable %s: %w", env, err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal configuration: %w", err)
	}

	if err := validator.New().Struct(&cfg); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return &cfg, nil
}
