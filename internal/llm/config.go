package llm

import (
	"os"
	"strconv"
)

// Config holds all configuration for the completion-API client.
type Config struct {
	Endpoint     string
	Token        string
	User         string
	ResponseMode string
	TimeoutMs    int
	LogCalls     bool
}

// DefaultConfig returns a Config with sensible defaults. The client is
// unusable until a bearer token is configured.
func DefaultConfig() Config {
	return Config{
		Endpoint:     "https://api.dify.ai/v1",
		Token:        "",
		User:         "daylist",
		ResponseMode: "streaming",
		TimeoutMs:    0, // no timeout: a report stream runs as long as the model talks
		LogCalls:     false,
	}
}

// LoadConfig reads completion-API configuration from environment
// variables, falling back to defaults for any unset values.
func LoadConfig() Config {
	cfg := DefaultConfig()

	if v := os.Getenv("DAYLIST_LLM_ENDPOINT"); v != "" {
		cfg.Endpoint = v
	}
	if v := os.Getenv("DAYLIST_LLM_TOKEN"); v != "" {
		cfg.Token = v
	}
	if v := os.Getenv("DAYLIST_LLM_USER"); v != "" {
		cfg.User = v
	}
	if v := os.Getenv("DAYLIST_LLM_TIMEOUT_MS"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			cfg.TimeoutMs = n
		}
	}
	if v := os.Getenv("DAYLIST_LLM_LOG_CALLS"); v != "" {
		cfg.LogCalls, _ = strconv.ParseBool(v)
	}

	return cfg
}

// Enabled reports whether the client has a bearer token to call the
// upstream API with.
func (c Config) Enabled() bool {
	return c.Token != ""
}
