package config

import (
	"os"

	"github.com/joho/godotenv"
)

// Environment variable names. Credentials are expected to be injected by
// the environment (a secrets manager or a local .env file).
const (
	EnvAccessToken = "TICKTICK_ACCESS_TOKEN"
	EnvUsername    = "TICKTICK_USERNAME"
	EnvPassword    = "TICKTICK_PASSWORD"
	EnvLogLevel    = "TICKTICK_LOG_LEVEL"
)

// Config holds the credentials for the two TickTick interfaces. Either set
// may be absent; the dispatcher decides what that means per operation.
type Config struct {
	// AccessToken authenticates against the official Open API.
	AccessToken string

	// Username and Password authenticate against the internal web API.
	Username string
	Password string

	// LogLevel is the slog level name ("debug", "info", "warn", "error").
	LogLevel string
}

// Load reads configuration from the environment. A .env file in the
// working directory is loaded first when present; real environment
// variables take precedence over it.
func Load() *Config {
	// Ignore the error: a missing .env file is the normal case.
	_ = godotenv.Load()

	return &Config{
		AccessToken: os.Getenv(EnvAccessToken),
		Username:    os.Getenv(EnvUsername),
		Password:    os.Getenv(EnvPassword),
		LogLevel:    os.Getenv(EnvLogLevel),
	}
}

// HasOpenAPI reports whether official-interface credentials are present.
func (c *Config) HasOpenAPI() bool {
	return c.AccessToken != ""
}

// HasWebAPI reports whether internal-interface credentials are present.
func (c *Config) HasWebAPI() bool {
	return c.Username != "" && c.Password != ""
}
