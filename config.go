package watttime

import (
	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
	"github.com/rs/zerolog"
	"net/http"
)

// DefaultBaseURL is the base URL of the official WattTime v2 API
const DefaultBaseURL = "https://api2.watttime.org/v2"

// Config represents the session configuration structure
type Config struct {
	// Username and Password are the WattTime account credentials
	Username string `envconfig:"username" required:"true"`
	Password string `envconfig:"password" required:"true"`

	// BaseURL overrides the API base URL. It defaults to DefaultBaseURL.
	BaseURL string `envconfig:"base_url"`

	// HTTPClient overrides the HTTP client used to perform the API requests.
	// It defaults to http.DefaultClient.
	HTTPClient *http.Client `ignored:"true"`

	// Logger receives debug events about the token lifecycle.
	// It defaults to a no-op logger.
	Logger *zerolog.Logger `ignored:"true"`
}

// ConfigFromEnv loads a new configuration structure using environment variables and an optional .env file
func ConfigFromEnv() (*Config, error) {
	// Load a .env file if it exists
	_ = godotenv.Overload()

	// Load a new configuration structure using environment variables
	config := new(Config)
	if err := envconfig.Process("wt", config); err != nil {
		return nil, err
	}
	return config, nil
}
