// Package config resolves the settings used to create a conversation.
//
// Settings come, in increasing order of precedence, from built-in defaults,
// an optional YAML file, and the TAVUS_* environment variables. Command line
// flags are applied on top by the CLI.
package config

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/picatz/tavus"
	"gopkg.in/yaml.v3"
)

// Environment variables read by Load.
const (
	EnvAPIKey  = "TAVUS_API_KEY"
	EnvBaseURL = "TAVUS_BASE_URL"
)

// ErrMissingAPIKey is returned by Validate when no API key was configured.
var ErrMissingAPIKey = errors.New(EnvAPIKey + " environment variable, api_key config entry, or --api-key flag is not set")

// Config contains everything needed to create a conversation.
type Config struct {
	APIKey       string                           `yaml:"api_key"`
	BaseURL      string                           `yaml:"base_url"`
	Conversation *tavus.CreateConversationRequest `yaml:"conversation"`
}

// Default returns the built-in configuration, without an API key.
func Default() Config {
	return Config{
		BaseURL:      tavus.DefaultBaseURL,
		Conversation: tavus.DefaultConversationRequest(),
	}
}

// Load returns the default configuration, overlaid with the YAML file at
// path (if path is not empty) and then the environment.
//
// Keys missing from the file keep their defaults, so a file only needs the
// fields it changes.
func Load(path string) (Config, error) {
	cfg := Default()

	if path != "" {
		b, err := os.ReadFile(path)
		if err != nil {
			return Config{}, fmt.Errorf("failed to read config file: %w", err)
		}

		if err := Decode(b, &cfg); err != nil {
			return Config{}, fmt.Errorf("failed to parse config file %q: %w", path, err)
		}
	}

	if v := strings.TrimSpace(os.Getenv(EnvAPIKey)); v != "" {
		cfg.APIKey = v
	}
	if v := strings.TrimSpace(os.Getenv(EnvBaseURL)); v != "" {
		cfg.BaseURL = v
	}

	return cfg, nil
}

// Decode overlays the YAML document b onto cfg.
func Decode(b []byte, cfg *Config) error {
	if cfg.Conversation == nil {
		cfg.Conversation = tavus.DefaultConversationRequest()
	}

	// Decode the conversation into the existing value so absent keys keep
	// their defaults instead of being zeroed.
	doc := struct {
		APIKey       *string   `yaml:"api_key"`
		BaseURL      *string   `yaml:"base_url"`
		Conversation yaml.Node `yaml:"conversation"`
	}{}

	if err := yaml.Unmarshal(b, &doc); err != nil {
		return err
	}

	if doc.APIKey != nil {
		cfg.APIKey = strings.TrimSpace(*doc.APIKey)
	}
	if doc.BaseURL != nil {
		cfg.BaseURL = strings.TrimSpace(*doc.BaseURL)
	}
	if !doc.Conversation.IsZero() {
		if err := doc.Conversation.Decode(cfg.Conversation); err != nil {
			return fmt.Errorf("conversation: %w", err)
		}
	}

	return nil
}

// Validate reports whether cfg can be used to send a request.
func (c Config) Validate() error {
	if c.APIKey == "" {
		return ErrMissingAPIKey
	}
	if c.BaseURL == "" {
		return errors.New("base URL is empty")
	}
	if c.Conversation == nil {
		return errors.New("conversation is not configured")
	}
	return nil
}
