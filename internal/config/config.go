package config

import (
	"fmt"
	"net/url"
)

type Config struct {
	APIBaseURL     string
	WSBaseURL      string
	TokenFile      string
	GoogleClientID string
}

func validateBaseURL(rawURL string, schemes ...string) error {
	u, err := url.Parse(rawURL)
	if err != nil {
		return fmt.Errorf("parse url: %w", err)
	}

	for _, s := range schemes {
		if u.Scheme == s {
			return nil
		}
	}

	return fmt.Errorf("unsupported scheme %q in %q", u.Scheme, rawURL)
}

func NewConfig(apiBaseURL, wsBaseURL, tokenFile, googleClientID string) (*Config, error) {
	if apiBaseURL == "" {
		return nil, fmt.Errorf("api base url cannot be empty")
	}
	if wsBaseURL == "" {
		return nil, fmt.Errorf("websocket base url cannot be empty")
	}
	if tokenFile == "" {
		return nil, fmt.Errorf("token file path cannot be empty")
	}

	if err := validateBaseURL(apiBaseURL, "http", "https"); err != nil {
		return nil, fmt.Errorf("api base url: %w", err)
	}
	if err := validateBaseURL(wsBaseURL, "ws", "wss"); err != nil {
		return nil, fmt.Errorf("websocket base url: %w", err)
	}

	// GoogleClientID is optional: without it the google sign-in
	// path is disabled, everything else works.
	return &Config{
		APIBaseURL:     apiBaseURL,
		WSBaseURL:      wsBaseURL,
		TokenFile:      tokenFile,
		GoogleClientID: googleClientID,
	}, nil
}
