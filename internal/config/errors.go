package config

import "errors"

// Sentinel errors for configuration loading and validation.
var (
	// ErrConfigEmpty is returned when a config file is empty (zero bytes).
	ErrConfigEmpty = errors.New("configuration is empty")

	// ErrMissingCookie is returned when no session cookie is configured.
	ErrMissingCookie = errors.New("session cookie is required: set AOC_COOKIE, --cookie or session in the config file")

	// ErrMissingURL is returned when no input URL is configured.
	ErrMissingURL = errors.New("input URL is required: set AOC_URL, --url or url in the config file")

	// ErrInvalidTimeout is returned when the HTTP timeout is not positive.
	ErrInvalidTimeout = errors.New("timeout must be positive")
)
