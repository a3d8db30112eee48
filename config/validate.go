package config

import (
	"fmt"
	"net/url"
)

// validFeeTiers lists the accepted default fee tier names.
var validFeeTiers = map[string]bool{
	"fastest":  true,
	"halfHour": true,
	"hour":     true,
}

// ValidateConfig checks that all configuration values are within acceptable
// ranges and returns the first error encountered, or nil if valid.
func ValidateConfig(cfg Config) error {
	if cfg.DataDir == "" {
		return ErrEmptyDataDir
	}

	if cfg.Network != "mainnet" && cfg.Network != "testnet" && cfg.Network != "regtest" {
		return ErrInvalidNetwork
	}

	if cfg.APIBaseURL != "" {
		if err := validateBaseURL(cfg.APIBaseURL); err != nil {
			return fmt.Errorf("%w: %w", ErrInvalidAPIBaseURL, err)
		}
	}

	if !validFeeTiers[cfg.DefaultFeeTier] {
		return ErrInvalidFeeTier
	}

	return nil
}

// validateBaseURL checks that raw is an absolute http(s) URL.
func validateBaseURL(raw string) error {
	u, err := url.Parse(raw)
	if err != nil {
		return err
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return fmt.Errorf("scheme must be http or https, got %q", u.Scheme)
	}
	if u.Host == "" {
		return fmt.Errorf("missing host")
	}
	return nil
}
