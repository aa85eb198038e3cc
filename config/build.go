package config

import (
	"errors"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/birdwire/birdwire/api"
	"github.com/birdwire/birdwire/auth"
)

// ErrAccountNotFound is returned when a named account is not configured.
var ErrAccountNotFound = errors.New("account not found")

// Account returns the named account entry.
func (c *Config) Account(name string) (AccountConfig, error) {
	acct, ok := c.Accounts[name]
	if !ok {
		return AccountConfig{}, fmt.Errorf("%w: %q", ErrAccountNotFound, name)
	}
	return acct, nil
}

// Build constructs an api.Client from an account entry. The zero values of
// the optional fields fall back to the client defaults.
func Build(acct AccountConfig, logger zerolog.Logger) (*api.Client, error) {
	creds := &auth.Credentials{
		ClientID:     acct.ClientID,
		ClientSecret: acct.ClientSecret,
		AccessToken:  acct.AccessToken,
		AccessSecret: acct.AccessSecret,
		RefreshToken: acct.RefreshToken,
	}

	var opts []api.Option

	if acct.AuthMode != "" {
		mode, err := auth.ParseMode(acct.AuthMode)
		if err != nil {
			return nil, fmt.Errorf("auth mode for provider %s: %w", acct.Provider, err)
		}
		opts = append(opts, api.WithAuthMode(mode))
	}

	if acct.RequestMode != "" {
		reqMode, err := api.ParseRequestMode(acct.RequestMode)
		if err != nil {
			return nil, fmt.Errorf("request mode for provider %s: %w", acct.Provider, err)
		}
		opts = append(opts, api.WithRequestMode(reqMode))
	}

	if len(acct.BinaryKeys) > 0 {
		opts = append(opts, api.WithBinaryKeys(acct.BinaryKeys...))
	}
	if acct.UserAgent != "" {
		opts = append(opts, api.WithUserAgent(acct.UserAgent))
	}
	if acct.Timeout > 0 {
		opts = append(opts, api.WithTimeout(acct.Timeout))
	}

	return api.New(acct.BaseURL, creds, logger, opts...)
}
