package auth

import "errors"

// Common errors returned by signer construction and signing.
var (
	// ErrUnknownMode is returned when a client is configured with an
	// authentication mode this package does not implement.
	ErrUnknownMode = errors.New("unknown authentication mode")

	// ErrNoCustomSigner is returned when ModeCustom is selected without
	// supplying a strategy via WithCustomSigner.
	ErrNoCustomSigner = errors.New("custom mode requires a signer strategy")

	// ErrMissingConsumer is returned when OAuth1 signing is attempted
	// without a consumer key and secret.
	ErrMissingConsumer = errors.New("oauth1 signing requires client ID and secret")
)
