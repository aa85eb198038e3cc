package api

import (
	"net/http"
	"time"

	"github.com/birdwire/birdwire/auth"
)

// Option configures a Client.
type Option func(*clientOptions)

// clientOptions holds configuration options for the Client.
type clientOptions struct {
	authMode   auth.Mode
	reqMode    RequestMode
	binaryKeys []string
	httpClient *http.Client
	timeout    time.Duration
	userAgent  string
	authOpts   []auth.Option
}

// WithAuthMode selects the authentication strategy. Defaults to OAuth 1.0a.
func WithAuthMode(mode auth.Mode) Option {
	return func(o *clientOptions) {
		o.authMode = mode
	}
}

// WithRequestMode selects the body encoding for verbs that carry one.
// Defaults to form encoding.
func WithRequestMode(mode RequestMode) Option {
	return func(o *clientOptions) {
		o.reqMode = mode
	}
}

// WithBinaryKeys registers parameter keys whose values are file paths. A
// request containing one of these keys goes out as multipart and uploads the
// file's content.
func WithBinaryKeys(keys ...string) Option {
	return func(o *clientOptions) {
		o.binaryKeys = append(o.binaryKeys, keys...)
	}
}

// WithHTTPClient supplies the underlying transport. Overrides WithTimeout.
func WithHTTPClient(client *http.Client) Option {
	return func(o *clientOptions) {
		o.httpClient = client
	}
}

// WithTimeout sets the HTTP client timeout.
func WithTimeout(timeout time.Duration) Option {
	return func(o *clientOptions) {
		o.timeout = timeout
	}
}

// WithUserAgent sets a custom user agent string.
func WithUserAgent(userAgent string) Option {
	return func(o *clientOptions) {
		o.userAgent = userAgent
	}
}

// WithCustomSigner installs a caller-supplied signing strategy and switches
// the client to custom auth mode.
func WithCustomSigner(s auth.Signer) Option {
	return func(o *clientOptions) {
		o.authMode = auth.ModeCustom
		o.authOpts = append(o.authOpts, auth.WithCustomSigner(s))
	}
}

// WithSignerOptions forwards options to signer construction, such as a fixed
// nonce source or clock.
func WithSignerOptions(opts ...auth.Option) Option {
	return func(o *clientOptions) {
		o.authOpts = append(o.authOpts, opts...)
	}
}
