package auth

// Credentials holds the identifiers and secrets a client signs with.
// They are supplied when the client is constructed and change only through
// the client's explicit setter methods, for example after completing an
// OAuth exchange. Callers that rotate credentials while requests are in
// flight must serialize the rotation themselves.
type Credentials struct {
	// ClientID is the application identifier (OAuth1 consumer key or
	// OAuth2 client ID).
	ClientID string

	// ClientSecret is the application secret (OAuth1 consumer secret or
	// OAuth2 client secret).
	ClientSecret string

	// AccessToken authenticates as a specific account. Optional; OAuth1
	// signing omits oauth_token without it and OAuth2 sends no header.
	AccessToken string

	// AccessSecret is the OAuth1 token secret paired with AccessToken.
	AccessSecret string

	// RefreshToken renews an expired OAuth2 access token. Optional.
	RefreshToken string
}

// HasAccessToken reports whether an account-level token is present.
func (c *Credentials) HasAccessToken() bool {
	return c != nil && c.AccessToken != ""
}
