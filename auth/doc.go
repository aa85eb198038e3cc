// Package auth provides the request-signing strategies used by the birdwire
// transport: OAuth 1.0a HMAC-SHA1 signing, OAuth 2.0 bearer tokens, and a
// pluggable custom strategy for providers with proprietary schemes.
//
// A Signer is a pure function of the request data and the credentials it was
// built with. It produces outbound headers and may, for custom strategies,
// rewrite the request's parameter set before encoding; it never performs I/O
// on its own beyond what a custom strategy chooses to do with the transport
// handle it receives.
//
// # Usage
//
//	creds := &auth.Credentials{
//	    ClientID:     consumerKey,
//	    ClientSecret: consumerSecret,
//	    AccessToken:  token,
//	    AccessSecret: tokenSecret,
//	}
//
//	signer, err := auth.NewSigner(auth.ModeOAuth1, creds)
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	header, err := signer.Sign(httpClient, "POST", targetURL, params)
//
// # Strategies
//
//   - OAuth1: builds the lexicographically sorted signature base, signs it
//     with HMAC-SHA1 and attaches an Authorization: OAuth header.
//   - OAuth2: attaches Authorization: Bearer when an access token is present,
//     otherwise adds nothing and lets the endpoint reject the call.
//   - Custom: delegates to a caller-supplied Signer which may rewrite the
//     parameter set in place before encoding proceeds.
//
// Percent encoding follows RFC 3986: unreserved characters pass through
// untouched, every other byte becomes uppercase %XX over its UTF-8 encoding.
package auth
