// Package api implements the authenticated request pipeline shared by every
// provider binding: parameter encoding, request signing, transmission,
// response classification and decoding, and link-header pagination.
//
// A Client is configured once with a base URL, credentials, an auth mode and
// a request mode, then issues calls through three entry points:
//
//   - Call decodes a JSON response into a caller-supplied value and, when the
//     value embeds Pages, attaches the response's pagination links.
//   - CallText returns the raw response body as a string.
//   - GetStream hands back the live response body for endpoints that never
//     terminate; the caller owns consumption and close.
//
// Parameter encoding is chosen per request: GET and DELETE carry parameters
// in the query string, other verbs carry a form-encoded or JSON body per the
// client's request mode. A parameter whose key is registered as binary
// switches the request to multipart and uploads the referenced file's
// content regardless of request mode.
//
// Failures are typed. A non-2xx response yields *Error with the status, the
// exact request URL and the literal body. A 2xx response whose body does not
// match the caller's shape yields *DecodeError. Neither is retried here.
//
//	creds := &auth.Credentials{ClientID: key, ClientSecret: secret}
//	client, err := api.New("https://api.example.com", creds, logger,
//	    api.WithAuthMode(auth.ModeOAuth2),
//	    api.WithRequestMode(api.ModeJSON),
//	)
//	if err != nil {
//	    return err
//	}
//
//	var timeline []Post
//	err = client.Call(ctx, http.MethodGet, "/v1/timeline", params, &timeline)
package api
