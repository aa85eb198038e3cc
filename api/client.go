package api

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"sort"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/birdwire/birdwire/auth"
)

// Client issues authenticated requests against one provider's REST surface.
// Its configuration is fixed at construction; concurrent calls on one client
// are safe as long as credentials are not rotated while requests are in
// flight.
type Client struct {
	baseURL    string
	creds      *auth.Credentials
	signer     auth.Signer
	authMode   auth.Mode
	reqMode    RequestMode
	binaryKeys map[string]struct{}
	httpClient *http.Client
	userAgent  string
	logger     zerolog.Logger
}

// New creates a client for the provider rooted at baseURL.
func New(baseURL string, creds *auth.Credentials, logger zerolog.Logger, opts ...Option) (*Client, error) {
	if baseURL == "" {
		return nil, ErrMissingBaseURL
	}
	baseURL = strings.TrimRight(baseURL, "/")
	if creds == nil {
		creds = &auth.Credentials{}
	}

	o := clientOptions{
		authMode:  auth.ModeOAuth1,
		reqMode:   ModeForm,
		timeout:   30 * time.Second,
		userAgent: defaultUserAgent,
	}
	for _, opt := range opts {
		opt(&o)
	}

	signer, err := auth.NewSigner(o.authMode, creds, o.authOpts...)
	if err != nil {
		return nil, err
	}

	httpClient := o.httpClient
	if httpClient == nil {
		httpClient = &http.Client{Timeout: o.timeout}
	}

	binary := make(map[string]struct{}, len(o.binaryKeys))
	for _, key := range o.binaryKeys {
		binary[key] = struct{}{}
	}

	return &Client{
		baseURL:    baseURL,
		creds:      creds,
		signer:     signer,
		authMode:   o.authMode,
		reqMode:    o.reqMode,
		binaryKeys: binary,
		httpClient: httpClient,
		userAgent:  o.userAgent,
		logger:     logger,
	}, nil
}

// BaseURL returns the provider root this client was constructed with.
func (c *Client) BaseURL() string {
	return c.baseURL
}

// UserAgent returns the User-Agent header value the client sends.
func (c *Client) UserAgent() string {
	return c.userAgent
}

// AuthMode returns the authentication strategy the client signs with.
func (c *Client) AuthMode() auth.Mode {
	return c.authMode
}

// SetToken installs the access token pair obtained from an OAuth exchange.
// Callers must not rotate credentials while requests are in flight.
func (c *Client) SetToken(token, secret string) {
	c.creds.AccessToken = token
	c.creds.AccessSecret = secret
}

// AuthHeader signs one request line for transports that manage their own
// connection, such as the streaming client. targetURL must not carry a query
// string; pass those parameters in params instead.
func (c *Client) AuthHeader(method, targetURL string, params *Params) (http.Header, error) {
	if params == nil {
		params = NewParams()
	}
	params.markBinary(c.binaryKeys)
	return c.signer.Sign(c.httpClient, method, targetURL, params)
}

// Call executes a request against an endpoint path and decodes the JSON
// response into out. A nil out discards the body. If out embeds Pages, the
// response's link header is parsed and attached after decoding.
func (c *Client) Call(ctx context.Context, method, endpoint string, params *Params, out any) error {
	return c.call(ctx, method, c.baseURL+endpoint, params, out)
}

// CallURL is Call against a fully qualified URL. A query string on the URL is
// folded into the parameter set before signing so the signature covers the
// parameters exactly as they reappear on the wire.
func (c *Client) CallURL(ctx context.Context, method, rawURL string, params *Params, out any) error {
	target, merged, err := splitQuery(rawURL, params)
	if err != nil {
		return err
	}
	return c.call(ctx, method, target, merged, out)
}

// CallText executes a request and returns the raw response body as a string.
func (c *Client) CallText(ctx context.Context, method, endpoint string, params *Params) (string, error) {
	body, _, _, err := c.do(ctx, method, c.baseURL+endpoint, params)
	if err != nil {
		return "", err
	}
	return string(body), nil
}

// GetStream executes a request and returns the live response body without
// status classification; callers own consumption and close. The configured
// client timeout does not apply to the transfer, cancel ctx to abort it.
func (c *Client) GetStream(ctx context.Context, method, endpoint string, params *Params) (io.ReadCloser, error) {
	req, err := c.newRequest(ctx, method, c.baseURL+endpoint, params)
	if err != nil {
		return nil, err
	}

	streamClient := *c.httpClient
	streamClient.Timeout = 0

	resp, err := streamClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("request failed: %w", err)
	}
	return resp.Body, nil
}

func (c *Client) call(ctx context.Context, method, targetURL string, params *Params, out any) error {
	body, header, requestURL, err := c.do(ctx, method, targetURL, params)
	if err != nil {
		return err
	}
	if out == nil {
		return nil
	}

	if err := json.Unmarshal(body, out); err != nil {
		return &DecodeError{URL: requestURL, Err: err}
	}

	if pager, ok := out.(paginated); ok {
		links := parseLinkHeader(header.Get("Link"))
		links.client = c
		pager.attachLinks(links)
	}
	return nil
}

// do runs one exchange: sign, encode, transmit, classify. It returns the
// buffered body, the response headers and the URL that was requested.
func (c *Client) do(ctx context.Context, method, targetURL string, params *Params) ([]byte, http.Header, string, error) {
	req, err := c.newRequest(ctx, method, targetURL, params)
	if err != nil {
		return nil, nil, "", err
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, nil, "", fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, nil, "", fmt.Errorf("failed to read response body: %w", err)
	}

	requestURL := req.URL.String()
	c.logger.Debug().
		Str("method", method).
		Str("url", requestURL).
		Int("status", resp.StatusCode).
		Msg("API exchange complete")

	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		return nil, nil, "", &Error{
			Status: resp.StatusCode,
			URL:    requestURL,
			Body:   string(body),
		}
	}
	return body, resp.Header, requestURL, nil
}

// newRequest signs the parameter set, finalizes the query string or body and
// assembles the outbound request. The signer runs before finalization so a
// custom strategy may still rewrite parameters, and before the query string
// is attached so the signature covers the same set that goes on the wire.
func (c *Client) newRequest(ctx context.Context, method, targetURL string, params *Params) (*http.Request, error) {
	if params == nil {
		params = NewParams()
	}
	params.markBinary(c.binaryKeys)

	authHeader, err := c.signer.Sign(c.httpClient, method, targetURL, params)
	if err != nil {
		return nil, fmt.Errorf("failed to sign request: %w", err)
	}

	fullURL := targetURL
	var body io.Reader
	contentType := ""
	if methodHasBody(method) {
		encoded, err := encodeBody(c.reqMode, params)
		if err != nil {
			return nil, err
		}
		body = encoded.reader
		contentType = encoded.contentType
	} else if query := params.values().Encode(); query != "" {
		fullURL += "?" + query
	}

	req, err := http.NewRequestWithContext(ctx, method, fullURL, body)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	req.Header.Set("User-Agent", c.userAgent)
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}
	for key, values := range authHeader {
		req.Header[key] = values
	}

	return req, nil
}

// splitQuery separates a fully qualified URL into its query-less form and a
// parameter set holding the query pairs merged over params.
func splitQuery(rawURL string, params *Params) (string, *Params, error) {
	u, err := url.Parse(rawURL)
	if err != nil {
		return "", nil, fmt.Errorf("invalid url %q: %w", rawURL, err)
	}

	if params == nil {
		params = NewParams()
	}

	query := u.Query()
	keys := make([]string, 0, len(query))
	for key := range query {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	for _, key := range keys {
		for _, value := range query[key] {
			params.Add(key, value)
		}
	}

	u.RawQuery = ""
	u.Fragment = ""
	return u.String(), params, nil
}
