package auth

import (
	"crypto/hmac"
	"crypto/sha1"
	"encoding/base64"
	"net/http"
	"net/url"
	"sort"
	"strconv"
	"strings"
	"time"
)

// Protocol parameter names defined by OAuth 1.0a.
const (
	oauthConsumerKey     = "oauth_consumer_key"
	oauthNonce           = "oauth_nonce"
	oauthSignature       = "oauth_signature"
	oauthSignatureMethod = "oauth_signature_method"
	oauthTimestamp       = "oauth_timestamp"
	oauthToken           = "oauth_token"
	oauthVersion         = "oauth_version"

	signatureMethodHMACSHA1 = "HMAC-SHA1"
	oauthVersion10          = "1.0"
)

// oauth1Signer implements the OAuth 1.0a HMAC-SHA1 strategy.
type oauth1Signer struct {
	creds *Credentials
	nonce func() string
	now   func() time.Time
}

func (s *oauth1Signer) Sign(_ *http.Client, method, targetURL string, params Params) (http.Header, error) {
	if s.creds == nil || s.creds.ClientID == "" || s.creds.ClientSecret == "" {
		return nil, ErrMissingConsumer
	}

	oauthParams := map[string]string{
		oauthConsumerKey:     s.creds.ClientID,
		oauthNonce:           s.nonce(),
		oauthSignatureMethod: signatureMethodHMACSHA1,
		oauthTimestamp:       strconv.FormatInt(s.now().Unix(), 10),
		oauthVersion:         oauthVersion10,
	}
	if s.creds.HasAccessToken() {
		oauthParams[oauthToken] = s.creds.AccessToken
	}

	// The signature covers the protocol parameters plus the call's own
	// parameters, collapsed into one map. Later duplicates win, matching
	// how the server reconstructs the set.
	all := make(map[string]string, len(oauthParams)+8)
	for k, v := range oauthParams {
		all[k] = v
	}
	if params != nil {
		for _, p := range params.Pairs() {
			all[p.Key] = p.Value
		}
	}

	base := signatureBase(strings.ToUpper(method), targetURL, all)
	key := PercentEncode(s.creds.ClientSecret) + "&" + PercentEncode(s.creds.AccessSecret)
	oauthParams[oauthSignature] = signHMACSHA1(base, key)

	header := make(http.Header, 1)
	header.Set("Authorization", authorizationHeader(oauthParams))
	return header, nil
}

// signatureBase builds METHOD&encoded-url&encoded-parameter-string. The
// parameter string percent-encodes every key and value first, sorts by the
// encoded key, and joins with '=' and '&'.
func signatureBase(method, targetURL string, params map[string]string) string {
	type pair struct {
		key, value string
	}
	encoded := make([]pair, 0, len(params))
	for k, v := range params {
		encoded = append(encoded, pair{PercentEncode(k), PercentEncode(v)})
	}
	sort.Slice(encoded, func(i, j int) bool { return encoded[i].key < encoded[j].key })

	parts := make([]string, len(encoded))
	for i, p := range encoded {
		parts[i] = p.key + "=" + p.value
	}
	paramString := strings.Join(parts, "&")

	return method + "&" + PercentEncode(targetURL) + "&" + PercentEncode(paramString)
}

// signHMACSHA1 returns the base64 HMAC-SHA1 digest of base under key.
func signHMACSHA1(base, key string) string {
	mac := hmac.New(sha1.New, []byte(key))
	mac.Write([]byte(base))
	return base64.StdEncoding.EncodeToString(mac.Sum(nil))
}

// authorizationHeader renders the OAuth header value with the protocol
// fields in their documented order and the signature last.
func authorizationHeader(oauthParams map[string]string) string {
	order := []string{
		oauthConsumerKey,
		oauthNonce,
		oauthSignatureMethod,
		oauthTimestamp,
		oauthVersion,
		oauthToken,
		oauthSignature,
	}

	var b strings.Builder
	b.WriteString("OAuth ")
	first := true
	for _, name := range order {
		value, ok := oauthParams[name]
		if !ok {
			continue
		}
		if !first {
			b.WriteByte(',')
		}
		first = false
		b.WriteString(name)
		b.WriteString(`="`)
		b.WriteString(PercentEncode(value))
		b.WriteByte('"')
	}
	return b.String()
}

// ParseTokenResponse decodes the URL-encoded body returned by OAuth1
// request-token and access-token endpoints. The token and secret are
// extracted; remaining fields (screen name, user id and similar) are
// returned as-is for the caller.
func ParseTokenResponse(body string) (token, secret string, extra url.Values, err error) {
	values, err := url.ParseQuery(strings.TrimSpace(body))
	if err != nil {
		return "", "", nil, err
	}
	token = values.Get(oauthToken)
	secret = values.Get("oauth_token_secret")
	values.Del(oauthToken)
	values.Del("oauth_token_secret")
	return token, secret, values, nil
}
