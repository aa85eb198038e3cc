package api

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
)

// RequestMode selects how a request body is encoded. It is fixed when the
// client is constructed; requests with binary parameters override it and go
// out as multipart regardless.
type RequestMode int

const (
	// ModeForm sends bodies as URL-encoded key=value pairs.
	ModeForm RequestMode = iota + 1
	// ModeJSON sends bodies as a JSON object keyed by parameter name.
	ModeJSON
)

// String returns the mode name as used in configuration files.
func (m RequestMode) String() string {
	switch m {
	case ModeForm:
		return "form"
	case ModeJSON:
		return "json"
	default:
		return "unknown"
	}
}

// ParseRequestMode converts a configuration string into a RequestMode.
func ParseRequestMode(s string) (RequestMode, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "form", "form-encoded", "urlencoded":
		return ModeForm, nil
	case "json":
		return ModeJSON, nil
	default:
		return 0, fmt.Errorf("%w: %q", ErrUnknownRequestMode, s)
	}
}

// requestBody is an encoded body ready for transmission.
type requestBody struct {
	reader      io.Reader
	contentType string
}

// methodHasBody reports whether the verb carries its parameters in a body.
// GET and DELETE parameters travel in the query string instead.
func methodHasBody(method string) bool {
	switch method {
	case http.MethodGet, http.MethodDelete, http.MethodHead:
		return false
	default:
		return true
	}
}

// encodeBody turns the parameter set into a transmittable body. A set with
// binary parameters always becomes multipart, whatever the configured mode.
func encodeBody(mode RequestMode, params *Params) (*requestBody, error) {
	if params.hasFiles() {
		return encodeMultipart(params)
	}

	switch mode {
	case ModeForm:
		return &requestBody{
			reader:      strings.NewReader(params.values().Encode()),
			contentType: "application/x-www-form-urlencoded",
		}, nil
	case ModeJSON:
		return encodeJSON(params)
	default:
		return nil, fmt.Errorf("%w: %d", ErrUnknownRequestMode, mode)
	}
}

// encodeJSON builds a string-keyed JSON object from the parameter set. A key
// appearing twice is a caller bug and fails here, before any transmission.
func encodeJSON(params *Params) (*requestBody, error) {
	doc := make(map[string]string, params.Len())
	for _, pair := range params.Pairs() {
		if _, exists := doc[pair.Key]; exists {
			return nil, fmt.Errorf("%w: %q", ErrDuplicateKey, pair.Key)
		}
		doc[pair.Key] = pair.Value
	}

	data, err := json.Marshal(doc)
	if err != nil {
		return nil, fmt.Errorf("failed to encode json body: %w", err)
	}

	return &requestBody{
		reader:      bytes.NewReader(data),
		contentType: "application/json",
	}, nil
}
