package auth

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseMode(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    Mode
		wantErr bool
	}{
		{name: "oauth1", input: "oauth1", want: ModeOAuth1},
		{name: "oauth2", input: "oauth2", want: ModeOAuth2},
		{name: "custom", input: "custom", want: ModeCustom},
		{name: "mixed case", input: "OAuth1", want: ModeOAuth1},
		{name: "surrounding space", input: "  oauth2  ", want: ModeOAuth2},
		{name: "empty", input: "", wantErr: true},
		{name: "unknown", input: "basic", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseMode(tt.input)
			if tt.wantErr {
				assert.ErrorIs(t, err, ErrUnknownMode)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestModeString(t *testing.T) {
	assert.Equal(t, "oauth1", ModeOAuth1.String())
	assert.Equal(t, "oauth2", ModeOAuth2.String())
	assert.Equal(t, "custom", ModeCustom.String())
	assert.Equal(t, "unknown", Mode(0).String())
}

func TestNewSignerUnknownMode(t *testing.T) {
	_, err := NewSigner(Mode(99), &Credentials{})
	assert.ErrorIs(t, err, ErrUnknownMode)
}

func TestNewSignerCustomRequiresStrategy(t *testing.T) {
	_, err := NewSigner(ModeCustom, &Credentials{})
	assert.ErrorIs(t, err, ErrNoCustomSigner)
}

func TestCustomSignerRewritesParams(t *testing.T) {
	// A strategy that authenticates through the parameter set rather
	// than a header, the shape used by application-only providers.
	custom := SignerFunc(func(_ *http.Client, _, _ string, params Params) (http.Header, error) {
		params.Set("api_sig", "sig-value")
		params.Add("api_key", "key-value")
		return nil, nil
	})

	signer, err := NewSigner(ModeCustom, &Credentials{}, WithCustomSigner(custom))
	require.NoError(t, err)

	params := &testParams{pairs: []Pair{{Key: "api_sig", Value: "stale"}}}
	header, err := signer.Sign(nil, "GET", "https://api.example.com/feed", params)
	require.NoError(t, err)
	assert.Empty(t, header)

	assert.Equal(t, []Pair{
		{Key: "api_sig", Value: "sig-value"},
		{Key: "api_key", Value: "key-value"},
	}, params.Pairs())
}

func TestOAuth2SignBearer(t *testing.T) {
	signer, err := NewSigner(ModeOAuth2, &Credentials{AccessToken: "tok-123"})
	require.NoError(t, err)

	header, err := signer.Sign(nil, "GET", "https://api.example.com/feed", &testParams{})
	require.NoError(t, err)
	assert.Equal(t, "Bearer tok-123", header.Get("Authorization"))
}

func TestOAuth2SignWithoutToken(t *testing.T) {
	signer, err := NewSigner(ModeOAuth2, &Credentials{})
	require.NoError(t, err)

	header, err := signer.Sign(nil, "GET", "https://api.example.com/feed", &testParams{})
	require.NoError(t, err)
	assert.Empty(t, header.Get("Authorization"))
}
