package api

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseRequestMode(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    RequestMode
		wantErr bool
	}{
		{name: "form", input: "form", want: ModeForm},
		{name: "form-encoded alias", input: "form-encoded", want: ModeForm},
		{name: "json", input: "json", want: ModeJSON},
		{name: "mixed case", input: "JSON", want: ModeJSON},
		{name: "unknown", input: "xml", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseRequestMode(tt.input)
			if tt.wantErr {
				assert.ErrorIs(t, err, ErrUnknownRequestMode)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestFormBody(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "application/x-www-form-urlencoded", r.Header.Get("Content-Type"))

		body, err := io.ReadAll(r.Body)
		require.NoError(t, err)
		assert.Equal(t, "hidden=false&status=hello+world", string(body))

		_, _ = w.Write([]byte(`{}`))
	}))
	defer server.Close()

	client, err := New(server.URL, testCreds(), zerolog.Nop())
	require.NoError(t, err)

	params := NewParams()
	params.Set("status", "hello world")
	params.SetBool("hidden", false)
	require.NoError(t, client.Call(context.Background(), http.MethodPost, "/v1/posts", params, nil))
}

func TestJSONBody(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))

		body, err := io.ReadAll(r.Body)
		require.NoError(t, err)
		assert.JSONEq(t, `{"status":"hello world","hidden":"false"}`, string(body))

		_, _ = w.Write([]byte(`{}`))
	}))
	defer server.Close()

	client, err := New(server.URL, testCreds(), zerolog.Nop(), WithRequestMode(ModeJSON))
	require.NoError(t, err)

	params := NewParams()
	params.Set("status", "hello world")
	params.SetBool("hidden", false)
	require.NoError(t, client.Call(context.Background(), http.MethodPost, "/v1/posts", params, nil))
}

func TestJSONDuplicateKeyFailsBeforeTransmission(t *testing.T) {
	hit := false
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hit = true
		_, _ = w.Write([]byte(`{}`))
	}))
	defer server.Close()

	client, err := New(server.URL, testCreds(), zerolog.Nop(), WithRequestMode(ModeJSON))
	require.NoError(t, err)

	params := NewParams()
	params.Add("status", "first")
	params.Add("status", "second")

	err = client.Call(context.Background(), http.MethodPost, "/v1/posts", params, nil)
	assert.ErrorIs(t, err, ErrDuplicateKey)
	assert.False(t, hit, "duplicate key must fail before any transmission")
}

func TestBinaryKeyForcesMultipart(t *testing.T) {
	dir := t.TempDir()
	mediaPath := filepath.Join(dir, "avatar.png")
	require.NoError(t, os.WriteFile(mediaPath, []byte{0x89, 'P', 'N', 'G', 0x0}, 0o600))

	tests := []struct {
		name string
		mode RequestMode
	}{
		{name: "form mode", mode: ModeForm},
		{name: "json mode", mode: ModeJSON},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				assert.True(t, strings.HasPrefix(r.Header.Get("Content-Type"), "multipart/form-data"))

				require.NoError(t, r.ParseMultipartForm(1<<20))
				assert.Equal(t, "new look", r.FormValue("caption"))

				file, header, err := r.FormFile("media")
				require.NoError(t, err)
				defer file.Close()

				assert.Equal(t, "avatar.png", header.Filename)
				data, err := io.ReadAll(file)
				require.NoError(t, err)
				assert.Equal(t, []byte{0x89, 'P', 'N', 'G', 0x0}, data)

				_, _ = w.Write([]byte(`{}`))
			}))
			defer server.Close()

			client, err := New(server.URL, testCreds(), zerolog.Nop(),
				WithRequestMode(tt.mode),
				WithBinaryKeys("media"),
			)
			require.NoError(t, err)

			params := NewParams()
			params.Set("caption", "new look")
			params.Set("media", mediaPath)
			require.NoError(t, client.Call(context.Background(), http.MethodPost, "/v1/media", params, nil))
		})
	}
}

func TestMultipartMissingFile(t *testing.T) {
	hit := false
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hit = true
		_, _ = w.Write([]byte(`{}`))
	}))
	defer server.Close()

	client, err := New(server.URL, testCreds(), zerolog.Nop(), WithBinaryKeys("media"))
	require.NoError(t, err)

	params := NewParams()
	params.Set("media", filepath.Join(t.TempDir(), "missing.png"))

	err = client.Call(context.Background(), http.MethodPost, "/v1/media", params, nil)
	require.Error(t, err)
	assert.False(t, hit)
}

func TestNoBinaryKeyStaysForm(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "application/x-www-form-urlencoded", r.Header.Get("Content-Type"))
		_, _ = w.Write([]byte(`{}`))
	}))
	defer server.Close()

	// The binary key is registered but absent from this request.
	client, err := New(server.URL, testCreds(), zerolog.Nop(), WithBinaryKeys("media"))
	require.NoError(t, err)

	params := NewParams()
	params.Set("status", "text only")
	require.NoError(t, client.Call(context.Background(), http.MethodPost, "/v1/posts", params, nil))
}
