package api

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBatch(t *testing.T) {
	var calls atomic.Int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		switch r.URL.Path {
		case "/v1/posts/1":
			_, _ = w.Write([]byte(`{"id":1}`))
		case "/v1/posts/2":
			_, _ = w.Write([]byte(`{"id":2}`))
		default:
			w.WriteHeader(http.StatusNotFound)
			_, _ = w.Write([]byte(`{"error":"not_found"}`))
		}
	}))
	defer server.Close()

	client, err := New(server.URL, testCreds(), zerolog.Nop())
	require.NoError(t, err)

	type post struct {
		ID int `json:"id"`
	}
	var first, second, missing post

	reqs := []BatchRequest{
		{Method: http.MethodGet, Endpoint: "/v1/posts/1", Out: &first},
		{Method: http.MethodGet, Endpoint: "/v1/posts/2", Out: &second},
		{Method: http.MethodGet, Endpoint: "/v1/posts/9", Out: &missing},
	}

	errs := client.Batch(context.Background(), 2, reqs)
	require.Len(t, errs, 3)

	assert.NoError(t, errs[0])
	assert.NoError(t, errs[1])
	assert.Equal(t, 1, first.ID)
	assert.Equal(t, 2, second.ID)

	var apiErr *Error
	require.ErrorAs(t, errs[2], &apiErr)
	assert.Equal(t, http.StatusNotFound, apiErr.Status)

	assert.Equal(t, int32(3), calls.Load())
}

func TestBatchEmpty(t *testing.T) {
	client, err := New("https://api.example.com", testCreds(), zerolog.Nop())
	require.NoError(t, err)

	errs := client.Batch(context.Background(), 0, nil)
	assert.Empty(t, errs)
}
