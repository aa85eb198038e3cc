package api

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseLinkHeader(t *testing.T) {
	tests := []struct {
		name   string
		header string
		want   PageLinks
	}{
		{
			name:   "next and prev",
			header: `<https://x/1>; rel="next", <https://x/0>; rel="prev"`,
			want:   PageLinks{Next: "https://x/1", Prev: "https://x/0"},
		},
		{
			name:   "all four relations",
			header: `<https://x/0>; rel="first", <https://x/2>; rel="next", <https://x/1>; rel="prev", <https://x/9>; rel="last"`,
			want:   PageLinks{First: "https://x/0", Next: "https://x/2", Prev: "https://x/1", Last: "https://x/9"},
		},
		{
			name:   "empty header",
			header: "",
			want:   PageLinks{},
		},
		{
			name:   "unknown relation ignored",
			header: `<https://x/alt>; rel="alternate"`,
			want:   PageLinks{},
		},
		{
			name:   "previous alias",
			header: `<https://x/1>; rel="previous"`,
			want:   PageLinks{Prev: "https://x/1"},
		},
		{
			name:   "query strings survive",
			header: `<https://x/feed?cursor=abc&count=20>; rel="next"`,
			want:   PageLinks{Next: "https://x/feed?cursor=abc&count=20"},
		},
		{
			name:   "malformed entry skipped",
			header: `garbage, <https://x/1>; rel="next"`,
			want:   PageLinks{Next: "https://x/1"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, parseLinkHeader(tt.header))
		})
	}
}

type pagedFeed struct {
	Pages
	Items []string `json:"items"`
}

func TestCallAttachesPageLinks(t *testing.T) {
	var baseURL string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/v1/feed":
			w.Header().Set("Link", `<`+baseURL+`/v1/feed?cursor=page2>; rel="next"`)
			_, _ = w.Write([]byte(`{"items":["a","b"]}`))
		default:
			http.NotFound(w, r)
		}
	}))
	defer server.Close()
	baseURL = server.URL

	client, err := New(server.URL, testCreds(), zerolog.Nop())
	require.NoError(t, err)

	var feed pagedFeed
	require.NoError(t, client.Call(context.Background(), http.MethodGet, "/v1/feed", nil, &feed))

	links := feed.Links()
	assert.True(t, links.HasNext())
	assert.False(t, links.HasPrev())
	assert.Equal(t, baseURL+"/v1/feed?cursor=page2", links.Next)
}

func TestFetchNextPage(t *testing.T) {
	var baseURL string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Query().Get("cursor") {
		case "":
			w.Header().Set("Link", `<`+baseURL+`/v1/feed?cursor=page2>; rel="next"`)
			_, _ = w.Write([]byte(`{"items":["a","b"]}`))
		case "page2":
			w.Header().Set("Link", `<`+baseURL+`/v1/feed>; rel="prev"`)
			_, _ = w.Write([]byte(`{"items":["c"]}`))
		default:
			http.NotFound(w, r)
		}
	}))
	defer server.Close()
	baseURL = server.URL

	client, err := New(server.URL, testCreds(), zerolog.Nop())
	require.NoError(t, err)

	var first pagedFeed
	require.NoError(t, client.Call(context.Background(), http.MethodGet, "/v1/feed", nil, &first))
	require.True(t, first.Links().HasNext())

	// Moving to the next page produces fresh links for that response.
	var second pagedFeed
	require.NoError(t, first.Links().FetchNext(context.Background(), &second))
	assert.Equal(t, []string{"c"}, second.Items)
	assert.True(t, second.Links().HasPrev())
	assert.False(t, second.Links().HasNext())
}

func TestFetchAbsentPage(t *testing.T) {
	client, err := New("https://api.example.com", testCreds(), zerolog.Nop())
	require.NoError(t, err)

	links := PageLinks{client: client}
	err = links.FetchNext(context.Background(), nil)
	assert.ErrorIs(t, err, ErrNoPage)
}
