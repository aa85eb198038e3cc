package api

import (
	"context"
	"fmt"
	"net/http"
	"strings"
)

// PageLinks holds the four navigable relations extracted from a response's
// link header. Absent relations are empty strings, never an error. A fresh
// value is produced per response; fetching a page yields new links.
type PageLinks struct {
	First string
	Next  string
	Prev  string
	Last  string

	client *Client
}

// Pages marks a response type as paginated. Embed it in a decoded shape and
// the dispatcher fills in the response's link relations after decoding.
//
//	type Timeline struct {
//	    api.Pages
//	    Posts []Post `json:"posts"`
//	}
type Pages struct {
	links PageLinks
}

// Links returns the page relations of the response this value came from.
func (p *Pages) Links() PageLinks {
	return p.links
}

// attachLinks is satisfied through embedding.
func (p *Pages) attachLinks(l PageLinks) {
	p.links = l
}

type paginated interface {
	attachLinks(PageLinks)
}

// parseLinkHeader parses a comma-separated list of `<uri>; rel="name"`
// entries. Unknown relations are ignored.
func parseLinkHeader(header string) PageLinks {
	var links PageLinks
	for _, entry := range strings.Split(header, ",") {
		uri, rel := parseLinkEntry(strings.TrimSpace(entry))
		if uri == "" {
			continue
		}
		switch rel {
		case "first":
			links.First = uri
		case "next":
			links.Next = uri
		case "prev", "previous":
			links.Prev = uri
		case "last":
			links.Last = uri
		}
	}
	return links
}

func parseLinkEntry(entry string) (uri, rel string) {
	end := strings.IndexByte(entry, '>')
	if !strings.HasPrefix(entry, "<") || end < 0 {
		return "", ""
	}
	uri = entry[1:end]
	for _, param := range strings.Split(entry[end+1:], ";") {
		param = strings.TrimSpace(param)
		if value, ok := strings.CutPrefix(param, "rel="); ok {
			rel = strings.Trim(value, `"`)
		}
	}
	return uri, rel
}

// HasFirst reports whether the response carried a first-page relation.
func (l PageLinks) HasFirst() bool { return l.First != "" }

// HasNext reports whether the response carried a next-page relation.
func (l PageLinks) HasNext() bool { return l.Next != "" }

// HasPrev reports whether the response carried a previous-page relation.
func (l PageLinks) HasPrev() bool { return l.Prev != "" }

// HasLast reports whether the response carried a last-page relation.
func (l PageLinks) HasLast() bool { return l.Last != "" }

// FetchFirst retrieves the first page into out.
func (l PageLinks) FetchFirst(ctx context.Context, out any) error {
	return l.fetch(ctx, l.First, "first", out)
}

// FetchNext retrieves the next page into out.
func (l PageLinks) FetchNext(ctx context.Context, out any) error {
	return l.fetch(ctx, l.Next, "next", out)
}

// FetchPrev retrieves the previous page into out.
func (l PageLinks) FetchPrev(ctx context.Context, out any) error {
	return l.fetch(ctx, l.Prev, "prev", out)
}

// FetchLast retrieves the last page into out.
func (l PageLinks) FetchLast(ctx context.Context, out any) error {
	return l.fetch(ctx, l.Last, "last", out)
}

func (l PageLinks) fetch(ctx context.Context, pageURL, rel string, out any) error {
	if pageURL == "" {
		return fmt.Errorf("%w: %s", ErrNoPage, rel)
	}
	if l.client == nil {
		return fmt.Errorf("api: page links are not attached to a client")
	}
	return l.client.CallURL(ctx, http.MethodGet, pageURL, nil, out)
}
