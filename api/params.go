package api

import (
	"net/url"
	"strconv"

	"github.com/birdwire/birdwire/auth"
)

// Params is an ordered request parameter set. Keys need not be unique at this
// surface; duplicate keys survive into query strings and form bodies and are
// rejected only by the JSON encoder. The zero value is not usable, construct
// with NewParams.
//
// Params implements auth.Params so custom signing strategies can rewrite the
// set before the body is encoded. Keys the owning client registered as binary
// are hidden from Pairs and surface through files instead, so file contents
// never leak into a signature base.
type Params struct {
	pairs  []auth.Pair
	binary map[string]struct{}
}

// FilePart is a binary parameter resolved to the file it uploads.
type FilePart struct {
	Key  string
	Path string
}

// NewParams returns an empty parameter set.
func NewParams() *Params {
	return &Params{}
}

// Add appends a parameter, keeping any existing values for the key.
func (p *Params) Add(key, value string) {
	p.pairs = append(p.pairs, auth.Pair{Key: key, Value: value})
}

// Set replaces every value for the key with the given one.
func (p *Params) Set(key, value string) {
	kept := p.pairs[:0]
	for _, pair := range p.pairs {
		if pair.Key != key {
			kept = append(kept, pair)
		}
	}
	p.pairs = append(kept, auth.Pair{Key: key, Value: value})
}

// SetBool sets a boolean parameter in its lowercase wire form.
func (p *Params) SetBool(key string, v bool) {
	p.Set(key, strconv.FormatBool(v))
}

// SetInt sets an integer parameter.
func (p *Params) SetInt(key string, v int64) {
	p.Set(key, strconv.FormatInt(v, 10))
}

// Get returns the first value for the key.
func (p *Params) Get(key string) (string, bool) {
	for _, pair := range p.pairs {
		if pair.Key == key {
			return pair.Value, true
		}
	}
	return "", false
}

// Del removes every value for the key.
func (p *Params) Del(key string) {
	kept := p.pairs[:0]
	for _, pair := range p.pairs {
		if pair.Key != key {
			kept = append(kept, pair)
		}
	}
	p.pairs = kept
}

// Len returns the number of parameters, binary ones included.
func (p *Params) Len() int {
	return len(p.pairs)
}

// Pairs returns the scalar parameters in insertion order. Binary parameters
// are excluded; their values are file paths, not wire values.
func (p *Params) Pairs() []auth.Pair {
	if len(p.binary) == 0 {
		out := make([]auth.Pair, len(p.pairs))
		copy(out, p.pairs)
		return out
	}
	out := make([]auth.Pair, 0, len(p.pairs))
	for _, pair := range p.pairs {
		if _, ok := p.binary[pair.Key]; ok {
			continue
		}
		out = append(out, pair)
	}
	return out
}

// files returns the binary parameters in insertion order.
func (p *Params) files() []FilePart {
	if len(p.binary) == 0 {
		return nil
	}
	var out []FilePart
	for _, pair := range p.pairs {
		if _, ok := p.binary[pair.Key]; ok {
			out = append(out, FilePart{Key: pair.Key, Path: pair.Value})
		}
	}
	return out
}

func (p *Params) hasFiles() bool {
	if len(p.binary) == 0 {
		return false
	}
	for _, pair := range p.pairs {
		if _, ok := p.binary[pair.Key]; ok {
			return true
		}
	}
	return false
}

// markBinary records which keys the owning client transmits as file content.
func (p *Params) markBinary(keys map[string]struct{}) {
	p.binary = keys
}

// Encode returns the scalar parameters as a URL query string.
func (p *Params) Encode() string {
	return p.values().Encode()
}

// values converts the scalar parameters to url.Values for query strings and
// form bodies.
func (p *Params) values() url.Values {
	v := url.Values{}
	for _, pair := range p.Pairs() {
		v.Add(pair.Key, pair.Value)
	}
	return v
}
