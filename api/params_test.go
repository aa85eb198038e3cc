package api

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/birdwire/birdwire/auth"
)

func TestParamsOrdering(t *testing.T) {
	p := NewParams()
	p.Add("b", "2")
	p.Add("a", "1")
	p.Add("b", "3")

	assert.Equal(t, []auth.Pair{
		{Key: "b", Value: "2"},
		{Key: "a", Value: "1"},
		{Key: "b", Value: "3"},
	}, p.Pairs())

	value, ok := p.Get("b")
	assert.True(t, ok)
	assert.Equal(t, "2", value)
}

func TestParamsSetReplacesAllValues(t *testing.T) {
	p := NewParams()
	p.Add("k", "1")
	p.Add("k", "2")
	p.Set("k", "3")

	assert.Equal(t, []auth.Pair{{Key: "k", Value: "3"}}, p.Pairs())
}

func TestParamsDel(t *testing.T) {
	p := NewParams()
	p.Add("keep", "1")
	p.Add("drop", "2")
	p.Add("drop", "3")
	p.Del("drop")

	assert.Equal(t, []auth.Pair{{Key: "keep", Value: "1"}}, p.Pairs())
	_, ok := p.Get("drop")
	assert.False(t, ok)
}

func TestParamsTypedSetters(t *testing.T) {
	p := NewParams()
	p.SetBool("hidden", true)
	p.SetBool("visible", false)
	p.SetInt("count", -12)

	value, _ := p.Get("hidden")
	assert.Equal(t, "true", value)
	value, _ = p.Get("visible")
	assert.Equal(t, "false", value)
	value, _ = p.Get("count")
	assert.Equal(t, "-12", value)
}

func TestParamsBinaryKeysHiddenFromPairs(t *testing.T) {
	p := NewParams()
	p.Set("caption", "hello")
	p.Set("media", "/tmp/pic.png")
	p.markBinary(map[string]struct{}{"media": {}})

	assert.Equal(t, []auth.Pair{{Key: "caption", Value: "hello"}}, p.Pairs())
	assert.Equal(t, []FilePart{{Key: "media", Path: "/tmp/pic.png"}}, p.files())
	assert.True(t, p.hasFiles())
	assert.Equal(t, 2, p.Len())
}

func TestParamsValuesExcludeBinary(t *testing.T) {
	p := NewParams()
	p.Set("a", "1")
	p.Set("media", "/tmp/pic.png")
	p.markBinary(map[string]struct{}{"media": {}})

	assert.Equal(t, "a=1", p.values().Encode())
}
