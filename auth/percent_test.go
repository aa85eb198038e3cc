package auth

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPercentEncode(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{
			name:     "unreserved characters pass through",
			input:    "ABCDEFGHIJKLMNOPQRSTUVWXYZabcdefghijklmnopqrstuvwxyz0123456789-_.~",
			expected: "ABCDEFGHIJKLMNOPQRSTUVWXYZabcdefghijklmnopqrstuvwxyz0123456789-_.~",
		},
		{
			name:     "empty string",
			input:    "",
			expected: "",
		},
		{
			name:     "space",
			input:    "Hello World",
			expected: "Hello%20World",
		},
		{
			name:     "plus and punctuation",
			input:    "Ladies + Gentlemen",
			expected: "Ladies%20%2B%20Gentlemen",
		},
		{
			name:     "url",
			input:    "https://api.example.com/1.1/statuses/update.json",
			expected: "https%3A%2F%2Fapi.example.com%2F1.1%2Fstatuses%2Fupdate.json",
		},
		{
			name:     "uppercase hex digits",
			input:    "<>",
			expected: "%3C%3E",
		},
		{
			name:     "multibyte utf-8 encodes per byte",
			input:    "ü",
			expected: "%C3%BC",
		},
		{
			name:     "snowman",
			input:    "☃",
			expected: "%E2%98%83",
		},
		{
			name:     "exclamation mark",
			input:    "An encoded string!",
			expected: "An%20encoded%20string%21",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, PercentEncode(tt.input))
		})
	}
}

func TestPercentEncodeEveryReservedByteIsUppercaseHex(t *testing.T) {
	for b := 0; b < 256; b++ {
		c := byte(b)
		got := PercentEncode(string([]byte{c}))
		if isUnreserved(c) {
			assert.Equal(t, string([]byte{c}), got)
			continue
		}
		assert.Len(t, got, 3, "byte %#x", b)
		assert.Equal(t, byte('%'), got[0])
		assert.Equal(t, strings.ToUpper(got), got, "hex digits must be uppercase for byte %#x", b)
	}
}

func TestNonce(t *testing.T) {
	seen := make(map[string]bool)
	for i := 0; i < 64; i++ {
		n := Nonce()
		assert.Len(t, n, NonceLength)
		for _, r := range n {
			assert.Contains(t, nonceAlphabet, string(r))
		}
		assert.False(t, seen[n], "nonce repeated: %s", n)
		seen[n] = true
	}
}
