package auth

import (
	"crypto/rand"
	"strings"
)

const upperhex = "0123456789ABCDEF"

// PercentEncode encodes s per RFC 3986 as required for OAuth 1.0a signature
// bases. Unreserved characters (A-Z, a-z, 0-9, '-', '_', '.', '~') pass
// through literally; every other byte of the UTF-8 encoding becomes a
// percent escape with uppercase hex digits.
func PercentEncode(s string) string {
	// Fast path: nothing to escape.
	escapes := 0
	for i := 0; i < len(s); i++ {
		if !isUnreserved(s[i]) {
			escapes++
		}
	}
	if escapes == 0 {
		return s
	}

	var b strings.Builder
	b.Grow(len(s) + 2*escapes)
	for i := 0; i < len(s); i++ {
		c := s[i]
		if isUnreserved(c) {
			b.WriteByte(c)
			continue
		}
		b.WriteByte('%')
		b.WriteByte(upperhex[c>>4])
		b.WriteByte(upperhex[c&0x0f])
	}
	return b.String()
}

func isUnreserved(c byte) bool {
	switch {
	case 'A' <= c && c <= 'Z':
		return true
	case 'a' <= c && c <= 'z':
		return true
	case '0' <= c && c <= '9':
		return true
	case c == '-' || c == '_' || c == '.' || c == '~':
		return true
	}
	return false
}

const nonceAlphabet = "ABCDEFGHIJKLMNOPQRSTUVWXYZabcdefghijklmnopqrstuvwxyz0123456789"

// NonceLength is the length of generated OAuth1 nonces.
const NonceLength = 32

// Nonce returns a random 32-character alphanumeric nonce.
func Nonce() string {
	buf := make([]byte, NonceLength)
	_, _ = rand.Read(buf) // never fails per crypto/rand docs
	for i, b := range buf {
		buf[i] = nonceAlphabet[int(b)%len(nonceAlphabet)]
	}
	return string(buf)
}
