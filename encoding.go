package urltree

import (
	"errors"
	"strings"
)

// ErrInvalidEscape is returned when a percent escape is truncated or does not
// consist of two hex digits.
var ErrInvalidEscape = errors.New("invalid percent escape sequence")

const upperhex = "0123456789ABCDEF"

// EncodeSegment encodes a path segment or matrix parameter key/value.
// On top of the base route-URL safe set, `(` and `)` are forced back to
// percent-codes because they delimit outlet groups ("&" is already encoded
// by the base set).
func EncodeSegment(s string) string {
	return escape(s, isSegmentSafe)
}

// EncodeQuery encodes a query parameter key or value. The query context
// additionally keeps `;` literal, since matrix parameters cannot occur there.
func EncodeQuery(s string) string {
	return escape(s, isQuerySafe)
}

// EncodeFragment encodes a fragment. Fragments keep the full reserved URI
// punctuation literal; only characters illegal anywhere in a URI are encoded.
func EncodeFragment(s string) string {
	return escape(s, isFragmentSafe)
}

// Decode percent-decodes a path segment, matrix parameter, or fragment.
// Escapes must be well formed; a bare or truncated `%` is an error.
func Decode(s string) (string, error) {
	return unescape(s)
}

// DecodeQuery percent-decodes a query parameter key or value. Per query
// string convention a literal `+` is treated as an encoded space before
// standard decoding.
func DecodeQuery(s string) (string, error) {
	return unescape(strings.ReplaceAll(s, "+", " "))
}

// escape percent-encodes every byte of s that safe reports false for.
// Multi-byte runes are encoded bytewise as UTF-8.
func escape(s string, safe func(byte) bool) string {
	hexCount := 0
	for i := 0; i < len(s); i++ {
		if !safe(s[i]) {
			hexCount++
		}
	}
	if hexCount == 0 {
		return s
	}

	var b strings.Builder
	b.Grow(len(s) + 2*hexCount)
	for i := 0; i < len(s); i++ {
		c := s[i]
		if safe(c) {
			b.WriteByte(c)
			continue
		}
		b.WriteByte('%')
		b.WriteByte(upperhex[c>>4])
		b.WriteByte(upperhex[c&0xf])
	}
	return b.String()
}

// unescape reverses escape. It rejects malformed escapes rather than passing
// them through.
func unescape(s string) (string, error) {
	if !strings.Contains(s, "%") {
		return s, nil
	}

	var b strings.Builder
	b.Grow(len(s))
	for i := 0; i < len(s); {
		if s[i] != '%' {
			b.WriteByte(s[i])
			i++
			continue
		}
		if i+2 >= len(s) || !isHexDigit(s[i+1]) || !isHexDigit(s[i+2]) {
			return "", ErrInvalidEscape
		}
		b.WriteByte(unhex(s[i+1])<<4 | unhex(s[i+2]))
		i += 3
	}
	return b.String(), nil
}

// isUnreserved reports whether c is never encoded in any context.
// This matches the unreserved set of JS-style component encoding.
func isUnreserved(c byte) bool {
	if 'a' <= c && c <= 'z' || 'A' <= c && c <= 'Z' || '0' <= c && c <= '9' {
		return true
	}
	switch c {
	case '-', '_', '.', '!', '~', '*', '\'', '(', ')':
		return true
	}
	return false
}

// isBaseSafe is the route-URL base set: unreserved plus `@ : $ ,`, which are
// legal anywhere in the route grammar.
func isBaseSafe(c byte) bool {
	if isUnreserved(c) {
		return true
	}
	switch c {
	case '@', ':', '$', ',':
		return true
	}
	return false
}

func isQuerySafe(c byte) bool {
	return isBaseSafe(c) || c == ';'
}

// isSegmentSafe drops `(` and `)` from the base set; they open and close
// outlet groups.
func isSegmentSafe(c byte) bool {
	if c == '(' || c == ')' {
		return false
	}
	return isBaseSafe(c)
}

// isFragmentSafe matches whole-URI encoding: unreserved plus all reserved
// URI punctuation stays literal.
func isFragmentSafe(c byte) bool {
	if isUnreserved(c) {
		return true
	}
	switch c {
	case ';', '/', '?', ':', '@', '&', '=', '+', '$', ',', '#':
		return true
	}
	return false
}

func isHexDigit(c byte) bool {
	return '0' <= c && c <= '9' || 'a' <= c && c <= 'f' || 'A' <= c && c <= 'F'
}

func unhex(c byte) byte {
	switch {
	case '0' <= c && c <= '9':
		return c - '0'
	case 'a' <= c && c <= 'f':
		return c - 'a' + 10
	default:
		return c - 'A' + 10
	}
}
