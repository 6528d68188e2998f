package service

import (
	"sort"
	"strings"

	apperrors "github.com/allisson/ssotoken/internal/errors"
	tokenDomain "github.com/allisson/ssotoken/internal/token/domain"
)

// paramCanonicalizer implements ParamCanonicalizer with query-string style
// serialization: entries sorted by key (bytewise), values percent-encoded,
// joined as "k1=v1&k2=v2".
//
// Escaping follows RFC 3986 unreserved characters: A-Z, a-z, 0-9, '-', '_',
// '.', '~' pass through and everything else becomes %XX with uppercase hex.
// Space is therefore %20, never '+'; the partner format predates the
// form-encoding convention and signs the %20 form.
type paramCanonicalizer struct{}

// NewParamCanonicalizer creates the canonicalizer used by the token codec.
func NewParamCanonicalizer() ParamCanonicalizer {
	return &paramCanonicalizer{}
}

// Render produces the canonical string for the map. Two maps with identical
// key/value pairs always render to byte-identical output regardless of
// insertion order. Keys must survive the wire unescaped, so maps with empty,
// non-ASCII, or delimiter-bearing keys are rejected.
func (p *paramCanonicalizer) Render(attrs tokenDomain.AttributeMap) (string, error) {
	if len(attrs) == 0 {
		return "", tokenDomain.ErrInvalidAttributeKey
	}

	keys := make([]string, 0, len(attrs))
	for k := range attrs {
		if !validKey(k) {
			return "", tokenDomain.ErrInvalidAttributeKey
		}
		keys = append(keys, k)
	}
	sort.Strings(keys)

	var b strings.Builder
	for i, k := range keys {
		if i > 0 {
			b.WriteByte('&')
		}
		b.WriteString(k)
		b.WriteByte('=')
		b.WriteString(escapeValue(attrs[k]))
	}
	return b.String(), nil
}

// Parse splits the canonical string back into an attribute map. A segment
// with no '=', a duplicate key, or an invalid percent escape makes the whole
// string malformed; there is no partial result.
func (p *paramCanonicalizer) Parse(canonical string) (tokenDomain.AttributeMap, error) {
	if canonical == "" {
		return nil, tokenDomain.ErrMalformedCanonicalString
	}

	segments := strings.Split(canonical, "&")
	attrs := make(tokenDomain.AttributeMap, len(segments))

	for _, segment := range segments {
		key, escaped, found := strings.Cut(segment, "=")
		if !found || key == "" {
			return nil, apperrors.Wrap(
				tokenDomain.ErrMalformedCanonicalString,
				"segment without key/value delimiter",
			)
		}
		if _, exists := attrs[key]; exists {
			return nil, apperrors.Wrap(tokenDomain.ErrMalformedCanonicalString, "duplicate key")
		}

		value, err := unescapeValue(escaped)
		if err != nil {
			return nil, apperrors.Wrap(tokenDomain.ErrMalformedCanonicalString, "invalid percent escape")
		}
		attrs[key] = value
	}

	return attrs, nil
}

const upperhex = "0123456789ABCDEF"

// validKey reports whether a key is non-empty ASCII free of '&', '=', '%'.
func validKey(k string) bool {
	if k == "" {
		return false
	}
	for i := 0; i < len(k); i++ {
		c := k[i]
		if c > 0x7f || c == '&' || c == '=' || c == '%' {
			return false
		}
	}
	return true
}

// unreserved reports whether a byte passes through escaping untouched.
func unreserved(c byte) bool {
	switch {
	case 'A' <= c && c <= 'Z', 'a' <= c && c <= 'z', '0' <= c && c <= '9':
		return true
	case c == '-' || c == '_' || c == '.' || c == '~':
		return true
	}
	return false
}

// escapeValue percent-encodes every byte outside the unreserved set.
func escapeValue(v string) string {
	hexCount := 0
	for i := 0; i < len(v); i++ {
		if !unreserved(v[i]) {
			hexCount++
		}
	}
	if hexCount == 0 {
		return v
	}

	out := make([]byte, 0, len(v)+2*hexCount)
	for i := 0; i < len(v); i++ {
		c := v[i]
		if unreserved(c) {
			out = append(out, c)
			continue
		}
		out = append(out, '%', upperhex[c>>4], upperhex[c&0x0f])
	}
	return string(out)
}

// unescapeValue reverses escapeValue. '+' is a literal plus sign in this
// format, so only %XX sequences are decoded.
func unescapeValue(v string) (string, error) {
	if !strings.ContainsRune(v, '%') {
		return v, nil
	}

	out := make([]byte, 0, len(v))
	for i := 0; i < len(v); i++ {
		if v[i] != '%' {
			out = append(out, v[i])
			continue
		}
		if i+2 >= len(v) {
			return "", tokenDomain.ErrMalformedCanonicalString
		}
		hi, ok1 := unhex(v[i+1])
		lo, ok2 := unhex(v[i+2])
		if !ok1 || !ok2 {
			return "", tokenDomain.ErrMalformedCanonicalString
		}
		out = append(out, hi<<4|lo)
		i += 2
	}
	return string(out), nil
}

func unhex(c byte) (byte, bool) {
	switch {
	case '0' <= c && c <= '9':
		return c - '0', true
	case 'a' <= c && c <= 'f':
		return c - 'a' + 10, true
	case 'A' <= c && c <= 'F':
		return c - 'A' + 10, true
	}
	return 0, false
}
