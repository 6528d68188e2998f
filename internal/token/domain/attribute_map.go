package domain

import (
	"strings"
)

// AttributeMap holds the identity attributes carried by an SSO token: field
// name to field value, keys unique, insertion order irrelevant. Canonical
// ordering is imposed by sorting keys bytewise before serialization, so two
// maps with the same pairs always canonicalize identically.
type AttributeMap map[string]string

// Clone returns an independent copy of the map. Encode works on a clone so
// adding the signature field never mutates the caller's map.
func (m AttributeMap) Clone() AttributeMap {
	if m == nil {
		return nil
	}
	out := make(AttributeMap, len(m)+1)
	for k, v := range m {
		out[k] = v
	}
	return out
}

// WithAttribute returns a copy of the map with the given field added. The
// receiver is never modified.
func (m AttributeMap) WithAttribute(key, value string) AttributeMap {
	out := m.Clone()
	if out == nil {
		out = make(AttributeMap, 1)
	}
	out[key] = value
	return out
}

// Validate checks that the map is non-empty, contains no reserved field
// names, and that every key survives canonical encoding unescaped.
//
// Keys are not percent-encoded on the wire (only values are), so a key
// containing a delimiter or escape character would produce a canonical
// string that cannot be parsed back. Rejecting such keys up front keeps
// Render/Parse inverse of each other.
func (m AttributeMap) Validate() error {
	if len(m) == 0 {
		return ErrInvalidAttributeKey
	}
	for k := range m {
		if k == SignatureField {
			return ErrReservedAttribute
		}
		if !validAttributeKey(k) {
			return ErrInvalidAttributeKey
		}
	}
	return nil
}

// validAttributeKey reports whether a key is non-empty ASCII free of the
// canonical string delimiters and the escape character.
func validAttributeKey(k string) bool {
	if k == "" {
		return false
	}
	return !strings.ContainsAny(k, "&=%") && isASCII(k)
}

func isASCII(s string) bool {
	for i := 0; i < len(s); i++ {
		if s[i] > 0x7f {
			return false
		}
	}
	return true
}
