package domain

const (
	// SignatureField is the reserved attribute name that carries the token
	// signature inside the canonical string. Callers must never supply an
	// attribute under this name; Encode adds it and Decode strips it.
	SignatureField = "sig"

	// IVSize is the AES-CBC initialization vector size in bytes. The token
	// wire format fixes the IV/ciphertext split point at this offset.
	IVSize = 16

	// BlockSize is the AES cipher block size in bytes. Decoded tokens must
	// carry a ciphertext whose length is a positive multiple of this value.
	BlockSize = 16

	// DerivedKeySize is the symmetric key size in bytes produced by key
	// derivation. AES-256 requires 32 bytes, which is why derivation expands
	// the 16-byte digest over two rounds.
	DerivedKeySize = 32
)

// Protocol attribute names injected by the token use case when issuing a
// token on behalf of a registered party. They travel inside the attribute
// map like any caller-supplied field and are therefore covered by the
// signature. The dotted names keep them out of the way of typical caller
// attributes (uid, email, login).
const (
	// AttrClientID carries the relying party's client identifier.
	AttrClientID = "client.id"

	// AttrClientDomain carries the relying party's cookie/transport domain.
	AttrClientDomain = "client.domain"

	// AttrIssuedAt carries the issue time in milliseconds since the Unix
	// epoch, rendered as a decimal string.
	AttrIssuedAt = "issued.at"

	// AttrTokenID carries a unique identifier minted per issued token.
	AttrTokenID = "token.id"
)

// IsProtocolAttribute reports whether the name is one of the attributes the
// issuer injects. Caller-supplied maps must not carry these names; accepting
// them would either let callers impersonate another party or silently lose
// their values to the injected ones.
func IsProtocolAttribute(name string) bool {
	switch name {
	case AttrClientID, AttrClientDomain, AttrIssuedAt, AttrTokenID:
		return true
	}
	return false
}
