package dto

// IssueTokenResponse contains the result of issuing a token.
// SECURITY: The token is only returned once and must be transmitted securely.
type IssueTokenResponse struct {
	Token   string `json:"token"`
	TokenID string `json:"token_id"`
}

// EncryptFieldResponse contains the encrypted attribute value, ready to be
// embedded as an ordinary attribute in a later issue request.
type EncryptFieldResponse struct {
	Value string `json:"value"`
}

// DecodeTokenResponse contains the verified attributes of a decoded token,
// protocol attributes included, signature field stripped.
type DecodeTokenResponse struct {
	Attributes map[string]string `json:"attributes"`
}
