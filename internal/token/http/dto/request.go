// Package dto provides data transfer objects for HTTP request and response handling.
package dto

import (
	validation "github.com/jellydator/validation"

	customValidation "github.com/allisson/ssotoken/internal/validation"
)

// IssueTokenRequest contains the caller attributes to embed in a new token.
// Protocol attributes (client id, client domain, issue time, token id) are
// injected server-side and must not be supplied here.
type IssueTokenRequest struct {
	Attributes map[string]string `json:"attributes"`
}

// Validate checks if the issue token request is valid. Attribute key and
// reserved-name rules are enforced by the token use case.
func (r *IssueTokenRequest) Validate() error {
	return validation.ValidateStruct(r,
		validation.Field(&r.Attributes,
			validation.Required,
		),
	)
}

// EncryptFieldRequest contains a single attribute value to encrypt under the
// party's field-privacy secret. An empty value is allowed; the original
// protocol encrypts whatever the caller sends.
type EncryptFieldRequest struct {
	Value string `json:"value"`
}

// Validate checks if the encrypt field request is valid.
func (r *EncryptFieldRequest) Validate() error {
	return nil
}

// DecodeTokenRequest contains an encoded token to decode and verify.
type DecodeTokenRequest struct {
	Token string `json:"token"`
}

// Validate checks if the decode token request is valid.
func (r *DecodeTokenRequest) Validate() error {
	return validation.ValidateStruct(r,
		validation.Field(&r.Token,
			validation.Required,
			customValidation.NotBlank,
			customValidation.Base64,
		),
	)
}
