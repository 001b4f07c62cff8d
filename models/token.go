package models

import (
	"github.com/golang-jwt/jwt/v5"
)

// Identity source labels.
const (
	IdentitySourceProvider = "identity-provider"
	IdentitySourceSession  = "session"
)

// Identity is the verified caller extracted from a bearer token.
type Identity struct {
	// Email is the verified email claim.
	Email string

	// Subject is the token "sub" claim: the provider user id or, for session
	// tokens, the email.
	Subject string

	// Source tells which verifier accepted the token.
	Source string
}

// SessionClaims is the claim set of tokens issued by this service.
//
// Email is always the verified caller's email. Profile carries whatever the
// client posted to the token endpoint and is informational only.
type SessionClaims struct {
	jwt.RegisteredClaims

	Email   string         `json:"email"`
	Profile map[string]any `json:"profile,omitempty"`
}

// Token wraps a session JWT with its compact serialized form.
type Token struct {
	// Token is the underlying JWT token used for signing and claim inspection.
	*jwt.Token `json:"-"`

	// Claims are the decoded session claims.
	Claims SessionClaims `json:"-"`

	// SignedString is the compact JWS representation of the token.
	SignedString string `json:"-"`
}

// String returns the compact JWS serialization of the token.
func (t *Token) String() string {
	return t.SignedString
}
