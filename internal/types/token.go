package types

import (
	"github.com/golang-jwt/jwt/v5"
)

// TokenClaims are the claims carried by a service token. Tokens identify a
// calling system (a POS integration, a partner kitchen), never a person;
// the service has no user accounts.
type TokenClaims struct {
	jwt.RegisteredClaims
	Caller string `json:"caller"`
}
