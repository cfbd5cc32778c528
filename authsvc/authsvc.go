package authsvc

import "errors"

// Identity is the resolved caller of an authenticated request. It is the
// sole source of truth for ownership checks downstream; owner ids supplied
// in request payloads are never trusted.
type Identity struct {
	ID   uint64
	Name string
}

type contextKey string

const IdentityContextKey contextKey = "Identity"

var (
	ErrInvalidArgument        = errors.New("invalid argument")
	ErrInvalidCredentials     = errors.New("invalid credentials")
	ErrTokenMalformed         = errors.New("token is malformed")
	ErrTokenExpired           = errors.New("token is expired")
	ErrTokenInvalid           = errors.New("token is invalid")
	ErrIdentityContextMissing = errors.New("identity was not passed through the context")
)
