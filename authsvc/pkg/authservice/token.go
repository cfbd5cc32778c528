package authservice

import (
	"time"

	"github.com/dgrijalva/jwt-go"
	"github.com/gorilla/securecookie"
	"github.com/nagomiya/todokit/authsvc"
	"github.com/twinj/uuid"
)

// Tokenizer issues and verifies signed bearer tokens. Tokens are stateless:
// nothing is persisted, and expiry is the only invalidation path.
type Tokenizer interface {
	Issue(subject string) (string, error)
	Verify(token string) (string, error)
}

type tokenizer struct {
	secret []byte
	expiry time.Duration
}

func NewTokenizer(secret []byte, expiry time.Duration) Tokenizer {
	return &tokenizer{secret: secret, expiry: expiry}
}

// NewSecret returns a fresh 256-bit signing secret. The secret lives in
// memory only, so restarting the process invalidates outstanding tokens.
func NewSecret() []byte {
	return securecookie.GenerateRandomKey(32)
}

var uuidV4 = uuid.NewV4

func (t *tokenizer) Issue(subject string) (string, error) {
	expiry := time.Now().Add(t.expiry).Unix()

	claims := jwt.MapClaims{
		"uuid": uuidV4().String(),
		"sub":  subject,
		"exp":  expiry,
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(t.secret)
}

func (t *tokenizer) Verify(hash string) (string, error) {
	token, err := jwt.Parse(hash, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, authsvc.ErrTokenInvalid
		}
		return t.secret, nil
	})
	if err != nil {
		if ve, ok := err.(*jwt.ValidationError); ok {
			switch {
			case ve.Errors&jwt.ValidationErrorMalformed != 0:
				return "", authsvc.ErrTokenMalformed
			case ve.Errors&jwt.ValidationErrorExpired != 0:
				return "", authsvc.ErrTokenExpired
			}
		}
		return "", authsvc.ErrTokenInvalid
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok || !token.Valid {
		return "", authsvc.ErrTokenInvalid
	}

	subject, ok := claims["sub"].(string)
	if !ok || subject == "" {
		return "", authsvc.ErrTokenInvalid
	}

	return subject, nil
}

func AccessTokenExpiry() time.Duration {
	return time.Minute * 30
}
