package userservice

import (
	"github.com/nagomiya/todokit/usersvc"
	"golang.org/x/crypto/bcrypt"
)

type bcryptHasher struct {
	cost int
}

func NewBcryptHasher() usersvc.PasswordHasher {
	return &bcryptHasher{cost: bcrypt.DefaultCost}
}

// Hash salts internally, so the same password yields a different blob on
// every call.
func (h *bcryptHasher) Hash(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), h.cost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}

// Check compares in constant time. Malformed blobs report a mismatch
// rather than an error.
func (h *bcryptHasher) Check(password, hash string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)) == nil
}
