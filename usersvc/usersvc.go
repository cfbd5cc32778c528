package usersvc

import "errors"

type User struct {
	ID       uint64 `json:"id" gorm:"primaryKey"`
	Name     string `json:"name" gorm:"size:100;uniqueIndex;not null"`
	Email    string `json:"email" gorm:"size:255;uniqueIndex;not null"`
	Password string `json:"-" gorm:"size:500;not null"`
}

type UserRepository interface {
	Create(name, email, passwordHash string) (User, error)
	UserByName(name string) (User, error)
	UserByEmail(email string) (User, error)
}

// PasswordHasher turns plaintext passwords into salted, self-contained
// hash blobs and verifies candidates against them. Check must return
// false on malformed blobs rather than fail.
type PasswordHasher interface {
	Hash(password string) (string, error)
	Check(password, hash string) bool
}

var (
	ErrInvalidArgument = errors.New("invalid argument")
	ErrUserNotFound    = errors.New("user not found")
	ErrEmailTaken      = errors.New("email already registered")
	ErrNameTaken       = errors.New("name already registered")
)
