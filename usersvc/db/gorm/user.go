package gorm

import (
	"errors"

	"github.com/nagomiya/todokit/usersvc"
	libgorm "gorm.io/gorm"
)

type userRepository struct {
	db *libgorm.DB
}

func NewUserRepository(db *libgorm.DB) usersvc.UserRepository {
	return &userRepository{db}
}

func (u *userRepository) Create(name, email, passwordHash string) (usersvc.User, error) {
	user := usersvc.User{Name: name, Email: email, Password: passwordHash}
	result := u.db.Create(&user)

	return user, result.Error
}

func (u *userRepository) UserByName(name string) (usersvc.User, error) {
	var user usersvc.User
	result := u.db.Where("name = ?", name).First(&user)

	if errors.Is(result.Error, libgorm.ErrRecordNotFound) {
		return usersvc.User{}, usersvc.ErrUserNotFound
	}

	return user, result.Error
}

func (u *userRepository) UserByEmail(email string) (usersvc.User, error) {
	var user usersvc.User
	result := u.db.Where("email = ?", email).First(&user)

	if errors.Is(result.Error, libgorm.ErrRecordNotFound) {
		return usersvc.User{}, usersvc.ErrUserNotFound
	}

	return user, result.Error
}
