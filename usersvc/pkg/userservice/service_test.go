package userservice

import (
	"context"
	"testing"

	"github.com/nagomiya/todokit/usersvc"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeUserRepository struct {
	nextID uint64
	users  []usersvc.User
}

func (f *fakeUserRepository) Create(name, email, passwordHash string) (usersvc.User, error) {
	f.nextID++
	user := usersvc.User{ID: f.nextID, Name: name, Email: email, Password: passwordHash}
	f.users = append(f.users, user)
	return user, nil
}

func (f *fakeUserRepository) UserByName(name string) (usersvc.User, error) {
	for _, u := range f.users {
		if u.Name == name {
			return u, nil
		}
	}
	return usersvc.User{}, usersvc.ErrUserNotFound
}

func (f *fakeUserRepository) UserByEmail(email string) (usersvc.User, error) {
	for _, u := range f.users {
		if u.Email == email {
			return u, nil
		}
	}
	return usersvc.User{}, usersvc.ErrUserNotFound
}

func TestRegister(t *testing.T) {
	repo := &fakeUserRepository{}
	hasher := NewBcryptHasher()
	svc := NewBasicService(repo, hasher)

	user, err := svc.Register(context.Background(), "alice", "a@x.com", "pw1")
	require.NoError(t, err)

	assert.Equal(t, uint64(1), user.ID)
	assert.Equal(t, "alice", user.Name)
	assert.Equal(t, "a@x.com", user.Email)

	// The stored credential is a salted hash, never the plaintext.
	assert.NotEqual(t, "pw1", user.Password)
	assert.True(t, hasher.Check("pw1", user.Password))
}

func TestRegisterInvalidArgument(t *testing.T) {
	svc := NewBasicService(&fakeUserRepository{}, NewBcryptHasher())

	for _, tc := range []struct{ name, email, password string }{
		{"", "a@x.com", "pw1"},
		{"alice", "", "pw1"},
		{"alice", "a@x.com", ""},
	} {
		_, err := svc.Register(context.Background(), tc.name, tc.email, tc.password)
		assert.ErrorIs(t, err, usersvc.ErrInvalidArgument)
	}
}

func TestRegisterDuplicateEmail(t *testing.T) {
	repo := &fakeUserRepository{}
	svc := NewBasicService(repo, NewBcryptHasher())

	_, err := svc.Register(context.Background(), "alice", "a@x.com", "pw1")
	require.NoError(t, err)

	_, err = svc.Register(context.Background(), "bob", "a@x.com", "pw2")
	assert.ErrorIs(t, err, usersvc.ErrEmailTaken)
}

func TestRegisterDuplicateName(t *testing.T) {
	repo := &fakeUserRepository{}
	svc := NewBasicService(repo, NewBcryptHasher())

	_, err := svc.Register(context.Background(), "alice", "a@x.com", "pw1")
	require.NoError(t, err)

	_, err = svc.Register(context.Background(), "alice", "b@x.com", "pw2")
	assert.ErrorIs(t, err, usersvc.ErrNameTaken)
}
