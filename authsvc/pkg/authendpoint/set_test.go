package authendpoint

import (
	"context"
	"testing"

	"github.com/go-kit/kit/log"
	"github.com/go-kit/kit/metrics/discard"
	"github.com/nagomiya/todokit/authsvc"
	"github.com/nagomiya/todokit/authsvc/pkg/authservice"
	"github.com/nagomiya/todokit/usersvc"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeUserRepository struct {
	users []usersvc.User
}

func (f *fakeUserRepository) Create(name, email, passwordHash string) (usersvc.User, error) {
	user := usersvc.User{ID: uint64(len(f.users) + 1), Name: name, Email: email, Password: passwordHash}
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

type plainHasher struct{}

func (plainHasher) Hash(password string) (string, error) { return "#" + password, nil }
func (plainHasher) Check(password, hash string) bool     { return "#"+password == hash }

func TestLoginThroughSet(t *testing.T) {
	nop := log.NewNopLogger()
	repo := &fakeUserRepository{}
	repo.Create("alice", "a@x.com", "#pw1")

	tokenizer := authservice.NewTokenizer(authservice.NewSecret(), authservice.AccessTokenExpiry())
	svc := authservice.New(repo, plainHasher{}, tokenizer, nop, discard.NewCounter(), discard.NewHistogram())
	set := New(svc, nop)

	token, err := set.Login(context.Background(), "alice", "a@x.com", "pw1")
	require.NoError(t, err)

	subject, err := tokenizer.Verify(token)
	require.NoError(t, err)
	assert.Equal(t, "alice", subject)

	_, err = set.Login(context.Background(), "alice", "a@x.com", "wrong")
	assert.ErrorIs(t, err, authsvc.ErrInvalidCredentials)
}
