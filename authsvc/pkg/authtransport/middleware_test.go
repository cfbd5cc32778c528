package authtransport

import (
	"context"
	"testing"

	kitjwt "github.com/go-kit/kit/auth/jwt"
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

func passthrough(ctx context.Context, request interface{}) (interface{}, error) {
	return ctx.Value(authsvc.IdentityContextKey), nil
}

func TestAuthenticatorResolvesIdentity(t *testing.T) {
	repo := &fakeUserRepository{}
	repo.Create("alice", "a@x.com", "hash")

	tokenizer := authservice.NewTokenizer(authservice.NewSecret(), authservice.AccessTokenExpiry())
	token, err := tokenizer.Issue("alice")
	require.NoError(t, err)

	ep := NewAuthenticator(tokenizer, repo)(passthrough)

	ctx := context.WithValue(context.Background(), kitjwt.JWTContextKey, token)
	response, err := ep(ctx, nil)
	require.NoError(t, err)

	identity, ok := response.(authsvc.Identity)
	require.True(t, ok)
	assert.Equal(t, uint64(1), identity.ID)
	assert.Equal(t, "alice", identity.Name)
}

func TestAuthenticatorMissingToken(t *testing.T) {
	tokenizer := authservice.NewTokenizer(authservice.NewSecret(), authservice.AccessTokenExpiry())
	ep := NewAuthenticator(tokenizer, &fakeUserRepository{})(passthrough)

	_, err := ep(context.Background(), nil)
	assert.ErrorIs(t, err, kitjwt.ErrTokenContextMissing)
}

func TestAuthenticatorBadToken(t *testing.T) {
	tokenizer := authservice.NewTokenizer(authservice.NewSecret(), authservice.AccessTokenExpiry())
	ep := NewAuthenticator(tokenizer, &fakeUserRepository{})(passthrough)

	ctx := context.WithValue(context.Background(), kitjwt.JWTContextKey, "garbage")
	_, err := ep(ctx, nil)
	assert.ErrorIs(t, err, authsvc.ErrTokenMalformed)
}

func TestAuthenticatorUnknownSubject(t *testing.T) {
	// A valid token whose subject no longer exists is rejected the same way
	// as a bad token.
	tokenizer := authservice.NewTokenizer(authservice.NewSecret(), authservice.AccessTokenExpiry())
	token, err := tokenizer.Issue("ghost")
	require.NoError(t, err)

	ep := NewAuthenticator(tokenizer, &fakeUserRepository{})(passthrough)

	ctx := context.WithValue(context.Background(), kitjwt.JWTContextKey, token)
	_, err = ep(ctx, nil)
	assert.ErrorIs(t, err, usersvc.ErrUserNotFound)
}
