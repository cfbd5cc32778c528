package authservice

import (
	"context"

	"github.com/go-kit/kit/log"
	"github.com/go-kit/kit/metrics"
	"github.com/nagomiya/todokit/authsvc"
	"github.com/nagomiya/todokit/usersvc"
)

type Service interface {
	Login(ctx context.Context, name, email, password string) (string, error)
}

func New(users usersvc.UserRepository, hasher usersvc.PasswordHasher, t Tokenizer, logger log.Logger, counter metrics.Counter, latency metrics.Histogram) Service {
	var svc Service
	{
		svc = NewBasicService(users, hasher, t)
		svc = LoggingMiddleware(logger)(svc)
		svc = InstrumentingMiddleware(counter, latency)(svc)
	}
	return svc
}

type basicService struct {
	users     usersvc.UserRepository
	hasher    usersvc.PasswordHasher
	tokenizer Tokenizer
}

func NewBasicService(users usersvc.UserRepository, hasher usersvc.PasswordHasher, t Tokenizer) Service {
	return &basicService{users: users, hasher: hasher, tokenizer: t}
}

// Login verifies the email/password pair and mints a bearer token bound to
// the stored user's name. An unknown email and a wrong password surface as
// the same error so callers cannot enumerate accounts.
func (s *basicService) Login(_ context.Context, _, email, password string) (string, error) {
	if email == "" || password == "" {
		return "", authsvc.ErrInvalidArgument
	}

	user, err := s.users.UserByEmail(email)
	if err != nil {
		return "", authsvc.ErrInvalidCredentials
	}

	if !s.hasher.Check(password, user.Password) {
		return "", authsvc.ErrInvalidCredentials
	}

	return s.tokenizer.Issue(user.Name)
}
