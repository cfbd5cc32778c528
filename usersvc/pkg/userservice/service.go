package userservice

import (
	"context"

	"github.com/go-kit/kit/log"
	"github.com/go-kit/kit/metrics"
	"github.com/nagomiya/todokit/usersvc"
)

type Service interface {
	Register(ctx context.Context, name, email, password string) (usersvc.User, error)
}

func New(users usersvc.UserRepository, hasher usersvc.PasswordHasher, logger log.Logger, counter metrics.Counter, latency metrics.Histogram) Service {
	var svc Service
	{
		svc = NewBasicService(users, hasher)
		svc = LoggingMiddleware(logger)(svc)
		svc = InstrumentingMiddleware(counter, latency)(svc)
	}
	return svc
}

type basicService struct {
	users  usersvc.UserRepository
	hasher usersvc.PasswordHasher
}

func NewBasicService(users usersvc.UserRepository, hasher usersvc.PasswordHasher) Service {
	return &basicService{users: users, hasher: hasher}
}

func (s *basicService) Register(_ context.Context, name, email, password string) (usersvc.User, error) {
	if name == "" || email == "" || password == "" {
		return usersvc.User{}, usersvc.ErrInvalidArgument
	}

	if _, err := s.users.UserByEmail(email); err == nil {
		return usersvc.User{}, usersvc.ErrEmailTaken
	}
	if _, err := s.users.UserByName(name); err == nil {
		return usersvc.User{}, usersvc.ErrNameTaken
	}

	hash, err := s.hasher.Hash(password)
	if err != nil {
		return usersvc.User{}, err
	}

	return s.users.Create(name, email, hash)
}
