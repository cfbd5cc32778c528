package userendpoint

import (
	"context"

	"github.com/go-kit/kit/endpoint"
	"github.com/go-kit/kit/log"
	"github.com/nagomiya/todokit/tasksvc"
	"github.com/nagomiya/todokit/usersvc"
	"github.com/nagomiya/todokit/usersvc/pkg/userservice"
)

type Set struct {
	RegisterEndpoint endpoint.Endpoint
}

func New(svc userservice.Service, logger log.Logger) Set {
	var registerEndpoint endpoint.Endpoint
	{
		registerEndpoint = MakeRegisterEndpoint(svc)
		registerEndpoint = LoggingMiddleware(log.With(logger, "method", "Register"))(registerEndpoint)
	}
	return Set{
		RegisterEndpoint: registerEndpoint,
	}
}

func (s Set) Register(ctx context.Context, name, email, password string) (usersvc.User, error) {
	resp, err := s.RegisterEndpoint(ctx, RegisterRequest{Name: name, Email: email, Password: password})
	if err != nil {
		return usersvc.User{}, err
	}
	response := resp.(RegisterResponse)
	if response.Err != nil {
		return usersvc.User{}, response.Err
	}
	return usersvc.User{ID: response.ID, Name: response.Name, Email: response.Email}, nil
}

func MakeRegisterEndpoint(s userservice.Service) endpoint.Endpoint {
	return func(ctx context.Context, request interface{}) (response interface{}, err error) {
		req := request.(RegisterRequest)
		u, err := s.Register(ctx, req.Name, req.Email, req.Password)
		return RegisterResponse{
			ID:    u.ID,
			Name:  u.Name,
			Email: u.Email,
			Tasks: []tasksvc.Task{},
			Err:   err,
		}, nil
	}
}

var _ endpoint.Failer = RegisterResponse{}

type RegisterRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

// RegisterResponse is the public profile of the new user. The password
// hash is never part of it; tasks is always empty at registration time.
type RegisterResponse struct {
	ID    uint64         `json:"id"`
	Name  string         `json:"name"`
	Email string         `json:"email"`
	Tasks []tasksvc.Task `json:"tasks"`
	Err   error          `json:"-"`
}

func (r RegisterResponse) Failed() error { return r.Err }
