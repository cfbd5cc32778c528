package authendpoint

import (
	"context"

	"github.com/go-kit/kit/endpoint"
	"github.com/go-kit/kit/log"
	"github.com/nagomiya/todokit/authsvc/pkg/authservice"
)

type Set struct {
	LoginEndpoint endpoint.Endpoint
}

func New(svc authservice.Service, logger log.Logger) Set {
	var loginEndpoint endpoint.Endpoint
	{
		loginEndpoint = MakeLoginEndpoint(svc)
		loginEndpoint = LoggingMiddleware(log.With(logger, "method", "Login"))(loginEndpoint)
	}

	return Set{
		LoginEndpoint: loginEndpoint,
	}
}

func (s Set) Login(ctx context.Context, name, email, password string) (string, error) {
	response, err := s.LoginEndpoint(ctx, LoginRequest{Name: name, Email: email, Password: password})
	if err != nil {
		return "", err
	}

	resp := response.(LoginResponse)
	return resp.AccessToken, resp.Err
}

func MakeLoginEndpoint(s authservice.Service) endpoint.Endpoint {
	return func(ctx context.Context, request interface{}) (response interface{}, err error) {
		req := request.(LoginRequest)
		token, err := s.Login(ctx, req.Name, req.Email, req.Password)

		return LoginResponse{AccessToken: token, TokenType: "Bearer", Err: err}, nil
	}
}

var _ endpoint.Failer = LoginResponse{}

type LoginRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

type LoginResponse struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
	Err         error  `json:"-"`
}

func (r LoginResponse) Failed() error { return r.Err }
