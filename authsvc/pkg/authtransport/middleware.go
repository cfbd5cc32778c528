package authtransport

import (
	"context"

	kitjwt "github.com/go-kit/kit/auth/jwt"
	"github.com/go-kit/kit/endpoint"
	"github.com/nagomiya/todokit/authsvc"
	"github.com/nagomiya/todokit/authsvc/pkg/authservice"
	"github.com/nagomiya/todokit/usersvc"
)

// NewAuthenticator returns an endpoint middleware that resolves the bearer
// token placed in the context by kitjwt.HTTPToContext to a persisted user.
// A missing token, a bad token, and a token whose subject no longer exists
// are all rejected alike, so callers cannot tell the cases apart. On
// success the resolved identity is stored in the context; it is the only
// owner reference downstream code may use.
func NewAuthenticator(t authservice.Tokenizer, users usersvc.UserRepository) endpoint.Middleware {
	return func(next endpoint.Endpoint) endpoint.Endpoint {
		return func(ctx context.Context, request interface{}) (response interface{}, err error) {
			token, ok := ctx.Value(kitjwt.JWTContextKey).(string)
			if !ok {
				return nil, kitjwt.ErrTokenContextMissing
			}

			subject, err := t.Verify(token)
			if err != nil {
				return nil, err
			}

			user, err := users.UserByName(subject)
			if err != nil {
				return nil, usersvc.ErrUserNotFound
			}

			ctx = context.WithValue(ctx, authsvc.IdentityContextKey, authsvc.Identity{
				ID:   user.ID,
				Name: user.Name,
			})

			return next(ctx, request)
		}
	}
}
