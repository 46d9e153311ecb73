package middleware

import (
	"agendamento/cmd/internal/domain/entity"
	"agendamento/cmd/internal/service"
	"agendamento/cmd/internal/utils/apierror"
	"context"
	"errors"
	"strings"

	"github.com/labstack/echo/v4"
)

const currentUserKey = "current_user"

// UserResolver turns a bearer token into the user it belongs to.
type UserResolver interface {
	ResolveCurrentUser(ctx context.Context, token string) (*entity.User, apierror.ErrorResponse)
}

// RequireUser rejects requests without a valid bearer token and stores the
// resolved user in the echo context.
func RequireUser(resolver UserResolver) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			token, ok := bearerToken(c.Request().Header.Get(echo.HeaderAuthorization))
			if !ok {
				c.Response().Header().Set(echo.HeaderWWWAuthenticate, "Bearer")
				return c.JSON(apierror.MissingAuthTokenError.Code(), apierror.MissingAuthTokenError)
			}

			user, apierr := resolver.ResolveCurrentUser(c.Request().Context(), token)
			if apierr != nil {
				c.Response().Header().Set(echo.HeaderWWWAuthenticate, "Bearer")
				return c.JSON(apierr.Code(), apierr)
			}

			c.Set(currentUserKey, user)
			return next(c)
		}
	}
}

// RequireAdmin must run after RequireUser.
func RequireAdmin() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			user, _ := CurrentUser(c)
			if _, apierr := service.RequireAdmin(user); apierr != nil {
				return c.JSON(apierr.Code(), apierr)
			}
			return next(c)
		}
	}
}

func CurrentUser(c echo.Context) (*entity.User, error) {
	user, ok := c.Get(currentUserKey).(*entity.User)
	if !ok || user == nil {
		return nil, errors.New("no authenticated user in context")
	}
	return user, nil
}

func bearerToken(header string) (string, bool) {
	scheme, token, found := strings.Cut(strings.TrimSpace(header), " ")
	if !found || !strings.EqualFold(scheme, "Bearer") {
		return "", false
	}
	token = strings.TrimSpace(token)
	return token, token != ""
}
