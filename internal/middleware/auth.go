package middleware

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/anonto42/community-engine/internal/models"
	"github.com/labstack/echo/v4"
)

const actorContextKey = "actor"

// Authenticator turns a bearer token into the calling actor
type Authenticator interface {
	Authenticate(ctx context.Context, token string) (*models.Actor, error)
}

var (
	errMissingHeader = errors.New("missing Authorization header")
	errHeaderFormat  = errors.New("authorization header must be in Bearer format")
)

func bearerToken(header string) (string, error) {
	if header == "" {
		return "", errMissingHeader
	}
	parts := strings.Split(header, " ")
	if len(parts) != 2 || strings.ToLower(parts[0]) != "bearer" || parts[1] == "" {
		return "", errHeaderFormat
	}
	return parts[1], nil
}

func normalizeRole(role string) string {
	if strings.EqualFold(role, models.RoleAdmin) {
		return models.RoleAdmin
	}
	return models.RoleMember
}

// RequireAuth rejects requests without a valid bearer token and stores the
// actor in the echo context
func RequireAuth(authenticator Authenticator) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			token, err := bearerToken(c.Request().Header.Get("Authorization"))
			if err != nil {
				return echo.NewHTTPError(http.StatusUnauthorized, err.Error())
			}
			actor, err := authenticator.Authenticate(c.Request().Context(), token)
			if err != nil {
				return echo.NewHTTPError(http.StatusUnauthorized, "Invalid or expired token").SetInternal(err)
			}
			c.Set(actorContextKey, actor)
			return next(c)
		}
	}
}

// RequireAdmin must run after RequireAuth
func RequireAdmin() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			actor, ok := ActorFromContext(c)
			if !ok {
				return echo.NewHTTPError(http.StatusUnauthorized, "User not authenticated")
			}
			if !actor.IsAdmin() {
				return echo.NewHTTPError(http.StatusForbidden, "Admin access required")
			}
			return next(c)
		}
	}
}

// ActorFromContext returns the actor stored by RequireAuth
func ActorFromContext(c echo.Context) (*models.Actor, bool) {
	actor, ok := c.Get(actorContextKey).(*models.Actor)
	return actor, ok && actor != nil
}
