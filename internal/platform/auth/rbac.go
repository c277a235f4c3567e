package auth

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"github.com/ambulance/ambulance/internal/platform/apperr"
)

const (
	RoleUser   = "user"
	RoleDriver = "driver"
	RoleAdmin  = "admin"
)

// RoleResolver looks up a user's current role.
type RoleResolver interface {
	RoleOf(ctx context.Context, userID uuid.UUID) (string, error)
}

// RoleResolverFunc is a function adapter for RoleResolver.
type RoleResolverFunc func(ctx context.Context, userID uuid.UUID) (string, error)

func (f RoleResolverFunc) RoleOf(ctx context.Context, userID uuid.UUID) (string, error) {
	return f(ctx, userID)
}

// RequireRole returns middleware that lets the request through only when the
// caller's stored role is one of roles. It must run after RequireCredential.
// The disabled flag is deliberately not consulted here; it is enforced at
// login only.
func RequireRole(resolver RoleResolver, roles ...string) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			ctx := c.Request().Context()
			userID := UserIDFromContext(ctx)
			if userID == uuid.Nil {
				return ErrUnauthenticated
			}

			role, err := resolver.RoleOf(ctx, userID)
			if err != nil {
				if apperr.KindOf(err) == apperr.KindServer {
					return fmt.Errorf("resolve role: %w", err)
				}
				return forbidden(roles)
			}

			for _, allowed := range roles {
				if role == allowed {
					ctx = WithRole(ctx, role)
					c.SetRequest(c.Request().WithContext(ctx))
					return next(c)
				}
			}
			return forbidden(roles)
		}
	}
}

func forbidden(roles []string) error {
	return apperr.Newf(apperr.KindForbidden, "required role: %s", strings.Join(roles, " or "))
}

// ValidRole reports whether role is one of the three known roles.
func ValidRole(role string) bool {
	switch role {
	case RoleUser, RoleDriver, RoleAdmin:
		return true
	}
	return false
}
