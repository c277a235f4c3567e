package auth

import (
	"context"
	"strings"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"github.com/ambulance/ambulance/internal/platform/apperr"
)

type contextKey string

const (
	UserIDKey contextKey = "user_id"
	RoleKey   contextKey = "user_role"
)

// HeaderName is the request header that carries the credential.
const HeaderName = "Authorization"

var ErrUnauthenticated = apperr.New(apperr.KindUnauthenticated, "missing credential")

// RequireCredential rejects requests without a valid credential and stores
// the resolved user id on the request context. There is no session store:
// the token alone identifies the caller.
func RequireCredential(tokens TokenVerifier) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			raw := credentialFromHeader(c.Request().Header.Get(HeaderName))
			if raw == "" {
				return ErrUnauthenticated
			}

			userID, err := tokens.Verify(raw)
			if err != nil {
				return ErrInvalidToken
			}

			c.Set("user_id", userID.String())
			c.SetRequest(c.Request().WithContext(WithUserID(c.Request().Context(), userID)))
			return next(c)
		}
	}
}

// credentialFromHeader accepts "Bearer <token>" as well as a bare token.
func credentialFromHeader(v string) string {
	v = strings.TrimSpace(v)
	if v == "" {
		return ""
	}
	parts := strings.SplitN(v, " ", 2)
	if len(parts) == 2 && strings.EqualFold(parts[0], "bearer") {
		return strings.TrimSpace(parts[1])
	}
	if len(parts) == 2 {
		return ""
	}
	return v
}

func WithUserID(ctx context.Context, id uuid.UUID) context.Context {
	return context.WithValue(ctx, UserIDKey, id)
}

func UserIDFromContext(ctx context.Context) uuid.UUID {
	id, _ := ctx.Value(UserIDKey).(uuid.UUID)
	return id
}

func RoleFromContext(ctx context.Context) string {
	role, _ := ctx.Value(RoleKey).(string)
	return role
}

func WithRole(ctx context.Context, role string) context.Context {
	return context.WithValue(ctx, RoleKey, role)
}
