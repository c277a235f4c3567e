package authn

import (
	"time"

	"github.com/google/uuid"

	"github.com/ambulance/ambulance/internal/domain/identity"
	"github.com/ambulance/ambulance/internal/platform/apperr"
)

// CookieName is the informational cookie set at login. Protected routes
// read the Authorization header only.
const CookieName = "token"

var ErrMissingPassword = apperr.New(apperr.KindMissingPassword, "password is required")

type SignupInput struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

// SignupResult is the 201 body of POST /auth/signup.
type SignupResult struct {
	ID    uuid.UUID `json:"id"`
	Name  string    `json:"name"`
	Email string    `json:"email"`
	Token string    `json:"token"`
}

type LoginInput struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// Session is a signed-in user with a fresh credential.
type Session struct {
	User      *identity.User `json:"user"`
	Token     string         `json:"token"`
	ExpiresAt time.Time      `json:"-"`
}

// ProfileInput is the self-service subset of a user update.
type ProfileInput struct {
	Name           *string `json:"name,omitempty"`
	ProfilePicture *string `json:"profilePicture,omitempty"`
}
