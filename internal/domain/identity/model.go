package identity

import (
	"strings"
	"time"

	"github.com/google/uuid"
)

// SocialPasswordPlaceholder is stored as the password hash of users created
// through social login. It is not a bcrypt hash and is never compared.
const SocialPasswordPlaceholder = "social-login-no-password"

// SocialLogin links a user to an external identity provider record.
type SocialLogin struct {
	ProviderID string `json:"providerId" validate:"required"`
	UID        string `json:"uid" validate:"required"`
	PhotoURL   string `json:"photoURL,omitempty" validate:"omitempty,url"`
}

// User maps to the users table. The password hash never leaves the service.
type User struct {
	ID             uuid.UUID    `json:"id"`
	Email          string       `json:"email"`
	Name           string       `json:"name"`
	PasswordHash   *string      `json:"-"`
	Role           string       `json:"role"`
	Disabled       bool         `json:"disabled"`
	EmailVerified  bool         `json:"emailVerified"`
	ProfilePicture *string      `json:"profilePicture,omitempty"`
	SocialLogin    *SocialLogin `json:"social_login,omitempty"`
	CreatedAt      time.Time    `json:"createdAt"`
	UpdatedAt      time.Time    `json:"updatedAt"`
}

// HasPassword reports whether the user can sign in with a password.
func (u *User) HasPassword() bool {
	return u.PasswordHash != nil && *u.PasswordHash != "" && *u.PasswordHash != SocialPasswordPlaceholder
}

// CreateUserInput is the body of POST /users and the password signup path.
type CreateUserInput struct {
	Name     string `json:"name" validate:"required,max=200"`
	Email    string `json:"email" validate:"required,email,max=320"`
	Password string `json:"password" validate:"required,min=6,max=72"`
	Role     string `json:"role,omitempty" validate:"omitempty,oneof=user driver admin"`
}

// CreateSocialInput is the identity record handed over by a social provider.
type CreateSocialInput struct {
	Name        string       `json:"name" validate:"required,max=200"`
	Email       string       `json:"email" validate:"required,email,max=320"`
	SocialLogin *SocialLogin `json:"social_login" validate:"required"`
}

// UpdateUserInput is a partial update; nil fields are left unchanged.
type UpdateUserInput struct {
	Name           *string `json:"name,omitempty" validate:"omitempty,min=1,max=200"`
	Email          *string `json:"email,omitempty" validate:"omitempty,email,max=320"`
	Password       *string `json:"password,omitempty" validate:"omitempty,min=6,max=72"`
	ProfilePicture *string `json:"profilePicture,omitempty" validate:"omitempty,url"`
	EmailVerified  *bool   `json:"emailVerified,omitempty"`
}

// RoleInput is the body of PATCH /users/:id/role.
type RoleInput struct {
	Role string `json:"role"`
}

// NormalizeEmail trims and lower-cases an address; uniqueness is
// case-insensitive.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
