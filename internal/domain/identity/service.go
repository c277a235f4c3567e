package identity

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/ambulance/ambulance/internal/platform/apperr"
	"github.com/ambulance/ambulance/internal/platform/auth"
	"github.com/ambulance/ambulance/pkg/pagination"
)

type Service struct {
	users  Repository
	logger zerolog.Logger
}

func NewService(users Repository, logger zerolog.Logger) *Service {
	return &Service{users: users, logger: logger}
}

// Create registers a password user. The email must not be taken.
func (s *Service) Create(ctx context.Context, in CreateUserInput) (*User, error) {
	in.Email = NormalizeEmail(in.Email)
	if err := apperr.Validate(in); err != nil {
		return nil, err
	}
	if err := s.ensureEmailFree(ctx, in.Email); err != nil {
		return nil, err
	}

	hash, err := auth.HashPassword(in.Password)
	if err != nil {
		return nil, err
	}
	role := in.Role
	if role == "" {
		role = auth.RoleUser
	}

	u := &User{
		Email:        in.Email,
		Name:         in.Name,
		PasswordHash: &hash,
		Role:         role,
	}
	if err := s.users.Create(ctx, u); err != nil {
		return nil, err
	}
	s.logger.Info().Str("user_id", u.ID.String()).Str("role", u.Role).Msg("user created")
	return u, nil
}

// CreateSocial registers a user from a social provider record. The stored
// password is the placeholder and can never be used to sign in.
func (s *Service) CreateSocial(ctx context.Context, in CreateSocialInput) (*User, error) {
	in.Email = NormalizeEmail(in.Email)
	if err := apperr.Validate(in); err != nil {
		return nil, err
	}
	if err := s.ensureEmailFree(ctx, in.Email); err != nil {
		return nil, err
	}

	placeholder := SocialPasswordPlaceholder
	u := &User{
		Email:         in.Email,
		Name:          in.Name,
		PasswordHash:  &placeholder,
		Role:          auth.RoleUser,
		EmailVerified: true,
		SocialLogin:   in.SocialLogin,
	}
	if in.SocialLogin.PhotoURL != "" {
		photo := in.SocialLogin.PhotoURL
		u.ProfilePicture = &photo
	}
	if err := s.users.Create(ctx, u); err != nil {
		return nil, err
	}
	s.logger.Info().Str("user_id", u.ID.String()).Str("provider", in.SocialLogin.ProviderID).Msg("social user created")
	return u, nil
}

func (s *Service) ensureEmailFree(ctx context.Context, email string) error {
	_, err := s.users.GetByEmail(ctx, email)
	switch {
	case err == nil:
		return ErrDuplicateEmail
	case errors.Is(err, ErrUserNotFound):
		return nil
	}
	return err
}

// Verify checks a password sign-in. Credential validity is decided first;
// the disabled flag is only reported for otherwise valid credentials.
func (s *Service) Verify(ctx context.Context, email, password string) (*User, error) {
	u, err := s.users.GetByEmail(ctx, NormalizeEmail(email))
	if err != nil {
		if errors.Is(err, ErrUserNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, err
	}
	if !u.HasPassword() || !auth.CheckPassword(*u.PasswordHash, password) {
		return nil, ErrInvalidCredentials
	}
	if u.Disabled {
		return nil, ErrAccountDisabled
	}
	return u, nil
}

func (s *Service) List(ctx context.Context, p pagination.Params) ([]*User, error) {
	return s.users.List(ctx, p)
}

func (s *Service) GetByID(ctx context.Context, id uuid.UUID) (*User, error) {
	return s.users.GetByID(ctx, id)
}

func (s *Service) GetByEmail(ctx context.Context, email string) (*User, error) {
	return s.users.GetByEmail(ctx, NormalizeEmail(email))
}

// Update merges the provided fields into the stored user. A new password is
// hashed; a new email must not belong to another user.
func (s *Service) Update(ctx context.Context, id uuid.UUID, in UpdateUserInput) (*User, error) {
	if in.Email != nil {
		e := NormalizeEmail(*in.Email)
		in.Email = &e
	}
	if err := apperr.Validate(in); err != nil {
		return nil, err
	}

	u, err := s.users.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if in.Name != nil {
		u.Name = *in.Name
	}
	if in.Email != nil && *in.Email != u.Email {
		if err := s.ensureEmailFree(ctx, *in.Email); err != nil {
			return nil, err
		}
		u.Email = *in.Email
	}
	if in.Password != nil {
		hash, err := auth.HashPassword(*in.Password)
		if err != nil {
			return nil, err
		}
		u.PasswordHash = &hash
	}
	if in.ProfilePicture != nil {
		u.ProfilePicture = in.ProfilePicture
	}
	if in.EmailVerified != nil {
		u.EmailVerified = *in.EmailVerified
	}

	if err := s.users.Update(ctx, u); err != nil {
		return nil, err
	}
	return u, nil
}

// Delete removes the user; bookings, locations and contacts go with it.
func (s *Service) Delete(ctx context.Context, id uuid.UUID) error {
	if err := s.users.Delete(ctx, id); err != nil {
		return err
	}
	s.logger.Info().Str("user_id", id.String()).Msg("user deleted")
	return nil
}

func (s *Service) SetRole(ctx context.Context, id uuid.UUID, role string) (*User, error) {
	if !auth.ValidRole(role) {
		return nil, ErrInvalidRole
	}
	if err := s.users.SetRole(ctx, id, role); err != nil {
		return nil, err
	}
	s.logger.Info().Str("user_id", id.String()).Str("role", role).Msg("role changed")
	return s.users.GetByID(ctx, id)
}

// ToggleDisabled flips the disabled flag and returns the new value. Issued
// credentials stay valid; the flag is enforced at sign-in.
func (s *Service) ToggleDisabled(ctx context.Context, id uuid.UUID) (bool, error) {
	disabled, err := s.users.ToggleDisabled(ctx, id)
	if err != nil {
		return false, err
	}
	s.logger.Info().Str("user_id", id.String()).Bool("disabled", disabled).Msg("user status toggled")
	return disabled, nil
}

// RoleOf implements auth.RoleResolver.
func (s *Service) RoleOf(ctx context.Context, id uuid.UUID) (string, error) {
	u, err := s.users.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, ErrUserNotFound) {
			return "", err
		}
		return "", fmt.Errorf("resolve role for %s: %w", id, err)
	}
	return u.Role, nil
}
