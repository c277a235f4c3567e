package authn

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/ambulance/ambulance/internal/domain/identity"
	"github.com/ambulance/ambulance/internal/platform/apperr"
)

// Users is the part of the identity store used for sign-in.
type Users interface {
	Create(ctx context.Context, in identity.CreateUserInput) (*identity.User, error)
	CreateSocial(ctx context.Context, in identity.CreateSocialInput) (*identity.User, error)
	Verify(ctx context.Context, email, password string) (*identity.User, error)
	GetByID(ctx context.Context, id uuid.UUID) (*identity.User, error)
	GetByEmail(ctx context.Context, email string) (*identity.User, error)
	Update(ctx context.Context, id uuid.UUID, in identity.UpdateUserInput) (*identity.User, error)
}

// TokenIssuer signs credentials for a user id.
type TokenIssuer interface {
	Issue(userID uuid.UUID) (string, time.Time, error)
}

type Service struct {
	users  Users
	tokens TokenIssuer
	logger zerolog.Logger
}

func NewService(users Users, tokens TokenIssuer, logger zerolog.Logger) *Service {
	return &Service{users: users, tokens: tokens, logger: logger}
}

// Signup creates a password user with the default role and signs them in.
func (s *Service) Signup(ctx context.Context, in SignupInput) (*SignupResult, error) {
	if in.Password == "" {
		return nil, ErrMissingPassword
	}
	u, err := s.users.Create(ctx, identity.CreateUserInput{
		Name:     in.Name,
		Email:    in.Email,
		Password: in.Password,
	})
	if err != nil {
		return nil, err
	}

	token, _, err := s.tokens.Issue(u.ID)
	if err != nil {
		return nil, err
	}
	s.logger.Info().Str("user_id", u.ID.String()).Msg("signup")
	return &SignupResult{ID: u.ID, Name: u.Name, Email: u.Email, Token: token}, nil
}

func (s *Service) Login(ctx context.Context, in LoginInput) (*Session, error) {
	if err := apperr.Validate(in); err != nil {
		return nil, err
	}
	u, err := s.users.Verify(ctx, in.Email, in.Password)
	if err != nil {
		if kind := apperr.KindOf(err); kind != apperr.KindServer {
			s.logger.Warn().Str("reason", string(kind)).Msg("login failed")
		}
		return nil, err
	}
	return s.session(u)
}

// SocialLogin signs in the user owning the provider record's email, creating
// a social user on first sight. No password is involved.
func (s *Service) SocialLogin(ctx context.Context, in identity.CreateSocialInput) (*Session, error) {
	in.Email = identity.NormalizeEmail(in.Email)
	if err := apperr.Validate(in); err != nil {
		return nil, err
	}

	u, err := s.users.GetByEmail(ctx, in.Email)
	switch {
	case err == nil:
		if u.Disabled {
			return nil, identity.ErrAccountDisabled
		}
	case errors.Is(err, identity.ErrUserNotFound):
		u, err = s.users.CreateSocial(ctx, in)
		if err != nil {
			return nil, err
		}
	default:
		return nil, err
	}
	return s.session(u)
}

func (s *Service) session(u *identity.User) (*Session, error) {
	token, exp, err := s.tokens.Issue(u.ID)
	if err != nil {
		return nil, err
	}
	return &Session{User: u, Token: token, ExpiresAt: exp}, nil
}

// Me returns the caller's own profile.
func (s *Service) Me(ctx context.Context, userID uuid.UUID) (*identity.User, error) {
	return s.users.GetByID(ctx, userID)
}

func (s *Service) UpdateMe(ctx context.Context, userID uuid.UUID, in ProfileInput) (*identity.User, error) {
	return s.users.Update(ctx, userID, identity.UpdateUserInput{
		Name:           in.Name,
		ProfilePicture: in.ProfilePicture,
	})
}
