package identity

import (
	"context"

	"github.com/google/uuid"

	"github.com/ambulance/ambulance/pkg/pagination"
)

// Repository persists users. Lookups that match nothing return
// ErrUserNotFound; a taken email returns ErrDuplicateEmail.
type Repository interface {
	Create(ctx context.Context, u *User) error
	GetByID(ctx context.Context, id uuid.UUID) (*User, error)
	GetByEmail(ctx context.Context, email string) (*User, error)
	List(ctx context.Context, p pagination.Params) ([]*User, error)
	Update(ctx context.Context, u *User) error
	Delete(ctx context.Context, id uuid.UUID) error
	SetRole(ctx context.Context, id uuid.UUID, role string) error
	ToggleDisabled(ctx context.Context, id uuid.UUID) (bool, error)
}
