package booking

import (
	"context"

	"github.com/google/uuid"

	"github.com/ambulance/ambulance/pkg/pagination"
)

// Repository persists bookings. Every read or write of an existing booking
// is scoped to its owner; a miss is ErrNotFoundOrForbidden.
type Repository interface {
	Create(ctx context.Context, b *Booking) error
	ListByOwner(ctx context.Context, ownerID uuid.UUID, p pagination.Params) ([]*Booking, error)
	GetOwned(ctx context.Context, ownerID, id uuid.UUID) (*Booking, error)
	SetStatus(ctx context.Context, ownerID, id uuid.UUID, status string) (*Booking, error)
}
