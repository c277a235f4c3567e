package location

import (
	"context"

	"github.com/google/uuid"
)

// Repository persists saved locations, always scoped to the owner.
type Repository interface {
	Create(ctx context.Context, l *Location) error
	ListByOwner(ctx context.Context, ownerID uuid.UUID) ([]*Location, error)
	GetOwned(ctx context.Context, ownerID, id uuid.UUID) (*Location, error)
	Update(ctx context.Context, l *Location) error
	Delete(ctx context.Context, ownerID, id uuid.UUID) error
	// ClearDefault unsets the flag on every location of ownerID except keep.
	ClearDefault(ctx context.Context, ownerID, keep uuid.UUID) error
	MarkDefault(ctx context.Context, ownerID, id uuid.UUID) error
}
