package contact

import (
	"context"

	"github.com/google/uuid"
)

// Repository persists emergency contacts, always scoped to the owner.
type Repository interface {
	Create(ctx context.Context, c *Contact) error
	ListByOwner(ctx context.Context, ownerID uuid.UUID) ([]*Contact, error)
	CountByOwner(ctx context.Context, ownerID uuid.UUID) (int, error)
	GetOwned(ctx context.Context, ownerID, id uuid.UUID) (*Contact, error)
	Update(ctx context.Context, c *Contact) error
	Delete(ctx context.Context, ownerID, id uuid.UUID) error
	// ClearPrimary unsets the flag on every contact of ownerID except keep.
	ClearPrimary(ctx context.Context, ownerID, keep uuid.UUID) error
	MarkPrimary(ctx context.Context, ownerID, id uuid.UUID) error
	// PromoteOldest marks the owner's oldest contact primary. It is a no-op
	// when the owner has none.
	PromoteOldest(ctx context.Context, ownerID uuid.UUID) error
}
