package hospital

import (
	"context"

	"github.com/google/uuid"

	"github.com/ambulance/ambulance/pkg/pagination"
)

type Repository interface {
	Create(ctx context.Context, h *Hospital) error
	GetByID(ctx context.Context, id uuid.UUID) (*Hospital, error)
	Update(ctx context.Context, h *Hospital) error
	Delete(ctx context.Context, id uuid.UUID) error
	// Search returns hospitals matching f; the zero Filter matches all.
	Search(ctx context.Context, f Filter, p pagination.Params) ([]*Hospital, error)
}
