package location

import (
	"context"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/ambulance/ambulance/internal/platform/apperr"
	"github.com/ambulance/ambulance/internal/platform/db"
)

type Service struct {
	repo   Repository
	tx     db.TxRunner
	logger zerolog.Logger
}

func NewService(repo Repository, tx db.TxRunner, logger zerolog.Logger) *Service {
	return &Service{repo: repo, tx: tx, logger: logger}
}

// Create saves a location for ownerID. A new default demotes the owner's
// previous default in the same transaction.
func (s *Service) Create(ctx context.Context, ownerID uuid.UUID, in CreateInput) (*Location, error) {
	if err := apperr.Validate(in); err != nil {
		return nil, err
	}
	if in.Type == "" {
		in.Type = DefaultType
	}

	l := &Location{
		UserID:      ownerID,
		Name:        in.Name,
		Address:     in.Address,
		Type:        in.Type,
		Notes:       in.Notes,
		IsDefault:   in.IsDefault,
		Coordinates: in.Coordinates,
	}
	err := s.tx.InTx(ctx, func(ctx context.Context) error {
		if l.IsDefault {
			if err := s.repo.ClearDefault(ctx, ownerID, uuid.Nil); err != nil {
				return err
			}
		}
		return s.repo.Create(ctx, l)
	})
	if err != nil {
		return nil, err
	}
	return l, nil
}

// ListMine returns the default location first, then the newest.
func (s *Service) ListMine(ctx context.Context, ownerID uuid.UUID) ([]*Location, error) {
	return s.repo.ListByOwner(ctx, ownerID)
}

func (s *Service) Update(ctx context.Context, ownerID, id uuid.UUID, in UpdateInput) (*Location, error) {
	if err := apperr.Validate(in); err != nil {
		return nil, err
	}

	var l *Location
	err := s.tx.InTx(ctx, func(ctx context.Context) error {
		var err error
		l, err = s.repo.GetOwned(ctx, ownerID, id)
		if err != nil {
			return err
		}
		applyUpdate(l, in)
		if l.IsDefault {
			if err := s.repo.ClearDefault(ctx, ownerID, id); err != nil {
				return err
			}
		}
		return s.repo.Update(ctx, l)
	})
	if err != nil {
		return nil, err
	}
	return l, nil
}

func applyUpdate(l *Location, in UpdateInput) {
	if in.Name != nil {
		l.Name = *in.Name
	}
	if in.Address != nil {
		l.Address = *in.Address
	}
	if in.Type != nil {
		l.Type = *in.Type
	}
	if in.Notes != nil {
		l.Notes = *in.Notes
	}
	if in.IsDefault != nil {
		l.IsDefault = *in.IsDefault
	}
	if in.Coordinates != nil {
		l.Coordinates = in.Coordinates
	}
}

func (s *Service) Delete(ctx context.Context, ownerID, id uuid.UUID) error {
	return s.repo.Delete(ctx, ownerID, id)
}

// SetDefault demotes every other location of the owner and promotes id.
// Calling it on the current default changes nothing.
func (s *Service) SetDefault(ctx context.Context, ownerID, id uuid.UUID) (*Location, error) {
	var l *Location
	err := s.tx.InTx(ctx, func(ctx context.Context) error {
		if _, err := s.repo.GetOwned(ctx, ownerID, id); err != nil {
			return err
		}
		if err := s.repo.ClearDefault(ctx, ownerID, id); err != nil {
			return err
		}
		if err := s.repo.MarkDefault(ctx, ownerID, id); err != nil {
			return err
		}
		var err error
		l, err = s.repo.GetOwned(ctx, ownerID, id)
		return err
	})
	if err != nil {
		return nil, err
	}
	s.logger.Debug().Str("user_id", ownerID.String()).Str("location_id", id.String()).Msg("default location set")
	return l, nil
}
