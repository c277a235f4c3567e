package contact

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

// Create adds a contact. The owner's first contact is always primary; a new
// primary demotes the previous one.
func (s *Service) Create(ctx context.Context, ownerID uuid.UUID, in CreateInput) (*Contact, error) {
	if err := apperr.Validate(in); err != nil {
		return nil, err
	}
	if in.Relationship == "" {
		in.Relationship = DefaultRelationship
	}

	c := &Contact{
		UserID:       ownerID,
		Name:         in.Name,
		Phone:        in.Phone,
		Relationship: in.Relationship,
		Notes:        in.Notes,
		IsPrimary:    in.IsPrimary,
	}
	err := s.tx.InTx(ctx, func(ctx context.Context) error {
		n, err := s.repo.CountByOwner(ctx, ownerID)
		if err != nil {
			return err
		}
		switch {
		case n == 0:
			c.IsPrimary = true
		case c.IsPrimary:
			if err := s.repo.ClearPrimary(ctx, ownerID, uuid.Nil); err != nil {
				return err
			}
		}
		return s.repo.Create(ctx, c)
	})
	if err != nil {
		return nil, err
	}
	return c, nil
}

// ListMine returns the primary contact first, then the newest.
func (s *Service) ListMine(ctx context.Context, ownerID uuid.UUID) ([]*Contact, error) {
	return s.repo.ListByOwner(ctx, ownerID)
}

// Update applies a partial update. Setting isPrimary demotes the current
// primary; unsetting it on the primary itself is refused so the owner always
// keeps one.
func (s *Service) Update(ctx context.Context, ownerID, id uuid.UUID, in UpdateInput) (*Contact, error) {
	if err := apperr.Validate(in); err != nil {
		return nil, err
	}

	var c *Contact
	err := s.tx.InTx(ctx, func(ctx context.Context) error {
		var err error
		c, err = s.repo.GetOwned(ctx, ownerID, id)
		if err != nil {
			return err
		}
		if c.IsPrimary && in.IsPrimary != nil && !*in.IsPrimary {
			return ErrDemotePrimary
		}
		applyUpdate(c, in)
		if c.IsPrimary {
			if err := s.repo.ClearPrimary(ctx, ownerID, id); err != nil {
				return err
			}
		}
		return s.repo.Update(ctx, c)
	})
	if err != nil {
		return nil, err
	}
	return c, nil
}

func applyUpdate(c *Contact, in UpdateInput) {
	if in.Name != nil {
		c.Name = *in.Name
	}
	if in.Phone != nil {
		c.Phone = *in.Phone
	}
	if in.Relationship != nil {
		c.Relationship = *in.Relationship
	}
	if in.Notes != nil {
		c.Notes = *in.Notes
	}
	if in.IsPrimary != nil {
		c.IsPrimary = *in.IsPrimary
	}
}

// Delete removes the contact. Removing the primary promotes the oldest
// remaining contact.
func (s *Service) Delete(ctx context.Context, ownerID, id uuid.UUID) error {
	return s.tx.InTx(ctx, func(ctx context.Context) error {
		c, err := s.repo.GetOwned(ctx, ownerID, id)
		if err != nil {
			return err
		}
		if err := s.repo.Delete(ctx, ownerID, id); err != nil {
			return err
		}
		if !c.IsPrimary {
			return nil
		}
		s.logger.Debug().Str("user_id", ownerID.String()).Msg("primary contact deleted, promoting oldest")
		return s.repo.PromoteOldest(ctx, ownerID)
	})
}

// SetPrimary demotes every other contact of the owner and promotes id.
func (s *Service) SetPrimary(ctx context.Context, ownerID, id uuid.UUID) (*Contact, error) {
	var c *Contact
	err := s.tx.InTx(ctx, func(ctx context.Context) error {
		if _, err := s.repo.GetOwned(ctx, ownerID, id); err != nil {
			return err
		}
		if err := s.repo.ClearPrimary(ctx, ownerID, id); err != nil {
			return err
		}
		if err := s.repo.MarkPrimary(ctx, ownerID, id); err != nil {
			return err
		}
		var err error
		c, err = s.repo.GetOwned(ctx, ownerID, id)
		return err
	})
	if err != nil {
		return nil, err
	}
	return c, nil
}
