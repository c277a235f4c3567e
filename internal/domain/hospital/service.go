package hospital

import (
	"context"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/ambulance/ambulance/internal/platform/apperr"
	"github.com/ambulance/ambulance/pkg/pagination"
)

type Service struct {
	repo   Repository
	logger zerolog.Logger
}

func NewService(repo Repository, logger zerolog.Logger) *Service {
	return &Service{repo: repo, logger: logger}
}

func (s *Service) Create(ctx context.Context, in CreateInput) (*Hospital, error) {
	if err := apperr.Validate(in); err != nil {
		return nil, err
	}
	if in.Specialties == nil {
		in.Specialties = []string{}
	}
	h := &Hospital{
		Name:           in.Name,
		Distance:       in.Distance,
		TravelTime:     in.TravelTime,
		Type:           in.Type,
		Address:        in.Address,
		Phone:          in.Phone,
		Rating:         in.Rating,
		Reviews:        in.Reviews,
		Emergency:      in.Emergency,
		Beds:           in.Beds,
		AmbulanceReady: in.AmbulanceReady,
		Specialties:    in.Specialties,
		Image:          in.Image,
		Website:        in.Website,
	}
	if err := s.repo.Create(ctx, h); err != nil {
		return nil, err
	}
	s.logger.Info().Str("hospital_id", h.ID.String()).Msg("hospital created")
	return h, nil
}

func (s *Service) List(ctx context.Context, p pagination.Params) ([]*Hospital, error) {
	return s.repo.Search(ctx, Filter{}, p)
}

func (s *Service) Get(ctx context.Context, id uuid.UUID) (*Hospital, error) {
	return s.repo.GetByID(ctx, id)
}

// Search returns hospitals matching every set field of f.
func (s *Service) Search(ctx context.Context, f Filter, p pagination.Params) ([]*Hospital, error) {
	return s.repo.Search(ctx, f, p)
}

func (s *Service) Update(ctx context.Context, id uuid.UUID, in UpdateInput) (*Hospital, error) {
	if err := apperr.Validate(in); err != nil {
		return nil, err
	}
	h, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	applyUpdate(h, in)
	if err := s.repo.Update(ctx, h); err != nil {
		return nil, err
	}
	return h, nil
}

func applyUpdate(h *Hospital, in UpdateInput) {
	if in.Name != nil {
		h.Name = *in.Name
	}
	if in.Distance != nil {
		h.Distance = *in.Distance
	}
	if in.TravelTime != nil {
		h.TravelTime = *in.TravelTime
	}
	if in.Type != nil {
		h.Type = *in.Type
	}
	if in.Address != nil {
		h.Address = *in.Address
	}
	if in.Phone != nil {
		h.Phone = *in.Phone
	}
	if in.Rating != nil {
		h.Rating = *in.Rating
	}
	if in.Reviews != nil {
		h.Reviews = *in.Reviews
	}
	if in.Emergency != nil {
		h.Emergency = *in.Emergency
	}
	if in.Beds != nil {
		h.Beds = *in.Beds
	}
	if in.AmbulanceReady != nil {
		h.AmbulanceReady = *in.AmbulanceReady
	}
	if in.Specialties != nil {
		h.Specialties = *in.Specialties
	}
	if in.Image != nil {
		h.Image = *in.Image
	}
	if in.Website != nil {
		h.Website = *in.Website
	}
}

func (s *Service) Delete(ctx context.Context, id uuid.UUID) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}
	s.logger.Info().Str("hospital_id", id.String()).Msg("hospital deleted")
	return nil
}
