package booking

import (
	"context"
	"fmt"
	"math/rand"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/ambulance/ambulance/internal/platform/apperr"
	"github.com/ambulance/ambulance/internal/platform/events"
	"github.com/ambulance/ambulance/pkg/pagination"
)

type Service struct {
	repo      Repository
	events    *events.Emitter
	logger    zerolog.Logger
	bookingID func() string
}

func NewService(repo Repository, emitter *events.Emitter, logger zerolog.Logger) *Service {
	return &Service{repo: repo, events: emitter, logger: logger, bookingID: newBookingID}
}

// newBookingID returns "AMB" followed by eight digits.
func newBookingID() string {
	return fmt.Sprintf("AMB%08d", rand.Intn(100_000_000))
}

// Create stores a pending booking for ownerID. A caller-supplied bookingId
// is kept as is.
func (s *Service) Create(ctx context.Context, ownerID uuid.UUID, in CreateInput) (*Booking, error) {
	if err := validateCreate(in); err != nil {
		return nil, err
	}
	if in.Urgency == UrgencyImmediate {
		in.Schedule = nil
	}
	if in.BookingID == "" {
		in.BookingID = s.bookingID()
	}

	b := &Booking{
		BookingID:     in.BookingID,
		UserID:        ownerID,
		BookingType:   in.BookingType,
		Patient:       in.Patient,
		AmbulanceType: in.AmbulanceType,
		Urgency:       in.Urgency,
		Schedule:      in.Schedule,
		Address:       in.Address,
		Status:        StatusPending,
	}
	if err := s.repo.Create(ctx, b); err != nil {
		return nil, err
	}

	s.logger.Info().
		Str("booking_id", b.BookingID).
		Str("id", b.ID.String()).
		Str("user_id", ownerID.String()).
		Str("urgency", b.Urgency).
		Msg("booking created")
	s.events.Emit(ctx, events.BookingCreated, b.ID.String(), b)
	return b, nil
}

// validateCreate adds the schedule requirement of scheduled bookings to the
// struct-tag checks.
func validateCreate(in CreateInput) error {
	fields := map[string]string{}
	if err := apperr.Validate(in); err != nil {
		ae, ok := apperr.As(err)
		if !ok {
			return err
		}
		for k, v := range ae.Fields {
			fields[k] = v
		}
	}
	if in.Urgency == UrgencyScheduled {
		if in.Schedule == nil || in.Schedule.Date == "" {
			fields["dateTime.date"] = "is required for scheduled bookings"
		}
		if in.Schedule == nil || in.Schedule.Time == "" {
			fields["dateTime.time"] = "is required for scheduled bookings"
		}
	}
	if len(fields) > 0 {
		return apperr.Validation(fields)
	}
	return nil
}

// ListMine returns the owner's bookings, newest first.
func (s *Service) ListMine(ctx context.Context, ownerID uuid.UUID, p pagination.Params) ([]*Booking, error) {
	return s.repo.ListByOwner(ctx, ownerID, p)
}

func (s *Service) Get(ctx context.Context, ownerID, id uuid.UUID) (*Booking, error) {
	return s.repo.GetOwned(ctx, ownerID, id)
}

// Cancel marks the booking cancelled whatever its current status.
func (s *Service) Cancel(ctx context.Context, ownerID, id uuid.UUID) (*Booking, error) {
	b, err := s.repo.SetStatus(ctx, ownerID, id, StatusCancelled)
	if err != nil {
		return nil, err
	}
	s.logger.Info().
		Str("booking_id", b.BookingID).
		Str("id", b.ID.String()).
		Str("user_id", ownerID.String()).
		Msg("booking cancelled")
	s.events.Emit(ctx, events.BookingCancelled, b.ID.String(), b)
	return b, nil
}
