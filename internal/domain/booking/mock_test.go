package booking

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/ambulance/ambulance/internal/platform/events"
	"github.com/ambulance/ambulance/pkg/pagination"
)

// -- Mock Repository --

type mockBookingRepo struct {
	mu       sync.Mutex
	bookings map[uuid.UUID]Booking
	clock    time.Time
}

func newMockBookingRepo() *mockBookingRepo {
	return &mockBookingRepo{
		bookings: make(map[uuid.UUID]Booking),
		clock:    time.Date(2026, 1, 1, 8, 0, 0, 0, time.UTC),
	}
}

func (m *mockBookingRepo) Create(_ context.Context, b *Booking) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.clock = m.clock.Add(time.Minute)
	b.ID = uuid.New()
	b.CreatedAt = m.clock
	b.UpdatedAt = m.clock
	m.bookings[b.ID] = *b
	return nil
}

func (m *mockBookingRepo) ListByOwner(_ context.Context, ownerID uuid.UUID, p pagination.Params) ([]*Booking, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := []*Booking{}
	for _, b := range m.bookings {
		if b.UserID == ownerID {
			b := b
			out = append(out, &b)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return paginate(out, p), nil
}

func (m *mockBookingRepo) GetOwned(_ context.Context, ownerID, id uuid.UUID) (*Booking, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	b, ok := m.bookings[id]
	if !ok || b.UserID != ownerID {
		return nil, ErrNotFoundOrForbidden
	}
	return &b, nil
}

func (m *mockBookingRepo) SetStatus(_ context.Context, ownerID, id uuid.UUID, status string) (*Booking, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	b, ok := m.bookings[id]
	if !ok || b.UserID != ownerID {
		return nil, ErrNotFoundOrForbidden
	}
	b.Status = status
	m.bookings[id] = b
	return &b, nil
}

// -- Recording publisher --

type recordingPublisher struct {
	mu     sync.Mutex
	events []events.Event
}

func (p *recordingPublisher) Publish(_ context.Context, evt events.Event) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.events = append(p.events, evt)
	return nil
}

func (p *recordingPublisher) Close() error { return nil }

func (p *recordingPublisher) types() []string {
	p.mu.Lock()
	defer p.mu.Unlock()
	out := make([]string, len(p.events))
	for i, e := range p.events {
		out[i] = e.Type
	}
	return out
}

func newTestService() (*Service, *mockBookingRepo, *recordingPublisher) {
	repo := newMockBookingRepo()
	pub := &recordingPublisher{}
	svc := NewService(repo, events.NewEmitter(pub, zerolog.Nop()), zerolog.Nop())
	return svc, repo, pub
}

func validInput() CreateInput {
	return CreateInput{
		BookingType: TypeSelf,
		Patient: Patient{
			Name:   "Asha",
			Age:    intPtr(34),
			Gender: "female",
			Phone:  "+91-9000000000",
		},
		AmbulanceType: "basic",
		Urgency:       UrgencyImmediate,
		Address: Address{
			Pickup:  "12 MG Road",
			Dropoff: "City Hospital",
		},
	}
}

// paginate applies p to an already sorted slice the way LIMIT/OFFSET would.
func paginate[T any](items []T, p pagination.Params) []T {
	if p.Offset >= len(items) {
		return items[:0]
	}
	items = items[p.Offset:]
	if p.Limit > 0 && p.Limit < len(items) {
		items = items[:p.Limit]
	}
	return items
}

func intPtr(n int) *int { return &n }
