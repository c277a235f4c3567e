package contact

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/ambulance/ambulance/internal/platform/db"
)

// -- Mock Repository --

type mockContactRepo struct {
	mu       sync.Mutex
	contacts map[uuid.UUID]Contact
	clock    time.Time
}

func newMockContactRepo() *mockContactRepo {
	return &mockContactRepo{
		contacts: make(map[uuid.UUID]Contact),
		clock:    time.Date(2026, 1, 1, 8, 0, 0, 0, time.UTC),
	}
}

func (m *mockContactRepo) owned(ownerID uuid.UUID) []Contact {
	var out []Contact
	for _, c := range m.contacts {
		if c.UserID == ownerID {
			out = append(out, c)
		}
	}
	return out
}

// conflicts mirrors the one-primary-per-owner unique index.
func (m *mockContactRepo) conflicts(c Contact) bool {
	if !c.IsPrimary {
		return false
	}
	for _, o := range m.owned(c.UserID) {
		if o.ID != c.ID && o.IsPrimary {
			return true
		}
	}
	return false
}

func (m *mockContactRepo) Create(_ context.Context, c *Contact) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.conflicts(*c) {
		return ErrPrimaryConflict
	}
	m.clock = m.clock.Add(time.Minute)
	c.ID = uuid.New()
	c.CreatedAt = m.clock
	c.UpdatedAt = m.clock
	m.contacts[c.ID] = *c
	return nil
}

func (m *mockContactRepo) ListByOwner(_ context.Context, ownerID uuid.UUID) ([]*Contact, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := []*Contact{}
	for _, c := range m.owned(ownerID) {
		c := c
		out = append(out, &c)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].IsPrimary != out[j].IsPrimary {
			return out[i].IsPrimary
		}
		return out[i].CreatedAt.After(out[j].CreatedAt)
	})
	return out, nil
}

func (m *mockContactRepo) CountByOwner(_ context.Context, ownerID uuid.UUID) (int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.owned(ownerID)), nil
}

func (m *mockContactRepo) GetOwned(_ context.Context, ownerID, id uuid.UUID) (*Contact, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	c, ok := m.contacts[id]
	if !ok || c.UserID != ownerID {
		return nil, ErrNotFoundOrForbidden
	}
	return &c, nil
}

func (m *mockContactRepo) Update(_ context.Context, c *Contact) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	existing, ok := m.contacts[c.ID]
	if !ok || existing.UserID != c.UserID {
		return ErrNotFoundOrForbidden
	}
	if m.conflicts(*c) {
		return ErrPrimaryConflict
	}
	m.contacts[c.ID] = *c
	return nil
}

func (m *mockContactRepo) Delete(_ context.Context, ownerID, id uuid.UUID) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	c, ok := m.contacts[id]
	if !ok || c.UserID != ownerID {
		return ErrNotFoundOrForbidden
	}
	delete(m.contacts, id)
	return nil
}

func (m *mockContactRepo) ClearPrimary(_ context.Context, ownerID, keep uuid.UUID) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, c := range m.owned(ownerID) {
		if c.ID != keep {
			c.IsPrimary = false
			m.contacts[c.ID] = c
		}
	}
	return nil
}

func (m *mockContactRepo) MarkPrimary(_ context.Context, ownerID, id uuid.UUID) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	c, ok := m.contacts[id]
	if !ok || c.UserID != ownerID {
		return ErrNotFoundOrForbidden
	}
	c.IsPrimary = true
	if m.conflicts(c) {
		return ErrPrimaryConflict
	}
	m.contacts[id] = c
	return nil
}

func (m *mockContactRepo) PromoteOldest(_ context.Context, ownerID uuid.UUID) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	owned := m.owned(ownerID)
	if len(owned) == 0 {
		return nil
	}
	sort.Slice(owned, func(i, j int) bool { return owned[i].CreatedAt.Before(owned[j].CreatedAt) })
	oldest := owned[0]
	oldest.IsPrimary = true
	m.contacts[oldest.ID] = oldest
	return nil
}

func (m *mockContactRepo) primaries(ownerID uuid.UUID) []uuid.UUID {
	m.mu.Lock()
	defer m.mu.Unlock()
	var ids []uuid.UUID
	for _, c := range m.owned(ownerID) {
		if c.IsPrimary {
			ids = append(ids, c.ID)
		}
	}
	return ids
}

func newTestService() (*Service, *mockContactRepo) {
	repo := newMockContactRepo()
	return NewService(repo, db.NoTx{}, zerolog.Nop()), repo
}
