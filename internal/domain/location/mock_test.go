package location

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

type mockLocationRepo struct {
	mu        sync.Mutex
	locations map[uuid.UUID]Location
	clock     time.Time
}

func newMockLocationRepo() *mockLocationRepo {
	return &mockLocationRepo{
		locations: make(map[uuid.UUID]Location),
		clock:     time.Date(2026, 1, 1, 8, 0, 0, 0, time.UTC),
	}
}

// conflicts mirrors the one-default-per-owner unique index.
func (m *mockLocationRepo) conflicts(l Location) bool {
	if !l.IsDefault {
		return false
	}
	for id, o := range m.locations {
		if id != l.ID && o.UserID == l.UserID && o.IsDefault {
			return true
		}
	}
	return false
}

func (m *mockLocationRepo) Create(_ context.Context, l *Location) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.conflicts(*l) {
		return ErrDefaultConflict
	}
	m.clock = m.clock.Add(time.Minute)
	l.ID = uuid.New()
	l.CreatedAt = m.clock
	l.UpdatedAt = m.clock
	m.locations[l.ID] = *l
	return nil
}

func (m *mockLocationRepo) ListByOwner(_ context.Context, ownerID uuid.UUID) ([]*Location, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := []*Location{}
	for _, l := range m.locations {
		if l.UserID == ownerID {
			l := l
			out = append(out, &l)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].IsDefault != out[j].IsDefault {
			return out[i].IsDefault
		}
		return out[i].CreatedAt.After(out[j].CreatedAt)
	})
	return out, nil
}

func (m *mockLocationRepo) GetOwned(_ context.Context, ownerID, id uuid.UUID) (*Location, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	l, ok := m.locations[id]
	if !ok || l.UserID != ownerID {
		return nil, ErrNotFoundOrForbidden
	}
	return &l, nil
}

func (m *mockLocationRepo) Update(_ context.Context, l *Location) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	existing, ok := m.locations[l.ID]
	if !ok || existing.UserID != l.UserID {
		return ErrNotFoundOrForbidden
	}
	if m.conflicts(*l) {
		return ErrDefaultConflict
	}
	m.locations[l.ID] = *l
	return nil
}

func (m *mockLocationRepo) Delete(_ context.Context, ownerID, id uuid.UUID) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	l, ok := m.locations[id]
	if !ok || l.UserID != ownerID {
		return ErrNotFoundOrForbidden
	}
	delete(m.locations, id)
	return nil
}

func (m *mockLocationRepo) ClearDefault(_ context.Context, ownerID, keep uuid.UUID) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for id, l := range m.locations {
		if l.UserID == ownerID && id != keep {
			l.IsDefault = false
			m.locations[id] = l
		}
	}
	return nil
}

func (m *mockLocationRepo) MarkDefault(_ context.Context, ownerID, id uuid.UUID) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	l, ok := m.locations[id]
	if !ok || l.UserID != ownerID {
		return ErrNotFoundOrForbidden
	}
	l.IsDefault = true
	if m.conflicts(l) {
		return ErrDefaultConflict
	}
	m.locations[id] = l
	return nil
}

func (m *mockLocationRepo) defaults(ownerID uuid.UUID) []uuid.UUID {
	m.mu.Lock()
	defer m.mu.Unlock()
	var ids []uuid.UUID
	for id, l := range m.locations {
		if l.UserID == ownerID && l.IsDefault {
			ids = append(ids, id)
		}
	}
	return ids
}

func newTestService() (*Service, *mockLocationRepo) {
	repo := newMockLocationRepo()
	return NewService(repo, db.NoTx{}, zerolog.Nop()), repo
}
