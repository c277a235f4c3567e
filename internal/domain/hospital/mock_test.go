package hospital

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/ambulance/ambulance/pkg/pagination"
)

// -- Mock Repository --

type mockHospitalRepo struct {
	mu        sync.Mutex
	hospitals map[uuid.UUID]Hospital
}

func newMockHospitalRepo() *mockHospitalRepo {
	return &mockHospitalRepo{hospitals: make(map[uuid.UUID]Hospital)}
}

func (m *mockHospitalRepo) Create(_ context.Context, h *Hospital) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	h.ID = uuid.New()
	h.CreatedAt = time.Now()
	h.UpdatedAt = h.CreatedAt
	m.hospitals[h.ID] = *h
	return nil
}

func (m *mockHospitalRepo) GetByID(_ context.Context, id uuid.UUID) (*Hospital, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	h, ok := m.hospitals[id]
	if !ok {
		return nil, ErrHospitalNotFound
	}
	return &h, nil
}

func (m *mockHospitalRepo) Update(_ context.Context, h *Hospital) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.hospitals[h.ID]; !ok {
		return ErrHospitalNotFound
	}
	m.hospitals[h.ID] = *h
	return nil
}

func (m *mockHospitalRepo) Delete(_ context.Context, id uuid.UUID) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.hospitals[id]; !ok {
		return ErrHospitalNotFound
	}
	delete(m.hospitals, id)
	return nil
}

func (m *mockHospitalRepo) Search(_ context.Context, f Filter, p pagination.Params) ([]*Hospital, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := []*Hospital{}
	for _, h := range m.hospitals {
		h := h
		if f.Matches(&h) {
			out = append(out, &h)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Distance != out[j].Distance {
			return out[i].Distance < out[j].Distance
		}
		return out[i].Name < out[j].Name
	})
	return paginate(out, p), nil
}

func newTestService() (*Service, *mockHospitalRepo) {
	repo := newMockHospitalRepo()
	return NewService(repo, zerolog.Nop()), repo
}

func seedDirectory(svc *Service) {
	for _, in := range []CreateInput{
		{Name: "City General", Type: "General", Rating: 4.0, Distance: 2.5, Emergency: true, Specialties: []string{"Cardiology", "Trauma"}},
		{Name: "Lakeside Clinic", Type: "Clinic", Rating: 4.5, Distance: 1.2, Specialties: []string{"Pediatrics"}},
		{Name: "Heart Institute", Type: "Specialty", Rating: 5.0, Distance: 8.0, Emergency: true, Specialties: []string{"Cardiology"}},
		{Name: "Old Town", Type: "General", Rating: 3.2, Distance: 4.0},
	} {
		if _, err := svc.Create(context.Background(), in); err != nil {
			panic(err)
		}
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
