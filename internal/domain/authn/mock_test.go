package authn

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/ambulance/ambulance/internal/domain/identity"
	"github.com/ambulance/ambulance/internal/platform/auth"
	"github.com/ambulance/ambulance/pkg/pagination"
)

const testSecret = "test-secret-0123456789abcdef0123456789"

// -- Mock identity repository --

type mockUserRepo struct {
	mu    sync.Mutex
	users map[uuid.UUID]identity.User
}

func newMockUserRepo() *mockUserRepo {
	return &mockUserRepo{users: make(map[uuid.UUID]identity.User)}
}

func (m *mockUserRepo) Create(_ context.Context, u *identity.User) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, existing := range m.users {
		if existing.Email == u.Email {
			return identity.ErrDuplicateEmail
		}
	}
	u.ID = uuid.New()
	u.CreatedAt = time.Now()
	u.UpdatedAt = u.CreatedAt
	m.users[u.ID] = *u
	return nil
}

func (m *mockUserRepo) GetByID(_ context.Context, id uuid.UUID) (*identity.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	u, ok := m.users[id]
	if !ok {
		return nil, identity.ErrUserNotFound
	}
	return &u, nil
}

func (m *mockUserRepo) GetByEmail(_ context.Context, email string) (*identity.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, u := range m.users {
		if u.Email == email {
			u := u
			return &u, nil
		}
	}
	return nil, identity.ErrUserNotFound
}

func (m *mockUserRepo) List(_ context.Context, _ pagination.Params) ([]*identity.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]*identity.User, 0, len(m.users))
	for _, u := range m.users {
		u := u
		out = append(out, &u)
	}
	return out, nil
}

func (m *mockUserRepo) Update(_ context.Context, u *identity.User) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.users[u.ID]; !ok {
		return identity.ErrUserNotFound
	}
	m.users[u.ID] = *u
	return nil
}

func (m *mockUserRepo) Delete(_ context.Context, id uuid.UUID) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.users, id)
	return nil
}

func (m *mockUserRepo) SetRole(_ context.Context, id uuid.UUID, role string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	u, ok := m.users[id]
	if !ok {
		return identity.ErrUserNotFound
	}
	u.Role = role
	m.users[id] = u
	return nil
}

func (m *mockUserRepo) ToggleDisabled(_ context.Context, id uuid.UUID) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	u, ok := m.users[id]
	if !ok {
		return false, identity.ErrUserNotFound
	}
	u.Disabled = !u.Disabled
	m.users[id] = u
	return u.Disabled, nil
}

type testEnv struct {
	svc    *Service
	users  *identity.Service
	tokens *auth.Tokens
}

func newTestEnv() *testEnv {
	users := identity.NewService(newMockUserRepo(), zerolog.Nop())
	tokens := auth.NewTokens(testSecret, time.Hour)
	return &testEnv{
		svc:    NewService(users, tokens, zerolog.Nop()),
		users:  users,
		tokens: tokens,
	}
}
