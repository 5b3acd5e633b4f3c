package repositories

import (
	"context"
	"sort"
	"sync"

	"github.com/google/uuid"

	"github.com/shashiranjanraj/kalaghar/app/models"
)

// NewMemoryStore returns a process-local store. Data is lost on exit.
func NewMemoryStore() *Store {
	noop := func(context.Context) error { return nil }
	return &Store{
		Driver:   "memory",
		Users:    &memoryUsers{memoryRecords[models.User]{byID: map[string]*models.User{}}},
		Artworks: &memoryRecords[models.Artwork]{byID: map[string]*models.Artwork{}},
		Orders:   &memoryOrders{memoryRecords[models.Order]{byID: map[string]*models.Order{}}},
		ping:     noop,
		migrate:  noop,
		close:    noop,
	}
}

// memoryRecords keeps records in insertion order.
type memoryRecords[T any] struct {
	mu    sync.RWMutex
	byID  map[string]*T
	order []string
}

func (m *memoryRecords[T]) put(id string, v *T) {
	m.byID[id] = v
	m.order = append(m.order, id)
}

func (m *memoryRecords[T]) get(id string) (*T, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	v, ok := m.byID[id]
	if !ok {
		return nil, ErrNotFound
	}
	cp := *v
	return &cp, nil
}

func (m *memoryRecords[T]) all() []T {
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := make([]T, 0, len(m.order))
	for _, id := range m.order {
		out = append(out, *m.byID[id])
	}
	return out
}

func (m *memoryRecords[T]) delete(id string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.byID[id]; !ok {
		return
	}
	delete(m.byID, id)
	for i, v := range m.order {
		if v == id {
			m.order = append(m.order[:i], m.order[i+1:]...)
			break
		}
	}
}

// ─── Artworks ────────────────────────────────────────────────────────────────

func (m *memoryRecords[T]) FindByID(_ context.Context, id string) (*T, error) { return m.get(id) }

func (m *memoryRecords[T]) All(_ context.Context) ([]T, error) { return m.all(), nil }

func (m *memoryRecords[T]) DeleteByID(_ context.Context, id string) error {
	m.delete(id)
	return nil
}

func (m *memoryRecords[T]) Create(_ context.Context, v *T) error {
	id := uuid.NewString()
	switch r := any(v).(type) {
	case *models.Artwork:
		r.ID, r.CreatedAt = id, stamp()
	case *models.Order:
		r.ID, r.CreatedAt = id, stamp()
	}
	cp := *v
	m.mu.Lock()
	m.put(id, &cp)
	m.mu.Unlock()
	return nil
}

// ─── Orders ──────────────────────────────────────────────────────────────────

type memoryOrders struct {
	memoryRecords[models.Order]
}

// All returns orders newest first; equal timestamps keep the later insert
// first.
func (m *memoryOrders) All(_ context.Context) ([]models.Order, error) {
	out := m.all()
	for i, j := 0, len(out)-1; i < j; i, j = i+1, j-1 {
		out[i], out[j] = out[j], out[i]
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out, nil
}

// ─── Users ───────────────────────────────────────────────────────────────────

type memoryUsers struct {
	memoryRecords[models.User]
}

func (m *memoryUsers) Create(_ context.Context, u *models.User) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.taken(u.Name, u.Role, "") {
		return ErrDuplicate
	}
	u.ID = uuid.NewString()
	u.CreatedAt = stamp()
	u.UpdatedAt = u.CreatedAt
	m.put(u.ID, cloneUser(u))
	return nil
}

func (m *memoryUsers) FindByID(_ context.Context, id string) (*models.User, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	u, ok := m.byID[id]
	if !ok {
		return nil, ErrNotFound
	}
	return cloneUser(u), nil
}

func (m *memoryUsers) FindByLogin(_ context.Context, name, role string) (*models.User, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	for _, id := range m.order {
		if u := m.byID[id]; u.Name == name && u.Role == role {
			return cloneUser(u), nil
		}
	}
	return nil, ErrNotFound
}

func (m *memoryUsers) All(_ context.Context) ([]models.User, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := make([]models.User, 0, len(m.order))
	for _, id := range m.order {
		out = append(out, *cloneUser(m.byID[id]))
	}
	return out, nil
}

func (m *memoryUsers) UpdateByID(_ context.Context, id string, patch models.UserPatch) (*models.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	cur, ok := m.byID[id]
	if !ok {
		return nil, ErrNotFound
	}
	next := cloneUser(cur)
	patch.Apply(next)
	if patch.TouchesLoginKey() && m.taken(next.Name, next.Role, id) {
		return nil, ErrDuplicate
	}
	next.UpdatedAt = stamp()
	m.byID[id] = next
	return cloneUser(next), nil
}

// taken reports whether another user already holds (name, role). Callers
// hold the lock.
func (m *memoryUsers) taken(name, role, exceptID string) bool {
	for id, u := range m.byID {
		if id != exceptID && u.Name == name && u.Role == role {
			return true
		}
	}
	return false
}

func cloneUser(u *models.User) *models.User {
	cp := *u
	if u.PayoutDetails != nil {
		d := *u.PayoutDetails
		cp.PayoutDetails = &d
	}
	return &cp
}
