package persistence

import (
	"context"
	"encoding/json"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/khoahotran/portfolio-generator/internal/domain/wizard"
	"github.com/khoahotran/portfolio-generator/pkg/apperror"
)

type memoryEntry struct {
	data      []byte
	expiresAt time.Time
}

// memorySessionRepo is the single-process stand-in for Redis. Values are
// stored as JSON so callers never share a *Session.
type memorySessionRepo struct {
	mu      sync.Mutex
	ttl     time.Duration
	now     func() time.Time
	entries map[uuid.UUID]memoryEntry
}

func NewMemorySessionRepo(ttl time.Duration) wizard.Repository {
	return newMemorySessionRepo(ttl, time.Now)
}

func newMemorySessionRepo(ttl time.Duration, now func() time.Time) *memorySessionRepo {
	return &memorySessionRepo{ttl: ttl, now: now, entries: make(map[uuid.UUID]memoryEntry)}
}

func (r *memorySessionRepo) Save(_ context.Context, s *wizard.Session) error {
	b, err := json.Marshal(s)
	if err != nil {
		return apperror.NewInternal("failed to marshal wizard session", err)
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.sweep()
	r.entries[s.ID] = memoryEntry{data: b, expiresAt: r.now().Add(r.ttl)}
	return nil
}

func (r *memorySessionRepo) FindByID(_ context.Context, id uuid.UUID) (*wizard.Session, error) {
	r.mu.Lock()
	e, ok := r.entries[id]
	if ok && !r.now().Before(e.expiresAt) {
		delete(r.entries, id)
		ok = false
	}
	r.mu.Unlock()

	if !ok {
		return nil, apperror.NewAppError(apperror.ErrNotFound, "session not found", id.String(), wizard.ErrSessionNotFound)
	}
	s := &wizard.Session{}
	if err := json.Unmarshal(e.data, s); err != nil {
		return nil, apperror.NewInternal("failed to unmarshal wizard session", err)
	}
	return s, nil
}

func (r *memorySessionRepo) Update(_ context.Context, id uuid.UUID, fn func(*wizard.Session) error) (*wizard.Session, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	e, ok := r.entries[id]
	if !ok || !r.now().Before(e.expiresAt) {
		delete(r.entries, id)
		return nil, apperror.NewAppError(apperror.ErrNotFound, "session not found", id.String(), wizard.ErrSessionNotFound)
	}
	s := &wizard.Session{}
	if err := json.Unmarshal(e.data, s); err != nil {
		return nil, apperror.NewInternal("failed to unmarshal wizard session", err)
	}
	if err := fn(s); err != nil {
		return nil, err
	}
	b, err := json.Marshal(s)
	if err != nil {
		return nil, apperror.NewInternal("failed to marshal wizard session", err)
	}
	r.entries[id] = memoryEntry{data: b, expiresAt: r.now().Add(r.ttl)}
	return s, nil
}

func (r *memorySessionRepo) Delete(_ context.Context, id uuid.UUID) error {
	r.mu.Lock()
	delete(r.entries, id)
	r.mu.Unlock()
	return nil
}

// sweep drops expired entries. Caller holds mu.
func (r *memorySessionRepo) sweep() {
	now := r.now()
	for id, e := range r.entries {
		if !now.Before(e.expiresAt) {
			delete(r.entries, id)
		}
	}
}
