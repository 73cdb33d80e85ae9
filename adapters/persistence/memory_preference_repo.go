package persistence

import (
	"context"
	"sync"

	"github.com/google/uuid"

	"github.com/khoahotran/portfolio-generator/internal/domain/preference"
	"github.com/khoahotran/portfolio-generator/pkg/apperror"
)

type memoryPreferenceRepo struct {
	mu    sync.RWMutex
	prefs map[uuid.UUID]preference.Preference
}

func NewMemoryPreferenceRepo() preference.Repository {
	return &memoryPreferenceRepo{prefs: make(map[uuid.UUID]preference.Preference)}
}

func (r *memoryPreferenceRepo) Get(_ context.Context, clientID uuid.UUID) (*preference.Preference, error) {
	r.mu.RLock()
	p, ok := r.prefs[clientID]
	r.mu.RUnlock()
	if !ok {
		return nil, apperror.NewAppError(apperror.ErrNotFound, "preference not found", clientID.String(), preference.ErrNotFound)
	}
	return &p, nil
}

func (r *memoryPreferenceRepo) Upsert(_ context.Context, p *preference.Preference) error {
	r.mu.Lock()
	r.prefs[p.ClientID] = *p
	r.mu.Unlock()
	return nil
}
