package inmem

import (
	"context"
	"sync"
	"time"

	"github.com/jomadlcrz/class-schedule-backend/internal/model"
)

// PreferenceStore is an in-memory implementation of service.PreferenceStore.
type PreferenceStore struct {
	mu    sync.Mutex
	prefs map[string]model.Preference
}

func NewPreferenceStore() *PreferenceStore {
	return &PreferenceStore{prefs: make(map[string]model.Preference)}
}

func (s *PreferenceStore) Get(_ context.Context, ownerEmail string) (*model.Preference, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	p, ok := s.prefs[ownerEmail]
	if !ok {
		return nil, nil
	}
	return &p, nil
}

func (s *PreferenceStore) Upsert(_ context.Context, p *model.Preference) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	p.UpdatedAt = time.Now()
	s.prefs[p.OwnerEmail] = *p
	return nil
}
