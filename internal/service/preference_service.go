package service

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/jomadlcrz/class-schedule-backend/internal/model"
)

// PreferenceStore persists per-owner display settings.
type PreferenceStore interface {
	Get(ctx context.Context, ownerEmail string) (*model.Preference, error)
	Upsert(ctx context.Context, p *model.Preference) error
}

// PreferenceService is the server-side home of the client's persisted
// sort configuration: loaded at startup, saved on change.
type PreferenceService struct {
	store PreferenceStore
	log   zerolog.Logger
}

func NewPreferenceService(store PreferenceStore, log zerolog.Logger) *PreferenceService {
	return &PreferenceService{
		store: store,
		log:   log.With().Str("component", "preference_service").Logger(),
	}
}

// Get returns the owner's saved preference, or the time/asc default when
// none was ever saved.
func (s *PreferenceService) Get(ctx context.Context, ownerEmail string) (*model.Preference, error) {
	pref, err := s.store.Get(ctx, ownerEmail)
	if err != nil {
		return nil, fmt.Errorf("load preference: %w", err)
	}
	if pref == nil {
		return model.DefaultPreference(ownerEmail), nil
	}
	return pref, nil
}

// Save overwrites the owner's preference.
func (s *PreferenceService) Save(ctx context.Context, ownerEmail, sortKey, direction string) (*model.Preference, error) {
	pref := &model.Preference{
		OwnerEmail: ownerEmail,
		SortKey:    sortKey,
		Direction:  direction,
	}
	if err := s.store.Upsert(ctx, pref); err != nil {
		return nil, fmt.Errorf("save preference: %w", err)
	}
	return pref, nil
}
