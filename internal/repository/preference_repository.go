package repository

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/jomadlcrz/class-schedule-backend/internal/model"
)

type PreferenceRepository struct {
	pool *pgxpool.Pool
}

func NewPreferenceRepository(pool *pgxpool.Pool) *PreferenceRepository {
	return &PreferenceRepository{pool: pool}
}

// Get returns an owner's saved preference, or nil when never saved.
func (r *PreferenceRepository) Get(ctx context.Context, ownerEmail string) (*model.Preference, error) {
	var p model.Preference
	err := r.pool.QueryRow(ctx,
		`SELECT owner_email, sort_key, direction, updated_at FROM preferences WHERE owner_email = $1`,
		ownerEmail).Scan(&p.OwnerEmail, &p.SortKey, &p.Direction, &p.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return &p, nil
}

// Upsert saves an owner's preference, overwriting any previous value.
func (r *PreferenceRepository) Upsert(ctx context.Context, p *model.Preference) error {
	return r.pool.QueryRow(ctx,
		`INSERT INTO preferences (owner_email, sort_key, direction)
		 VALUES ($1, $2, $3)
		 ON CONFLICT (owner_email) DO UPDATE SET sort_key = $2, direction = $3, updated_at = NOW()
		 RETURNING updated_at`,
		p.OwnerEmail, p.SortKey, p.Direction).Scan(&p.UpdatedAt)
}
