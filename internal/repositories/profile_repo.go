package repositories

import (
	"context"

	"github.com/influencehub/backend/internal/apperr"
	"github.com/influencehub/backend/internal/models"
	"github.com/jackc/pgx/v5/pgxpool"
)

type ProfileRepo struct {
	pool *pgxpool.Pool
}

func NewProfileRepo(pool *pgxpool.Pool) *ProfileRepo {
	return &ProfileRepo{pool: pool}
}

func (r *ProfileRepo) Get(ctx context.Context, id string) (*models.Profile, error) {
	var p models.Profile
	err := r.pool.QueryRow(ctx, `
		SELECT id, full_name, timezone, created_at, updated_at FROM profiles WHERE id = $1
	`, id).Scan(&p.ID, &p.FullName, &p.Timezone, &p.CreatedAt, &p.UpdatedAt)
	if err != nil {
		return nil, mapErr("get profile", "profile", id, err)
	}
	return &p, nil
}

// Upsert keeps stored fields the input leaves nil.
func (r *ProfileRepo) Upsert(ctx context.Context, in models.ProfileInput) (*models.Profile, error) {
	var p models.Profile
	err := r.pool.QueryRow(ctx, `
		INSERT INTO profiles (id, full_name, timezone)
		VALUES ($1, $2, $3)
		ON CONFLICT (id) DO UPDATE SET
			full_name = COALESCE(EXCLUDED.full_name, profiles.full_name),
			timezone = COALESCE(EXCLUDED.timezone, profiles.timezone),
			updated_at = now()
		RETURNING id, full_name, timezone, created_at, updated_at
	`, in.ID, in.FullName, in.Timezone).Scan(&p.ID, &p.FullName, &p.Timezone, &p.CreatedAt, &p.UpdatedAt)
	if err != nil {
		return nil, apperr.Persistence("upsert profile", err)
	}
	return &p, nil
}
