package repositories

import (
	"context"
	"fmt"

	"github.com/influencehub/backend/internal/apperr"
	"github.com/influencehub/backend/internal/models"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

const influencerColumns = `id, owner_user_id, name, platform, handle, followers,
	engagement_rate::float8, email, created_at, updated_at`

type InfluencerRepo struct {
	pool *pgxpool.Pool
}

func NewInfluencerRepo(pool *pgxpool.Pool) *InfluencerRepo {
	return &InfluencerRepo{pool: pool}
}

func scanInfluencer(row pgx.Row) (*models.Influencer, error) {
	var i models.Influencer
	err := row.Scan(&i.ID, &i.OwnerUserID, &i.Name, &i.Platform, &i.Handle, &i.Followers,
		&i.EngagementRate, &i.Email, &i.CreatedAt, &i.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &i, nil
}

func (r *InfluencerRepo) Insert(ctx context.Context, i *models.Influencer) error {
	err := r.pool.QueryRow(ctx, `
		INSERT INTO influencers (owner_user_id, name, platform, handle, followers, engagement_rate, email)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING id, created_at, updated_at
	`, i.OwnerUserID, i.Name, i.Platform, i.Handle, i.Followers, i.EngagementRate, i.Email,
	).Scan(&i.ID, &i.CreatedAt, &i.UpdatedAt)
	return apperr.Persistence("insert influencer", err)
}

func (r *InfluencerRepo) Get(ctx context.Context, id string) (*models.Influencer, error) {
	i, err := scanInfluencer(r.pool.QueryRow(ctx, `SELECT `+influencerColumns+` FROM influencers WHERE id = $1`, id))
	if err != nil {
		return nil, mapErr("get influencer", "influencer", id, err)
	}
	return i, nil
}

func (r *InfluencerRepo) Update(ctx context.Context, id string, p models.InfluencerPatch) (*models.Influencer, error) {
	var set setClause
	if p.Name != nil {
		set.add("name", "", *p.Name)
	}
	if p.Platform != nil {
		set.add("platform", "", *p.Platform)
	}
	if p.Handle != nil {
		set.add("handle", "", *p.Handle)
	}
	if p.Followers != nil {
		set.add("followers", "", *p.Followers)
	}
	if p.EngagementRate != nil {
		set.add("engagement_rate", "", *p.EngagementRate)
	}
	if p.Email != nil {
		set.add("email", "", *p.Email)
	}

	query := fmt.Sprintf(`UPDATE influencers SET %s WHERE id = $%d RETURNING `+influencerColumns, set.String(), set.next())
	i, err := scanInfluencer(r.pool.QueryRow(ctx, query, append(set.args, id)...))
	if err != nil {
		return nil, mapErr("update influencer", "influencer", id, err)
	}
	return i, nil
}

func (r *InfluencerRepo) Delete(ctx context.Context, id string) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return apperr.Persistence("delete influencer", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	for _, q := range []string{
		`DELETE FROM campaign_influencers WHERE influencer_id = $1`,
		`DELETE FROM submissions WHERE influencer_id = $1`,
		`DELETE FROM payouts WHERE influencer_id = $1`,
	} {
		if _, err := tx.Exec(ctx, q, id); err != nil {
			return apperr.Persistence("delete influencer", err)
		}
	}

	tag, err := tx.Exec(ctx, `DELETE FROM influencers WHERE id = $1`, id)
	if err != nil {
		return apperr.Persistence("delete influencer", err)
	}
	if tag.RowsAffected() == 0 {
		return apperr.NotFound("influencer", id)
	}

	return apperr.Persistence("delete influencer", tx.Commit(ctx))
}

func (r *InfluencerRepo) List(ctx context.Context, f InfluencerFilter) ([]models.Influencer, error) {
	var where whereClause
	where.eq("owner_user_id", f.OwnerUserID)

	query := `SELECT ` + influencerColumns + ` FROM influencers` + where.String() + ` ORDER BY created_at DESC`
	rows, err := r.pool.Query(ctx, query, where.args...)
	if err != nil {
		return nil, apperr.Persistence("list influencers", err)
	}
	defer rows.Close()

	influencers := []models.Influencer{}
	for rows.Next() {
		i, err := scanInfluencer(rows)
		if err != nil {
			return nil, apperr.Persistence("list influencers", err)
		}
		influencers = append(influencers, *i)
	}
	return influencers, apperr.Persistence("list influencers", rows.Err())
}
