package repositories

import (
	"context"
	"fmt"

	"github.com/influencehub/backend/internal/apperr"
	"github.com/influencehub/backend/internal/models"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

const campaignColumns = `id, owner_user_id, brand_name, campaign_name, description,
	start_date::text, end_date::text, budget::float8, status, created_at, updated_at`

type CampaignRepo struct {
	pool *pgxpool.Pool
}

func NewCampaignRepo(pool *pgxpool.Pool) *CampaignRepo {
	return &CampaignRepo{pool: pool}
}

func scanCampaign(row pgx.Row) (*models.Campaign, error) {
	var c models.Campaign
	err := row.Scan(&c.ID, &c.OwnerUserID, &c.BrandName, &c.CampaignName, &c.Description,
		&c.StartDate, &c.EndDate, &c.Budget, &c.Status, &c.CreatedAt, &c.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &c, nil
}

func (r *CampaignRepo) Insert(ctx context.Context, c *models.Campaign) error {
	err := r.pool.QueryRow(ctx, `
		INSERT INTO campaigns (owner_user_id, brand_name, campaign_name, description, start_date, end_date, budget, status)
		VALUES ($1, $2, $3, $4, $5::text::date, $6::text::date, $7, $8)
		RETURNING id, created_at, updated_at
	`, c.OwnerUserID, c.BrandName, c.CampaignName, c.Description,
		c.StartDate, c.EndDate, c.Budget, c.Status,
	).Scan(&c.ID, &c.CreatedAt, &c.UpdatedAt)
	return apperr.Persistence("insert campaign", err)
}

func (r *CampaignRepo) Get(ctx context.Context, id string) (*models.Campaign, error) {
	c, err := scanCampaign(r.pool.QueryRow(ctx, `SELECT `+campaignColumns+` FROM campaigns WHERE id = $1`, id))
	if err != nil {
		return nil, mapErr("get campaign", "campaign", id, err)
	}
	return c, nil
}

func (r *CampaignRepo) Update(ctx context.Context, id string, p models.CampaignPatch) (*models.Campaign, error) {
	var set setClause
	if p.BrandName != nil {
		set.add("brand_name", "", *p.BrandName)
	}
	if p.CampaignName != nil {
		set.add("campaign_name", "", *p.CampaignName)
	}
	if p.Description != nil {
		set.add("description", "", *p.Description)
	}
	if p.StartDate != nil {
		set.add("start_date", "::text::date", *p.StartDate)
	}
	if p.EndDate != nil {
		set.add("end_date", "::text::date", *p.EndDate)
	}
	if p.Budget != nil {
		set.add("budget", "", *p.Budget)
	}
	if p.Status != nil {
		set.add("status", "", *p.Status)
	}

	query := fmt.Sprintf(`UPDATE campaigns SET %s WHERE id = $%d RETURNING `+campaignColumns, set.String(), set.next())
	c, err := scanCampaign(r.pool.QueryRow(ctx, query, append(set.args, id)...))
	if err != nil {
		return nil, mapErr("update campaign", "campaign", id, err)
	}
	return c, nil
}

// Delete removes the campaign and everything referencing it in one transaction.
func (r *CampaignRepo) Delete(ctx context.Context, id string) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return apperr.Persistence("delete campaign", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	for _, q := range []string{
		`DELETE FROM campaign_influencers WHERE campaign_id = $1`,
		`DELETE FROM submissions WHERE campaign_id = $1`,
		`DELETE FROM payouts WHERE campaign_id = $1`,
	} {
		if _, err := tx.Exec(ctx, q, id); err != nil {
			return apperr.Persistence("delete campaign", err)
		}
	}

	tag, err := tx.Exec(ctx, `DELETE FROM campaigns WHERE id = $1`, id)
	if err != nil {
		return apperr.Persistence("delete campaign", err)
	}
	if tag.RowsAffected() == 0 {
		return apperr.NotFound("campaign", id)
	}

	return apperr.Persistence("delete campaign", tx.Commit(ctx))
}

func (r *CampaignRepo) List(ctx context.Context, f CampaignFilter) ([]models.Campaign, error) {
	var where whereClause
	where.eq("owner_user_id", f.OwnerUserID)
	where.eq("status", f.Status)

	query := `SELECT ` + campaignColumns + ` FROM campaigns` + where.String() + ` ORDER BY created_at DESC`
	rows, err := r.pool.Query(ctx, query, where.args...)
	if err != nil {
		return nil, apperr.Persistence("list campaigns", err)
	}
	defer rows.Close()

	campaigns := []models.Campaign{}
	for rows.Next() {
		c, err := scanCampaign(rows)
		if err != nil {
			return nil, apperr.Persistence("list campaigns", err)
		}
		campaigns = append(campaigns, *c)
	}
	return campaigns, apperr.Persistence("list campaigns", rows.Err())
}
