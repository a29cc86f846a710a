package repositories

import (
	"context"
	"errors"
	"time"

	"github.com/influencehub/backend/internal/apperr"
	"github.com/influencehub/backend/internal/models"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

const payoutColumns = `p.id, p.campaign_id, p.influencer_id, p.amount::float8, p.currency, p.status,
	p.due_date::text, p.paid_at, p.created_at, p.updated_at`

const payoutSelect = `SELECT ` + payoutColumns + `,
		c.id, c.campaign_name, c.brand_name, i.id, i.name, i.handle, i.platform
	FROM payouts p
	LEFT JOIN campaigns c ON c.id = p.campaign_id
	LEFT JOIN influencers i ON i.id = p.influencer_id`

type PayoutRepo struct {
	pool *pgxpool.Pool
}

func NewPayoutRepo(pool *pgxpool.Pool) *PayoutRepo {
	return &PayoutRepo{pool: pool}
}

func scanPayout(row pgx.Row, p *models.Payout, extra ...any) error {
	dest := []any{&p.ID, &p.CampaignID, &p.InfluencerID, &p.Amount, &p.Currency, &p.Status,
		&p.DueDate, &p.PaidAt, &p.CreatedAt, &p.UpdatedAt}
	return row.Scan(append(dest, extra...)...)
}

func scanPayoutItem(row pgx.Row, expand Expand) (*models.PayoutListItem, error) {
	var (
		item                           models.PayoutListItem
		cID, cName, cBrand             *string
		iID, iName, iHandle, iPlatform *string
	)
	if err := scanPayout(row, &item.Payout, &cID, &cName, &cBrand, &iID, &iName, &iHandle, &iPlatform); err != nil {
		return nil, err
	}
	if expand.Has(ExpandCampaign) {
		item.Campaign = campaignRef(cID, cName, cBrand, nil)
	}
	if expand.Has(ExpandInfluencer) {
		item.Influencer = influencerRef(iID, iName, iHandle, iPlatform)
	}
	return &item, nil
}

func (r *PayoutRepo) Insert(ctx context.Context, p *models.Payout) error {
	if p.Currency == "" {
		p.Currency = models.DefaultCurrency
	}
	err := r.pool.QueryRow(ctx, `
		INSERT INTO payouts (campaign_id, influencer_id, amount, currency, status, due_date, paid_at)
		VALUES ($1, $2, $3, $4, $5, $6::text::date, $7)
		RETURNING id, created_at, updated_at
	`, p.CampaignID, p.InfluencerID, p.Amount, p.Currency, p.Status, p.DueDate, p.PaidAt,
	).Scan(&p.ID, &p.CreatedAt, &p.UpdatedAt)
	return apperr.Persistence("insert payout", err)
}

func (r *PayoutRepo) Get(ctx context.Context, id string, expand Expand) (*models.PayoutListItem, error) {
	item, err := scanPayoutItem(r.pool.QueryRow(ctx, payoutSelect+` WHERE p.id = $1`, id), expand)
	if err != nil {
		return nil, mapErr("get payout", "payout", id, err)
	}
	return item, nil
}

func (r *PayoutRepo) MarkPaid(ctx context.Context, id string, at time.Time) (*models.Payout, error) {
	var p models.Payout
	err := scanPayout(r.pool.QueryRow(ctx, `
		UPDATE payouts p SET status = $1, paid_at = $2, updated_at = $2
		WHERE p.id = $3 AND p.status = $4
		RETURNING `+payoutColumns,
		models.PayoutStatusPaid, at, id, models.PayoutStatusUnpaid,
	), &p)
	if err == nil {
		return &p, nil
	}
	if !errors.Is(err, pgx.ErrNoRows) {
		return nil, apperr.Persistence("mark payout paid", err)
	}

	// Either missing or already settled.
	item, err := r.Get(ctx, id, ExpandNone)
	if err != nil {
		return nil, err
	}
	return &item.Payout, nil
}

func (r *PayoutRepo) Delete(ctx context.Context, id string) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM payouts WHERE id = $1`, id)
	if err != nil {
		return apperr.Persistence("delete payout", err)
	}
	if tag.RowsAffected() == 0 {
		return apperr.NotFound("payout", id)
	}
	return nil
}

func (r *PayoutRepo) List(ctx context.Context, f PayoutFilter) ([]models.PayoutListItem, error) {
	var where whereClause
	where.eq("c.owner_user_id", f.OwnerUserID)
	where.eq("p.status", f.Status)
	where.eq("p.campaign_id", f.CampaignID)
	where.eq("p.influencer_id", f.InfluencerID)

	rows, err := r.pool.Query(ctx, payoutSelect+where.String()+` ORDER BY p.due_date ASC, p.created_at DESC`, where.args...)
	if err != nil {
		return nil, apperr.Persistence("list payouts", err)
	}
	defer rows.Close()

	items := []models.PayoutListItem{}
	for rows.Next() {
		item, err := scanPayoutItem(rows, f.Expand)
		if err != nil {
			return nil, apperr.Persistence("list payouts", err)
		}
		items = append(items, *item)
	}
	return items, apperr.Persistence("list payouts", rows.Err())
}
