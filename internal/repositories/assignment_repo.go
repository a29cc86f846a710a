package repositories

import (
	"context"
	"errors"

	"github.com/influencehub/backend/internal/apperr"
	"github.com/influencehub/backend/internal/models"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

const assignmentColumns = `id, campaign_id, influencer_id, role, agreed_fee::float8, status, created_at, updated_at`

type AssignmentRepo struct {
	pool *pgxpool.Pool
}

func NewAssignmentRepo(pool *pgxpool.Pool) *AssignmentRepo {
	return &AssignmentRepo{pool: pool}
}

func scanAssignment(row pgx.Row) (*models.CampaignInfluencer, error) {
	var l models.CampaignInfluencer
	err := row.Scan(&l.ID, &l.CampaignID, &l.InfluencerID, &l.Role, &l.AgreedFee, &l.Status, &l.CreatedAt, &l.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &l, nil
}

func (r *AssignmentRepo) Get(ctx context.Context, id string) (*models.CampaignInfluencer, error) {
	l, err := scanAssignment(r.pool.QueryRow(ctx, `SELECT `+assignmentColumns+` FROM campaign_influencers WHERE id = $1`, id))
	if err != nil {
		return nil, mapErr("get assignment", "assignment", id, err)
	}
	return l, nil
}

// Assign inserts an active link unless the pair is already linked, in which
// case the stored link wins and role/fee of the request are ignored.
func (r *AssignmentRepo) Assign(ctx context.Context, in models.AssignInput) (*models.CampaignInfluencer, bool, error) {
	l, err := scanAssignment(r.pool.QueryRow(ctx, `
		INSERT INTO campaign_influencers (campaign_id, influencer_id, role, agreed_fee, status)
		VALUES ($1, $2, $3, $4, $5)
		ON CONFLICT (campaign_id, influencer_id) DO NOTHING
		RETURNING `+assignmentColumns,
		in.CampaignID, in.InfluencerID, in.Role, in.AgreedFee, models.AssignmentStatusActive,
	))
	if err == nil {
		return l, true, nil
	}
	if !errors.Is(err, pgx.ErrNoRows) {
		return nil, false, apperr.Persistence("assign influencer", err)
	}

	l, err = scanAssignment(r.pool.QueryRow(ctx, `
		SELECT `+assignmentColumns+` FROM campaign_influencers
		WHERE campaign_id = $1 AND influencer_id = $2
	`, in.CampaignID, in.InfluencerID))
	if err != nil {
		return nil, false, apperr.Persistence("assign influencer", err)
	}
	return l, false, nil
}

func (r *AssignmentRepo) Delete(ctx context.Context, id string) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM campaign_influencers WHERE id = $1`, id)
	if err != nil {
		return apperr.Persistence("delete assignment", err)
	}
	if tag.RowsAffected() == 0 {
		return apperr.NotFound("assignment", id)
	}
	return nil
}

func (r *AssignmentRepo) List(ctx context.Context, f AssignmentFilter) ([]models.CampaignInfluencerDetails, error) {
	var where whereClause
	where.eq("ci.campaign_id", f.CampaignID)
	where.eq("ci.influencer_id", f.InfluencerID)

	query := `
		SELECT ci.id, ci.campaign_id, ci.influencer_id, ci.role, ci.agreed_fee::float8, ci.status, ci.created_at, ci.updated_at,
			c.id, c.campaign_name, c.brand_name, c.status,
			i.id, i.name, i.handle, i.platform, i.followers, i.engagement_rate::float8
		FROM campaign_influencers ci
		LEFT JOIN campaigns c ON c.id = ci.campaign_id
		LEFT JOIN influencers i ON i.id = ci.influencer_id` + where.String() + `
		ORDER BY ci.created_at DESC`

	rows, err := r.pool.Query(ctx, query, where.args...)
	if err != nil {
		return nil, apperr.Persistence("list assignments", err)
	}
	defer rows.Close()

	links := []models.CampaignInfluencerDetails{}
	for rows.Next() {
		var (
			d                              models.CampaignInfluencerDetails
			cID, cName, cBrand, cStatus    *string
			iID, iName, iHandle, iPlatform *string
			iFollowers                     *int64
			iEngagement                    *float64
		)
		err := rows.Scan(&d.ID, &d.CampaignID, &d.InfluencerID, &d.Role, &d.AgreedFee, &d.Status, &d.CreatedAt, &d.UpdatedAt,
			&cID, &cName, &cBrand, &cStatus,
			&iID, &iName, &iHandle, &iPlatform, &iFollowers, &iEngagement)
		if err != nil {
			return nil, apperr.Persistence("list assignments", err)
		}
		if f.Expand.Has(ExpandCampaign) {
			d.Campaign = campaignRef(cID, cName, cBrand, cStatus)
		}
		if f.Expand.Has(ExpandInfluencer) {
			d.Influencer = influencerRef(iID, iName, iHandle, iPlatform)
			if d.Influencer != nil {
				d.Influencer.Followers = iFollowers
				d.Influencer.EngagementRate = iEngagement
			}
		}
		links = append(links, d)
	}
	return links, apperr.Persistence("list assignments", rows.Err())
}
