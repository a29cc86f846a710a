package repositories

import (
	"context"

	"github.com/influencehub/backend/internal/apperr"
	"github.com/influencehub/backend/internal/models"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

const submissionColumns = `s.id, s.campaign_id, s.influencer_id, s.title, s.caption, s.media_type, s.media_url,
	s.due_date::text, s.status, s.feedback, s.submitted_at, s.reviewed_at, s.created_at, s.updated_at`

const submissionSelect = `SELECT ` + submissionColumns + `,
		c.id, c.campaign_name, c.brand_name, i.id, i.name, i.handle, i.platform
	FROM submissions s
	LEFT JOIN campaigns c ON c.id = s.campaign_id
	LEFT JOIN influencers i ON i.id = s.influencer_id`

type SubmissionRepo struct {
	pool *pgxpool.Pool
}

func NewSubmissionRepo(pool *pgxpool.Pool) *SubmissionRepo {
	return &SubmissionRepo{pool: pool}
}

func scanSubmission(row pgx.Row, s *models.Submission, extra ...any) error {
	dest := []any{&s.ID, &s.CampaignID, &s.InfluencerID, &s.Title, &s.Caption, &s.MediaType, &s.MediaURL,
		&s.DueDate, &s.Status, &s.Feedback, &s.SubmittedAt, &s.ReviewedAt, &s.CreatedAt, &s.UpdatedAt}
	return row.Scan(append(dest, extra...)...)
}

func scanSubmissionItem(row pgx.Row, expand Expand) (*models.SubmissionListItem, error) {
	var (
		item                           models.SubmissionListItem
		cID, cName, cBrand             *string
		iID, iName, iHandle, iPlatform *string
	)
	if err := scanSubmission(row, &item.Submission, &cID, &cName, &cBrand, &iID, &iName, &iHandle, &iPlatform); err != nil {
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

func (r *SubmissionRepo) Insert(ctx context.Context, s *models.Submission) error {
	err := r.pool.QueryRow(ctx, `
		INSERT INTO submissions (campaign_id, influencer_id, title, caption, media_type, media_url, due_date, status, feedback, submitted_at, reviewed_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7::text::date, $8, $9, $10, $11)
		RETURNING id, created_at, updated_at
	`, s.CampaignID, s.InfluencerID, s.Title, s.Caption, s.MediaType, s.MediaURL,
		s.DueDate, s.Status, s.Feedback, s.SubmittedAt, s.ReviewedAt,
	).Scan(&s.ID, &s.CreatedAt, &s.UpdatedAt)
	return apperr.Persistence("insert submission", err)
}

func (r *SubmissionRepo) Get(ctx context.Context, id string, expand Expand) (*models.SubmissionListItem, error) {
	item, err := scanSubmissionItem(r.pool.QueryRow(ctx, submissionSelect+` WHERE s.id = $1`, id), expand)
	if err != nil {
		return nil, mapErr("get submission", "submission", id, err)
	}
	return item, nil
}

// Review writes status, feedback and reviewed_at in one statement.
func (r *SubmissionRepo) Review(ctx context.Context, id string, u models.ReviewUpdate) (*models.Submission, error) {
	var s models.Submission
	err := scanSubmission(r.pool.QueryRow(ctx, `
		UPDATE submissions s SET status = $1, feedback = $2, reviewed_at = $3, updated_at = $3
		WHERE s.id = $4
		RETURNING `+submissionColumns,
		u.Status, u.Feedback, u.ReviewedAt, id,
	), &s)
	if err != nil {
		return nil, mapErr("review submission", "submission", id, err)
	}
	return &s, nil
}

func (r *SubmissionRepo) Delete(ctx context.Context, id string) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM submissions WHERE id = $1`, id)
	if err != nil {
		return apperr.Persistence("delete submission", err)
	}
	if tag.RowsAffected() == 0 {
		return apperr.NotFound("submission", id)
	}
	return nil
}

func (r *SubmissionRepo) List(ctx context.Context, f SubmissionFilter) ([]models.SubmissionListItem, error) {
	var where whereClause
	where.eq("c.owner_user_id", f.OwnerUserID)
	where.eq("s.status", f.Status)
	where.eq("s.campaign_id", f.CampaignID)
	where.eq("s.influencer_id", f.InfluencerID)

	rows, err := r.pool.Query(ctx, submissionSelect+where.String()+` ORDER BY s.created_at DESC`, where.args...)
	if err != nil {
		return nil, apperr.Persistence("list submissions", err)
	}
	defer rows.Close()

	items := []models.SubmissionListItem{}
	for rows.Next() {
		item, err := scanSubmissionItem(rows, f.Expand)
		if err != nil {
			return nil, apperr.Persistence("list submissions", err)
		}
		items = append(items, *item)
	}
	return items, apperr.Persistence("list submissions", rows.Err())
}
