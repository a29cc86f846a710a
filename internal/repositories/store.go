package repositories

import (
	"context"

	"github.com/influencehub/backend/internal/apperr"
	"github.com/influencehub/backend/internal/seed"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// PGStore is the Postgres-backed Store.
type PGStore struct {
	pool        *pgxpool.Pool
	campaigns   *CampaignRepo
	influencers *InfluencerRepo
	assignments *AssignmentRepo
	submissions *SubmissionRepo
	payouts     *PayoutRepo
	profiles    *ProfileRepo
}

func NewPGStore(pool *pgxpool.Pool) *PGStore {
	return &PGStore{
		pool:        pool,
		campaigns:   NewCampaignRepo(pool),
		influencers: NewInfluencerRepo(pool),
		assignments: NewAssignmentRepo(pool),
		submissions: NewSubmissionRepo(pool),
		payouts:     NewPayoutRepo(pool),
		profiles:    NewProfileRepo(pool),
	}
}

func (s *PGStore) Campaigns() CampaignRepository     { return s.campaigns }
func (s *PGStore) Influencers() InfluencerRepository { return s.influencers }
func (s *PGStore) Assignments() AssignmentRepository { return s.assignments }
func (s *PGStore) Submissions() SubmissionRepository { return s.submissions }
func (s *PGStore) Payouts() PayoutRepository         { return s.payouts }
func (s *PGStore) Profiles() ProfileRepository       { return s.profiles }

// LoadFixture writes f in one transaction unless the fixture owner already
// has campaigns. It reports whether anything was written.
func (s *PGStore) LoadFixture(ctx context.Context, f *seed.Fixture) (bool, error) {
	tx, err := s.pool.Begin(ctx)
	if err != nil {
		return false, apperr.Persistence("load fixture", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	var exists bool
	if err := tx.QueryRow(ctx, `SELECT EXISTS (SELECT 1 FROM campaigns WHERE owner_user_id = $1)`, f.Profile.ID).Scan(&exists); err != nil {
		return false, apperr.Persistence("load fixture", err)
	}
	if exists {
		return false, nil
	}

	batch := &pgx.Batch{}
	batch.Queue(`
		INSERT INTO profiles (id, full_name, timezone, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5)
		ON CONFLICT (id) DO NOTHING
	`, f.Profile.ID, f.Profile.FullName, f.Profile.Timezone, f.Profile.CreatedAt, f.Profile.UpdatedAt)
	for _, c := range f.Campaigns {
		batch.Queue(`
			INSERT INTO campaigns (id, owner_user_id, brand_name, campaign_name, description, start_date, end_date, budget, status, created_at, updated_at)
			VALUES ($1, $2, $3, $4, $5, $6::text::date, $7::text::date, $8, $9, $10, $11)
		`, c.ID, c.OwnerUserID, c.BrandName, c.CampaignName, c.Description, c.StartDate, c.EndDate, c.Budget, c.Status, c.CreatedAt, c.UpdatedAt)
	}
	for _, i := range f.Influencers {
		batch.Queue(`
			INSERT INTO influencers (id, owner_user_id, name, platform, handle, followers, engagement_rate, email, created_at, updated_at)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		`, i.ID, i.OwnerUserID, i.Name, i.Platform, i.Handle, i.Followers, i.EngagementRate, i.Email, i.CreatedAt, i.UpdatedAt)
	}
	for _, l := range f.Links {
		batch.Queue(`
			INSERT INTO campaign_influencers (id, campaign_id, influencer_id, role, agreed_fee, status, created_at, updated_at)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		`, l.ID, l.CampaignID, l.InfluencerID, l.Role, l.AgreedFee, l.Status, l.CreatedAt, l.UpdatedAt)
	}
	for _, sub := range f.Submissions {
		batch.Queue(`
			INSERT INTO submissions (id, campaign_id, influencer_id, title, caption, media_type, media_url, due_date, status, feedback, submitted_at, reviewed_at, created_at, updated_at)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8::text::date, $9, $10, $11, $12, $13, $14)
		`, sub.ID, sub.CampaignID, sub.InfluencerID, sub.Title, sub.Caption, sub.MediaType, sub.MediaURL, sub.DueDate,
			sub.Status, sub.Feedback, sub.SubmittedAt, sub.ReviewedAt, sub.CreatedAt, sub.UpdatedAt)
	}
	for _, p := range f.Payouts {
		batch.Queue(`
			INSERT INTO payouts (id, campaign_id, influencer_id, amount, currency, status, due_date, paid_at, created_at, updated_at)
			VALUES ($1, $2, $3, $4, $5, $6, $7::text::date, $8, $9, $10)
		`, p.ID, p.CampaignID, p.InfluencerID, p.Amount, p.Currency, p.Status, p.DueDate, p.PaidAt, p.CreatedAt, p.UpdatedAt)
	}

	if err := tx.SendBatch(ctx, batch).Close(); err != nil {
		return false, apperr.Persistence("load fixture", err)
	}
	if err := tx.Commit(ctx); err != nil {
		return false, apperr.Persistence("load fixture", err)
	}
	return true, nil
}
