// Package memory is a process-local Store. It scopes every campaign and
// influencer to one fixed owner and seeds itself once, on first access.
package memory

import (
	"slices"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/influencehub/backend/internal/models"
	"github.com/influencehub/backend/internal/repositories"
	"github.com/influencehub/backend/internal/seed"
)

type Store struct {
	mu    sync.RWMutex
	once  sync.Once
	clock func() time.Time
	owner string

	initial *seed.Fixture
	noSeed  bool

	profiles    []models.Profile
	campaigns   []models.Campaign
	influencers []models.Influencer
	links       []models.CampaignInfluencer
	submissions []models.Submission
	payouts     []models.Payout
}

type Option func(*Store)

func WithClock(clock func() time.Time) Option {
	return func(s *Store) { s.clock = clock }
}

func WithOwner(owner string) Option {
	return func(s *Store) { s.owner = owner }
}

// WithInitialState replaces the demo dataset with f.
func WithInitialState(f *seed.Fixture) Option {
	return func(s *Store) { s.initial = f }
}

// WithoutSeed starts the store empty.
func WithoutSeed() Option {
	return func(s *Store) { s.noSeed = true }
}

func New(opts ...Option) *Store {
	s := &Store{clock: time.Now, owner: seed.DefaultOwner}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *Store) Owner() string { return s.owner }

// Seed loads the initial state. Only the first call has any effect; every
// accessor calls it, so explicit use is optional.
func (s *Store) Seed() {
	s.once.Do(func() {
		if s.noSeed {
			return
		}
		f := s.initial
		if f == nil {
			f = seed.Build(s.owner, s.clock())
		}

		s.mu.Lock()
		defer s.mu.Unlock()
		s.profiles = append(s.profiles, f.Profile)
		s.campaigns = append(s.campaigns, f.Campaigns...)
		s.influencers = append(s.influencers, f.Influencers...)
		s.links = append(s.links, f.Links...)
		s.submissions = append(s.submissions, f.Submissions...)
		s.payouts = append(s.payouts, f.Payouts...)
	})
}

func (s *Store) read() func() {
	s.Seed()
	s.mu.RLock()
	return s.mu.RUnlock
}

func (s *Store) write() func() {
	s.Seed()
	s.mu.Lock()
	return s.mu.Unlock
}

func (s *Store) now() time.Time {
	return s.clock()
}

func newID() string {
	return uuid.NewString()
}

// newestFirst sorts by created_at descending, keeping insertion order for ties.
func newestFirst[T any](items []T, createdAt func(T) time.Time) []T {
	slices.SortStableFunc(items, func(a, b T) int {
		return createdAt(b).Compare(createdAt(a))
	})
	return items
}

func matches(filter *string, value string) bool {
	return filter == nil || *filter == value
}

// Lookups below expect the caller to hold the lock.

func (s *Store) campaignByID(id string) *models.Campaign {
	for i := range s.campaigns {
		if s.campaigns[i].ID == id {
			return &s.campaigns[i]
		}
	}
	return nil
}

func (s *Store) influencerByID(id string) *models.Influencer {
	for i := range s.influencers {
		if s.influencers[i].ID == id {
			return &s.influencers[i]
		}
	}
	return nil
}

func (s *Store) campaignRef(id string, expand repositories.Expand) *models.CampaignRef {
	if !expand.Has(repositories.ExpandCampaign) {
		return nil
	}
	return models.NewCampaignRef(s.campaignByID(id))
}

func (s *Store) influencerRef(id string, expand repositories.Expand) *models.InfluencerRef {
	if !expand.Has(repositories.ExpandInfluencer) {
		return nil
	}
	return models.NewInfluencerRef(s.influencerByID(id))
}

// ownedCampaign reports whether campaign id belongs to owner.
func (s *Store) ownedCampaign(owner *string, campaignID string) bool {
	if owner == nil {
		return true
	}
	c := s.campaignByID(campaignID)
	return c != nil && c.OwnerUserID == *owner
}

// cascade drops every link, submission and payout for which drop is true.
func (s *Store) cascade(drop func(campaignID, influencerID string) bool) {
	s.links = slices.DeleteFunc(s.links, func(l models.CampaignInfluencer) bool {
		return drop(l.CampaignID, l.InfluencerID)
	})
	s.submissions = slices.DeleteFunc(s.submissions, func(sub models.Submission) bool {
		return drop(sub.CampaignID, sub.InfluencerID)
	})
	s.payouts = slices.DeleteFunc(s.payouts, func(p models.Payout) bool {
		return drop(p.CampaignID, p.InfluencerID)
	})
}

func (s *Store) Campaigns() repositories.CampaignRepository     { return campaignRepo{s} }
func (s *Store) Influencers() repositories.InfluencerRepository { return influencerRepo{s} }
func (s *Store) Assignments() repositories.AssignmentRepository { return assignmentRepo{s} }
func (s *Store) Submissions() repositories.SubmissionRepository { return submissionRepo{s} }
func (s *Store) Payouts() repositories.PayoutRepository         { return payoutRepo{s} }
func (s *Store) Profiles() repositories.ProfileRepository       { return profileRepo{s} }
