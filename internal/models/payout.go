package models

import "time"

// Payout statuses
const (
	PayoutStatusUnpaid = "unpaid"
	PayoutStatusPaid   = "paid"
)

const DefaultCurrency = "USD"

// Valid payout transitions: from -> []to. Settlement is one-way.
var ValidPayoutTransitions = map[string][]string{
	PayoutStatusUnpaid: {PayoutStatusPaid},
	PayoutStatusPaid:   {},
}

func IsValidPayoutTransition(from, to string) bool {
	allowed, ok := ValidPayoutTransitions[from]
	if !ok {
		return false
	}
	for _, s := range allowed {
		if s == to {
			return true
		}
	}
	return false
}

// Payout invariant: PaidAt is nil iff Status is unpaid.
type Payout struct {
	ID           string     `json:"id"`
	CampaignID   string     `json:"campaign_id"`
	InfluencerID string     `json:"influencer_id"`
	Amount       float64    `json:"amount"`
	Currency     string     `json:"currency"`
	Status       string     `json:"status"`
	DueDate      string     `json:"due_date"` // YYYY-MM-DD
	PaidAt       *time.Time `json:"paid_at"`
	CreatedAt    time.Time  `json:"created_at"`
	UpdatedAt    time.Time  `json:"updated_at"`
}

// MarkPaid settles an unpaid payout. It reports false when the payout
// was already settled and leaves it unchanged.
func (p *Payout) MarkPaid(at time.Time) bool {
	if !IsValidPayoutTransition(p.Status, PayoutStatusPaid) {
		return false
	}
	paid := at
	p.Status = PayoutStatusPaid
	p.PaidAt = &paid
	p.UpdatedAt = at
	return true
}
