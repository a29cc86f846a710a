package dto

type AuthTokenRequest struct {
	OwnerID string `json:"owner_id"`
}

type UpdateSubmissionStatusRequest struct {
	Status   string  `json:"status"`
	Feedback *string `json:"feedback,omitempty"`
}

type AssignInfluencerRequest struct {
	InfluencerID string   `json:"influencer_id"`
	Role         *string  `json:"role,omitempty"`
	AgreedFee    *float64 `json:"agreed_fee,omitempty"`
}
