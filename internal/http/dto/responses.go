package dto

import "github.com/influencehub/backend/internal/models"

type AuthResponse struct {
	Token   string `json:"token"`
	OwnerID string `json:"owner_id"`
}

// ErrorResponse carries the typed failure reason next to the message.
type ErrorResponse struct {
	Error     string `json:"error"`
	Reason    string `json:"reason,omitempty"`
	Field     string `json:"field,omitempty"`
	RequestID string `json:"request_id,omitempty"`
}

type SuccessResponse struct {
	OK   bool `json:"ok"`
	Data any  `json:"data,omitempty"`
}

type DashboardResponse struct {
	models.Dashboard
	Counts models.DashboardCounts `json:"counts"`
}

type AssignResponse struct {
	Link    *models.CampaignInfluencer `json:"link"`
	Created bool                       `json:"created"`
}
