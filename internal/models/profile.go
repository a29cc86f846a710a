package models

import "time"

// Profile is keyed by owner identity.
type Profile struct {
	ID        string    `json:"id"`
	FullName  *string   `json:"full_name"`
	Timezone  *string   `json:"timezone"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

type ProfileInput struct {
	ID       string  `json:"id"`
	FullName *string `json:"full_name,omitempty"`
	Timezone *string `json:"timezone,omitempty"`
}

// Merge copies the non-nil input fields onto p.
func (in ProfileInput) Merge(p *Profile) {
	if in.FullName != nil {
		p.FullName = in.FullName
	}
	if in.Timezone != nil {
		p.Timezone = in.Timezone
	}
}
