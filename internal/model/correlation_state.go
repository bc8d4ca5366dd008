package model

import "time"

// CorrelationState binds an OAuth provider callback to the flow that started it.
type CorrelationState struct {
	Token     string    `gorm:"type:varchar(256);primaryKey" json:"token"`
	SubjectID string    `gorm:"type:varchar(128);not null" json:"subject_id"`
	Purpose   string    `gorm:"type:varchar(64);not null" json:"purpose"`
	Provider  string    `gorm:"type:varchar(64);not null" json:"provider"`
	ExpiresAt time.Time `gorm:"not null;index" json:"expires_at"`
	CreatedAt time.Time `json:"created_at"`
}

func (CorrelationState) TableName() string { return "oauth_states" }

// ExpiredAt reports whether the state can no longer be redeemed at t.
func (s *CorrelationState) ExpiredAt(t time.Time) bool {
	return t.After(s.ExpiresAt)
}
