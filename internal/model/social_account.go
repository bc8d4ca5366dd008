package model

import "time"

type AccountStatus string

const (
	AccountStatusActive       AccountStatus = "active"
	AccountStatusExpired      AccountStatus = "expired"
	AccountStatusRevoked      AccountStatus = "revoked"
	AccountStatusDisconnected AccountStatus = "disconnected"
)

// SocialAccount is one OAuth-connected account on one platform.
// Tokens never leave the service in JSON.
type SocialAccount struct {
	ID                string        `gorm:"type:varchar(128);primaryKey" json:"id"`
	OrganizationID    string        `gorm:"type:varchar(128);not null;index" json:"organization_id"`
	BrandID           string        `gorm:"type:varchar(128)" json:"brand_id,omitempty"`
	Platform          string        `gorm:"type:varchar(32);not null" json:"platform"`
	ExternalAccountID string        `gorm:"type:varchar(256);not null" json:"external_account_id"`
	AccessToken       string        `gorm:"type:text;not null" json:"-"`
	RefreshToken      *string       `gorm:"type:text" json:"-"`
	TokenExpiresAt    *time.Time    `json:"token_expires_at,omitempty"`
	Status            AccountStatus `gorm:"type:varchar(32);not null" json:"status"`
	IsConnected       bool          `gorm:"not null" json:"is_connected"`
	Username          string        `gorm:"type:varchar(256)" json:"username,omitempty"`
	DisplayName       string        `gorm:"type:varchar(256)" json:"display_name,omitempty"`
	AvatarURL         string        `gorm:"type:text" json:"avatar_url,omitempty"`
	LastSyncAt        *time.Time    `json:"last_sync_at,omitempty"`
	FollowerCount     *int64        `json:"follower_count,omitempty"`
	CreatedAt         time.Time     `json:"created_at"`
	UpdatedAt         time.Time     `json:"updated_at"`
}

func (SocialAccount) TableName() string { return "social_accounts" }

// EligibleAt reports whether the account holds a usable access token at t.
func (a *SocialAccount) EligibleAt(t time.Time) bool {
	if a.AccessToken == "" {
		return false
	}
	return a.TokenExpiresAt == nil || a.TokenExpiresAt.After(t)
}

// EligibleAccount is the projection handed to content fetchers.
type EligibleAccount struct {
	ID                string `json:"id"`
	OrganizationID    string `json:"organization_id"`
	ExternalAccountID string `json:"external_account_id"`
	AccessToken       string `json:"-"`
}
