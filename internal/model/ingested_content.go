package model

import "time"

// IngestedContent is one provider item, unique per (platform, external id).
type IngestedContent struct {
	Platform       string    `gorm:"type:varchar(32);primaryKey" json:"platform"`
	ExternalID     string    `gorm:"type:varchar(256);primaryKey" json:"external_id"`
	OrganizationID *string   `gorm:"type:varchar(128);index" json:"organization_id,omitempty"`
	Payload        Payload   `gorm:"type:jsonb;not null" json:"payload"`
	FetchedAt      time.Time `gorm:"not null" json:"fetched_at"`
}

func (IngestedContent) TableName() string { return "ingested_content" }
