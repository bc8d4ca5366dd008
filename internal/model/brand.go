package model

import "time"

type Brand struct {
	ID             string    `gorm:"type:varchar(128);primaryKey" json:"id"`
	OrganizationID string    `gorm:"type:varchar(128);not null;index" json:"organization_id"`
	Name           string    `gorm:"type:varchar(256)" json:"name"`
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`
}

func (Brand) TableName() string { return "brands" }
