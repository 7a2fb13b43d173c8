package models

import (
	"time"
)

// WorkReport is an immutable log entry; rows are never updated or
// deleted except by campaign-delete cascade.
type WorkReport struct {
	ID         uint64  `gorm:"primarykey" json:"id"`
	Hours      float64 `gorm:"not null" json:"hours"`
	Minutes    float64 `gorm:"not null;default:0" json:"minutes"`
	CampaignID uint64  `gorm:"not null;index" json:"campaign_id"`

	CreatedAt time.Time `json:"created_at"`

	// Relations
	Campaign Campaign `gorm:"foreignKey:CampaignID" json:"campaign,omitempty"`
}
