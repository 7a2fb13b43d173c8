package models

import (
	"time"
)

type Campaign struct {
	ID     uint64 `gorm:"primarykey" json:"id"`
	Number int    `gorm:"uniqueIndex;not null" json:"number"`
	Name   string `gorm:"type:varchar(100);not null" json:"name"`
	UserID uint64 `gorm:"not null;index" json:"user_id"`

	StartDate *time.Time `gorm:"type:date" json:"start_date"`
	EndDate   *time.Time `gorm:"type:date" json:"end_date"`

	// TotalHours is derived: it always equals the sum of this campaign's
	// work report contributions (hours + minutes/60) and is recomputed
	// whenever a report is recorded.
	TotalHours float64 `gorm:"not null;default:0" json:"total_hours"`

	CreatedAt time.Time `json:"created_at"`

	// Relations
	User        User         `gorm:"foreignKey:UserID" json:"user,omitempty"`
	WorkReports []WorkReport `gorm:"foreignKey:CampaignID" json:"work_reports,omitempty"`
}
