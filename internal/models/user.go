package models

import (
	"time"
)

type User struct {
	ID           uint64  `gorm:"primarykey" json:"id"`
	FirstName    string  `gorm:"type:varchar(50);not null" json:"first_name"`
	LastName     string  `gorm:"type:varchar(50);not null" json:"last_name"`
	Login        string  `gorm:"type:varchar(100);uniqueIndex;not null" json:"login"`
	Service      string  `gorm:"type:varchar(100)" json:"service"`
	PasswordHash string  `gorm:"type:varchar(255);not null" json:"-"`
	SupervisorID *uint64 `gorm:"index" json:"supervisor_id"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	// Relations
	Supervisor    *User      `gorm:"foreignKey:SupervisorID" json:"supervisor,omitempty"`
	DirectReports []User     `gorm:"foreignKey:SupervisorID" json:"-"`
	Campaigns     []Campaign `gorm:"foreignKey:UserID" json:"-"`
}
