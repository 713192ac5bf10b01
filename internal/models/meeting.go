package models

import (
	"time"

	"gorm.io/gorm"
)

// Meeting announces a staff meeting. An empty Department addresses all staff.
type Meeting struct {
	ID            uint64         `gorm:"primarykey" json:"id"`
	Title         string         `gorm:"type:varchar(255);not null" json:"title"`
	Agenda        string         `gorm:"type:text" json:"agenda"`
	Location      string         `gorm:"type:varchar(255)" json:"location"`
	Department    string         `gorm:"type:varchar(50)" json:"department"`
	ScheduledTime time.Time      `gorm:"not null" json:"scheduled_time"`
	CreatedByID   uint64         `gorm:"not null" json:"created_by_id"`
	CreatedAt     time.Time      `json:"created_at"`
	UpdatedAt     time.Time      `json:"updated_at"`
	DeletedAt     gorm.DeletedAt `gorm:"index" json:"-"`

	// Relations
	CreatedBy Employee `gorm:"foreignKey:CreatedByID" json:"created_by,omitempty"`
}
