package models

import (
	"time"

	"gorm.io/gorm"
)

type Inspection struct {
	ID          uint64         `gorm:"primarykey" json:"id"`
	InspectorID uint64         `gorm:"not null" json:"inspector_id"`
	HorseID     *uint64        `gorm:"index" json:"horse_id"`
	Type        string         `gorm:"type:varchar(100);not null" json:"type"`
	Score       int            `gorm:"not null" json:"score"`
	Notes       string         `gorm:"type:text" json:"notes"`
	Date        time.Time      `gorm:"not null" json:"date"`
	CreatedAt   time.Time      `json:"created_at"`
	UpdatedAt   time.Time      `json:"updated_at"`
	DeletedAt   gorm.DeletedAt `gorm:"index" json:"-"`

	// Relations
	Inspector Employee `gorm:"foreignKey:InspectorID" json:"inspector,omitempty"`
	Horse     *Horse   `gorm:"foreignKey:HorseID" json:"horse,omitempty"`
}
