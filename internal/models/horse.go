package models

import (
	"time"

	"gorm.io/gorm"
)

type Horse struct {
	ID              uint64         `gorm:"primarykey" json:"id"`
	Name            string         `gorm:"type:varchar(255);not null" json:"name"`
	Breed           string         `gorm:"type:varchar(100)" json:"breed"`
	Age             int            `json:"age"`
	Stall           string         `gorm:"type:varchar(50)" json:"stall"`
	HealthStatus    string         `gorm:"type:varchar(100);default:'Healthy'" json:"health_status"`
	Notes           string         `gorm:"type:text" json:"notes"`
	AssignedGroomID *uint64        `json:"assigned_groom_id"`
	CreatedAt       time.Time      `json:"created_at"`
	UpdatedAt       time.Time      `json:"updated_at"`
	DeletedAt       gorm.DeletedAt `gorm:"index" json:"-"`

	// Relations
	AssignedGroom *Employee `gorm:"foreignKey:AssignedGroomID" json:"assigned_groom,omitempty"`
	Tasks         []Task    `gorm:"foreignKey:HorseID" json:"-"`
}
