package models

import (
	"time"

	"gorm.io/gorm"
)

type FineStatus string

const (
	FineStatusPending FineStatus = "Pending"
	FineStatusPaid    FineStatus = "Paid"
	FineStatusWaived  FineStatus = "Waived"
)

type Fine struct {
	ID         uint64         `gorm:"primarykey" json:"id"`
	EmployeeID uint64         `gorm:"not null;index" json:"employee_id"`
	IssuedByID uint64         `gorm:"not null" json:"issued_by_id"`
	Amount     float64        `gorm:"not null" json:"amount"`
	Reason     string         `gorm:"type:text;not null" json:"reason"`
	Status     FineStatus     `gorm:"type:varchar(10);not null;default:'Pending'" json:"status"`
	CreatedAt  time.Time      `json:"created_at"`
	UpdatedAt  time.Time      `json:"updated_at"`
	DeletedAt  gorm.DeletedAt `gorm:"index" json:"-"`

	// Relations
	Employee Employee `gorm:"foreignKey:EmployeeID" json:"employee,omitempty"`
	IssuedBy Employee `gorm:"foreignKey:IssuedByID" json:"issued_by,omitempty"`
}
