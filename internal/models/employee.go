package models

import (
	"time"

	"gorm.io/gorm"
)

type EmploymentStatus string

const (
	EmploymentActive     EmploymentStatus = "Active"
	EmploymentOnLeave    EmploymentStatus = "On Leave"
	EmploymentSuspended  EmploymentStatus = "Suspended"
	EmploymentTerminated EmploymentStatus = "Terminated"
)

type Employee struct {
	ID               uint64           `gorm:"primarykey" json:"id"`
	Email            string           `gorm:"type:varchar(255);uniqueIndex;not null" json:"email"`
	PasswordHash     string           `gorm:"type:varchar(255);not null" json:"-"`
	FullName         string           `gorm:"type:varchar(255);not null" json:"full_name"`
	Designation      string           `gorm:"type:varchar(50);not null" json:"designation"`
	Department       string           `gorm:"type:varchar(50)" json:"department"`
	SupervisorID     *uint64          `json:"supervisor_id"`
	EmploymentStatus EmploymentStatus `gorm:"type:varchar(20);not null;default:'Active'" json:"employment_status"`
	IsApproved       bool             `gorm:"not null;default:false" json:"is_approved"`
	CreatedAt        time.Time        `json:"created_at"`
	UpdatedAt        time.Time        `json:"updated_at"`
	DeletedAt        gorm.DeletedAt   `gorm:"index" json:"-"`

	// Relations
	Supervisor    *Employee `gorm:"foreignKey:SupervisorID" json:"supervisor,omitempty"`
	AssignedTasks []Task    `gorm:"foreignKey:AssignedEmployeeID" json:"-"`
	CreatedTasks  []Task    `gorm:"foreignKey:CreatedByID" json:"-"`
}
