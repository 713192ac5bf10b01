package models

import (
	"time"

	"gorm.io/gorm"
)

type TaskStatus string

const (
	TaskStatusPending       TaskStatus = "Pending"
	TaskStatusInProgress    TaskStatus = "In Progress"
	TaskStatusPendingReview TaskStatus = "Pending Review"
	TaskStatusApproved      TaskStatus = "Approved"
	TaskStatusRejected      TaskStatus = "Rejected"
	TaskStatusMissed        TaskStatus = "Missed"
	TaskStatusCancelled     TaskStatus = "Cancelled"
)

// IsTerminal reports whether no further transitions are allowed from s.
func (s TaskStatus) IsTerminal() bool {
	switch s {
	case TaskStatusApproved, TaskStatusRejected, TaskStatusCancelled, TaskStatusMissed:
		return true
	}
	return false
}

type TaskType string

const (
	TaskTypeDaily      TaskType = "Daily"
	TaskTypeWeekly     TaskType = "Weekly"
	TaskTypeEventBased TaskType = "Event-based"
)

type TaskPriority string

const (
	TaskPriorityLow    TaskPriority = "Low"
	TaskPriorityMedium TaskPriority = "Medium"
	TaskPriorityHigh   TaskPriority = "High"
	TaskPriorityUrgent TaskPriority = "Urgent"
)

type Task struct {
	ID                 uint64         `gorm:"primarykey" json:"id"`
	Name               string         `gorm:"type:varchar(255);not null" json:"name"`
	Description        string         `gorm:"type:text" json:"description"`
	Type               TaskType       `gorm:"type:varchar(20);not null" json:"type"`
	Status             TaskStatus     `gorm:"type:varchar(20);not null;default:'Pending';index" json:"status"`
	Priority           TaskPriority   `gorm:"type:varchar(10);not null;default:'Medium'" json:"priority"`
	HorseID            uint64         `gorm:"not null;index" json:"horse_id"`
	AssignedEmployeeID uint64         `gorm:"not null;index" json:"assigned_employee_id"`
	CreatedByID        uint64         `gorm:"not null;index" json:"created_by_id"`
	ScheduledTime      time.Time      `gorm:"not null" json:"scheduled_time"`
	RequiredProof      bool           `gorm:"not null;default:false" json:"required_proof"`
	ProofImage         string         `gorm:"type:text" json:"proof_image,omitempty"`
	CompletionNotes    string         `gorm:"type:text" json:"completion_notes,omitempty"`
	SubmittedAt        *time.Time     `json:"submitted_at"`
	CompletedTime      *time.Time     `json:"completed_time"`
	CreatedAt          time.Time      `json:"created_at"`
	UpdatedAt          time.Time      `json:"updated_at"`
	DeletedAt          gorm.DeletedAt `gorm:"index" json:"-"`

	// Relations
	Horse            Horse      `gorm:"foreignKey:HorseID" json:"horse,omitempty"`
	AssignedEmployee Employee   `gorm:"foreignKey:AssignedEmployeeID" json:"assigned_employee,omitempty"`
	CreatedBy        Employee   `gorm:"foreignKey:CreatedByID" json:"created_by,omitempty"`
	Approvals        []Approval `gorm:"foreignKey:TaskID" json:"approvals,omitempty"`
}
