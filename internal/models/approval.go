package models

import (
	"time"
)

type ApprovalStatus string

const (
	ApprovalStatusPending    ApprovalStatus = "Pending"
	ApprovalStatusApproved   ApprovalStatus = "Approved"
	ApprovalStatusRejected   ApprovalStatus = "Rejected"
	ApprovalStatusNoResponse ApprovalStatus = "NO_RESPONSE"
)

// Approval is one link in a task's approval chain. ApproverLevel snapshots
// the hierarchy tier the record was routed to; an escalation closes the
// current link as NO_RESPONSE and opens the next one a level up.
type Approval struct {
	ID            uint64         `gorm:"primarykey" json:"id"`
	TaskID        uint64         `gorm:"not null;index" json:"task_id"`
	ApproverID    *uint64        `json:"approver_id"`
	ApproverLevel int            `gorm:"not null" json:"approver_level"`
	Status        ApprovalStatus `gorm:"type:varchar(20);not null;default:'Pending';index" json:"status"`
	Notes         string         `gorm:"type:text" json:"notes"`
	ApprovedAt    *time.Time     `json:"approved_at"`
	SLADueDate    time.Time      `gorm:"not null" json:"sla_due_date"`
	EscalatedAt   *time.Time     `json:"escalated_at"`
	CreatedAt     time.Time      `json:"created_at"`
	UpdatedAt     time.Time      `json:"updated_at"`

	// Relations
	Task     Task      `gorm:"foreignKey:TaskID" json:"-"`
	Approver *Employee `gorm:"foreignKey:ApproverID" json:"approver,omitempty"`
}
