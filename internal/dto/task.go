package dto

import (
	"time"

	"github.com/barnhand/stable-api/internal/models"
)

// TaskDTO represents a task in API responses
type TaskDTO struct {
	ID                 uint64              `json:"id"`
	Name               string              `json:"name"`
	Description        string              `json:"description"`
	Type               models.TaskType     `json:"type"`
	Status             models.TaskStatus   `json:"status"`
	Priority           models.TaskPriority `json:"priority"`
	HorseID            uint64              `json:"horse_id"`
	AssignedEmployeeID uint64              `json:"assigned_employee_id"`
	CreatedByID        uint64              `json:"created_by_id"`
	ScheduledTime      time.Time           `json:"scheduled_time"`
	RequiredProof      bool                `json:"required_proof"`
	ProofImage         string              `json:"proof_image,omitempty"`
	CompletionNotes    string              `json:"completion_notes,omitempty"`
	SubmittedAt        *time.Time          `json:"submitted_at"`
	CompletedTime      *time.Time          `json:"completed_time"`
	CreatedAt          time.Time           `json:"created_at"`
	UpdatedAt          time.Time           `json:"updated_at"`
	Horse              *HorseDTO           `json:"horse,omitempty"`
	AssignedEmployee   *EmployeeDTO        `json:"assigned_employee,omitempty"`
	CreatedBy          *EmployeeDTO        `json:"created_by,omitempty"`
	Approvals          []ApprovalDTO       `json:"approvals,omitempty"`
}

// HorseDTO represents a horse in API responses
type HorseDTO struct {
	ID           uint64 `json:"id"`
	Name         string `json:"name"`
	Breed        string `json:"breed"`
	Stall        string `json:"stall"`
	HealthStatus string `json:"health_status"`
}

// ApprovalDTO represents one link of a task's approval chain
type ApprovalDTO struct {
	ID            uint64                `json:"id"`
	TaskID        uint64                `json:"task_id"`
	ApproverID    *uint64               `json:"approver_id"`
	ApproverLevel int                   `json:"approver_level"`
	Status        models.ApprovalStatus `json:"status"`
	Notes         string                `json:"notes"`
	ApprovedAt    *time.Time            `json:"approved_at"`
	SLADueDate    time.Time             `json:"sla_due_date"`
	EscalatedAt   *time.Time            `json:"escalated_at"`
}

// ToHorseDTO converts a Horse model to HorseDTO
func ToHorseDTO(horse models.Horse) HorseDTO {
	return HorseDTO{
		ID:           horse.ID,
		Name:         horse.Name,
		Breed:        horse.Breed,
		Stall:        horse.Stall,
		HealthStatus: horse.HealthStatus,
	}
}

// ToApprovalDTO converts an Approval model to ApprovalDTO
func ToApprovalDTO(approval models.Approval) ApprovalDTO {
	return ApprovalDTO{
		ID:            approval.ID,
		TaskID:        approval.TaskID,
		ApproverID:    approval.ApproverID,
		ApproverLevel: approval.ApproverLevel,
		Status:        approval.Status,
		Notes:         approval.Notes,
		ApprovedAt:    approval.ApprovedAt,
		SLADueDate:    approval.SLADueDate,
		EscalatedAt:   approval.EscalatedAt,
	}
}

// ToApprovalDTOs converts a slice of Approval models
func ToApprovalDTOs(approvals []models.Approval) []ApprovalDTO {
	out := make([]ApprovalDTO, len(approvals))
	for i, a := range approvals {
		out[i] = ToApprovalDTO(a)
	}
	return out
}

// ToTaskDTO converts a Task model to TaskDTO
func ToTaskDTO(task models.Task) TaskDTO {
	dto := TaskDTO{
		ID:                 task.ID,
		Name:               task.Name,
		Description:        task.Description,
		Type:               task.Type,
		Status:             task.Status,
		Priority:           task.Priority,
		HorseID:            task.HorseID,
		AssignedEmployeeID: task.AssignedEmployeeID,
		CreatedByID:        task.CreatedByID,
		ScheduledTime:      task.ScheduledTime,
		RequiredProof:      task.RequiredProof,
		ProofImage:         task.ProofImage,
		CompletionNotes:    task.CompletionNotes,
		SubmittedAt:        task.SubmittedAt,
		CompletedTime:      task.CompletedTime,
		CreatedAt:          task.CreatedAt,
		UpdatedAt:          task.UpdatedAt,
	}

	// Include relations if preloaded
	if task.Horse.ID != 0 {
		horse := ToHorseDTO(task.Horse)
		dto.Horse = &horse
	}
	if task.AssignedEmployee.ID != 0 {
		assignee := ToEmployeeDTO(task.AssignedEmployee)
		dto.AssignedEmployee = &assignee
	}
	if task.CreatedBy.ID != 0 {
		creator := ToEmployeeDTO(task.CreatedBy)
		dto.CreatedBy = &creator
	}
	if len(task.Approvals) > 0 {
		dto.Approvals = ToApprovalDTOs(task.Approvals)
	}

	return dto
}

// ToTaskDTOs converts a slice of Task models
func ToTaskDTOs(tasks []models.Task) []TaskDTO {
	out := make([]TaskDTO, len(tasks))
	for i, t := range tasks {
		out[i] = ToTaskDTO(t)
	}
	return out
}
