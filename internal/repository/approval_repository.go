package repository

import (
	"time"

	"github.com/barnhand/stable-api/internal/models"
	"gorm.io/gorm"
)

// GormApprovalRepository is a GORM implementation of ApprovalRepository
type GormApprovalRepository struct {
	db *gorm.DB
}

// NewApprovalRepository creates a new ApprovalRepository
func NewApprovalRepository(db *gorm.DB) ApprovalRepository {
	return &GormApprovalRepository{db: db}
}

// Create creates a new approval record
func (r *GormApprovalRepository) Create(approval *models.Approval) error {
	return r.db.Create(approval).Error
}

// FindOpenByTaskID finds the single Pending approval for a task
func (r *GormApprovalRepository) FindOpenByTaskID(taskID uint64) (*models.Approval, error) {
	var approval models.Approval
	if err := r.db.
		Where("task_id = ? AND status = ?", taskID, models.ApprovalStatusPending).
		First(&approval).Error; err != nil {
		return nil, err
	}
	return &approval, nil
}

// ListByTaskID lists a task's approval chain, oldest first
func (r *GormApprovalRepository) ListByTaskID(taskID uint64) ([]models.Approval, error) {
	var approvals []models.Approval
	if err := r.db.
		Where("task_id = ?", taskID).
		Order("created_at ASC").
		Preload("Approver").
		Find(&approvals).Error; err != nil {
		return nil, err
	}
	return approvals, nil
}

// Update updates an approval record
func (r *GormApprovalRepository) Update(approval *models.Approval) error {
	return r.db.Save(approval).Error
}

// ListOverdue lists Pending approvals whose SLA due date has passed
func (r *GormApprovalRepository) ListOverdue() ([]models.Approval, error) {
	var approvals []models.Approval
	if err := r.db.
		Where("status = ? AND sla_due_date < ?", models.ApprovalStatusPending, time.Now()).
		Find(&approvals).Error; err != nil {
		return nil, err
	}
	return approvals, nil
}
