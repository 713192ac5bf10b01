package repository

import (
	"errors"
	"time"

	"github.com/barnhand/stable-api/internal/models"
	"gorm.io/gorm"
)

// ErrStatusConflict is returned when a conditional status update matched no
// row: the task either does not exist or is no longer in the expected status.
var ErrStatusConflict = errors.New("task repository: status precondition failed")

// GormTaskRepository is a GORM implementation of TaskRepository
type GormTaskRepository struct {
	db *gorm.DB
}

// NewTaskRepository creates a new TaskRepository
func NewTaskRepository(db *gorm.DB) TaskRepository {
	return &GormTaskRepository{db: db}
}

// Create creates a new task
func (r *GormTaskRepository) Create(task *models.Task) error {
	return r.db.Create(task).Error
}

// FindByID finds a task by ID with optional preloading
func (r *GormTaskRepository) FindByID(id uint64, preload ...string) (*models.Task, error) {
	var task models.Task
	query := r.db

	for _, p := range preload {
		query = query.Preload(p)
	}

	if err := query.First(&task, id).Error; err != nil {
		return nil, err
	}

	return &task, nil
}

// List retrieves tasks with filtering and pagination
func (r *GormTaskRepository) List(filter TaskFilter) ([]models.Task, int64, error) {
	var tasks []models.Task

	query := r.db.Model(&models.Task{})

	if filter.Status != nil {
		query = query.Where("tasks.status = ?", *filter.Status)
	}
	if filter.HorseID != nil {
		query = query.Where("tasks.horse_id = ?", *filter.HorseID)
	}
	if filter.CreatedByID != nil {
		query = query.Where("tasks.created_by_id = ?", *filter.CreatedByID)
	}
	if filter.AssignedEmployeeID != nil {
		query = query.Where("tasks.assigned_employee_id = ?", *filter.AssignedEmployeeID)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	listQuery := query.Order("tasks.scheduled_time ASC")

	if filter.Page > 0 && filter.PageSize > 0 {
		offset := (filter.Page - 1) * filter.PageSize
		listQuery = listQuery.Offset(offset).Limit(filter.PageSize)
	}

	if err := listQuery.Preload("Horse").Preload("AssignedEmployee").Preload("CreatedBy").Find(&tasks).Error; err != nil {
		return nil, 0, err
	}

	return tasks, total, nil
}

// UpdateStatusIf performs the conditional transition as a single UPDATE keyed
// on the expected current status. RowsAffected == 0 means the precondition
// failed, never a silent no-op.
func (r *GormTaskRepository) UpdateStatusIf(id uint64, expected, next models.TaskStatus, patch map[string]interface{}) error {
	updates := map[string]interface{}{"status": next}
	for k, v := range patch {
		updates[k] = v
	}

	result := r.db.Model(&models.Task{}).
		Where("id = ? AND status = ?", id, expected).
		Updates(updates)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrStatusConflict
	}
	return nil
}

// SubmitForReview applies the In Progress -> Pending Review transition and
// inserts the opening approval record atomically. Either both writes land or
// neither does.
func (r *GormTaskRepository) SubmitForReview(id uint64, expected models.TaskStatus, patch map[string]interface{}, approval *models.Approval) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		updates := map[string]interface{}{"status": models.TaskStatusPendingReview}
		for k, v := range patch {
			updates[k] = v
		}

		result := tx.Model(&models.Task{}).
			Where("id = ? AND status = ?", id, expected).
			Updates(updates)
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return ErrStatusConflict
		}

		approval.TaskID = id
		return tx.Create(approval).Error
	})
}

// ListPendingBefore lists Pending tasks scheduled before the cutoff
func (r *GormTaskRepository) ListPendingBefore(cutoff time.Time) ([]models.Task, error) {
	var tasks []models.Task
	if err := r.db.
		Where("status = ? AND scheduled_time < ?", models.TaskStatusPending, cutoff).
		Find(&tasks).Error; err != nil {
		return nil, err
	}
	return tasks, nil
}

// Delete soft deletes a task
func (r *GormTaskRepository) Delete(id uint64) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("task_id = ?", id).Delete(&models.Approval{}).Error; err != nil {
			return err
		}

		return tx.Delete(&models.Task{}, id).Error
	})
}
