package repository

import (
	"time"

	"github.com/barnhand/stable-api/internal/models"
)

// TaskRepository defines the interface for task data access
type TaskRepository interface {
	// Create creates a new task
	Create(task *models.Task) error

	// FindByID finds a task by ID with optional preloading
	FindByID(id uint64, preload ...string) (*models.Task, error)

	// List retrieves tasks with filtering and pagination
	List(filter TaskFilter) ([]models.Task, int64, error)

	// UpdateStatusIf performs a conditional status transition: the row is
	// updated only when its current status equals expected. Returns
	// ErrStatusConflict when the precondition does not hold, so two
	// concurrent transitions on the same task resolve to one winner.
	UpdateStatusIf(id uint64, expected, next models.TaskStatus, patch map[string]interface{}) error

	// SubmitForReview flips a task to Pending Review and opens the first
	// approval record in one transaction.
	SubmitForReview(id uint64, expected models.TaskStatus, patch map[string]interface{}, approval *models.Approval) error

	// ListPendingBefore lists Pending tasks scheduled before the cutoff
	ListPendingBefore(cutoff time.Time) ([]models.Task, error)

	// Delete soft deletes a task and its approval chain
	Delete(id uint64) error
}

// TaskFilter holds filtering options for listing tasks
type TaskFilter struct {
	Status             *models.TaskStatus
	HorseID            *uint64
	CreatedByID        *uint64
	AssignedEmployeeID *uint64
	Page               int
	PageSize           int
}

// ApprovalRepository defines the interface for approval data access
type ApprovalRepository interface {
	// Create creates a new approval record
	Create(approval *models.Approval) error

	// FindOpenByTaskID finds the single Pending approval for a task
	FindOpenByTaskID(taskID uint64) (*models.Approval, error)

	// ListByTaskID lists a task's approval chain, oldest first
	ListByTaskID(taskID uint64) ([]models.Approval, error)

	// Update updates an approval record
	Update(approval *models.Approval) error

	// ListOverdue lists Pending approvals whose SLA due date has passed
	ListOverdue() ([]models.Approval, error)
}

// EmployeeRepository defines the interface for employee data access
type EmployeeRepository interface {
	// Create creates a new employee
	Create(employee *models.Employee) error

	// FindByID finds an employee by ID
	FindByID(id uint64) (*models.Employee, error)

	// FindByEmail finds an employee by email
	FindByEmail(email string) (*models.Employee, error)

	// List retrieves employees with optional department/status filters
	List(filter EmployeeFilter) ([]models.Employee, int64, error)

	// Update updates an employee
	Update(employee *models.Employee) error

	// Delete soft deletes an employee
	Delete(id uint64) error
}

// EmployeeFilter holds filtering options for listing employees
type EmployeeFilter struct {
	Department       *string
	EmploymentStatus *models.EmploymentStatus
	Designation      *string
	Page             int
	PageSize         int
}
