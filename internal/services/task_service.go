package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/barnhand/stable-api/internal/authz"
	"github.com/barnhand/stable-api/internal/models"
	"github.com/barnhand/stable-api/internal/repository"
	"gorm.io/gorm"
)

var (
	ErrTaskNotFound        = errors.New("task not found")
	ErrHorseNotFound       = errors.New("horse not found")
	ErrNotTaskAssigner     = errors.New("role is not authorized to assign tasks")
	ErrNotTaskAssignee     = errors.New("only the assigned employee can perform this action")
	ErrNotTaskOwner        = errors.New("only the task creator or an admin can delete this task")
	ErrTaskNotVisible      = errors.New("task is not visible to this employee")
	ErrInvalidTransition   = errors.New("task is not in a status that allows this transition")
	ErrProofRequired       = errors.New("a proof image is required to submit this task")
	ErrMissingTaskFields   = errors.New("name, type, horse, assignee, and scheduled time are required")
	ErrInvalidTaskType     = errors.New("invalid task type")
	ErrInvalidTaskPriority = errors.New("invalid task priority")
)

// TaskService owns the task lifecycle up to submission; the approval side is
// handled by ApprovalService.
type TaskService struct {
	taskRepo     repository.TaskRepository
	employeeRepo repository.EmployeeRepository
	horseRepo    repository.HorseRepository
	checker      *authz.Checker
	notifier     Notifier
	approvalSLA  time.Duration
}

// NewTaskService creates a new TaskService.
func NewTaskService(
	taskRepo repository.TaskRepository,
	employeeRepo repository.EmployeeRepository,
	horseRepo repository.HorseRepository,
	checker *authz.Checker,
	notifier Notifier,
	approvalSLA time.Duration,
) *TaskService {
	return &TaskService{
		taskRepo:     taskRepo,
		employeeRepo: employeeRepo,
		horseRepo:    horseRepo,
		checker:      checker,
		notifier:     notifier,
		approvalSLA:  approvalSLA,
	}
}

// CreateTaskInput represents input for creating a task.
type CreateTaskInput struct {
	Name               string
	Description        string
	Type               models.TaskType
	Priority           models.TaskPriority
	HorseID            uint64
	AssignedEmployeeID uint64
	ScheduledTime      time.Time
	RequiredProof      bool
}

// CreateTask creates a task in Pending status. Only assigner roles may call
// it, and both the horse and the assignee must exist.
func (s *TaskService) CreateTask(ctx context.Context, creator *models.Employee, input CreateTaskInput) (*models.Task, error) {
	if !s.checker.CanAssignTasks(creator.Designation) {
		return nil, ErrNotTaskAssigner
	}

	if strings.TrimSpace(input.Name) == "" || input.HorseID == 0 ||
		input.AssignedEmployeeID == 0 || input.ScheduledTime.IsZero() || input.Type == "" {
		return nil, ErrMissingTaskFields
	}

	switch input.Type {
	case models.TaskTypeDaily, models.TaskTypeWeekly, models.TaskTypeEventBased:
	default:
		return nil, ErrInvalidTaskType
	}

	if input.Priority == "" {
		input.Priority = models.TaskPriorityMedium
	}
	switch input.Priority {
	case models.TaskPriorityLow, models.TaskPriorityMedium,
		models.TaskPriorityHigh, models.TaskPriorityUrgent:
	default:
		return nil, ErrInvalidTaskPriority
	}

	if _, err := s.horseRepo.FindByID(input.HorseID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrHorseNotFound
		}
		return nil, fmt.Errorf("failed to check horse: %w", err)
	}

	assignee, err := s.employeeRepo.FindByID(input.AssignedEmployeeID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrEmployeeNotFound
		}
		return nil, fmt.Errorf("failed to check assignee: %w", err)
	}

	task := &models.Task{
		Name:               strings.TrimSpace(input.Name),
		Description:        input.Description,
		Type:               input.Type,
		Status:             models.TaskStatusPending,
		Priority:           input.Priority,
		HorseID:            input.HorseID,
		AssignedEmployeeID: input.AssignedEmployeeID,
		CreatedByID:        creator.ID,
		ScheduledTime:      input.ScheduledTime,
		RequiredProof:      input.RequiredProof,
	}

	if err := s.taskRepo.Create(task); err != nil {
		return nil, fmt.Errorf("failed to create task: %w", err)
	}

	s.notifier.Publish(ctx, Event{
		Kind:        EventTaskCreated,
		TaskID:      task.ID,
		ActorID:     creator.ID,
		RecipientID: assignee.ID,
		Message:     fmt.Sprintf("New %s task %q scheduled for %s", task.Priority, task.Name, task.ScheduledTime.Format(time.RFC3339)),
		OccurredAt:  time.Now(),
	})

	return s.taskRepo.FindByID(task.ID, "Horse", "AssignedEmployee", "CreatedBy")
}

// ListTasksInput represents filters for listing tasks.
type ListTasksInput struct {
	Status   *models.TaskStatus
	HorseID  *uint64
	Page     int
	PageSize int
}

// ListTasks applies the asymmetric visibility rule: supervisory roles see
// tasks they created — or, when filtering on Pending Review, every task
// awaiting approval — while everyone else sees only their own assignments.
func (s *TaskService) ListTasks(actor *models.Employee, input ListTasksInput) ([]models.Task, int64, error) {
	filter := repository.TaskFilter{
		Status:   input.Status,
		HorseID:  input.HorseID,
		Page:     input.Page,
		PageSize: input.PageSize,
	}

	if s.checker.CanApprove(actor.Designation) {
		reviewQueue := input.Status != nil && *input.Status == models.TaskStatusPendingReview
		if !reviewQueue {
			filter.CreatedByID = &actor.ID
		}
	} else {
		filter.AssignedEmployeeID = &actor.ID
	}

	tasks, total, err := s.taskRepo.List(filter)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list tasks: %w", err)
	}
	return tasks, total, nil
}

// GetTask returns a task the actor is allowed to see.
func (s *TaskService) GetTask(actor *models.Employee, taskID uint64) (*models.Task, error) {
	task, err := s.taskRepo.FindByID(taskID, "Horse", "AssignedEmployee", "CreatedBy", "Approvals")
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrTaskNotFound
		}
		return nil, fmt.Errorf("failed to find task: %w", err)
	}

	if !s.checker.CanApprove(actor.Designation) &&
		task.AssignedEmployeeID != actor.ID && task.CreatedByID != actor.ID {
		return nil, ErrTaskNotVisible
	}

	return task, nil
}

// StartTask moves Pending -> In Progress. Assignee only.
func (s *TaskService) StartTask(ctx context.Context, actor *models.Employee, taskID uint64) (*models.Task, error) {
	task, err := s.taskRepo.FindByID(taskID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrTaskNotFound
		}
		return nil, fmt.Errorf("failed to find task: %w", err)
	}

	if task.AssignedEmployeeID != actor.ID {
		return nil, ErrNotTaskAssignee
	}

	err = s.taskRepo.UpdateStatusIf(taskID, models.TaskStatusPending, models.TaskStatusInProgress, nil)
	if err != nil {
		if errors.Is(err, repository.ErrStatusConflict) {
			return nil, ErrInvalidTransition
		}
		return nil, fmt.Errorf("failed to start task: %w", err)
	}

	s.notifier.Publish(ctx, Event{
		Kind:        EventTaskStarted,
		TaskID:      taskID,
		ActorID:     actor.ID,
		RecipientID: task.CreatedByID,
		Message:     fmt.Sprintf("Task %q started", task.Name),
		OccurredAt:  time.Now(),
	})

	return s.taskRepo.FindByID(taskID, "Horse", "AssignedEmployee", "CreatedBy")
}

// SubmitCompletionInput represents a completion submission.
type SubmitCompletionInput struct {
	ProofImage      string
	CompletionNotes string
}

// SubmitCompletion moves In Progress -> Pending Review and opens the first
// approval record in the same transaction. Tasks created with requiredProof
// cannot be submitted without a proof image.
func (s *TaskService) SubmitCompletion(ctx context.Context, actor *models.Employee, taskID uint64, input SubmitCompletionInput) (*models.Task, error) {
	task, err := s.taskRepo.FindByID(taskID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrTaskNotFound
		}
		return nil, fmt.Errorf("failed to find task: %w", err)
	}

	if task.AssignedEmployeeID != actor.ID {
		return nil, ErrNotTaskAssignee
	}

	if task.RequiredProof && strings.TrimSpace(input.ProofImage) == "" {
		return nil, ErrProofRequired
	}

	now := time.Now()
	approval := &models.Approval{
		ApproverLevel: s.initialApproverLevel(actor),
		Status:        models.ApprovalStatusPending,
		SLADueDate:    now.Add(s.approvalSLA),
	}

	patch := map[string]interface{}{
		"proof_image":      input.ProofImage,
		"completion_notes": input.CompletionNotes,
		"submitted_at":     now,
		"completed_time":   now,
	}

	err = s.taskRepo.SubmitForReview(taskID, models.TaskStatusInProgress, patch, approval)
	if err != nil {
		if errors.Is(err, repository.ErrStatusConflict) {
			return nil, ErrInvalidTransition
		}
		return nil, fmt.Errorf("failed to submit task: %w", err)
	}

	s.notifier.Publish(ctx, Event{
		Kind:        EventTaskSubmitted,
		TaskID:      taskID,
		ActorID:     actor.ID,
		RecipientID: task.CreatedByID,
		Message:     fmt.Sprintf("Task %q submitted for review", task.Name),
		OccurredAt:  now,
	})

	return s.taskRepo.FindByID(taskID, "Horse", "AssignedEmployee", "CreatedBy", "Approvals")
}

// DeleteTask removes a task. Only the creator or an admin-tier role may.
func (s *TaskService) DeleteTask(actor *models.Employee, taskID uint64) error {
	task, err := s.taskRepo.FindByID(taskID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrTaskNotFound
		}
		return fmt.Errorf("failed to find task: %w", err)
	}

	if task.CreatedByID != actor.ID && !s.checker.IsAdminTier(actor.Designation) {
		return ErrNotTaskOwner
	}

	if err := s.taskRepo.Delete(taskID); err != nil {
		return fmt.Errorf("failed to delete task: %w", err)
	}
	return nil
}

// CancelTask is the privileged override: admin tier may cancel any
// non-terminal task.
func (s *TaskService) CancelTask(ctx context.Context, actor *models.Employee, taskID uint64) (*models.Task, error) {
	task, err := s.taskRepo.FindByID(taskID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrTaskNotFound
		}
		return nil, fmt.Errorf("failed to find task: %w", err)
	}

	if task.Status.IsTerminal() {
		return nil, ErrInvalidTransition
	}

	err = s.taskRepo.UpdateStatusIf(taskID, task.Status, models.TaskStatusCancelled, nil)
	if err != nil {
		if errors.Is(err, repository.ErrStatusConflict) {
			return nil, ErrInvalidTransition
		}
		return nil, fmt.Errorf("failed to cancel task: %w", err)
	}

	s.notifier.Publish(ctx, Event{
		Kind:        EventTaskCancelled,
		TaskID:      taskID,
		ActorID:     actor.ID,
		RecipientID: task.AssignedEmployeeID,
		Message:     fmt.Sprintf("Task %q was cancelled", task.Name),
		OccurredAt:  time.Now(),
	})

	return s.taskRepo.FindByID(taskID, "Horse", "AssignedEmployee", "CreatedBy")
}

// initialApproverLevel routes the first approval to the assignee's direct
// supervisor's tier when that tier can actually approve; otherwise it falls
// back to the Stable Manager tier.
func (s *TaskService) initialApproverLevel(assignee *models.Employee) int {
	registry := s.checker.Registry()
	fallback := registry.HierarchyLevel(authz.RoleStableManager)

	if assignee.SupervisorID == nil {
		return fallback
	}

	supervisor, err := s.employeeRepo.FindByID(*assignee.SupervisorID)
	if err != nil {
		return fallback
	}

	level := registry.HierarchyLevel(supervisor.Designation)
	if level == authz.UnknownLevel || !s.checker.CanApprove(supervisor.Designation) {
		return fallback
	}
	return level
}
