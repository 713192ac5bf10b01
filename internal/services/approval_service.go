package services

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/barnhand/stable-api/internal/authz"
	"github.com/barnhand/stable-api/internal/models"
	"github.com/barnhand/stable-api/internal/repository"
	"gorm.io/gorm"
)

var (
	ErrNotApprover    = errors.New("role is not authorized to approve or reject tasks")
	ErrRejectionNotes = errors.New("rejection notes are required")
)

// ApprovalService drives tasks through review. Decisions go through the
// conditional status update, so a concurrent approve and reject on the same
// task produce exactly one winner.
type ApprovalService struct {
	taskRepo     repository.TaskRepository
	approvalRepo repository.ApprovalRepository
	checker      *authz.Checker
	notifier     Notifier
	approvalSLA  time.Duration
	missedGrace  time.Duration
}

// NewApprovalService creates a new ApprovalService.
func NewApprovalService(
	taskRepo repository.TaskRepository,
	approvalRepo repository.ApprovalRepository,
	checker *authz.Checker,
	notifier Notifier,
	approvalSLA time.Duration,
	missedGrace time.Duration,
) *ApprovalService {
	return &ApprovalService{
		taskRepo:     taskRepo,
		approvalRepo: approvalRepo,
		checker:      checker,
		notifier:     notifier,
		approvalSLA:  approvalSLA,
		missedGrace:  missedGrace,
	}
}

// Approve moves Pending Review -> Approved and records the decision on the
// open approval.
func (s *ApprovalService) Approve(ctx context.Context, actor *models.Employee, taskID uint64, notes string) (*models.Task, error) {
	return s.decide(ctx, actor, taskID, models.TaskStatusApproved, models.ApprovalStatusApproved, notes)
}

// Reject moves Pending Review -> Rejected. Notes explaining the rejection
// are mandatory.
func (s *ApprovalService) Reject(ctx context.Context, actor *models.Employee, taskID uint64, notes string) (*models.Task, error) {
	if strings.TrimSpace(notes) == "" {
		return nil, ErrRejectionNotes
	}
	return s.decide(ctx, actor, taskID, models.TaskStatusRejected, models.ApprovalStatusRejected, notes)
}

func (s *ApprovalService) decide(ctx context.Context, actor *models.Employee, taskID uint64, next models.TaskStatus, decision models.ApprovalStatus, notes string) (*models.Task, error) {
	if !s.checker.CanApprove(actor.Designation) {
		return nil, ErrNotApprover
	}

	task, err := s.taskRepo.FindByID(taskID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrTaskNotFound
		}
		return nil, fmt.Errorf("failed to find task: %w", err)
	}

	// The conditional update is the arbiter: on a race, the loser sees zero
	// rows affected and fails here.
	err = s.taskRepo.UpdateStatusIf(taskID, models.TaskStatusPendingReview, next, nil)
	if err != nil {
		if errors.Is(err, repository.ErrStatusConflict) {
			return nil, ErrInvalidTransition
		}
		return nil, fmt.Errorf("failed to update task status: %w", err)
	}

	now := time.Now()
	approval, err := s.approvalRepo.FindOpenByTaskID(taskID)
	if err != nil {
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("failed to find open approval: %w", err)
		}
		// Submission predates the approval chain; record the decision anyway.
		approval = &models.Approval{
			TaskID:        taskID,
			ApproverLevel: s.checker.Registry().HierarchyLevel(actor.Designation),
			SLADueDate:    now,
		}
		if err := s.approvalRepo.Create(approval); err != nil {
			return nil, fmt.Errorf("failed to create approval record: %w", err)
		}
	}

	approval.Status = decision
	approval.ApproverID = &actor.ID
	approval.Notes = notes
	approval.ApprovedAt = &now
	if err := s.approvalRepo.Update(approval); err != nil {
		return nil, fmt.Errorf("failed to record decision: %w", err)
	}

	kind := EventTaskApproved
	if decision == models.ApprovalStatusRejected {
		kind = EventTaskRejected
	}
	s.notifier.Publish(ctx, Event{
		Kind:        kind,
		TaskID:      taskID,
		ActorID:     actor.ID,
		RecipientID: task.AssignedEmployeeID,
		Message:     fmt.Sprintf("Task %q was %s", task.Name, strings.ToLower(string(decision))),
		OccurredAt:  now,
	})

	return s.taskRepo.FindByID(taskID, "Horse", "AssignedEmployee", "CreatedBy", "Approvals")
}

// ListApprovals returns a task's approval chain.
func (s *ApprovalService) ListApprovals(taskID uint64) ([]models.Approval, error) {
	if _, err := s.taskRepo.FindByID(taskID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrTaskNotFound
		}
		return nil, fmt.Errorf("failed to find task: %w", err)
	}
	return s.approvalRepo.ListByTaskID(taskID)
}

// Sweep advances overdue approvals and expires unstarted tasks. It runs
// periodically from the sweeper goroutine and is safe to call directly in
// tests.
func (s *ApprovalService) Sweep(ctx context.Context) error {
	if err := s.escalateOverdueApprovals(ctx); err != nil {
		return err
	}
	return s.expireUnstartedTasks(ctx)
}

// escalateOverdueApprovals closes Pending approvals past their SLA as
// NO_RESPONSE and opens the next link one hierarchy level up. At the top
// level the chain ends; the approval simply stays escalated.
func (s *ApprovalService) escalateOverdueApprovals(ctx context.Context) error {
	overdue, err := s.approvalRepo.ListOverdue()
	if err != nil {
		return fmt.Errorf("failed to list overdue approvals: %w", err)
	}

	maxLevel := s.checker.Registry().MaxLevel()
	now := time.Now()

	for i := range overdue {
		approval := &overdue[i]
		approval.Status = models.ApprovalStatusNoResponse
		approval.EscalatedAt = &now
		if err := s.approvalRepo.Update(approval); err != nil {
			return fmt.Errorf("failed to close overdue approval: %w", err)
		}

		if approval.ApproverLevel >= maxLevel {
			continue
		}

		next := &models.Approval{
			TaskID:        approval.TaskID,
			ApproverLevel: approval.ApproverLevel + 1,
			Status:        models.ApprovalStatusPending,
			SLADueDate:    now.Add(s.approvalSLA),
		}
		if err := s.approvalRepo.Create(next); err != nil {
			return fmt.Errorf("failed to open escalated approval: %w", err)
		}

		s.notifier.Publish(ctx, Event{
			Kind:       EventApprovalEscalated,
			TaskID:     approval.TaskID,
			Message:    fmt.Sprintf("Approval for task %d escalated to hierarchy level %d", approval.TaskID, next.ApproverLevel),
			OccurredAt: now,
		})
	}

	return nil
}

// expireUnstartedTasks marks Pending tasks whose scheduled time plus the
// grace window has passed as Missed.
func (s *ApprovalService) expireUnstartedTasks(ctx context.Context) error {
	cutoff := time.Now().Add(-s.missedGrace)
	stale, err := s.taskRepo.ListPendingBefore(cutoff)
	if err != nil {
		return fmt.Errorf("failed to list stale tasks: %w", err)
	}

	for i := range stale {
		task := &stale[i]
		err := s.taskRepo.UpdateStatusIf(task.ID, models.TaskStatusPending, models.TaskStatusMissed, nil)
		if err != nil {
			// Someone started the task between the list and the update; fine.
			if errors.Is(err, repository.ErrStatusConflict) {
				continue
			}
			return fmt.Errorf("failed to mark task missed: %w", err)
		}

		s.notifier.Publish(ctx, Event{
			Kind:        EventTaskMissed,
			TaskID:      task.ID,
			RecipientID: task.AssignedEmployeeID,
			Message:     fmt.Sprintf("Task %q was missed", task.Name),
			OccurredAt:  time.Now(),
		})
	}

	return nil
}

// StartSweeper runs Sweep on the given interval until the context is
// cancelled.
func (s *ApprovalService) StartSweeper(ctx context.Context, interval time.Duration) {
	go func() {
		ticker := time.NewTicker(interval)
		defer ticker.Stop()

		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				if err := s.Sweep(ctx); err != nil {
					log.Printf("escalation sweep failed: %v", err)
				}
			}
		}
	}()
}
