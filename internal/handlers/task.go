package handlers

import (
	"errors"
	"log"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/barnhand/stable-api/internal/dto"
	apierrors "github.com/barnhand/stable-api/internal/errors"
	"github.com/barnhand/stable-api/internal/models"
	"github.com/barnhand/stable-api/internal/services"
	"github.com/barnhand/stable-api/internal/utils"
)

// TaskHandler exposes the task lifecycle and approval endpoints.
type TaskHandler struct {
	authService     *services.AuthService
	taskService     *services.TaskService
	approvalService *services.ApprovalService
}

// NewTaskHandler creates a new TaskHandler.
func NewTaskHandler(authService *services.AuthService, taskService *services.TaskService, approvalService *services.ApprovalService) *TaskHandler {
	return &TaskHandler{
		authService:     authService,
		taskService:     taskService,
		approvalService: approvalService,
	}
}

// ListTasks returns the tasks visible to the current actor.
func (h *TaskHandler) ListTasks(c *gin.Context) {
	actor, ok := currentEmployee(c, h.authService)
	if !ok {
		return
	}

	params := utils.GetPaginationParams(c)
	input := services.ListTasksInput{
		Page:     params.Page,
		PageSize: params.Limit,
	}

	if statusStr := c.Query("status"); statusStr != "" {
		status := models.TaskStatus(statusStr)
		input.Status = &status
	}
	if horseIDStr := c.Query("horse_id"); horseIDStr != "" {
		horseID, err := strconv.ParseUint(horseIDStr, 10, 64)
		if err != nil {
			apierrors.BadRequest(c, "Invalid horse_id")
			return
		}
		input.HorseID = &horseID
	}

	tasks, total, err := h.taskService.ListTasks(actor, input)
	if err != nil {
		log.Printf("failed to list tasks: %v", err)
		apierrors.InternalError(c, "")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"tasks": dto.ToTaskDTOs(tasks),
		"pagination": utils.PaginationResponse{
			Page:  params.Page,
			Limit: params.Limit,
			Total: total,
		},
	})
}

// CreateTask creates a new task in Pending status.
func (h *TaskHandler) CreateTask(c *gin.Context) {
	actor, ok := currentEmployee(c, h.authService)
	if !ok {
		return
	}

	type CreateTaskRequest struct {
		Name               string              `json:"name" binding:"required"`
		Description        string              `json:"description"`
		Type               models.TaskType     `json:"type" binding:"required"`
		Priority           models.TaskPriority `json:"priority"`
		HorseID            uint64              `json:"horse_id" binding:"required"`
		AssignedEmployeeID uint64              `json:"assigned_employee_id" binding:"required"`
		ScheduledTime      time.Time           `json:"scheduled_time" binding:"required"`
		RequiredProof      bool                `json:"required_proof"`
	}

	var req CreateTaskRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	task, err := h.taskService.CreateTask(c.Request.Context(), actor, services.CreateTaskInput{
		Name:               req.Name,
		Description:        req.Description,
		Type:               req.Type,
		Priority:           req.Priority,
		HorseID:            req.HorseID,
		AssignedEmployeeID: req.AssignedEmployeeID,
		ScheduledTime:      req.ScheduledTime,
		RequiredProof:      req.RequiredProof,
	})
	if err != nil {
		respondTaskError(c, err)
		return
	}

	c.JSON(http.StatusCreated, dto.ToTaskDTO(*task))
}

// GetTask returns one task, subject to visibility.
func (h *TaskHandler) GetTask(c *gin.Context) {
	actor, ok := currentEmployee(c, h.authService)
	if !ok {
		return
	}

	taskID, ok := parseIDParam(c)
	if !ok {
		return
	}

	task, err := h.taskService.GetTask(actor, taskID)
	if err != nil {
		respondTaskError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToTaskDTO(*task))
}

// StartTask moves Pending -> In Progress.
func (h *TaskHandler) StartTask(c *gin.Context) {
	actor, ok := currentEmployee(c, h.authService)
	if !ok {
		return
	}

	taskID, ok := parseIDParam(c)
	if !ok {
		return
	}

	task, err := h.taskService.StartTask(c.Request.Context(), actor, taskID)
	if err != nil {
		respondTaskError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToTaskDTO(*task))
}

// SubmitCompletion moves In Progress -> Pending Review.
func (h *TaskHandler) SubmitCompletion(c *gin.Context) {
	actor, ok := currentEmployee(c, h.authService)
	if !ok {
		return
	}

	taskID, ok := parseIDParam(c)
	if !ok {
		return
	}

	type SubmitRequest struct {
		ProofImage      string `json:"proof_image"`
		CompletionNotes string `json:"completion_notes"`
	}

	var req SubmitRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	task, err := h.taskService.SubmitCompletion(c.Request.Context(), actor, taskID, services.SubmitCompletionInput{
		ProofImage:      req.ProofImage,
		CompletionNotes: req.CompletionNotes,
	})
	if err != nil {
		respondTaskError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToTaskDTO(*task))
}

// ApproveTask moves Pending Review -> Approved.
func (h *TaskHandler) ApproveTask(c *gin.Context) {
	h.decide(c, true)
}

// RejectTask moves Pending Review -> Rejected.
func (h *TaskHandler) RejectTask(c *gin.Context) {
	h.decide(c, false)
}

func (h *TaskHandler) decide(c *gin.Context, approve bool) {
	actor, ok := currentEmployee(c, h.authService)
	if !ok {
		return
	}

	taskID, ok := parseIDParam(c)
	if !ok {
		return
	}

	type DecisionRequest struct {
		Notes string `json:"notes"`
	}

	// Notes are optional on approve and checked by the service on reject,
	// so an absent or empty body is fine here.
	var req DecisionRequest
	_ = c.ShouldBindJSON(&req)

	var task *models.Task
	var err error
	if approve {
		task, err = h.approvalService.Approve(c.Request.Context(), actor, taskID, req.Notes)
	} else {
		task, err = h.approvalService.Reject(c.Request.Context(), actor, taskID, req.Notes)
	}
	if err != nil {
		respondTaskError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToTaskDTO(*task))
}

// CancelTask is the admin-tier override.
func (h *TaskHandler) CancelTask(c *gin.Context) {
	actor, ok := currentEmployee(c, h.authService)
	if !ok {
		return
	}

	taskID, ok := parseIDParam(c)
	if !ok {
		return
	}

	task, err := h.taskService.CancelTask(c.Request.Context(), actor, taskID)
	if err != nil {
		respondTaskError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToTaskDTO(*task))
}

// DeleteTask removes a task.
func (h *TaskHandler) DeleteTask(c *gin.Context) {
	actor, ok := currentEmployee(c, h.authService)
	if !ok {
		return
	}

	taskID, ok := parseIDParam(c)
	if !ok {
		return
	}

	if err := h.taskService.DeleteTask(actor, taskID); err != nil {
		respondTaskError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Task deleted successfully",
	})
}

// ListApprovals returns a task's approval chain.
func (h *TaskHandler) ListApprovals(c *gin.Context) {
	taskID, ok := parseIDParam(c)
	if !ok {
		return
	}

	approvals, err := h.approvalService.ListApprovals(taskID)
	if err != nil {
		respondTaskError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"approvals": dto.ToApprovalDTOs(approvals),
	})
}

func parseIDParam(c *gin.Context) (uint64, bool) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		apierrors.BadRequest(c, "Invalid task ID")
		return 0, false
	}
	return id, true
}

func respondTaskError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, services.ErrTaskNotFound),
		errors.Is(err, services.ErrHorseNotFound),
		errors.Is(err, services.ErrEmployeeNotFound):
		apierrors.NotFound(c, err.Error())
	case errors.Is(err, services.ErrNotTaskAssigner),
		errors.Is(err, services.ErrNotTaskAssignee),
		errors.Is(err, services.ErrNotTaskOwner),
		errors.Is(err, services.ErrTaskNotVisible),
		errors.Is(err, services.ErrNotApprover):
		apierrors.Forbidden(c, err.Error())
	case errors.Is(err, services.ErrMissingTaskFields),
		errors.Is(err, services.ErrInvalidTaskType),
		errors.Is(err, services.ErrInvalidTaskPriority),
		errors.Is(err, services.ErrProofRequired),
		errors.Is(err, services.ErrRejectionNotes):
		apierrors.BadRequest(c, err.Error())
	case errors.Is(err, services.ErrInvalidTransition):
		apierrors.InvalidTransition(c, err.Error())
	default:
		log.Printf("task error: %v", err)
		apierrors.InternalError(c, "")
	}
}
