package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/barnhand/stable-api/internal/authz"
	"github.com/barnhand/stable-api/internal/database"
	apierrors "github.com/barnhand/stable-api/internal/errors"
	"github.com/barnhand/stable-api/internal/middleware"
	"github.com/barnhand/stable-api/internal/models"
	"github.com/barnhand/stable-api/internal/utils"
)

// FineHandler exposes disciplinary fine endpoints.
type FineHandler struct {
	checker *authz.Checker
}

// NewFineHandler creates a new FineHandler.
func NewFineHandler(checker *authz.Checker) *FineHandler {
	return &FineHandler{checker: checker}
}

// IssueFine records a fine against an employee.
func (h *FineHandler) IssueFine(c *gin.Context) {
	issuerID, exists := middleware.GetEmployeeID(c)
	if !exists {
		apierrors.Unauthorized(c, "")
		return
	}

	type IssueFineRequest struct {
		EmployeeID uint64  `json:"employee_id" binding:"required"`
		Amount     float64 `json:"amount" binding:"required"`
		Reason     string  `json:"reason" binding:"required"`
	}

	var req IssueFineRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	if req.Amount <= 0 {
		apierrors.BadRequest(c, "Amount must be positive")
		return
	}

	var employee models.Employee
	if err := database.GetDB().First(&employee, req.EmployeeID).Error; err != nil {
		apierrors.NotFound(c, "Employee not found")
		return
	}

	fine := models.Fine{
		EmployeeID: req.EmployeeID,
		IssuedByID: issuerID,
		Amount:     req.Amount,
		Reason:     req.Reason,
		Status:     models.FineStatusPending,
	}

	if err := database.GetDB().Create(&fine).Error; err != nil {
		apierrors.InternalError(c, "Failed to issue fine")
		return
	}

	c.JSON(http.StatusCreated, fine)
}

// ListFines returns fines: supervisory roles see all (optionally filtered by
// employee), everyone else sees only their own.
func (h *FineHandler) ListFines(c *gin.Context) {
	employeeID, exists := middleware.GetEmployeeID(c)
	if !exists {
		apierrors.Unauthorized(c, "")
		return
	}
	designation, _ := middleware.GetDesignation(c)

	params := utils.GetPaginationParams(c)
	query := database.GetDB().Model(&models.Fine{})

	if h.checker.HasPermission(designation, authz.PermFinesIssue) {
		if filterIDStr := c.Query("employee_id"); filterIDStr != "" {
			filterID, err := strconv.ParseUint(filterIDStr, 10, 64)
			if err != nil {
				apierrors.BadRequest(c, "Invalid employee_id")
				return
			}
			query = query.Where("employee_id = ?", filterID)
		}
	} else {
		query = query.Where("employee_id = ?", employeeID)
	}

	if status := c.Query("status"); status != "" {
		query = query.Where("status = ?", status)
	}

	var total int64
	query.Count(&total)

	var fines []models.Fine
	if err := query.Scopes(database.Paginate(params)).Order("created_at DESC").Find(&fines).Error; err != nil {
		apierrors.InternalError(c, "Failed to fetch fines")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"fines": fines,
		"pagination": utils.PaginationResponse{
			Page:  params.Page,
			Limit: params.Limit,
			Total: total,
		},
	})
}

// UpdateFineStatus marks a fine Paid or Waived.
func (h *FineHandler) UpdateFineStatus(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		apierrors.BadRequest(c, "Invalid fine ID")
		return
	}

	type UpdateStatusRequest struct {
		Status models.FineStatus `json:"status" binding:"required"`
	}

	var req UpdateStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	switch req.Status {
	case models.FineStatusPaid, models.FineStatusWaived, models.FineStatusPending:
	default:
		apierrors.BadRequest(c, "Invalid fine status")
		return
	}

	var fine models.Fine
	if err := database.GetDB().First(&fine, id).Error; err != nil {
		apierrors.NotFound(c, "Fine not found")
		return
	}

	fine.Status = req.Status
	if err := database.GetDB().Save(&fine).Error; err != nil {
		apierrors.InternalError(c, "Failed to update fine")
		return
	}

	c.JSON(http.StatusOK, fine)
}
