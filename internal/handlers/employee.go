package handlers

import (
	"errors"
	"log"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/barnhand/stable-api/internal/dto"
	apierrors "github.com/barnhand/stable-api/internal/errors"
	"github.com/barnhand/stable-api/internal/models"
	"github.com/barnhand/stable-api/internal/repository"
	"github.com/barnhand/stable-api/internal/services"
	"github.com/barnhand/stable-api/internal/utils"
)

// EmployeeHandler exposes staff administration endpoints.
type EmployeeHandler struct {
	employeeService *services.EmployeeService
}

// NewEmployeeHandler creates a new EmployeeHandler.
func NewEmployeeHandler(employeeService *services.EmployeeService) *EmployeeHandler {
	return &EmployeeHandler{
		employeeService: employeeService,
	}
}

// ListEmployees returns staff records with optional filters.
func (h *EmployeeHandler) ListEmployees(c *gin.Context) {
	params := utils.GetPaginationParams(c)
	filter := repository.EmployeeFilter{
		Page:     params.Page,
		PageSize: params.Limit,
	}

	if department := c.Query("department"); department != "" {
		filter.Department = &department
	}
	if designation := c.Query("designation"); designation != "" {
		filter.Designation = &designation
	}
	if statusStr := c.Query("employment_status"); statusStr != "" {
		status := models.EmploymentStatus(statusStr)
		filter.EmploymentStatus = &status
	}

	employees, total, err := h.employeeService.ListEmployees(filter)
	if err != nil {
		log.Printf("failed to list employees: %v", err)
		apierrors.InternalError(c, "")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"employees": dto.ToEmployeeDTOs(employees),
		"pagination": utils.PaginationResponse{
			Page:  params.Page,
			Limit: params.Limit,
			Total: total,
		},
	})
}

// GetEmployee returns one staff record.
func (h *EmployeeHandler) GetEmployee(c *gin.Context) {
	id, ok := parseEmployeeID(c)
	if !ok {
		return
	}

	employee, err := h.employeeService.GetEmployee(id)
	if err != nil {
		respondEmployeeError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToEmployeeDTO(*employee))
}

// UpdateEmployee applies admin edits to a staff record.
func (h *EmployeeHandler) UpdateEmployee(c *gin.Context) {
	id, ok := parseEmployeeID(c)
	if !ok {
		return
	}

	type UpdateRequest struct {
		FullName         *string                  `json:"full_name"`
		Designation      *string                  `json:"designation"`
		SupervisorID     *uint64                  `json:"supervisor_id"`
		ClearSupervisor  bool                     `json:"clear_supervisor"`
		EmploymentStatus *models.EmploymentStatus `json:"employment_status"`
	}

	var req UpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	employee, err := h.employeeService.UpdateEmployee(id, services.UpdateEmployeeInput{
		FullName:         req.FullName,
		Designation:      req.Designation,
		SupervisorID:     req.SupervisorID,
		ClearSupervisor:  req.ClearSupervisor,
		EmploymentStatus: req.EmploymentStatus,
	})
	if err != nil {
		respondEmployeeError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToEmployeeDTO(*employee))
}

// ApproveEmployee flips the first-login gate.
func (h *EmployeeHandler) ApproveEmployee(c *gin.Context) {
	id, ok := parseEmployeeID(c)
	if !ok {
		return
	}

	employee, err := h.employeeService.ApproveEmployee(id)
	if err != nil {
		respondEmployeeError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToEmployeeDTO(*employee))
}

// DeleteEmployee removes a staff record.
func (h *EmployeeHandler) DeleteEmployee(c *gin.Context) {
	id, ok := parseEmployeeID(c)
	if !ok {
		return
	}

	if err := h.employeeService.DeleteEmployee(id); err != nil {
		respondEmployeeError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Employee deleted successfully",
	})
}

func parseEmployeeID(c *gin.Context) (uint64, bool) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		apierrors.BadRequest(c, "Invalid employee ID")
		return 0, false
	}
	return id, true
}

func respondEmployeeError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, services.ErrEmployeeNotFound):
		apierrors.NotFound(c, err.Error())
	case errors.Is(err, services.ErrSupervisorCycle),
		errors.Is(err, services.ErrSelfSupervision),
		errors.Is(err, services.ErrUnknownDesignation),
		errors.Is(err, services.ErrInvalidEmployment):
		apierrors.BadRequest(c, err.Error())
	default:
		log.Printf("employee error: %v", err)
		apierrors.InternalError(c, "")
	}
}
