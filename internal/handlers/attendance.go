package handlers

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/barnhand/stable-api/internal/authz"
	"github.com/barnhand/stable-api/internal/database"
	apierrors "github.com/barnhand/stable-api/internal/errors"
	"github.com/barnhand/stable-api/internal/middleware"
	"github.com/barnhand/stable-api/internal/models"
	"github.com/barnhand/stable-api/internal/utils"
	"gorm.io/gorm"
)

// AttendanceHandler exposes check-in/check-out and attendance listing.
type AttendanceHandler struct {
	checker *authz.Checker
}

// NewAttendanceHandler creates a new AttendanceHandler.
func NewAttendanceHandler(checker *authz.Checker) *AttendanceHandler {
	return &AttendanceHandler{checker: checker}
}

const dayFormat = "2006-01-02"

// CheckIn records today's attendance for the current actor. One record per
// employee per day; a second check-in conflicts.
func (h *AttendanceHandler) CheckIn(c *gin.Context) {
	employeeID, exists := middleware.GetEmployeeID(c)
	if !exists {
		apierrors.Unauthorized(c, "")
		return
	}

	now := time.Now()
	day := now.Format(dayFormat)

	var existing models.Attendance
	err := database.GetDB().
		Where("employee_id = ? AND day = ?", employeeID, day).
		First(&existing).Error
	if err == nil {
		apierrors.Conflict(c, "Already checked in today")
		return
	}
	if err != gorm.ErrRecordNotFound {
		apierrors.InternalError(c, "Failed to check attendance")
		return
	}

	attendance := models.Attendance{
		EmployeeID: employeeID,
		Day:        day,
		CheckInAt:  now,
	}
	if err := database.GetDB().Create(&attendance).Error; err != nil {
		// The unique index is the arbiter for two concurrent check-ins.
		apierrors.Conflict(c, "Already checked in today")
		return
	}

	c.JSON(http.StatusCreated, attendance)
}

// CheckOut stamps the check-out time on today's attendance record.
func (h *AttendanceHandler) CheckOut(c *gin.Context) {
	employeeID, exists := middleware.GetEmployeeID(c)
	if !exists {
		apierrors.Unauthorized(c, "")
		return
	}

	day := time.Now().Format(dayFormat)

	var attendance models.Attendance
	err := database.GetDB().
		Where("employee_id = ? AND day = ?", employeeID, day).
		First(&attendance).Error
	if err != nil {
		apierrors.NotFound(c, "No check-in found for today")
		return
	}

	if attendance.CheckOutAt != nil {
		apierrors.Conflict(c, "Already checked out today")
		return
	}

	now := time.Now()
	attendance.CheckOutAt = &now
	if err := database.GetDB().Save(&attendance).Error; err != nil {
		apierrors.InternalError(c, "Failed to record check-out")
		return
	}

	c.JSON(http.StatusOK, attendance)
}

// ListAttendance returns attendance records. Regular roles see their own;
// roles with the view-all permission may filter by employee or see everyone.
func (h *AttendanceHandler) ListAttendance(c *gin.Context) {
	employeeID, exists := middleware.GetEmployeeID(c)
	if !exists {
		apierrors.Unauthorized(c, "")
		return
	}
	designation, _ := middleware.GetDesignation(c)

	params := utils.GetPaginationParams(c)
	query := database.GetDB().Model(&models.Attendance{})

	if h.checker.HasPermission(designation, authz.PermAttendanceViewAll) {
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

	if from := c.Query("from"); from != "" {
		query = query.Where("day >= ?", from)
	}
	if to := c.Query("to"); to != "" {
		query = query.Where("day <= ?", to)
	}

	var total int64
	query.Count(&total)

	var records []models.Attendance
	if err := query.Scopes(database.Paginate(params)).Order("day DESC").Find(&records).Error; err != nil {
		apierrors.InternalError(c, "Failed to fetch attendance")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"attendance": records,
		"pagination": utils.PaginationResponse{
			Page:  params.Page,
			Limit: params.Limit,
			Total: total,
		},
	})
}
