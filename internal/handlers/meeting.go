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
)

// MeetingHandler exposes staff meeting announcements.
type MeetingHandler struct {
	checker *authz.Checker
}

// NewMeetingHandler creates a new MeetingHandler.
func NewMeetingHandler(checker *authz.Checker) *MeetingHandler {
	return &MeetingHandler{checker: checker}
}

// CreateMeeting announces a meeting. An empty department addresses all staff.
func (h *MeetingHandler) CreateMeeting(c *gin.Context) {
	creatorID, exists := middleware.GetEmployeeID(c)
	if !exists {
		apierrors.Unauthorized(c, "")
		return
	}

	type CreateMeetingRequest struct {
		Title         string    `json:"title" binding:"required"`
		Agenda        string    `json:"agenda"`
		Location      string    `json:"location"`
		Department    string    `json:"department"`
		ScheduledTime time.Time `json:"scheduled_time" binding:"required"`
	}

	var req CreateMeetingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	meeting := models.Meeting{
		Title:         req.Title,
		Agenda:        req.Agenda,
		Location:      req.Location,
		Department:    req.Department,
		ScheduledTime: req.ScheduledTime,
		CreatedByID:   creatorID,
	}

	if err := database.GetDB().Create(&meeting).Error; err != nil {
		apierrors.InternalError(c, "Failed to create meeting")
		return
	}

	c.JSON(http.StatusCreated, meeting)
}

// ListMeetings returns meetings, soonest first.
func (h *MeetingHandler) ListMeetings(c *gin.Context) {
	params := utils.GetPaginationParams(c)

	query := database.GetDB().Model(&models.Meeting{})
	if department := c.Query("department"); department != "" {
		query = query.Where("department = ? OR department = ''", department)
	}
	if c.Query("upcoming") == "true" {
		query = query.Where("scheduled_time >= ?", time.Now())
	}

	var total int64
	query.Count(&total)

	var meetings []models.Meeting
	if err := query.Scopes(database.Paginate(params)).Order("scheduled_time ASC").Find(&meetings).Error; err != nil {
		apierrors.InternalError(c, "Failed to fetch meetings")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"meetings": meetings,
		"pagination": utils.PaginationResponse{
			Page:  params.Page,
			Limit: params.Limit,
			Total: total,
		},
	})
}

// DeleteMeeting removes a meeting. Only its creator or the admin tier may.
func (h *MeetingHandler) DeleteMeeting(c *gin.Context) {
	actorID, exists := middleware.GetEmployeeID(c)
	if !exists {
		apierrors.Unauthorized(c, "")
		return
	}
	designation, _ := middleware.GetDesignation(c)

	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		apierrors.BadRequest(c, "Invalid meeting ID")
		return
	}

	var meeting models.Meeting
	if err := database.GetDB().First(&meeting, id).Error; err != nil {
		apierrors.NotFound(c, "Meeting not found")
		return
	}

	if meeting.CreatedByID != actorID && !h.checker.IsAdminTier(designation) {
		apierrors.Forbidden(c, "Only the creator can delete this meeting")
		return
	}

	if err := database.GetDB().Delete(&meeting).Error; err != nil {
		apierrors.InternalError(c, "Failed to delete meeting")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Meeting deleted successfully",
	})
}
