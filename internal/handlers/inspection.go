package handlers

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/barnhand/stable-api/internal/database"
	apierrors "github.com/barnhand/stable-api/internal/errors"
	"github.com/barnhand/stable-api/internal/middleware"
	"github.com/barnhand/stable-api/internal/models"
	"github.com/barnhand/stable-api/internal/utils"
)

// InspectionHandler exposes facility and horse inspection records.
type InspectionHandler struct{}

// NewInspectionHandler creates a new InspectionHandler.
func NewInspectionHandler() *InspectionHandler {
	return &InspectionHandler{}
}

// CreateInspection records an inspection by the current actor.
func (h *InspectionHandler) CreateInspection(c *gin.Context) {
	inspectorID, exists := middleware.GetEmployeeID(c)
	if !exists {
		apierrors.Unauthorized(c, "")
		return
	}

	type CreateInspectionRequest struct {
		HorseID *uint64    `json:"horse_id"`
		Type    string     `json:"type" binding:"required"`
		Score   int        `json:"score" binding:"required"`
		Notes   string     `json:"notes"`
		Date    *time.Time `json:"date"`
	}

	var req CreateInspectionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	if req.Score < 1 || req.Score > 5 {
		apierrors.BadRequest(c, "Score must be between 1 and 5")
		return
	}

	if req.HorseID != nil {
		var horse models.Horse
		if err := database.GetDB().First(&horse, *req.HorseID).Error; err != nil {
			apierrors.NotFound(c, "Horse not found")
			return
		}
	}

	date := time.Now()
	if req.Date != nil {
		date = *req.Date
	}

	inspection := models.Inspection{
		InspectorID: inspectorID,
		HorseID:     req.HorseID,
		Type:        req.Type,
		Score:       req.Score,
		Notes:       req.Notes,
		Date:        date,
	}

	if err := database.GetDB().Create(&inspection).Error; err != nil {
		apierrors.InternalError(c, "Failed to create inspection")
		return
	}

	c.JSON(http.StatusCreated, inspection)
}

// ListInspections returns inspection records, newest first.
func (h *InspectionHandler) ListInspections(c *gin.Context) {
	params := utils.GetPaginationParams(c)

	query := database.GetDB().Model(&models.Inspection{})
	if horseIDStr := c.Query("horse_id"); horseIDStr != "" {
		horseID, err := strconv.ParseUint(horseIDStr, 10, 64)
		if err != nil {
			apierrors.BadRequest(c, "Invalid horse_id")
			return
		}
		query = query.Where("horse_id = ?", horseID)
	}
	if inspType := c.Query("type"); inspType != "" {
		query = query.Where("type = ?", inspType)
	}

	var total int64
	query.Count(&total)

	var inspections []models.Inspection
	if err := query.Scopes(database.Paginate(params)).Order("date DESC").Find(&inspections).Error; err != nil {
		apierrors.InternalError(c, "Failed to fetch inspections")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"inspections": inspections,
		"pagination": utils.PaginationResponse{
			Page:  params.Page,
			Limit: params.Limit,
			Total: total,
		},
	})
}
