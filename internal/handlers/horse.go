package handlers

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/barnhand/stable-api/internal/database"
	apierrors "github.com/barnhand/stable-api/internal/errors"
	"github.com/barnhand/stable-api/internal/models"
	"github.com/barnhand/stable-api/internal/utils"
)

// HorseHandler exposes horse record CRUD.
type HorseHandler struct{}

// NewHorseHandler creates a new HorseHandler.
func NewHorseHandler() *HorseHandler {
	return &HorseHandler{}
}

// ListHorses returns horse records, paginated.
func (h *HorseHandler) ListHorses(c *gin.Context) {
	params := utils.GetPaginationParams(c)

	query := database.GetDB().Model(&models.Horse{})
	if status := c.Query("health_status"); status != "" {
		query = query.Where("health_status = ?", status)
	}

	var total int64
	query.Count(&total)

	var horses []models.Horse
	if err := query.Scopes(database.Paginate(params)).Order("name ASC").Find(&horses).Error; err != nil {
		apierrors.InternalError(c, "Failed to fetch horses")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"horses": horses,
		"pagination": utils.PaginationResponse{
			Page:  params.Page,
			Limit: params.Limit,
			Total: total,
		},
	})
}

// GetHorse returns a horse by ID.
func (h *HorseHandler) GetHorse(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		apierrors.BadRequest(c, "Invalid horse ID")
		return
	}

	var horse models.Horse
	if err := database.GetDB().Preload("AssignedGroom").First(&horse, id).Error; err != nil {
		apierrors.NotFound(c, "Horse not found")
		return
	}

	c.JSON(http.StatusOK, horse)
}

// CreateHorse registers a new horse.
func (h *HorseHandler) CreateHorse(c *gin.Context) {
	type CreateHorseRequest struct {
		Name            string  `json:"name" binding:"required"`
		Breed           string  `json:"breed"`
		Age             int     `json:"age"`
		Stall           string  `json:"stall"`
		HealthStatus    string  `json:"health_status"`
		Notes           string  `json:"notes"`
		AssignedGroomID *uint64 `json:"assigned_groom_id"`
	}

	var req CreateHorseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	if req.AssignedGroomID != nil {
		var groom models.Employee
		if err := database.GetDB().First(&groom, *req.AssignedGroomID).Error; err != nil {
			apierrors.NotFound(c, "Assigned groom not found")
			return
		}
	}

	horse := models.Horse{
		Name:            req.Name,
		Breed:           req.Breed,
		Age:             req.Age,
		Stall:           req.Stall,
		HealthStatus:    req.HealthStatus,
		Notes:           req.Notes,
		AssignedGroomID: req.AssignedGroomID,
	}
	if horse.HealthStatus == "" {
		horse.HealthStatus = "Healthy"
	}

	if err := database.GetDB().Create(&horse).Error; err != nil {
		apierrors.InternalError(c, "Failed to create horse")
		return
	}

	c.JSON(http.StatusCreated, horse)
}

// UpdateHorse updates a horse record, only touching provided fields.
func (h *HorseHandler) UpdateHorse(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		apierrors.BadRequest(c, "Invalid horse ID")
		return
	}

	var horse models.Horse
	if err := database.GetDB().First(&horse, id).Error; err != nil {
		apierrors.NotFound(c, "Horse not found")
		return
	}

	var rawReq map[string]any
	if err := c.ShouldBindJSON(&rawReq); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	if name, ok := rawReq["name"].(string); ok && name != "" {
		horse.Name = name
	}
	if breed, ok := rawReq["breed"].(string); ok {
		horse.Breed = breed
	}
	if age, ok := rawReq["age"].(float64); ok {
		horse.Age = int(age)
	}
	if stall, ok := rawReq["stall"].(string); ok {
		horse.Stall = stall
	}
	if status, ok := rawReq["health_status"].(string); ok && status != "" {
		horse.HealthStatus = status
	}
	if notes, ok := rawReq["notes"].(string); ok {
		horse.Notes = notes
	}
	if _, ok := rawReq["assigned_groom_id"]; ok {
		if rawReq["assigned_groom_id"] == nil {
			horse.AssignedGroomID = nil
		} else if groomID, ok := rawReq["assigned_groom_id"].(float64); ok {
			id := uint64(groomID)
			var groom models.Employee
			if err := database.GetDB().First(&groom, id).Error; err != nil {
				apierrors.NotFound(c, "Assigned groom not found")
				return
			}
			horse.AssignedGroomID = &id
		}
	}

	horse.UpdatedAt = time.Now()
	if err := database.GetDB().Save(&horse).Error; err != nil {
		apierrors.InternalError(c, "Failed to update horse")
		return
	}

	c.JSON(http.StatusOK, horse)
}

// DeleteHorse removes a horse record.
func (h *HorseHandler) DeleteHorse(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		apierrors.BadRequest(c, "Invalid horse ID")
		return
	}

	var horse models.Horse
	if err := database.GetDB().First(&horse, id).Error; err != nil {
		apierrors.NotFound(c, "Horse not found")
		return
	}

	if err := database.GetDB().Delete(&horse).Error; err != nil {
		apierrors.InternalError(c, "Failed to delete horse")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Horse deleted successfully",
	})
}
