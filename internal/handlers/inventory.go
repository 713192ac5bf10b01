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
	"gorm.io/gorm"
)

// InventoryHandler exposes medicine/feed/grocery stock management.
type InventoryHandler struct{}

// NewInventoryHandler creates a new InventoryHandler.
func NewInventoryHandler() *InventoryHandler {
	return &InventoryHandler{}
}

func validCategory(category models.InventoryCategory) bool {
	switch category {
	case models.InventoryCategoryMedicine, models.InventoryCategoryFeed, models.InventoryCategoryGrocery:
		return true
	}
	return false
}

// ListItems returns inventory items, optionally filtered by category.
func (h *InventoryHandler) ListItems(c *gin.Context) {
	params := utils.GetPaginationParams(c)

	query := database.GetDB().Model(&models.InventoryItem{})
	if categoryStr := c.Query("category"); categoryStr != "" {
		category := models.InventoryCategory(categoryStr)
		if !validCategory(category) {
			apierrors.BadRequest(c, "Invalid category")
			return
		}
		query = query.Where("category = ?", category)
	}
	if c.Query("low_stock") == "true" {
		query = query.Where("quantity <= reorder_level")
	}

	var total int64
	query.Count(&total)

	var items []models.InventoryItem
	if err := query.Scopes(database.Paginate(params)).Order("name ASC").Find(&items).Error; err != nil {
		apierrors.InternalError(c, "Failed to fetch inventory")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"items": items,
		"pagination": utils.PaginationResponse{
			Page:  params.Page,
			Limit: params.Limit,
			Total: total,
		},
	})
}

// CreateItem adds an inventory item.
func (h *InventoryHandler) CreateItem(c *gin.Context) {
	type CreateItemRequest struct {
		Name         string                   `json:"name" binding:"required"`
		Category     models.InventoryCategory `json:"category" binding:"required"`
		Unit         string                   `json:"unit" binding:"required"`
		Quantity     int                      `json:"quantity"`
		ReorderLevel int                      `json:"reorder_level"`
		ExpiryDate   *time.Time               `json:"expiry_date"`
	}

	var req CreateItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	if !validCategory(req.Category) {
		apierrors.BadRequest(c, "Invalid category")
		return
	}
	if req.Quantity < 0 {
		apierrors.BadRequest(c, "Quantity cannot be negative")
		return
	}

	item := models.InventoryItem{
		Name:         req.Name,
		Category:     req.Category,
		Unit:         req.Unit,
		Quantity:     req.Quantity,
		ReorderLevel: req.ReorderLevel,
		ExpiryDate:   req.ExpiryDate,
	}

	if err := database.GetDB().Create(&item).Error; err != nil {
		apierrors.InternalError(c, "Failed to create item")
		return
	}

	c.JSON(http.StatusCreated, item)
}

// UpdateItem edits an inventory item's descriptive fields.
func (h *InventoryHandler) UpdateItem(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		apierrors.BadRequest(c, "Invalid item ID")
		return
	}

	var item models.InventoryItem
	if err := database.GetDB().First(&item, id).Error; err != nil {
		apierrors.NotFound(c, "Item not found")
		return
	}

	type UpdateItemRequest struct {
		Name         *string    `json:"name"`
		Unit         *string    `json:"unit"`
		ReorderLevel *int       `json:"reorder_level"`
		ExpiryDate   *time.Time `json:"expiry_date"`
	}

	var req UpdateItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	if req.Name != nil && *req.Name != "" {
		item.Name = *req.Name
	}
	if req.Unit != nil && *req.Unit != "" {
		item.Unit = *req.Unit
	}
	if req.ReorderLevel != nil {
		item.ReorderLevel = *req.ReorderLevel
	}
	if req.ExpiryDate != nil {
		item.ExpiryDate = req.ExpiryDate
	}

	if err := database.GetDB().Save(&item).Error; err != nil {
		apierrors.InternalError(c, "Failed to update item")
		return
	}

	c.JSON(http.StatusOK, item)
}

// AdjustQuantity applies a signed delta to an item's stock level. The update
// is conditional on the resulting quantity staying non-negative, so two
// concurrent withdrawals cannot drive the stock below zero.
func (h *InventoryHandler) AdjustQuantity(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		apierrors.BadRequest(c, "Invalid item ID")
		return
	}

	type AdjustRequest struct {
		Delta int `json:"delta" binding:"required"`
	}

	var req AdjustRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	var item models.InventoryItem
	if err := database.GetDB().First(&item, id).Error; err != nil {
		apierrors.NotFound(c, "Item not found")
		return
	}

	result := database.GetDB().Model(&models.InventoryItem{}).
		Where("id = ? AND quantity + ? >= 0", id, req.Delta).
		Update("quantity", gorm.Expr("quantity + ?", req.Delta))
	if result.Error != nil {
		apierrors.InternalError(c, "Failed to adjust quantity")
		return
	}
	if result.RowsAffected == 0 {
		apierrors.BadRequest(c, "Adjustment would make quantity negative")
		return
	}

	if err := database.GetDB().First(&item, id).Error; err != nil {
		apierrors.InternalError(c, "Failed to reload item")
		return
	}

	c.JSON(http.StatusOK, item)
}

// DeleteItem removes an inventory item.
func (h *InventoryHandler) DeleteItem(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		apierrors.BadRequest(c, "Invalid item ID")
		return
	}

	var item models.InventoryItem
	if err := database.GetDB().First(&item, id).Error; err != nil {
		apierrors.NotFound(c, "Item not found")
		return
	}

	if err := database.GetDB().Delete(&item).Error; err != nil {
		apierrors.InternalError(c, "Failed to delete item")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Item deleted successfully",
	})
}
