package models

import (
	"time"

	"gorm.io/gorm"
)

type InventoryCategory string

const (
	InventoryCategoryMedicine InventoryCategory = "medicine"
	InventoryCategoryFeed     InventoryCategory = "feed"
	InventoryCategoryGrocery  InventoryCategory = "grocery"
)

type InventoryItem struct {
	ID           uint64            `gorm:"primarykey" json:"id"`
	Name         string            `gorm:"type:varchar(255);not null" json:"name"`
	Category     InventoryCategory `gorm:"type:varchar(20);not null;index" json:"category"`
	Unit         string            `gorm:"type:varchar(50);not null" json:"unit"`
	Quantity     int               `gorm:"not null;default:0" json:"quantity"`
	ReorderLevel int               `gorm:"not null;default:0" json:"reorder_level"`
	ExpiryDate   *time.Time        `json:"expiry_date"`
	CreatedAt    time.Time         `json:"created_at"`
	UpdatedAt    time.Time         `json:"updated_at"`
	DeletedAt    gorm.DeletedAt    `gorm:"index" json:"-"`
}
