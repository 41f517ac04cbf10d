package models

import (
	"context"
	"errors"
	"time"

	"github.com/kaganerp/kagan_backend/utils"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// InventoryItem is a stockable unit: a raw/consumable material (milk, hair
// color) or a retail product sold over the counter. CurrentStock is owned
// exclusively by the stock ledger (stockLedger.go); nothing else writes it.
type InventoryItem struct {
	ID            int              `gorm:"primary_key" json:"id"`
	Name          string           `gorm:"size:100;not null" json:"name"`
	Code          string           `gorm:"size:50;uniqueIndex;not null" json:"code"`
	InventoryType InventoryType    `gorm:"size:20;index;not null" json:"inventory_type"`
	ItemKind      ItemKind         `gorm:"size:20;not null" json:"item_kind"`
	Unit          UnitType         `gorm:"size:10;not null" json:"unit"`
	CurrentStock  decimal.Decimal  `gorm:"type:decimal(20,4);default:0" json:"current_stock"`
	MinStockAlert decimal.Decimal  `gorm:"type:decimal(20,4);default:0" json:"min_stock_alert"`
	UnitPrice     decimal.Decimal  `gorm:"type:decimal(20,4);default:0" json:"unit_price"`
	RetailPrice   *decimal.Decimal `gorm:"type:decimal(20,4)" json:"retail_price"`
	IsActive      bool             `gorm:"not null;default:true" json:"is_active"`
	CreatedAt     time.Time        `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt     time.Time        `gorm:"autoUpdateTime" json:"updated_at"`
}

type NewInventoryItem struct {
	Name          string           `json:"name" binding:"required"`
	Code          string           `json:"code" binding:"required"`
	InventoryType InventoryType    `json:"inventory_type" binding:"required"`
	ItemKind      ItemKind         `json:"item_kind" binding:"required"`
	Unit          UnitType         `json:"unit" binding:"required"`
	CurrentStock  decimal.Decimal  `json:"current_stock"`
	MinStockAlert decimal.Decimal  `json:"min_stock_alert"`
	UnitPrice     decimal.Decimal  `json:"unit_price"`
	RetailPrice   *decimal.Decimal `json:"retail_price"`
}

// validate input for both create & update. (id = 0 for create)
func (input *NewInventoryItem) validate(ctx context.Context, db *gorm.DB, id int) error {
	if input.Name == "" || input.Code == "" {
		return utils.NewValidationError("item name and code are required")
	}
	if !input.InventoryType.IsValid() {
		return utils.NewValidationError("invalid inventory type: %s", input.InventoryType)
	}
	if !input.ItemKind.IsValid() {
		return utils.NewValidationError("invalid item kind: %s", input.ItemKind)
	}
	if !input.Unit.IsValid() {
		return utils.NewValidationError("invalid unit: %s", input.Unit)
	}
	if input.CurrentStock.IsNegative() {
		return utils.NewValidationError("current stock cannot be negative")
	}

	var count int64
	dbCtx := db.WithContext(ctx).Model(&InventoryItem{}).Where("code = ?", input.Code)
	if id > 0 {
		dbCtx = dbCtx.Where("id <> ?", id)
	}
	if err := dbCtx.Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		return utils.NewConflictError("item code %s already exists", input.Code)
	}
	return nil
}

func CreateInventoryItem(ctx context.Context, db *gorm.DB, input *NewInventoryItem) (*InventoryItem, error) {
	if err := input.validate(ctx, db, 0); err != nil {
		return nil, err
	}

	item := InventoryItem{
		Name:          input.Name,
		Code:          input.Code,
		InventoryType: input.InventoryType,
		ItemKind:      input.ItemKind,
		Unit:          input.Unit,
		CurrentStock:  input.CurrentStock,
		MinStockAlert: input.MinStockAlert,
		UnitPrice:     input.UnitPrice,
		RetailPrice:   input.RetailPrice,
		IsActive:      true,
	}
	if err := db.WithContext(ctx).Create(&item).Error; err != nil {
		return nil, err
	}
	return &item, nil
}

func UpdateInventoryItem(ctx context.Context, db *gorm.DB, id int, input *NewInventoryItem) (*InventoryItem, error) {
	item, err := GetInventoryItem(ctx, db, id)
	if err != nil {
		return nil, err
	}
	if err := input.validate(ctx, db, id); err != nil {
		return nil, err
	}

	// CurrentStock is deliberately absent here: stock changes go through
	// the ledger so that every delta leaves a movement row.
	err = db.WithContext(ctx).Model(item).Updates(map[string]interface{}{
		"Name":          input.Name,
		"Code":          input.Code,
		"InventoryType": input.InventoryType,
		"ItemKind":      input.ItemKind,
		"Unit":          input.Unit,
		"MinStockAlert": input.MinStockAlert,
		"RetailPrice":   input.RetailPrice,
	}).Error
	if err != nil {
		return nil, err
	}
	return item, nil
}

func GetInventoryItem(ctx context.Context, db *gorm.DB, id int) (*InventoryItem, error) {
	var item InventoryItem
	err := db.WithContext(ctx).First(&item, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, utils.ErrorRecordNotFound
		}
		return nil, err
	}
	return &item, nil
}

func ListInventoryItems(ctx context.Context, db *gorm.DB, inventoryType *InventoryType, activeOnly bool) ([]*InventoryItem, error) {
	var items []*InventoryItem
	dbCtx := db.WithContext(ctx).Model(&InventoryItem{})
	if inventoryType != nil {
		dbCtx = dbCtx.Where("inventory_type = ?", *inventoryType)
	}
	if activeOnly {
		dbCtx = dbCtx.Where("is_active = ?", true)
	}
	if err := dbCtx.Order("name").Find(&items).Error; err != nil {
		return nil, err
	}
	return items, nil
}

func DeactivateInventoryItem(ctx context.Context, db *gorm.DB, id int) error {
	item, err := GetInventoryItem(ctx, db, id)
	if err != nil {
		return err
	}
	return db.WithContext(ctx).Model(item).Update("IsActive", false).Error
}
