package models

import (
	"context"
	"errors"

	"github.com/kaganerp/kagan_backend/utils"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// BOMItem maps a barbershop service to one inventory item it consumes per
// unit performed. RecipeItem is the cafe analogue for products. Both are
// one-hop edges (sellable -> item); there are no nested sub-assemblies.
type BOMItem struct {
	ID              int             `gorm:"primary_key" json:"id"`
	ServiceId       int             `gorm:"index;not null;uniqueIndex:idx_bom_service_item" json:"service_id"`
	InventoryItemId int             `gorm:"index;not null;uniqueIndex:idx_bom_service_item" json:"inventory_item_id"`
	Qty             decimal.Decimal `gorm:"type:decimal(20,4);not null" json:"qty"`
}

type RecipeItem struct {
	ID              int             `gorm:"primary_key" json:"id"`
	ProductId       int             `gorm:"index;not null;uniqueIndex:idx_recipe_product_item" json:"product_id"`
	InventoryItemId int             `gorm:"index;not null;uniqueIndex:idx_recipe_product_item" json:"inventory_item_id"`
	Qty             decimal.Decimal `gorm:"type:decimal(20,4);not null" json:"qty"`
}

// CompositionRequirement is one resolved (item, per-unit quantity) pair.
type CompositionRequirement struct {
	InventoryItemId int
	Qty             decimal.Decimal
}

type NewCompositionEdge struct {
	InventoryItemId int             `json:"inventory_item_id" binding:"required"`
	Qty             decimal.Decimal `json:"qty" binding:"required"`
}

func (input *NewCompositionEdge) validate(ctx context.Context, db *gorm.DB) error {
	if !input.Qty.IsPositive() {
		return utils.NewValidationError("composition quantity must be positive")
	}
	if _, err := GetInventoryItem(ctx, db, input.InventoryItemId); err != nil {
		return err
	}
	return nil
}

// AddBOMItem attaches an inventory item to a service's bill of materials.
// A second edge for the same (service, item) pair is rejected, not merged.
func AddBOMItem(ctx context.Context, db *gorm.DB, serviceId int, input *NewCompositionEdge) (*BOMItem, error) {
	if _, err := GetService(ctx, db, serviceId); err != nil {
		return nil, err
	}
	if err := input.validate(ctx, db); err != nil {
		return nil, err
	}

	var count int64
	err := db.WithContext(ctx).Model(&BOMItem{}).
		Where("service_id = ? AND inventory_item_id = ?", serviceId, input.InventoryItemId).
		Count(&count).Error
	if err != nil {
		return nil, err
	}
	if count > 0 {
		return nil, utils.NewValidationError("service %d already has a BOM entry for item %d", serviceId, input.InventoryItemId)
	}

	edge := BOMItem{ServiceId: serviceId, InventoryItemId: input.InventoryItemId, Qty: input.Qty}
	if err := db.WithContext(ctx).Create(&edge).Error; err != nil {
		return nil, err
	}
	return &edge, nil
}

func RemoveBOMItem(ctx context.Context, db *gorm.DB, id int) error {
	var edge BOMItem
	if err := db.WithContext(ctx).First(&edge, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return utils.ErrorRecordNotFound
		}
		return err
	}
	return db.WithContext(ctx).Delete(&edge).Error
}

// AddRecipeItem attaches an inventory item to a product's recipe.
func AddRecipeItem(ctx context.Context, db *gorm.DB, productId int, input *NewCompositionEdge) (*RecipeItem, error) {
	if _, err := GetProduct(ctx, db, productId); err != nil {
		return nil, err
	}
	if err := input.validate(ctx, db); err != nil {
		return nil, err
	}

	var count int64
	err := db.WithContext(ctx).Model(&RecipeItem{}).
		Where("product_id = ? AND inventory_item_id = ?", productId, input.InventoryItemId).
		Count(&count).Error
	if err != nil {
		return nil, err
	}
	if count > 0 {
		return nil, utils.NewValidationError("product %d already has a recipe entry for item %d", productId, input.InventoryItemId)
	}

	edge := RecipeItem{ProductId: productId, InventoryItemId: input.InventoryItemId, Qty: input.Qty}
	if err := db.WithContext(ctx).Create(&edge).Error; err != nil {
		return nil, err
	}
	return &edge, nil
}

func RemoveRecipeItem(ctx context.Context, db *gorm.DB, id int) error {
	var edge RecipeItem
	if err := db.WithContext(ctx).First(&edge, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return utils.ErrorRecordNotFound
		}
		return err
	}
	return db.WithContext(ctx).Delete(&edge).Error
}

// GetComposition resolves what selling one unit of a sellable consumes.
// An empty result is a valid state (a service with no BOM, or any retail
// item); the sale then deducts nothing (retail lines deduct themselves
// directly in the aggregator).
func GetComposition(ctx context.Context, db *gorm.DB, sellableType SellableType, sellableId int) ([]CompositionRequirement, error) {
	requirements := []CompositionRequirement{}

	switch sellableType {
	case SellableTypeService:
		if _, err := GetService(ctx, db, sellableId); err != nil {
			return nil, err
		}
		var edges []BOMItem
		if err := db.WithContext(ctx).Where("service_id = ?", sellableId).Find(&edges).Error; err != nil {
			return nil, err
		}
		for _, e := range edges {
			requirements = append(requirements, CompositionRequirement{InventoryItemId: e.InventoryItemId, Qty: e.Qty})
		}
	case SellableTypeProduct:
		if _, err := GetProduct(ctx, db, sellableId); err != nil {
			return nil, err
		}
		var edges []RecipeItem
		if err := db.WithContext(ctx).Where("product_id = ?", sellableId).Find(&edges).Error; err != nil {
			return nil, err
		}
		for _, e := range edges {
			requirements = append(requirements, CompositionRequirement{InventoryItemId: e.InventoryItemId, Qty: e.Qty})
		}
	case SellableTypeRetail:
		if _, err := GetInventoryItem(ctx, db, sellableId); err != nil {
			return nil, err
		}
	default:
		return nil, utils.NewValidationError("invalid sellable type: %s", sellableType)
	}
	return requirements, nil
}
