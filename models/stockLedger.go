package models

import (
	"context"
	"errors"
	"time"

	"github.com/kaganerp/kagan_backend/utils"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// StockMovement is one append-only ledger entry: a single signed quantity
// change to a single inventory item, tagged with its cause. Movements are
// never updated or deleted; corrections are new offsetting rows. For every
// item, current_stock equals the sum of its movement quantities.
type StockMovement struct {
	ID            int             `gorm:"primary_key" json:"id"`
	ItemId        int             `gorm:"index;not null" json:"item_id"`
	MovementType  MovementType    `gorm:"size:20;index;not null" json:"movement_type"`
	Qty           decimal.Decimal `gorm:"type:decimal(20,4);not null" json:"qty"`
	UnitPrice     decimal.Decimal `gorm:"type:decimal(20,4);default:0" json:"unit_price"`
	ReferenceType string          `gorm:"size:50;index" json:"reference_type"`
	ReferenceId   int             `gorm:"index" json:"reference_id"`
	Notes         string          `gorm:"size:255" json:"notes"`
	CreatedAt     time.Time       `gorm:"autoCreateTime;index" json:"created_at"`
}

// lockItem fetches the item row under SELECT ... FOR UPDATE so the
// read-check-write below cannot interleave with a concurrent mutation of
// the same item. SQLite serializes writers anyway; the clause matters when
// the store is swapped for a server database.
func lockItem(tx *gorm.DB, ctx context.Context, itemId int) (*InventoryItem, error) {
	var item InventoryItem
	err := tx.WithContext(ctx).Clauses(clause.Locking{Strength: "UPDATE"}).First(&item, itemId).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, utils.ErrorRecordNotFound
		}
		return nil, err
	}
	return &item, nil
}

// DeductStock consumes qty of an item on behalf of a sale (or other
// referenced event). It must be called inside the caller's transaction:
// the stock decrement and the movement row commit or roll back together
// with the invoice that caused them.
//
// The movement's unit price is snapshotted from the item at deduction
// time; usage cost reports read the snapshot, never the current price.
func DeductStock(tx *gorm.DB, ctx context.Context, itemId int, qty decimal.Decimal, referenceType string, referenceId int, notes string) (*StockMovement, error) {
	if !qty.IsPositive() {
		return nil, utils.NewValidationError("deduct quantity must be positive")
	}

	item, err := lockItem(tx, ctx, itemId)
	if err != nil {
		return nil, err
	}
	if item.CurrentStock.LessThan(qty) {
		return nil, &utils.InsufficientStockError{
			ItemName:  item.Name,
			Available: item.CurrentStock,
			Required:  qty,
		}
	}

	if err := tx.WithContext(ctx).Model(item).
		Update("CurrentStock", item.CurrentStock.Sub(qty)).Error; err != nil {
		return nil, err
	}

	movement := StockMovement{
		ItemId:        itemId,
		MovementType:  MovementTypeUsage,
		Qty:           qty.Neg(),
		UnitPrice:     item.UnitPrice,
		ReferenceType: referenceType,
		ReferenceId:   referenceId,
		Notes:         notes,
	}
	if err := tx.WithContext(ctx).Create(&movement).Error; err != nil {
		return nil, err
	}
	return &movement, nil
}

// AddStock receives qty of an item into stock (a purchase). When a unit
// price is supplied it becomes the item's unit cost going forward
// (last-in cost model). Runs in its own transaction.
func AddStock(db *gorm.DB, ctx context.Context, itemId int, qty decimal.Decimal, unitPrice *decimal.Decimal, notes string) (*StockMovement, error) {
	if !qty.IsPositive() {
		return nil, utils.NewValidationError("add quantity must be positive")
	}

	var movement *StockMovement
	err := db.Transaction(func(tx *gorm.DB) error {
		item, err := lockItem(tx, ctx, itemId)
		if err != nil {
			return err
		}

		updates := map[string]interface{}{
			"CurrentStock": item.CurrentStock.Add(qty),
		}
		price := item.UnitPrice
		if unitPrice != nil {
			price = *unitPrice
			updates["UnitPrice"] = price
		}
		if err := tx.WithContext(ctx).Model(item).Updates(updates).Error; err != nil {
			return err
		}

		movement = &StockMovement{
			ItemId:       itemId,
			MovementType: MovementTypePurchase,
			Qty:          qty,
			UnitPrice:    price,
			Notes:        notes,
		}
		return tx.WithContext(ctx).Create(movement).Error
	})
	if err != nil {
		return nil, err
	}
	return movement, nil
}

// AdjustStock records a manual correction with a signed quantity. Negative
// adjustments are still bound by the non-negative invariant. Runs in its
// own transaction.
func AdjustStock(db *gorm.DB, ctx context.Context, itemId int, qty decimal.Decimal, notes string) (*StockMovement, error) {
	if qty.IsZero() {
		return nil, utils.NewValidationError("adjustment quantity must be non-zero")
	}

	var movement *StockMovement
	err := db.Transaction(func(tx *gorm.DB) error {
		item, err := lockItem(tx, ctx, itemId)
		if err != nil {
			return err
		}

		newStock := item.CurrentStock.Add(qty)
		if newStock.IsNegative() {
			return &utils.InsufficientStockError{
				ItemName:  item.Name,
				Available: item.CurrentStock,
				Required:  qty.Abs(),
			}
		}
		if err := tx.WithContext(ctx).Model(item).Update("CurrentStock", newStock).Error; err != nil {
			return err
		}

		movement = &StockMovement{
			ItemId:       itemId,
			MovementType: MovementTypeAdjustment,
			Qty:          qty,
			UnitPrice:    item.UnitPrice,
			Notes:        notes,
		}
		return tx.WithContext(ctx).Create(movement).Error
	})
	if err != nil {
		return nil, err
	}
	return movement, nil
}

// ListLowStock returns active items at or below their alert threshold,
// most-depleted first (lowest current/threshold ratio). Callers should not
// rely on ordering beyond "closest to empty first".
func ListLowStock(ctx context.Context, db *gorm.DB, inventoryType *InventoryType) ([]*InventoryItem, error) {
	var items []*InventoryItem
	dbCtx := db.WithContext(ctx).Model(&InventoryItem{}).
		Where("current_stock <= min_stock_alert AND is_active = ?", true)
	if inventoryType != nil {
		dbCtx = dbCtx.Where("inventory_type = ?", *inventoryType)
	}
	// CAST forces real division; SQLite divides whole-valued NUMERIC
	// columns as integers, which would collapse every ratio to zero.
	err := dbCtx.Order("CASE WHEN min_stock_alert > 0 THEN CAST(current_stock AS REAL) / min_stock_alert ELSE 0 END, name").
		Find(&items).Error
	if err != nil {
		return nil, err
	}
	return items, nil
}

// TotalInventoryValue sums current_stock * unit_price over active items.
func TotalInventoryValue(ctx context.Context, db *gorm.DB, inventoryType *InventoryType) (decimal.Decimal, error) {
	total := decimal.Zero
	dbCtx := db.WithContext(ctx).Model(&InventoryItem{}).Where("is_active = ?", true)
	if inventoryType != nil {
		dbCtx = dbCtx.Where("inventory_type = ?", *inventoryType)
	}
	err := dbCtx.Select("COALESCE(SUM(current_stock * unit_price), 0)").Scan(&total).Error
	if err != nil {
		return decimal.Zero, err
	}
	return total, nil
}

// ListStockMovements returns an item's ledger history, newest first.
func ListStockMovements(ctx context.Context, db *gorm.DB, itemId int, fromDate *time.Time, toDate *time.Time) ([]*StockMovement, error) {
	if _, err := GetInventoryItem(ctx, db, itemId); err != nil {
		return nil, err
	}

	var movements []*StockMovement
	dbCtx := db.WithContext(ctx).Model(&StockMovement{}).Where("item_id = ?", itemId)
	if fromDate != nil {
		dbCtx = dbCtx.Where("created_at >= ?", *fromDate)
	}
	if toDate != nil {
		dbCtx = dbCtx.Where("created_at <= ?", *toDate)
	}
	if err := dbCtx.Order("id DESC").Find(&movements).Error; err != nil {
		return nil, err
	}
	return movements, nil
}
