package models

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/kaganerp/kagan_backend/utils"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// Invoice is a committed sale. It is created atomically with all of its
// lines and every stock movement the sale caused; once committed it is
// immutable. There is no refund path here; corrections are manual
// adjustment movements against the ledger.
type Invoice struct {
	ID             int             `gorm:"primary_key" json:"id"`
	InvoiceNumber  string          `gorm:"size:50;uniqueIndex;not null" json:"invoice_number"`
	CustomerId     *int            `gorm:"index" json:"customer_id"`
	InvoiceType    InvoiceType     `gorm:"size:20;not null" json:"invoice_type"`
	CreatedBy      int             `gorm:"index;not null" json:"created_by"`
	TotalAmount    decimal.Decimal `gorm:"type:decimal(20,4);default:0" json:"total_amount"`
	DiscountAmount decimal.Decimal `gorm:"type:decimal(20,4);default:0" json:"discount_amount"`
	FinalAmount    decimal.Decimal `gorm:"type:decimal(20,4);default:0" json:"final_amount"`
	PaymentMethod  PaymentMethod   `gorm:"size:20;not null;default:cash" json:"payment_method"`
	Paid           bool            `gorm:"not null;default:true" json:"paid"`
	Notes          string          `gorm:"type:text" json:"notes"`
	Details        []InvoiceDetail `gorm:"foreignKey:InvoiceId" json:"details"`
	CreatedAt      time.Time       `gorm:"autoCreateTime;index" json:"created_at"`
}

// InvoiceDetail is one sold line. Exactly one of ServiceId / ProductId /
// InventoryItemId is set, matching ItemType. BarberId attributes service
// revenue for the commission report.
type InvoiceDetail struct {
	ID              int             `gorm:"primary_key" json:"id"`
	InvoiceId       int             `gorm:"index;not null" json:"invoice_id"`
	ItemType        SellableType    `gorm:"size:20;not null" json:"item_type"`
	ServiceId       *int            `gorm:"index" json:"service_id"`
	ProductId       *int            `gorm:"index" json:"product_id"`
	InventoryItemId *int            `gorm:"index" json:"inventory_item_id"`
	Qty             int             `gorm:"not null;default:1" json:"qty"`
	UnitPrice       decimal.Decimal `gorm:"type:decimal(20,4);not null" json:"unit_price"`
	TotalPrice      decimal.Decimal `gorm:"type:decimal(20,4);not null" json:"total_price"`
	BarberId        *int            `gorm:"index" json:"barber_id"`
}

type NewInvoiceDetail struct {
	ItemType        SellableType    `json:"item_type" binding:"required"`
	ServiceId       *int            `json:"service_id"`
	ProductId       *int            `json:"product_id"`
	InventoryItemId *int            `json:"inventory_item_id"`
	Qty             int             `json:"qty"`
	UnitPrice       decimal.Decimal `json:"unit_price"`
	BarberId        *int            `json:"barber_id"`
}

type NewInvoice struct {
	CustomerId     *int               `json:"customer_id"`
	InvoiceType    InvoiceType        `json:"invoice_type" binding:"required"`
	Details        []NewInvoiceDetail `json:"details" binding:"required"`
	DiscountAmount decimal.Decimal    `json:"discount_amount"`
	PaymentMethod  PaymentMethod      `json:"payment_method"`
	Notes          string             `json:"notes"`
}

// sellableId returns the single id the line references, or an error when
// the discriminator and the set ids do not line up.
func (input *NewInvoiceDetail) sellableId() (int, error) {
	set := 0
	id := 0
	if input.ServiceId != nil {
		set++
		id = *input.ServiceId
	}
	if input.ProductId != nil {
		set++
		id = *input.ProductId
	}
	if input.InventoryItemId != nil {
		set++
		id = *input.InventoryItemId
	}
	if set != 1 {
		return 0, utils.NewValidationError("each line must reference exactly one of service, product or retail item")
	}

	switch input.ItemType {
	case SellableTypeService:
		if input.ServiceId == nil {
			return 0, utils.NewValidationError("service line is missing service_id")
		}
	case SellableTypeProduct:
		if input.ProductId == nil {
			return 0, utils.NewValidationError("product line is missing product_id")
		}
	case SellableTypeRetail:
		if input.InventoryItemId == nil {
			return 0, utils.NewValidationError("retail line is missing inventory_item_id")
		}
	default:
		return 0, utils.NewValidationError("invalid line item type: %s", input.ItemType)
	}
	return id, nil
}

func (input *NewInvoice) validate(ctx context.Context, db *gorm.DB) error {
	if len(input.Details) == 0 {
		return utils.NewValidationError("invoice must have at least one line")
	}
	if !input.InvoiceType.IsValid() {
		return utils.NewValidationError("invalid invoice type: %s", input.InvoiceType)
	}
	if input.PaymentMethod != "" && !input.PaymentMethod.IsValid() {
		return utils.NewValidationError("invalid payment method: %s", input.PaymentMethod)
	}
	if input.CustomerId != nil {
		if _, err := GetCustomer(ctx, db, *input.CustomerId); err != nil {
			return err
		}
	}

	for i := range input.Details {
		line := &input.Details[i]
		if _, err := line.sellableId(); err != nil {
			return err
		}
		if line.Qty <= 0 {
			return utils.NewValidationError("line quantity must be positive")
		}
		if line.UnitPrice.IsNegative() {
			return utils.NewValidationError("line unit price cannot be negative")
		}
		if line.BarberId != nil {
			if _, err := GetUser(ctx, db, *line.BarberId); err != nil {
				return err
			}
		}
	}
	return nil
}

// nextInvoiceNumber derives the number from the highest invoice id plus
// one. The sequence is not a separate counter, so deleted rows leave gaps.
func nextInvoiceNumber(tx *gorm.DB, ctx context.Context) (string, error) {
	var maxId int
	err := tx.WithContext(ctx).Model(&Invoice{}).Select("COALESCE(MAX(id), 0)").Scan(&maxId).Error
	if err != nil {
		return "", err
	}
	number := fmt.Sprintf("INV-%06d", maxId+1)

	// Defensive duplicate check; the sequencing rule makes a collision
	// impossible inside one writer transaction, but a broken import could.
	var count int64
	if err := tx.WithContext(ctx).Model(&Invoice{}).Where("invoice_number = ?", number).Count(&count).Error; err != nil {
		return "", err
	}
	if count > 0 {
		return "", utils.NewConflictError("invoice number %s already exists", number)
	}
	return number, nil
}

// CreateInvoice turns a sale request into a committed Invoice, its lines
// and the stock movements the sale consumed, or fails leaving nothing.
// The whole sequence (totals, numbering, deductions, loyalty points) runs
// inside one transaction; an insufficient-stock failure on the last line
// rolls back deductions already applied for earlier lines.
func CreateInvoice(ctx context.Context, db *gorm.DB, input *NewInvoice) (*Invoice, error) {
	createdBy, ok := utils.GetUserIdFromContext(ctx)
	if !ok || createdBy == 0 {
		return nil, utils.NewValidationError("actor user id is required")
	}

	if err := input.validate(ctx, db); err != nil {
		return nil, err
	}

	paymentMethod := input.PaymentMethod
	if paymentMethod == "" {
		paymentMethod = PaymentMethodCash
	}

	totalAmount := decimal.Zero
	for i := range input.Details {
		line := &input.Details[i]
		totalAmount = totalAmount.Add(line.UnitPrice.Mul(decimal.NewFromInt(int64(line.Qty))))
	}
	// Discount is not validated against the subtotal; a discount larger
	// than the subtotal yields a negative final amount.
	finalAmount := totalAmount.Sub(input.DiscountAmount)

	tx := db.Begin()
	// Always rollback on early-return or panic; Commit below makes the
	// deferred rollback a no-op on success.
	defer func() {
		if r := recover(); r != nil {
			_ = tx.Rollback().Error
			panic(r)
		}
	}()
	defer func() { _ = tx.Rollback().Error }()

	invoiceNumber, err := nextInvoiceNumber(tx, ctx)
	if err != nil {
		return nil, err
	}

	invoice := Invoice{
		InvoiceNumber:  invoiceNumber,
		CustomerId:     input.CustomerId,
		InvoiceType:    input.InvoiceType,
		CreatedBy:      createdBy,
		TotalAmount:    totalAmount,
		DiscountAmount: input.DiscountAmount,
		FinalAmount:    finalAmount,
		PaymentMethod:  paymentMethod,
		Paid:           true,
		Notes:          input.Notes,
	}
	if err := tx.WithContext(ctx).Omit("Details").Create(&invoice).Error; err != nil {
		return nil, err
	}

	for i := range input.Details {
		line := &input.Details[i]
		detail := InvoiceDetail{
			InvoiceId:       invoice.ID,
			ItemType:        line.ItemType,
			ServiceId:       line.ServiceId,
			ProductId:       line.ProductId,
			InventoryItemId: line.InventoryItemId,
			Qty:             line.Qty,
			UnitPrice:       line.UnitPrice,
			TotalPrice:      line.UnitPrice.Mul(decimal.NewFromInt(int64(line.Qty))),
			BarberId:        line.BarberId,
		}
		if err := tx.WithContext(ctx).Create(&detail).Error; err != nil {
			return nil, err
		}

		if err := deductForLine(tx, ctx, invoice.ID, line); err != nil {
			return nil, err
		}
		invoice.Details = append(invoice.Details, detail)
	}

	if input.CustomerId != nil {
		if err := addLoyaltyPoints(tx, ctx, *input.CustomerId, finalAmount); err != nil {
			return nil, err
		}
	}

	if err := tx.Commit().Error; err != nil {
		return nil, err
	}
	return &invoice, nil
}

// deductForLine resolves the line's composition and consumes stock for it.
// Service and product lines consume their BOM/recipe scaled by line qty;
// retail lines consume the inventory item itself one-to-one.
func deductForLine(tx *gorm.DB, ctx context.Context, invoiceId int, line *NewInvoiceDetail) error {
	lineQty := decimal.NewFromInt(int64(line.Qty))

	switch line.ItemType {
	case SellableTypeService:
		requirements, err := GetComposition(ctx, tx, SellableTypeService, *line.ServiceId)
		if err != nil {
			return err
		}
		for _, req := range requirements {
			note := fmt.Sprintf("Service: %d", *line.ServiceId)
			if _, err := DeductStock(tx, ctx, req.InventoryItemId, req.Qty.Mul(lineQty), ReferenceTypeInvoice, invoiceId, note); err != nil {
				return err
			}
		}
	case SellableTypeProduct:
		requirements, err := GetComposition(ctx, tx, SellableTypeProduct, *line.ProductId)
		if err != nil {
			return err
		}
		for _, req := range requirements {
			note := fmt.Sprintf("Product: %d", *line.ProductId)
			if _, err := DeductStock(tx, ctx, req.InventoryItemId, req.Qty.Mul(lineQty), ReferenceTypeInvoice, invoiceId, note); err != nil {
				return err
			}
		}
	case SellableTypeRetail:
		if _, err := DeductStock(tx, ctx, *line.InventoryItemId, lineQty, ReferenceTypeInvoice, invoiceId, "Retail sale"); err != nil {
			return err
		}
	}
	return nil
}

// addLoyaltyPoints credits one point per 10,000 of final amount, truncated
// toward zero (a negative final amount past -10,000 debits points). The
// counter never goes below zero.
func addLoyaltyPoints(tx *gorm.DB, ctx context.Context, customerId int, finalAmount decimal.Decimal) error {
	var customer Customer
	if err := tx.WithContext(ctx).First(&customer, customerId).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return utils.ErrorRecordNotFound
		}
		return err
	}

	points := int(finalAmount.Div(decimal.NewFromInt(10000)).IntPart())
	if points == 0 {
		return nil
	}
	newPoints := customer.LoyaltyPoints + points
	if newPoints < 0 {
		newPoints = 0
	}
	return tx.WithContext(ctx).Model(&customer).Update("LoyaltyPoints", newPoints).Error
}

func GetInvoice(ctx context.Context, db *gorm.DB, id int) (*Invoice, error) {
	var invoice Invoice
	err := db.WithContext(ctx).Preload("Details").First(&invoice, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, utils.ErrorRecordNotFound
		}
		return nil, err
	}
	return &invoice, nil
}

func ListInvoices(ctx context.Context, db *gorm.DB, invoiceType *InvoiceType, skip int, limit int) ([]*Invoice, error) {
	if limit <= 0 || limit > 200 {
		limit = 50
	}
	var invoices []*Invoice
	dbCtx := db.WithContext(ctx).Model(&Invoice{})
	if invoiceType != nil {
		dbCtx = dbCtx.Where("invoice_type = ?", *invoiceType)
	}
	err := dbCtx.Order("created_at DESC").Offset(skip).Limit(limit).Find(&invoices).Error
	if err != nil {
		return nil, err
	}
	return invoices, nil
}
