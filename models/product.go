package models

import (
	"context"
	"errors"
	"time"

	"github.com/kaganerp/kagan_backend/utils"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// Product is a sellable cafe catalog entry (drinks and food). Selling one
// triggers stock consumption through its recipe edges.
type Product struct {
	ID          int             `gorm:"primary_key" json:"id"`
	Name        string          `gorm:"size:100;not null" json:"name"`
	Code        string          `gorm:"size:50;uniqueIndex;not null" json:"code"`
	Price       decimal.Decimal `gorm:"type:decimal(20,4);not null" json:"price"`
	Category    string          `gorm:"size:50" json:"category"`
	Description string          `gorm:"type:text" json:"description"`
	IsActive    bool            `gorm:"not null;default:true" json:"is_active"`
	CreatedAt   time.Time       `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt   time.Time       `gorm:"autoUpdateTime" json:"updated_at"`
}

type NewProduct struct {
	Name        string          `json:"name" binding:"required"`
	Code        string          `json:"code" binding:"required"`
	Price       decimal.Decimal `json:"price" binding:"required"`
	Category    string          `json:"category"`
	Description string          `json:"description"`
}

func (input *NewProduct) validate(ctx context.Context, db *gorm.DB, id int) error {
	if input.Name == "" || input.Code == "" {
		return utils.NewValidationError("product name and code are required")
	}
	if input.Price.IsNegative() {
		return utils.NewValidationError("product price cannot be negative")
	}

	var count int64
	dbCtx := db.WithContext(ctx).Model(&Product{}).Where("code = ?", input.Code)
	if id > 0 {
		dbCtx = dbCtx.Where("id <> ?", id)
	}
	if err := dbCtx.Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		return utils.NewConflictError("product code %s already exists", input.Code)
	}
	return nil
}

func CreateProduct(ctx context.Context, db *gorm.DB, input *NewProduct) (*Product, error) {
	if err := input.validate(ctx, db, 0); err != nil {
		return nil, err
	}

	product := Product{
		Name:        input.Name,
		Code:        input.Code,
		Price:       input.Price,
		Category:    input.Category,
		Description: input.Description,
		IsActive:    true,
	}
	if err := db.WithContext(ctx).Create(&product).Error; err != nil {
		return nil, err
	}
	return &product, nil
}

func GetProduct(ctx context.Context, db *gorm.DB, id int) (*Product, error) {
	var product Product
	err := db.WithContext(ctx).First(&product, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, utils.ErrorRecordNotFound
		}
		return nil, err
	}
	return &product, nil
}

func ListProducts(ctx context.Context, db *gorm.DB, activeOnly bool) ([]*Product, error) {
	var products []*Product
	dbCtx := db.WithContext(ctx).Model(&Product{})
	if activeOnly {
		dbCtx = dbCtx.Where("is_active = ?", true)
	}
	if err := dbCtx.Order("name").Find(&products).Error; err != nil {
		return nil, err
	}
	return products, nil
}
