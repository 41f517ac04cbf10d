package models

import (
	"context"
	"errors"
	"time"

	"github.com/kaganerp/kagan_backend/utils"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// Service is a sellable barbershop catalog entry. Selling one triggers
// stock consumption through its BOM edges; the service row itself carries
// no stock.
type Service struct {
	ID              int             `gorm:"primary_key" json:"id"`
	Name            string          `gorm:"size:100;not null" json:"name"`
	Category        ServiceCategory `gorm:"size:20;not null" json:"category"`
	Price           decimal.Decimal `gorm:"type:decimal(20,4);not null" json:"price"`
	DurationMinutes int             `gorm:"default:30" json:"duration_minutes"`
	Description     string          `gorm:"type:text" json:"description"`
	IsActive        bool            `gorm:"not null;default:true" json:"is_active"`
	CreatedAt       time.Time       `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt       time.Time       `gorm:"autoUpdateTime" json:"updated_at"`
}

type NewService struct {
	Name            string          `json:"name" binding:"required"`
	Category        ServiceCategory `json:"category" binding:"required"`
	Price           decimal.Decimal `json:"price" binding:"required"`
	DurationMinutes int             `json:"duration_minutes"`
	Description     string          `json:"description"`
}

func (input *NewService) validate() error {
	if input.Name == "" {
		return utils.NewValidationError("service name is required")
	}
	if !input.Category.IsValid() {
		return utils.NewValidationError("invalid service category: %s", input.Category)
	}
	if input.Price.IsNegative() {
		return utils.NewValidationError("service price cannot be negative")
	}
	return nil
}

func CreateService(ctx context.Context, db *gorm.DB, input *NewService) (*Service, error) {
	if err := input.validate(); err != nil {
		return nil, err
	}

	duration := input.DurationMinutes
	if duration <= 0 {
		duration = 30
	}
	service := Service{
		Name:            input.Name,
		Category:        input.Category,
		Price:           input.Price,
		DurationMinutes: duration,
		Description:     input.Description,
		IsActive:        true,
	}
	if err := db.WithContext(ctx).Create(&service).Error; err != nil {
		return nil, err
	}
	return &service, nil
}

func GetService(ctx context.Context, db *gorm.DB, id int) (*Service, error) {
	var service Service
	err := db.WithContext(ctx).First(&service, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, utils.ErrorRecordNotFound
		}
		return nil, err
	}
	return &service, nil
}

func ListServices(ctx context.Context, db *gorm.DB, activeOnly bool) ([]*Service, error) {
	var services []*Service
	dbCtx := db.WithContext(ctx).Model(&Service{})
	if activeOnly {
		dbCtx = dbCtx.Where("is_active = ?", true)
	}
	if err := dbCtx.Order("name").Find(&services).Error; err != nil {
		return nil, err
	}
	return services, nil
}
