package models

import (
	"context"
	"errors"
	"time"

	"github.com/kaganerp/kagan_backend/utils"
	"gorm.io/gorm"
)

type Customer struct {
	ID            int       `gorm:"primary_key" json:"id"`
	FullName      string    `gorm:"size:100;not null" json:"full_name"`
	Phone         string    `gorm:"size:20;uniqueIndex" json:"phone"`
	Email         string    `gorm:"size:100" json:"email"`
	Address       string    `gorm:"type:text" json:"address"`
	Notes         string    `gorm:"type:text" json:"notes"`
	LoyaltyPoints int       `gorm:"default:0" json:"loyalty_points"`
	CreatedAt     time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt     time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}

type NewCustomer struct {
	FullName string `json:"full_name" binding:"required"`
	Phone    string `json:"phone"`
	Email    string `json:"email"`
	Address  string `json:"address"`
	Notes    string `json:"notes"`
}

func CreateCustomer(ctx context.Context, db *gorm.DB, input *NewCustomer) (*Customer, error) {
	if input.FullName == "" {
		return nil, utils.NewValidationError("customer name is required")
	}
	if input.Phone != "" {
		if err := utils.ValidatePhoneNumber(input.Phone, utils.CountryCode); err != nil {
			return nil, utils.NewValidationError("invalid phone number %s: %s", input.Phone, err.Error())
		}
		var count int64
		if err := db.WithContext(ctx).Model(&Customer{}).Where("phone = ?", input.Phone).Count(&count).Error; err != nil {
			return nil, err
		}
		if count > 0 {
			return nil, utils.NewConflictError("customer phone %s already exists", input.Phone)
		}
	}

	customer := Customer{
		FullName: input.FullName,
		Phone:    input.Phone,
		Email:    input.Email,
		Address:  input.Address,
		Notes:    input.Notes,
	}
	if err := db.WithContext(ctx).Create(&customer).Error; err != nil {
		return nil, err
	}
	return &customer, nil
}

func GetCustomer(ctx context.Context, db *gorm.DB, id int) (*Customer, error) {
	var customer Customer
	err := db.WithContext(ctx).First(&customer, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, utils.ErrorRecordNotFound
		}
		return nil, err
	}
	return &customer, nil
}

func ListCustomers(ctx context.Context, db *gorm.DB) ([]*Customer, error) {
	var customers []*Customer
	if err := db.WithContext(ctx).Order("full_name").Find(&customers).Error; err != nil {
		return nil, err
	}
	return customers, nil
}
