package models

import (
	"context"
	"errors"
	"time"

	"github.com/kaganerp/kagan_backend/utils"
	"gorm.io/gorm"
)

// User is a staff member: the actor attributed on invoices (created_by)
// and on service lines (barber_id, for commission). Session mechanics live
// outside this core; callers pass an already-authenticated user id.
type User struct {
	ID                   int       `gorm:"primary_key" json:"id"`
	Username             string    `gorm:"size:50;uniqueIndex;not null" json:"username"`
	Email                string    `gorm:"size:100" json:"email"`
	FullName             string    `gorm:"size:100" json:"full_name"`
	HashedPassword       string    `gorm:"size:255;not null" json:"-"`
	Role                 UserRole  `gorm:"size:20;not null;default:barber" json:"role"`
	CommissionPercentage int       `gorm:"default:0" json:"commission_percentage"`
	IsActive             bool      `gorm:"not null;default:true" json:"is_active"`
	CreatedAt            time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt            time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}

type NewUser struct {
	Username             string   `json:"username" binding:"required"`
	Email                string   `json:"email"`
	FullName             string   `json:"full_name"`
	Password             string   `json:"password" binding:"required"`
	Role                 UserRole `json:"role"`
	CommissionPercentage int      `json:"commission_percentage"`
}

func (input *NewUser) validate(ctx context.Context, db *gorm.DB) error {
	if input.Username == "" || input.Password == "" {
		return utils.NewValidationError("username and password are required")
	}
	if input.Role != "" && !input.Role.IsValid() {
		return utils.NewValidationError("invalid role: %s", input.Role)
	}
	if input.CommissionPercentage < 0 || input.CommissionPercentage > 100 {
		return utils.NewValidationError("commission percentage must be between 0 and 100")
	}

	var count int64
	if err := db.WithContext(ctx).Model(&User{}).Where("username = ?", input.Username).Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		return utils.NewConflictError("username %s already exists", input.Username)
	}
	return nil
}

func CreateUser(ctx context.Context, db *gorm.DB, input *NewUser) (*User, error) {
	if err := input.validate(ctx, db); err != nil {
		return nil, err
	}

	hashed, err := utils.HashPassword(input.Password)
	if err != nil {
		return nil, err
	}
	role := input.Role
	if role == "" {
		role = UserRoleBarber
	}
	user := User{
		Username:             input.Username,
		Email:                input.Email,
		FullName:             input.FullName,
		HashedPassword:       string(hashed),
		Role:                 role,
		CommissionPercentage: input.CommissionPercentage,
		IsActive:             true,
	}
	if err := db.WithContext(ctx).Create(&user).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

func GetUser(ctx context.Context, db *gorm.DB, id int) (*User, error) {
	var user User
	err := db.WithContext(ctx).First(&user, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, utils.ErrorRecordNotFound
		}
		return nil, err
	}
	return &user, nil
}
