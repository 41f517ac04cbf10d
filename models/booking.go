package models

import (
	"context"
	"errors"
	"time"

	"github.com/kaganerp/kagan_backend/utils"
	"gorm.io/gorm"
)

// Booking is a barbershop appointment. It reserves nothing and deducts
// nothing; stock only moves when the performed service is invoiced.
type Booking struct {
	ID              int           `gorm:"primary_key" json:"id"`
	CustomerId      int           `gorm:"index;not null" json:"customer_id"`
	BarberId        int           `gorm:"index;not null" json:"barber_id"`
	ServiceId       int           `gorm:"index;not null" json:"service_id"`
	BookingDatetime time.Time     `gorm:"index;not null" json:"booking_datetime"`
	Status          BookingStatus `gorm:"size:20;not null;default:pending" json:"status"`
	Notes           string        `gorm:"type:text" json:"notes"`
	CreatedAt       time.Time     `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt       time.Time     `gorm:"autoUpdateTime" json:"updated_at"`
}

type NewBooking struct {
	CustomerId      int       `json:"customer_id" binding:"required"`
	BarberId        int       `json:"barber_id" binding:"required"`
	ServiceId       int       `json:"service_id" binding:"required"`
	BookingDatetime time.Time `json:"booking_datetime" binding:"required"`
	Notes           string    `json:"notes"`
}

func (input *NewBooking) validate(ctx context.Context, db *gorm.DB) error {
	if input.BookingDatetime.IsZero() {
		return utils.NewValidationError("booking datetime is required")
	}
	if _, err := GetCustomer(ctx, db, input.CustomerId); err != nil {
		return err
	}
	if _, err := GetUser(ctx, db, input.BarberId); err != nil {
		return err
	}
	if _, err := GetService(ctx, db, input.ServiceId); err != nil {
		return err
	}
	return nil
}

func CreateBooking(ctx context.Context, db *gorm.DB, input *NewBooking) (*Booking, error) {
	if err := input.validate(ctx, db); err != nil {
		return nil, err
	}

	booking := Booking{
		CustomerId:      input.CustomerId,
		BarberId:        input.BarberId,
		ServiceId:       input.ServiceId,
		BookingDatetime: input.BookingDatetime,
		Status:          BookingStatusPending,
		Notes:           input.Notes,
	}
	if err := db.WithContext(ctx).Create(&booking).Error; err != nil {
		return nil, err
	}
	return &booking, nil
}

func GetBooking(ctx context.Context, db *gorm.DB, id int) (*Booking, error) {
	var booking Booking
	err := db.WithContext(ctx).First(&booking, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, utils.ErrorRecordNotFound
		}
		return nil, err
	}
	return &booking, nil
}

// UpdateBookingStatus moves a booking along its lifecycle. Any valid
// status may be set; the front desk corrects mistakes by setting it again.
func UpdateBookingStatus(ctx context.Context, db *gorm.DB, id int, status BookingStatus) (*Booking, error) {
	if !status.IsValid() {
		return nil, utils.NewValidationError("invalid booking status: %s", status)
	}
	booking, err := GetBooking(ctx, db, id)
	if err != nil {
		return nil, err
	}
	if err := db.WithContext(ctx).Model(booking).Update("Status", status).Error; err != nil {
		return nil, err
	}
	return booking, nil
}

func ListBookings(ctx context.Context, db *gorm.DB, barberId *int, status *BookingStatus) ([]*Booking, error) {
	var bookings []*Booking
	dbCtx := db.WithContext(ctx).Model(&Booking{})
	if barberId != nil {
		dbCtx = dbCtx.Where("barber_id = ?", *barberId)
	}
	if status != nil {
		dbCtx = dbCtx.Where("status = ?", *status)
	}
	if err := dbCtx.Order("booking_datetime DESC").Find(&bookings).Error; err != nil {
		return nil, err
	}
	return bookings, nil
}
