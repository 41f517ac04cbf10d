package models_test

import (
	"context"
	"errors"
	"testing"

	"github.com/kaganerp/kagan_backend/models"
	"github.com/kaganerp/kagan_backend/utils"
)

func TestCreateCustomerValidatesPhoneNumber(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()

	customer, err := models.CreateCustomer(ctx, db, &models.NewCustomer{
		FullName: "Aslan",
		Phone:    "0532 123 45 67",
	})
	if err != nil {
		t.Fatalf("CreateCustomer with valid phone: %v", err)
	}
	if customer.LoyaltyPoints != 0 {
		t.Errorf("loyalty points = %d, want 0 for new customer", customer.LoyaltyPoints)
	}

	for _, phone := range []string{"not-a-phone", "123"} {
		_, err := models.CreateCustomer(ctx, db, &models.NewCustomer{
			FullName: "Bora",
			Phone:    phone,
		})
		var validationErr *utils.ValidationError
		if !errors.As(err, &validationErr) {
			t.Errorf("CreateCustomer(phone=%q) error = %v, want validation error", phone, err)
		}
	}

	// No phone is fine; walk-ins are recorded without one.
	if _, err := models.CreateCustomer(ctx, db, &models.NewCustomer{FullName: "Cem"}); err != nil {
		t.Errorf("CreateCustomer without phone: %v", err)
	}
}

func TestCreateCustomerRejectsDuplicatePhone(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()

	if _, err := models.CreateCustomer(ctx, db, &models.NewCustomer{
		FullName: "Aslan",
		Phone:    "0532 123 45 67",
	}); err != nil {
		t.Fatalf("CreateCustomer: %v", err)
	}

	_, err := models.CreateCustomer(ctx, db, &models.NewCustomer{
		FullName: "Bora",
		Phone:    "0532 123 45 67",
	})
	var conflictErr *utils.ConflictError
	if !errors.As(err, &conflictErr) {
		t.Errorf("duplicate phone error = %v, want conflict error", err)
	}
}
