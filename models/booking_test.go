package models_test

import (
	"errors"
	"testing"
	"time"

	"github.com/kaganerp/kagan_backend/models"
	"github.com/kaganerp/kagan_backend/utils"
)

func TestCreateBookingStartsPending(t *testing.T) {
	db := newTestDB(t)
	ctx, barber := actorContext(t, db, 30)

	customer, err := models.CreateCustomer(ctx, db, &models.NewCustomer{FullName: "Aslan"})
	if err != nil {
		t.Fatalf("CreateCustomer: %v", err)
	}
	haircut := mustCreateService(t, db, "Haircut", "50000")

	booking, err := models.CreateBooking(ctx, db, &models.NewBooking{
		CustomerId:      customer.ID,
		BarberId:        barber.ID,
		ServiceId:       haircut.ID,
		BookingDatetime: time.Now().UTC().Add(24 * time.Hour),
	})
	if err != nil {
		t.Fatalf("CreateBooking: %v", err)
	}
	if booking.Status != models.BookingStatusPending {
		t.Errorf("status = %s, want pending", booking.Status)
	}
}

func TestCreateBookingValidatesReferences(t *testing.T) {
	db := newTestDB(t)
	ctx, barber := actorContext(t, db, 0)

	customer, err := models.CreateCustomer(ctx, db, &models.NewCustomer{FullName: "Aslan"})
	if err != nil {
		t.Fatalf("CreateCustomer: %v", err)
	}
	haircut := mustCreateService(t, db, "Haircut", "50000")
	when := time.Now().UTC().Add(24 * time.Hour)

	cases := []struct {
		name  string
		input models.NewBooking
	}{
		{"unknown customer", models.NewBooking{CustomerId: 999, BarberId: barber.ID, ServiceId: haircut.ID, BookingDatetime: when}},
		{"unknown barber", models.NewBooking{CustomerId: customer.ID, BarberId: 999, ServiceId: haircut.ID, BookingDatetime: when}},
		{"unknown service", models.NewBooking{CustomerId: customer.ID, BarberId: barber.ID, ServiceId: 999, BookingDatetime: when}},
	}
	for _, tc := range cases {
		if _, err := models.CreateBooking(ctx, db, &tc.input); !errors.Is(err, utils.ErrorRecordNotFound) {
			t.Errorf("%s: error = %v, want ErrorRecordNotFound", tc.name, err)
		}
	}

	_, err = models.CreateBooking(ctx, db, &models.NewBooking{
		CustomerId: customer.ID, BarberId: barber.ID, ServiceId: haircut.ID,
	})
	var validationErr *utils.ValidationError
	if !errors.As(err, &validationErr) {
		t.Errorf("missing datetime error = %v, want validation error", err)
	}
}

func TestUpdateBookingStatus(t *testing.T) {
	db := newTestDB(t)
	ctx, barber := actorContext(t, db, 0)

	customer, err := models.CreateCustomer(ctx, db, &models.NewCustomer{FullName: "Aslan"})
	if err != nil {
		t.Fatalf("CreateCustomer: %v", err)
	}
	haircut := mustCreateService(t, db, "Haircut", "50000")
	booking, err := models.CreateBooking(ctx, db, &models.NewBooking{
		CustomerId:      customer.ID,
		BarberId:        barber.ID,
		ServiceId:       haircut.ID,
		BookingDatetime: time.Now().UTC().Add(24 * time.Hour),
	})
	if err != nil {
		t.Fatalf("CreateBooking: %v", err)
	}

	for _, status := range []models.BookingStatus{
		models.BookingStatusConfirmed,
		models.BookingStatusCompleted,
	} {
		if _, err := models.UpdateBookingStatus(ctx, db, booking.ID, status); err != nil {
			t.Fatalf("UpdateBookingStatus(%s): %v", status, err)
		}
		got, err := models.GetBooking(ctx, db, booking.ID)
		if err != nil {
			t.Fatalf("GetBooking: %v", err)
		}
		if got.Status != status {
			t.Errorf("status = %s, want %s", got.Status, status)
		}
	}

	_, err = models.UpdateBookingStatus(ctx, db, booking.ID, models.BookingStatus("done"))
	var validationErr *utils.ValidationError
	if !errors.As(err, &validationErr) {
		t.Errorf("invalid status error = %v, want validation error", err)
	}

	if _, err := models.UpdateBookingStatus(ctx, db, 999, models.BookingStatusCancelled); !errors.Is(err, utils.ErrorRecordNotFound) {
		t.Errorf("missing booking error = %v, want ErrorRecordNotFound", err)
	}
}

func TestListBookingsFilters(t *testing.T) {
	db := newTestDB(t)
	ctx, barber := actorContext(t, db, 0)

	other, err := models.CreateUser(ctx, db, &models.NewUser{
		Username: "other-barber",
		Password: "secret",
		Role:     models.UserRoleBarber,
	})
	if err != nil {
		t.Fatalf("CreateUser: %v", err)
	}
	customer, err := models.CreateCustomer(ctx, db, &models.NewCustomer{FullName: "Aslan"})
	if err != nil {
		t.Fatalf("CreateCustomer: %v", err)
	}
	haircut := mustCreateService(t, db, "Haircut", "50000")

	early, err := models.CreateBooking(ctx, db, &models.NewBooking{
		CustomerId:      customer.ID,
		BarberId:        barber.ID,
		ServiceId:       haircut.ID,
		BookingDatetime: time.Now().UTC().Add(1 * time.Hour),
	})
	if err != nil {
		t.Fatalf("CreateBooking: %v", err)
	}
	late, err := models.CreateBooking(ctx, db, &models.NewBooking{
		CustomerId:      customer.ID,
		BarberId:        other.ID,
		ServiceId:       haircut.ID,
		BookingDatetime: time.Now().UTC().Add(2 * time.Hour),
	})
	if err != nil {
		t.Fatalf("CreateBooking: %v", err)
	}
	if _, err := models.UpdateBookingStatus(ctx, db, late.ID, models.BookingStatusConfirmed); err != nil {
		t.Fatalf("UpdateBookingStatus: %v", err)
	}

	all, err := models.ListBookings(ctx, db, nil, nil)
	if err != nil {
		t.Fatalf("ListBookings: %v", err)
	}
	if len(all) != 2 {
		t.Fatalf("booking count = %d, want 2", len(all))
	}
	if all[0].ID != late.ID {
		t.Errorf("first booking = %d, want %d (latest datetime first)", all[0].ID, late.ID)
	}

	mine, err := models.ListBookings(ctx, db, &barber.ID, nil)
	if err != nil {
		t.Fatalf("ListBookings(barber): %v", err)
	}
	if len(mine) != 1 || mine[0].ID != early.ID {
		t.Errorf("barber filter returned %d bookings, want only booking %d", len(mine), early.ID)
	}

	pending := models.BookingStatusPending
	open, err := models.ListBookings(ctx, db, nil, &pending)
	if err != nil {
		t.Fatalf("ListBookings(status): %v", err)
	}
	if len(open) != 1 || open[0].ID != early.ID {
		t.Errorf("status filter returned %d bookings, want only booking %d", len(open), early.ID)
	}
}
