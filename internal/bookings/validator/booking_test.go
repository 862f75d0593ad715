package validator

import (
	"strings"
	"testing"
	"time"

	"roost/pkg/logger"
	"roost/pkg/model"
)

func testLogger() *logger.Logger {
	return logger.New(logger.Config{
		Level:   "error",
		Format:  logger.JSON,
		Service: "test",
	})
}

func validRequest() *model.BookingRequest {
	checkIn := time.Date(2026, 9, 1, 14, 0, 0, 0, time.UTC)
	return &model.BookingRequest{
		PropertyID: "507f1f77bcf86cd799439011",
		GuestID:    "507f1f77bcf86cd799439012",
		CheckIn:    checkIn,
		CheckOut:   checkIn.Add(48 * time.Hour),
		Guests:     2,
	}
}

func intPtr(v int) *int { return &v }

func floatPtr(v float64) *float64 { return &v }

func TestValidateRequest_Valid(t *testing.T) {
	v := NewBookingValidator(testLogger())
	if err := v.ValidateRequest(validRequest()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestValidateRequest_MissingPropertyID(t *testing.T) {
	v := NewBookingValidator(testLogger())
	req := validRequest()
	req.PropertyID = ""

	err := v.ValidateRequest(req)
	if err == nil {
		t.Fatal("expected error for missing property ID")
	}
	if !strings.Contains(err.Error(), "PropertyID") {
		t.Errorf("error should name the field, got %v", err)
	}
}

func TestValidateRequest_MalformedGuestID(t *testing.T) {
	v := NewBookingValidator(testLogger())
	req := validRequest()
	req.GuestID = "not-an-object-id"

	if err := v.ValidateRequest(req); err == nil {
		t.Fatal("expected error for malformed guest ID")
	}
}

func TestValidateRequest_ZeroGuestsRejected(t *testing.T) {
	v := NewBookingValidator(testLogger())
	req := validRequest()
	req.Guests = -1

	if err := v.ValidateRequest(req); err == nil {
		t.Fatal("expected error for negative guest count")
	}
}

func TestValidateRequest_CheckOutBeforeCheckIn(t *testing.T) {
	v := NewBookingValidator(testLogger())
	req := validRequest()
	req.CheckOut = req.CheckIn.Add(-time.Hour)

	if err := v.ValidateRequest(req); err == nil {
		t.Fatal("expected error for inverted range")
	}
}

func validBooking() *model.Booking {
	checkIn := time.Date(2026, 9, 1, 14, 0, 0, 0, time.UTC)
	return &model.Booking{
		PropertyID:  "507f1f77bcf86cd799439011",
		GuestID:     "507f1f77bcf86cd799439012",
		HostID:      "507f1f77bcf86cd799439013",
		CheckIn:     checkIn,
		CheckOut:    checkIn.Add(48 * time.Hour),
		Guests:      2,
		TotalPrice:  200,
		TotalNights: intPtr(2),
		Status:      model.StatusPending,
	}
}

func TestValidateBooking_Valid(t *testing.T) {
	v := NewBookingValidator(testLogger())
	if err := v.ValidateBooking(validBooking()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestValidateBooking_NightsAndHoursMutuallyExclusive(t *testing.T) {
	v := NewBookingValidator(testLogger())

	booking := validBooking()
	booking.TotalHours = floatPtr(48)
	if err := v.ValidateBooking(booking); err == nil {
		t.Error("expected error when both nights and hours are set")
	}

	booking = validBooking()
	booking.TotalNights = nil
	if err := v.ValidateBooking(booking); err == nil {
		t.Error("expected error when neither nights nor hours is set")
	}
}

func TestValidateBooking_UnknownStatus(t *testing.T) {
	v := NewBookingValidator(testLogger())
	booking := validBooking()
	booking.Status = "archived"

	if err := v.ValidateBooking(booking); err == nil {
		t.Fatal("expected error for unknown status")
	}
}

func TestValidateBooking_NegativeTotal(t *testing.T) {
	v := NewBookingValidator(testLogger())
	booking := validBooking()
	booking.TotalPrice = -1

	if err := v.ValidateBooking(booking); err == nil {
		t.Fatal("expected error for negative total")
	}
}
