package model

import "time"

const (
	StatusPending   = "pending"
	StatusConfirmed = "confirmed"
	StatusDeclined  = "declined"
	StatusCancelled = "cancelled"
)

// Booking is the persisted admission record. TotalNights and TotalHours are
// mutually exclusive: nightly bookings carry nights, hourly bookings carry
// (possibly fractional) hours, never both.
type Booking struct {
	ID              string    `json:"id,omitempty" bson:"_id,omitempty" validate:"omitempty,mongodb"`
	PropertyID      string    `json:"property_id" bson:"property_id" validate:"required,mongodb"`
	GuestID         string    `json:"guest_id" bson:"guest_id" validate:"required,mongodb"`
	HostID          string    `json:"host_id" bson:"host_id" validate:"omitempty,mongodb"`
	CheckIn         time.Time `json:"check_in" bson:"check_in" validate:"required"`
	CheckOut        time.Time `json:"check_out" bson:"check_out" validate:"required,gtfield=CheckIn"`
	Guests          int       `json:"guests" bson:"guests" validate:"omitempty,min=1"`
	Extras          []Extra   `json:"extras" bson:"extras"`
	TotalPrice      float64   `json:"total_price" bson:"total_price" validate:"min=0"`
	DiscountApplied float64   `json:"discount_applied" bson:"discount_applied" validate:"min=0"`
	TotalNights     *int      `json:"total_nights,omitempty" bson:"total_nights,omitempty"`
	TotalHours      *float64  `json:"total_hours,omitempty" bson:"total_hours,omitempty"`
	Status          string    `json:"status" bson:"status" validate:"required,oneof=pending confirmed declined cancelled"`
	Completed       bool      `json:"completed" bson:"completed"`
	Reviewed        bool      `json:"reviewed" bson:"reviewed"`
	CreatedAt       time.Time `json:"created_at" bson:"created_at" validate:"omitempty"`
}

// BookingRequest is the ephemeral guest input to the admission engine.
// CheckIn/CheckOut are parsed from RFC3339 at the HTTP edge before this
// struct is built.
type BookingRequest struct {
	PropertyID string    `json:"property_id" validate:"required,mongodb"`
	GuestID    string    `json:"guest_id" validate:"required,mongodb"`
	CheckIn    time.Time `json:"check_in" validate:"required"`
	CheckOut   time.Time `json:"check_out" validate:"required,gtfield=CheckIn"`
	Guests     int       `json:"guests" validate:"omitempty,min=1"`
	Extras     []string  `json:"extras" validate:"omitempty,dive,min=1"`
}
