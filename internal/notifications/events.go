package notifications

import (
	"roost/pkg/model"
	"time"
)

const (
	EventBookingCreated       = "booking.created"
	EventBookingStatusChanged = "booking.status_changed"
)

// BookingCreatedEvent is published after a booking is admitted, whether it
// landed pending or confirmed.
type BookingCreatedEvent struct {
	BookingID       string    `json:"booking_id"`
	PropertyID      string    `json:"property_id"`
	GuestID         string    `json:"guest_id"`
	HostID          string    `json:"host_id"`
	Status          string    `json:"status"`
	CheckIn         time.Time `json:"check_in"`
	CheckOut        time.Time `json:"check_out"`
	TotalPrice      float64   `json:"total_price"`
	DiscountApplied float64   `json:"discount_applied"`
	TotalNights     *int      `json:"total_nights,omitempty"`
	TotalHours      *float64  `json:"total_hours,omitempty"`
	CreatedAt       time.Time `json:"created_at"`
}

// BookingStatusChangedEvent is published when a host confirms or declines a
// pending booking.
type BookingStatusChangedEvent struct {
	BookingID      string    `json:"booking_id"`
	PropertyID     string    `json:"property_id"`
	GuestID        string    `json:"guest_id"`
	HostID         string    `json:"host_id"`
	PreviousStatus string    `json:"previous_status"`
	NewStatus      string    `json:"new_status"`
	ChangedAt      time.Time `json:"changed_at"`
}

func NewBookingCreatedEvent(booking *model.Booking) BookingCreatedEvent {
	return BookingCreatedEvent{
		BookingID:       booking.ID,
		PropertyID:      booking.PropertyID,
		GuestID:         booking.GuestID,
		HostID:          booking.HostID,
		Status:          booking.Status,
		CheckIn:         booking.CheckIn,
		CheckOut:        booking.CheckOut,
		TotalPrice:      booking.TotalPrice,
		DiscountApplied: booking.DiscountApplied,
		TotalNights:     booking.TotalNights,
		TotalHours:      booking.TotalHours,
		CreatedAt:       booking.CreatedAt,
	}
}

func NewBookingStatusChangedEvent(booking *model.Booking, previousStatus string) BookingStatusChangedEvent {
	return BookingStatusChangedEvent{
		BookingID:      booking.ID,
		PropertyID:     booking.PropertyID,
		GuestID:        booking.GuestID,
		HostID:         booking.HostID,
		PreviousStatus: previousStatus,
		NewStatus:      booking.Status,
		ChangedAt:      time.Now().UTC(),
	}
}
