package model

import "time"

const (
	PricingNightly = "NIGHTLY"
	PricingHourly  = "HOURLY"
)

// AutoApproveQuota is the number of bookings a property may auto-confirm
// under the approve-first-five policy before falling back to host review.
const AutoApproveQuota = 5

type Location struct {
	Address string `json:"address" bson:"address" validate:"required,min=2,max=200"`
	City    string `json:"city" bson:"city" validate:"required,min=2,max=100"`
	Country string `json:"country" bson:"country" validate:"required,min=2,max=100"`
}

type Discounts struct {
	NewListing bool `json:"new_listing" bson:"new_listing"`
	LastMinute bool `json:"last_minute" bson:"last_minute"`
	Weekly     bool `json:"weekly" bson:"weekly"`
	Monthly    bool `json:"monthly" bson:"monthly"`
}

// Pricing is the per-property pricing configuration. Exactly one of
// WeekdayPrice / HourlyPrice is meaningful, selected by PricingType.
type Pricing struct {
	PricingType  string    `json:"pricing_type" bson:"pricing_type" validate:"required,oneof=NIGHTLY HOURLY"`
	WeekdayPrice float64   `json:"weekday_price" bson:"weekday_price" validate:"omitempty,min=0"`
	HourlyPrice  float64   `json:"hourly_price" bson:"hourly_price" validate:"omitempty,min=0"`
	MinHours     int       `json:"min_hours" bson:"min_hours" validate:"omitempty,min=1"`
	Discounts    Discounts `json:"discounts" bson:"discounts"`
}

type Extra struct {
	Name  string  `json:"name" bson:"name" validate:"required,min=1,max=100"`
	Price float64 `json:"price" bson:"price" validate:"min=0"`
}

type BookingSettings struct {
	InstantBook      bool `json:"instant_book" bson:"instant_book"`
	ApproveFirstFive bool `json:"approve_first_five" bson:"approve_first_five"`
}

type Property struct {
	ID                string          `json:"id,omitempty" bson:"_id,omitempty" validate:"omitempty,mongodb"`
	HostID            string          `json:"host_id" bson:"host_id" validate:"required,mongodb"`
	Title             string          `json:"title" bson:"title" validate:"required,min=2,max=150"`
	Location          Location        `json:"location" bson:"location"`
	Pricing           Pricing         `json:"pricing" bson:"pricing"`
	Extras            []Extra         `json:"extras" bson:"extras" validate:"omitempty,dive"`
	BookingSettings   BookingSettings `json:"booking_settings" bson:"booking_settings"`
	FirstFiveApproved int             `json:"first_five_approved" bson:"first_five_approved" validate:"min=0,max=5"`
	Active            bool            `json:"active" bson:"active"`
	CreatedAt         time.Time       `json:"created_at" bson:"created_at" validate:"omitempty"`
}

type PropertyUpdate struct {
	Title           *string          `json:"title,omitempty" validate:"omitempty,min=2,max=150"`
	Location        *Location        `json:"location,omitempty"`
	Pricing         *Pricing         `json:"pricing,omitempty"`
	Extras          *[]Extra         `json:"extras,omitempty" validate:"omitempty,dive"`
	BookingSettings *BookingSettings `json:"booking_settings,omitempty"`
	Active          *bool            `json:"active,omitempty"`
}
