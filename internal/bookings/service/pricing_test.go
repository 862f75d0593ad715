package service

import (
	"errors"
	"math"
	"testing"
	"time"

	bookingserrors "roost/internal/bookings/errors"
	"roost/pkg/model"
)

func nightlyProperty(price float64) *model.Property {
	return &model.Property{
		ID:     "507f1f77bcf86cd799439011",
		HostID: "507f1f77bcf86cd799439012",
		Pricing: model.Pricing{
			PricingType:  model.PricingNightly,
			WeekdayPrice: price,
		},
	}
}

func hourlyProperty(price float64, minHours int) *model.Property {
	return &model.Property{
		ID:     "507f1f77bcf86cd799439011",
		HostID: "507f1f77bcf86cd799439012",
		Pricing: model.Pricing{
			PricingType: model.PricingHourly,
			HourlyPrice: price,
			MinHours:    minHours,
		},
	}
}

func TestComputeQuote_NightlyBasic(t *testing.T) {
	property := nightlyProperty(100)
	checkIn := time.Date(2026, 6, 1, 14, 0, 0, 0, time.UTC)
	checkOut := checkIn.Add(72 * time.Hour)

	quote, err := ComputeQuote(property, checkIn, checkOut, nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if quote.Nights == nil || *quote.Nights != 3 {
		t.Fatalf("expected 3 nights, got %v", quote.Nights)
	}
	if quote.Hours != nil {
		t.Errorf("nightly quote must not carry hours")
	}
	if quote.Total != 300 {
		t.Errorf("expected total 300, got %v", quote.Total)
	}
}

func TestComputeQuote_NightlyPartialDayRoundsUp(t *testing.T) {
	property := nightlyProperty(100)
	checkIn := time.Date(2026, 6, 1, 14, 0, 0, 0, time.UTC)
	// 2 days and 2 hours rounds up to 3 nights.
	checkOut := checkIn.Add(50 * time.Hour)

	quote, err := ComputeQuote(property, checkIn, checkOut, nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if *quote.Nights != 3 {
		t.Errorf("expected 3 nights for 50h stay, got %d", *quote.Nights)
	}
}

func TestComputeQuote_NightlyMinimumOneNight(t *testing.T) {
	property := nightlyProperty(80)
	checkIn := time.Date(2026, 6, 1, 14, 0, 0, 0, time.UTC)
	checkOut := checkIn.Add(3 * time.Hour)

	quote, err := ComputeQuote(property, checkIn, checkOut, nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if *quote.Nights != 1 {
		t.Errorf("expected floor of 1 night, got %d", *quote.Nights)
	}
	if quote.Total != 80 {
		t.Errorf("expected total 80, got %v", quote.Total)
	}
}

func TestComputeQuote_NightlyPriceNotConfigured(t *testing.T) {
	property := nightlyProperty(0)
	checkIn := time.Date(2026, 6, 1, 14, 0, 0, 0, time.UTC)

	_, err := ComputeQuote(property, checkIn, checkIn.Add(24*time.Hour), nil)
	if !errors.Is(err, bookingserrors.ErrPriceNotConfigured) {
		t.Fatalf("expected ErrPriceNotConfigured, got %v", err)
	}
}

func TestComputeQuote_HourlyFractionalHours(t *testing.T) {
	property := hourlyProperty(40, 1)
	checkIn := time.Date(2026, 6, 1, 10, 0, 0, 0, time.UTC)
	checkOut := checkIn.Add(90 * time.Minute)

	quote, err := ComputeQuote(property, checkIn, checkOut, nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if quote.Hours == nil || *quote.Hours != 1.5 {
		t.Fatalf("expected 1.5 hours billed as-is, got %v", quote.Hours)
	}
	if quote.Nights != nil {
		t.Errorf("hourly quote must not carry nights")
	}
	if quote.Total != 60 {
		t.Errorf("expected total 60, got %v", quote.Total)
	}
	if quote.Discount != 0 {
		t.Errorf("hourly bookings never discount, got %v", quote.Discount)
	}
}

func TestComputeQuote_HourlyBelowMinimum(t *testing.T) {
	property := hourlyProperty(40, 2)
	checkIn := time.Date(2026, 6, 1, 10, 0, 0, 0, time.UTC)
	checkOut := checkIn.Add(90 * time.Minute)

	_, err := ComputeQuote(property, checkIn, checkOut, nil)
	if !errors.Is(err, bookingserrors.ErrMinimumDurationNotMet) {
		t.Fatalf("expected ErrMinimumDurationNotMet, got %v", err)
	}
}

func TestComputeQuote_HourlyPriceNotConfigured(t *testing.T) {
	property := hourlyProperty(0, 1)
	checkIn := time.Date(2026, 6, 1, 10, 0, 0, 0, time.UTC)

	_, err := ComputeQuote(property, checkIn, checkIn.Add(2*time.Hour), nil)
	if !errors.Is(err, bookingserrors.ErrPriceNotConfigured) {
		t.Fatalf("expected ErrPriceNotConfigured, got %v", err)
	}
}

func TestComputeQuote_DiscountsStack(t *testing.T) {
	property := nightlyProperty(100)
	property.Pricing.Discounts = model.Discounts{
		NewListing: true,
		Weekly:     true,
	}
	checkIn := time.Date(2026, 6, 1, 14, 0, 0, 0, time.UTC)
	checkOut := checkIn.Add(7 * 24 * time.Hour)

	quote, err := ComputeQuote(property, checkIn, checkOut, nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	// 7 nights x 100 = 700; newListing 0.20 + weekly 0.10 = 0.30 of subtotal.
	if quote.Subtotal != 700 {
		t.Errorf("expected subtotal 700, got %v", quote.Subtotal)
	}
	if quote.Discount != 210 {
		t.Errorf("expected stacked discount 210, got %v", quote.Discount)
	}
	if quote.Total != 490 {
		t.Errorf("expected total 490, got %v", quote.Total)
	}
}

func TestComputeQuote_LastMinuteOnlyForSingleNight(t *testing.T) {
	property := nightlyProperty(100)
	property.Pricing.Discounts = model.Discounts{LastMinute: true}
	checkIn := time.Date(2026, 6, 1, 14, 0, 0, 0, time.UTC)

	oneNight, err := ComputeQuote(property, checkIn, checkIn.Add(24*time.Hour), nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if oneNight.Discount != 1 {
		t.Errorf("expected 1%% discount on single night, got %v", oneNight.Discount)
	}

	twoNights, err := ComputeQuote(property, checkIn, checkIn.Add(48*time.Hour), nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if twoNights.Discount != 0 {
		t.Errorf("last minute discount must not apply to 2 nights, got %v", twoNights.Discount)
	}
}

func TestComputeQuote_MonthlyThreshold(t *testing.T) {
	property := nightlyProperty(50)
	property.Pricing.Discounts = model.Discounts{Monthly: true}
	checkIn := time.Date(2026, 6, 1, 14, 0, 0, 0, time.UTC)

	under, err := ComputeQuote(property, checkIn, checkIn.Add(29*24*time.Hour), nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if under.Discount != 0 {
		t.Errorf("29 nights must not earn monthly discount, got %v", under.Discount)
	}

	over, err := ComputeQuote(property, checkIn, checkIn.Add(30*24*time.Hour), nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if over.Discount != 300 {
		t.Errorf("expected 20%% of 1500, got %v", over.Discount)
	}
}

func TestComputeQuote_ExtrasMatchedByNormalizedName(t *testing.T) {
	property := nightlyProperty(100)
	property.Extras = []model.Extra{
		{Name: "late checkout", Price: 25},
		{Name: "airport pickup", Price: 40},
	}
	checkIn := time.Date(2026, 6, 1, 14, 0, 0, 0, time.UTC)
	checkOut := checkIn.Add(24 * time.Hour)

	quote, err := ComputeQuote(property, checkIn, checkOut, []string{"  Late   Checkout ", "minibar"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(quote.Extras) != 1 || quote.Extras[0].Name != "late checkout" {
		t.Fatalf("expected only the late checkout extra, got %v", quote.Extras)
	}
	if quote.Total != 125 {
		t.Errorf("expected total 125, got %v", quote.Total)
	}
}

func TestComputeQuote_ExtrasIncludedBeforeDiscount(t *testing.T) {
	property := nightlyProperty(100)
	property.Pricing.Discounts = model.Discounts{NewListing: true}
	property.Extras = []model.Extra{{Name: "cleaning", Price: 50}}
	checkIn := time.Date(2026, 6, 1, 14, 0, 0, 0, time.UTC)
	checkOut := checkIn.Add(24 * time.Hour)

	quote, err := ComputeQuote(property, checkIn, checkOut, []string{"cleaning"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	// Discount applies to the extras-inclusive subtotal: 150 * 0.20 = 30.
	if quote.Subtotal != 150 {
		t.Errorf("expected subtotal 150, got %v", quote.Subtotal)
	}
	if quote.Discount != 30 {
		t.Errorf("expected discount 30, got %v", quote.Discount)
	}
	if quote.Total != 120 {
		t.Errorf("expected total 120, got %v", quote.Total)
	}
}

func TestComputeQuote_TotalNeverNegativeOrNaN(t *testing.T) {
	property := nightlyProperty(100)
	checkIn := time.Date(2026, 6, 1, 14, 0, 0, 0, time.UTC)
	checkOut := checkIn.Add(24 * time.Hour)

	quote, err := ComputeQuote(property, checkIn, checkOut, nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if math.IsNaN(quote.Total) || quote.Total < 0 {
		t.Fatalf("total must be a non-negative number, got %v", quote.Total)
	}
}

func TestComputeQuote_RoundsToCents(t *testing.T) {
	property := nightlyProperty(99.99)
	property.Pricing.Discounts = model.Discounts{LastMinute: true}
	checkIn := time.Date(2026, 6, 1, 14, 0, 0, 0, time.UTC)
	checkOut := checkIn.Add(24 * time.Hour)

	quote, err := ComputeQuote(property, checkIn, checkOut, nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	// 99.99 * 0.01 = 0.9999 rounds to 1.00; 99.99 - 1.00 = 98.99.
	if quote.Discount != 1 {
		t.Errorf("expected discount rounded to 1.00, got %v", quote.Discount)
	}
	if quote.Total != 98.99 {
		t.Errorf("expected total 98.99, got %v", quote.Total)
	}
}
