package service

import (
	"math"
	"time"

	bookingserrors "roost/internal/bookings/errors"
	"roost/pkg/model"
	"roost/pkg/sanitizer"
)

// Discount fractions stack: every enabled flag whose condition holds adds
// its fraction, and the summed fraction is applied once to the pre-discount
// subtotal. Hourly bookings never discount.
const (
	discountNewListing = 0.20
	discountLastMinute = 0.01
	discountWeekly     = 0.10
	discountMonthly    = 0.20

	lastMinuteMaxNights = 1
	weeklyMinNights     = 7
	monthlyMinNights    = 30
)

// Quote is the priced outcome of a validated booking interval against a
// property's pricing configuration. Nights and Hours are mutually exclusive,
// selected by the property's pricing type.
type Quote struct {
	Nights   *int
	Hours    *float64
	Extras   []model.Extra
	Subtotal float64
	Discount float64
	Total    float64
}

// ComputeQuote prices a validated [checkIn, checkOut) interval. It is a pure
// function of the pricing configuration and the interval; callers validate
// the interval and resolve the property first.
func ComputeQuote(property *model.Property, checkIn, checkOut time.Time, requestedExtras []string) (*Quote, error) {
	quote := &Quote{}
	duration := checkOut.Sub(checkIn)

	switch property.Pricing.PricingType {
	case model.PricingHourly:
		if property.Pricing.HourlyPrice <= 0 {
			return nil, bookingserrors.ErrPriceNotConfigured
		}

		// Fractional hours are billed as-is, not rounded up.
		hours := duration.Hours()
		minHours := property.Pricing.MinHours
		if minHours < 1 {
			minHours = 1
		}
		if hours < float64(minHours) {
			return nil, bookingserrors.ErrMinimumDurationNotMet
		}

		quote.Hours = &hours
		quote.Subtotal = hours * property.Pricing.HourlyPrice

	default: // NIGHTLY
		if property.Pricing.WeekdayPrice <= 0 {
			return nil, bookingserrors.ErrPriceNotConfigured
		}

		nights := int(math.Ceil(duration.Hours() / 24))
		if nights < 1 {
			nights = 1
		}

		quote.Nights = &nights
		quote.Subtotal = float64(nights) * property.Pricing.WeekdayPrice
	}

	quote.Extras = matchExtras(property.Extras, requestedExtras)
	for _, extra := range quote.Extras {
		quote.Subtotal += extra.Price
	}

	if quote.Nights != nil {
		fraction := discountFraction(property.Pricing.Discounts, *quote.Nights)
		quote.Discount = round2(quote.Subtotal * fraction)
	}

	quote.Total = round2(quote.Subtotal - quote.Discount)
	if math.IsNaN(quote.Total) || quote.Total < 0 {
		quote.Total = 0
	}

	return quote, nil
}

// matchExtras selects the configured extras whose normalized names appear in
// the request. Unknown names are silently ignored; configured order wins.
func matchExtras(configured []model.Extra, requested []string) []model.Extra {
	selected := []model.Extra{}
	if len(configured) == 0 || len(requested) == 0 {
		return selected
	}

	wanted := make(map[string]struct{}, len(requested))
	for _, name := range sanitizer.NormalizeExtraNames(requested) {
		wanted[name] = struct{}{}
	}

	for _, extra := range configured {
		if _, ok := wanted[sanitizer.NormalizeExtraName(extra.Name)]; ok {
			selected = append(selected, extra)
		}
	}
	return selected
}

func discountFraction(d model.Discounts, nights int) float64 {
	fraction := 0.0
	if d.NewListing {
		fraction += discountNewListing
	}
	if d.LastMinute && nights == lastMinuteMaxNights {
		fraction += discountLastMinute
	}
	if d.Weekly && nights >= weeklyMinNights {
		fraction += discountWeekly
	}
	if d.Monthly && nights >= monthlyMinNights {
		fraction += discountMonthly
	}
	return fraction
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
