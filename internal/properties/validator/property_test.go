package validator

import (
	"testing"

	"roost/pkg/model"
)

func validProperty() *model.Property {
	return &model.Property{
		HostID: "507f1f77bcf86cd799439013",
		Title:  "Loft by the sea",
		Location: model.Location{
			Address: "12 Harbour Lane",
			City:    "Lisbon",
			Country: "Portugal",
		},
		Pricing: model.Pricing{
			PricingType:  model.PricingNightly,
			WeekdayPrice: 100,
		},
		Active: true,
	}
}

func TestValidate_Valid(t *testing.T) {
	v := NewPropertyValidator()
	if err := v.Validate(validProperty()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestValidate_MissingTitle(t *testing.T) {
	v := NewPropertyValidator()
	property := validProperty()
	property.Title = ""

	if err := v.Validate(property); err == nil {
		t.Fatal("expected error for missing title")
	}
}

func TestValidate_NightlyWithoutWeekdayPrice(t *testing.T) {
	v := NewPropertyValidator()
	property := validProperty()
	property.Pricing.WeekdayPrice = 0

	if err := v.Validate(property); err == nil {
		t.Fatal("expected error for nightly pricing without weekday price")
	}
}

func TestValidate_HourlyRequiresPriceAndMinHours(t *testing.T) {
	v := NewPropertyValidator()

	property := validProperty()
	property.Pricing = model.Pricing{
		PricingType: model.PricingHourly,
		HourlyPrice: 40,
		MinHours:    2,
	}
	if err := v.Validate(property); err != nil {
		t.Fatalf("unexpected error for valid hourly pricing: %v", err)
	}

	property.Pricing.HourlyPrice = 0
	if err := v.Validate(property); err == nil {
		t.Error("expected error for hourly pricing without hourly price")
	}

	property.Pricing.HourlyPrice = 40
	property.Pricing.MinHours = 0
	if err := v.Validate(property); err == nil {
		t.Error("expected error for hourly pricing without min hours")
	}
}

func TestValidate_UnknownPricingType(t *testing.T) {
	v := NewPropertyValidator()
	property := validProperty()
	property.Pricing.PricingType = "WEEKLY"

	if err := v.Validate(property); err == nil {
		t.Fatal("expected error for unknown pricing type")
	}
}

func TestValidate_DuplicateExtrasByNormalizedName(t *testing.T) {
	v := NewPropertyValidator()
	property := validProperty()
	property.Extras = []model.Extra{
		{Name: "Late Checkout", Price: 25},
		{Name: "late  checkout", Price: 30},
	}

	if err := v.Validate(property); err == nil {
		t.Fatal("expected error for extras colliding after normalization")
	}
}

func TestValidate_BlankExtraName(t *testing.T) {
	v := NewPropertyValidator()
	property := validProperty()
	property.Extras = []model.Extra{{Name: "   ", Price: 10}}

	if err := v.Validate(property); err == nil {
		t.Fatal("expected error for blank extra name")
	}
}

func TestValidateUpdate_PartialFieldsOnly(t *testing.T) {
	v := NewPropertyValidator()
	title := "Renamed loft"

	if err := v.ValidateUpdate(&model.PropertyUpdate{Title: &title}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestValidateUpdate_RejectsBadPricing(t *testing.T) {
	v := NewPropertyValidator()
	update := &model.PropertyUpdate{
		Pricing: &model.Pricing{
			PricingType: model.PricingHourly,
			HourlyPrice: 0,
			MinHours:    1,
		},
	}

	if err := v.ValidateUpdate(update); err == nil {
		t.Fatal("expected error for hourly update without price")
	}
}

func TestValidateUpdate_RejectsIncompleteLocation(t *testing.T) {
	v := NewPropertyValidator()
	update := &model.PropertyUpdate{
		Location: &model.Location{City: "Lisbon"},
	}

	if err := v.ValidateUpdate(update); err == nil {
		t.Fatal("expected error for location missing address and country")
	}
}
