package validator

import (
	"errors"
	"fmt"
	"roost/pkg/model"
	"roost/pkg/sanitizer"

	"github.com/go-playground/validator/v10"
)

type ValidationError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

func (v ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", v.Field, v.Message)
}

type ValidationErrors []ValidationError

func (v ValidationErrors) Error() string {
	if len(v) == 0 {
		return ""
	}
	return fmt.Sprintf("validation failed: %d error(s)", len(v))
}

type PropertyValidator struct {
	validate *validator.Validate
}

func NewPropertyValidator() *PropertyValidator {
	return &PropertyValidator{
		validate: validator.New(),
	}
}

func (v *PropertyValidator) Validate(property *model.Property) error {
	if err := v.validate.Struct(property); err != nil {
		var validationErrs validator.ValidationErrors
		if errors.As(err, &validationErrs) {
			return v.translateValidationErrors(validationErrs)
		}
		return err
	}

	var ruleErrs ValidationErrors
	ruleErrs = append(ruleErrs, validatePricing(&property.Pricing)...)
	ruleErrs = append(ruleErrs, validateExtras(property.Extras)...)
	if len(ruleErrs) > 0 {
		return ruleErrs
	}

	return nil
}

// ValidateUpdate checks only the fields present on a partial update.
func (v *PropertyValidator) ValidateUpdate(update *model.PropertyUpdate) error {
	if err := v.validate.Struct(update); err != nil {
		var validationErrs validator.ValidationErrors
		if errors.As(err, &validationErrs) {
			return v.translateValidationErrors(validationErrs)
		}
		return err
	}

	var ruleErrs ValidationErrors
	if update.Pricing != nil {
		ruleErrs = append(ruleErrs, validatePricing(update.Pricing)...)
	}
	if update.Extras != nil {
		ruleErrs = append(ruleErrs, validateExtras(*update.Extras)...)
	}
	if update.Location != nil {
		if err := v.validate.Struct(update.Location); err != nil {
			var validationErrs validator.ValidationErrors
			if errors.As(err, &validationErrs) {
				ruleErrs = append(ruleErrs, v.translateValidationErrors(validationErrs)...)
			}
		}
	}
	if len(ruleErrs) > 0 {
		return ruleErrs
	}

	return nil
}

// validatePricing enforces that the configured pricing type carries a usable
// price. A NIGHTLY property needs a positive weekday price, an HOURLY
// property a positive hourly price and a minimum duration of at least one
// hour.
func validatePricing(pricing *model.Pricing) ValidationErrors {
	var errs ValidationErrors

	switch pricing.PricingType {
	case model.PricingNightly:
		if pricing.WeekdayPrice <= 0 {
			errs = append(errs, ValidationError{
				Field:   "WeekdayPrice",
				Message: "nightly pricing requires a positive weekday_price",
			})
		}
	case model.PricingHourly:
		if pricing.HourlyPrice <= 0 {
			errs = append(errs, ValidationError{
				Field:   "HourlyPrice",
				Message: "hourly pricing requires a positive hourly_price",
			})
		}
		if pricing.MinHours < 1 {
			errs = append(errs, ValidationError{
				Field:   "MinHours",
				Message: "hourly pricing requires min_hours of at least 1",
			})
		}
	}

	return errs
}

// validateExtras rejects blank names and duplicates. Names are compared
// after normalization so "Late Checkout" and "late  checkout" collide.
func validateExtras(extras []model.Extra) ValidationErrors {
	var errs ValidationErrors

	seen := make(map[string]struct{}, len(extras))
	for i, extra := range extras {
		name := sanitizer.NormalizeExtraName(extra.Name)
		if name == "" {
			errs = append(errs, ValidationError{
				Field:   fmt.Sprintf("Extras[%d].Name", i),
				Message: "extra name must not be blank",
			})
			continue
		}
		if _, dup := seen[name]; dup {
			errs = append(errs, ValidationError{
				Field:   fmt.Sprintf("Extras[%d].Name", i),
				Message: fmt.Sprintf("duplicate extra name: %s", name),
			})
			continue
		}
		seen[name] = struct{}{}
	}

	return errs
}

func (v *PropertyValidator) translateValidationErrors(errs validator.ValidationErrors) ValidationErrors {
	var validationErrors ValidationErrors

	for _, err := range errs {
		message := err.Error()

		switch err.Tag() {
		case "required":
			message = fmt.Sprintf("%s is required", err.Field())
		case "min":
			message = fmt.Sprintf("%s must be at least %s", err.Field(), err.Param())
		case "max":
			message = fmt.Sprintf("%s must be at most %s", err.Field(), err.Param())
		case "mongodb":
			message = fmt.Sprintf("%s must be a valid MongoDB ObjectID", err.Field())
		case "oneof":
			message = fmt.Sprintf("%s must be one of: %s", err.Field(), err.Param())
		}

		validationErrors = append(validationErrors, ValidationError{
			Field:   err.Field(),
			Message: message,
		})
	}

	return validationErrors
}
