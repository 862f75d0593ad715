// Package sanitizer provides input normalization for marketplace data.
//
// All normalization functions are idempotent - applying them multiple times
// produces the same result. Functions handle invalid input gracefully,
// typically by returning empty strings rather than errors.
//
// Extra names are normalized before matching a booking request's requested
// extras against a property's configured extras, so "  Late Checkout "
// matches "late checkout".
package sanitizer
