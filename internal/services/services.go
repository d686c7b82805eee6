package services

import (
	"errors"
	"fmt"
)

// Coordinate validation constants
const (
	MinLatitude  = -90.0
	MaxLatitude  = 90.0
	MinLongitude = -180.0
	MaxLongitude = 180.0
)

// Service-level errors
var (
	ErrRecordNotFound       = errors.New("record not found")
	ErrInvalidCoordinates   = errors.New("invalid coordinates")
	ErrInvalidCategory      = errors.New("invalid category")
	ErrEmptyCategories      = errors.New("at least one category is required")
	ErrConfirmationRequired = errors.New("deleting all records requires confirmation")
)

// validateCoordinates checks the ranges of whichever coordinates are present.
// A missing coordinate is allowed: location capture can fail in the field.
func validateCoordinates(lat, lng *float64) error {
	if lat != nil && (*lat < MinLatitude || *lat > MaxLatitude) {
		return fmt.Errorf("%w: latitude must be between %f and %f, got %f",
			ErrInvalidCoordinates, MinLatitude, MaxLatitude, *lat)
	}
	if lng != nil && (*lng < MinLongitude || *lng > MaxLongitude) {
		return fmt.Errorf("%w: longitude must be between %f and %f, got %f",
			ErrInvalidCoordinates, MinLongitude, MaxLongitude, *lng)
	}
	return nil
}

func coordinateFields(lat, lng *float64) map[string]interface{} {
	fields := map[string]interface{}{}
	if lat != nil {
		fields["lat"] = *lat
	}
	if lng != nil {
		fields["lng"] = *lng
	}
	return fields
}
