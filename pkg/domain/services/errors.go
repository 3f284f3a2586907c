package services

import "errors"

var (
	// ErrInvalidWindow is returned when the trailing window is outside [MinWindowMonths, MaxWindowMonths]
	ErrInvalidWindow = errors.New("window months out of range")

	// ErrEmptyDrillDown is returned when a distribution is requested for a vendor with no records in the view
	ErrEmptyDrillDown = errors.New("no records for vendor in filtered view")
)
