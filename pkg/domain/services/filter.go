package services

import (
	"fmt"
	"time"

	"github.com/vsinha/vendorrisk/pkg/domain/entities"
)

const (
	MinWindowMonths     = 1
	MaxWindowMonths     = 6
	DefaultWindowMonths = 3
)

// Filter narrows records to a material, an optional location and a trailing
// window of calendar months ending at the latest matching delivery date.
// An unknown material or location yields an empty view, not an error.
func Filter(records []entities.DeliveryRecord, criteria entities.FilterCriteria) (*entities.FilteredView, error) {
	if criteria.WindowMonths < MinWindowMonths || criteria.WindowMonths > MaxWindowMonths {
		return nil, fmt.Errorf("%w: got %d, expected %d-%d",
			ErrInvalidWindow, criteria.WindowMonths, MinWindowMonths, MaxWindowMonths)
	}

	var matched []entities.DeliveryRecord
	var latest time.Time
	for _, r := range records {
		if r.MaterialID != criteria.Material {
			continue
		}
		if !criteria.AllLocationsSelected() && r.Location != criteria.Location {
			continue
		}
		matched = append(matched, r)
		if r.DeliveryDate.After(latest) {
			latest = r.DeliveryDate
		}
	}

	// No latest date means no lower bound can be derived
	if len(matched) == 0 {
		return entities.NewFilteredView(criteria, time.Time{}, time.Time{}, []entities.DeliveryRecord{}), nil
	}

	minDate := SubtractMonths(latest, criteria.WindowMonths)

	windowed := make([]entities.DeliveryRecord, 0, len(matched))
	for _, r := range matched {
		if !r.DeliveryDate.Before(minDate) {
			windowed = append(windowed, r)
		}
	}

	return entities.NewFilteredView(criteria, latest, minDate, windowed), nil
}

// SubtractMonths moves t back by n calendar months, clamping the day to the
// last day of the resulting month (Mar 31 minus one month is Feb 28 or 29).
func SubtractMonths(t time.Time, n int) time.Time {
	y, m, d := t.Date()
	first := time.Date(y, m-time.Month(n), 1, 0, 0, 0, 0, t.Location())
	lastDay := first.AddDate(0, 1, -1).Day()
	if d > lastDay {
		d = lastDay
	}
	hh, mm, ss := t.Clock()
	return time.Date(first.Year(), first.Month(), d, hh, mm, ss, t.Nanosecond(), t.Location())
}
