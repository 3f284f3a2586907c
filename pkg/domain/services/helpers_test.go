package services

import (
	"time"

	"github.com/vsinha/vendorrisk/pkg/domain/entities"
)

func day(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func rec(vendor entities.VendorID, delay int, date time.Time) entities.DeliveryRecord {
	return entities.DeliveryRecord{
		MaterialID:   "MAT-1",
		VendorID:     vendor,
		Location:     "PLANT_A",
		DeliveryDate: date,
		DelayDays:    delay,
		Reason:       "carrier",
	}
}

func viewOf(records ...entities.DeliveryRecord) *entities.FilteredView {
	return entities.NewFilteredView(
		entities.FilterCriteria{Material: "MAT-1", Location: entities.AllLocations, WindowMonths: 3},
		time.Time{}, time.Time{}, records,
	)
}
