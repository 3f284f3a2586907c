package entities

import "time"

// AllLocations is the location selector meaning "no location filter"
const AllLocations Location = "All"

// FilterCriteria selects the records that make up a FilteredView
type FilterCriteria struct {
	Material     MaterialID
	Location     Location // AllLocations or empty disables the location filter
	WindowMonths int
}

// AllLocationsSelected reports whether the criteria skip location filtering
func (c FilterCriteria) AllLocationsSelected() bool {
	return c.Location == "" || c.Location == AllLocations
}

// FilteredView is a read-only subset of delivery records.
// LatestDate and MinDate are zero when no record matched material and location.
type FilteredView struct {
	Criteria   FilterCriteria
	LatestDate time.Time
	MinDate    time.Time
	records    []DeliveryRecord
}

// NewFilteredView wraps records in a view. The slice is owned by the view.
func NewFilteredView(criteria FilterCriteria, latest, minDate time.Time, records []DeliveryRecord) *FilteredView {
	return &FilteredView{
		Criteria:   criteria,
		LatestDate: latest,
		MinDate:    minDate,
		records:    records,
	}
}

// Records returns a copy of the records in the view
func (v *FilteredView) Records() []DeliveryRecord {
	out := make([]DeliveryRecord, len(v.records))
	copy(out, v.records)
	return out
}

// Len returns the number of records in the view
func (v *FilteredView) Len() int {
	return len(v.records)
}

// Empty reports whether the view holds no records
func (v *FilteredView) Empty() bool {
	return len(v.records) == 0
}

// Each calls fn for every record in order without copying the backing slice
func (v *FilteredView) Each(fn func(DeliveryRecord)) {
	for _, r := range v.records {
		fn(r)
	}
}
