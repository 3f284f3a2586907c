package memory

import (
	"fmt"
	"strconv"

	"github.com/cespare/xxhash/v2"

	"github.com/vsinha/vendorrisk/pkg/domain/entities"
	"github.com/vsinha/vendorrisk/pkg/domain/repositories"
	"github.com/vsinha/vendorrisk/pkg/domain/services"
)

// DeliveryRepository is an in-memory record store. Records are loaded once
// and never mutated afterwards, so reads are safe from multiple goroutines.
type DeliveryRepository struct {
	records     []entities.DeliveryRecord
	loaded      bool
	fingerprint uint64

	materials []entities.MaterialID
	locations []entities.Location
	vendors   []entities.VendorID
}

// NewDeliveryRepository creates a new in-memory delivery repository
func NewDeliveryRepository(expectedRecords int) *DeliveryRepository {
	return &DeliveryRepository{
		records: make([]entities.DeliveryRecord, 0, expectedRecords),
	}
}

// Verify interface compliance
var _ repositories.DeliveryRepository = (*DeliveryRepository)(nil)

// LoadDeliveries loads records into the repository. It may only be called once.
func (r *DeliveryRepository) LoadDeliveries(records []*entities.DeliveryRecord) error {
	if r.loaded {
		return fmt.Errorf("delivery repository already loaded with %d records", len(r.records))
	}

	digest := xxhash.New()
	for i, record := range records {
		if record == nil {
			return fmt.Errorf("delivery record %d is nil", i)
		}
		r.records = append(r.records, *record)
		writeRecord(digest, record)
	}

	r.fingerprint = digest.Sum64()
	r.materials = toIDs[entities.MaterialID](services.Distinct(r.records, services.FieldMaterial))
	r.locations = toIDs[entities.Location](services.Distinct(r.records, services.FieldLocation))
	r.vendors = toIDs[entities.VendorID](services.Distinct(r.records, services.FieldVendor))
	r.loaded = true
	return nil
}

// GetAllDeliveries returns a copy of all loaded records
func (r *DeliveryRepository) GetAllDeliveries() ([]entities.DeliveryRecord, error) {
	if !r.loaded {
		return nil, fmt.Errorf("delivery repository not loaded")
	}
	out := make([]entities.DeliveryRecord, len(r.records))
	copy(out, r.records)
	return out, nil
}

// Materials returns the sorted distinct material ids
func (r *DeliveryRepository) Materials() []entities.MaterialID {
	return append([]entities.MaterialID(nil), r.materials...)
}

// Locations returns the sorted distinct locations
func (r *DeliveryRepository) Locations() []entities.Location {
	return append([]entities.Location(nil), r.locations...)
}

// Vendors returns the sorted distinct vendor ids
func (r *DeliveryRepository) Vendors() []entities.VendorID {
	return append([]entities.VendorID(nil), r.vendors...)
}

// Fingerprint returns a hash of the loaded records
func (r *DeliveryRepository) Fingerprint() uint64 {
	return r.fingerprint
}

// Count returns the number of loaded records
func (r *DeliveryRepository) Count() int {
	return len(r.records)
}

func writeRecord(d *xxhash.Digest, record *entities.DeliveryRecord) {
	// field separator keeps ("ab","c") and ("a","bc") apart
	const sep = "\x1f"
	_, _ = d.WriteString(string(record.MaterialID) + sep)
	_, _ = d.WriteString(string(record.VendorID) + sep)
	_, _ = d.WriteString(string(record.Location) + sep)
	_, _ = d.WriteString(record.DeliveryDate.Format("2006-01-02") + sep)
	_, _ = d.WriteString(strconv.Itoa(record.DelayDays) + sep)
	_, _ = d.WriteString(record.Reason + "\x1e")
}

func toIDs[T ~string](values []string) []T {
	ids := make([]T, len(values))
	for i, v := range values {
		ids[i] = T(v)
	}
	return ids
}
