package repositories

import (
	"context"

	"github.com/vsinha/vendorrisk/pkg/domain/entities"
)

// DeliveryRepository provides read access to the loaded delivery records
type DeliveryRepository interface {
	GetAllDeliveries() ([]entities.DeliveryRecord, error)
	LoadDeliveries(records []*entities.DeliveryRecord) error

	// Sorted distinct values for populating selection controls
	Materials() []entities.MaterialID
	Locations() []entities.Location
	Vendors() []entities.VendorID

	// Fingerprint changes only when the loaded records change
	Fingerprint() uint64
}

// DeliveryLoader reads delivery records from an external source
type DeliveryLoader interface {
	LoadDeliveries(ctx context.Context, path string) ([]*entities.DeliveryRecord, error)
}
