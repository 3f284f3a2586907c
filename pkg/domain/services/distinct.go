package services

import (
	"sort"

	"github.com/vsinha/vendorrisk/pkg/domain/entities"
)

// Field names a selectable column of DeliveryRecord
type Field int

const (
	FieldMaterial Field = iota
	FieldLocation
	FieldVendor
)

// String method for Field enum
func (f Field) String() string {
	switch f {
	case FieldMaterial:
		return "Material_ID"
	case FieldLocation:
		return "Location"
	case FieldVendor:
		return "Vendor_ID"
	default:
		return "Unknown"
	}
}

// Distinct returns the sorted distinct values of field across records
func Distinct(records []entities.DeliveryRecord, field Field) []string {
	seen := make(map[string]struct{})
	for _, r := range records {
		var v string
		switch field {
		case FieldMaterial:
			v = string(r.MaterialID)
		case FieldLocation:
			v = string(r.Location)
		case FieldVendor:
			v = string(r.VendorID)
		default:
			continue
		}
		seen[v] = struct{}{}
	}

	values := make([]string, 0, len(seen))
	for v := range seen {
		values = append(values, v)
	}
	sort.Strings(values)
	return values
}
