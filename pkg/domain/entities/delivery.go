package entities

import (
	"fmt"
	"time"
)

// MaterialID identifies a purchased material
type MaterialID string

// VendorID identifies a supplier
type VendorID string

// Location identifies a receiving site
type Location string

// DeliveryRecord represents a single shipment event
type DeliveryRecord struct {
	MaterialID   MaterialID
	VendorID     VendorID
	Location     Location
	DeliveryDate time.Time
	DelayDays    int // positive = late, zero = on time, negative = early
	Reason       string
}

// NewDeliveryRecord creates a validated DeliveryRecord.
// The delivery date is truncated to day precision in UTC.
func NewDeliveryRecord(materialID MaterialID, vendorID VendorID, location Location, deliveryDate time.Time, delayDays int, reason string) (*DeliveryRecord, error) {
	if materialID == "" {
		return nil, fmt.Errorf("material id cannot be empty")
	}
	if vendorID == "" {
		return nil, fmt.Errorf("vendor id cannot be empty")
	}
	if location == "" {
		return nil, fmt.Errorf("location cannot be empty")
	}
	if deliveryDate.IsZero() {
		return nil, fmt.Errorf("delivery date cannot be empty")
	}

	return &DeliveryRecord{
		MaterialID:   materialID,
		VendorID:     vendorID,
		Location:     location,
		DeliveryDate: TruncateToDay(deliveryDate),
		DelayDays:    delayDays,
		Reason:       reason,
	}, nil
}

// IsLate reports whether the delivery arrived after its scheduled date
func (r DeliveryRecord) IsLate() bool {
	return r.DelayDays > 0
}

// IsOnTime reports whether the delivery arrived exactly on its scheduled date
func (r DeliveryRecord) IsOnTime() bool {
	return r.DelayDays == 0
}

// HasBlankReason reports whether the reason is the empty string.
// Whitespace-only reasons are not blank.
func (r DeliveryRecord) HasBlankReason() bool {
	return r.Reason == ""
}

// TruncateToDay drops the time-of-day component and normalizes to UTC
func TruncateToDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}
