package csv

import (
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/vsinha/vendorrisk/pkg/domain/entities"
	"github.com/vsinha/vendorrisk/pkg/domain/repositories"
)

// Column names of the delivery CSV, compared case-insensitively
const (
	ColMaterialID   = "material_id"
	ColVendorID     = "vendor_id"
	ColLocation     = "location"
	ColDeliveryDate = "delivery_date"
	ColDelayDays    = "delay_days"
	ColReason       = "reason"
)

var requiredColumns = []string{ColMaterialID, ColVendorID, ColLocation, ColDeliveryDate, ColDelayDays, ColReason}

// dateLayouts are tried in order when parsing Delivery_Date
var dateLayouts = []string{
	"2006-01-02",
	"2006/01/02",
	"01/02/2006",
	time.RFC3339,
	"2006-01-02 15:04:05",
	"2006-01-02T15:04:05",
}

// Loader handles loading delivery records from CSV files
type Loader struct{}

// NewLoader creates a new CSV loader
func NewLoader() *Loader {
	return &Loader{}
}

// Verify interface compliance
var _ repositories.DeliveryLoader = (*Loader)(nil)

// LoadDeliveries loads delivery records from a CSV file
func (l *Loader) LoadDeliveries(ctx context.Context, filename string) ([]*entities.DeliveryRecord, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	file, err := os.Open(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to open deliveries file %s: %w", filename, err)
	}
	defer file.Close()

	return l.ReadDeliveries(file)
}

// ReadDeliveries parses delivery records from CSV data
func (l *Loader) ReadDeliveries(r io.Reader) ([]*entities.DeliveryRecord, error) {
	reader := csv.NewReader(r)
	records, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("failed to read deliveries CSV: %w", err)
	}

	if len(records) < 2 {
		return nil, fmt.Errorf("deliveries CSV must have header and at least one data row")
	}

	columns, err := indexHeader(records[0])
	if err != nil {
		return nil, err
	}

	deliveries := make([]*entities.DeliveryRecord, 0, len(records)-1)
	for i, record := range records[1:] {
		if len(record) != len(records[0]) {
			return nil, fmt.Errorf("deliveries CSV row %d: expected %d columns, got %d", i+2, len(records[0]), len(record))
		}

		delivery, err := parseDelivery(record, columns)
		if err != nil {
			return nil, fmt.Errorf("deliveries CSV row %d: %w", i+2, err)
		}

		deliveries = append(deliveries, delivery)
	}

	return deliveries, nil
}

// Helper functions for parsing CSV records

func indexHeader(header []string) (map[string]int, error) {
	columns := make(map[string]int, len(header))
	for i, col := range header {
		name := strings.ToLower(strings.TrimSpace(strings.TrimPrefix(col, "\ufeff")))
		if _, dup := columns[name]; dup {
			return nil, fmt.Errorf("deliveries CSV header has duplicate column %q", col)
		}
		columns[name] = i
	}

	var missing []string
	for _, col := range requiredColumns {
		if _, ok := columns[col]; !ok {
			missing = append(missing, col)
		}
	}
	if len(missing) > 0 {
		return nil, fmt.Errorf("deliveries CSV header missing columns %v. Got: %v", missing, header)
	}

	return columns, nil
}

func parseDelivery(record []string, columns map[string]int) (*entities.DeliveryRecord, error) {
	field := func(name string) string {
		return record[columns[name]]
	}

	deliveryDate, err := ParseDeliveryDate(field(ColDeliveryDate))
	if err != nil {
		return nil, err
	}

	delayDays, err := ParseDelayDays(field(ColDelayDays))
	if err != nil {
		return nil, err
	}

	// Reason is kept verbatim so only a truly empty cell counts as blank
	return entities.NewDeliveryRecord(
		entities.MaterialID(strings.TrimSpace(field(ColMaterialID))),
		entities.VendorID(strings.TrimSpace(field(ColVendorID))),
		entities.Location(strings.TrimSpace(field(ColLocation))),
		deliveryDate,
		delayDays,
		field(ColReason),
	)
}

// ParseDeliveryDate parses a delivery date in any of the supported layouts
func ParseDeliveryDate(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return entities.TruncateToDay(t), nil
		}
	}
	return time.Time{}, fmt.Errorf("invalid delivery_date format: %q (expected YYYY-MM-DD)", s)
}

// ParseDelayDays parses a whole number of days. "3" and "3.0" are accepted, "3.5" is not.
func ParseDelayDays(s string) (int, error) {
	d, err := decimal.NewFromString(strings.TrimSpace(s))
	if err != nil {
		return 0, fmt.Errorf("invalid delay_days: %q", s)
	}
	if !d.IsInteger() {
		return 0, fmt.Errorf("delay_days must be a whole number, got %s", d.String())
	}
	return int(d.IntPart()), nil
}
