package duckdb

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"path/filepath"
	"strings"

	_ "github.com/duckdb/duckdb-go/v2"

	"github.com/vsinha/vendorrisk/pkg/domain/entities"
	"github.com/vsinha/vendorrisk/pkg/domain/repositories"
	csvloader "github.com/vsinha/vendorrisk/pkg/infrastructure/repositories/csv"
)

// Loader reads delivery records through an in-memory DuckDB database.
// CSV files are scanned with read_csv and Parquet files with read_parquet.
type Loader struct {
	log *slog.Logger
}

// NewLoader creates a new DuckDB-backed loader
func NewLoader(log *slog.Logger) *Loader {
	return &Loader{log: log}
}

// Verify interface compliance
var _ repositories.DeliveryLoader = (*Loader)(nil)

// LoadDeliveries loads delivery records from a CSV or Parquet file
func (l *Loader) LoadDeliveries(ctx context.Context, path string) ([]*entities.DeliveryRecord, error) {
	query, err := buildQuery(path)
	if err != nil {
		return nil, err
	}

	db, err := sql.Open("duckdb", "")
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	defer db.Close()

	l.log.Debug("duckdb: scanning deliveries", "path", path)

	rows, err := db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to query deliveries file %s: %w", path, err)
	}
	defer rows.Close()

	var deliveries []*entities.DeliveryRecord
	row := 1
	for rows.Next() {
		row++
		var material, vendor, location, date, delay sql.NullString
		var reason string
		if err := rows.Scan(&material, &vendor, &location, &date, &delay, &reason); err != nil {
			return nil, fmt.Errorf("deliveries row %d: failed to scan: %w", row, err)
		}

		deliveryDate, err := csvloader.ParseDeliveryDate(date.String)
		if err != nil {
			return nil, fmt.Errorf("deliveries row %d: %w", row, err)
		}
		delayDays, err := csvloader.ParseDelayDays(delay.String)
		if err != nil {
			return nil, fmt.Errorf("deliveries row %d: %w", row, err)
		}

		record, err := entities.NewDeliveryRecord(
			entities.MaterialID(strings.TrimSpace(material.String)),
			entities.VendorID(strings.TrimSpace(vendor.String)),
			entities.Location(strings.TrimSpace(location.String)),
			deliveryDate,
			delayDays,
			reason,
		)
		if err != nil {
			return nil, fmt.Errorf("deliveries row %d: %w", row, err)
		}
		deliveries = append(deliveries, record)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read deliveries: %w", err)
	}

	if len(deliveries) == 0 {
		return nil, fmt.Errorf("deliveries file %s has no data rows", path)
	}

	l.log.Debug("duckdb: scanned deliveries", "path", path, "count", len(deliveries))
	return deliveries, nil
}

// buildQuery selects the six delivery columns as text so parsing rules match the CSV loader.
// A NULL reason is read as the empty string.
func buildQuery(path string) (string, error) {
	quoted := "'" + strings.ReplaceAll(path, "'", "''") + "'"

	var source string
	switch strings.ToLower(filepath.Ext(path)) {
	case ".csv", ".tsv", ".txt":
		source = fmt.Sprintf("read_csv(%s, header = true, all_varchar = true)", quoted)
	case ".parquet":
		source = fmt.Sprintf("read_parquet(%s)", quoted)
	default:
		return "", fmt.Errorf("unsupported deliveries file type %q (expected .csv or .parquet)", filepath.Ext(path))
	}

	return fmt.Sprintf(`SELECT
	CAST(Material_ID AS VARCHAR),
	CAST(Vendor_ID AS VARCHAR),
	CAST(Location AS VARCHAR),
	CAST(Delivery_Date AS VARCHAR),
	CAST(Delay_Days AS VARCHAR),
	COALESCE(CAST(Reason AS VARCHAR), '')
FROM %s`, source), nil
}
