package duckdb

import (
	"context"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vsinha/vendorrisk/pkg/domain/entities"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestDuckDB_Loader_CSV(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "deliveries.csv")
	data := "Material_ID,Vendor_ID,Location,Delivery_Date,Delay_Days,Reason\n" +
		"MAT-1,V1,PLANT_A,2025-01-15,2,Carrier delay\n" +
		"MAT-1,V2,PLANT_B,2025-02-01,-1,\n"
	require.NoError(t, os.WriteFile(path, []byte(data), 0644))

	records, err := NewLoader(testLogger()).LoadDeliveries(context.Background(), path)
	require.NoError(t, err)
	require.Len(t, records, 2)

	assert.Equal(t, entities.MaterialID("MAT-1"), records[0].MaterialID)
	assert.Equal(t, entities.VendorID("V1"), records[0].VendorID)
	assert.Equal(t, 2, records[0].DelayDays)
	assert.Equal(t, "Carrier delay", records[0].Reason)
	assert.Equal(t, time.Date(2025, 1, 15, 0, 0, 0, 0, time.UTC), records[0].DeliveryDate)

	assert.Equal(t, -1, records[1].DelayDays)
	assert.Equal(t, "", records[1].Reason)
}

func TestDuckDB_Loader_Errors(t *testing.T) {
	t.Parallel()

	t.Run("unsupported extension", func(t *testing.T) {
		t.Parallel()
		_, err := NewLoader(testLogger()).LoadDeliveries(context.Background(), "deliveries.xlsx")
		require.ErrorContains(t, err, "unsupported deliveries file type")
	})

	t.Run("fractional delay", func(t *testing.T) {
		t.Parallel()
		path := filepath.Join(t.TempDir(), "deliveries.csv")
		data := "Material_ID,Vendor_ID,Location,Delivery_Date,Delay_Days,Reason\n" +
			"MAT-1,V1,PLANT_A,2025-01-15,2.5,x\n"
		require.NoError(t, os.WriteFile(path, []byte(data), 0644))

		_, err := NewLoader(testLogger()).LoadDeliveries(context.Background(), path)
		require.ErrorContains(t, err, "row 2: delay_days must be a whole number")
	})
}

func TestDuckDB_BuildQuery_EscapesPath(t *testing.T) {
	t.Parallel()

	q, err := buildQuery("/tmp/o'brien.csv")
	require.NoError(t, err)
	assert.Contains(t, q, "read_csv('/tmp/o''brien.csv'")

	q, err = buildQuery("/data/deliveries.PARQUET")
	require.NoError(t, err)
	assert.Contains(t, q, "read_parquet('/data/deliveries.PARQUET')")
}
