package web

import (
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/jonboulle/clockwork"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vsinha/vendorrisk/pkg/application/dto"
	"github.com/vsinha/vendorrisk/pkg/application/services"
	"github.com/vsinha/vendorrisk/pkg/domain/entities"
	"github.com/vsinha/vendorrisk/pkg/infrastructure/metrics"
	testhelpers "github.com/vsinha/vendorrisk/pkg/infrastructure/testing"
	"github.com/vsinha/vendorrisk/pkg/interfaces/cli/output"
)

func newTestServer(t *testing.T, ttl time.Duration) *Server {
	t.Helper()
	log := slog.New(slog.NewTextHandler(io.Discard, nil))
	repo := testhelpers.BuildDeliveryTestData()

	svc, err := services.NewRiskService(services.RiskServiceConfig{
		Logger:     log,
		Repository: repo,
		Clock:      clockwork.NewFakeClockAt(time.Date(2025, 7, 1, 9, 30, 0, 0, time.UTC)),
	})
	require.NoError(t, err)

	srv, err := NewServer(Config{Logger: log, Service: svc, Repository: repo, CacheTTL: ttl})
	require.NoError(t, err)
	return srv
}

func get(t *testing.T, srv *Server, target string) *httptest.ResponseRecorder {
	t.Helper()
	rec := httptest.NewRecorder()
	srv.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, target, nil))
	return rec
}

func TestNewServer_ValidatesConfig(t *testing.T) {
	t.Parallel()

	_, err := NewServer(Config{})
	require.ErrorContains(t, err, "logger is required")
}

func TestServer_Options(t *testing.T) {
	t.Parallel()

	rec := get(t, newTestServer(t, 0), "/api/options")
	require.Equal(t, http.StatusOK, rec.Code)

	var opts dto.Options
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &opts))
	assert.Equal(t, []entities.MaterialID{"BOLT_M12", "VALVE_V2"}, opts.Materials)
	assert.Equal(t, entities.AllLocations, opts.Locations[0])
}

func TestServer_Report(t *testing.T) {
	t.Parallel()

	srv := newTestServer(t, 0)

	t.Run("defaults", func(t *testing.T) {
		t.Parallel()
		rec := get(t, srv, "/api/report")
		require.Equal(t, http.StatusOK, rec.Code)

		var report dto.RiskReport
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &report))
		assert.Equal(t, entities.MaterialID("BOLT_M12"), report.Material)
		assert.Equal(t, entities.AllLocations, report.Location)
		assert.Equal(t, 3, report.WindowMonths)
		assert.Equal(t, 7, report.Records)
		require.Len(t, report.Summaries, 3)
		assert.Equal(t, entities.VendorID("ACME"), report.Summaries[0].VendorID)
	})

	t.Run("drill down", func(t *testing.T) {
		t.Parallel()
		rec := get(t, srv, "/api/report?material=BOLT_M12&months=6&vendor=ACME&vendor=INITECH")
		require.Equal(t, http.StatusOK, rec.Code)

		var report dto.RiskReport
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &report))
		assert.Equal(t, 8, report.Records)
		require.Len(t, report.Distributions, 2)
		assert.Equal(t, entities.VendorID("ACME"), report.Distributions[0].VendorID)
		assert.Len(t, report.Distributions[0].Density.Points, 200)
	})

	t.Run("empty selection", func(t *testing.T) {
		t.Parallel()
		rec := get(t, srv, "/api/report?material=UNKNOWN")
		require.Equal(t, http.StatusOK, rec.Code)

		var report dto.RiskReport
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &report))
		assert.True(t, report.Empty())
		assert.Equal(t, services.EmptySelectionMessage, report.Message)
	})

	for name, target := range map[string]string{
		"window too large":    "/api/report?months=9",
		"window not a number": "/api/report?months=three",
		"unknown vendor":      "/api/report?vendor=NOPE",
	} {
		t.Run(name, func(t *testing.T) {
			t.Parallel()
			rec := get(t, srv, target)
			require.Equal(t, http.StatusBadRequest, rec.Code)

			var body map[string]string
			require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
			assert.NotEmpty(t, body["error"])
		})
	}
}

func TestServer_Dashboard(t *testing.T) {
	t.Parallel()

	rec := get(t, newTestServer(t, 0), "/?material=BOLT_M12&location=KENNEDY&vendor=ACME")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Header().Get("Content-Type"), "text/html")

	body := rec.Body.String()
	assert.Contains(t, body, output.PageTitle)
	assert.Contains(t, body, "<form")
	assert.Contains(t, body, "PDF - Vendor ACME")
	assert.Contains(t, body, `<option value="KENNEDY" selected>KENNEDY</option>`)
}

func TestServer_DashboardBadWindow(t *testing.T) {
	t.Parallel()

	srv := newTestServer(t, 0)

	// absent months uses the default window
	assert.Equal(t, http.StatusOK, get(t, srv, "/").Code)

	for _, months := range []string{"0", "7"} {
		assert.Equal(t, http.StatusBadRequest, get(t, srv, "/?months="+months).Code, "months=%s", months)
		assert.Equal(t, http.StatusBadRequest, get(t, srv, "/api/report?months="+months).Code, "months=%s", months)
	}
}

func TestServer_DashboardDropsStaleVendors(t *testing.T) {
	t.Parallel()

	srv := newTestServer(t, time.Minute)

	// ACME was selected under BOLT_M12, then the material changed
	rec := get(t, srv, "/?material=VALVE_V2&vendor=ACME")
	require.Equal(t, http.StatusOK, rec.Code)

	body := rec.Body.String()
	assert.Contains(t, body, `<option value="VALVE_V2" selected>VALVE_V2</option>`)
	assert.NotContains(t, body, "PDF - Vendor")
	assert.NotContains(t, body, "ACME")

	// the JSON API still rejects it, even with the dashboard result cached
	rec = get(t, srv, "/api/report?material=VALVE_V2&vendor=ACME")
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestServer_ReportCache(t *testing.T) {
	srv := newTestServer(t, time.Minute)

	hits := testutil.ToFloat64(metrics.ReportCacheLookups.WithLabelValues("hit"))
	misses := testutil.ToFloat64(metrics.ReportCacheLookups.WithLabelValues("miss"))

	first := get(t, srv, "/api/report?material=VALVE_V2")
	require.Equal(t, http.StatusOK, first.Code)
	second := get(t, srv, "/api/report?material=VALVE_V2")
	require.Equal(t, http.StatusOK, second.Code)

	assert.Equal(t, first.Body.String(), second.Body.String())
	assert.Equal(t, misses+1, testutil.ToFloat64(metrics.ReportCacheLookups.WithLabelValues("miss")))
	assert.Equal(t, hits+1, testutil.ToFloat64(metrics.ReportCacheLookups.WithLabelValues("hit")))
}

func TestServer_HealthAndMetrics(t *testing.T) {
	t.Parallel()

	srv := newTestServer(t, 0)

	rec := get(t, srv, "/healthz")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"status":"ok"`)

	// build one report so the counter vector has a series to export
	require.Equal(t, http.StatusOK, get(t, srv, "/api/report").Code)

	rec = get(t, srv, "/metrics")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "vendorrisk_reports_built_total")
}

func TestCacheKey(t *testing.T) {
	t.Parallel()

	req := services.ReportRequest{Material: "M", WindowMonths: 3, Vendors: []entities.VendorID{"A"}}
	a := cacheKey(1, req)

	other := req
	other.Vendors = []entities.VendorID{"B"}
	assert.NotEqual(t, a, cacheKey(2, req), "fingerprint is part of the key")
	assert.NotEqual(t, a, cacheKey(1, other), "drill-down vendors are part of the key")

	skipping := req
	skipping.SkipUnknownVendors = true
	assert.NotEqual(t, a, cacheKey(1, skipping))

	assert.NotEqual(t,
		cacheKey(1, services.ReportRequest{Material: "A:B", Location: "C", WindowMonths: 3}),
		cacheKey(1, services.ReportRequest{Material: "A", Location: "B:C", WindowMonths: 3}),
		"separators inside ids do not collide")
	assert.NotEqual(t,
		cacheKey(1, services.ReportRequest{Material: "M", Vendors: []entities.VendorID{"A,B"}}),
		cacheKey(1, services.ReportRequest{Material: "M", Vendors: []entities.VendorID{"A", "B"}}))
}
