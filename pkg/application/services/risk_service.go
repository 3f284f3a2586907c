package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/jonboulle/clockwork"

	"github.com/vsinha/vendorrisk/pkg/application/dto"
	"github.com/vsinha/vendorrisk/pkg/domain/entities"
	"github.com/vsinha/vendorrisk/pkg/domain/repositories"
	domain "github.com/vsinha/vendorrisk/pkg/domain/services"
	"github.com/vsinha/vendorrisk/pkg/infrastructure/metrics"
)

// EmptySelectionMessage is reported when the filters match no records
const EmptySelectionMessage = "no delivery records match the selected filters"

// ErrUnknownVendor is returned when a drill-down vendor is not in the vendor summary
var ErrUnknownVendor = errors.New("vendor not in filtered summary")

// RiskServiceConfig holds the collaborators of RiskService
type RiskServiceConfig struct {
	Logger        *slog.Logger
	Repository    repositories.DeliveryRepository
	Clock         clockwork.Clock
	DefaultWindow int
}

func (c *RiskServiceConfig) Validate() error {
	if c.Logger == nil {
		return errors.New("logger is required")
	}
	if c.Repository == nil {
		return errors.New("repository is required")
	}
	if c.Clock == nil {
		c.Clock = clockwork.NewRealClock()
	}
	if c.DefaultWindow == 0 {
		c.DefaultWindow = domain.DefaultWindowMonths
	}
	return nil
}

// ReportRequest is one filter selection plus the vendors to drill into
type ReportRequest struct {
	Material     entities.MaterialID
	Location     entities.Location
	WindowMonths int
	Vendors      []entities.VendorID

	// SkipUnknownVendors drops drill-down vendors absent from the filtered
	// summary instead of failing with ErrUnknownVendor
	SkipUnknownVendors bool
}

// RiskService runs the filter, aggregate and estimate pipeline over the record store
type RiskService struct {
	cfg RiskServiceConfig
}

// NewRiskService creates a new risk service
func NewRiskService(cfg RiskServiceConfig) (*RiskService, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &RiskService{cfg: cfg}, nil
}

// Options returns the selectable materials and locations
func (s *RiskService) Options() dto.Options {
	materials := s.cfg.Repository.Materials()
	locations := append([]entities.Location{entities.AllLocations}, s.cfg.Repository.Locations()...)

	var defaultMaterial entities.MaterialID
	if len(materials) > 0 {
		defaultMaterial = materials[0]
	}

	return dto.Options{
		Materials:       materials,
		Locations:       locations,
		DefaultMaterial: defaultMaterial,
		MinWindow:       domain.MinWindowMonths,
		MaxWindow:       domain.MaxWindowMonths,
		DefaultWindow:   s.cfg.DefaultWindow,
	}
}

// BuildReport recomputes the vendor summary, and the distributions of any
// requested vendors, from scratch for the given selection.
func (s *RiskService) BuildReport(ctx context.Context, req ReportRequest) (*dto.RiskReport, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	start := time.Now()

	report, err := s.buildReport(req)

	metrics.ReportDuration.Observe(time.Since(start).Seconds())
	switch {
	case err != nil:
		metrics.ReportsBuilt.WithLabelValues("error").Inc()
	case report.Empty():
		metrics.ReportsBuilt.WithLabelValues("empty").Inc()
	default:
		metrics.ReportsBuilt.WithLabelValues("ok").Inc()
	}

	return report, err
}

func (s *RiskService) buildReport(req ReportRequest) (*dto.RiskReport, error) {
	req = s.withDefaults(req)

	records, err := s.cfg.Repository.GetAllDeliveries()
	if err != nil {
		return nil, fmt.Errorf("failed to read deliveries: %w", err)
	}

	view, err := domain.Filter(records, entities.FilterCriteria{
		Material:     req.Material,
		Location:     req.Location,
		WindowMonths: req.WindowMonths,
	})
	if err != nil {
		return nil, fmt.Errorf("invalid selection: %w", err)
	}

	report := &dto.RiskReport{
		Material:     req.Material,
		Location:     req.Location,
		WindowMonths: req.WindowMonths,
		Records:      view.Len(),
		GeneratedAt:  s.cfg.Clock.Now().UTC(),
	}

	if view.Empty() {
		metrics.EmptyViews.Inc()
		s.cfg.Logger.Debug("selection matched no deliveries",
			"material", req.Material, "location", req.Location, "months", req.WindowMonths)
		report.Summaries = []entities.VendorSummary{}
		report.Message = EmptySelectionMessage
		return report, nil
	}

	report.LatestDate = view.LatestDate.Format(dto.DateLayout)
	report.MinDate = view.MinDate.Format(dto.DateLayout)
	report.Summaries = domain.Aggregate(view)

	known := make(map[entities.VendorID]bool, len(report.Summaries))
	for _, summary := range report.Summaries {
		known[summary.VendorID] = true
	}

	seen := make(map[entities.VendorID]bool, len(req.Vendors))
	for _, vendor := range req.Vendors {
		if seen[vendor] {
			continue
		}
		seen[vendor] = true

		if !known[vendor] {
			if req.SkipUnknownVendors {
				s.cfg.Logger.Debug("skipping vendor not in selection", "vendor", vendor)
				continue
			}
			return nil, fmt.Errorf("%w: %s", ErrUnknownVendor, vendor)
		}

		dist, err := domain.Estimate(view, vendor)
		if err != nil {
			return nil, fmt.Errorf("failed to estimate distribution for vendor %s: %w", vendor, err)
		}
		metrics.DrillDowns.Inc()
		report.Distributions = append(report.Distributions, *dist)
	}

	s.cfg.Logger.Debug("built risk report",
		"material", req.Material,
		"location", req.Location,
		"months", req.WindowMonths,
		"records", report.Records,
		"vendors", len(report.Summaries),
		"drilldowns", len(report.Distributions),
	)

	return report, nil
}

func (s *RiskService) withDefaults(req ReportRequest) ReportRequest {
	if req.Material == "" {
		if materials := s.cfg.Repository.Materials(); len(materials) > 0 {
			req.Material = materials[0]
		}
	}
	if req.Location == "" {
		req.Location = entities.AllLocations
	}
	if req.WindowMonths == 0 {
		req.WindowMonths = s.cfg.DefaultWindow
	}
	return req
}

// IsSelectionError reports whether err was caused by the caller's selection
// rather than by the record store.
func IsSelectionError(err error) bool {
	return errors.Is(err, domain.ErrInvalidWindow) ||
		errors.Is(err, domain.ErrEmptyDrillDown) ||
		errors.Is(err, ErrUnknownVendor)
}
