package dto

import (
	"time"

	"github.com/vsinha/vendorrisk/pkg/domain/entities"
)

// DateLayout is used for dates rendered in reports
const DateLayout = "2006-01-02"

// RiskReport contains the complete output of one filter selection
type RiskReport struct {
	Material      entities.MaterialID           `json:"material" yaml:"material"`
	Location      entities.Location             `json:"location" yaml:"location"`
	WindowMonths  int                           `json:"window_months" yaml:"window_months"`
	LatestDate    string                        `json:"latest_date,omitempty" yaml:"latest_date,omitempty"`
	MinDate       string                        `json:"min_date,omitempty" yaml:"min_date,omitempty"`
	Records       int                           `json:"records" yaml:"records"`
	Summaries     []entities.VendorSummary      `json:"summaries" yaml:"summaries"`
	Distributions []entities.VendorDistribution `json:"distributions,omitempty" yaml:"distributions,omitempty"`
	Message       string                        `json:"message,omitempty" yaml:"message,omitempty"`
	GeneratedAt   time.Time                     `json:"generated_at" yaml:"generated_at"`
}

// Empty reports whether no delivery records matched the selection
func (r *RiskReport) Empty() bool {
	return r.Records == 0
}

// Options lists the values available to selection controls
type Options struct {
	Materials       []entities.MaterialID `json:"materials" yaml:"materials"`
	Locations       []entities.Location   `json:"locations" yaml:"locations"` // first entry is AllLocations
	DefaultMaterial entities.MaterialID   `json:"default_material" yaml:"default_material"`
	MinWindow       int                   `json:"min_window_months" yaml:"min_window_months"`
	MaxWindow       int                   `json:"max_window_months" yaml:"max_window_months"`
	DefaultWindow   int                   `json:"default_window_months" yaml:"default_window_months"`
}
