package entities

// VendorSummary holds the descriptive risk statistics for one vendor.
// Percentages are fractions in [0,1].
type VendorSummary struct {
	VendorID       VendorID `json:"vendor_id" yaml:"vendor_id"`
	Records        int      `json:"records" yaml:"records"`
	AvgDelay       float64  `json:"avg_delay" yaml:"avg_delay"`
	LatePct        float64  `json:"late_pct" yaml:"late_pct"`
	BlankReasonPct float64  `json:"blank_reason_pct" yaml:"blank_reason_pct"`
	RiskScore      float64  `json:"risk_score" yaml:"risk_score"`
}

// RiskScoreOf combines average delay and late fraction into a single ranking value
func RiskScoreOf(avgDelay, latePct float64) float64 {
	return avgDelay + 2*latePct
}

// DensityPoint is one sample of a smoothed density curve
type DensityPoint struct {
	X       float64 `json:"x" yaml:"x"`
	Density float64 `json:"density" yaml:"density"`
}

// DensityEstimate is a kernel-smoothed density of delay days
type DensityEstimate struct {
	Bandwidth float64        `json:"bandwidth" yaml:"bandwidth"`
	Points    []DensityPoint `json:"points" yaml:"points"`
}

// MassPoint is the empirical probability of one observed delay value
type MassPoint struct {
	DelayDays   int     `json:"delay_days" yaml:"delay_days"`
	Probability float64 `json:"probability" yaml:"probability"`
}

// VendorDistribution describes the delay distribution of a single vendor.
// Unlike VendorSummary, LatePct and ZeroPct are on a 0-100 scale.
type VendorDistribution struct {
	VendorID VendorID        `json:"vendor_id" yaml:"vendor_id"`
	Records  int             `json:"records" yaml:"records"`
	AvgDelay float64         `json:"avg_delay" yaml:"avg_delay"`
	LatePct  float64         `json:"late_pct" yaml:"late_pct"`
	ZeroPct  float64         `json:"zero_pct" yaml:"zero_pct"`
	Density  DensityEstimate `json:"density" yaml:"density"`
	Mass     []MassPoint     `json:"mass" yaml:"mass"`
}
