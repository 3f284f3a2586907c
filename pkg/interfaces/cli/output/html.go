package output

import (
	"bytes"
	"embed"
	"fmt"
	"html/template"
	"io"
	"os"
	"path/filepath"

	"github.com/vsinha/vendorrisk/pkg/application/dto"
	"github.com/vsinha/vendorrisk/pkg/domain/entities"
)

//go:embed templates/*.html
var templateFS embed.FS

const (
	PageTitle    = "Probabilistic Supplier Risk Engine"
	PageSubtitle = "Know your vendors. Trust your timelines."
)

var reportTemplate = template.Must(
	template.New("report.html").Funcs(template.FuncMap{
		"delay":    FormatDelay,
		"fraction": FormatFraction,
		"percent":  FormatPercent,
	}).ParseFS(templateFS, "templates/report.html"),
)

// DrillDown pairs a vendor distribution with its rendered charts
type DrillDown struct {
	Dist entities.VendorDistribution
	PDF  Chart
	PMF  Chart
}

// Page contains all data for rendering the HTML report
type Page struct {
	Title       string
	Subtitle    string
	Report      *dto.RiskReport
	Options     *dto.Options // nil renders a static report without the filter form
	Selected    map[entities.VendorID]bool
	DrillDowns  []DrillDown
	GeneratedAt string
}

// NewPage builds the page data for a report. Pass nil options for a static page.
func NewPage(report *dto.RiskReport, options *dto.Options) (*Page, error) {
	page := &Page{
		Title:       PageTitle,
		Subtitle:    PageSubtitle,
		Report:      report,
		Options:     options,
		Selected:    make(map[entities.VendorID]bool, len(report.Distributions)),
		GeneratedAt: report.GeneratedAt.Format("2006-01-02 15:04:05"),
	}

	for _, dist := range report.Distributions {
		pdf, err := DensityChart(dist)
		if err != nil {
			return nil, err
		}
		pmf, err := MassChart(dist)
		if err != nil {
			return nil, err
		}

		page.Selected[dist.VendorID] = true
		page.DrillDowns = append(page.DrillDowns, DrillDown{Dist: dist, PDF: pdf, PMF: pmf})
	}

	return page, nil
}

// RenderHTML writes the HTML page to w
func RenderHTML(w io.Writer, page *Page) error {
	var buf bytes.Buffer
	if err := reportTemplate.Execute(&buf, page); err != nil {
		return fmt.Errorf("failed to execute template: %w", err)
	}
	_, err := buf.WriteTo(w)
	return err
}

// generateHTMLOutput creates a static HTML report
func generateHTMLOutput(report *dto.RiskReport, config Config) error {
	page, err := NewPage(report, nil)
	if err != nil {
		return fmt.Errorf("failed to build HTML report: %w", err)
	}

	var buf bytes.Buffer
	if err := RenderHTML(&buf, page); err != nil {
		return fmt.Errorf("failed to generate HTML report: %w", err)
	}

	if config.OutputDir == "" {
		_, err := buf.WriteTo(config.writer())
		return err
	}

	if err := os.MkdirAll(config.OutputDir, 0755); err != nil {
		return fmt.Errorf("failed to create output directory: %w", err)
	}

	filename := filepath.Join(config.OutputDir, "risk_report.html")
	if err := os.WriteFile(filename, buf.Bytes(), 0644); err != nil {
		return fmt.Errorf("failed to write HTML file: %w", err)
	}

	if config.Verbose {
		fmt.Fprintf(config.writer(), "🌐 HTML report saved to: %s\n", filename)
	}
	return nil
}
