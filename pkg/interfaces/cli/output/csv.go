package output

import (
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"github.com/vsinha/vendorrisk/pkg/application/dto"
	"github.com/vsinha/vendorrisk/pkg/domain/entities"
)

// generateCSVOutput writes the summary table and drill-down distributions as CSV files
func generateCSVOutput(report *dto.RiskReport, config Config) error {
	if config.OutputDir == "" {
		return fmt.Errorf("output directory required for CSV format")
	}

	if err := os.MkdirAll(config.OutputDir, 0755); err != nil {
		return fmt.Errorf("failed to create output directory: %w", err)
	}

	summaryFile := filepath.Join(config.OutputDir, "vendor_summary.csv")
	if err := writeSummaryCSV(report.Summaries, summaryFile); err != nil {
		return fmt.Errorf("failed to write vendor summary CSV: %w", err)
	}

	massFile := filepath.Join(config.OutputDir, "vendor_pmf.csv")
	if err := writeMassCSV(report.Distributions, massFile); err != nil {
		return fmt.Errorf("failed to write vendor PMF CSV: %w", err)
	}

	densityFile := filepath.Join(config.OutputDir, "vendor_pdf.csv")
	if err := writeDensityCSV(report.Distributions, densityFile); err != nil {
		return fmt.Errorf("failed to write vendor PDF CSV: %w", err)
	}

	if config.Verbose {
		out := config.writer()
		fmt.Fprintf(out, "💾 CSV results saved to:\n")
		fmt.Fprintf(out, "  Summary: %s\n", summaryFile)
		fmt.Fprintf(out, "  PMF: %s\n", massFile)
		fmt.Fprintf(out, "  PDF: %s\n", densityFile)
	}

	return nil
}

func writeSummaryCSV(summaries []entities.VendorSummary, filename string) error {
	rows := [][]string{{"Vendor_ID", "Records", "Avg_Delay", "Late_Pct", "Blank_Reason_Pct", "Risk_Score"}}
	for _, s := range summaries {
		rows = append(rows, []string{
			string(s.VendorID),
			strconv.Itoa(s.Records),
			FormatDelay(s.AvgDelay),
			FormatFraction(s.LatePct),
			FormatFraction(s.BlankReasonPct),
			FormatDelay(s.RiskScore),
		})
	}
	return writeCSV(filename, rows)
}

func writeMassCSV(dists []entities.VendorDistribution, filename string) error {
	rows := [][]string{{"Vendor_ID", "Delay_Days", "Probability"}}
	for _, d := range dists {
		for _, m := range d.Mass {
			rows = append(rows, []string{
				string(d.VendorID),
				strconv.Itoa(m.DelayDays),
				FormatProbability(m.Probability),
			})
		}
	}
	return writeCSV(filename, rows)
}

func writeDensityCSV(dists []entities.VendorDistribution, filename string) error {
	rows := [][]string{{"Vendor_ID", "Delay_Days", "Density"}}
	for _, d := range dists {
		for _, p := range d.Density.Points {
			rows = append(rows, []string{
				string(d.VendorID),
				strconv.FormatFloat(p.X, 'f', 4, 64),
				strconv.FormatFloat(p.Density, 'f', 6, 64),
			})
		}
	}
	return writeCSV(filename, rows)
}

func writeCSV(filename string, rows [][]string) error {
	file, err := os.Create(filename)
	if err != nil {
		return fmt.Errorf("failed to create file %s: %w", filename, err)
	}
	defer file.Close()

	writer := csv.NewWriter(file)
	if err := writer.WriteAll(rows); err != nil {
		return fmt.Errorf("failed to write %s: %w", filename, err)
	}
	return nil
}
