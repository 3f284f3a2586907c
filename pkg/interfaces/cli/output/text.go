package output

import (
	"fmt"
	"strconv"

	"github.com/olekukonko/tablewriter"

	"github.com/vsinha/vendorrisk/pkg/application/dto"
)

// generateTextOutput creates human-readable text output
func generateTextOutput(report *dto.RiskReport, config Config) error {
	out := config.writer()

	fmt.Fprintf(out, "📊 Vendor Risk Summary\n")
	fmt.Fprintf(out, "======================\n\n")
	fmt.Fprintf(out, "Material: %s\n", report.Material)
	fmt.Fprintf(out, "Location: %s\n", report.Location)
	fmt.Fprintf(out, "Window:   last %d month(s)\n", report.WindowMonths)

	if report.Empty() {
		fmt.Fprintf(out, "\n⚠️  %s\n", report.Message)
		return nil
	}

	fmt.Fprintf(out, "Records:  %d (%s to %s)\n\n", report.Records, report.MinDate, report.LatestDate)

	table := tablewriter.NewWriter(out)
	table.SetAutoWrapText(false)
	table.SetHeaderAlignment(tablewriter.ALIGN_CENTER)
	table.SetAutoFormatHeaders(false)
	table.SetBorder(true)
	table.SetHeader([]string{
		"Vendor",
		"Records",
		"Avg Delay\n(days)",
		"% Late",
		"% Blank\nReason",
		"Risk\nScore",
	})
	for _, s := range report.Summaries {
		table.Append([]string{
			string(s.VendorID),
			strconv.Itoa(s.Records),
			FormatDelay(s.AvgDelay),
			FormatFraction(s.LatePct),
			FormatFraction(s.BlankReasonPct),
			FormatDelay(s.RiskScore),
		})
	}
	table.Render()

	for _, dist := range report.Distributions {
		fmt.Fprintf(out, "\n🔍 Vendor %s | Avg Delay: %s days | %% Late: %s | %% On Time: %s\n",
			dist.VendorID,
			FormatDelay(dist.AvgDelay),
			FormatPercent(dist.LatePct),
			FormatPercent(dist.ZeroPct))
		fmt.Fprintf(out, "   KDE bandwidth: %s days over %d records\n",
			FormatProbability(dist.Density.Bandwidth), dist.Records)

		pmf := tablewriter.NewWriter(out)
		pmf.SetAutoFormatHeaders(false)
		pmf.SetHeader([]string{"Delay Days", "Probability"})
		for _, m := range dist.Mass {
			pmf.Append([]string{strconv.Itoa(m.DelayDays), FormatProbability(m.Probability)})
		}
		pmf.Render()
	}

	return nil
}
