package output

import (
	"bytes"
	"fmt"
	"html/template"
	"io"
	"math"
	"strconv"

	chart "github.com/wcharczuk/go-chart/v2"
	"github.com/wcharczuk/go-chart/v2/drawing"

	"github.com/vsinha/vendorrisk/pkg/domain/entities"
)

// Chart is a rendered SVG plot with its axis captions
type Chart struct {
	Title  string
	XLabel string
	YLabel string
	SVG    template.HTML // empty when there was nothing to plot
}

const (
	chartWidth       = 520
	chartHeight      = 320
	verticalHeadroom = 1.05
	maxBarWidth      = 60
	minBarWidth      = 4
)

var (
	pdfFill  = drawing.ColorFromHex("87ceeb").WithAlpha(128)
	pdfLine  = drawing.ColorFromHex("4682b4")
	pmfFill  = drawing.ColorFromHex("fa8072")
	pmfFrame = drawing.ColorFromHex("c0504d")
)

// DensityChart plots the smoothed density with a dashed reference line at zero delay
func DensityChart(dist entities.VendorDistribution) (Chart, error) {
	c := Chart{
		Title:  fmt.Sprintf("PDF - Vendor %s", dist.VendorID),
		XLabel: "Delay Days",
		YLabel: "Probability Density",
	}

	pts := dist.Density.Points
	if len(pts) < 2 {
		return c, nil
	}

	xs := make([]float64, len(pts))
	ys := make([]float64, len(pts))
	var yMax float64
	for i, p := range pts {
		xs[i], ys[i] = p.X, p.Density
		yMax = math.Max(yMax, p.Density)
	}
	yMax *= verticalHeadroom

	ch := chart.Chart{
		Title:      c.Title,
		Width:      chartWidth,
		Height:     chartHeight,
		Background: chart.Style{Padding: chart.Box{Top: 40, Left: 16, Right: 16, Bottom: 16}},
		XAxis: chart.XAxis{
			Name: c.XLabel,
			// the zero line is always in view
			Range: &chart.ContinuousRange{Min: math.Min(xs[0], 0), Max: math.Max(xs[len(xs)-1], 0)},
		},
		YAxis: chart.YAxis{
			Name:  c.YLabel,
			Range: &chart.ContinuousRange{Min: 0, Max: yMax},
		},
		Series: []chart.Series{
			chart.ContinuousSeries{
				Name:    "Density",
				XValues: xs,
				YValues: ys,
				Style:   chart.Style{StrokeColor: pdfLine, StrokeWidth: 1.5, FillColor: pdfFill},
			},
			chart.ContinuousSeries{
				Name:    "Zero Delay",
				XValues: []float64{0, 0},
				YValues: []float64{0, yMax},
				Style:   chart.Style{StrokeColor: drawing.ColorRed, StrokeWidth: 1.5, StrokeDashArray: []float64{5, 4}},
			},
		},
	}
	ch.Elements = []chart.Renderable{chart.Legend(&ch)}

	return render(c, ch.Render)
}

// MassChart plots the exact PMF as one bar per observed delay value
func MassChart(dist entities.VendorDistribution) (Chart, error) {
	c := Chart{
		Title:  fmt.Sprintf("PMF - Vendor %s", dist.VendorID),
		XLabel: "Exact Delay Days",
		YLabel: "Probability",
	}

	if len(dist.Mass) == 0 {
		return c, nil
	}

	bars := make([]chart.Value, len(dist.Mass))
	var yMax float64
	for i, m := range dist.Mass {
		bars[i] = chart.Value{
			Label: strconv.Itoa(m.DelayDays),
			Value: m.Probability,
			Style: chart.Style{FillColor: pmfFill, StrokeColor: pmfFrame, StrokeWidth: 1},
		}
		yMax = math.Max(yMax, m.Probability)
	}

	barWidth := (chartWidth - 100) * 4 / 5 / len(bars)
	barWidth = max(minBarWidth, min(maxBarWidth, barWidth))

	bc := chart.BarChart{
		Title:      c.Title,
		Width:      chartWidth,
		Height:     chartHeight,
		BarWidth:   barWidth,
		Background: chart.Style{Padding: chart.Box{Top: 40}},
		YAxis: chart.YAxis{
			Name:  c.YLabel,
			Range: &chart.ContinuousRange{Min: 0, Max: yMax * verticalHeadroom},
		},
		Bars: bars,
	}

	return render(c, bc.Render)
}

func render(c Chart, draw func(chart.RendererProvider, io.Writer) error) (Chart, error) {
	var buf bytes.Buffer
	if err := draw(chart.SVG, &buf); err != nil {
		return c, fmt.Errorf("failed to render %s: %w", c.Title, err)
	}
	c.SVG = template.HTML(buf.String())
	return c, nil
}
