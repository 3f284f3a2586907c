package output

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"github.com/vsinha/vendorrisk/pkg/application/dto"
)

// Supported output formats
const (
	FormatText = "text"
	FormatJSON = "json"
	FormatYAML = "yaml"
	FormatCSV  = "csv"
	FormatHTML = "html"
)

// Config holds configuration for output generation
type Config struct {
	Format    string
	OutputDir string
	Verbose   bool
	Writer    io.Writer // defaults to os.Stdout
}

func (c Config) writer() io.Writer {
	if c.Writer == nil {
		return os.Stdout
	}
	return c.Writer
}

// Generate creates output in the specified format
func Generate(report *dto.RiskReport, config Config) error {
	if report == nil {
		return fmt.Errorf("report cannot be nil")
	}

	switch config.Format {
	case FormatText, "":
		return generateTextOutput(report, config)
	case FormatJSON:
		return generateJSONOutput(report, config)
	case FormatYAML:
		return generateYAMLOutput(report, config)
	case FormatCSV:
		return generateCSVOutput(report, config)
	case FormatHTML:
		return generateHTMLOutput(report, config)
	default:
		return fmt.Errorf("unsupported output format: %s", config.Format)
	}
}

// generateJSONOutput creates JSON output
func generateJSONOutput(report *dto.RiskReport, config Config) error {
	jsonData, err := json.MarshalIndent(report, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal JSON: %w", err)
	}
	return writeDocument(jsonData, "risk_report.json", config)
}

// generateYAMLOutput creates YAML output
func generateYAMLOutput(report *dto.RiskReport, config Config) error {
	yamlData, err := yaml.Marshal(report)
	if err != nil {
		return fmt.Errorf("failed to marshal YAML: %w", err)
	}
	return writeDocument(yamlData, "risk_report.yaml", config)
}

// writeDocument prints data to the configured writer, or saves it under
// OutputDir when one is set
func writeDocument(data []byte, name string, config Config) error {
	out := config.writer()

	if config.OutputDir == "" {
		_, err := fmt.Fprintln(out, string(data))
		return err
	}

	if err := os.MkdirAll(config.OutputDir, 0755); err != nil {
		return fmt.Errorf("failed to create output directory: %w", err)
	}

	filename := filepath.Join(config.OutputDir, name)
	if err := os.WriteFile(filename, data, 0644); err != nil {
		return fmt.Errorf("failed to write %s: %w", name, err)
	}

	if config.Verbose {
		fmt.Fprintf(out, "💾 Results saved to: %s\n", filename)
	}
	return nil
}
