// Package output renders the aggregated analysis as console text, JSON,
// XML, or Markdown. Renderers are deterministic projections of the same
// payload and contain no analysis logic.
package output

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/cddtools/icp/pkg/models"
)

// Format represents an output format.
type Format string

const (
	FormatConsole  Format = "console"
	FormatJSON     Format = "json"
	FormatXML      Format = "xml"
	FormatMarkdown Format = "markdown"
)

// ParseFormat converts a string to Format, defaulting to console.
func ParseFormat(s string) Format {
	switch strings.ToLower(s) {
	case "json":
		return FormatJSON
	case "xml":
		return FormatXML
	case "markdown", "md":
		return FormatMarkdown
	default:
		return FormatConsole
	}
}

// Formatter writes a rendered report to stdout or a file.
type Formatter struct {
	format  Format
	writer  io.Writer
	file    *os.File
	colored bool
}

// NewFormatter creates a formatter. An empty output path writes to stdout;
// writing to a file disables color.
func NewFormatter(format Format, output string) (*Formatter, error) {
	var writer io.Writer = os.Stdout
	var file *os.File
	colored := true

	if output != "" {
		f, err := os.Create(output)
		if err != nil {
			return nil, err
		}
		writer = f
		file = f
		colored = false
	}

	return &Formatter{
		format:  format,
		writer:  writer,
		file:    file,
		colored: colored,
	}, nil
}

// Close closes the formatter's writer if it's a file.
func (f *Formatter) Close() error {
	if f.file != nil {
		return f.file.Close()
	}
	return nil
}

// Render writes the report in the configured format.
func (f *Formatter) Render(agg *models.AggregatedAnalysis) error {
	switch f.format {
	case FormatJSON:
		encoder := json.NewEncoder(f.writer)
		encoder.SetIndent("", "  ")
		return encoder.Encode(agg)
	case FormatXML:
		return renderXML(f.writer, agg)
	case FormatMarkdown:
		return renderMarkdown(f.writer, agg)
	default:
		return renderConsole(f.writer, agg, f.colored)
	}
}

func formatIcp(v float64) string {
	return fmt.Sprintf("%.1f", v)
}
