package markup

import (
	"github.com/goliatone/go-capa/internal/logging"
	"github.com/goliatone/go-capa/pkg/interfaces"
)

// Converter is the service form of Convert: it carries conversion options
// and logs a summary of every conversion.
type Converter struct {
	opts   []Option
	logger interfaces.Logger
}

// ConverterOption configures a Converter.
type ConverterOption func(*Converter)

// WithLogger sets the logger used for conversion summaries.
func WithLogger(logger interfaces.Logger) ConverterOption {
	return func(c *Converter) {
		if logger != nil {
			c.logger = logger
		}
	}
}

// WithOptions appends conversion options applied to every call.
func WithOptions(opts ...Option) ConverterOption {
	return func(c *Converter) {
		c.opts = append(c.opts, opts...)
	}
}

// NewConverter builds a converter.
func NewConverter(opts ...ConverterOption) *Converter {
	c := &Converter{logger: logging.NoOp()}
	for _, opt := range opts {
		if opt != nil {
			opt(c)
		}
	}
	return c
}

var _ interfaces.MarkupConverter = (*Converter)(nil)

// Convert returns the problem XML for markdown.
func (c *Converter) Convert(markdown string) string {
	return c.Run(markdown).XML
}

// ConvertWithReport converts markdown and describes the result.
func (c *Converter) ConvertWithReport(markdown string) interfaces.ConversionReport {
	return Report(c.Run(markdown))
}

// Run converts markdown and returns the full result.
func (c *Converter) Run(markdown string) Result {
	result := Convert(markdown, c.opts...)
	for _, diag := range result.Diagnostics() {
		if diag.Kind.Degrading() {
			c.logger.Warn("markup.convert.degraded", "segment", diag.Segment, "kind", string(diag.Kind), "detail", diag.Detail)
		}
	}
	c.logger.Debug("markup.convert.completed",
		"segments", len(result.Segments),
		"response_types", result.ResponseTypes(),
		"demand_hints", len(result.DemandHints),
	)
	return result
}

// Report maps a Result onto the public report shape.
func Report(result Result) interfaces.ConversionReport {
	report := interfaces.ConversionReport{
		XML:           result.XML,
		Segments:      len(result.Segments),
		ResponseTypes: result.ResponseTypes(),
		DemandHints:   result.DemandHints,
		WellFormed:    result.WellFormed(),
	}
	for _, diag := range result.Diagnostics() {
		report.Diagnostics = append(report.Diagnostics, interfaces.ConversionDiagnostic{
			Segment: diag.Segment,
			Kind:    string(diag.Kind),
			Detail:  diag.Detail,
		})
	}
	return report
}
