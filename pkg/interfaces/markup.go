package interfaces

// MarkupConverter turns problem editor markdown into problem XML. Conversion
// never fails: input the converter does not recognise is carried through as
// paragraphs.
type MarkupConverter interface {
	Convert(markdown string) string
	ConvertWithReport(markdown string) ConversionReport
}

// ConversionReport describes a conversion in addition to its XML output.
type ConversionReport struct {
	XML           string                 `json:"xml"`
	Segments      int                    `json:"segments"`
	ResponseTypes []string               `json:"response_types,omitempty"`
	DemandHints   []string               `json:"demand_hints,omitempty"`
	WellFormed    bool                   `json:"well_formed"`
	Diagnostics   []ConversionDiagnostic `json:"diagnostics,omitempty"`
}

// ConversionDiagnostic is a condition found in one segment of the input.
type ConversionDiagnostic struct {
	Segment int    `json:"segment"`
	Kind    string `json:"kind"`
	Detail  string `json:"detail,omitempty"`
}
