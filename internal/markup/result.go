package markup

import "fmt"

// DiagnosticKind names a condition noticed while converting a segment.
type DiagnosticKind string

const (
	// DiagnosticNoResponse marks a segment without a response element. The
	// fragment is still emitted; it simply has nothing to wrap.
	DiagnosticNoResponse DiagnosticKind = "no_response"
	// DiagnosticMultipleResponses marks a segment with more than one response
	// element. All fragments are emitted unwrapped.
	DiagnosticMultipleResponses DiagnosticKind = "multiple_responses"
	// DiagnosticNestedResponse marks a response element that is not at the
	// top level of its segment.
	DiagnosticNestedResponse DiagnosticKind = "nested_response"
	// DiagnosticMalformedMarkup marks a segment whose generated markup could
	// not be tokenized into balanced elements (usually stray author tags).
	DiagnosticMalformedMarkup DiagnosticKind = "malformed_markup"
	// DiagnosticDroppedAnswer marks a numeric "or=" alternative that was not
	// a plain number and was left out.
	DiagnosticDroppedAnswer DiagnosticKind = "dropped_answer"
	// DiagnosticDroppedHint marks a hint-only line in a checkbox group that
	// was neither a compound hint nor attached to a choice.
	DiagnosticDroppedHint DiagnosticKind = "dropped_hint"
)

// Degrading reports whether the kind means the segment was emitted without
// structural reassembly.
func (k DiagnosticKind) Degrading() bool {
	switch k {
	case DiagnosticMultipleResponses, DiagnosticNestedResponse, DiagnosticMalformedMarkup:
		return true
	}
	return false
}

// Diagnostic describes one condition found in a segment.
type Diagnostic struct {
	Segment int            `json:"segment"`
	Kind    DiagnosticKind `json:"kind"`
	Detail  string         `json:"detail,omitempty"`
}

func (d Diagnostic) String() string {
	if d.Detail == "" {
		return fmt.Sprintf("segment %d: %s", d.Segment, d.Kind)
	}
	return fmt.Sprintf("segment %d: %s: %s", d.Segment, d.Kind, d.Detail)
}

// SegmentReport summarises one converted segment.
type SegmentReport struct {
	Index         int          `json:"index"`
	ResponseTypes []string     `json:"response_types,omitempty"`
	Wrapped       bool         `json:"wrapped"`
	Diagnostics   []Diagnostic `json:"diagnostics,omitempty"`
}

// Result is the outcome of a conversion.
type Result struct {
	XML         string          `json:"xml"`
	Segments    []SegmentReport `json:"segments"`
	DemandHints []string        `json:"demand_hints,omitempty"`
}

// Diagnostics flattens the per-segment diagnostics in segment order.
func (r Result) Diagnostics() []Diagnostic {
	var out []Diagnostic
	for _, seg := range r.Segments {
		out = append(out, seg.Diagnostics...)
	}
	return out
}

// WellFormed reports whether every segment with a response was reassembled.
func (r Result) WellFormed() bool {
	for _, diag := range r.Diagnostics() {
		if diag.Kind.Degrading() {
			return false
		}
	}
	return true
}

// ResponseTypes lists the response elements produced, in document order.
func (r Result) ResponseTypes() []string {
	var out []string
	for _, seg := range r.Segments {
		out = append(out, seg.ResponseTypes...)
	}
	return out
}
