package markup

import (
	"regexp"
	"strings"
)

// DefaultExplanationLabel heads every converted explanation.
const DefaultExplanationLabel = "Explanation"

// Option customises a conversion.
type Option func(*options)

type options struct {
	explanationLabel string
}

// WithExplanationLabel sets the localised label written at the top of each
// explanation. Blank labels are ignored.
func WithExplanationLabel(label string) Option {
	return func(o *options) {
		if label = strings.TrimSpace(label); label != "" {
			o.explanationLabel = label
		}
	}
}

type segment struct {
	opts        options
	lines       []line
	demandHints []string
	report      SegmentReport
}

func (s *segment) diag(kind DiagnosticKind, detail string) {
	s.report.Diagnostics = append(s.report.Diagnostics, Diagnostic{
		Segment: s.report.Index,
		Kind:    kind,
		Detail:  detail,
	})
}

// stages run in order; later stages only see source lines left by earlier
// ones.
var stages = []func(*segment){
	applyCode,
	freezeRawText,
	applyHeaders,
	applyLabels,
	collectDemandHints,
	foldHints,
	applySelects,
	applyMultipleChoice,
	applyCheckboxes,
	applyAnswers,
	applyExplanations,
	wrapParagraphs,
}

var (
	lineEndings      = strings.NewReplacer("\r\n", "\n", "\r", "\n")
	segmentSeparator = regexp.MustCompile(`^\s*---+\s*$`)
)

// Convert turns problem editor markdown into problem XML. It never fails:
// text no rule recognises becomes paragraphs, and segments whose markup
// cannot be reassembled are emitted as generated, with a diagnostic.
func Convert(markdown string, opts ...Option) Result {
	cfg := options{explanationLabel: DefaultExplanationLabel}
	for _, opt := range opts {
		if opt != nil {
			opt(&cfg)
		}
	}

	var (
		result    Result
		fragments []string
	)
	for _, text := range splitSegments(lineEndings.Replace(markdown)) {
		if strings.TrimSpace(text) == "" {
			continue
		}
		seg := &segment{
			opts:   cfg,
			lines:  sourceLines(text),
			report: SegmentReport{Index: len(result.Segments)},
		}
		for _, stage := range stages {
			stage(seg)
		}
		fragment := strings.TrimSpace(collapseBlankLines(renderLines(seg.lines)))
		if fragment = reassembleSegment(seg, fragment); fragment != "" {
			fragments = append(fragments, fragment)
		}
		result.Segments = append(result.Segments, seg.report)
		result.DemandHints = append(result.DemandHints, seg.demandHints...)
	}

	result.XML = "<problem>\n" + strings.Join(fragments, "\n\n") + renderDemandHints(result.DemandHints) + "\n</problem>"
	return result
}

// splitSegments splits on lines made only of three or more dashes.
func splitSegments(text string) []string {
	var (
		segments []string
		current  []string
	)
	for _, l := range strings.Split(text, "\n") {
		if segmentSeparator.MatchString(l) {
			segments = append(segments, strings.Join(current, "\n"))
			current = current[:0]
			continue
		}
		current = append(current, l)
	}
	return append(segments, strings.Join(current, "\n"))
}
