package markup

import (
	"fmt"
	"regexp"
	"strings"
)

var (
	checkboxMarker = regexp.MustCompile(`^\s*\[(.?)\]\s*`)
	hintOnlyLine   = regexp.MustCompile(`^\s*\{\{.*?\}\}`)
)

// applyCheckboxes converts runs of "[x] text" lines, with compound hint
// lines mixed in, into a checkbox group. A run needs at least one bracket
// line; a run made only of hint lines is left alone.
func applyCheckboxes(seg *segment) {
	seg.lines = replaceBlocks(seg.lines, func(l line) bool {
		return checkboxMarker.MatchString(l.text) || hintOnlyLine.MatchString(l.text)
	}, func(block []line) ([]line, bool) {
		return checkboxBlock(seg, block)
	})
}

func checkboxBlock(seg *segment, block []line) ([]line, bool) {
	var choices, compounds, dropped []string
	for _, l := range block {
		if l.blank() {
			continue
		}
		m := checkboxMarker.FindStringSubmatchIndex(l.text)
		if m == nil {
			hint, _, ok := extractHint(l.text)
			if ok && hint.Compound != "" {
				compounds = append(compounds, `    <compoundhint value="`+attr(hint.Compound)+`">`+hint.Text+`</compoundhint>`)
			} else {
				dropped = append(dropped, strings.TrimSpace(l.text))
			}
			continue
		}
		correct := "false"
		if strings.EqualFold(l.text[m[2]:m[3]], "x") {
			correct = "true"
		}
		choices = append(choices, checkboxChoice(correct, l.text[m[1]:]))
	}
	if len(choices) == 0 {
		return nil, false
	}
	for _, text := range dropped {
		seg.diag(DiagnosticDroppedHint, fmt.Sprintf("hint line %q is not a compound hint", text))
	}
	out := []string{"<choiceresponse>", "  <checkboxgroup>"}
	out = append(out, choices...)
	out = append(out, compounds...)
	out = append(out, "  </checkboxgroup>", "</choiceresponse>")
	return markupLines(strings.Join(out, "\n")), true
}

// checkboxChoice renders one choice. Selection hints become choicehint
// children; any other hint stays in the choice text.
func checkboxChoice(correct, value string) string {
	hint, rest, ok := extractHint(value)
	if !ok || !hint.hasSelection() {
		return `    <choice correct="` + correct + `">` + strings.TrimSpace(value) + `</choice>`
	}
	var b strings.Builder
	b.WriteString(`    <choice correct="` + correct + `">` + strings.TrimSpace(rest))
	if hint.Selected != "" {
		b.WriteString("\n      <choicehint selected=\"true\">" + hint.Selected + "</choicehint>")
	}
	if hint.Unselected != "" {
		b.WriteString("\n      <choicehint selected=\"false\">" + hint.Unselected + "</choicehint>")
	}
	b.WriteString("</choice>")
	return b.String()
}
