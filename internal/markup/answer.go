package markup

import (
	"fmt"
	"regexp"
	"strings"
)

var (
	answerStart  = regexp.MustCompile(`^s?=`)
	answerPrefix = regexp.MustCompile(`^s?=\s*`)
	alternative  = regexp.MustCompile(`^\s*(or|not)=\s*`)
)

type answerValue struct {
	keyword string // "or" or "not"
	value   string
	hint    Hint
	hinted  bool
}

// applyAnswers converts "= answer" lines, together with any following
// "or=" and "not=" lines, into a numerical or string response.
func applyAnswers(seg *segment) {
	out := make([]line, 0, len(seg.lines))
	for i := 0; i < len(seg.lines); {
		l := seg.lines[i]
		if !l.isSource() || !answerStart.MatchString(l.text) {
			out = append(out, l)
			i++
			continue
		}
		end := i + 1
		for {
			k := end
			for k < len(seg.lines) && seg.lines[k].isSource() && seg.lines[k].blank() {
				k++
			}
			if k >= len(seg.lines) || !seg.lines[k].isSource() || !alternative.MatchString(seg.lines[k].text) {
				break
			}
			end = k + 1
		}
		out = append(out, answerBlock(seg, seg.lines[i:end])...)
		i = end
	}
	seg.lines = out
}

func answerBlock(seg *segment, block []line) []line {
	first := block[0].text
	forceString := strings.HasPrefix(first, "s")
	hint, answer, hinted := extractHint(answerPrefix.ReplaceAllString(first, ""))
	answer = strings.TrimSpace(answer)

	var values []answerValue
	for _, l := range block[1:] {
		if l.blank() {
			continue
		}
		h, rest, ok := extractHint(l.text)
		m := alternative.FindStringSubmatchIndex(rest)
		if m == nil {
			continue
		}
		values = append(values, answerValue{
			keyword: rest[m[2]:m[3]],
			value:   strings.TrimSpace(rest[m[1]:]),
			hint:    h,
			hinted:  ok,
		})
	}

	if !forceString && numericAnswer(answer) {
		return numericBlock(seg, answer, hint, hinted, values)
	}
	return stringBlock(answer, hint, hinted, values)
}

func numericBlock(seg *segment, answer string, hint Hint, hinted bool, values []answerValue) []line {
	value, tolerance := answer, ""
	if !isRange(answer) {
		value, tolerance, _ = splitTolerance(answer)
	}
	out := []string{`<numericalresponse answer="` + attr(value) + `">`}
	if tolerance != "" {
		out = append(out, `  <responseparam type="tolerance" default="`+attr(tolerance)+`" />`)
	}
	for _, alt := range values {
		if alt.keyword != "or" {
			continue
		}
		if !plainNumeric(alt.value) {
			seg.diag(DiagnosticDroppedAnswer, fmt.Sprintf("alternative %q is not a plain number", alt.value))
			continue
		}
		out = append(out, `  <additional_answer answer="`+attr(alt.value)+`">`+correctHint(alt.hint, alt.hinted, "")+`</additional_answer>`)
	}
	out = append(out, "  <formulaequationinput />")
	if hinted {
		out = append(out, correctHint(hint, true, "  "))
	}
	out = append(out, "</numericalresponse>")
	return markupLines(strings.Join(out, "\n"))
}

func stringBlock(answer string, hint Hint, hinted bool, values []answerValue) []line {
	kind := "ci"
	if strings.HasPrefix(answer, "|") {
		kind = "ci regexp"
		answer = strings.TrimSpace(answer[1:])
	}
	out := []string{`<stringresponse answer="` + attr(answer) + `" type="` + kind + `">`}
	if hinted {
		out = append(out, correctHint(hint, true, "  "))
	}
	for _, alt := range values {
		switch alt.keyword {
		case "or":
			out = append(out, `  <additional_answer answer="`+attr(alt.value)+`">`+correctHint(alt.hint, alt.hinted, "")+`</additional_answer>`)
		case "not":
			text := ""
			if alt.hinted {
				text = alt.hint.Text
			}
			out = append(out, `  <stringequalhint answer="`+attr(alt.value)+`"`+labelAttr(alt.hint.Label)+`>`+text+`</stringequalhint>`)
		}
	}
	out = append(out, `  <textline size="20"/>`, "</stringresponse>")
	return markupLines(strings.Join(out, "\n"))
}

func correctHint(hint Hint, hinted bool, indent string) string {
	if !hinted {
		return ""
	}
	return indent + "<correcthint" + labelAttr(hint.Label) + ">" + hint.Text + "</correcthint>"
}
