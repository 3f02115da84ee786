package markup

import (
	"regexp"
	"strings"
)

var (
	selectRule     = stdMatcher{re: regexp.MustCompile(`(?s)\[\[(.+?)\]\]`)}
	optionSplitter = regexp.MustCompile(`,\s*`)
)

// applySelects converts [[ ... ]] dropdowns. A single-line body lists
// comma separated options; a multi-line body has one option per line and
// allows hints.
func applySelects(seg *segment) {
	seg.lines = replaceSource(seg.lines, selectRule, func(groups []string) []line {
		body := groups[1]
		var inner []string
		if strings.Contains(body, "\n") {
			inner = optionLines(body)
		} else {
			inner = []string{inlineOptions(body)}
		}
		out := []string{"<optionresponse>"}
		out = append(out, inner...)
		out = append(out, "</optionresponse>")
		return markupLines(strings.Join(out, "\n"))
	})
}

func inlineOptions(body string) string {
	var options []string
	correct := ""
	haveCorrect := false
	for _, option := range optionSplitter.Split(body, -1) {
		option = strings.TrimSpace(option)
		if value, ok := unwrapParens(option); ok {
			option = value
			if !haveCorrect {
				correct, haveCorrect = value, true
			}
		}
		options = append(options, "'"+option+"'")
	}
	return `  <optioninput options="(` + attr(strings.Join(options, ",")) + `)" correct="` + attr(correct) + `"></optioninput>`
}

func optionLines(body string) []string {
	out := []string{"  <optioninput>"}
	for _, raw := range strings.Split(body, "\n") {
		raw = strings.TrimSpace(raw)
		if raw == "" {
			continue
		}
		hint, value, hasHint := extractHint(raw)
		value = strings.TrimSpace(value)
		correct := "False"
		if unwrapped, ok := unwrapParens(value); ok {
			value, correct = unwrapped, "True"
		}
		hintMarkup := ""
		if hasHint {
			hintMarkup = " <optionhint" + labelAttr(hint.Label) + ">" + hint.Text + "</optionhint>"
		}
		out = append(out, `    <option correct="`+correct+`">`+value+hintMarkup+"</option>")
	}
	return append(out, "  </optioninput>")
}

func unwrapParens(value string) (string, bool) {
	if len(value) >= 2 && value[0] == '(' && value[len(value)-1] == ')' {
		return strings.TrimSpace(value[1 : len(value)-1]), true
	}
	return value, false
}
