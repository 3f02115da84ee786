package markup

import (
	"regexp"
	"strings"
)

var choiceMarker = regexp.MustCompile(`^\s*\((.{0,3})\)\s*`)

// applyMultipleChoice converts runs of "(x) text" lines. Blank source lines
// inside and directly after a run belong to it.
func applyMultipleChoice(seg *segment) {
	seg.lines = replaceBlocks(seg.lines, func(l line) bool {
		return choiceMarker.MatchString(l.text)
	}, func(block []line) ([]line, bool) {
		return multipleChoiceBlock(block), true
	})
}

func multipleChoiceBlock(block []line) []line {
	shuffle := false
	choices := make([]string, 0, len(block))
	for _, l := range block {
		m := choiceMarker.FindStringSubmatchIndex(l.text)
		if m == nil {
			continue
		}
		marker := strings.ToLower(l.text[m[2]:m[3]])
		value := l.text[m[1]:]
		if strings.Contains(marker, "!") {
			shuffle = true
		}
		correct := "false"
		if strings.Contains(marker, "x") {
			correct = "true"
		}
		fixed := ""
		if strings.Contains(marker, "@") {
			fixed = ` fixed="true"`
		}
		hintMarkup := ""
		if hint, rest, ok := extractHint(value); ok {
			value = rest
			hintMarkup = " <choicehint" + labelAttr(hint.Label) + ">" + hint.Text + "</choicehint>"
		}
		choices = append(choices, `    <choice correct="`+correct+`"`+fixed+`>`+strings.TrimSpace(value)+hintMarkup+`</choice>`)
	}
	group := `  <choicegroup type="MultipleChoice"`
	if shuffle {
		group += ` shuffle="true"`
	}
	out := []string{"<multiplechoiceresponse>", group + ">"}
	out = append(out, choices...)
	out = append(out, "  </choicegroup>", "</multiplechoiceresponse>")
	return markupLines(strings.Join(out, "\n"))
}

// replaceBlocks finds runs of source lines that start with a line accepted
// by member and continue over member or blank source lines. build may
// decline a block, in which case its lines are kept and scanning resumes
// after it.
func replaceBlocks(lines []line, member func(line) bool, build func(block []line) ([]line, bool)) []line {
	out := make([]line, 0, len(lines))
	for i := 0; i < len(lines); {
		l := lines[i]
		if !l.isSource() || l.blank() || !member(l) {
			out = append(out, l)
			i++
			continue
		}
		j := i + 1
		for j < len(lines) && lines[j].isSource() && (lines[j].blank() || member(lines[j])) {
			j++
		}
		if replaced, ok := build(lines[i:j]); ok {
			out = append(out, replaced...)
		} else {
			out = append(out, lines[i:j]...)
		}
		i = j
	}
	return out
}
