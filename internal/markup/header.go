package markup

import "regexp"

var (
	underline  = regexp.MustCompile(`^==+[ \t]*$`)
	equalsOnly = regexp.MustCompile(`^=+[ \t]*$`)
)

// applyHeaders turns a source line directly followed by an underline of two or
// more "=" into a header. Labels on the header line are converted in place.
// Every other underline line is dropped.
func applyHeaders(seg *segment) {
	out := make([]line, 0, len(seg.lines))
	for i := 0; i < len(seg.lines); i++ {
		l := seg.lines[i]
		if !l.isSource() {
			out = append(out, l)
			continue
		}
		if underline.MatchString(l.text) {
			continue
		}
		if i+1 < len(seg.lines) && seg.lines[i+1].isSource() &&
			underline.MatchString(seg.lines[i+1].text) && !equalsOnly.MatchString(l.text) {
			out = append(out, markupLines(`<h3 class="hd hd-2 problem-header">`+renderLabels(l.text)+`</h3>`)...)
			i++
			continue
		}
		out = append(out, l)
	}
	seg.lines = out
}
