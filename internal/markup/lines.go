package markup

import "strings"

type lineKind uint8

const (
	// kindSource is author text that every remaining stage may rewrite.
	kindSource lineKind = iota
	// kindText is author text that is only eligible for paragraph wrapping.
	kindText
	// kindMarkup is generated markup and is never rewritten.
	kindMarkup
)

type line struct {
	text string
	kind lineKind
}

func (l line) blank() bool {
	return strings.TrimSpace(l.text) == ""
}

func (l line) isSource() bool {
	return l.kind == kindSource
}

func newLines(text string, kind lineKind) []line {
	parts := strings.Split(text, "\n")
	out := make([]line, len(parts))
	for i, part := range parts {
		out[i] = line{text: part, kind: kind}
	}
	return out
}

func sourceLines(text string) []line { return newLines(text, kindSource) }

func markupLines(text string) []line { return newLines(text, kindMarkup) }

func textLines(text string) []line { return newLines(text, kindText) }

func renderLines(lines []line) string {
	var b strings.Builder
	for i, l := range lines {
		if i > 0 {
			b.WriteByte('\n')
		}
		b.WriteString(l.text)
	}
	return b.String()
}

// sourceRuns calls fn for every maximal run of source lines, replacing the run
// with whatever fn returns. Non-source lines are copied through.
func sourceRuns(lines []line, fn func(run []line) []line) []line {
	out := make([]line, 0, len(lines))
	for i := 0; i < len(lines); {
		if !lines[i].isSource() {
			out = append(out, lines[i])
			i++
			continue
		}
		j := i
		for j < len(lines) && lines[j].isSource() {
			j++
		}
		out = append(out, fn(lines[i:j])...)
		i = j
	}
	return out
}

// mapSourceText rewrites the joined text of every source run and splits the
// result back into source lines.
func mapSourceText(lines []line, fn func(text string) string) []line {
	return sourceRuns(lines, func(run []line) []line {
		return sourceLines(fn(renderLines(run)))
	})
}

// replaceSource finds every match of m inside each joined source run and
// replaces it with the lines returned by build. Text around a match stays
// source; a newline that only separates the text from the match is dropped so
// matches starting or ending a line do not leave blank lines behind.
func replaceSource(lines []line, m matcher, build func(groups []string) []line) []line {
	return sourceRuns(lines, func(run []line) []line {
		text := renderLines(run)
		matches := m.findAll(text)
		if len(matches) == 0 {
			return run
		}
		out := make([]line, 0, len(run)+len(matches)*4)
		prev := 0
		for i, found := range matches {
			out = append(out, splitChunk(text[prev:found.start], i > 0, true)...)
			out = append(out, build(found.groups)...)
			prev = found.end
		}
		return append(out, splitChunk(text[prev:], true, false)...)
	})
}

func splitChunk(chunk string, afterMatch, beforeMatch bool) []line {
	if chunk == "" {
		return nil
	}
	parts := sourceLines(chunk)
	if afterMatch && strings.HasPrefix(chunk, "\n") {
		parts = parts[1:]
	}
	if beforeMatch && strings.HasSuffix(chunk, "\n") && len(parts) > 0 {
		parts = parts[:len(parts)-1]
	}
	return parts
}
