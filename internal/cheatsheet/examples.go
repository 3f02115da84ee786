package cheatsheet

import (
	"strings"

	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/text"
)

// exampleLanguage marks the fenced blocks holding problem markdown.
const exampleLanguage = "capa"

// Example is a problem markdown snippet from the cheatsheet.
type Example struct {
	Markdown string
	// Response is the response element the snippet produces, empty when it
	// has none.
	Response string
}

// Examples returns the problem markdown snippets of the cheatsheet in
// document order.
func Examples() []Example {
	src := []byte(source)
	doc := newEngine().Parser().Parse(text.NewReader(src))

	var examples []Example
	_ = ast.Walk(doc, func(node ast.Node, entering bool) (ast.WalkStatus, error) {
		block, ok := node.(*ast.FencedCodeBlock)
		if !entering || !ok || block.Info == nil {
			return ast.WalkContinue, nil
		}
		info := strings.Fields(string(block.Info.Segment.Value(src)))
		if len(info) == 0 || info[0] != exampleLanguage {
			return ast.WalkContinue, nil
		}
		var buf strings.Builder
		lines := block.Lines()
		for i := 0; i < lines.Len(); i++ {
			segment := lines.At(i)
			buf.Write(segment.Value(src))
		}
		example := Example{Markdown: buf.String()}
		if len(info) > 1 {
			example.Response = info[1]
		}
		examples = append(examples, example)
		return ast.WalkSkipChildren, nil
	})
	return examples
}
