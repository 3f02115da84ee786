// Package cheatsheet serves the problem markdown syntax reference shown next
// to the editor.
package cheatsheet

import (
	"bytes"
	_ "embed"
	"sync"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
)

//go:embed cheatsheet.md
var source string

var (
	renderOnce sync.Once
	rendered   string
	renderErr  error
)

// Markdown returns the cheatsheet source.
func Markdown() string {
	return source
}

// HTML returns the cheatsheet rendered to HTML. The rendering is cached.
func HTML() (string, error) {
	renderOnce.Do(func() {
		var buf bytes.Buffer
		if err := newEngine().Convert([]byte(source), &buf); err != nil {
			renderErr = err
			return
		}
		rendered = buf.String()
	})
	return rendered, renderErr
}

func newEngine() goldmark.Markdown {
	return goldmark.New(goldmark.WithExtensions(extension.Table))
}
