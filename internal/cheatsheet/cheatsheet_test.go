package cheatsheet_test

import (
	"strings"
	"testing"

	"github.com/goliatone/go-capa/internal/cheatsheet"
	"github.com/goliatone/go-capa/internal/markup"
)

func TestHTMLRendersTable(t *testing.T) {
	html, err := cheatsheet.HTML()
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	if !strings.Contains(html, "<table>") || !strings.Contains(html, "<h1>Problem markdown cheatsheet</h1>") {
		t.Fatalf("unexpected html %q", html)
	}
	again, _ := cheatsheet.HTML()
	if again != html {
		t.Fatal("expected cached rendering")
	}
}

func TestExamplesConvert(t *testing.T) {
	examples := cheatsheet.Examples()
	if len(examples) < 8 {
		t.Fatalf("expected cheatsheet examples, got %d", len(examples))
	}
	for i, example := range examples {
		result := markup.Convert(example.Markdown)
		for _, diag := range result.Diagnostics() {
			if diag.Kind.Degrading() {
				t.Fatalf("example %d degraded: %s\n%s", i, diag, example.Markdown)
			}
		}
		types := result.ResponseTypes()
		if example.Response == "" {
			if len(types) != 0 {
				t.Fatalf("example %d: expected no response, got %v", i, types)
			}
			continue
		}
		if len(types) != 1 || types[0] != example.Response {
			t.Fatalf("example %d: expected %s, got %v\n%s", i, example.Response, types, result.XML)
		}
	}
}

func TestMarkdownIsEmbedded(t *testing.T) {
	if !strings.Contains(cheatsheet.Markdown(), "```capa") {
		t.Fatal("expected embedded cheatsheet source")
	}
}
