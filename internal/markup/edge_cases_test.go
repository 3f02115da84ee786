package markup

import (
	"strings"
	"testing"
)

func TestConvertHeaderSurvivesLargeInput(t *testing.T) {
	input := strings.Repeat("filler line of author text\n", 200000) + "Title\n=====\n= 5"
	result := Convert(input)
	if !strings.Contains(result.XML, `<h3 class="hd hd-2 problem-header">Title</h3>`) {
		t.Fatal("expected header to be converted in a large document")
	}
	if strings.Contains(result.XML, "<p>Title</p>") || strings.Contains(result.XML, "=====") {
		t.Fatal("expected header text and underline to be consumed")
	}
}

func TestConvertHeaderConvertsLabelOnItsLine(t *testing.T) {
	got := Convert(">>Q||more<<\n===\n= 5").XML
	if !strings.Contains(got, `<h3 class="hd hd-2 problem-header"><label>Q</label>`+"\n"+`<description>more</description></h3>`) {
		t.Fatalf("expected label inside header: %s", got)
	}
	if strings.Contains(got, ">>") || strings.Contains(got, "<<") {
		t.Fatalf("expected label markers to be consumed: %s", got)
	}
}

func TestConvertHeaderIgnoresUnderlineAfterEqualsLine(t *testing.T) {
	got := Convert("=\n==\n").XML
	if strings.Contains(got, "<h3") || strings.Contains(got, "==") {
		t.Fatalf("expected no header and no underline: %s", got)
	}
}

func TestConvertCodeKeepsRuleSyntaxVerbatim(t *testing.T) {
	result := Convert("[code]\n[1] first\n(a) second\n= 3\n[code]\n= 5")
	if !strings.Contains(result.XML, "<pre><code>[1] first\n(a) second\n= 3</code></pre>") {
		t.Fatalf("expected code contents verbatim: %s", result.XML)
	}
	if got := result.ResponseTypes(); len(got) != 1 || got[0] != "numericalresponse" {
		t.Fatalf("expected only the answer after the block to convert, got %v", got)
	}
	if !result.WellFormed() {
		t.Fatalf("expected well formed result, got %v", result.Diagnostics())
	}
	if strings.Contains(result.XML, "[code]") {
		t.Fatalf("expected code markers to be consumed: %s", result.XML)
	}
}

func TestConvertFreezesScriptBodies(t *testing.T) {
	result := Convert("<script type=\"loncapa/python\">\n= 2\n</script>\n= 5")
	if got := result.ResponseTypes(); len(got) != 1 || got[0] != "numericalresponse" {
		t.Fatalf("expected a single response, got %v", got)
	}
	if !strings.Contains(result.XML, "<script type=\"loncapa/python\">\n= 2\n</script>") {
		t.Fatalf("expected script body untouched: %s", result.XML)
	}
	if strings.Count(result.XML, "<numericalresponse") != 1 {
		t.Fatalf("expected exactly one response element: %s", result.XML)
	}
}

func TestConvertFreezesRawTextUntilClosingTag(t *testing.T) {
	result := Convert("<STYLE>\n( ) a\n(x) b\n</style> after\n= 5")
	if strings.Contains(result.XML, "multiplechoiceresponse") {
		t.Fatalf("expected style body untouched: %s", result.XML)
	}
	if got := result.ResponseTypes(); len(got) != 1 || got[0] != "numericalresponse" {
		t.Fatalf("expected the answer after the style block to convert, got %v", got)
	}
}

func TestConvertHintOnlySegmentAddsNoFragment(t *testing.T) {
	result := Convert("A\n---\n|| h ||")
	want := "<problem>\n<p>A</p>\n<demandhint>\n  <hint>h</hint>\n</demandhint>\n</problem>"
	if result.XML != want {
		t.Fatalf("unexpected xml\nwant:\n%q\ngot:\n%q", want, result.XML)
	}
}
