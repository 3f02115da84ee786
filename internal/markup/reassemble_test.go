package markup

import "testing"

func TestReassembleSegmentMovesSiblings(t *testing.T) {
	fragment := "<p>a</p>\n<br>\n<stringresponse answer=\"x\" type=\"ci\">\n  <textline size=\"20\"/>\n</stringresponse>\nloose text\n<p>b</p>"
	seg := &segment{}

	got := reassembleSegment(seg, fragment)

	want := "<stringresponse answer=\"x\" type=\"ci\">\n" +
		"<p>a</p>\n" +
		"<br>\n" +
		"  <textline size=\"20\"/>\n" +
		"loose text\n" +
		"<p>b</p>\n" +
		"</stringresponse>"
	if got != want {
		t.Fatalf("unexpected reassembly\nwant:\n%s\ngot:\n%s", want, got)
	}
	if !seg.report.Wrapped {
		t.Fatal("expected segment to be marked wrapped")
	}
	if len(seg.report.Diagnostics) != 0 {
		t.Fatalf("unexpected diagnostics %v", seg.report.Diagnostics)
	}
}

func TestReassembleSegmentWithoutChildElement(t *testing.T) {
	seg := &segment{}
	got := reassembleSegment(seg, "<p>q</p>\n<stringresponse answer=\"x\">\n</stringresponse>")
	want := "<stringresponse answer=\"x\">\n<p>q</p>\n</stringresponse>"
	if got != want {
		t.Fatalf("unexpected reassembly\nwant:\n%s\ngot:\n%s", want, got)
	}
}

func TestScanFragmentReportsUnexpectedEndTag(t *testing.T) {
	if _, err := scanFragment("<p>a</div>"); err == nil {
		t.Fatal("expected an error for a mismatched end tag")
	}
	if _, err := scanFragment("</p>"); err == nil {
		t.Fatal("expected an error for a stray end tag")
	}
}

func TestScanFragmentOffsetsCoverInput(t *testing.T) {
	fragment := "<h3 class=\"x\">T</h3>\n<choiceresponse>\n  <checkboxgroup>\n  </checkboxgroup>\n</choiceresponse>"
	scan, err := scanFragment(fragment)
	if err != nil {
		t.Fatalf("scanFragment returned error: %v", err)
	}
	if len(scan.nodes) != 2 {
		t.Fatalf("expected two top-level nodes, got %d", len(scan.nodes))
	}
	resp := scan.nodes[1]
	if fragment[resp.start:resp.openEnd] != "<choiceresponse>" {
		t.Fatalf("unexpected open tag %q", fragment[resp.start:resp.openEnd])
	}
	if fragment[resp.closeStart:resp.end] != "</choiceresponse>" {
		t.Fatalf("unexpected close tag %q", fragment[resp.closeStart:resp.end])
	}
	if fragment[resp.firstChild:resp.firstChild+len("<checkboxgroup>")] != "<checkboxgroup>" {
		t.Fatalf("unexpected first child offset %d", resp.firstChild)
	}
}
