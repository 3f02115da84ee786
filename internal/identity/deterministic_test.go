package identity

import (
	"testing"

	"github.com/google/uuid"
)

func TestProblemUUIDIsStable(t *testing.T) {
	first := ProblemUUID("intro-problem")
	if first == uuid.Nil {
		t.Fatal("expected non-nil uuid")
	}
	if again := ProblemUUID("  Intro-Problem "); again != first {
		t.Fatalf("expected normalised key to produce %s, got %s", first, again)
	}
	if other := ProblemUUID("other"); other == first {
		t.Fatal("expected different url names to produce different ids")
	}
}

func TestUUIDBlankKey(t *testing.T) {
	if got := UUID("  "); got != uuid.Nil {
		t.Fatalf("expected nil uuid, got %s", got)
	}
	if got := ProblemUUID(""); got != uuid.Nil {
		t.Fatalf("expected nil uuid, got %s", got)
	}
}
