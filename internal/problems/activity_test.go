package problems_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/goliatone/go-capa/internal/markup"
	"github.com/goliatone/go-capa/internal/problems"
	"github.com/goliatone/go-capa/pkg/interfaces"
	"github.com/google/uuid"
)

type recordingSink struct {
	records []interfaces.ActivityRecord
	err     error
}

func (s *recordingSink) Log(_ context.Context, record interfaces.ActivityRecord) error {
	s.records = append(s.records, record)
	return s.err
}

func TestServiceEmitsActivityForEveryChange(t *testing.T) {
	ctx := context.Background()
	now := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)
	sink := &recordingSink{}
	svc := problems.NewService(
		problems.NewMemoryProblemRepository(),
		markup.NewConverter(),
		problems.WithNow(func() time.Time { return now }),
		problems.WithActivitySink(sink),
	)

	created, err := svc.SaveMarkdown(ctx, problems.SaveMarkdownInput{URLName: "capital", Markdown: "= Paris"})
	if err != nil {
		t.Fatalf("save markdown: %v", err)
	}
	if _, err := svc.SaveXML(ctx, problems.SaveXMLInput{URLName: "capital", XML: "<problem></problem>"}); err != nil {
		t.Fatalf("save xml: %v", err)
	}
	if err := svc.Delete(ctx, created.ID); err != nil {
		t.Fatalf("delete: %v", err)
	}

	want := []string{problems.ActivityVerbCreated, problems.ActivityVerbUpdated, problems.ActivityVerbDeleted}
	if len(sink.records) != len(want) {
		t.Fatalf("expected %d records, got %d", len(want), len(sink.records))
	}
	for i, record := range sink.records {
		if record.Verb != want[i] {
			t.Fatalf("record %d: expected verb %q got %q", i, want[i], record.Verb)
		}
		if record.ObjectType != "problem" || record.ObjectID != created.ID.String() {
			t.Fatalf("record %d: unexpected object %s/%s", i, record.ObjectType, record.ObjectID)
		}
		if record.Channel != "capa" || !record.OccurredAt.Equal(now) {
			t.Fatalf("record %d: unexpected channel or time %+v", i, record)
		}
		if record.Data["url_name"] != "capital" {
			t.Fatalf("record %d: expected url_name metadata, got %v", i, record.Data)
		}
	}
	if sink.records[0].Data["advanced"] != false || sink.records[1].Data["advanced"] != true {
		t.Fatalf("expected advanced flag to follow the stored mode, got %v / %v", sink.records[0].Data, sink.records[1].Data)
	}
}

func TestServiceIgnoresActivitySinkFailures(t *testing.T) {
	sink := &recordingSink{err: errors.New("sink down")}
	svc := problems.NewService(problems.NewMemoryProblemRepository(), markup.NewConverter(), problems.WithActivitySink(sink))

	if _, err := svc.SaveMarkdown(context.Background(), problems.SaveMarkdownInput{URLName: "x", Markdown: "= 1"}); err != nil {
		t.Fatalf("expected save to succeed despite sink error, got %v", err)
	}
	if len(sink.records) != 1 {
		t.Fatalf("expected one record, got %d", len(sink.records))
	}
}

func TestServiceDeleteMissingEmitsNothing(t *testing.T) {
	sink := &recordingSink{}
	svc := problems.NewService(problems.NewMemoryProblemRepository(), markup.NewConverter(), problems.WithActivitySink(sink))

	err := svc.Delete(context.Background(), uuid.New())
	if !errors.Is(err, problems.ErrProblemNotFound) {
		t.Fatalf("expected ErrProblemNotFound, got %v", err)
	}
	if len(sink.records) != 0 {
		t.Fatalf("expected no records, got %d", len(sink.records))
	}
}
