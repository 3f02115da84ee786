package problems

import (
	"context"

	"github.com/goliatone/go-capa/pkg/interfaces"
)

// Activity verbs emitted for problem changes.
const (
	ActivityVerbCreated = "problem.created"
	ActivityVerbUpdated = "problem.updated"
	ActivityVerbDeleted = "problem.deleted"

	activityObjectType = "problem"
	activityChannel    = "capa"
)

// WithActivitySink forwards a record to sink for every created, updated and
// deleted problem.
func WithActivitySink(sink interfaces.ActivitySink) ServiceOption {
	return func(s *service) {
		s.activity = sink
	}
}

// emitActivity never fails the operation; sink errors are logged.
func (s *service) emitActivity(ctx context.Context, verb string, record *Problem) {
	if s.activity == nil || record == nil {
		return
	}
	entry := interfaces.ActivityRecord{
		Verb:       verb,
		ObjectType: activityObjectType,
		ObjectID:   record.ID.String(),
		Channel:    activityChannel,
		OccurredAt: s.now().UTC(),
		Data: map[string]any{
			"url_name":     record.URLName,
			"display_name": record.DisplayName,
			"advanced":     record.Advanced(),
		},
	}
	if err := s.activity.Log(ctx, entry); err != nil {
		s.logger.WithContext(ctx).Warn("problems.activity.failed", "verb", verb, "url_name", record.URLName, "error", err)
	}
}
