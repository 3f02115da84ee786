package problems

import (
	"maps"
	"time"

	"github.com/google/uuid"
	"github.com/uptrace/bun"
)

// Problem is a stored problem: the markdown the author edits in simple mode
// and the XML derived from it. Markdown is nil once the problem has been
// converted to advanced mode.
type Problem struct {
	bun.BaseModel `bun:"table:problems,alias:pr"`

	ID          uuid.UUID      `bun:",pk,type:uuid" json:"id"`
	URLName     string         `bun:"url_name,notnull,unique" json:"url_name"`
	DisplayName string         `bun:"display_name,notnull" json:"display_name"`
	Markdown    *string        `bun:"markdown" json:"markdown,omitempty"`
	XML         string         `bun:"data,notnull" json:"data"`
	Metadata    map[string]any `bun:"metadata,type:jsonb" json:"metadata,omitempty"`
	CreatedAt   time.Time      `bun:"created_at,nullzero,default:current_timestamp" json:"created_at"`
	UpdatedAt   time.Time      `bun:"updated_at,nullzero,default:current_timestamp" json:"updated_at"`
}

// Advanced reports whether the problem is edited as XML.
func (p *Problem) Advanced() bool {
	return p != nil && p.Markdown == nil
}

func cloneProblem(src *Problem) *Problem {
	if src == nil {
		return nil
	}
	cloned := *src
	if src.Markdown != nil {
		markdown := *src.Markdown
		cloned.Markdown = &markdown
	}
	cloned.Metadata = maps.Clone(src.Metadata)
	return &cloned
}

func cloneProblems(src []*Problem) []*Problem {
	out := make([]*Problem, 0, len(src))
	for _, problem := range src {
		out = append(out, cloneProblem(problem))
	}
	return out
}
