package problems

import (
	"context"
	"fmt"

	"github.com/google/uuid"
)

// ProblemRepository exposes persistence operations for problems.
type ProblemRepository interface {
	Create(ctx context.Context, problem *Problem) (*Problem, error)
	Update(ctx context.Context, problem *Problem) (*Problem, error)
	GetByID(ctx context.Context, id uuid.UUID) (*Problem, error)
	GetByURLName(ctx context.Context, urlName string) (*Problem, error)
	List(ctx context.Context) ([]*Problem, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

// NotFoundError is returned when a problem cannot be located.
type NotFoundError struct {
	Resource string
	Key      string
}

func (e *NotFoundError) Error() string {
	if e.Key == "" {
		return fmt.Sprintf("%s not found", e.Resource)
	}
	return fmt.Sprintf("%s %q not found", e.Resource, e.Key)
}
