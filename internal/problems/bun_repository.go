package problems

import (
	"context"
	"fmt"

	"github.com/goliatone/go-errors"
	repository "github.com/goliatone/go-repository-bun"
	"github.com/goliatone/go-repository-cache/cache"
	"github.com/goliatone/go-repository-cache/repositorycache"
	"github.com/google/uuid"
	"github.com/uptrace/bun"
)

// NewProblemRecordRepository creates the generic bun repository for problems,
// identified by url_name.
func NewProblemRecordRepository(db *bun.DB) repository.Repository[*Problem] {
	return repository.MustNewRepository(db, repository.ModelHandlers[*Problem]{
		NewRecord:          func() *Problem { return &Problem{} },
		GetID:              func(problem *Problem) uuid.UUID { return problem.ID },
		SetID:              func(problem *Problem, id uuid.UUID) { problem.ID = id },
		GetIdentifier:      func() string { return "url_name" },
		GetIdentifierValue: func(problem *Problem) string { return problem.URLName },
	})
}

// BunProblemRepository implements ProblemRepository with optional caching.
type BunProblemRepository struct {
	repo repository.Repository[*Problem]
}

var _ ProblemRepository = (*BunProblemRepository)(nil)

// NewBunProblemRepository creates a problem repository without caching.
func NewBunProblemRepository(db *bun.DB) *BunProblemRepository {
	return NewBunProblemRepositoryWithCache(db, nil, nil)
}

// NewBunProblemRepositoryWithCache creates a problem repository whose reads
// go through the cache service.
func NewBunProblemRepositoryWithCache(db *bun.DB, cacheService cache.CacheService, serializer cache.KeySerializer) *BunProblemRepository {
	base := NewProblemRecordRepository(db)
	if cacheService != nil && serializer != nil {
		base = repositorycache.New(base, cacheService, serializer)
	}
	return &BunProblemRepository{repo: base}
}

func (r *BunProblemRepository) Create(ctx context.Context, problem *Problem) (*Problem, error) {
	record, err := r.repo.Create(ctx, problem)
	if err != nil {
		return nil, fmt.Errorf("problem repository error: %w", err)
	}
	return record, nil
}

func (r *BunProblemRepository) Update(ctx context.Context, problem *Problem) (*Problem, error) {
	record, err := r.repo.Update(ctx, problem)
	if err != nil {
		return nil, mapRepositoryError(err, problem.ID.String())
	}
	return record, nil
}

func (r *BunProblemRepository) GetByID(ctx context.Context, id uuid.UUID) (*Problem, error) {
	record, err := r.repo.GetByID(ctx, id.String())
	if err != nil {
		return nil, mapRepositoryError(err, id.String())
	}
	return record, nil
}

func (r *BunProblemRepository) GetByURLName(ctx context.Context, urlName string) (*Problem, error) {
	record, err := r.repo.GetByIdentifier(ctx, urlName)
	if err != nil {
		return nil, mapRepositoryError(err, urlName)
	}
	return record, nil
}

// List returns problems ordered by url_name.
func (r *BunProblemRepository) List(ctx context.Context) ([]*Problem, error) {
	records, _, err := r.repo.List(ctx, repository.SelectRawProcessor(func(q *bun.SelectQuery) *bun.SelectQuery {
		return q.Order("url_name ASC")
	}))
	return records, err
}

func (r *BunProblemRepository) Delete(ctx context.Context, id uuid.UUID) error {
	if _, err := r.GetByID(ctx, id); err != nil {
		return err
	}
	return r.repo.Delete(ctx, &Problem{ID: id})
}

func mapRepositoryError(err error, key string) error {
	if err == nil {
		return nil
	}
	if errors.IsCategory(err, repository.CategoryDatabaseNotFound) {
		return &NotFoundError{Resource: "problem", Key: key}
	}
	return fmt.Errorf("problem repository error: %w", err)
}
