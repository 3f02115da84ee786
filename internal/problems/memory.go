package problems

import (
	"context"
	"sort"
	"sync"

	"github.com/google/uuid"
)

// MemoryProblemRepository keeps problems in memory.
type MemoryProblemRepository struct {
	mu        sync.RWMutex
	byID      map[uuid.UUID]*Problem
	byURLName map[string]uuid.UUID
}

// NewMemoryProblemRepository constructs an empty repository.
func NewMemoryProblemRepository() *MemoryProblemRepository {
	return &MemoryProblemRepository{
		byID:      make(map[uuid.UUID]*Problem),
		byURLName: make(map[string]uuid.UUID),
	}
}

var _ ProblemRepository = (*MemoryProblemRepository)(nil)

func (r *MemoryProblemRepository) Create(_ context.Context, problem *Problem) (*Problem, error) {
	if problem == nil {
		return nil, nil
	}
	cloned := cloneProblem(problem)

	r.mu.Lock()
	defer r.mu.Unlock()

	r.byID[cloned.ID] = cloned
	r.byURLName[cloned.URLName] = cloned.ID
	return cloneProblem(cloned), nil
}

func (r *MemoryProblemRepository) Update(_ context.Context, problem *Problem) (*Problem, error) {
	if problem == nil {
		return nil, nil
	}
	r.mu.Lock()
	defer r.mu.Unlock()

	existing, ok := r.byID[problem.ID]
	if !ok {
		return nil, &NotFoundError{Resource: "problem", Key: problem.ID.String()}
	}
	if existing.URLName != problem.URLName {
		delete(r.byURLName, existing.URLName)
	}
	cloned := cloneProblem(problem)
	r.byID[cloned.ID] = cloned
	r.byURLName[cloned.URLName] = cloned.ID
	return cloneProblem(cloned), nil
}

func (r *MemoryProblemRepository) GetByID(_ context.Context, id uuid.UUID) (*Problem, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	record, ok := r.byID[id]
	if !ok {
		return nil, &NotFoundError{Resource: "problem", Key: id.String()}
	}
	return cloneProblem(record), nil
}

func (r *MemoryProblemRepository) GetByURLName(_ context.Context, urlName string) (*Problem, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	id, ok := r.byURLName[urlName]
	if !ok {
		return nil, &NotFoundError{Resource: "problem", Key: urlName}
	}
	return cloneProblem(r.byID[id]), nil
}

// List returns problems ordered by url_name.
func (r *MemoryProblemRepository) List(_ context.Context) ([]*Problem, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]*Problem, 0, len(r.byID))
	for _, problem := range r.byID {
		out = append(out, cloneProblem(problem))
	}
	sort.Slice(out, func(i, j int) bool { return out[i].URLName < out[j].URLName })
	return out, nil
}

func (r *MemoryProblemRepository) Delete(_ context.Context, id uuid.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	record, ok := r.byID[id]
	if !ok {
		return &NotFoundError{Resource: "problem", Key: id.String()}
	}
	delete(r.byID, id)
	delete(r.byURLName, record.URLName)
	return nil
}
