// Package inmemory provides an in-memory implementation of the LaunchRepository interface.
// History lives only as long as the launcher process, which makes it the default store.
package inmemory

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"github.com/tigerroll/dotlaunch/pkg/launcher/core/domain/model"
	"github.com/tigerroll/dotlaunch/pkg/launcher/core/domain/repository"
)

// InMemoryLaunchRepository holds launch executions in a map.
type InMemoryLaunchRepository struct {
	executions map[string]*model.LaunchExecution
	mu         sync.RWMutex
}

// NewInMemoryLaunchRepository creates an empty repository.
func NewInMemoryLaunchRepository() *InMemoryLaunchRepository {
	return &InMemoryLaunchRepository{
		executions: make(map[string]*model.LaunchExecution),
	}
}

// SaveLaunchExecution stores a copy of execution.
// It returns an error if an execution with the same ID already exists.
func (r *InMemoryLaunchRepository) SaveLaunchExecution(ctx context.Context, execution *model.LaunchExecution) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.executions[execution.ID]; exists {
		return fmt.Errorf("LaunchExecution with ID %s already exists", execution.ID)
	}
	r.executions[execution.ID] = clone(execution)
	return nil
}

// UpdateLaunchExecution replaces a stored execution.
// It returns ErrLaunchExecutionNotFound if the ID is unknown.
func (r *InMemoryLaunchRepository) UpdateLaunchExecution(ctx context.Context, execution *model.LaunchExecution) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.executions[execution.ID]; !exists {
		return fmt.Errorf("LaunchExecution with ID %s: %w", execution.ID, repository.ErrLaunchExecutionNotFound)
	}
	r.executions[execution.ID] = clone(execution)
	return nil
}

// FindLaunchExecutionByID returns a copy of the stored execution.
func (r *InMemoryLaunchRepository) FindLaunchExecutionByID(ctx context.Context, id string) (*model.LaunchExecution, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	execution, ok := r.executions[id]
	if !ok {
		return nil, repository.ErrLaunchExecutionNotFound
	}
	return clone(execution), nil
}

// FindRecentLaunchExecutions returns up to limit executions, newest StartTime first.
// A non-positive limit returns all of them.
func (r *InMemoryLaunchRepository) FindRecentLaunchExecutions(ctx context.Context, limit int) ([]*model.LaunchExecution, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]*model.LaunchExecution, 0, len(r.executions))
	for _, e := range r.executions {
		out = append(out, clone(e))
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].StartTime.After(out[j].StartTime)
	})
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

// Close releases nothing; it always returns nil.
func (r *InMemoryLaunchRepository) Close() error {
	return nil
}

// clone copies execution so callers cannot modify stored state.
func clone(execution *model.LaunchExecution) *model.LaunchExecution {
	c := *execution
	c.Command = append([]string(nil), execution.Command...)
	if execution.EndTime != nil {
		end := *execution.EndTime
		c.EndTime = &end
	}
	return &c
}

var _ repository.LaunchRepository = (*InMemoryLaunchRepository)(nil)
