// Package repository defines persistence for launch executions.
package repository

import (
	"context"
	"errors"

	"github.com/tigerroll/dotlaunch/pkg/launcher/core/domain/model"
)

// ErrLaunchExecutionNotFound is returned when no execution matches the given ID.
var ErrLaunchExecutionNotFound = errors.New("launch execution not found")

// LaunchRepository stores launch executions.
type LaunchRepository interface {
	// SaveLaunchExecution persists a new execution. Saving an existing ID is an error.
	SaveLaunchExecution(ctx context.Context, execution *model.LaunchExecution) error
	// UpdateLaunchExecution overwrites a stored execution.
	UpdateLaunchExecution(ctx context.Context, execution *model.LaunchExecution) error
	// FindLaunchExecutionByID returns ErrLaunchExecutionNotFound when the ID is unknown.
	FindLaunchExecutionByID(ctx context.Context, id string) (*model.LaunchExecution, error)
	// FindRecentLaunchExecutions returns up to limit executions, newest first.
	FindRecentLaunchExecutions(ctx context.Context, limit int) ([]*model.LaunchExecution, error)
	// Close releases underlying resources.
	Close() error
}
