package usecase

import (
	"context"

	model "github.com/tigerroll/dotlaunch/pkg/launcher/core/domain/model"
)

// Launcher runs the whole launch sequence once and returns the process exit status.
type Launcher interface {
	Run(ctx context.Context) int
}

// LaunchExplorer reads the launch history.
type LaunchExplorer interface {
	// GetLaunchExecution retrieves a single execution by ID.
	GetLaunchExecution(ctx context.Context, id string) (*model.LaunchExecution, error)
	// GetRecentLaunchExecutions returns at most limit executions, newest first.
	GetRecentLaunchExecutions(ctx context.Context, limit int) ([]*model.LaunchExecution, error)
}

// Exit statuses returned by the launcher for its own failures.
// A child that ran to completion passes its exit code through instead.
const (
	ExitOK      = 0
	ExitFailure = 1
	ExitUsage   = 2
)
