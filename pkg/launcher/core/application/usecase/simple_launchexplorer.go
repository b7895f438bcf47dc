package usecase

import (
	"context"
	"fmt"

	model "github.com/tigerroll/dotlaunch/pkg/launcher/core/domain/model"
	repository "github.com/tigerroll/dotlaunch/pkg/launcher/core/domain/repository"
	exception "github.com/tigerroll/dotlaunch/pkg/launcher/support/util/exception"
	logger "github.com/tigerroll/dotlaunch/pkg/launcher/support/util/logger"
)

// DefaultHistoryLimit is used when a non-positive limit is requested.
const DefaultHistoryLimit = 20

// SimpleLaunchExplorer queries launch history through a LaunchRepository.
type SimpleLaunchExplorer struct {
	repo repository.LaunchRepository
}

var _ LaunchExplorer = (*SimpleLaunchExplorer)(nil)

// NewSimpleLaunchExplorer creates a new SimpleLaunchExplorer.
func NewSimpleLaunchExplorer(repo repository.LaunchRepository) *SimpleLaunchExplorer {
	return &SimpleLaunchExplorer{repo: repo}
}

func (e *SimpleLaunchExplorer) GetLaunchExecution(ctx context.Context, id string) (*model.LaunchExecution, error) {
	execution, err := e.repo.FindLaunchExecutionByID(ctx, id)
	if err != nil {
		return nil, exception.NewLaunchError("launch_explorer", exception.KindInternal, fmt.Sprintf("failed to retrieve LaunchExecution (ID: %s)", id), err)
	}
	return execution, nil
}

func (e *SimpleLaunchExplorer) GetRecentLaunchExecutions(ctx context.Context, limit int) ([]*model.LaunchExecution, error) {
	if limit <= 0 {
		limit = DefaultHistoryLimit
	}
	executions, err := e.repo.FindRecentLaunchExecutions(ctx, limit)
	if err != nil {
		return nil, exception.NewLaunchError("launch_explorer", exception.KindInternal, "failed to list recent LaunchExecutions", err)
	}
	logger.Debugf("Retrieved %d LaunchExecution(s).", len(executions))
	return executions, nil
}
