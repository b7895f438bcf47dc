// Package repository selects the launch history store configured in history.driver.
package repository

import (
	"context"
	"os"

	"go.uber.org/fx"

	"github.com/tigerroll/dotlaunch/pkg/launcher/core/config"
	corerepo "github.com/tigerroll/dotlaunch/pkg/launcher/core/domain/repository"
	"github.com/tigerroll/dotlaunch/pkg/launcher/core/workdir"
	"github.com/tigerroll/dotlaunch/pkg/launcher/infrastructure/repository/inmemory"
	sqlrepo "github.com/tigerroll/dotlaunch/pkg/launcher/infrastructure/repository/sql"
	"github.com/tigerroll/dotlaunch/pkg/launcher/support/util/logger"
)

// Params defines the dependencies for NewLaunchRepository.
type Params struct {
	fx.In
	Lifecycle fx.Lifecycle
	History   *config.HistoryConfig
	Launcher  *config.LauncherConfig
}

// NewLaunchRepository opens the configured store and closes it on shutdown.
// History is auxiliary: when a SQL store cannot be opened the launcher keeps going
// with an in-memory one.
func NewLaunchRepository(p Params) corerepo.LaunchRepository {
	repo := open(p.History, p.Launcher)
	p.Lifecycle.Append(fx.Hook{
		OnStop: func(ctx context.Context) error {
			if err := repo.Close(); err != nil {
				logger.Warnf("History: close failed: %v", err)
			}
			return nil
		},
	})
	return repo
}

func open(history *config.HistoryConfig, launcher *config.LauncherConfig) corerepo.LaunchRepository {
	if history.Driver == "" || history.Driver == "memory" {
		return inmemory.NewInMemoryLaunchRepository()
	}

	baseDir, err := workdir.Resolve(launcher.Dir)
	if err != nil {
		logger.Warnf("History: %v; resolving %s against the current directory", err, history.DSN)
		baseDir, _ = os.Getwd()
	}
	repo, err := sqlrepo.Open(history, baseDir)
	if err != nil {
		logger.Warnf("History: %v; falling back to in-memory history", err)
		return inmemory.NewInMemoryLaunchRepository()
	}
	return repo
}

// Module provides the LaunchRepository.
var Module = fx.Options(
	fx.Provide(NewLaunchRepository),
)
