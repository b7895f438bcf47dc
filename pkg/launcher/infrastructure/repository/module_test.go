package repository_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/fx/fxtest"

	"github.com/tigerroll/dotlaunch/pkg/launcher/core/config"
	"github.com/tigerroll/dotlaunch/pkg/launcher/core/domain/model"
	"github.com/tigerroll/dotlaunch/pkg/launcher/infrastructure/repository"
	"github.com/tigerroll/dotlaunch/pkg/launcher/infrastructure/repository/inmemory"
	sqlrepo "github.com/tigerroll/dotlaunch/pkg/launcher/infrastructure/repository/sql"
)

func TestNewLaunchRepository_Memory(t *testing.T) {
	lc := fxtest.NewLifecycle(t)
	repo := repository.NewLaunchRepository(repository.Params{
		Lifecycle: lc,
		History:   &config.HistoryConfig{Driver: "memory"},
		Launcher:  &config.LauncherConfig{},
	})
	assert.IsType(t, &inmemory.InMemoryLaunchRepository{}, repo)
	lc.RequireStart().RequireStop()
}

func TestNewLaunchRepository_SQLiteRelativeToLauncherDir(t *testing.T) {
	dir := t.TempDir()
	lc := fxtest.NewLifecycle(t)
	repo := repository.NewLaunchRepository(repository.Params{
		Lifecycle: lc,
		History:   &config.HistoryConfig{Driver: "sqlite", DSN: ".dotlaunch/history.db", Migrate: true},
		Launcher:  &config.LauncherConfig{Dir: dir},
	})
	require.IsType(t, &sqlrepo.GormLaunchRepository{}, repo)

	lc.RequireStart()
	require.NoError(t, repo.SaveLaunchExecution(context.Background(), model.NewLaunchExecution("app.py", "wait")))
	lc.RequireStop()

	_, err := os.Stat(filepath.Join(dir, ".dotlaunch", "history.db"))
	assert.NoError(t, err)
}

func TestNewLaunchRepository_FallsBackToMemory(t *testing.T) {
	lc := fxtest.NewLifecycle(t)
	repo := repository.NewLaunchRepository(repository.Params{
		Lifecycle: lc,
		History:   &config.HistoryConfig{Driver: "mysql", DSN: "not a dsn"},
		Launcher:  &config.LauncherConfig{Dir: t.TempDir()},
	})
	assert.IsType(t, &inmemory.InMemoryLaunchRepository{}, repo)
	lc.RequireStart().RequireStop()
}
