// Package sql provides a GORM-backed LaunchRepository for sqlite, postgres and mysql.
package sql

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/tigerroll/dotlaunch/pkg/launcher/core/config"
	"github.com/tigerroll/dotlaunch/pkg/launcher/core/domain/model"
	"github.com/tigerroll/dotlaunch/pkg/launcher/core/domain/repository"
	"github.com/tigerroll/dotlaunch/pkg/launcher/support/util/exception"
	"github.com/tigerroll/dotlaunch/pkg/launcher/support/util/logger"
)

const moduleName = "history"

// GormLaunchRepository implements repository.LaunchRepository on a *gorm.DB.
type GormLaunchRepository struct {
	db *gorm.DB
}

// NewGormLaunchRepository wraps an open connection.
func NewGormLaunchRepository(db *gorm.DB) *GormLaunchRepository {
	return &GormLaunchRepository{db: db}
}

// Open connects to the history store described by cfg and applies migrations when enabled.
// A relative sqlite path is resolved against baseDir and its parent directory is created.
func Open(cfg *config.HistoryConfig, baseDir string) (*GormLaunchRepository, error) {
	dsn := cfg.DSN
	if cfg.Driver == "sqlite" {
		if !filepath.IsAbs(dsn) {
			dsn = filepath.Join(baseDir, dsn)
		}
		if err := os.MkdirAll(filepath.Dir(dsn), 0o755); err != nil {
			return nil, exception.NewLaunchErrorf(moduleName, exception.KindInternal, "cannot create directory for %s", dsn, err)
		}
	}

	factory, err := GetDialectorFactory(cfg.Driver)
	if err != nil {
		return nil, exception.NewLaunchError(moduleName, exception.KindInvalidConfig, "unknown history driver", err)
	}

	if cfg.Migrate {
		if err := migrateWith(factory, dsn, cfg.Driver); err != nil {
			return nil, exception.NewLaunchError(moduleName, exception.KindInternal, "failed to migrate history schema", err)
		}
	}

	dialector, err := factory(dsn)
	if err != nil {
		return nil, exception.NewLaunchError(moduleName, exception.KindInvalidConfig, "invalid history dsn", err)
	}
	db, err := gorm.Open(dialector, gormConfig())
	if err != nil {
		return nil, exception.NewLaunchErrorf(moduleName, exception.KindInternal, "failed to open %s history store", cfg.Driver, err)
	}
	logger.Debugf("History: opened %s store.", cfg.Driver)
	return NewGormLaunchRepository(db), nil
}

// migrateWith runs the migrations on a connection of its own, which golang-migrate closes.
func migrateWith(factory DialectorFactory, dsn, driver string) error {
	dialector, err := factory(dsn)
	if err != nil {
		return err
	}
	db, err := gorm.Open(dialector, gormConfig())
	if err != nil {
		return err
	}
	sqlDB, err := db.DB()
	if err != nil {
		return err
	}
	return Migrate(sqlDB, driver)
}

func gormConfig() *gorm.Config {
	return &gorm.Config{
		Logger:                 gormlogger.Default.LogMode(gormlogger.Silent),
		SkipDefaultTransaction: true,
	}
}

// SaveLaunchExecution inserts a new row.
func (r *GormLaunchRepository) SaveLaunchExecution(ctx context.Context, execution *model.LaunchExecution) error {
	const op = "GormLaunchRepository.SaveLaunchExecution"
	entity, err := fromDomainLaunchExecution(execution)
	if err != nil {
		return exception.NewLaunchError(op, exception.KindInternal, "failed to encode launch execution", err)
	}
	if err := r.db.WithContext(ctx).Create(entity).Error; err != nil {
		return exception.NewLaunchError(op, exception.KindInternal, fmt.Sprintf("failed to save LaunchExecution (ID: %s)", execution.ID), err)
	}
	return nil
}

// UpdateLaunchExecution overwrites every column of an existing row.
func (r *GormLaunchRepository) UpdateLaunchExecution(ctx context.Context, execution *model.LaunchExecution) error {
	const op = "GormLaunchRepository.UpdateLaunchExecution"
	entity, err := fromDomainLaunchExecution(execution)
	if err != nil {
		return exception.NewLaunchError(op, exception.KindInternal, "failed to encode launch execution", err)
	}
	result := r.db.WithContext(ctx).Model(&LaunchExecutionEntity{}).
		Where("id = ?", entity.ID).
		Select("*").
		Updates(entity)
	if result.Error != nil {
		return exception.NewLaunchError(op, exception.KindInternal, fmt.Sprintf("failed to update LaunchExecution (ID: %s)", execution.ID), result.Error)
	}
	if result.RowsAffected == 0 {
		return fmt.Errorf("LaunchExecution with ID %s: %w", execution.ID, repository.ErrLaunchExecutionNotFound)
	}
	return nil
}

// FindLaunchExecutionByID loads one row.
func (r *GormLaunchRepository) FindLaunchExecutionByID(ctx context.Context, id string) (*model.LaunchExecution, error) {
	const op = "GormLaunchRepository.FindLaunchExecutionByID"
	var entity LaunchExecutionEntity
	err := r.db.WithContext(ctx).Where("id = ?", id).Take(&entity).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, repository.ErrLaunchExecutionNotFound
	}
	if err != nil {
		return nil, exception.NewLaunchError(op, exception.KindInternal, fmt.Sprintf("failed to find LaunchExecution (ID: %s)", id), err)
	}
	return toDomainLaunchExecution(&entity)
}

// FindRecentLaunchExecutions returns up to limit rows, newest start_time first.
// A non-positive limit returns all rows.
func (r *GormLaunchRepository) FindRecentLaunchExecutions(ctx context.Context, limit int) ([]*model.LaunchExecution, error) {
	const op = "GormLaunchRepository.FindRecentLaunchExecutions"
	var entities []LaunchExecutionEntity
	query := r.db.WithContext(ctx).Order("start_time DESC")
	if limit > 0 {
		query = query.Limit(limit)
	}
	if err := query.Find(&entities).Error; err != nil {
		return nil, exception.NewLaunchError(op, exception.KindInternal, "failed to list launch executions", err)
	}

	out := make([]*model.LaunchExecution, 0, len(entities))
	for i := range entities {
		e, err := toDomainLaunchExecution(&entities[i])
		if err != nil {
			return nil, exception.NewLaunchError(op, exception.KindInternal, "failed to decode launch execution", err)
		}
		out = append(out, e)
	}
	return out, nil
}

// Close closes the underlying connection pool.
func (r *GormLaunchRepository) Close() error {
	sqlDB, err := r.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}

var _ repository.LaunchRepository = (*GormLaunchRepository)(nil)
