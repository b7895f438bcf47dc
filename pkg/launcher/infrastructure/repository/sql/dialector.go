package sql

import (
	"fmt"
	"sync"
	"time"

	mysqldriver "github.com/go-sql-driver/mysql"
	gormmysql "gorm.io/driver/mysql"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/tigerroll/dotlaunch/pkg/launcher/support/util/logger"
)

// DialectorFactory creates a gorm.Dialector from a DSN.
type DialectorFactory func(dsn string) (gorm.Dialector, error)

var (
	dialectorRegistry = make(map[string]DialectorFactory)
	dialectorMutex    sync.RWMutex
)

// RegisterDialector registers a DialectorFactory for the given driver name.
func RegisterDialector(driver string, factory DialectorFactory) {
	dialectorMutex.Lock()
	defer dialectorMutex.Unlock()
	if _, exists := dialectorRegistry[driver]; exists {
		logger.Warnf("Dialector for driver '%s' already registered. Overwriting.", driver)
	}
	dialectorRegistry[driver] = factory
}

// GetDialectorFactory returns the DialectorFactory for driver.
func GetDialectorFactory(driver string) (DialectorFactory, error) {
	dialectorMutex.RLock()
	defer dialectorMutex.RUnlock()
	factory, ok := dialectorRegistry[driver]
	if !ok {
		return nil, fmt.Errorf("no dialector registered for history driver: %s", driver)
	}
	return factory, nil
}

// normalizeMySQLDSN makes DATETIME columns scan into time.Time.
func normalizeMySQLDSN(dsn string) (string, error) {
	cfg, err := mysqldriver.ParseDSN(dsn)
	if err != nil {
		return "", fmt.Errorf("invalid mysql dsn: %w", err)
	}
	cfg.ParseTime = true
	if cfg.Loc == nil {
		cfg.Loc = time.UTC
	}
	return cfg.FormatDSN(), nil
}

func init() {
	RegisterDialector("sqlite", func(dsn string) (gorm.Dialector, error) {
		if dsn == "" {
			return nil, fmt.Errorf("sqlite database path cannot be empty")
		}
		return sqlite.Open(dsn), nil
	})
	RegisterDialector("postgres", func(dsn string) (gorm.Dialector, error) {
		return postgres.Open(dsn), nil
	})
	RegisterDialector("mysql", func(dsn string) (gorm.Dialector, error) {
		normalized, err := normalizeMySQLDSN(dsn)
		if err != nil {
			return nil, err
		}
		return gormmysql.Open(normalized), nil
	})
}
