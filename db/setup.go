package db

import (
	"fmt"
	"io"
	"log"
	"os"
	"time"

	"github.com/monocle-dev/notes/internal/models"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

const (
	DriverPostgres = "postgres"
	DriverSQLite   = "sqlite"
)

var logOutput io.Writer = os.Stdout

// Connect opens a database handle for the given driver. Unique-constraint
// violations are translated to gorm.ErrDuplicatedKey.
func Connect(driver, dsn string) (*gorm.DB, error) {
	var dialector gorm.Dialector

	switch driver {
	case DriverPostgres:
		dialector = postgres.Open(dsn)
	case DriverSQLite:
		dialector = sqlite.Open(dsn)
	default:
		return nil, fmt.Errorf("unsupported database driver %q", driver)
	}

	// Missing rows are ordinary 404s and unknown usernames, not errors worth logging.
	dbLogger := logger.New(log.New(logOutput, "\r\n", log.LstdFlags), logger.Config{
		SlowThreshold:             200 * time.Millisecond,
		LogLevel:                  logger.Warn,
		IgnoreRecordNotFoundError: true,
	})

	conn, err := gorm.Open(dialector, &gorm.Config{
		TranslateError: true,
		Logger:         dbLogger,
	})

	if err != nil {
		return nil, err
	}

	if driver == DriverSQLite {
		sqlDB, err := conn.DB()
		if err != nil {
			return nil, err
		}

		// SQLite serialises writers anyway; a single connection also keeps
		// the foreign_keys pragma and shared in-memory databases alive.
		sqlDB.SetMaxOpenConns(1)

		if err := conn.Exec("PRAGMA foreign_keys = ON").Error; err != nil {
			return nil, fmt.Errorf("enable foreign keys: %w", err)
		}
	}

	return conn, nil
}

func MigrateDatabase(conn *gorm.DB) error {
	models := []interface{}{
		&models.User{},
		&models.Note{},
		&models.AuthToken{},
	}

	for _, model := range models {
		if err := conn.AutoMigrate(model); err != nil {
			return fmt.Errorf("migrate %T: %w", model, err)
		}
	}

	return nil
}
