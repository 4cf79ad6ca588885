package db

import (
	"fmt"
	"log/slog"
	"time"

	"gorm.io/driver/mysql"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/oggyb/swipe-discovery/internal/config"
	"github.com/oggyb/swipe-discovery/internal/logger"
)

// NewDB opens the configured database and migrates the schema.
//
// DB_DRIVER=mysql (default) uses the DSN; DB_DRIVER=sqlite opens SQLITE_PATH,
// which is how local development runs without a MySQL instance.
func NewDB(cfg *config.Config) (*gorm.DB, error) {
	var dialector gorm.Dialector
	switch cfg.DB.Driver {
	case "mysql", "":
		dialector = mysql.Open(cfg.DB.DSN)
	case "sqlite":
		dialector = sqlite.Open(cfg.DB.SQLitePath)
	default:
		return nil, fmt.Errorf("unsupported db driver %q", cfg.DB.Driver)
	}

	db, err := gorm.Open(dialector, GormConfig(logger.L(), logger.Level()))
	if err != nil {
		return nil, fmt.Errorf("failed to open db: %w", err)
	}

	if err := Migrate(db); err != nil {
		return nil, err
	}
	return db, nil
}

// Now is the clock rows are stamped with. MySQL DATETIME(3) keeps
// milliseconds, so every backend truncates to match and keyset cursors see
// the same value that was written.
func Now() time.Time { return time.Now().UTC().Truncate(time.Millisecond) }

// GormConfig is the configuration NewDB opens with. SQL is traced through
// log; a missing row is an expected lookup result, not an error line.
func GormConfig(log *slog.Logger, level slog.Level) *gorm.Config {
	return &gorm.Config{
		NowFunc: Now,
		Logger: gormlogger.NewSlogLogger(log, gormlogger.Config{
			SlowThreshold:             200 * time.Millisecond,
			LogLevel:                  gormLevel(level),
			IgnoreRecordNotFoundError: true,
		}),
	}
}

// Migrate ensures the schema is in sync with models.
func Migrate(db *gorm.DB) error {
	if err := db.AutoMigrate(Models()...); err != nil {
		return fmt.Errorf("failed to migrate schema: %w", err)
	}
	return nil
}

// gormLevel logs SQL only when the app runs at debug.
func gormLevel(l slog.Level) gormlogger.LogLevel {
	switch {
	case l <= slog.LevelDebug:
		return gormlogger.Info
	case l <= slog.LevelWarn:
		return gormlogger.Warn
	default:
		return gormlogger.Error
	}
}
