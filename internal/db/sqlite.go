package db

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	charmlog "github.com/charmbracelet/log"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"campusai/internal/model"
)

// Connection pragmas. They go into the DSN so every pooled connection gets
// them, not just the first one.
var pragmas = []string{
	"_busy_timeout=5000",
	"_journal_mode=WAL",
	"_foreign_keys=on",
}

// NewSQLite opens (or creates) the SQLite database file at path.
func NewSQLite(path string, log *charmlog.Logger) (*gorm.DB, error) {
	if path == "" {
		path = "users.db"
	}
	cfg := &gorm.Config{TranslateError: true}
	if log != nil {
		cfg.Logger = newQueryLogger(log)
	}
	db, err := gorm.Open(sqlite.Open(DSN(path)), cfg)
	if err != nil {
		return nil, fmt.Errorf("connect sqlite: %w", err)
	}
	return db, nil
}

// DSN appends the connection pragmas to path.
func DSN(path string) string {
	sep := "?"
	if strings.Contains(path, "?") {
		sep = "&"
	}
	return path + sep + strings.Join(pragmas, "&")
}

// Migrate creates or updates the schema.
func Migrate(db *gorm.DB) error {
	if err := db.AutoMigrate(&model.User{}); err != nil {
		return fmt.Errorf("auto-migrate: %w", err)
	}
	return nil
}

// queryLogger routes GORM logs into charmbracelet/log. Query parameters are
// never logged since they include password hashes, and duplicate-key errors
// are skipped because the repository reports them as conflicts.
type queryLogger struct {
	gormlogger.Interface
}

func newQueryLogger(log *charmlog.Logger) gormlogger.Interface {
	return &queryLogger{Interface: gormlogger.New(
		log.StandardLog(charmlog.StandardLogOptions{ForceLevel: charmlog.WarnLevel}),
		gormlogger.Config{
			SlowThreshold:             200 * time.Millisecond,
			LogLevel:                  gormlogger.Warn,
			IgnoreRecordNotFoundError: true,
			ParameterizedQueries:      true,
		},
	)}
}

func (l *queryLogger) LogMode(level gormlogger.LogLevel) gormlogger.Interface {
	return &queryLogger{Interface: l.Interface.LogMode(level)}
}

func (l *queryLogger) Trace(ctx context.Context, begin time.Time, fc func() (string, int64), err error) {
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return
	}
	l.Interface.Trace(ctx, begin, fc, err)
}

// ParamsFilter drops bound values from logged SQL.
func (l *queryLogger) ParamsFilter(ctx context.Context, sql string, params ...interface{}) (string, []interface{}) {
	return sql, nil
}
