package db

import (
	"bytes"
	"context"
	"errors"
	"path/filepath"
	"testing"

	charmlog "github.com/charmbracelet/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"campusai/internal/model"
)

func openTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	gdb, err := NewSQLite(filepath.Join(t.TempDir(), "test.db"), nil)
	require.NoError(t, err)
	require.NoError(t, Migrate(gdb))
	sqlDB, err := gdb.DB()
	require.NoError(t, err)
	t.Cleanup(func() { _ = sqlDB.Close() })
	return gdb
}

func TestDSN(t *testing.T) {
	assert.Equal(t, "users.db?_busy_timeout=5000&_journal_mode=WAL&_foreign_keys=on", DSN("users.db"))
	assert.Equal(t, "file:x.db?mode=rwc&_busy_timeout=5000&_journal_mode=WAL&_foreign_keys=on", DSN("file:x.db?mode=rwc"))
}

func TestMigrate_CreatesUsersTable(t *testing.T) {
	gdb := openTestDB(t)

	assert.True(t, gdb.Migrator().HasTable(&model.User{}))
	assert.True(t, gdb.Migrator().HasColumn(&model.User{}, "roll_no"))
	assert.True(t, gdb.Migrator().HasColumn(&model.User{}, "password"))

	// Migrating twice is a no-op.
	assert.NoError(t, Migrate(gdb))
}

func TestMigrate_RollNoIsUnique(t *testing.T) {
	gdb := openTestDB(t)

	first := &model.User{Name: "A", Role: "student", RollNo: "23ABC12345", PasswordHash: "h"}
	require.NoError(t, gdb.Create(first).Error)
	assert.NotZero(t, first.ID)

	second := &model.User{Name: "B", Role: "student", RollNo: "23ABC12345", PasswordHash: "h"}
	err := gdb.Create(second).Error
	assert.ErrorIs(t, err, gorm.ErrDuplicatedKey)
}

func TestScope_UsesOneConnectionAndReleasesIt(t *testing.T) {
	gdb := openTestDB(t)
	sqlDB, err := gdb.DB()
	require.NoError(t, err)

	err = Scope(context.Background(), gdb, func(ctx context.Context) error {
		var n int
		require.NoError(t, FromContext(ctx, gdb).Raw("SELECT 1").Scan(&n).Error)
		assert.Equal(t, 1, n)
		assert.Equal(t, 1, sqlDB.Stats().InUse)
		return nil
	})
	require.NoError(t, err)
	assert.Equal(t, 0, sqlDB.Stats().InUse)
}

func TestScope_ReleasesOnError(t *testing.T) {
	gdb := openTestDB(t)
	sqlDB, err := gdb.DB()
	require.NoError(t, err)

	boom := errors.New("boom")
	err = Scope(context.Background(), gdb, func(context.Context) error { return boom })
	assert.ErrorIs(t, err, boom)
	assert.Equal(t, 0, sqlDB.Stats().InUse)
}

func TestScope_ReleasesOnPanic(t *testing.T) {
	gdb := openTestDB(t)
	sqlDB, err := gdb.DB()
	require.NoError(t, err)

	assert.Panics(t, func() {
		_ = Scope(context.Background(), gdb, func(context.Context) error { panic("boom") })
	})
	assert.Equal(t, 0, sqlDB.Stats().InUse)
}

func TestFromContext_FallsBackToPool(t *testing.T) {
	gdb := openTestDB(t)

	var n int
	require.NoError(t, FromContext(context.Background(), gdb).Raw("SELECT 2").Scan(&n).Error)
	assert.Equal(t, 2, n)
}

func TestNewSQLite_DoesNotLogDuplicatesOrParams(t *testing.T) {
	var buf bytes.Buffer
	gdb, err := NewSQLite(filepath.Join(t.TempDir(), "test.db"), charmlog.New(&buf))
	require.NoError(t, err)
	require.NoError(t, Migrate(gdb))
	sqlDB, err := gdb.DB()
	require.NoError(t, err)
	t.Cleanup(func() { _ = sqlDB.Close() })

	hash := "$2a$10$secrethashvalue"
	require.NoError(t, gdb.Create(&model.User{Name: "A", Role: "student", RollNo: "23ABC12345", PasswordHash: hash}).Error)
	err = gdb.Create(&model.User{Name: "B", Role: "student", RollNo: "23ABC12345", PasswordHash: hash}).Error
	require.ErrorIs(t, err, gorm.ErrDuplicatedKey)

	// A failing query that is not a duplicate is still logged, without values.
	err = gdb.Exec("INSERT INTO missing_table (password) VALUES (?)", hash).Error
	require.Error(t, err)

	out := buf.String()
	assert.NotContains(t, out, "duplicated key")
	assert.NotContains(t, out, hash)
	assert.Contains(t, out, "missing_table")
}
