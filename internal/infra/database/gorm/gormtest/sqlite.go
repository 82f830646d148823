// Package gormtest opens throwaway in-memory databases for tests.
package gormtest

import (
	"fmt"
	"sync/atomic"
	"testing"

	"github.com/glebarez/sqlite"
	"gorm.io/gorm"

	gormdb "taskboard/internal/infra/database/gorm"
)

var counter atomic.Int64

// Open returns a migrated in-memory SQLite database with foreign keys
// enforced. Each call gets its own database.
func Open(t testing.TB) *gorm.DB {
	t.Helper()

	dsn := fmt.Sprintf("file:taskboard-%d?mode=memory&cache=shared&_pragma=foreign_keys(1)", counter.Add(1))
	db, err := gormdb.OpenDialector(sqlite.Open(dsn), gormdb.Config{MaxOpenConns: 1})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	if err := gormdb.Migrate(db); err != nil {
		t.Fatalf("migrate sqlite: %v", err)
	}

	t.Cleanup(func() { _ = gormdb.Close(db) })
	return db
}
