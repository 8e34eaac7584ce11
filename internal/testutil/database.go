package testutil

import (
	"database/sql"
	"fmt"
	"os"
	"testing"

	_ "github.com/go-sql-driver/mysql"
)

// SetupTestDB opens the MySQL test database. Set AQUAFLOW_TEST_DSN to
// override the default root@localhost:3306/aquaflow_test. The calling test is
// skipped when the database is not reachable.
func SetupTestDB(t *testing.T) *sql.DB {
	dsn := os.Getenv("AQUAFLOW_TEST_DSN")
	if dsn == "" {
		dsn = "root:@tcp(localhost:3306)/aquaflow_test?parseTime=true"
	}
	db, err := sql.Open("mysql", dsn)
	if err != nil {
		t.Fatalf("failed to open test database: %v", err)
	}

	err = db.Ping()
	if err != nil {
		db.Close()
		t.Skipf("test database not available: %v", err)
	}

	return db
}

// CleanupTestDB empties the test tables and closes db.
func CleanupTestDB(t *testing.T, db *sql.DB) {
	if db == nil {
		return
	}

	tables := []string{"Collections"}
	for _, table := range tables {
		_, err := db.Exec(fmt.Sprintf("DELETE FROM %s", table))
		if err != nil {
			t.Logf("failed to clean table %s: %v", table, err)
		}
	}

	db.Close()
}

// SetupTestTables creates the tables the slot tests need.
func SetupTestTables(t *testing.T, db *sql.DB) {
	createCollectionsTable := `
	CREATE TABLE IF NOT EXISTS Collections (
		slotKey VARCHAR(128) NOT NULL PRIMARY KEY,
		payload JSON NOT NULL,
		revision BIGINT NOT NULL DEFAULT 1,
		updatedAt DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP ON UPDATE CURRENT_TIMESTAMP
	)`

	if _, err := db.Exec(createCollectionsTable); err != nil {
		t.Logf("failed to create table Collections: %v", err)
	}
}
