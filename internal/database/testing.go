package database

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/yourusername/mlb-edge/internal/config"
)

// TestConfigEnv names the config file used by integration tests
const TestConfigEnv = "MLB_EDGE_TEST_CONFIG"

// SetupTestDB connects to the integration database and applies the schema.
// The test is skipped when MLB_EDGE_TEST_CONFIG is unset or the database is unreachable.
func SetupTestDB(t *testing.T) *DB {
	t.Helper()

	path := os.Getenv(TestConfigEnv)
	if path == "" {
		t.Skipf("%s not set, skipping database integration test", TestConfigEnv)
	}

	cfg, err := config.Load(path)
	if err != nil {
		t.Fatalf("failed to load test config: %v", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	db, err := NewDB(ctx, &cfg.Database)
	if err != nil {
		t.Skipf("test database unavailable: %v", err)
	}

	if err := EnsureSchema(ctx, db.pool); err != nil {
		db.Close()
		t.Fatalf("failed to apply schema: %v", err)
	}

	t.Cleanup(db.Close)
	return db
}

// TruncateTables empties the given tables between tests
func TruncateTables(t *testing.T, db *DB, tables ...string) {
	t.Helper()
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	for _, table := range tables {
		if _, err := db.pool.Exec(ctx, "TRUNCATE TABLE "+table); err != nil {
			t.Fatalf("failed to truncate %s: %v", table, err)
		}
	}
}
