package shared

import (
	"testing"
)

func TestMigrations(t *testing.T) {
	t.Run("RunMigrations Creates Schema", func(t *testing.T) {
		db, err := NewDatabase(":memory:")
		if err != nil {
			t.Fatalf("failed to open database: %v", err)
		}
		defer db.Close()
		ConfigureDatabase(db, 1, 1)

		if err := RunMigrations(db); err != nil {
			t.Fatalf("RunMigrations failed: %v", err)
		}

		if _, err := db.Exec("INSERT INTO fetch_cache (url, body) VALUES (?, ?)", "https://example.com", "body"); err != nil {
			t.Errorf("expected fetch_cache table to exist: %v", err)
		}
	})

	t.Run("RunMigrations Is Idempotent", func(t *testing.T) {
		db, err := NewDatabase(":memory:")
		if err != nil {
			t.Fatalf("failed to open database: %v", err)
		}
		defer db.Close()
		ConfigureDatabase(db, 1, 1)

		if err := RunMigrations(db); err != nil {
			t.Fatalf("first run failed: %v", err)
		}
		if err := RunMigrations(db); err != nil {
			t.Fatalf("second run failed: %v", err)
		}

		var count int
		if err := db.QueryRow("SELECT COUNT(*) FROM schema_migrations").Scan(&count); err != nil {
			t.Fatalf("failed to count migrations: %v", err)
		}
		if count != 1 {
			t.Errorf("expected 1 recorded migration, got %d", count)
		}
	})

	t.Run("RollbackMigration Drops Schema", func(t *testing.T) {
		db, err := NewDatabase(":memory:")
		if err != nil {
			t.Fatalf("failed to open database: %v", err)
		}
		defer db.Close()
		ConfigureDatabase(db, 1, 1)

		if err := RunMigrations(db); err != nil {
			t.Fatalf("RunMigrations failed: %v", err)
		}
		if err := RollbackMigration(db); err != nil {
			t.Fatalf("RollbackMigration failed: %v", err)
		}

		if _, err := db.Exec("INSERT INTO fetch_cache (url, body) VALUES ('a', 'b')"); err == nil {
			t.Error("expected fetch_cache table to be gone")
		}
	})

	t.Run("Rollback Without Migrations", func(t *testing.T) {
		db, err := NewDatabase(":memory:")
		if err != nil {
			t.Fatalf("failed to open database: %v", err)
		}
		defer db.Close()
		ConfigureDatabase(db, 1, 1)

		if err := createMigrationsTable(db); err != nil {
			t.Fatalf("failed to create migrations table: %v", err)
		}
		if err := RollbackMigration(db); err == nil {
			t.Error("expected an error with nothing to rollback")
		}
	})
}
