package db

import (
	"context"
	"os"
	"path/filepath"
	"testing"
)

func TestOpenDatabase(t *testing.T) {
	tmpDir := t.TempDir()
	dbPath := filepath.Join(tmpDir, "nested", "test.db")

	store, err := Open(context.Background(), dbPath)
	if err != nil {
		t.Fatalf("Open failed: %v", err)
	}
	defer store.Close()

	// Verify database file exists
	if _, err := os.Stat(dbPath); os.IsNotExist(err) {
		t.Error("Database file was not created")
	}

	tables, err := store.Tables(context.Background())
	if err != nil {
		t.Fatalf("Failed to list tables: %v", err)
	}
	want := map[string]bool{"categories": false, "contacts": false}
	for _, name := range tables {
		if _, ok := want[name]; ok {
			want[name] = true
		}
	}
	for name, found := range want {
		if !found {
			t.Errorf("Table %s not found", name)
		}
	}

	// Verify WAL mode
	var mode string
	if err := store.DB().QueryRow("PRAGMA journal_mode").Scan(&mode); err != nil {
		t.Fatalf("Failed to query journal mode: %v", err)
	}
	if mode != "wal" {
		t.Errorf("Expected WAL mode, got %s", mode)
	}
}

func TestOpenDatabaseInvalidPath(t *testing.T) {
	tmpDir := t.TempDir()
	blocker := filepath.Join(tmpDir, "file")
	if err := os.WriteFile(blocker, []byte("x"), 0600); err != nil {
		t.Fatal(err)
	}

	// a regular file where a directory is needed
	_, err := Open(context.Background(), filepath.Join(blocker, "sub", "test.db"))
	if err == nil {
		t.Errorf("Expected error for invalid path, but Open succeeded")
	}
}

func TestInitSchemaIsIdempotent(t *testing.T) {
	store := newTestStore(t)
	if err := store.InitSchema(context.Background()); err != nil {
		t.Fatalf("second InitSchema failed: %v", err)
	}
}

func TestParseURL(t *testing.T) {
	tests := []struct {
		url     string
		driver  string
		dialect string
		dsn     string
		wantErr bool
	}{
		{url: "postgres://u:p@localhost/rolodex", driver: "pgx", dialect: DialectPostgres, dsn: "postgres://u:p@localhost/rolodex"},
		{url: "postgresql://localhost/rolodex", driver: "pgx", dialect: DialectPostgres, dsn: "postgresql://localhost/rolodex"},
		{url: "sqlite:///tmp/r.db", driver: "sqlite3", dialect: DialectSQLite, dsn: "/tmp/r.db"},
		{url: "file:/tmp/r.db?cache=shared", driver: "sqlite3", dialect: DialectSQLite, dsn: "/tmp/r.db"},
		{url: "/var/lib/r.db", driver: "sqlite3", dialect: DialectSQLite, dsn: "/var/lib/r.db"},
		{url: "", wantErr: true},
		{url: "sqlite://", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.url, func(t *testing.T) {
			driver, dialect, dsn, err := ParseURL(tt.url)
			if tt.wantErr {
				if err == nil {
					t.Fatal("expected error")
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if driver != tt.driver || dialect != tt.dialect || dsn != tt.dsn {
				t.Errorf("got (%s, %s, %s), want (%s, %s, %s)", driver, dialect, dsn, tt.driver, tt.dialect, tt.dsn)
			}
		})
	}
}

func TestSQLitePath(t *testing.T) {
	if got := SQLitePath("sqlite:///data/r.db"); got != "/data/r.db" {
		t.Errorf("SQLitePath = %q", got)
	}
	if got := SQLitePath("postgres://localhost/r"); got != "" {
		t.Errorf("SQLitePath for postgres = %q", got)
	}
}

func newTestStore(t *testing.T) *Store {
	t.Helper()
	store, err := Open(context.Background(), filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("Open failed: %v", err)
	}
	t.Cleanup(func() { _ = store.Close() })
	return store
}
