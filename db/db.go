// ABOUTME: Database connection management and initialization
// ABOUTME: Opens SQLite (WAL) or Postgres from a database URL behind a goqu dialect
package db

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/doug-martin/goqu/v9"
	_ "github.com/doug-martin/goqu/v9/dialect/postgres" // dialect registration
	_ "github.com/doug-martin/goqu/v9/dialect/sqlite3"  // dialect registration
	_ "github.com/jackc/pgx/v5/stdlib"                  // pgx driver
	"github.com/jmoiron/sqlx"
	_ "github.com/mattn/go-sqlite3"
	"go.uber.org/zap"

	"github.com/harperreed/rolodex/service"
)

// Dialect names understood by goqu.
const (
	DialectSQLite   = "sqlite3"
	DialectPostgres = "postgres"
)

var (
	ErrNameRequired     = errors.New("name is required")
	ErrEmailInUse       = errors.New("this e-mail is already in use")
	ErrCategoryNotFound = errors.New("category not found")
	// ErrNotFound is shared with the API client so callers can check either.
	ErrNotFound = service.ErrNotFound
)

var (
	_ service.ContactsService   = (*Store)(nil)
	_ service.CategoriesService = (*Store)(nil)
)

// Store is the contacts database.
type Store struct {
	db      *sqlx.DB
	dialect string
	builder goqu.DialectWrapper
	logger  *zap.Logger
}

// Option configures a Store.
type Option func(*Store)

// WithLogger attaches a logger.
func WithLogger(logger *zap.Logger) Option {
	return func(s *Store) { s.logger = logger }
}

// ParseURL maps a database URL to a driver, dialect and DSN. postgres:// and
// postgresql:// URLs go to pgx; anything else is treated as a SQLite path,
// with an optional sqlite:// or file: prefix.
func ParseURL(databaseURL string) (driver, dialect, dsn string, err error) {
	switch {
	case databaseURL == "":
		return "", "", "", errors.New("database url is empty")
	case strings.HasPrefix(databaseURL, "postgres://"), strings.HasPrefix(databaseURL, "postgresql://"):
		return "pgx", DialectPostgres, databaseURL, nil
	}

	path := strings.TrimPrefix(databaseURL, "sqlite://")
	path = strings.TrimPrefix(path, "file:")
	if i := strings.IndexByte(path, '?'); i >= 0 {
		path = path[:i]
	}
	if path == "" {
		return "", "", "", fmt.Errorf("invalid sqlite url %q", databaseURL)
	}
	return "sqlite3", DialectSQLite, path, nil
}

// SQLitePath returns the file behind databaseURL, or "" for non-SQLite URLs.
func SQLitePath(databaseURL string) string {
	_, dialect, dsn, err := ParseURL(databaseURL)
	if err != nil || dialect != DialectSQLite {
		return ""
	}
	return dsn
}

// Open connects to databaseURL and applies the schema.
func Open(ctx context.Context, databaseURL string, opts ...Option) (*Store, error) {
	s, err := Connect(databaseURL, opts...)
	if err != nil {
		return nil, err
	}
	if err := s.InitSchema(ctx); err != nil {
		s.Close()
		return nil, err
	}
	return s, nil
}

// Connect opens the database without touching the schema.
func Connect(databaseURL string, opts ...Option) (*Store, error) {
	driver, dialect, dsn, err := ParseURL(databaseURL)
	if err != nil {
		return nil, err
	}

	if dialect == DialectSQLite {
		// Ensure directory exists
		if dir := filepath.Dir(dsn); dir != "" {
			if err := os.MkdirAll(dir, 0755); err != nil {
				return nil, fmt.Errorf("failed to create database directory: %w", err)
			}
		}
		dsn += "?_journal_mode=WAL&_foreign_keys=on"
	}

	conn, err := sqlx.Open(driver, dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	if dialect == DialectSQLite {
		// Configure connection pool for SQLite (avoid database locked errors)
		conn.SetMaxOpenConns(1)
	}

	s := &Store{
		db:      conn,
		dialect: dialect,
		builder: goqu.Dialect(dialect),
		logger:  zap.NewNop(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s, nil
}

// Dialect returns the goqu dialect name in use.
func (s *Store) Dialect() string { return s.dialect }

// DB exposes the underlying handle.
func (s *Store) DB() *sqlx.DB { return s.db }

func (s *Store) Close() error {
	return s.db.Close()
}

// Ping checks the connection.
func (s *Store) Ping(ctx context.Context) error {
	return s.db.PingContext(ctx)
}
