// ABOUTME: Database schema definitions and migrations
// ABOUTME: Creates the categories and contacts tables for SQLite and Postgres
package db

import (
	"context"
	"fmt"
	"strings"
)

// schema works for both dialects: TEXT ids, nullable e-mail with a unique
// index, and categories detached from contacts on delete.
const schema = `
CREATE TABLE IF NOT EXISTS categories (
	id TEXT PRIMARY KEY,
	name TEXT NOT NULL
);

CREATE UNIQUE INDEX IF NOT EXISTS idx_categories_name ON categories(name);

CREATE TABLE IF NOT EXISTS contacts (
	id TEXT PRIMARY KEY,
	name TEXT NOT NULL,
	email TEXT,
	phone TEXT,
	category_id TEXT REFERENCES categories(id) ON DELETE SET NULL
);

CREATE UNIQUE INDEX IF NOT EXISTS idx_contacts_email ON contacts(email);
CREATE INDEX IF NOT EXISTS idx_contacts_category_id ON contacts(category_id);
`

// SchemaStatements returns the DDL split into single statements.
func SchemaStatements() []string {
	var out []string
	for _, stmt := range strings.Split(schema, ";") {
		if stmt = strings.TrimSpace(stmt); stmt != "" {
			out = append(out, stmt)
		}
	}
	return out
}

// InitSchema creates missing tables and indexes.
func (s *Store) InitSchema(ctx context.Context) error {
	for _, stmt := range SchemaStatements() {
		if _, err := s.db.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("failed to apply schema: %w", err)
		}
	}
	return nil
}

// Tables lists the user tables present in the database.
func (s *Store) Tables(ctx context.Context) ([]string, error) {
	var query string
	switch s.dialect {
	case DialectPostgres:
		query = "SELECT table_name FROM information_schema.tables WHERE table_schema = current_schema() ORDER BY table_name"
	default:
		query = "SELECT name FROM sqlite_master WHERE type = 'table' ORDER BY name"
	}

	var tables []string
	if err := s.db.SelectContext(ctx, &tables, query); err != nil {
		return nil, fmt.Errorf("failed to list tables: %w", err)
	}
	return tables, nil
}
