// ABOUTME: Category database operations
// ABOUTME: Lists, creates and seeds the categories contacts can belong to
package db

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/doug-martin/goqu/v9"
	"github.com/google/uuid"

	"github.com/harperreed/rolodex/models"
)

const tableCategories = "categories"

// DefaultCategories are seeded by the migrate command.
var DefaultCategories = []string{"Family", "Friends", "Work"}

func (s *Store) ListCategories(ctx context.Context) ([]models.Category, error) {
	query, args, err := s.builder.From(tableCategories).
		Select("id", "name").
		Order(goqu.I("name").Asc()).
		Prepared(true).
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("failed to build category query: %w", err)
	}

	categories := []models.Category{}
	if err := s.db.SelectContext(ctx, &categories, query, args...); err != nil {
		return nil, fmt.Errorf("failed to list categories: %w", err)
	}
	return categories, nil
}

func (s *Store) GetCategory(ctx context.Context, id string) (*models.Category, error) {
	query, args, err := s.builder.From(tableCategories).
		Select("id", "name").
		Where(goqu.C("id").Eq(id)).
		Prepared(true).
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("failed to build category query: %w", err)
	}

	var category models.Category
	err = s.db.GetContext(ctx, &category, query, args...)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("category %s: %w", id, ErrCategoryNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get category: %w", err)
	}
	return &category, nil
}

func (s *Store) CreateCategory(ctx context.Context, name string) (*models.Category, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, ErrNameRequired
	}

	category := models.Category{ID: uuid.New().String(), Name: name}
	query, args, err := s.builder.Insert(tableCategories).
		Rows(goqu.Record{"id": category.ID, "name": category.Name}).
		Prepared(true).
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("failed to build category insert: %w", err)
	}

	if _, err := s.db.ExecContext(ctx, query, args...); err != nil {
		return nil, fmt.Errorf("failed to create category: %w", err)
	}
	return &category, nil
}

// SeedCategories creates each named category that does not exist yet and
// returns how many were added.
func (s *Store) SeedCategories(ctx context.Context, names []string) (int, error) {
	existing, err := s.ListCategories(ctx)
	if err != nil {
		return 0, err
	}
	have := make(map[string]bool, len(existing))
	for _, c := range existing {
		have[strings.ToLower(c.Name)] = true
	}

	added := 0
	for _, name := range names {
		if have[strings.ToLower(name)] {
			continue
		}
		if _, err := s.CreateCategory(ctx, name); err != nil {
			return added, err
		}
		have[strings.ToLower(name)] = true
		added++
	}
	return added, nil
}
