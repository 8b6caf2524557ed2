// ABOUTME: Contact database operations
// ABOUTME: Handles CRUD for contacts joined with their category name
package db

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/doug-martin/goqu/v9"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/harperreed/rolodex/models"
)

const tableContacts = "contacts"

func (s *Store) contactsQuery() *goqu.SelectDataset {
	return s.builder.From(goqu.T(tableContacts).As("c")).
		LeftJoin(
			goqu.T(tableCategories).As("cat"),
			goqu.On(goqu.I("cat.id").Eq(goqu.I("c.category_id"))),
		).
		Select(
			goqu.I("c.id").As("id"),
			goqu.I("c.name").As("name"),
			goqu.COALESCE(goqu.I("c.email"), "").As("email"),
			goqu.COALESCE(goqu.I("c.phone"), "").As("phone"),
			goqu.I("c.category_id").As("category_id"),
			goqu.I("cat.name").As("category_name"),
		)
}

// ListContacts returns every contact ordered case-insensitively by name.
func (s *Store) ListContacts(ctx context.Context, order models.SortOrder) ([]models.Contact, error) {
	byName := goqu.Func("LOWER", goqu.I("c.name"))
	ds := s.contactsQuery()
	if order == models.SortDesc {
		ds = ds.Order(byName.Desc(), goqu.I("c.id").Desc())
	} else {
		ds = ds.Order(byName.Asc(), goqu.I("c.id").Asc())
	}

	query, args, err := ds.Prepared(true).ToSQL()
	if err != nil {
		return nil, fmt.Errorf("failed to build contact query: %w", err)
	}

	contacts := []models.Contact{}
	if err := s.db.SelectContext(ctx, &contacts, query, args...); err != nil {
		return nil, fmt.Errorf("failed to list contacts: %w", err)
	}
	return contacts, nil
}

func (s *Store) GetContactByID(ctx context.Context, id string) (*models.Contact, error) {
	query, args, err := s.contactsQuery().
		Where(goqu.I("c.id").Eq(id)).
		Prepared(true).
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("failed to build contact query: %w", err)
	}

	var contact models.Contact
	err = s.db.GetContext(ctx, &contact, query, args...)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("contact %s: %w", id, ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get contact: %w", err)
	}
	return &contact, nil
}

// emailTaken reports whether another contact already uses email.
func (s *Store) emailTaken(ctx context.Context, email, exceptID string) (bool, error) {
	where := []goqu.Expression{
		goqu.Func("LOWER", goqu.C("email")).Eq(strings.ToLower(email)),
	}
	if exceptID != "" {
		where = append(where, goqu.C("id").Neq(exceptID))
	}

	query, args, err := s.builder.From(tableContacts).
		Select(goqu.COUNT("*")).
		Where(where...).
		Prepared(true).
		ToSQL()
	if err != nil {
		return false, fmt.Errorf("failed to build e-mail query: %w", err)
	}

	var count int
	if err := s.db.GetContext(ctx, &count, query, args...); err != nil {
		return false, fmt.Errorf("failed to check e-mail: %w", err)
	}
	return count > 0, nil
}

// contactRecord validates payload and returns the column values to store.
func (s *Store) contactRecord(ctx context.Context, payload models.ContactPayload, exceptID string) (goqu.Record, error) {
	name := strings.TrimSpace(payload.Name)
	if name == "" {
		return nil, ErrNameRequired
	}

	record := goqu.Record{"name": name, "email": nil, "phone": nil, "category_id": nil}

	if email := strings.TrimSpace(payload.Email); email != "" {
		taken, err := s.emailTaken(ctx, email, exceptID)
		if err != nil {
			return nil, err
		}
		if taken {
			return nil, ErrEmailInUse
		}
		record["email"] = email
	}

	if phone := strings.TrimSpace(payload.Phone); phone != "" {
		record["phone"] = phone
	}

	if payload.CategoryID != nil && *payload.CategoryID != "" {
		if _, err := s.GetCategory(ctx, *payload.CategoryID); err != nil {
			return nil, err
		}
		record["category_id"] = *payload.CategoryID
	}

	return record, nil
}

func (s *Store) CreateContact(ctx context.Context, payload models.ContactPayload) (*models.Contact, error) {
	record, err := s.contactRecord(ctx, payload, "")
	if err != nil {
		return nil, err
	}
	id := uuid.New().String()
	record["id"] = id

	query, args, err := s.builder.Insert(tableContacts).Rows(record).Prepared(true).ToSQL()
	if err != nil {
		return nil, fmt.Errorf("failed to build contact insert: %w", err)
	}
	if _, err := s.db.ExecContext(ctx, query, args...); err != nil {
		return nil, fmt.Errorf("failed to create contact: %w", err)
	}

	s.logger.Debug("contact created", zap.String("id", id))
	return s.GetContactByID(ctx, id)
}

func (s *Store) UpdateContact(ctx context.Context, id string, payload models.ContactPayload) (*models.Contact, error) {
	if _, err := s.GetContactByID(ctx, id); err != nil {
		return nil, err
	}

	record, err := s.contactRecord(ctx, payload, id)
	if err != nil {
		return nil, err
	}

	query, args, err := s.builder.Update(tableContacts).
		Set(record).
		Where(goqu.C("id").Eq(id)).
		Prepared(true).
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("failed to build contact update: %w", err)
	}
	if _, err := s.db.ExecContext(ctx, query, args...); err != nil {
		return nil, fmt.Errorf("failed to update contact: %w", err)
	}

	s.logger.Debug("contact updated", zap.String("id", id))
	return s.GetContactByID(ctx, id)
}

// DeleteContact removes a contact. Deleting an unknown id is not an error.
func (s *Store) DeleteContact(ctx context.Context, id string) error {
	query, args, err := s.builder.Delete(tableContacts).
		Where(goqu.C("id").Eq(id)).
		Prepared(true).
		ToSQL()
	if err != nil {
		return fmt.Errorf("failed to build contact delete: %w", err)
	}
	if _, err := s.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("failed to delete contact: %w", err)
	}
	s.logger.Debug("contact deleted", zap.String("id", id))
	return nil
}
