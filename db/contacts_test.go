// ABOUTME: Tests for contact and category database operations
// ABOUTME: Runs against a temporary SQLite database
package db

import (
	"context"
	"errors"
	"testing"

	"github.com/harperreed/rolodex/models"
	"github.com/harperreed/rolodex/service"
)

func TestCreateAndGetContact(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	work, err := store.CreateCategory(ctx, "Work")
	if err != nil {
		t.Fatalf("CreateCategory failed: %v", err)
	}

	created, err := store.CreateContact(ctx, models.ContactPayload{
		Name:       "  Ana  ",
		Email:      "ana@example.com",
		Phone:      "(11) 98765-4321",
		CategoryID: &work.ID,
	})
	if err != nil {
		t.Fatalf("CreateContact failed: %v", err)
	}
	if created.ID == "" {
		t.Fatal("expected an id")
	}
	if created.Name != "Ana" {
		t.Errorf("expected trimmed name, got %q", created.Name)
	}
	if created.Category() != "Work" {
		t.Errorf("expected category name Work, got %q", created.Category())
	}

	got, err := store.GetContactByID(ctx, created.ID)
	if err != nil {
		t.Fatalf("GetContactByID failed: %v", err)
	}
	if got.Email != "ana@example.com" || got.Phone != "(11) 98765-4321" {
		t.Errorf("unexpected contact: %+v", got)
	}
}

func TestGetContactNotFound(t *testing.T) {
	store := newTestStore(t)

	_, err := store.GetContactByID(context.Background(), "missing")
	if !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
	if !errors.Is(err, service.ErrNotFound) {
		t.Fatalf("expected service.ErrNotFound, got %v", err)
	}
}

func TestCreateContactValidation(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	if _, err := store.CreateContact(ctx, models.ContactPayload{Name: "   "}); !errors.Is(err, ErrNameRequired) {
		t.Errorf("expected ErrNameRequired, got %v", err)
	}

	missing := "nope"
	if _, err := store.CreateContact(ctx, models.ContactPayload{Name: "Ana", CategoryID: &missing}); !errors.Is(err, ErrCategoryNotFound) {
		t.Errorf("expected ErrCategoryNotFound, got %v", err)
	}

	if _, err := store.CreateContact(ctx, models.ContactPayload{Name: "Ana", Email: "ana@example.com"}); err != nil {
		t.Fatalf("CreateContact failed: %v", err)
	}
	if _, err := store.CreateContact(ctx, models.ContactPayload{Name: "Other", Email: "ANA@example.com"}); !errors.Is(err, ErrEmailInUse) {
		t.Errorf("expected ErrEmailInUse, got %v", err)
	}
}

func TestContactsWithoutEmailDoNotCollide(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	for _, name := range []string{"Ana", "Beto"} {
		if _, err := store.CreateContact(ctx, models.ContactPayload{Name: name}); err != nil {
			t.Fatalf("CreateContact(%s) failed: %v", name, err)
		}
	}
}

func TestListContactsOrder(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	for _, name := range []string{"beto", "Ana", "Carla"} {
		if _, err := store.CreateContact(ctx, models.ContactPayload{Name: name}); err != nil {
			t.Fatalf("CreateContact failed: %v", err)
		}
	}

	asc, err := store.ListContacts(ctx, models.SortAsc)
	if err != nil {
		t.Fatalf("ListContacts failed: %v", err)
	}
	assertNames(t, asc, "Ana", "beto", "Carla")

	desc, err := store.ListContacts(ctx, models.SortDesc)
	if err != nil {
		t.Fatalf("ListContacts failed: %v", err)
	}
	assertNames(t, desc, "Carla", "beto", "Ana")
}

func TestListContactsEmpty(t *testing.T) {
	store := newTestStore(t)

	contacts, err := store.ListContacts(context.Background(), models.SortAsc)
	if err != nil {
		t.Fatalf("ListContacts failed: %v", err)
	}
	if contacts == nil || len(contacts) != 0 {
		t.Errorf("expected empty non-nil slice, got %#v", contacts)
	}
}

func TestUpdateContact(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	ana, err := store.CreateContact(ctx, models.ContactPayload{Name: "Ana", Email: "ana@example.com"})
	if err != nil {
		t.Fatalf("CreateContact failed: %v", err)
	}
	beto, err := store.CreateContact(ctx, models.ContactPayload{Name: "Beto", Email: "beto@example.com"})
	if err != nil {
		t.Fatalf("CreateContact failed: %v", err)
	}

	// keeping your own e-mail is fine
	updated, err := store.UpdateContact(ctx, ana.ID, models.ContactPayload{Name: "Ana Maria", Email: "ana@example.com"})
	if err != nil {
		t.Fatalf("UpdateContact failed: %v", err)
	}
	if updated.Name != "Ana Maria" {
		t.Errorf("expected updated name, got %q", updated.Name)
	}

	if _, err := store.UpdateContact(ctx, beto.ID, models.ContactPayload{Name: "Beto", Email: "ana@example.com"}); !errors.Is(err, ErrEmailInUse) {
		t.Errorf("expected ErrEmailInUse, got %v", err)
	}

	if _, err := store.UpdateContact(ctx, "missing", models.ContactPayload{Name: "X"}); !errors.Is(err, ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
}

func TestUpdateContactClearsCategory(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	work, _ := store.CreateCategory(ctx, "Work")
	c, err := store.CreateContact(ctx, models.ContactPayload{Name: "Ana", CategoryID: &work.ID})
	if err != nil {
		t.Fatalf("CreateContact failed: %v", err)
	}

	updated, err := store.UpdateContact(ctx, c.ID, models.ContactPayload{Name: "Ana"})
	if err != nil {
		t.Fatalf("UpdateContact failed: %v", err)
	}
	if updated.CategoryID != nil || updated.CategoryName != nil {
		t.Errorf("expected category cleared, got %+v", updated)
	}
}

func TestDeleteContactIsIdempotent(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	c, err := store.CreateContact(ctx, models.ContactPayload{Name: "Ana"})
	if err != nil {
		t.Fatalf("CreateContact failed: %v", err)
	}
	if err := store.DeleteContact(ctx, c.ID); err != nil {
		t.Fatalf("DeleteContact failed: %v", err)
	}
	if err := store.DeleteContact(ctx, c.ID); err != nil {
		t.Fatalf("second DeleteContact failed: %v", err)
	}
	if _, err := store.GetContactByID(ctx, c.ID); !errors.Is(err, ErrNotFound) {
		t.Errorf("expected contact to be gone, got %v", err)
	}
}

func TestCategories(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	if _, err := store.CreateCategory(ctx, " "); !errors.Is(err, ErrNameRequired) {
		t.Errorf("expected ErrNameRequired, got %v", err)
	}

	added, err := store.SeedCategories(ctx, DefaultCategories)
	if err != nil {
		t.Fatalf("SeedCategories failed: %v", err)
	}
	if added != len(DefaultCategories) {
		t.Errorf("expected %d added, got %d", len(DefaultCategories), added)
	}

	added, err = store.SeedCategories(ctx, []string{"work", "Clients"})
	if err != nil {
		t.Fatalf("SeedCategories failed: %v", err)
	}
	if added != 1 {
		t.Errorf("expected only Clients to be added, got %d", added)
	}

	categories, err := store.ListCategories(ctx)
	if err != nil {
		t.Fatalf("ListCategories failed: %v", err)
	}
	var names []string
	for _, c := range categories {
		names = append(names, c.Name)
	}
	want := []string{"Clients", "Family", "Friends", "Work"}
	if len(names) != len(want) {
		t.Fatalf("got %v, want %v", names, want)
	}
	for i := range want {
		if names[i] != want[i] {
			t.Errorf("got %v, want %v", names, want)
			break
		}
	}
}

func assertNames(t *testing.T, contacts []models.Contact, want ...string) {
	t.Helper()
	if len(contacts) != len(want) {
		t.Fatalf("got %d contacts, want %d", len(contacts), len(want))
	}
	for i, c := range contacts {
		if c.Name != want[i] {
			t.Errorf("position %d: got %q, want %q", i, c.Name, want[i])
		}
	}
}
