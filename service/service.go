// ABOUTME: Contract of the remote contacts API as seen by the front-end
// ABOUTME: Declares the service interfaces and the errors they return
package service

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/harperreed/rolodex/models"
)

// ContactsService performs the network calls for contacts.
type ContactsService interface {
	ListContacts(ctx context.Context, order models.SortOrder) ([]models.Contact, error)
	GetContactByID(ctx context.Context, id string) (*models.Contact, error)
	CreateContact(ctx context.Context, payload models.ContactPayload) (*models.Contact, error)
	UpdateContact(ctx context.Context, id string, payload models.ContactPayload) (*models.Contact, error)
	DeleteContact(ctx context.Context, id string) error
}

// CategoriesService performs the network calls for categories.
type CategoriesService interface {
	ListCategories(ctx context.Context) ([]models.Category, error)
	CreateCategory(ctx context.Context, name string) (*models.Category, error)
}

// ErrNotFound matches any 404 answer from the API.
var ErrNotFound = errors.New("not found")

// APIError is a non-2xx answer from the API.
type APIError struct {
	StatusCode int
	Message    string
}

func (e *APIError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("api: %d %s", e.StatusCode, http.StatusText(e.StatusCode))
	}
	return fmt.Sprintf("api: %d %s", e.StatusCode, e.Message)
}

func (e *APIError) Is(target error) bool {
	return target == ErrNotFound && e.StatusCode == http.StatusNotFound
}
