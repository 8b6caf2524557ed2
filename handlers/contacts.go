// ABOUTME: Contact MCP tool handlers
// ABOUTME: Implements list, get, create, update and delete tools for contacts and categories
package handlers

import (
	"context"
	"fmt"
	"strings"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/harperreed/rolodex/contactlist"
	"github.com/harperreed/rolodex/models"
	"github.com/harperreed/rolodex/service"
)

// Backend is what the tools operate on: the local store or the remote API.
type Backend interface {
	service.ContactsService
	service.CategoriesService
}

type ContactHandlers struct {
	backend Backend
}

func NewContactHandlers(backend Backend) *ContactHandlers {
	return &ContactHandlers{backend: backend}
}

type ListContactsInput struct {
	OrderBy string `json:"order_by,omitempty" jsonschema:"Sort by name: asc (default) or desc"`
	Search  string `json:"search,omitempty" jsonschema:"Only return contacts whose name contains this text"`
}

type ContactOutput struct {
	ID           string `json:"id"`
	Name         string `json:"name"`
	Email        string `json:"email,omitempty"`
	Phone        string `json:"phone,omitempty"`
	CategoryID   string `json:"category_id,omitempty"`
	CategoryName string `json:"category_name,omitempty"`
}

type ListContactsOutput struct {
	Contacts []ContactOutput `json:"contacts"`
	Count    int             `json:"count"`
}

func (h *ContactHandlers) ListContacts(ctx context.Context, _ *mcp.CallToolRequest, input ListContactsInput) (*mcp.CallToolResult, ListContactsOutput, error) {
	contacts, err := h.backend.ListContacts(ctx, models.ParseSortOrder(input.OrderBy))
	if err != nil {
		return nil, ListContactsOutput{}, fmt.Errorf("failed to list contacts: %w", err)
	}

	contacts = contactlist.Filter(contacts, input.Search)
	out := ListContactsOutput{Contacts: make([]ContactOutput, len(contacts)), Count: len(contacts)}
	for i, c := range contacts {
		out.Contacts[i] = contactToOutput(c)
	}
	return &mcp.CallToolResult{}, out, nil
}

type ContactIDInput struct {
	ID string `json:"id" jsonschema:"Contact ID (required)"`
}

func (h *ContactHandlers) GetContact(ctx context.Context, _ *mcp.CallToolRequest, input ContactIDInput) (*mcp.CallToolResult, ContactOutput, error) {
	if input.ID == "" {
		return nil, ContactOutput{}, fmt.Errorf("id is required")
	}
	contact, err := h.backend.GetContactByID(ctx, input.ID)
	if err != nil {
		return nil, ContactOutput{}, fmt.Errorf("failed to get contact: %w", err)
	}
	return &mcp.CallToolResult{}, contactToOutput(*contact), nil
}

type ContactInput struct {
	Name       string `json:"name" jsonschema:"Contact name (required)"`
	Email      string `json:"email,omitempty" jsonschema:"Contact e-mail address"`
	Phone      string `json:"phone,omitempty" jsonschema:"Contact phone number"`
	CategoryID string `json:"category_id,omitempty" jsonschema:"Category ID from list_categories"`
}

func (in ContactInput) payload() models.ContactPayload {
	return models.ContactFormData{
		Name:       in.Name,
		Email:      in.Email,
		Phone:      in.Phone,
		CategoryID: in.CategoryID,
	}.Payload()
}

func (h *ContactHandlers) CreateContact(ctx context.Context, _ *mcp.CallToolRequest, input ContactInput) (*mcp.CallToolResult, ContactOutput, error) {
	if strings.TrimSpace(input.Name) == "" {
		return nil, ContactOutput{}, fmt.Errorf("name is required")
	}
	contact, err := h.backend.CreateContact(ctx, input.payload())
	if err != nil {
		return nil, ContactOutput{}, fmt.Errorf("failed to create contact: %w", err)
	}
	return &mcp.CallToolResult{}, contactToOutput(*contact), nil
}

type UpdateContactInput struct {
	ID         string `json:"id" jsonschema:"Contact ID (required)"`
	Name       string `json:"name" jsonschema:"Contact name (required)"`
	Email      string `json:"email,omitempty" jsonschema:"Contact e-mail address, empty to clear"`
	Phone      string `json:"phone,omitempty" jsonschema:"Contact phone number, empty to clear"`
	CategoryID string `json:"category_id,omitempty" jsonschema:"Category ID, empty for no category"`
}

func (h *ContactHandlers) UpdateContact(ctx context.Context, _ *mcp.CallToolRequest, input UpdateContactInput) (*mcp.CallToolResult, ContactOutput, error) {
	if input.ID == "" {
		return nil, ContactOutput{}, fmt.Errorf("id is required")
	}
	if strings.TrimSpace(input.Name) == "" {
		return nil, ContactOutput{}, fmt.Errorf("name is required")
	}
	payload := ContactInput{Name: input.Name, Email: input.Email, Phone: input.Phone, CategoryID: input.CategoryID}.payload()
	contact, err := h.backend.UpdateContact(ctx, input.ID, payload)
	if err != nil {
		return nil, ContactOutput{}, fmt.Errorf("failed to update contact: %w", err)
	}
	return &mcp.CallToolResult{}, contactToOutput(*contact), nil
}

type DeleteContactOutput struct {
	ID      string `json:"id"`
	Deleted bool   `json:"deleted"`
}

func (h *ContactHandlers) DeleteContact(ctx context.Context, _ *mcp.CallToolRequest, input ContactIDInput) (*mcp.CallToolResult, DeleteContactOutput, error) {
	if input.ID == "" {
		return nil, DeleteContactOutput{}, fmt.Errorf("id is required")
	}
	if err := h.backend.DeleteContact(ctx, input.ID); err != nil {
		return nil, DeleteContactOutput{}, fmt.Errorf("failed to delete contact: %w", err)
	}
	return &mcp.CallToolResult{}, DeleteContactOutput{ID: input.ID, Deleted: true}, nil
}

type ListCategoriesInput struct{}

type ListCategoriesOutput struct {
	Categories []models.Category `json:"categories"`
	Count      int               `json:"count"`
}

func (h *ContactHandlers) ListCategories(ctx context.Context, _ *mcp.CallToolRequest, _ ListCategoriesInput) (*mcp.CallToolResult, ListCategoriesOutput, error) {
	categories, err := h.backend.ListCategories(ctx)
	if err != nil {
		return nil, ListCategoriesOutput{}, fmt.Errorf("failed to list categories: %w", err)
	}
	return &mcp.CallToolResult{}, ListCategoriesOutput{Categories: categories, Count: len(categories)}, nil
}

func contactToOutput(c models.Contact) ContactOutput {
	out := ContactOutput{
		ID:    c.ID,
		Name:  c.Name,
		Email: c.Email,
		Phone: c.Phone,
	}
	if c.CategoryID != nil {
		out.CategoryID = *c.CategoryID
	}
	out.CategoryName = c.Category()
	return out
}
