// ABOUTME: Data models for contacts and categories
// ABOUTME: Defines Contact, Category, the create/update payload and sort order
package models

import "strings"

type Contact struct {
	ID           string  `json:"id" db:"id"`
	Name         string  `json:"name" db:"name"`
	Email        string  `json:"email" db:"email"`
	Phone        string  `json:"phone" db:"phone"`
	CategoryID   *string `json:"category_id" db:"category_id"`
	CategoryName *string `json:"category_name" db:"category_name"`
}

// Category returns the display name of the contact's category, or "" when it has none.
func (c Contact) Category() string {
	if c.CategoryName == nil {
		return ""
	}
	return *c.CategoryName
}

type Category struct {
	ID   string `json:"id" db:"id"`
	Name string `json:"name" db:"name"`
}

// ContactPayload is the body of create and update requests.
type ContactPayload struct {
	Name       string  `json:"name"`
	Email      string  `json:"email"`
	Phone      string  `json:"phone"`
	CategoryID *string `json:"category_id"`
}

// ContactFormData is what the contact form captures.
type ContactFormData struct {
	Name       string
	Email      string
	Phone      string
	CategoryID string
}

// Payload maps form data to the wire shape. An empty category means none.
func (f ContactFormData) Payload() ContactPayload {
	p := ContactPayload{
		Name:  strings.TrimSpace(f.Name),
		Email: strings.TrimSpace(f.Email),
		Phone: f.Phone,
	}
	if f.CategoryID != "" {
		id := f.CategoryID
		p.CategoryID = &id
	}
	return p
}

// FormData is the inverse of Payload, used to seed the edit form.
func (c Contact) FormData() ContactFormData {
	data := ContactFormData{
		Name:  c.Name,
		Email: c.Email,
		Phone: c.Phone,
	}
	if c.CategoryID != nil {
		data.CategoryID = *c.CategoryID
	}
	return data
}

// SortOrder is the server-side ordering of the contact list by name.
type SortOrder string

const (
	SortAsc  SortOrder = "asc"
	SortDesc SortOrder = "desc"
)

// Toggle flips the order.
func (o SortOrder) Toggle() SortOrder {
	if o == SortDesc {
		return SortAsc
	}
	return SortDesc
}

// ParseSortOrder accepts "asc" or "desc" in any case; anything else is ascending.
func ParseSortOrder(s string) SortOrder {
	if strings.EqualFold(strings.TrimSpace(s), string(SortDesc)) {
		return SortDesc
	}
	return SortAsc
}

// StringPtr is a helper for optional fields.
func StringPtr(s string) *string {
	return &s
}
