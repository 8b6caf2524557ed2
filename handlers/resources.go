// ABOUTME: MCP resource handlers for exposing address book data
// ABOUTME: Provides read-only access to contacts and categories via rolodex:// URIs
package handlers

import (
	"context"
	"fmt"
	"strings"

	jsoniter "github.com/json-iterator/go"
	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/harperreed/rolodex/models"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

const uriScheme = "rolodex://"

// Resource URIs.
const (
	URIContacts        = uriScheme + "contacts"
	URIContactTemplate = uriScheme + "contacts/{id}"
	URICategories      = uriScheme + "categories"
)

type ResourceHandlers struct {
	backend Backend
}

func NewResourceHandlers(backend Backend) *ResourceHandlers {
	return &ResourceHandlers{backend: backend}
}

// ReadResource handles resource read requests
func (h *ResourceHandlers) ReadResource(ctx context.Context, request *mcp.ReadResourceRequest) (*mcp.ReadResourceResult, error) {
	uri := request.Params.URI
	if !strings.HasPrefix(uri, uriScheme) {
		return nil, fmt.Errorf("invalid URI scheme: expected %s", uriScheme)
	}

	parts := strings.Split(strings.TrimPrefix(uri, uriScheme), "/")
	switch parts[0] {
	case "contacts":
		if len(parts) == 1 || parts[1] == "" {
			contacts, err := h.backend.ListContacts(ctx, models.SortAsc)
			if err != nil {
				return nil, fmt.Errorf("failed to fetch contacts: %w", err)
			}
			return jsonResource(uri, contacts)
		}
		contact, err := h.backend.GetContactByID(ctx, parts[1])
		if err != nil {
			return nil, mcp.ResourceNotFoundError(uri)
		}
		return jsonResource(uri, contact)

	case "categories":
		categories, err := h.backend.ListCategories(ctx)
		if err != nil {
			return nil, fmt.Errorf("failed to fetch categories: %w", err)
		}
		return jsonResource(uri, categories)

	default:
		return nil, fmt.Errorf("unknown resource: %s", parts[0])
	}
}

func jsonResource(uri string, v interface{}) (*mcp.ReadResourceResult, error) {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("failed to marshal resource: %w", err)
	}

	return &mcp.ReadResourceResult{Contents: []*mcp.ResourceContents{
		{
			URI:      uri,
			MIMEType: "application/json",
			Text:     string(data),
		},
	}}, nil
}
