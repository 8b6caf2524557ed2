// ABOUTME: GraphViz visualization MCP handlers
// ABOUTME: Provides the category_graph tool for agents
package handlers

import (
	"context"
	"fmt"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/harperreed/rolodex/models"
	"github.com/harperreed/rolodex/viz"
)

type VizHandlers struct {
	backend Backend
}

func NewVizHandlers(backend Backend) *VizHandlers {
	return &VizHandlers{backend: backend}
}

type CategoryGraphInput struct{}

type CategoryGraphOutput struct {
	DOTSource     string `json:"dot_source"`
	CategoryCount int    `json:"category_count"`
	ContactCount  int    `json:"contact_count"`
}

func (h *VizHandlers) CategoryGraph(ctx context.Context, _ *mcp.CallToolRequest, _ CategoryGraphInput) (*mcp.CallToolResult, CategoryGraphOutput, error) {
	contacts, err := h.backend.ListContacts(ctx, models.SortAsc)
	if err != nil {
		return nil, CategoryGraphOutput{}, fmt.Errorf("failed to list contacts: %w", err)
	}

	dot, err := viz.GenerateCategoryGraph(ctx, contacts)
	if err != nil {
		return nil, CategoryGraphOutput{}, fmt.Errorf("failed to generate graph: %w", err)
	}

	return &mcp.CallToolResult{}, CategoryGraphOutput{
		DOTSource:     dot,
		CategoryCount: len(viz.GroupByCategory(contacts)),
		ContactCount:  len(contacts),
	}, nil
}
