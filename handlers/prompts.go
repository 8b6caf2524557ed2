// ABOUTME: MCP prompt handlers for reusable address book workflows
// ABOUTME: Provides the contact-summary and tidy-contacts prompt templates
package handlers

import (
	"context"
	"fmt"
	"strings"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/harperreed/rolodex/models"
)

type PromptHandlers struct {
	backend Backend
}

func NewPromptHandlers(backend Backend) *PromptHandlers {
	return &PromptHandlers{backend: backend}
}

// GetPrompt generates the prompt message based on the template
func (h *PromptHandlers) GetPrompt(ctx context.Context, request *mcp.GetPromptRequest) (*mcp.GetPromptResult, error) {
	switch request.Params.Name {
	case "contact-summary":
		return h.getContactSummaryPrompt(ctx, request.Params.Arguments)
	case "tidy-contacts":
		return h.getTidyContactsPrompt(ctx)
	default:
		return nil, fmt.Errorf("unknown prompt: %s", request.Params.Name)
	}
}

func (h *PromptHandlers) getContactSummaryPrompt(ctx context.Context, args map[string]string) (*mcp.GetPromptResult, error) {
	id, ok := args["contact_id"]
	if !ok || id == "" {
		return nil, fmt.Errorf("contact_id is required")
	}

	contact, err := h.backend.GetContactByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch contact: %w", err)
	}

	var promptText strings.Builder
	promptText.WriteString("Please provide a short summary of this contact:\n\n")
	promptText.WriteString(fmt.Sprintf("Name: %s\n", contact.Name))
	if contact.Email != "" {
		promptText.WriteString(fmt.Sprintf("Email: %s\n", contact.Email))
	}
	if contact.Phone != "" {
		promptText.WriteString(fmt.Sprintf("Phone: %s\n", contact.Phone))
	}
	if cat := contact.Category(); cat != "" {
		promptText.WriteString(fmt.Sprintf("Category: %s\n", cat))
	}
	promptText.WriteString("\nPoint out any missing details worth collecting.")

	return userPrompt(fmt.Sprintf("Summary for contact: %s", contact.Name), promptText.String()), nil
}

func (h *PromptHandlers) getTidyContactsPrompt(ctx context.Context) (*mcp.GetPromptResult, error) {
	contacts, err := h.backend.ListContacts(ctx, models.SortAsc)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch contacts: %w", err)
	}

	var promptText strings.Builder
	promptText.WriteString("Review this address book and suggest clean-ups ")
	promptText.WriteString("(likely duplicates, missing e-mails or phones, uncategorised contacts):\n\n")
	for _, c := range contacts {
		promptText.WriteString(fmt.Sprintf("- %s", c.Name))
		if c.Email != "" {
			promptText.WriteString(fmt.Sprintf(" <%s>", c.Email))
		}
		if c.Phone != "" {
			promptText.WriteString(fmt.Sprintf(" %s", c.Phone))
		}
		if cat := c.Category(); cat != "" {
			promptText.WriteString(fmt.Sprintf(" [%s]", cat))
		}
		promptText.WriteString("\n")
	}

	return userPrompt(fmt.Sprintf("Tidy-up review of %d contacts", len(contacts)), promptText.String()), nil
}

func userPrompt(description, text string) *mcp.GetPromptResult {
	return &mcp.GetPromptResult{
		Description: description,
		Messages: []*mcp.PromptMessage{
			{
				Role:    "user",
				Content: &mcp.TextContent{Text: text},
			},
		},
	}
}
