// ABOUTME: MCP server assembly
// ABOUTME: Registers the contact tools, resources and prompts on one server
package handlers

import (
	"github.com/modelcontextprotocol/go-sdk/mcp"
)

// NewServer builds an MCP server exposing backend.
func NewServer(backend Backend, version string) *mcp.Server {
	contactHandlers := NewContactHandlers(backend)
	vizHandlers := NewVizHandlers(backend)
	resourceHandlers := NewResourceHandlers(backend)
	promptHandlers := NewPromptHandlers(backend)

	server := mcp.NewServer(&mcp.Implementation{
		Name:    "rolodex",
		Version: version,
	}, nil)

	// Register tools
	mcp.AddTool(server, &mcp.Tool{
		Name:        "list_contacts",
		Description: "List contacts sorted by name, optionally filtered by a name search",
	}, contactHandlers.ListContacts)

	mcp.AddTool(server, &mcp.Tool{
		Name:        "get_contact",
		Description: "Get a single contact by ID",
	}, contactHandlers.GetContact)

	mcp.AddTool(server, &mcp.Tool{
		Name:        "create_contact",
		Description: "Create a contact with name, e-mail, phone and category",
	}, contactHandlers.CreateContact)

	mcp.AddTool(server, &mcp.Tool{
		Name:        "update_contact",
		Description: "Replace a contact's name, e-mail, phone and category",
	}, contactHandlers.UpdateContact)

	mcp.AddTool(server, &mcp.Tool{
		Name:        "delete_contact",
		Description: "Delete a contact by ID",
	}, contactHandlers.DeleteContact)

	mcp.AddTool(server, &mcp.Tool{
		Name:        "list_categories",
		Description: "List the categories contacts can belong to",
	}, contactHandlers.ListCategories)

	mcp.AddTool(server, &mcp.Tool{
		Name:        "category_graph",
		Description: "Render contacts grouped by category as GraphViz DOT",
	}, vizHandlers.CategoryGraph)

	// Resources
	server.AddResource(&mcp.Resource{
		URI:      URIContacts,
		Name:     "contacts",
		MIMEType: "application/json",
	}, resourceHandlers.ReadResource)

	server.AddResource(&mcp.Resource{
		URI:      URICategories,
		Name:     "categories",
		MIMEType: "application/json",
	}, resourceHandlers.ReadResource)

	server.AddResourceTemplate(&mcp.ResourceTemplate{
		URITemplate: URIContactTemplate,
		Name:        "contact",
		MIMEType:    "application/json",
	}, resourceHandlers.ReadResource)

	// Prompts
	server.AddPrompt(&mcp.Prompt{
		Name:        "contact-summary",
		Description: "Summarise a contact and point out missing details",
		Arguments: []*mcp.PromptArgument{
			{Name: "contact_id", Description: "Contact ID", Required: true},
		},
	}, promptHandlers.GetPrompt)

	server.AddPrompt(&mcp.Prompt{
		Name:        "tidy-contacts",
		Description: "Review the whole address book for clean-ups",
	}, promptHandlers.GetPrompt)

	return server
}
