// ABOUTME: MCP server subcommand
// ABOUTME: Starts the MCP server on stdio for desktop assistant integration
package cli

import (
	"github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/spf13/cobra"

	"github.com/harperreed/rolodex/handlers"
)

func (a *app) newMCPCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "mcp",
		Short: "Run the MCP server on stdio",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			backend, closeFn, err := a.backend(cmd.Context())
			if err != nil {
				return err
			}
			defer closeFn()

			a.logger.Info("starting mcp server")
			server := handlers.NewServer(backend, a.version)
			return server.Run(cmd.Context(), &mcp.StdioTransport{})
		},
	}
	a.addLocalFlag(cmd)
	return cmd
}
