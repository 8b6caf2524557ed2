// ABOUTME: Visualization CLI commands
// ABOUTME: Handles the category graph and dashboard output
package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/harperreed/rolodex/models"
	"github.com/harperreed/rolodex/viz"
)

func (a *app) newVizCommand() *cobra.Command {
	var output string
	var dashboard bool
	cmd := &cobra.Command{
		Use:   "viz",
		Short: "Render contacts by category as GraphViz DOT, or a text dashboard",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			backend, closeFn, err := a.backend(cmd.Context())
			if err != nil {
				return err
			}
			defer closeFn()

			contacts, err := backend.ListContacts(cmd.Context(), models.SortAsc)
			if err != nil {
				return fmt.Errorf("failed to list contacts: %w", err)
			}

			var text string
			if dashboard {
				text = viz.RenderDashboard(viz.GenerateDashboardStats(contacts))
			} else if text, err = viz.GenerateCategoryGraph(cmd.Context(), contacts); err != nil {
				return err
			}

			if output != "" {
				return os.WriteFile(output, []byte(text), 0644)
			}
			_, _ = fmt.Fprintln(cmd.OutOrStdout(), text)
			return nil
		},
	}
	a.addLocalFlag(cmd)
	cmd.Flags().StringVarP(&output, "output", "o", "", "Output file (default: stdout)")
	cmd.Flags().BoolVar(&dashboard, "dashboard", false, "Print a text dashboard instead of DOT")
	return cmd
}
