// ABOUTME: Category CLI commands
// ABOUTME: Lists and creates contact categories
package cli

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"
)

func (a *app) newCategoriesCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "categories",
		Aliases: []string{"category"},
		Short:   "List and add categories",
	}
	a.addLocalFlag(cmd)

	cmd.AddCommand(&cobra.Command{
		Use:     "list",
		Aliases: []string{"ls"},
		Short:   "List categories",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			backend, closeFn, err := a.backend(cmd.Context())
			if err != nil {
				return err
			}
			defer closeFn()

			categories, err := backend.ListCategories(cmd.Context())
			if err != nil {
				return fmt.Errorf("failed to list categories: %w", err)
			}
			out := cmd.OutOrStdout()
			if len(categories) == 0 {
				_, _ = fmt.Fprintln(out, "No categories found")
				return nil
			}

			w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
			_, _ = fmt.Fprintln(w, "NAME\tID")
			_, _ = fmt.Fprintln(w, "----\t--")
			for _, c := range categories {
				_, _ = fmt.Fprintf(w, "%s\t%s\n", c.Name, c.ID)
			}
			return w.Flush()
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "add <name>",
		Short: "Add a category",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			backend, closeFn, err := a.backend(cmd.Context())
			if err != nil {
				return err
			}
			defer closeFn()

			category, err := backend.CreateCategory(cmd.Context(), args[0])
			if err != nil {
				return fmt.Errorf("failed to create category: %w", err)
			}
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "✓ Category created: %s (ID: %s)\n", category.Name, category.ID)
			return nil
		},
	})
	return cmd
}
