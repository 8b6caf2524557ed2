// ABOUTME: Contact CLI commands
// ABOUTME: Human-friendly commands for listing and managing contacts
package cli

import (
	"context"
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/harperreed/rolodex/contactform"
	"github.com/harperreed/rolodex/contactlist"
	"github.com/harperreed/rolodex/handlers"
	"github.com/harperreed/rolodex/models"
)

func (a *app) newContactsCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "contacts",
		Aliases: []string{"contact", "c"},
		Short:   "List and manage contacts",
	}
	a.addLocalFlag(cmd)
	cmd.AddCommand(
		a.newContactsListCommand(),
		a.newContactsAddCommand(),
		a.newContactsUpdateCommand(),
		a.newContactsDeleteCommand(),
	)
	return cmd
}

func (a *app) newContactsListCommand() *cobra.Command {
	var order, search string
	cmd := &cobra.Command{
		Use:     "list",
		Aliases: []string{"ls"},
		Short:   "List contacts",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			backend, closeFn, err := a.backend(cmd.Context())
			if err != nil {
				return err
			}
			defer closeFn()

			contacts, err := backend.ListContacts(cmd.Context(), models.ParseSortOrder(order))
			if err != nil {
				return fmt.Errorf("failed to list contacts: %w", err)
			}
			contacts = contactlist.Filter(contacts, search)

			out := cmd.OutOrStdout()
			if len(contacts) == 0 {
				_, _ = fmt.Fprintln(out, "No contacts found")
				return nil
			}
			printContacts(out, contacts)
			return nil
		},
	}
	cmd.Flags().StringVar(&order, "order", "asc", "Sort by name: asc or desc")
	cmd.Flags().StringVarP(&search, "search", "s", "", "Only show names containing this text")
	return cmd
}

func printContacts(out io.Writer, contacts []models.Contact) {
	// Pretty print results
	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	_, _ = fmt.Fprintln(w, "NAME\tEMAIL\tPHONE\tCATEGORY\tID")
	_, _ = fmt.Fprintln(w, "----\t-----\t-----\t--------\t--")

	for _, c := range contacts {
		_, _ = fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\n",
			c.Name, orDash(c.Email), orDash(c.Phone), orDash(c.Category()), c.ID)
	}
	_ = w.Flush()

	noun := "contacts"
	if len(contacts) == 1 {
		noun = "contact"
	}
	_, _ = fmt.Fprintf(out, "\nTotal: %d %s\n", len(contacts), noun)
}

func orDash(s string) string {
	if s == "" {
		return "-"
	}
	return s
}

type contactFlags struct {
	name, email, phone, category string
}

func (f *contactFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVar(&f.name, "name", "", "Contact name")
	cmd.Flags().StringVar(&f.email, "email", "", "E-mail address")
	cmd.Flags().StringVar(&f.phone, "phone", "", "Phone number")
	cmd.Flags().StringVar(&f.category, "category", "", "Category name or ID; empty clears it on update")
}

// resolveCategory accepts a category ID or a case-insensitive name.
func resolveCategory(ctx context.Context, backend handlers.Backend, ref string) (string, error) {
	if ref == "" {
		return "", nil
	}
	categories, err := backend.ListCategories(ctx)
	if err != nil {
		return "", fmt.Errorf("failed to list categories: %w", err)
	}
	for _, c := range categories {
		if c.ID == ref || strings.EqualFold(c.Name, ref) {
			return c.ID, nil
		}
	}
	return "", fmt.Errorf("unknown category %q", ref)
}

// validateFormData applies the same rules as the contact form.
func validateFormData(data models.ContactFormData) error {
	if strings.TrimSpace(data.Name) == "" {
		return fmt.Errorf("--name is required")
	}
	if email := strings.TrimSpace(data.Email); email != "" && !contactform.IsEmailValid(email) {
		return fmt.Errorf("invalid e-mail %q", email)
	}
	return nil
}

func printContact(out io.Writer, verb string, c *models.Contact) {
	_, _ = fmt.Fprintf(out, "✓ Contact %s: %s (ID: %s)\n", verb, c.Name, c.ID)
	if c.Email != "" {
		_, _ = fmt.Fprintf(out, "  Email: %s\n", c.Email)
	}
	if c.Phone != "" {
		_, _ = fmt.Fprintf(out, "  Phone: %s\n", c.Phone)
	}
	if cat := c.Category(); cat != "" {
		_, _ = fmt.Fprintf(out, "  Category: %s\n", cat)
	}
}

func (a *app) newContactsAddCommand() *cobra.Command {
	var f contactFlags
	cmd := &cobra.Command{
		Use:   "add",
		Short: "Add a contact",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			backend, closeFn, err := a.backend(cmd.Context())
			if err != nil {
				return err
			}
			defer closeFn()

			categoryID, err := resolveCategory(cmd.Context(), backend, f.category)
			if err != nil {
				return err
			}
			data := models.ContactFormData{
				Name:       f.name,
				Email:      f.email,
				Phone:      contactform.FormatPhone(f.phone),
				CategoryID: categoryID,
			}
			if err := validateFormData(data); err != nil {
				return err
			}

			contact, err := backend.CreateContact(cmd.Context(), data.Payload())
			if err != nil {
				return fmt.Errorf("failed to create contact: %w", err)
			}
			printContact(cmd.OutOrStdout(), "created", contact)
			return nil
		},
	}
	f.register(cmd)
	return cmd
}

func (a *app) newContactsUpdateCommand() *cobra.Command {
	var f contactFlags
	cmd := &cobra.Command{
		Use:   "update <id>",
		Short: "Update a contact; only the given flags change",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			backend, closeFn, err := a.backend(cmd.Context())
			if err != nil {
				return err
			}
			defer closeFn()

			existing, err := backend.GetContactByID(cmd.Context(), args[0])
			if err != nil {
				return fmt.Errorf("contact not found: %w", err)
			}

			data := existing.FormData()
			flags := cmd.Flags()
			if flags.Changed("name") {
				data.Name = f.name
			}
			if flags.Changed("email") {
				data.Email = f.email
			}
			if flags.Changed("phone") {
				data.Phone = contactform.FormatPhone(f.phone)
			}
			if flags.Changed("category") {
				if data.CategoryID, err = resolveCategory(cmd.Context(), backend, f.category); err != nil {
					return err
				}
			}
			if err := validateFormData(data); err != nil {
				return err
			}

			contact, err := backend.UpdateContact(cmd.Context(), existing.ID, data.Payload())
			if err != nil {
				return fmt.Errorf("failed to update contact: %w", err)
			}
			printContact(cmd.OutOrStdout(), "updated", contact)
			return nil
		},
	}
	f.register(cmd)
	return cmd
}

func (a *app) newContactsDeleteCommand() *cobra.Command {
	return &cobra.Command{
		Use:     "delete <id>",
		Aliases: []string{"rm"},
		Short:   "Delete a contact",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			backend, closeFn, err := a.backend(cmd.Context())
			if err != nil {
				return err
			}
			defer closeFn()

			if err := backend.DeleteContact(cmd.Context(), args[0]); err != nil {
				return fmt.Errorf("failed to delete contact: %w", err)
			}
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "✓ Contact deleted: %s\n", args[0])
			return nil
		},
	}
}
