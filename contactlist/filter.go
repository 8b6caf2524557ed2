// ABOUTME: Local search over a loaded contact collection
// ABOUTME: Case-insensitive substring match on name, order preserving
package contactlist

import (
	"strings"

	"github.com/harperreed/rolodex/models"
)

// Filter returns the contacts whose name contains term, ignoring case.
// The result is a new slice in the original order; an empty term keeps everything.
func Filter(contacts []models.Contact, term string) []models.Contact {
	out := make([]models.Contact, 0, len(contacts))
	needle := strings.ToLower(term)
	for _, c := range contacts {
		if needle == "" || strings.Contains(strings.ToLower(c.Name), needle) {
			out = append(out, c)
		}
	}
	return out
}
