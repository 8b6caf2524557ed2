// ABOUTME: Terminal dashboard statistics and rendering
// ABOUTME: Summarises the address book by category and missing details
package viz

import (
	"fmt"
	"sort"
	"strings"

	"github.com/harperreed/rolodex/models"
)

type DashboardStats struct {
	TotalContacts int
	ByCategory    []CategoryStats

	// Needs attention
	MissingEmail int
	MissingPhone int
}

type CategoryStats struct {
	Category string
	Count    int
}

func GenerateDashboardStats(contacts []models.Contact) *DashboardStats {
	stats := &DashboardStats{TotalContacts: len(contacts)}

	for name, group := range GroupByCategory(contacts) {
		stats.ByCategory = append(stats.ByCategory, CategoryStats{Category: name, Count: len(group)})
	}
	sort.Slice(stats.ByCategory, func(i, j int) bool {
		a, b := stats.ByCategory[i], stats.ByCategory[j]
		if a.Count != b.Count {
			return a.Count > b.Count
		}
		return a.Category < b.Category
	})

	for _, c := range contacts {
		if c.Email == "" {
			stats.MissingEmail++
		}
		if c.Phone == "" {
			stats.MissingPhone++
		}
	}

	return stats
}

func RenderDashboard(stats *DashboardStats) string {
	var out strings.Builder

	// Header
	out.WriteString("━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━\n")
	out.WriteString("  ROLODEX DASHBOARD\n")
	out.WriteString("━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━\n\n")

	out.WriteString("CATEGORIES\n")
	renderCategories(&out, stats.ByCategory)
	out.WriteString("\n")

	out.WriteString("STATS\n")
	out.WriteString(fmt.Sprintf("  📇 %d contacts  🏷  %d categories\n\n", stats.TotalContacts, len(stats.ByCategory)))

	if stats.MissingEmail > 0 || stats.MissingPhone > 0 {
		out.WriteString("NEEDS ATTENTION\n")
		if stats.MissingEmail > 0 {
			out.WriteString(fmt.Sprintf("  ⚠️  %d contacts - no e-mail\n", stats.MissingEmail))
		}
		if stats.MissingPhone > 0 {
			out.WriteString(fmt.Sprintf("  ⚠️  %d contacts - no phone\n", stats.MissingPhone))
		}
	}

	return out.String()
}

func renderCategories(out *strings.Builder, categories []CategoryStats) {
	// Find max count for scaling
	maxCount := 1
	for _, c := range categories {
		if c.Count > maxCount {
			maxCount = c.Count
		}
	}

	for _, c := range categories {
		// Calculate bar length (0-10 blocks)
		barLength := (c.Count * 10) / maxCount
		bar := strings.Repeat("█", barLength) + strings.Repeat("░", 10-barLength)
		out.WriteString(fmt.Sprintf("  %-13s %s  %2d\n", c.Category, bar, c.Count))
	}
}
