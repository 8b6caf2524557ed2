// ABOUTME: Graphviz rendering of contacts grouped by category
// ABOUTME: Produces DOT source with one node per category linked to its contacts
package viz

import (
	"bytes"
	"context"
	"fmt"
	"sort"

	"github.com/goccy/go-graphviz"
	"github.com/goccy/go-graphviz/cgraph"

	"github.com/harperreed/rolodex/models"
)

// Uncategorized labels contacts without a category.
const Uncategorized = "Uncategorized"

// GenerateCategoryGraph renders contacts as a category -> contact graph.
func GenerateCategoryGraph(ctx context.Context, contacts []models.Contact) (string, error) {
	gv, err := graphviz.New(ctx)
	if err != nil {
		return "", fmt.Errorf("failed to create graphviz instance: %w", err)
	}
	defer gv.Close()

	graph, err := gv.Graph()
	if err != nil {
		return "", fmt.Errorf("failed to create graph: %w", err)
	}
	defer graph.Close()

	graph.SetRankDir(cgraph.LRRank)

	groups := GroupByCategory(contacts)
	names := make([]string, 0, len(groups))
	for name := range groups {
		names = append(names, name)
	}
	sort.Strings(names)

	for _, category := range names {
		catNode, err := graph.CreateNodeByName("category:" + category)
		if err != nil {
			return "", fmt.Errorf("failed to create category node: %w", err)
		}
		catNode.SetLabel(category)
		catNode.SetShape(cgraph.BoxShape)

		for _, c := range groups[category] {
			// ids keep nodes distinct when names repeat
			node, err := graph.CreateNodeByName("contact:" + c.ID)
			if err != nil {
				return "", fmt.Errorf("failed to create contact node: %w", err)
			}
			node.SetLabel(c.Name)
			if _, err := graph.CreateEdgeByName("", catNode, node); err != nil {
				return "", fmt.Errorf("failed to create edge: %w", err)
			}
		}
	}

	// Generate DOT source
	var buf bytes.Buffer
	if err := gv.Render(ctx, graph, graphviz.XDOT, &buf); err != nil {
		return "", fmt.Errorf("failed to render graph: %w", err)
	}

	return buf.String(), nil
}

// GroupByCategory buckets contacts by category name.
func GroupByCategory(contacts []models.Contact) map[string][]models.Contact {
	groups := make(map[string][]models.Contact)
	for _, c := range contacts {
		name := c.Category()
		if name == "" {
			name = Uncategorized
		}
		groups[name] = append(groups[name], c)
	}
	return groups
}
