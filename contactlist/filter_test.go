// ABOUTME: Tests for local contact filtering
// ABOUTME: Checks subset, ordering, identity and case-insensitivity properties
package contactlist

import (
	"fmt"
	"math/rand"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"

	"github.com/harperreed/rolodex/models"
)

func TestFilterScenario(t *testing.T) {
	contacts := []models.Contact{{ID: "1", Name: "Ana"}, {ID: "2", Name: "Beto"}}
	got := Filter(contacts, "an")
	want := []models.Contact{{ID: "1", Name: "Ana"}}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("Filter mismatch (-want +got):\n%s", diff)
	}
}

func TestFilterEmptyTermIsIdentity(t *testing.T) {
	contacts := []models.Contact{{ID: "1", Name: "Ana"}, {ID: "2", Name: "Beto"}, {ID: "3", Name: ""}}
	assert.Equal(t, contacts, Filter(contacts, ""))
}

func TestFilterDoesNotAliasInput(t *testing.T) {
	contacts := []models.Contact{{ID: "1", Name: "Ana"}}
	out := Filter(contacts, "")
	out[0].Name = "Changed"
	assert.Equal(t, "Ana", contacts[0].Name)
}

func TestFilterCaseInsensitive(t *testing.T) {
	contacts := []models.Contact{{ID: "1", Name: "ÉLIO Ramos"}, {ID: "2", Name: "maria"}}
	assert.Len(t, Filter(contacts, "élio"), 1)
	assert.Len(t, Filter(contacts, "MARIA"), 1)
	assert.Len(t, Filter(contacts, "ramos"), 1)
}

func TestFilterProperties(t *testing.T) {
	rng := rand.New(rand.NewSource(42))
	alphabet := []rune("abcABC ")

	randomString := func(n int) string {
		var b strings.Builder
		for i := 0; i < n; i++ {
			b.WriteRune(alphabet[rng.Intn(len(alphabet))])
		}
		return b.String()
	}

	for round := 0; round < 200; round++ {
		contacts := make([]models.Contact, rng.Intn(8))
		for i := range contacts {
			contacts[i] = models.Contact{ID: fmt.Sprint(i), Name: randomString(rng.Intn(6))}
		}
		term := randomString(rng.Intn(3))

		got := Filter(contacts, term)

		// subset in original order
		j := 0
		for _, c := range got {
			for j < len(contacts) && contacts[j].ID != c.ID {
				j++
			}
			if !assert.Less(t, j, len(contacts), "result %v is not an ordered subset of %v", got, contacts) {
				return
			}
			j++
			assert.Contains(t, strings.ToLower(c.Name), strings.ToLower(term))
		}

		// nothing matching was dropped
		expected := 0
		for _, c := range contacts {
			if strings.Contains(strings.ToLower(c.Name), strings.ToLower(term)) {
				expected++
			}
		}
		assert.Len(t, got, expected)
	}
}
