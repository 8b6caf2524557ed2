// ABOUTME: Tests for the cobra command tree
// ABOUTME: Runs contacts, categories and viz commands against a temp SQLite database
package cli

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/harperreed/rolodex/db"
	"github.com/harperreed/rolodex/models"
)

type testEnv struct {
	dir    string
	dbPath string
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	dir := t.TempDir()
	env := &testEnv{dir: dir, dbPath: filepath.Join(dir, "rolodex.db")}
	t.Setenv("ROLODEX_DATABASE_URL", env.dbPath)
	t.Setenv("ROLODEX_LOG_FILE", filepath.Join(dir, "rolodex.log"))
	t.Setenv("ROLODEX_API_URL", "")
	t.Setenv("ROLODEX_API_TOKEN", "")
	return env
}

// run executes the CLI with a config path inside the env dir.
func (e *testEnv) run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	root := NewRootCommand("test")
	var out bytes.Buffer
	root.SetOut(&out)
	root.SetErr(&out)
	root.SetArgs(append([]string{"--config", filepath.Join(e.dir, "config.yaml")}, args...))
	err := root.ExecuteContext(context.Background())
	return out.String(), err
}

func (e *testEnv) store(t *testing.T) *db.Store {
	t.Helper()
	store, err := db.Open(context.Background(), e.dbPath)
	require.NoError(t, err)
	t.Cleanup(func() { _ = store.Close() })
	return store
}

func TestContactsLifecycle(t *testing.T) {
	env := newTestEnv(t)

	out, err := env.run(t, "contacts", "list", "--local")
	require.NoError(t, err)
	assert.Contains(t, out, "No contacts found")

	_, err = env.run(t, "categories", "add", "Work", "--local")
	require.NoError(t, err)

	out, err = env.run(t, "contacts", "add", "--local",
		"--name", "Ada Lovelace", "--email", "ada@example.com", "--phone", "11987654321", "--category", "work")
	require.NoError(t, err)
	assert.Contains(t, out, "✓ Contact created: Ada Lovelace")
	assert.Contains(t, out, "Phone: (11) 98765-4321")
	assert.Contains(t, out, "Category: Work")

	out, err = env.run(t, "contacts", "add", "--local", "--name", "Grace Hopper")
	require.NoError(t, err)
	assert.Contains(t, out, "Grace Hopper")

	out, err = env.run(t, "contacts", "list", "--local", "--order", "desc")
	require.NoError(t, err)
	assert.Less(t, strings.Index(out, "Grace Hopper"), strings.Index(out, "Ada Lovelace"))
	assert.Contains(t, out, "Total: 2 contacts")

	out, err = env.run(t, "contacts", "list", "--local", "--search", "ADA")
	require.NoError(t, err)
	assert.Contains(t, out, "Ada Lovelace")
	assert.NotContains(t, out, "Grace Hopper")
	assert.Contains(t, out, "Total: 1 contact\n")
}

func TestContactsUpdateOnlyChangesGivenFlags(t *testing.T) {
	env := newTestEnv(t)
	store := env.store(t)
	ctx := context.Background()

	cat, err := store.CreateCategory(ctx, "Friends")
	require.NoError(t, err)
	contact, err := store.CreateContact(ctx, models.ContactPayload{
		Name:       "Ada",
		Email:      "ada@example.com",
		CategoryID: &cat.ID,
	})
	require.NoError(t, err)

	out, err := env.run(t, "contacts", "update", contact.ID, "--local", "--name", "Ada Lovelace")
	require.NoError(t, err)
	assert.Contains(t, out, "✓ Contact updated: Ada Lovelace")

	got, err := store.GetContactByID(ctx, contact.ID)
	require.NoError(t, err)
	assert.Equal(t, "Ada Lovelace", got.Name)
	assert.Equal(t, "ada@example.com", got.Email)
	assert.Equal(t, "Friends", got.Category())

	_, err = env.run(t, "contacts", "update", contact.ID, "--local", "--category", "")
	require.NoError(t, err)
	got, err = store.GetContactByID(ctx, contact.ID)
	require.NoError(t, err)
	assert.Nil(t, got.CategoryID)
}

func TestContactsAddValidation(t *testing.T) {
	env := newTestEnv(t)

	_, err := env.run(t, "contacts", "add", "--local", "--email", "ada@example.com")
	assert.ErrorContains(t, err, "--name is required")

	_, err = env.run(t, "contacts", "add", "--local", "--name", "Ada", "--email", "not-an-email")
	assert.ErrorContains(t, err, "invalid e-mail")

	_, err = env.run(t, "contacts", "add", "--local", "--name", "Ada", "--category", "Nope")
	assert.ErrorContains(t, err, `unknown category "Nope"`)
}

func TestContactsDelete(t *testing.T) {
	env := newTestEnv(t)
	store := env.store(t)
	ctx := context.Background()

	contact, err := store.CreateContact(ctx, models.ContactPayload{Name: "Ada"})
	require.NoError(t, err)

	out, err := env.run(t, "contacts", "delete", contact.ID, "--local")
	require.NoError(t, err)
	assert.Contains(t, out, "✓ Contact deleted")

	_, err = store.GetContactByID(ctx, contact.ID)
	assert.ErrorIs(t, err, db.ErrNotFound)
}

func TestCategoriesList(t *testing.T) {
	env := newTestEnv(t)

	out, err := env.run(t, "categories", "list", "--local")
	require.NoError(t, err)
	assert.Contains(t, out, "No categories found")

	_, err = env.run(t, "categories", "add", "Family", "--local")
	require.NoError(t, err)

	out, err = env.run(t, "categories", "list", "--local")
	require.NoError(t, err)
	assert.Contains(t, out, "Family")
}

func TestVizCommand(t *testing.T) {
	env := newTestEnv(t)
	store := env.store(t)
	_, err := store.CreateContact(context.Background(), models.ContactPayload{Name: "Ada"})
	require.NoError(t, err)

	out, err := env.run(t, "viz", "--local", "--dashboard")
	require.NoError(t, err)
	assert.Contains(t, out, "ROLODEX DASHBOARD")

	file := filepath.Join(env.dir, "graph.dot")
	_, err = env.run(t, "viz", "--local", "--output", file)
	require.NoError(t, err)
	data, err := os.ReadFile(file)
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(string(data), "digraph"))
}

func TestTUIRequiresTerminal(t *testing.T) {
	env := newTestEnv(t)
	orig := stdoutIsTerminal
	stdoutIsTerminal = func() bool { return false }
	t.Cleanup(func() { stdoutIsTerminal = orig })

	_, err := env.run(t, "tui")
	assert.ErrorIs(t, err, errNoTTY)
}
