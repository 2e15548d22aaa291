package file_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/aretw0/pictograph/pkg/adapters/file"
	"github.com/aretw0/pictograph/pkg/document"
	"github.com/aretw0/pictograph/pkg/domain"
	"github.com/aretw0/pictograph/pkg/ports"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Ensure Store implements DocumentStore
var _ ports.DocumentStore = (*file.Store)(nil)

func TestFileStore_Contract(t *testing.T) {
	t.Run("json", func(t *testing.T) {
		ports.RunDocumentStoreContract(t, file.New(t.TempDir(), document.FormatJSON))
	})
	t.Run("yaml", func(t *testing.T) {
		ports.RunDocumentStoreContract(t, file.New(t.TempDir(), document.FormatYAML))
	})
}

func TestFileStore_ReadsOtherFormat(t *testing.T) {
	dir := t.TempDir()
	yaml := []byte("version: 1\nnodes:\n  - type: NumberNode\n    parameters:\n      Number: 4\nconnections: []\n")
	require.NoError(t, os.WriteFile(filepath.Join(dir, "hand.yml"), yaml, 0644))

	store := file.New(dir, document.FormatJSON)
	ctx := context.Background()

	names, err := store.List(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"hand"}, names)

	doc, err := store.Load(ctx, "hand")
	require.NoError(t, err)
	require.Len(t, doc.Nodes, 1)
	assert.Equal(t, 4, doc.Nodes[0].Parameters["Number"])

	// Saving rewrites it in the store's format.
	require.NoError(t, store.Save(ctx, "hand", doc))
	_, err = os.Stat(filepath.Join(dir, "hand.json"))
	assert.NoError(t, err)

	require.NoError(t, store.Delete(ctx, "hand"))
	_, err = store.Load(ctx, "hand")
	assert.ErrorIs(t, err, domain.ErrDocumentNotFound)
}

func TestFileStore_InvalidName(t *testing.T) {
	store := file.New(t.TempDir(), document.FormatJSON)
	ctx := context.Background()

	assert.Error(t, store.Save(ctx, "", domain.NewDocument()))
	assert.Error(t, store.Save(ctx, "../escape", domain.NewDocument()))
	_, err := store.Load(ctx, "a/b")
	assert.Error(t, err)
}

func TestFileStore_ListMissingDir(t *testing.T) {
	store := file.New(filepath.Join(t.TempDir(), "missing"), document.FormatJSON)
	names, err := store.List(context.Background())
	require.NoError(t, err)
	assert.Empty(t, names)
}
