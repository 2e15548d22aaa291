package ports

import (
	"context"
	"testing"
	"time"

	"github.com/aretw0/pictograph/pkg/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func contractDocument() *domain.Document {
	doc := domain.NewDocument()
	doc.Nodes = append(doc.Nodes,
		domain.NodeDescriptor{Type: "NumberNode", Parameters: map[string]any{"Number": 2.5}},
		domain.NodeDescriptor{Type: "StringNode", Parameters: map[string]any{"String": "Sum: {}"}},
		domain.NodeDescriptor{Type: "StringFormatNode"},
	)
	doc.Connections = append(doc.Connections,
		domain.Connection{From: 1, To: 2, Key: "arg1"},
		domain.Connection{From: 0, To: 2, Key: "arg2"},
	)
	return doc
}

// RunDocumentStoreContract runs a suite of tests to verify that a DocumentStore
// implementation adheres to the defined interface contract.
func RunDocumentStoreContract(t *testing.T, store DocumentStore) {
	t.Helper()
	ctx := context.Background()
	name := "contract-" + time.Now().Format("20060102150405")

	t.Run("Save and Load", func(t *testing.T) {
		doc := contractDocument()

		err := store.Save(ctx, name, doc)
		require.NoError(t, err, "Save should not return error")

		loaded, err := store.Load(ctx, name)
		require.NoError(t, err, "Load should not return error")
		assert.Equal(t, domain.DocumentVersion, loaded.Version)
		require.Len(t, loaded.Nodes, 3)
		assert.Equal(t, "NumberNode", loaded.Nodes[0].Type)
		// Encoded stores turn numbers into float64; only the value is compared.
		assert.EqualValues(t, 2.5, loaded.Nodes[0].Parameters["Number"])
		assert.Equal(t, "Sum: {}", loaded.Nodes[1].Parameters["String"])
		assert.Equal(t, doc.Connections, loaded.Connections)
	})

	t.Run("Save Overwrites", func(t *testing.T) {
		doc := contractDocument()
		doc.Connections = doc.Connections[:1]
		require.NoError(t, store.Save(ctx, name, doc))

		loaded, err := store.Load(ctx, name)
		require.NoError(t, err)
		assert.Len(t, loaded.Connections, 1)
	})

	t.Run("Load Non-Existent", func(t *testing.T) {
		_, err := store.Load(ctx, "non-existent-"+name)
		assert.ErrorIs(t, err, domain.ErrDocumentNotFound)
	})

	t.Run("Delete", func(t *testing.T) {
		require.NoError(t, store.Save(ctx, name, contractDocument()))

		err := store.Delete(ctx, name)
		require.NoError(t, err, "Delete should not return error")

		_, err = store.Load(ctx, name)
		assert.ErrorIs(t, err, domain.ErrDocumentNotFound, "Load after Delete should return ErrDocumentNotFound")

		assert.NoError(t, store.Delete(ctx, name), "Delete of a missing document should succeed")
	})

	t.Run("List", func(t *testing.T) {
		id1 := name + "-1"
		id2 := name + "-2"
		require.NoError(t, store.Save(ctx, id1, contractDocument()))
		require.NoError(t, store.Save(ctx, id2, contractDocument()))

		defer func() {
			_ = store.Delete(ctx, id1)
			_ = store.Delete(ctx, id2)
		}()

		names, err := store.List(ctx)
		require.NoError(t, err)
		assert.Contains(t, names, id1)
		assert.Contains(t, names, id2)
	})
}
