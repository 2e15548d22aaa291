package middleware_test

import (
	"context"
	"crypto/rand"
	"encoding/base64"
	"errors"
	"io"
	"testing"

	"github.com/aretw0/pictograph/pkg/adapters/memory"
	"github.com/aretw0/pictograph/pkg/domain"
	"github.com/aretw0/pictograph/pkg/persistence/middleware"
	"github.com/aretw0/pictograph/pkg/ports"
)

func generateKey(t *testing.T) []byte {
	k := make([]byte, 32)
	if _, err := io.ReadFull(rand.Reader, k); err != nil {
		t.Fatal(err)
	}
	return k
}

func secretDocument(text string) *domain.Document {
	doc := domain.NewDocument()
	doc.Nodes = append(doc.Nodes,
		domain.NodeDescriptor{Type: "StringNode", Parameters: map[string]any{"String": text}},
		domain.NodeDescriptor{Type: "PrinterNode"},
	)
	doc.Connections = append(doc.Connections, domain.Connection{From: 0, To: 1, Key: "arg1"})
	return doc
}

func encrypted(t *testing.T, cfg middleware.EncryptionConfig) middleware.Middleware {
	mw, err := middleware.NewEncryptionMiddleware(cfg)
	if err != nil {
		t.Fatalf("NewEncryptionMiddleware failed: %v", err)
	}
	return mw
}

func TestEncryptionMiddleware_Roundtrip(t *testing.T) {
	// Setup
	underlyingStore := memory.NewStore()
	secureStore := encrypted(t, middleware.EncryptionConfig{ActiveKey: generateKey(t)})(underlyingStore)
	ctx := context.Background()

	// 1. Save
	if err := secureStore.Save(ctx, "greeting", secretDocument("my-secret-sauce")); err != nil {
		t.Fatalf("Save failed: %v", err)
	}

	// 2. Verify Underlying Store directly (Should be encrypted)
	stored, err := underlyingStore.Load(ctx, "greeting")
	if err != nil {
		t.Fatalf("Underlying load failed: %v", err)
	}
	if len(stored.Nodes) != 1 || stored.Nodes[0].Type != middleware.EnvelopeType {
		t.Fatalf("Expected a single envelope node, got %+v", stored.Nodes)
	}
	if _, ok := stored.Nodes[0].Parameters["String"]; ok {
		t.Fatal("Expected the secret parameter to be hidden")
	}
	if len(stored.Connections) != 0 {
		t.Errorf("Expected connections to be hidden, got %v", stored.Connections)
	}

	// 3. Load via Middleware (Should be decrypted)
	loaded, err := secureStore.Load(ctx, "greeting")
	if err != nil {
		t.Fatalf("Load via middleware failed: %v", err)
	}
	if got := loaded.Nodes[0].Parameters["String"]; got != "my-secret-sauce" {
		t.Errorf("Expected 'my-secret-sauce', got %v", got)
	}
	if len(loaded.Connections) != 1 || loaded.Connections[0].Key != "arg1" {
		t.Errorf("Expected connection to survive, got %v", loaded.Connections)
	}

	// 4. Listing and deleting pass through
	names, err := secureStore.List(ctx)
	if err != nil || len(names) != 1 || names[0] != "greeting" {
		t.Errorf("List() = %v, %v", names, err)
	}
	if err := secureStore.Delete(ctx, "greeting"); err != nil {
		t.Fatalf("Delete failed: %v", err)
	}
	if _, err := secureStore.Load(ctx, "greeting"); !errors.Is(err, domain.ErrDocumentNotFound) {
		t.Errorf("Expected ErrDocumentNotFound after delete, got %v", err)
	}
}

func TestEncryptionMiddleware_KeyRotation(t *testing.T) {
	underlyingStore := memory.NewStore()
	oldKey := generateKey(t)
	newKey := generateKey(t)
	ctx := context.Background()

	secureStoreOld := encrypted(t, middleware.EncryptionConfig{ActiveKey: oldKey})(underlyingStore)

	// 1. Save with OLD key
	if err := secureStoreOld.Save(ctx, "rotation", secretDocument("encrypted-with-old-key")); err != nil {
		t.Fatalf("Save failed: %v", err)
	}

	// 2. Load with NEW key (Active) + OLD key (Fallback)
	secureStoreNew := encrypted(t, middleware.EncryptionConfig{
		ActiveKey:    newKey,
		FallbackKeys: [][]byte{oldKey},
	})(underlyingStore)

	loaded, err := secureStoreNew.Load(ctx, "rotation")
	if err != nil {
		t.Fatalf("Load with rotated key failed: %v", err)
	}
	if loaded.Nodes[0].Parameters["String"] != "encrypted-with-old-key" {
		t.Errorf("Decryption with fallback key failed")
	}

	// 3. Save again (Should now use the NEW key)
	if err := secureStoreNew.Save(ctx, "rotation", secretDocument("encrypted-with-new-key")); err != nil {
		t.Fatalf("Save with new key failed: %v", err)
	}

	// 4. Verify we CANNOT load with just OLD key anymore
	if _, err := secureStoreOld.Load(ctx, "rotation"); err == nil {
		t.Error("Expected failure when loading new-key encryption with old-key middleware")
	}
}

func TestEncryptionMiddleware_PlainDocument(t *testing.T) {
	underlyingStore := memory.NewStore()
	ctx := context.Background()
	if err := underlyingStore.Save(ctx, "plain", secretDocument("visible")); err != nil {
		t.Fatal(err)
	}

	secureStore := encrypted(t, middleware.EncryptionConfig{ActiveKey: generateKey(t)})(underlyingStore)
	if _, err := secureStore.Load(ctx, "plain"); !errors.Is(err, middleware.ErrNotEncrypted) {
		t.Errorf("Expected ErrNotEncrypted, got %v", err)
	}
}

func TestEncryptionMiddleware_InvalidKey(t *testing.T) {
	if _, err := middleware.NewEncryptionMiddleware(middleware.EncryptionConfig{ActiveKey: []byte("short-key")}); err == nil {
		t.Error("Expected an error for invalid key size")
	}
}

func TestDecodeKey(t *testing.T) {
	key := generateKey(t)
	got, err := middleware.DecodeKey(base64.StdEncoding.EncodeToString(key))
	if err != nil || string(got) != string(key) {
		t.Errorf("DecodeKey() = %v, %v", got, err)
	}

	if _, err := middleware.DecodeKey(base64.StdEncoding.EncodeToString([]byte("short"))); err == nil {
		t.Error("Expected an error for a short key")
	}
	if _, err := middleware.DecodeKey("not base64!"); err == nil {
		t.Error("Expected an error for invalid base64")
	}
}

func TestChain(t *testing.T) {
	var order []string
	tag := func(name string) middleware.Middleware {
		return func(next ports.DocumentStore) ports.DocumentStore {
			order = append(order, name)
			return next
		}
	}

	store := memory.NewStore()
	if got := middleware.Chain(store, tag("outer"), tag("inner")); got != store {
		t.Error("Expected pass-through middlewares to return the store")
	}
	if len(order) != 2 || order[0] != "inner" || order[1] != "outer" {
		t.Errorf("Expected inner to wrap first, got %v", order)
	}
}
