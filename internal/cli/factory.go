// Package cli wires configuration, stores and adapters for the pictograph command.
package cli

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"

	"github.com/aretw0/pictograph"
	"github.com/aretw0/pictograph/internal/config"
	"github.com/aretw0/pictograph/internal/logging"
	"github.com/aretw0/pictograph/pkg/adapters/file"
	"github.com/aretw0/pictograph/pkg/adapters/loam"
	"github.com/aretw0/pictograph/pkg/adapters/memory"
	"github.com/aretw0/pictograph/pkg/adapters/redis"
	"github.com/aretw0/pictograph/pkg/document"
	"github.com/aretw0/pictograph/pkg/domain"
	"github.com/aretw0/pictograph/pkg/library"
	"github.com/aretw0/pictograph/pkg/persistence/middleware"
	"github.com/aretw0/pictograph/pkg/ports"
)

// Backend is an opened document store and, for shared backends, a locker.
type Backend struct {
	Store  ports.DocumentStore
	Locker ports.DistributedLocker
	close  func() error
}

// Close releases backend connections.
func (b *Backend) Close() error {
	if b == nil || b.close == nil {
		return nil
	}
	return b.close()
}

// Library guards the store with per-document locks, distributed ones when
// the backend has a locker.
func (b *Backend) Library(logger *slog.Logger) *library.Manager {
	return library.NewManager(b.Store,
		library.WithLocker(b.Locker),
		library.WithLogger(logger),
	)
}

// NewLogger builds the application logger from cfg.
func NewLogger(cfg config.Config) (*slog.Logger, error) {
	level, err := logging.ParseLevel(cfg.LogLevel)
	if err != nil {
		return nil, err
	}
	return logging.NewWithWriter(os.Stderr, level, cfg.LogJSON), nil
}

// OpenStore opens the backend selected by cfg.Store.
// The redis backend is pinged so a bad address fails fast. With an
// encryption key configured, the store encrypts every document.
func OpenStore(ctx context.Context, cfg config.Config) (*Backend, error) {
	backend, err := openStore(ctx, cfg)
	if err != nil || cfg.Store.EncryptionKey == "" {
		return backend, err
	}

	mw, err := encryption(cfg.Store)
	if err != nil {
		_ = backend.Close()
		return nil, err
	}
	backend.Store = middleware.Chain(backend.Store, mw)
	return backend, nil
}

func encryption(sc config.StoreConfig) (middleware.Middleware, error) {
	active, err := middleware.DecodeKey(sc.EncryptionKey)
	if err != nil {
		return nil, fmt.Errorf("encryption key: %w", err)
	}
	cfg := middleware.EncryptionConfig{ActiveKey: active}
	for i, k := range sc.FallbackKeys {
		key, err := middleware.DecodeKey(k)
		if err != nil {
			return nil, fmt.Errorf("fallback key %d: %w", i, err)
		}
		cfg.FallbackKeys = append(cfg.FallbackKeys, key)
	}
	return middleware.NewEncryptionMiddleware(cfg)
}

func openStore(ctx context.Context, cfg config.Config) (*Backend, error) {
	switch cfg.Store.Backend {
	case config.StoreMemory, "":
		return &Backend{Store: memory.NewStore()}, nil

	case config.StoreFile:
		format, err := document.ParseFormat(cfg.Store.Format)
		if err != nil {
			return nil, err
		}
		return &Backend{Store: file.New(cfg.Store.Dir, format)}, nil

	case config.StoreLoam:
		store, err := loam.New(cfg.Store.Dir)
		if err != nil {
			return nil, err
		}
		return &Backend{Store: store}, nil

	case config.StoreRedis:
		rc := cfg.Store.Redis
		opts := []redis.Option{redis.WithPrefix(rc.Prefix)}
		if rc.TTL > 0 {
			opts = append(opts, redis.WithTTL(rc.TTL))
		}
		store := redis.New(rc.Addr, rc.Password, rc.DB, opts...)
		if err := store.Client().Ping(ctx).Err(); err != nil {
			_ = store.Close()
			return nil, fmt.Errorf("connect redis %s: %w", rc.Addr, err)
		}
		return &Backend{
			Store:  store,
			Locker: redis.NewLocker(store.Client(), rc.Prefix),
			close:  store.Close,
		}, nil

	default:
		return nil, fmt.Errorf("unknown store backend %q", cfg.Store.Backend)
	}
}

// NewEngine creates an engine configured from cfg.
func NewEngine(cfg config.Config, logger *slog.Logger, backend *Backend, opts ...pictograph.Option) *pictograph.Engine {
	base := []pictograph.Option{
		pictograph.WithLogger(logger),
		pictograph.WithAutoProcess(cfg.AutoProcess),
	}
	if backend != nil && backend.Store != nil {
		base = append(base, pictograph.WithStore(backend.Store))
	}
	return pictograph.New(append(base, opts...)...)
}

// ReadDocument decodes a graph document file, picking the codec from the extension.
func ReadDocument(path string) (*domain.Document, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	doc, err := document.Unmarshal(data, document.FormatFromPath(path))
	if err != nil {
		return nil, fmt.Errorf("decode %s: %w", path, err)
	}
	return doc, nil
}

// FetchDocument reads source as a document file, falling back to the
// document stored under that name.
func FetchDocument(ctx context.Context, store ports.DocumentStore, source string) (*domain.Document, error) {
	if info, err := os.Stat(source); err == nil && !info.IsDir() {
		return ReadDocument(source)
	}
	doc, err := store.Load(ctx, source)
	if errors.Is(err, domain.ErrDocumentNotFound) {
		return nil, fmt.Errorf("%q is neither a file nor a stored document: %w", source, err)
	}
	return doc, err
}

// LoadGraph replaces the engine's graph with source, which is either a
// document file or the name of a stored document.
func LoadGraph(ctx context.Context, engine *pictograph.Engine, source string) error {
	if info, err := os.Stat(source); err == nil && !info.IsDir() {
		doc, err := ReadDocument(source)
		if err != nil {
			return err
		}
		engine.Name = source
		_, err = engine.Load(doc)
		return err
	}

	_, err := engine.Open(ctx, source)
	if errors.Is(err, domain.ErrDocumentNotFound) {
		return fmt.Errorf("%q is neither a file nor a stored document: %w", source, err)
	}
	if err == nil || errors.Is(err, domain.ErrCompute) {
		engine.Name = source
	}
	return err
}
