// Package loam stores graph documents in a loam repository: one markdown file
// per document, the graph in its frontmatter and a short summary as content.
package loam

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/aretw0/loam"
	"github.com/aretw0/pictograph/pkg/domain"
)

// extensions are the files loam may have written a document to.
var extensions = []string{".md", ".json", ".yaml", ".yml"}

// GraphMetadata is the frontmatter of a stored document.
type GraphMetadata struct {
	Version     int                     `json:"version" yaml:"version" mapstructure:"version"`
	Nodes       []domain.NodeDescriptor `json:"nodes" yaml:"nodes" mapstructure:"nodes"`
	Connections []domain.Connection     `json:"connections" yaml:"connections" mapstructure:"connections"`
}

// Store implements ports.DocumentStore on top of a loam typed repository.
type Store struct {
	BasePath string
	Repo     *loam.TypedRepository[GraphMetadata]
}

// New opens (or creates) a loam repository at basePath. Versioning is off:
// documents are plain files the user may commit themselves.
func New(basePath string) (*Store, error) {
	absPath, err := filepath.Abs(basePath)
	if err != nil {
		return nil, fmt.Errorf("invalid path: %w", err)
	}
	if err := os.MkdirAll(absPath, 0o755); err != nil {
		return nil, fmt.Errorf("create loam directory: %w", err)
	}
	repo, err := loam.Init(absPath,
		loam.WithVersioning(false),
		loam.WithForceTemp(false),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize loam: %w", err)
	}
	return &Store{
		BasePath: absPath,
		Repo:     loam.NewTypedRepository[GraphMetadata](repo),
	}, nil
}

func validName(name string) error {
	if name == "" || strings.ContainsAny(name, `/\`) || name == "." || name == ".." {
		return fmt.Errorf("invalid document name %q", name)
	}
	return nil
}

// Save writes doc under name, replacing any previous version.
func (s *Store) Save(ctx context.Context, name string, doc *domain.Document) error {
	if err := validName(name); err != nil {
		return err
	}
	err := s.Repo.Save(ctx, &loam.DocumentModel[GraphMetadata]{
		ID:      name,
		Content: summary(name, doc),
		Data: GraphMetadata{
			Version:     doc.Version,
			Nodes:       doc.Nodes,
			Connections: doc.Connections,
		},
	})
	if err != nil {
		return fmt.Errorf("loam save failed for %s: %w", name, err)
	}
	return nil
}

// Load reads the document stored under name.
func (s *Store) Load(ctx context.Context, name string) (*domain.Document, error) {
	if err := validName(name); err != nil {
		return nil, err
	}
	if !s.exists(name) {
		return nil, fmt.Errorf("%w: %s", domain.ErrDocumentNotFound, name)
	}
	model, err := s.Repo.Get(ctx, name)
	if err != nil {
		return nil, fmt.Errorf("loam get failed for %s: %w", name, err)
	}

	doc := &domain.Document{
		Version:     model.Data.Version,
		Nodes:       model.Data.Nodes,
		Connections: model.Data.Connections,
	}
	if doc.Version == 0 {
		doc.Version = domain.DocumentVersion
	}
	if doc.Nodes == nil {
		doc.Nodes = []domain.NodeDescriptor{}
	}
	if doc.Connections == nil {
		doc.Connections = []domain.Connection{}
	}
	return doc, nil
}

// Delete removes the document files. Deleting a missing document is not an error.
func (s *Store) Delete(ctx context.Context, name string) error {
	if err := validName(name); err != nil {
		return err
	}
	for _, path := range s.paths(name) {
		if err := os.Remove(path); err != nil && !errors.Is(err, os.ErrNotExist) {
			return fmt.Errorf("delete %s: %w", name, err)
		}
	}
	return nil
}

// List returns the stored document names, sorted.
func (s *Store) List(ctx context.Context) ([]string, error) {
	docs, err := s.Repo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("loam list failed: %w", err)
	}

	seen := make(map[string]bool, len(docs))
	names := make([]string, 0, len(docs))
	for _, doc := range docs {
		name := trimExtension(doc.ID)
		if seen[name] || !s.exists(name) {
			continue
		}
		seen[name] = true
		names = append(names, name)
	}
	sort.Strings(names)
	return names, nil
}

func (s *Store) paths(name string) []string {
	paths := make([]string, len(extensions))
	for i, ext := range extensions {
		paths[i] = filepath.Join(s.BasePath, name+ext)
	}
	return paths
}

func (s *Store) exists(name string) bool {
	for _, path := range s.paths(name) {
		if _, err := os.Stat(path); err == nil {
			return true
		}
	}
	return false
}

func trimExtension(id string) string {
	ext := filepath.Ext(id)
	for _, known := range extensions {
		if ext == known {
			return filepath.ToSlash(strings.TrimSuffix(id, ext))
		}
	}
	return filepath.ToSlash(id)
}

// summary is the human-readable body written below the frontmatter.
func summary(name string, doc *domain.Document) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "# %s\n\n", name)
	fmt.Fprintf(&sb, "Pictograph graph with %d node(s) and %d connection(s).\n", len(doc.Nodes), len(doc.Connections))
	for i, n := range doc.Nodes {
		fmt.Fprintf(&sb, "\n%d. %s", i, n.Type)
	}
	sb.WriteString("\n")
	return sb.String()
}
