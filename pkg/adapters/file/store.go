package file

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/aretw0/pictograph/pkg/document"
	"github.com/aretw0/pictograph/pkg/domain"
)

// DefaultDir is where documents are kept when no directory is configured.
var DefaultDir = filepath.Join(".pictograph", "graphs")

// Store implements ports.DocumentStore on the local filesystem.
// Each document is one file named after it. New documents are written in the
// store's format; documents in the other format are still found and read.
type Store struct {
	BasePath string
	Format   document.Format
}

// New creates a Store writing documents in format under basePath.
// If basePath is empty, it defaults to DefaultDir.
func New(basePath string, format document.Format) *Store {
	if basePath == "" {
		basePath = DefaultDir
	}
	if format == "" {
		format = document.FormatJSON
	}
	return &Store{BasePath: basePath, Format: format}
}

func extension(format document.Format) string {
	if format == document.FormatYAML {
		return ".yaml"
	}
	return ".json"
}

func validName(name string) error {
	if name == "" {
		return fmt.Errorf("document name cannot be empty")
	}
	if strings.ContainsAny(name, `/\`) || name == "." || name == ".." {
		return fmt.Errorf("invalid document name %q", name)
	}
	return nil
}

// Save writes the document atomically: a temp file in the same directory is
// synced and then renamed over the destination.
func (s *Store) Save(ctx context.Context, name string, doc *domain.Document) error {
	if err := validName(name); err != nil {
		return err
	}
	if err := os.MkdirAll(s.BasePath, 0755); err != nil {
		return fmt.Errorf("failed to ensure document directory: %w", err)
	}

	data, err := document.Marshal(doc, s.Format)
	if err != nil {
		return fmt.Errorf("failed to marshal document: %w", err)
	}

	ext := extension(s.Format)
	destPath := filepath.Join(s.BasePath, name+ext)

	tmpFile, err := os.CreateTemp(s.BasePath, "tmp-"+name+"-*"+ext)
	if err != nil {
		return fmt.Errorf("failed to create temp file: %w", err)
	}
	tmpPath := tmpFile.Name()
	defer func() {
		_ = tmpFile.Close()
		_ = os.Remove(tmpPath)
	}()

	if _, err := tmpFile.Write(data); err != nil {
		return fmt.Errorf("failed to write to temp file: %w", err)
	}
	if err := tmpFile.Sync(); err != nil {
		return fmt.Errorf("failed to fsync temp file: %w", err)
	}
	// Cannot rename an open file on Windows.
	if err := tmpFile.Close(); err != nil {
		return fmt.Errorf("failed to close temp file: %w", err)
	}

	// os.Rename fails on Windows when the destination exists.
	if _, err := os.Stat(destPath); err == nil {
		if err := os.Remove(destPath); err != nil {
			return fmt.Errorf("failed to remove existing document for overwrite: %w", err)
		}
	}
	if err := os.Rename(tmpPath, destPath); err != nil {
		return fmt.Errorf("failed to rename temp file: %w", err)
	}

	// Drop copies in other formats so List reports the name once.
	for _, path := range s.candidates(name)[1:] {
		_ = os.Remove(path)
	}
	return nil
}

// Load reads the document, preferring the store's own format.
func (s *Store) Load(ctx context.Context, name string) (*domain.Document, error) {
	if err := validName(name); err != nil {
		return nil, err
	}

	for _, path := range s.candidates(name) {
		data, err := os.ReadFile(path)
		if err != nil {
			if os.IsNotExist(err) {
				continue
			}
			return nil, fmt.Errorf("failed to read document file: %w", err)
		}
		return document.Unmarshal(data, document.FormatFromPath(path))
	}
	return nil, domain.ErrDocumentNotFound
}

// Delete removes the document in any format.
func (s *Store) Delete(ctx context.Context, name string) error {
	if err := validName(name); err != nil {
		return err
	}
	for _, path := range s.candidates(name) {
		if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
			return fmt.Errorf("failed to delete document file: %w", err)
		}
	}
	return nil
}

// List returns the stored document names in sorted order.
func (s *Store) List(ctx context.Context) ([]string, error) {
	entries, err := os.ReadDir(s.BasePath)
	if err != nil {
		if os.IsNotExist(err) {
			return []string{}, nil
		}
		return nil, fmt.Errorf("failed to list documents: %w", err)
	}

	seen := make(map[string]bool)
	names := []string{}
	for _, entry := range entries {
		if entry.IsDir() || strings.HasPrefix(entry.Name(), "tmp-") {
			continue
		}
		ext := filepath.Ext(entry.Name())
		switch ext {
		case ".json", ".yaml", ".yml":
		default:
			continue
		}
		name := strings.TrimSuffix(entry.Name(), ext)
		if !seen[name] {
			seen[name] = true
			names = append(names, name)
		}
	}
	sort.Strings(names)
	return names, nil
}

func (s *Store) candidates(name string) []string {
	paths := []string{filepath.Join(s.BasePath, name+extension(s.Format))}
	for _, ext := range []string{".json", ".yaml", ".yml"} {
		if ext != extension(s.Format) {
			paths = append(paths, filepath.Join(s.BasePath, name+ext))
		}
	}
	return paths
}
