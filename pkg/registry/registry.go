package registry

import (
	"fmt"
	"io"
	"sort"
	"sync"

	"github.com/aretw0/pictograph/pkg/domain"
	"github.com/aretw0/pictograph/pkg/variant"
)

// BaseName is the reserved name of the abstract node type.
const BaseName = "Node"

// Factory creates a fresh variant instance.
type Factory func() variant.Variant

// Entry describes a registered variant for catalogues and editors.
type Entry struct {
	Name        string   `json:"name"`
	DisplayName string   `json:"display_name"`
	Description string   `json:"description"`
	Inputs      []string `json:"inputs"`
	HasOutput   bool     `json:"has_output"`

	Parameters []domain.Parameter `json:"parameters"`
}

// Registry manages the available node variants.
type Registry struct {
	mu        sync.RWMutex
	factories map[string]Factory
}

// NewRegistry creates a new empty registry.
func NewRegistry() *Registry {
	return &Registry{
		factories: make(map[string]Factory),
	}
}

// Default returns a registry holding every built-in variant.
// Printers created through it write to w (stdout when nil).
func Default(w io.Writer) *Registry {
	r := NewRegistry()
	builtins := []Factory{
		func() variant.Variant { return variant.NewNumber(0) },
		func() variant.Variant { return variant.NewInteger(0) },
		func() variant.Variant { return variant.NewString("") },
		func() variant.Variant { return variant.NewVector(nil) },
		func() variant.Variant { return variant.NewZeros() },
		func() variant.Variant { return variant.NewOnes() },
		func() variant.Variant { return variant.NewAddition() },
		func() variant.Variant { return variant.NewSubtraction() },
		func() variant.Variant { return variant.NewMultiplication() },
		func() variant.Variant { return variant.NewStringFormat() },
		func() variant.Variant { return variant.NewPrinter(w) },
	}
	for _, f := range builtins {
		// Built-in names are unique.
		_ = r.Register(f)
	}
	return r
}

// Register adds a variant under the name its Spec declares.
// Registering an existing name fails with domain.ErrDuplicateVariant.
func (r *Registry) Register(f Factory) error {
	v := f()
	if v == nil {
		return domain.ErrAbstractVariant
	}
	name := v.Spec().Name
	if name == "" || name == BaseName {
		return fmt.Errorf("%w: invalid variant name %q", domain.ErrAbstractVariant, name)
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	if _, exists := r.factories[name]; exists {
		return fmt.Errorf("%w: %s", domain.ErrDuplicateVariant, name)
	}
	r.factories[name] = f
	return nil
}

// New instantiates the variant registered under name.
func (r *Registry) New(name string) (variant.Variant, error) {
	if name == BaseName {
		return nil, fmt.Errorf("%w: %s has no compute implementation", domain.ErrAbstractVariant, name)
	}

	r.mu.RLock()
	f, ok := r.factories[name]
	r.mu.RUnlock()

	if !ok {
		return nil, fmt.Errorf("%w: %s", domain.ErrUnknownVariant, name)
	}
	return f(), nil
}

// Names returns the registered names in sorted order.
func (r *Registry) Names() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	names := make([]string, 0, len(r.factories))
	for name := range r.factories {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Catalog lists every registered variant, sorted by name.
func (r *Registry) Catalog() []Entry {
	names := r.Names()
	entries := make([]Entry, 0, len(names))
	for _, name := range names {
		v, err := r.New(name)
		if err != nil {
			continue
		}
		spec := v.Spec()
		entry := Entry{
			Name:        spec.Name,
			DisplayName: spec.DisplayName,
			Description: spec.Description,
			Inputs:      append([]string{}, spec.Inputs...),
			HasOutput:   spec.HasOutput,
			Parameters:  make([]domain.Parameter, 0, len(spec.Parameters)),
		}
		for _, p := range spec.Parameters {
			entry.Parameters = append(entry.Parameters, *p)
		}
		entries = append(entries, entry)
	}
	return entries
}
