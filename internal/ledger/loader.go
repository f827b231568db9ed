package ledger

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/finboard-dev/finboard/internal/model"
)

// Loader converts a GL export stream into ledger rows.
type Loader interface {
	Parse(r io.Reader) ([]model.LedgerRow, error)
	Format() string
}

// Registry holds named loaders.
type Registry struct {
	loaders map[string]Loader
}

// NewRegistry creates an empty loader registry.
func NewRegistry() *Registry {
	return &Registry{loaders: make(map[string]Loader)}
}

// Register adds a loader. Panics on duplicate format.
func (r *Registry) Register(l Loader) {
	key := strings.ToLower(l.Format())
	if _, ok := r.loaders[key]; ok {
		panic("duplicate loader format: " + key)
	}
	r.loaders[key] = l
}

// Get returns the loader for format, or nil.
func (r *Registry) Get(format string) Loader {
	return r.loaders[strings.ToLower(format)]
}

// DefaultRegistry returns a registry with all built-in loaders.
func DefaultRegistry() *Registry {
	r := NewRegistry()
	r.Register(&CSVLoader{})
	r.Register(&XLSXLoader{})
	return r
}

// LoadFile reads a GL export, picking the loader from the file extension.
func (r *Registry) LoadFile(path string) ([]model.LedgerRow, error) {
	ext := strings.TrimPrefix(strings.ToLower(filepath.Ext(path)), ".")
	loader := r.Get(ext)
	if loader == nil {
		return nil, fmt.Errorf("no GL loader for %q files", ext)
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening GL export: %w", err)
	}
	defer f.Close()

	rows, err := loader.Parse(f)
	if err != nil {
		return nil, fmt.Errorf("parsing %s: %w", filepath.Base(path), err)
	}
	return rows, nil
}
