// Package registry maps source-level class docs to loadable reflect types.
//
// Go cannot load a type by name at run time, so the binary that runs the
// generator registers the types it links in. A class doc whose qualified name
// was never registered, or whose lazy loader fails, resolves to
// ErrTypeNotFound: the documentation universe is a superset of what the binary
// knows about.
package registry

import (
	"errors"
	"fmt"
	"reflect"
	"sort"
	"sync"

	"git.home.luguber.info/inful/featuredoc/internal/classdoc"
)

var (
	// ErrTypeNotFound is the single outcome of every failed resolution.
	ErrTypeNotFound = errors.New("type not found")
	// ErrUnnamedType is returned when registering a type without a name.
	ErrUnnamedType = errors.New("cannot register unnamed type")
)

// Loader produces a type lazily. Errors and panics are both reported as
// ErrTypeNotFound by Resolve.
type Loader func() (reflect.Type, error)

// Registry is safe for concurrent registration; resolution only reads.
type Registry struct {
	mu      sync.RWMutex
	types   map[string]reflect.Type
	loaders map[string]Loader
}

// New creates an empty registry.
func New() *Registry {
	return &Registry{
		types:   make(map[string]reflect.Type),
		loaders: make(map[string]Loader),
	}
}

// QualifiedName returns PkgPath.Name for a named type, looking through pointers.
func QualifiedName(t reflect.Type) string {
	for t != nil && t.Kind() == reflect.Pointer && t.Name() == "" {
		t = t.Elem()
	}
	if t == nil || t.Name() == "" {
		return ""
	}
	if t.PkgPath() == "" {
		return t.Name()
	}
	return t.PkgPath() + "." + t.Name()
}

// Register adds named types. Pointer types register their element type.
func (r *Registry) Register(types ...reflect.Type) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, t := range types {
		for t != nil && t.Kind() == reflect.Pointer && t.Name() == "" {
			t = t.Elem()
		}
		name := QualifiedName(t)
		if name == "" {
			return fmt.Errorf("%w: %v", ErrUnnamedType, t)
		}
		r.types[name] = t
	}
	return nil
}

// RegisterLoader adds a lazily resolved type under a qualified name.
func (r *Registry) RegisterLoader(qualified string, l Loader) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.loaders[qualified] = l
}

// Names returns every registered qualified name, sorted.
func (r *Registry) Names() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	names := make([]string, 0, len(r.types)+len(r.loaders))
	for n := range r.types {
		names = append(names, n)
	}
	for n := range r.loaders {
		if _, dup := r.types[n]; !dup {
			names = append(names, n)
		}
	}
	sort.Strings(names)
	return names
}

// Resolve maps a class doc to its registered type.
func (r *Registry) Resolve(doc classdoc.ClassDoc) (reflect.Type, error) {
	return r.ResolveName(doc.QualifiedName())
}

// ResolveName maps a qualified name to its registered type. Every failure,
// including a panicking loader, is reported as ErrTypeNotFound.
func (r *Registry) ResolveName(qualified string) (t reflect.Type, err error) {
	r.mu.RLock()
	typ, ok := r.types[qualified]
	loader := r.loaders[qualified]
	r.mu.RUnlock()

	if ok {
		return typ, nil
	}
	if loader == nil {
		return nil, fmt.Errorf("%w: %s", ErrTypeNotFound, qualified)
	}

	defer func() {
		if rec := recover(); rec != nil {
			t, err = nil, fmt.Errorf("%w: %s: loader panicked: %v", ErrTypeNotFound, qualified, rec)
		}
	}()
	typ, lerr := loader()
	if lerr != nil {
		return nil, fmt.Errorf("%w: %s: %w", ErrTypeNotFound, qualified, lerr)
	}
	if typ == nil {
		return nil, fmt.Errorf("%w: %s: loader returned no type", ErrTypeNotFound, qualified)
	}
	return typ, nil
}
