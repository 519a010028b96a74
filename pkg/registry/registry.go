// Package registry maps tag names to component constructors.
//
// The CLI and the HTTP server look components up by tag name:
//
//	reg := registry.New()
//	reg.MustRegister("x-greeting", NewGreeting, "Greets by label")
//	entry, err := reg.Lookup("x-greeting")
package registry

import (
	"sort"
	"sync"

	"github.com/vango-dev/ssr/internal/errors"
	"github.com/vango-dev/ssr/pkg/vdom"
)

// Entry is a registered component.
type Entry struct {
	Tag         string           `json:"tag"`
	Description string           `json:"description,omitempty"`
	Ctor        vdom.Constructor `json:"-"`
}

// Registry is safe for concurrent use.
type Registry struct {
	mu      sync.RWMutex
	entries map[string]Entry
}

// New creates an empty Registry.
func New() *Registry {
	return &Registry{entries: make(map[string]Entry)}
}

// Register adds ctor under tag. Registering a tag twice fails.
func (r *Registry) Register(tag string, ctor vdom.Constructor, description string) error {
	if tag == "" {
		return errors.InvalidArgument("E001", "cannot register an empty tag name")
	}
	if ctor == nil {
		return errors.InvalidArgument("E002", "nil constructor for <%s>", tag)
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.entries[tag]; exists {
		return errors.New("E041").WithDetailf("<%s> is already registered", tag)
	}
	r.entries[tag] = Entry{Tag: tag, Description: description, Ctor: ctor}
	return nil
}

// MustRegister is like Register but panics on error.
func (r *Registry) MustRegister(tag string, ctor vdom.Constructor, description string) {
	if err := r.Register(tag, ctor, description); err != nil {
		panic(err)
	}
}

// Lookup returns the entry for tag.
func (r *Registry) Lookup(tag string) (Entry, error) {
	r.mu.RLock()
	entry, ok := r.entries[tag]
	r.mu.RUnlock()

	if !ok {
		return Entry{}, errors.New("E040").
			WithDetailf("<%s> is not registered", tag).
			WithSuggestion("Run `vango-ssr components` to list available tags.")
	}
	return entry, nil
}

// Entries returns all entries sorted by tag.
func (r *Registry) Entries() []Entry {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]Entry, 0, len(r.entries))
	for _, e := range r.entries {
		out = append(out, e)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Tag < out[j].Tag })
	return out
}

// Len returns the number of registered components.
func (r *Registry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.entries)
}
