package templates

import (
	"fmt"

	"github.com/aretw0/pdaboat/pkg/domain"
)

// DefaultID is the template used when a lookup names an unknown id.
const DefaultID = "anbn"

// Registry is a read-only index of templates.
// It is built once and never mutated, so it is safe to share across goroutines without locks.
type Registry struct {
	order     []string
	byID      map[string]domain.Template
	defaultID string
}

// Option configures a Registry.
type Option func(*Registry)

// WithDefault overrides the fallback template id.
func WithDefault(id string) Option {
	return func(r *Registry) {
		r.defaultID = id
	}
}

// NewRegistry indexes the given templates in order.
// It fails on duplicate ids, templates without a rule, or a default id that is not registered.
func NewRegistry(templates []domain.Template, opts ...Option) (*Registry, error) {
	r := &Registry{
		order:     make([]string, 0, len(templates)),
		byID:      make(map[string]domain.Template, len(templates)),
		defaultID: DefaultID,
	}
	for _, opt := range opts {
		opt(r)
	}

	for _, t := range templates {
		if t.ID == "" {
			return nil, fmt.Errorf("template without id")
		}
		if t.Rule == nil {
			return nil, fmt.Errorf("template %q has no rule", t.ID)
		}
		if _, dup := r.byID[t.ID]; dup {
			return nil, fmt.Errorf("duplicate template id %q", t.ID)
		}
		r.byID[t.ID] = t
		r.order = append(r.order, t.ID)
	}

	if _, ok := r.byID[r.defaultID]; !ok {
		return nil, fmt.Errorf("default template %q: %w", r.defaultID, domain.ErrTemplateNotFound)
	}
	return r, nil
}

// Default returns a registry over the built-in catalogue.
func Default(opts ...Option) (*Registry, error) {
	return NewRegistry(Catalogue(), opts...)
}

// MustDefault is like Default but panics on error. Intended for package-level wiring.
func MustDefault(opts ...Option) *Registry {
	r, err := Default(opts...)
	if err != nil {
		panic(err)
	}
	return r
}

// Get performs a strict lookup.
func (r *Registry) Get(id string) (domain.Template, bool) {
	t, ok := r.byID[id]
	return t, ok
}

// Resolve looks up id, falling back to the default template when it is unknown.
// The boolean reports whether id itself was found.
func (r *Registry) Resolve(id string) (domain.Template, bool) {
	if t, ok := r.byID[id]; ok {
		return t, true
	}
	return r.byID[r.defaultID], false
}

// DefaultID returns the fallback template id.
func (r *Registry) DefaultID() string {
	return r.defaultID
}

// List returns the templates in catalogue order.
func (r *Registry) List() []domain.Template {
	out := make([]domain.Template, 0, len(r.order))
	for _, id := range r.order {
		out = append(out, r.byID[id])
	}
	return out
}

// Infos returns the serialisable projections in catalogue order.
func (r *Registry) Infos() []domain.TemplateInfo {
	out := make([]domain.TemplateInfo, 0, len(r.order))
	for _, id := range r.order {
		out = append(out, r.byID[id].Info())
	}
	return out
}
