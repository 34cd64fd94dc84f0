package sources

import (
	"fmt"

	"github.com/arnoldongithub/atlantic-anvil/internal/domain"
)

// Registry is the read-only, ordered set of tracked publishers.
type Registry struct {
	order []string
	byKey map[string]domain.SourceDefinition
}

// New validates definitions and keeps them in declaration order.
func New(defs []domain.SourceDefinition) (*Registry, error) {
	r := &Registry{byKey: make(map[string]domain.SourceDefinition, len(defs))}
	for _, def := range defs {
		if def.Key == "" {
			return nil, fmt.Errorf("source without key (display name %q)", def.DisplayName)
		}
		if _, ok := r.byKey[def.Key]; ok {
			return nil, fmt.Errorf("source %s is declared twice", def.Key)
		}
		if def.DisplayName == "" {
			def.DisplayName = def.Name
		}
		r.byKey[def.Key] = def
		r.order = append(r.order, def.Key)
	}
	return r, nil
}

// All returns every definition in declaration order.
func (r *Registry) All() []domain.SourceDefinition {
	out := make([]domain.SourceDefinition, 0, len(r.order))
	for _, key := range r.order {
		out = append(out, r.byKey[key])
	}
	return out
}

// Lookup returns a definition by key.
func (r *Registry) Lookup(key string) (domain.SourceDefinition, bool) {
	def, ok := r.byKey[key]
	return def, ok
}

// Len is the number of publishers.
func (r *Registry) Len() int {
	return len(r.order)
}

// FeedCount is the number of (source, feed) pairs.
func (r *Registry) FeedCount() int {
	n := 0
	for _, def := range r.byKey {
		n += len(def.Feeds)
	}
	return n
}
