package scrollfx

import (
	"errors"
	"fmt"
	"sort"
)

// Effect mutates a surface's presentation from a progress snapshot. opts is
// the configuration value bound at Use time; its type is defined by the
// effect. Effects should be idempotent for a given snapshot.
type Effect func(s *Snapshot, opts any)

// ErrUnknownEffect is reported by Engine.Use for a name with no registered
// effect.
var ErrUnknownEffect = errors.New("scrollfx: unknown effect")

// Registry is a named table of effects shared by every engine it is given
// to. Registration is last-write-wins. Engines resolve names when an effect
// is used, so overriding a name only affects later Use calls.
type Registry struct {
	effects map[string]Effect
}

// NewRegistry returns a registry preloaded with the built-in effects.
func NewRegistry() *Registry {
	r := NewEmptyRegistry()
	registerBuiltins(r)
	return r
}

// NewEmptyRegistry returns a registry with no effects.
func NewEmptyRegistry() *Registry {
	return &Registry{effects: make(map[string]Effect)}
}

// Register installs fn under name, replacing any previous effect of that name.
// Panics if fn is nil.
func (r *Registry) Register(name string, fn Effect) *Registry {
	if fn == nil {
		panic("scrollfx: cannot register nil effect")
	}
	r.effects[name] = fn
	return r
}

// Lookup returns the effect registered under name.
func (r *Registry) Lookup(name string) (Effect, bool) {
	fn, ok := r.effects[name]
	return fn, ok
}

// resolve is Lookup with the unknown-name error attached.
func (r *Registry) resolve(name string) (Effect, error) {
	fn, ok := r.effects[name]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownEffect, name)
	}
	return fn, nil
}

// Names returns the registered effect names in sorted order.
func (r *Registry) Names() []string {
	names := make([]string, 0, len(r.effects))
	for name := range r.effects {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// defaultRegistry backs engines created without WithRegistry.
var defaultRegistry = NewRegistry()

// DefaultRegistry returns the registry used by engines created without
// WithRegistry.
func DefaultRegistry() *Registry {
	return defaultRegistry
}

// entry is an effect bound to its options.
type entry struct {
	fn   Effect
	opts any
}

// Pipeline is an append-only, ordered list of bound effects.
type Pipeline struct {
	entries []entry
}

// Append binds opts to fn and adds it after every existing entry.
func (p *Pipeline) Append(fn Effect, opts any) {
	p.entries = append(p.entries, entry{fn: fn, opts: opts})
}

// Len returns the number of bound effects.
func (p *Pipeline) Len() int {
	return len(p.entries)
}

// Run invokes every entry in registration order with snap.
func (p *Pipeline) Run(snap *Snapshot) {
	for i := range p.entries {
		e := &p.entries[i]
		e.fn(snap, e.opts)
	}
}
