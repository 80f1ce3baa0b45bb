package resource

import (
	"github.com/deadbeef/dbpf/section"
	"github.com/deadbeef/dbpf/typeid"
)

// Factory parses a resource payload of a specific type ID into its typed form.
type Factory func(entry section.IndexEntry, data []byte) (Resource, error)

// Registry dispatches a decoded resource payload to the typed parser registered for its type
// ID, falling through to Opaque for any type ID with no registered factory. It wraps a
// typeid.Registry for short-name lookups, kept in sync as factories are registered.
type Registry struct {
	names     *typeid.Registry
	factories map[uint32]Factory
}

// NewRegistry returns a Registry with factories wired for the type IDs this package can parse
// unconditionally: material and texture. Every other typed resource's type ID is
// format-defined outside what's verifiable from the numeric constants this package ships, so
// callers register them explicitly via Register.
func NewRegistry() *Registry {
	r := &Registry{names: typeid.NewRegistry(), factories: make(map[uint32]Factory)}

	r.factories[typeid.Material] = func(entry section.IndexEntry, data []byte) (Resource, error) {
		return ParseMaterial(entry, data)
	}
	r.factories[typeid.Texture] = func(entry section.IndexEntry, data []byte) (Resource, error) {
		return ParseTexture(entry, data)
	}

	return r
}

// Register adds (or replaces) the factory and short name for a type ID.
func (r *Registry) Register(id uint32, name string, factory Factory) {
	r.names.Register(id, name)
	r.factories[id] = factory
}

// Name returns the short name registered for id, falling back to its hex form if none was
// registered.
func (r *Registry) Name(id uint32) string {
	return r.names.Name(id)
}

// Decode parses entry's decompressed payload using the factory registered for its type ID, or
// wraps it as Opaque if none is registered.
func (r *Registry) Decode(entry section.IndexEntry, data []byte) (Resource, error) {
	factory, ok := r.factories[entry.Key.Type]
	if !ok {
		return NewOpaque(entry, data), nil
	}

	return factory(entry, data)
}
