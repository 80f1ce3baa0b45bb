package typeid

import "fmt"

// Known type IDs, each independently verifiable against a magic value embedded in the payload
// it names (the texture and material block-ID checks) or reserved by the container format
// itself (the compression directory).
const (
	Texture              uint32 = 0x1C4A276C // TXTR: verified against the block's own type tag.
	Material             uint32 = 0x49596978 // TXMT: verified against the block's own type tag.
	CompressionDirectory uint32 = 0xE86B1EEF // DIR : the container's reserved directory type.
)

// Registry maps type IDs to short display names. NewRegistry returns one carrying the Texture,
// Material, and CompressionDirectory entries; the zero value holds no map, so Register panics on it.
type Registry struct {
	names map[uint32]string
}

// NewRegistry returns a Registry pre-seeded with the type IDs this package can verify on its own.
func NewRegistry() *Registry {
	r := &Registry{names: make(map[uint32]string)}
	r.Register(Texture, "TXTR")
	r.Register(Material, "TXMT")
	r.Register(CompressionDirectory, "DIR ")

	return r
}

// Register names id. Callers use this to add the short names for resource kinds this package has
// no way to verify independently (property sets, hair tones, reference tables, string tables,
// binary indices, and the rest of the legacy resource catalog), and may overwrite a pre-seeded
// entry if their own decode set disagrees.
func (r *Registry) Register(id uint32, name string) {
	r.names[id] = name
}

// Name returns the short display name for id, or its zero-padded hex form if id is unregistered.
func (r *Registry) Name(id uint32) string {
	if name, ok := r.names[id]; ok {
		return name
	}

	return fmt.Sprintf("%08x", id)
}
