package resource

import "github.com/deadbeef/dbpf/section"

// Opaque is the fallback resource variant for any type ID the caller's registry has no typed
// parser for. It holds the resource's bytes exactly as read — compressed or uncompressed,
// whichever the container layer handed it — without interpreting them.
type Opaque struct {
	Base
}

// NewOpaque wraps raw payload bytes as an Opaque resource.
func NewOpaque(entry section.IndexEntry, raw []byte) *Opaque {
	return &Opaque{Base: NewBase(entry.Key, raw)}
}

// Bytes returns the resource's raw bytes unchanged; an Opaque resource is never dirty, since
// it has no typed fields to mutate.
func (o *Opaque) Bytes() []byte { return o.cached() }
