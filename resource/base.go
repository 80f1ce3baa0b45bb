package resource

import (
	"github.com/deadbeef/dbpf/qfs"
	"github.com/deadbeef/dbpf/section"
)

// Resource is the behavior every typed resource implements: identity, dirtiness, and the
// current serialized byte form.
type Resource interface {
	// Key returns the resource's Resource Key.
	Key() section.Key
	// Dirty reports whether a setter has mutated the resource since it was parsed or last
	// serialized.
	Dirty() bool
	// Bytes returns the resource's current serialized form, re-serializing first if Dirty.
	Bytes() []byte
	// IsCompressed reports whether the resource's current bytes are a QFS frame, and if so
	// its declared compressed and decompressed lengths.
	IsCompressed() (compressedLen, decompressedLen uint32, ok bool)
	// CompressRawBytes attempts to QFS-compress the resource's current bytes in place,
	// reporting whether it did. A no-op on already-compressed bytes.
	CompressRawBytes() bool
}

// Base holds the bookkeeping shared by every typed resource: its key, its cached raw bytes,
// and whether a setter has invalidated that cache. Concrete resource types embed Base and
// supply their own Bytes method, calling serialize (their own re-serialization routine) when
// Base.Dirty is true.
type Base struct {
	key   section.Key
	raw   []byte
	dirty bool
}

// NewBase returns a Base for key, holding raw as its parsed-from form.
func NewBase(key section.Key, raw []byte) Base {
	return Base{key: key, raw: raw}
}

// Key returns the resource's Resource Key.
func (b *Base) Key() section.Key { return b.key }

// Dirty reports whether the resource has been mutated since it was parsed or last serialized.
func (b *Base) Dirty() bool { return b.dirty }

// cached returns the last-serialized bytes without checking dirty; concrete types call this
// from their own Bytes method after re-serializing, or directly when not dirty.
func (b *Base) cached() []byte { return b.raw }

// setDirty flips the dirty flag. Concrete setters call this after a successful mutation;
// re-serialization happens lazily, the next time Bytes is called.
func (b *Base) setDirty() { b.dirty = true }

// store replaces the cached bytes with a freshly serialized form and clears dirty. Concrete
// types call this from their own Bytes method.
func (b *Base) store(raw []byte) []byte {
	b.raw = raw
	b.dirty = false

	return raw
}

// IsCompressed reports whether the resource's raw bytes begin with a valid QFS frame header,
// returning the (compressed length, decompressed length) pair the header declares.
func (b *Base) IsCompressed() (compressedLen, decompressedLen uint32, ok bool) {
	fh, err := qfs.ParseFrameHeader(b.raw)
	if err != nil {
		return 0, 0, false
	}

	return fh.CompressedLength, fh.DecompressedLength, true
}

// CompressRawBytes attempts to QFS-compress the resource's current raw bytes in place. It is
// idempotent: already-compressed bytes, or bytes the codec's compressibility gate refuses,
// leave the resource unchanged and report false.
func (b *Base) CompressRawBytes() bool {
	if _, _, ok := b.IsCompressed(); ok {
		return false
	}

	frame, ok := qfs.Compress(b.raw)
	if !ok {
		return false
	}

	b.raw = frame

	return true
}

// SetLocation is a no-op on content. It exists only so a write pass can record a resource's
// eventual file offset without that being mistaken for a content mutation; it never flips
// dirty.
func (b *Base) SetLocation(uint32, uint32) {}
