// Package resource implements the typed resource layer: parsers and serializers for the
// handful of payload shapes the toolkit understands natively (materials, textures, reference
// tables, tagged-value property resources, localized string tables, binary-index resources),
// plus the opaque fallback for every type ID a caller hasn't registered a parser for.
//
// Every typed resource embeds Base, which tracks its Resource Key, its cached raw bytes, and
// a dirty flag. Setters never re-serialize eagerly: they flip dirty, and Bytes re-serializes
// lazily the next time it's called on a dirty resource. Calling Bytes on a resource that
// hasn't been touched since parsing returns the original bytes unchanged, byte for byte.
package resource
