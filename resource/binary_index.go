package resource

import (
	"github.com/deadbeef/dbpf/propbag"
	"github.com/deadbeef/dbpf/section"
)

// BinaryIndex is a parsed binary-index resource (BINX): a tagged-value bag exposing a single
// typed setter over its "sortindex" property.
type BinaryIndex struct {
	Base
	Bag *propbag.TaggedBag
}

// ParseBinaryIndex parses a binary-index resource from data, which must hold the resource's
// decompressed payload.
func ParseBinaryIndex(entry section.IndexEntry, data []byte) (*BinaryIndex, error) {
	bag, err := propbag.ParseTaggedBag(data)
	if err != nil {
		return nil, err
	}

	return &BinaryIndex{Base: NewBase(entry.Key, data), Bag: bag}, nil
}

// Name returns the bag's "name" property, if present.
func (b *BinaryIndex) Name() string {
	return taggedString(b.Bag, "name")
}

// SetSortIndex sets the "sortindex" property, respecting whatever tag kind (uint or int) the
// property already carries. It reports false if the property is absent.
func (b *BinaryIndex) SetSortIndex(index int32) bool {
	old, ok := b.Bag.Get("sortindex")
	if !ok {
		return false
	}

	var value propbag.Value
	switch old.Tag {
	case propbag.TagInt:
		value = propbag.IntValue(index)
	case propbag.TagUint:
		value = propbag.UintValue(uint32(index)) //nolint:gosec
	default:
		return false
	}

	_, _, err := b.Bag.Set("sortindex", value)
	if err != nil {
		return false
	}
	b.setDirty()

	return true
}

// Bytes returns the binary-index resource's current serialized form, re-serializing if dirty.
func (b *BinaryIndex) Bytes() []byte {
	if !b.Dirty() {
		return b.cached()
	}

	return b.store(b.Bag.Bytes())
}
