package propbag

import (
	"github.com/deadbeef/dbpf/errs"
	"github.com/deadbeef/dbpf/stream"
)

// Tag identifies the wire type of a TaggedBag value. The values are fixed sentinels drawn from
// the source format.
type Tag uint32

const (
	TagBool   Tag = 0xCBA908E1
	TagUint   Tag = 0xEB61E4F7
	TagInt    Tag = 0x0C264712
	TagFloat  Tag = 0xABC78708
	TagString Tag = 0x0B8BEA18
)

// formatVersion is the fixed format-version word this package writes; source data in the wild
// carries whatever version it was written with, which callers may override by setting the
// TaggedBag.FormatVersion field before serializing an edited resource.
const formatVersion uint16 = 0

// Value is a single tagged-value bag entry: exactly one of its fields is meaningful, selected by
// Tag.
type Value struct {
	Tag    Tag
	Bool   bool
	Uint   uint32
	Int    int32
	Float  float32
	String string
}

func BoolValue(v bool) Value     { return Value{Tag: TagBool, Bool: v} }
func UintValue(v uint32) Value   { return Value{Tag: TagUint, Uint: v} }
func IntValue(v int32) Value     { return Value{Tag: TagInt, Int: v} }
func FloatValue(v float32) Value { return Value{Tag: TagFloat, Float: v} }
func StringValue(v string) Value { return Value{Tag: TagString, String: v} }

// TaggedBag is an ordered string-to-tagged-value property map.
type TaggedBag struct {
	TypeID        uint32
	FormatVersion uint16

	keys   []string
	values map[string]Value
}

// NewTaggedBag returns an empty TaggedBag carrying typeID as its header type-ID word.
func NewTaggedBag(typeID uint32) *TaggedBag {
	return &TaggedBag{TypeID: typeID, FormatVersion: formatVersion, values: make(map[string]Value)}
}

// Keys returns the keys in insertion order. The returned slice must not be modified.
func (b *TaggedBag) Keys() []string {
	return b.keys
}

// Len returns the number of pairs in the bag.
func (b *TaggedBag) Len() int {
	return len(b.keys)
}

// Get returns the value for key and whether it was present.
func (b *TaggedBag) Get(key string) (Value, bool) {
	v, ok := b.values[key]

	return v, ok
}

// AddPair appends (key, value) if key is not already present. It returns whether the pair was
// inserted.
func (b *TaggedBag) AddPair(key string, value Value) bool {
	if _, exists := b.values[key]; exists {
		return false
	}

	b.keys = append(b.keys, key)
	b.values[key] = value

	return true
}

// Set updates the value for an existing key. The new value's tag must equal the prior tag; a
// type change is rejected with ErrPropertyTypeMismatch. The size delta in bytes is non-zero only
// for string-kind values, since every other kind has fixed wire width.
func (b *TaggedBag) Set(key string, value Value) (found bool, sizeDelta int, err error) {
	old, ok := b.values[key]
	if !ok {
		return false, 0, nil
	}
	if old.Tag != value.Tag {
		return true, 0, errs.ErrPropertyTypeMismatch
	}

	b.values[key] = value

	if old.Tag == TagString {
		return true, len(value.String) - len(old.String), nil
	}

	return true, 0, nil
}

// Bytes serializes the bag to its wire form: a 4-byte type-ID header, a 2-byte format version, a
// 4-byte item count, then each item as a 4-byte tag, a 4-byte-length-prefixed name, and the value
// in its tag's wire form.
func (b *TaggedBag) Bytes() []byte {
	w := stream.NewWriter()
	defer w.Release()

	w.PutUint32LE(b.TypeID)
	w.PutUint16LE(b.FormatVersion)
	w.PutUint32LE(uint32(len(b.keys))) //nolint:gosec

	for _, key := range b.keys {
		v := b.values[key]
		w.PutUint32LE(uint32(v.Tag))
		w.PutString4(key)

		switch v.Tag {
		case TagBool:
			if v.Bool {
				w.PutBytes([]byte{1})
			} else {
				w.PutBytes([]byte{0})
			}
		case TagUint:
			w.PutUint32LE(v.Uint)
		case TagInt:
			w.PutUint32LE(uint32(v.Int)) //nolint:gosec
		case TagFloat:
			w.PutFloat32BE(v.Float)
		case TagString:
			w.PutString4(v.String)
		}
	}

	out := make([]byte, w.Len())
	copy(out, w.Bytes())

	return out
}

// ParseTaggedBag parses a tagged-value bag from its wire form.
func ParseTaggedBag(data []byte) (*TaggedBag, error) {
	r := stream.NewReader(data)

	typeID, err := r.Uint32LE()
	if err != nil {
		return nil, err
	}
	version, err := r.Uint16LE()
	if err != nil {
		return nil, err
	}
	count, err := r.Uint32LE()
	if err != nil {
		return nil, err
	}

	b := NewTaggedBag(typeID)
	b.FormatVersion = version

	for i := uint32(0); i < count; i++ {
		rawTag, err := r.Uint32LE()
		if err != nil {
			return nil, err
		}
		key, err := r.String4()
		if err != nil {
			return nil, err
		}

		tag := Tag(rawTag)

		var value Value
		switch tag {
		case TagBool:
			raw, err := r.Bytes(1)
			if err != nil {
				return nil, err
			}
			value = BoolValue(raw[0] != 0)

		case TagUint:
			v, err := r.Uint32LE()
			if err != nil {
				return nil, err
			}
			value = UintValue(v)

		case TagInt:
			v, err := r.Uint32LE()
			if err != nil {
				return nil, err
			}
			value = IntValue(int32(v)) //nolint:gosec

		case TagFloat:
			v, err := r.Float32BE()
			if err != nil {
				return nil, err
			}
			value = FloatValue(v)

		case TagString:
			v, err := r.String4()
			if err != nil {
				return nil, err
			}
			value = StringValue(v)

		default:
			return nil, errs.ErrPropertyTypeMismatch
		}

		b.AddPair(key, value)
	}

	return b, nil
}
