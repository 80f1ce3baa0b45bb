package resource

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/deadbeef/dbpf/propbag"
	"github.com/deadbeef/dbpf/section"
)

func TestBinaryIndex_SetSortIndex_RespectsExistingTag(t *testing.T) {
	bag := propbag.NewTaggedBag(3)
	bag.AddPair("sortindex", propbag.IntValue(1))

	b := &BinaryIndex{Base: NewBase(section.Key{}, bag.Bytes()), Bag: bag}

	assert.True(t, b.SetSortIndex(42))
	v, ok := b.Bag.Get("sortindex")
	require.True(t, ok)
	assert.Equal(t, propbag.TagInt, v.Tag)
	assert.Equal(t, int32(42), v.Int)
}

func TestBinaryIndex_SetSortIndex_MissingProperty(t *testing.T) {
	bag := propbag.NewTaggedBag(3)
	b := &BinaryIndex{Base: NewBase(section.Key{}, bag.Bytes()), Bag: bag}

	assert.False(t, b.SetSortIndex(1))
	assert.False(t, b.Dirty())
}

func TestBinaryIndex_Bytes_RoundTrip(t *testing.T) {
	bag := propbag.NewTaggedBag(3)
	bag.AddPair("sortindex", propbag.UintValue(0))
	b := &BinaryIndex{Base: NewBase(section.Key{}, bag.Bytes()), Bag: bag}

	b.SetSortIndex(7)
	out := b.Bytes()
	assert.False(t, b.Dirty())

	got, err := propbag.ParseTaggedBag(out)
	require.NoError(t, err)
	v, ok := got.Get("sortindex")
	require.True(t, ok)
	assert.Equal(t, propbag.TagUint, v.Tag)
	assert.Equal(t, uint32(7), v.Uint)
}
