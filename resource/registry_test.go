package resource

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/deadbeef/dbpf/propbag"
	"github.com/deadbeef/dbpf/section"
	"github.com/deadbeef/dbpf/stream"
	"github.com/deadbeef/dbpf/typeid"
)

func TestRegistry_DecodesMaterial(t *testing.T) {
	r := NewRegistry()

	w := stream.NewWriter()
	defer w.Release()
	link := LinkHeader{IndexTypeIDs: []uint32{typeid.Material}}
	link.Bytes(w)
	require.NoError(t, w.PutString1(materialBlockName))
	w.PutUint32LE(typeid.Material)
	w.PutUint32LE(8)
	require.NoError(t, w.PutScopedResourceName("foo"))
	require.NoError(t, w.PutString1(""))
	require.NoError(t, w.PutString1(""))
	w.PutUint32LE(0)
	raw := make([]byte, w.Len())
	copy(raw, w.Bytes())

	entry := section.IndexEntry{Key: section.Key{Type: typeid.Material}}
	res, err := r.Decode(entry, raw)
	require.NoError(t, err)
	_, ok := res.(*Material)
	assert.True(t, ok)
}

func TestRegistry_FallsThroughToOpaque(t *testing.T) {
	r := NewRegistry()

	entry := section.IndexEntry{Key: section.Key{Type: 0x0BADF00D}}
	res, err := r.Decode(entry, []byte{1, 2, 3})
	require.NoError(t, err)

	op, ok := res.(*Opaque)
	require.True(t, ok)
	assert.Equal(t, []byte{1, 2, 3}, op.Bytes())
}

func TestRegistry_RegisterCustomFactory(t *testing.T) {
	r := NewRegistry()

	const gzpsType = 0xEBCF3E27
	r.Register(gzpsType, "GZPS", func(entry section.IndexEntry, data []byte) (Resource, error) {
		return ParsePropertySet(entry, data)
	})

	assert.Equal(t, "GZPS", r.Name(gzpsType))

	bag := propbag.NewTaggedBag(gzpsType).Bytes()
	entry := section.IndexEntry{Key: section.Key{Type: gzpsType}}

	res, err := r.Decode(entry, bag)
	require.NoError(t, err)
	_, ok := res.(*PropertySet)
	assert.True(t, ok)
}
