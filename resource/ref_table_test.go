package resource

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/deadbeef/dbpf/section"
	"github.com/deadbeef/dbpf/typeid"
)

func TestParseRefTable_RoundTrip_WithResource(t *testing.T) {
	rt := &RefTable{
		Base:      NewBase(section.Key{Type: typeid.Texture}, nil),
		IndexType: 2,
		Entries: []RefEntry{
			{Type: 1, Group: 2, Instance: 3, Resource: 4},
			{Type: 5, Group: 6, Instance: 7, Resource: 8},
		},
	}
	rt.setDirty()
	raw := rt.Bytes()

	entry := section.IndexEntry{Key: rt.Key()}
	got, err := ParseRefTable(entry, raw)
	require.NoError(t, err)
	assert.Equal(t, rt.Entries, got.Entries)
	assert.Equal(t, uint32(2), got.IndexType)
	assert.False(t, got.Dirty())
}

func TestParseRefTable_RejectsBadSentinel(t *testing.T) {
	rt := &RefTable{Base: NewBase(section.Key{}, nil), IndexType: 1}
	rt.setDirty()
	raw := rt.Bytes()
	raw[0] ^= 0xFF

	_, err := ParseRefTable(section.IndexEntry{}, raw)
	require.Error(t, err)
}

func TestRefTable_AddSetRemoveEntry(t *testing.T) {
	rt := &RefTable{Base: NewBase(section.Key{}, nil), IndexType: 1}

	rt.AddEntry(RefEntry{Type: 1, Group: 2, Instance: 3})
	assert.True(t, rt.Dirty())
	assert.Equal(t, 1, len(rt.Entries))

	ok := rt.SetEntry(0, RefEntry{Type: 9, Group: 9, Instance: 9})
	require.True(t, ok)
	got, ok := rt.GetEntry(0)
	require.True(t, ok)
	assert.Equal(t, uint32(9), got.Type)

	assert.False(t, rt.SetEntry(5, RefEntry{}))
	assert.False(t, rt.RemoveEntry(5))

	assert.True(t, rt.RemoveEntry(0))
	assert.Equal(t, 0, len(rt.Entries))
}

func TestRefTable_PayloadSize(t *testing.T) {
	rt := &RefTable{IndexType: 2, Entries: make([]RefEntry, 3)}
	assert.Equal(t, 12+3*16, rt.PayloadSize())

	rt1 := &RefTable{IndexType: 1, Entries: make([]RefEntry, 3)}
	assert.Equal(t, 12+3*12, rt1.PayloadSize())
}
