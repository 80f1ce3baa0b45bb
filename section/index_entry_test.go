package section

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIndexEntry_BytesParse_RoundTrip_MinorV0(t *testing.T) {
	e := IndexEntry{
		Key:    Key{Type: 0x1c4a276c, Group: 0x7, Instance: 0xdeadbeef},
		Offset: 1024,
		Length: 256,
	}

	data := e.Bytes(MinorV0)
	require.Len(t, data, 20)

	got, err := ParseIndexEntry(data, MinorV0)
	require.NoError(t, err)
	assert.Equal(t, e, got)
}

func TestIndexEntry_BytesParse_RoundTrip_MinorV1(t *testing.T) {
	e := IndexEntry{
		Key:    Key{Type: 0x1c4a276c, Group: 0x7, Instance: 0xdeadbeef, Resource: 0x42},
		Offset: 4096,
		Length: 512,
	}

	data := e.Bytes(MinorV1)
	require.Len(t, data, 24)

	got, err := ParseIndexEntry(data, MinorV1)
	require.NoError(t, err)
	assert.Equal(t, e, got)
}

func TestIndexEntry_MinorV0_DropsResourceField(t *testing.T) {
	e := IndexEntry{Key: Key{Type: 1, Group: 2, Instance: 3, Resource: 0xff}}

	got, err := ParseIndexEntry(e.Bytes(MinorV0), MinorV0)
	require.NoError(t, err)
	assert.Zero(t, got.Key.Resource)
}

func TestIndexEntrySize(t *testing.T) {
	assert.Equal(t, 20, IndexEntrySize(MinorV0))
	assert.Equal(t, 24, IndexEntrySize(MinorV1))
}
