package section

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCompressionDirEntry_BytesParse_RoundTrip_MinorV0(t *testing.T) {
	e := CompressionDirEntry{
		Key:              Key{Type: 0x1c4a276c, Group: 0x7, Instance: 0xdeadbeef},
		DecompressedSize: 65536,
	}

	data := e.Bytes(MinorV0)
	require.Len(t, data, 16)

	got, err := ParseCompressionDirEntry(data, MinorV0)
	require.NoError(t, err)
	assert.Equal(t, e, got)
}

func TestCompressionDirEntry_BytesParse_RoundTrip_MinorV1(t *testing.T) {
	e := CompressionDirEntry{
		Key:              Key{Type: 0x1c4a276c, Group: 0x7, Instance: 0xdeadbeef, Resource: 0x99},
		DecompressedSize: 1 << 20,
	}

	data := e.Bytes(MinorV1)
	require.Len(t, data, 20)

	got, err := ParseCompressionDirEntry(data, MinorV1)
	require.NoError(t, err)
	assert.Equal(t, e, got)
}

func TestCompressionDirEntrySize(t *testing.T) {
	assert.Equal(t, 16, CompressionDirEntrySize(MinorV0))
	assert.Equal(t, 20, CompressionDirEntrySize(MinorV1))
}
