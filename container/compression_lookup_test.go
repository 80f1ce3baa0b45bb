package container

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/deadbeef/dbpf/section"
)

func keyFor(instance uint32) section.Key {
	return section.Key{Type: 0x1C4A276C, Group: 1, Instance: instance}
}

func TestCompressionLookup_Find_Hit(t *testing.T) {
	entries := []section.CompressionDirEntry{
		{Key: keyFor(1), DecompressedSize: 100},
		{Key: keyFor(2), DecompressedSize: 200},
		{Key: keyFor(3), DecompressedSize: 300},
	}
	lookup := newCompressionLookup(entries)

	size, ok := lookup.find(keyFor(2))
	assert.True(t, ok)
	assert.EqualValues(t, 200, size)
}

func TestCompressionLookup_Find_Miss(t *testing.T) {
	lookup := newCompressionLookup([]section.CompressionDirEntry{{Key: keyFor(1), DecompressedSize: 10}})

	_, ok := lookup.find(keyFor(99))
	assert.False(t, ok)
}

func TestCompressionLookup_Find_Empty(t *testing.T) {
	lookup := newCompressionLookup(nil)

	_, ok := lookup.find(keyFor(1))
	assert.False(t, ok)
}

func TestCompressionLookup_Find_WalksForwardFromLastMatch(t *testing.T) {
	entries := []section.CompressionDirEntry{
		{Key: keyFor(1), DecompressedSize: 10},
		{Key: keyFor(2), DecompressedSize: 20},
		{Key: keyFor(3), DecompressedSize: 30},
	}
	lookup := newCompressionLookup(entries)

	_, ok := lookup.find(keyFor(2))
	assert.True(t, ok)
	assert.Equal(t, 1, lookup.last)

	// A second lookup for the next key in sequence should succeed without wrapping, since the
	// scan starts from the previous match position.
	size, ok := lookup.find(keyFor(3))
	assert.True(t, ok)
	assert.EqualValues(t, 30, size)
	assert.Equal(t, 2, lookup.last)
}

func TestCompressionLookup_Find_WrapsAround(t *testing.T) {
	entries := []section.CompressionDirEntry{
		{Key: keyFor(1), DecompressedSize: 10},
		{Key: keyFor(2), DecompressedSize: 20},
		{Key: keyFor(3), DecompressedSize: 30},
	}
	lookup := newCompressionLookup(entries)
	lookup.last = 2

	size, ok := lookup.find(keyFor(1))
	assert.True(t, ok)
	assert.EqualValues(t, 10, size)
	assert.Equal(t, 0, lookup.last)
}
