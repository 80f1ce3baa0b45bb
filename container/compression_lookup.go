package container

import "github.com/deadbeef/dbpf/section"

// compressionLookup answers "is this key in the compression directory, and if so what's its
// decompressed size" by linear search starting from the position of the last successful
// match, rather than a map. A package's compression directory is written in the same order
// as the primary index far more often than not, so walking forward from the last hit turns
// the common case into an O(1) amortized lookup without the allocation of a hash index.
type compressionLookup struct {
	entries []section.CompressionDirEntry
	last    int
}

func newCompressionLookup(entries []section.CompressionDirEntry) *compressionLookup {
	return &compressionLookup{entries: entries}
}

// find reports whether key has a compression-directory entry, returning its decompressed
// size.
func (c *compressionLookup) find(key section.Key) (decompressedSize uint32, ok bool) {
	n := len(c.entries)
	if n == 0 {
		return 0, false
	}

	for i := 0; i < n; i++ {
		idx := (c.last + i) % n
		if c.entries[idx].Key == key {
			c.last = idx

			return c.entries[idx].DecompressedSize, true
		}
	}

	return 0, false
}
