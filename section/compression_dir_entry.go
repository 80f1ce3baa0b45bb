package section

import (
	"github.com/deadbeef/dbpf/endian"
	"github.com/deadbeef/dbpf/errs"
)

// CompressionDirEntry is a single record of the compression directory: a resource key plus the
// decompressed size of its payload. Presence of an entry for a key asserts that the matching
// primary-index entry's payload is QFS-compressed on disk.
type CompressionDirEntry struct {
	Key Key
	// DecompressedSize is the size, in bytes, of the payload after QFS decompression.
	DecompressedSize uint32
}

// CompressionDirEntrySize returns the on-disk record size for the given logical index minor
// version.
func CompressionDirEntrySize(minor int) int {
	return compressionDirEntrySize(minor)
}

// Bytes serializes e to its on-disk form for the given index minor version.
func (e CompressionDirEntry) Bytes(minor int) []byte {
	engine := endian.GetLittleEndianEngine()
	b := make([]byte, compressionDirEntrySize(minor))

	engine.PutUint32(b[0:4], e.Key.Type)
	engine.PutUint32(b[4:8], e.Key.Group)
	engine.PutUint32(b[8:12], e.Key.Instance)

	off := 12
	if minor == MinorV1 {
		engine.PutUint32(b[12:16], e.Key.Resource)
		off = 16
	}

	engine.PutUint32(b[off:off+4], e.DecompressedSize)

	return b
}

// ParseCompressionDirEntry parses a single CompressionDirEntry from data, which must be at
// least CompressionDirEntrySize(minor) bytes.
func ParseCompressionDirEntry(data []byte, minor int) (CompressionDirEntry, error) {
	size := compressionDirEntrySize(minor)
	if len(data) < size {
		return CompressionDirEntry{}, errs.ErrTruncatedFile
	}

	engine := endian.GetLittleEndianEngine()
	var e CompressionDirEntry

	e.Key.Type = engine.Uint32(data[0:4])
	e.Key.Group = engine.Uint32(data[4:8])
	e.Key.Instance = engine.Uint32(data[8:12])

	off := 12
	if minor == MinorV1 {
		e.Key.Resource = engine.Uint32(data[12:16])
		off = 16
	}

	e.DecompressedSize = engine.Uint32(data[off : off+4])

	return e, nil
}
