package section

import (
	"github.com/deadbeef/dbpf/endian"
	"github.com/deadbeef/dbpf/errs"
)

// IndexEntry is a single record of the primary index: a resource key plus its location and
// length within the package file. The on-disk size is 20 bytes for a minor-version-0 package
// (no Resource field) or 24 bytes for minor-version-1 (Resource field present).
type IndexEntry struct {
	Key Key
	// Offset is the byte offset of the payload within the file.
	Offset uint32
	// Length is the byte length of the payload as stored on disk (the compressed length, if
	// the resource is QFS-compressed).
	Length uint32
}

// IndexEntrySize returns the on-disk record size for the given logical index minor version.
func IndexEntrySize(minor int) int {
	return indexEntrySize(minor)
}

// Bytes serializes e to its on-disk form for the given index minor version.
func (e IndexEntry) Bytes(minor int) []byte {
	engine := endian.GetLittleEndianEngine()
	b := make([]byte, indexEntrySize(minor))

	engine.PutUint32(b[0:4], e.Key.Type)
	engine.PutUint32(b[4:8], e.Key.Group)
	engine.PutUint32(b[8:12], e.Key.Instance)

	off := 12
	if minor == MinorV1 {
		engine.PutUint32(b[12:16], e.Key.Resource)
		off = 16
	}

	engine.PutUint32(b[off:off+4], e.Offset)
	engine.PutUint32(b[off+4:off+8], e.Length)

	return b
}

// ParseIndexEntry parses a single IndexEntry from data, which must be at least
// IndexEntrySize(minor) bytes.
func ParseIndexEntry(data []byte, minor int) (IndexEntry, error) {
	size := indexEntrySize(minor)
	if len(data) < size {
		return IndexEntry{}, errs.ErrTruncatedFile
	}

	engine := endian.GetLittleEndianEngine()
	var e IndexEntry

	e.Key.Type = engine.Uint32(data[0:4])
	e.Key.Group = engine.Uint32(data[4:8])
	e.Key.Instance = engine.Uint32(data[8:12])

	off := 12
	if minor == MinorV1 {
		e.Key.Resource = engine.Uint32(data[12:16])
		off = 16
	}

	e.Offset = engine.Uint32(data[off : off+4])
	e.Length = engine.Uint32(data[off+4 : off+8])

	return e, nil
}
