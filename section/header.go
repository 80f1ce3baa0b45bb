package section

import (
	"github.com/deadbeef/dbpf/endian"
	"github.com/deadbeef/dbpf/errs"
)

// Header is the fixed 96-byte section at the start of every DBPF package file.
//
// VersionMinor and IndexMinor are always logical values in memory. On disk both are stored one
// greater than their logical value; Bytes applies the +1 and Parse reverses it, so every other
// part of the system works with the logical versions only.
type Header struct {
	// VersionMajor is the header major version; must be 1.
	VersionMajor uint32
	// VersionMinor is the header minor version; one of {0, 1, 2}.
	VersionMinor uint32

	// Reserved1 holds 12 bytes preserved verbatim across a read/write round-trip.
	Reserved1 [12]byte

	// CreatedAt and ModifiedAt are opaque timestamps preserved verbatim; the source format
	// leaves their encoding undocumented and no component interprets them.
	CreatedAt  uint32
	ModifiedAt uint32

	// IndexMajor is the primary index major version; must be 7.
	IndexMajor uint32

	// EntryCount is the number of records in the primary index.
	EntryCount uint32
	// IndexOffset is the byte offset of the primary index.
	IndexOffset uint32
	// IndexSize is the byte size of the primary index; must equal
	// EntryCount * indexEntrySize(IndexMinor).
	IndexSize uint32

	// HoleEntryCount is the number of records in the hole table.
	HoleEntryCount uint32
	// HoleOffset is the byte offset of the hole table.
	HoleOffset uint32
	// HoleSize is the byte size of the hole table.
	HoleSize uint32

	// IndexMinor is the logical primary index minor version (0 or 1), selecting which of the
	// two index and compression-directory record layouts is in use.
	IndexMinor uint32

	// OpaqueTrailing is a single reserved word preserved verbatim.
	OpaqueTrailing uint32
	// Reserved2 holds the final 28 bytes of the header, preserved verbatim.
	Reserved2 [28]byte
}

// NewHeader returns a zeroed header with the fixed version fields already set, ready to have
// its index fields patched in once the primary index has been laid out.
func NewHeader(indexMinor uint32) Header {
	return Header{
		VersionMajor: VersionMajor,
		VersionMinor: 1, // logical 1 ("1.1", the common TS2 on-disk version)
		IndexMajor:   IndexVersionMajor,
		IndexMinor:   indexMinor,
	}
}

// Parse decodes a Header from exactly HeaderSize bytes.
func (h *Header) Parse(data []byte) error {
	if len(data) != HeaderSize {
		return errs.ErrTruncatedFile
	}

	if string(data[0:4]) != MagicNumber {
		return errs.ErrBadMagic
	}

	engine := endian.GetLittleEndianEngine()

	h.VersionMajor = engine.Uint32(data[4:8])
	storedVersionMinor := engine.Uint32(data[8:12])
	if storedVersionMinor == 0 {
		return errs.ErrUnsupportedVersion
	}
	h.VersionMinor = storedVersionMinor - 1
	copy(h.Reserved1[:], data[12:24])
	h.CreatedAt = engine.Uint32(data[24:28])
	h.ModifiedAt = engine.Uint32(data[28:32])
	h.IndexMajor = engine.Uint32(data[32:36])
	h.EntryCount = engine.Uint32(data[36:40])
	h.IndexOffset = engine.Uint32(data[40:44])
	h.IndexSize = engine.Uint32(data[44:48])
	h.HoleEntryCount = engine.Uint32(data[48:52])
	h.HoleOffset = engine.Uint32(data[52:56])
	h.HoleSize = engine.Uint32(data[56:60])

	storedMinor := engine.Uint32(data[60:64])
	if storedMinor == 0 {
		return errs.ErrUnsupportedVersion
	}
	h.IndexMinor = storedMinor - 1

	h.OpaqueTrailing = engine.Uint32(data[64:68])
	copy(h.Reserved2[:], data[68:96])

	if h.VersionMajor != VersionMajor || h.VersionMinor > 2 {
		return errs.ErrUnsupportedVersion
	}
	if h.IndexMajor != IndexVersionMajor || h.IndexMinor > MinorV1 {
		return errs.ErrUnsupportedVersion
	}

	return nil
}

// Bytes serializes the header to HeaderSize bytes.
func (h *Header) Bytes() []byte {
	b := make([]byte, HeaderSize)
	engine := endian.GetLittleEndianEngine()

	copy(b[0:4], MagicNumber)
	engine.PutUint32(b[4:8], h.VersionMajor)
	engine.PutUint32(b[8:12], h.VersionMinor+1)
	copy(b[12:24], h.Reserved1[:])
	engine.PutUint32(b[24:28], h.CreatedAt)
	engine.PutUint32(b[28:32], h.ModifiedAt)
	engine.PutUint32(b[32:36], h.IndexMajor)
	engine.PutUint32(b[36:40], h.EntryCount)
	engine.PutUint32(b[40:44], h.IndexOffset)
	engine.PutUint32(b[44:48], h.IndexSize)
	engine.PutUint32(b[48:52], h.HoleEntryCount)
	engine.PutUint32(b[52:56], h.HoleOffset)
	engine.PutUint32(b[56:60], h.HoleSize)
	engine.PutUint32(b[60:64], h.IndexMinor+1)
	engine.PutUint32(b[64:68], h.OpaqueTrailing)
	copy(b[68:96], h.Reserved2[:])

	return b
}

// ParseHeader parses a Header from data, which must be at least HeaderSize bytes.
func ParseHeader(data []byte) (Header, error) {
	if len(data) < HeaderSize {
		return Header{}, errs.ErrTruncatedFile
	}

	var h Header
	if err := h.Parse(data[:HeaderSize]); err != nil {
		return Header{}, err
	}

	return h, nil
}
