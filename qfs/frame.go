package qfs

import (
	"github.com/deadbeef/dbpf/endian"
	"github.com/deadbeef/dbpf/errs"
)

// FrameHeader is the 9-byte header opening every QFS-framed buffer.
type FrameHeader struct {
	// CompressedLength is the total frame size, header included.
	CompressedLength uint32
	// DecompressedLength is the size of the buffer the frame expands to. It fits in 3 bytes.
	DecompressedLength uint32
}

// Bytes encodes the header in its 9-byte on-disk form.
func (h FrameHeader) Bytes() []byte {
	b := make([]byte, FrameHeaderSize)
	endian.GetLittleEndianEngine().PutUint32(b[0:4], h.CompressedLength)
	endian.GetLittleEndianEngine().PutUint16(b[4:6], CompressionIDSentinel)
	putUint24BE(b[6:9], h.DecompressedLength)

	return b
}

// ParseFrameHeader parses the 9-byte header opening a QFS frame.
func ParseFrameHeader(data []byte) (FrameHeader, error) {
	if len(data) < FrameHeaderSize {
		return FrameHeader{}, errs.ErrQFSTruncatedInput
	}

	id := endian.GetLittleEndianEngine().Uint16(data[4:6])
	if id != CompressionIDSentinel {
		return FrameHeader{}, errs.ErrInvalidQFSHeader
	}

	return FrameHeader{
		CompressedLength:   endian.GetLittleEndianEngine().Uint32(data[0:4]),
		DecompressedLength: uint24BE(data[6:9]),
	}, nil
}

func uint24BE(b []byte) uint32 {
	return uint32(b[0])<<16 | uint32(b[1])<<8 | uint32(b[2])
}

func putUint24BE(b []byte, v uint32) {
	b[0] = byte(v >> 16)
	b[1] = byte(v >> 8)
	b[2] = byte(v)
}
