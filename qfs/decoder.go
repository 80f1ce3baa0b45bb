package qfs

import "github.com/deadbeef/dbpf/errs"

// DecodeStrict fully decodes a QFS frame. compressedSize and decompressedSize are the sizes the
// caller already knows (from the primary index and compression directory respectively); the
// frame header must declare exactly these, and the decode must produce exactly decompressedSize
// bytes of output. Pass -1 for either size to skip its check.
func DecodeStrict(frame []byte, compressedSize, decompressedSize int) ([]byte, error) {
	hdr, err := ParseFrameHeader(frame)
	if err != nil {
		return nil, err
	}
	if compressedSize >= 0 && int(hdr.CompressedLength) != compressedSize {
		return nil, errs.ErrQFSLengthMismatch
	}
	if decompressedSize >= 0 && int(hdr.DecompressedLength) != decompressedSize {
		return nil, errs.ErrQFSLengthMismatch
	}

	out, _, err := decodeOpcodes(frame[FrameHeaderSize:], int(hdr.DecompressedLength), true)
	if err != nil {
		return nil, err
	}
	if len(out) != int(hdr.DecompressedLength) {
		return nil, errs.ErrQFSTruncatedInput
	}

	return out, nil
}

// DecodeTruncate decodes at most the first n bytes of a frame's output and stops, without
// requiring the frame to have declared a matching decompressed length. Used for header-sniffing
// a resource without paying for a full decode.
func DecodeTruncate(frame []byte, n int) ([]byte, error) {
	hdr, err := ParseFrameHeader(frame)
	if err != nil {
		return nil, err
	}
	if n > int(hdr.DecompressedLength) {
		n = int(hdr.DecompressedLength)
	}

	out, _, err := decodeOpcodes(frame[FrameHeaderSize:], n, false)
	if err != nil {
		return nil, err
	}

	return out, nil
}

// decodeOpcodes runs the opcode state machine over src, writing at most limit bytes of output.
// In strict mode, an emit that would push the output past limit fails with ErrQFSOverrun; in
// non-strict (truncate) mode the output is silently capped at limit instead, since truncate mode
// deliberately asks for fewer bytes than the frame declares.
func decodeOpcodes(src []byte, limit int, strict bool) (out []byte, terminated bool, err error) {
	out = make([]byte, 0, limit)
	pos := 0

	for pos < len(src) {
		if len(out) >= limit {
			break
		}

		b0 := src[pos]

		switch {
		case b0 < 0x80: // 0x00..0x7F: 1 extra byte
			if pos+1 >= len(src) {
				return nil, false, errs.ErrQFSTruncatedInput
			}
			b1 := src[pos+1]
			lit := int(b0 & 0x03)
			copyLen := int((b0>>2)&0x07) + 3
			offset := (int(b0&0x60) << 3) + int(b1) + 1
			pos += 2

			if out, err = emitLiteral(out, src, &pos, lit, limit, strict); err != nil {
				return nil, false, err
			}
			if out, err = emitCopy(out, offset, copyLen, limit, strict); err != nil {
				return nil, false, err
			}

		case b0 < 0xC0: // 0x80..0xBF: 2 extra bytes
			if pos+2 >= len(src) {
				return nil, false, errs.ErrQFSTruncatedInput
			}
			b1, b2 := src[pos+1], src[pos+2]
			lit := int((b1 >> 6) & 0x03)
			copyLen := int(b0&0x3F) + 4
			offset := (int(b1&0x3F) << 8) + int(b2) + 1
			pos += 3

			if out, err = emitLiteral(out, src, &pos, lit, limit, strict); err != nil {
				return nil, false, err
			}
			if out, err = emitCopy(out, offset, copyLen, limit, strict); err != nil {
				return nil, false, err
			}

		case b0 < 0xE0: // 0xC0..0xDF: 3 extra bytes
			if pos+3 >= len(src) {
				return nil, false, errs.ErrQFSTruncatedInput
			}
			b1, b2, b3 := src[pos+1], src[pos+2], src[pos+3]
			lit := int(b0 & 0x03)
			copyLen := (int(b0&0x0C) << 6) + int(b3) + 5
			offset := (int(b0&0x10) << 12) + (int(b1) << 8) + int(b2) + 1
			pos += 4

			if out, err = emitLiteral(out, src, &pos, lit, limit, strict); err != nil {
				return nil, false, err
			}
			if out, err = emitCopy(out, offset, copyLen, limit, strict); err != nil {
				return nil, false, err
			}

		case b0 < 0xFC: // 0xE0..0xFB: pure literal run, 0 extra bytes
			lit := int(b0-0xDF) * 4
			pos++

			if out, err = emitLiteral(out, src, &pos, lit, limit, strict); err != nil {
				return nil, false, err
			}

		default: // 0xFC..0xFF: terminator family
			lit := int(b0 - 0xFC)
			pos++

			if out, err = emitLiteral(out, src, &pos, lit, limit, strict); err != nil {
				return nil, false, err
			}

			if !strict && len(out) > limit {
				out = out[:limit]
			}

			return out, true, nil
		}
	}

	if !strict && len(out) > limit {
		out = out[:limit]
	}

	return out, false, nil
}

func emitLiteral(out, src []byte, pos *int, n, limit int, strict bool) ([]byte, error) {
	if n == 0 {
		return out, nil
	}
	if *pos+n > len(src) {
		return nil, errs.ErrQFSTruncatedInput
	}
	if strict && len(out)+n > limit {
		return nil, errs.ErrQFSOverrun
	}

	out = append(out, src[*pos:*pos+n]...)
	*pos += n

	return out, nil
}

func emitCopy(out []byte, offset, n, limit int, strict bool) ([]byte, error) {
	if n == 0 {
		return out, nil
	}
	if offset > len(out) {
		return nil, errs.ErrQFSInvalidBackReference
	}
	if strict && len(out)+n > limit {
		return nil, errs.ErrQFSOverrun
	}

	start := len(out) - offset
	for i := 0; i < n; i++ {
		out = append(out, out[start+i])
	}

	return out, nil
}
