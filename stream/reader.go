package stream

import (
	"math"

	"github.com/deadbeef/dbpf/endian"
	"github.com/deadbeef/dbpf/errs"
)

// maxCStringLength bounds a null-terminated string read; the source format never emits
// strings anywhere near this long, so a missing terminator within the bound is corrupt data
// rather than a legitimately long string.
const maxCStringLength = 1024

// Reader reads byte-stream primitives from an in-memory buffer, advancing a cursor as it
// goes.
type Reader struct {
	data []byte
	pos  int
}

// NewReader returns a Reader positioned at the start of data.
func NewReader(data []byte) *Reader {
	return &Reader{data: data}
}

// Pos returns the current cursor position.
func (r *Reader) Pos() int {
	return r.pos
}

// Remaining returns the number of unread bytes.
func (r *Reader) Remaining() int {
	return len(r.data) - r.pos
}

// Seek repositions the cursor to an absolute offset.
func (r *Reader) Seek(pos int) {
	r.pos = pos
}

// Bytes reads and returns the next n bytes without copying.
func (r *Reader) Bytes(n int) ([]byte, error) {
	if n < 0 || r.Remaining() < n {
		return nil, errs.ErrTruncatedFile
	}

	b := r.data[r.pos : r.pos+n]
	r.pos += n

	return b, nil
}

// Uint32LE reads an unsigned 32-bit little-endian integer.
func (r *Reader) Uint32LE() (uint32, error) {
	b, err := r.Bytes(4)
	if err != nil {
		return 0, err
	}

	return endian.GetLittleEndianEngine().Uint32(b), nil
}

// Uint32BE reads an unsigned 32-bit big-endian integer. No parser in this module calls it;
// the QFS frame header's 3-byte big-endian length is decoded inside package qfs.
func (r *Reader) Uint32BE() (uint32, error) {
	b, err := r.Bytes(4)
	if err != nil {
		return 0, err
	}

	return endian.GetBigEndianEngine().Uint32(b), nil
}

// Uint16LE reads an unsigned 16-bit little-endian integer.
func (r *Reader) Uint16LE() (uint16, error) {
	b, err := r.Bytes(2)
	if err != nil {
		return 0, err
	}

	return endian.GetLittleEndianEngine().Uint16(b), nil
}

// Float32LE reads an IEEE-754 single-precision float in little-endian byte order.
func (r *Reader) Float32LE() (float32, error) {
	b, err := r.Bytes(4)
	if err != nil {
		return 0, err
	}

	return math.Float32frombits(endian.GetLittleEndianEngine().Uint32(b)), nil
}

// Float32BE reads an IEEE-754 single-precision float in big-endian byte order. Used by the
// tagged-value property bag, which stores floats big-endian while everything else in the
// bag is little-endian.
func (r *Reader) Float32BE() (float32, error) {
	b, err := r.Bytes(4)
	if err != nil {
		return 0, err
	}

	return math.Float32frombits(endian.GetBigEndianEngine().Uint32(b)), nil
}

// String1 reads a string with a 1-byte length prefix.
func (r *Reader) String1() (string, error) {
	n, err := r.Bytes(1)
	if err != nil {
		return "", err
	}

	b, err := r.Bytes(int(n[0]))
	if err != nil {
		return "", err
	}

	return string(b), nil
}

// String4 reads a string with a 4-byte little-endian length prefix.
func (r *Reader) String4() (string, error) {
	n, err := r.Uint32LE()
	if err != nil {
		return "", err
	}

	b, err := r.Bytes(int(n))
	if err != nil {
		return "", err
	}

	return string(b), nil
}

// CString reads a null-terminated string, bounded at maxCStringLength bytes.
func (r *Reader) CString() (string, error) {
	limit := r.Remaining()
	if limit > maxCStringLength {
		limit = maxCStringLength
	}

	for i := 0; i < limit; i++ {
		if r.data[r.pos+i] == 0 {
			b := r.data[r.pos : r.pos+i]
			r.pos += i + 1

			return string(b), nil
		}
	}

	return "", errs.ErrTruncatedFile
}

// ScopedResourceName reads the "scoped resource name" record: the literal signature
// "cSGResource" (1-byte length-prefixed), two fixed little-endian words (0 and 2), and a
// 1-byte length-prefixed user string. It returns the user string.
func (r *Reader) ScopedResourceName() (string, error) {
	sig, err := r.String1()
	if err != nil {
		return "", err
	}
	if sig != ScopedResourceNameSignature {
		return "", errs.ErrResourceTypeMismatch
	}

	a, err := r.Uint32LE()
	if err != nil {
		return "", err
	}
	b, err := r.Uint32LE()
	if err != nil {
		return "", err
	}
	if a != 0 || b != 2 {
		return "", errs.ErrResourceTypeMismatch
	}

	return r.String1()
}
