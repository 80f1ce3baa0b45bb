package stream

import (
	"math"

	"github.com/deadbeef/dbpf/endian"
	"github.com/deadbeef/dbpf/errs"
	"github.com/deadbeef/dbpf/internal/pool"
)

// ScopedResourceNameSignature is the literal signature string that opens every "scoped
// resource name" record.
const ScopedResourceNameSignature = "cSGResource"

// Writer writes byte-stream primitives to a growable, pooled output buffer.
type Writer struct {
	buf *pool.ByteBuffer
}

// NewWriter returns a Writer backed by a pooled buffer.
func NewWriter() *Writer {
	return &Writer{buf: pool.GetBlobBuffer()}
}

// Bytes returns the bytes written so far. The returned slice shares the writer's internal
// buffer and is invalidated by Release.
func (w *Writer) Bytes() []byte {
	return w.buf.Bytes()
}

// Len returns the number of bytes written so far.
func (w *Writer) Len() int {
	return w.buf.Len()
}

// Release returns the internal buffer to its pool. The writer must not be used afterward.
func (w *Writer) Release() {
	pool.PutBlobBuffer(w.buf)
	w.buf = nil
}

// PutBytes appends raw bytes.
func (w *Writer) PutBytes(b []byte) {
	w.buf.MustWrite(b)
}

// PutUint32LE appends an unsigned 32-bit little-endian integer.
func (w *Writer) PutUint32LE(v uint32) {
	var b [4]byte
	endian.GetLittleEndianEngine().PutUint32(b[:], v)
	w.buf.MustWrite(b[:])
}

// PutUint32BE appends an unsigned 32-bit big-endian integer.
func (w *Writer) PutUint32BE(v uint32) {
	var b [4]byte
	endian.GetBigEndianEngine().PutUint32(b[:], v)
	w.buf.MustWrite(b[:])
}

// PutUint16LE appends an unsigned 16-bit little-endian integer.
func (w *Writer) PutUint16LE(v uint16) {
	var b [2]byte
	endian.GetLittleEndianEngine().PutUint16(b[:], v)
	w.buf.MustWrite(b[:])
}

// PutFloat32LE appends an IEEE-754 single-precision float in little-endian byte order.
func (w *Writer) PutFloat32LE(v float32) {
	w.PutUint32LE(math.Float32bits(v))
}

// PutFloat32BE appends an IEEE-754 single-precision float in big-endian byte order.
func (w *Writer) PutFloat32BE(v float32) {
	w.PutUint32BE(math.Float32bits(v))
}

// PutString1 appends a string with a 1-byte length prefix. Returns an error if the string is
// longer than 255 bytes.
func (w *Writer) PutString1(s string) error {
	if len(s) > math.MaxUint8 {
		return errs.ErrAllocationFailure
	}

	w.buf.MustWrite([]byte{byte(len(s))})
	w.buf.MustWrite([]byte(s))

	return nil
}

// PutString4 appends a string with a 4-byte little-endian length prefix.
func (w *Writer) PutString4(s string) {
	w.PutUint32LE(uint32(len(s))) //nolint:gosec
	w.buf.MustWrite([]byte(s))
}

// PutCString appends a null-terminated string. Returns an error if the string is longer than
// maxCStringLength bytes or contains an embedded NUL.
func (w *Writer) PutCString(s string) error {
	if len(s) >= maxCStringLength {
		return errs.ErrAllocationFailure
	}
	for i := 0; i < len(s); i++ {
		if s[i] == 0 {
			return errs.ErrAllocationFailure
		}
	}

	w.buf.MustWrite([]byte(s))
	w.buf.MustWrite([]byte{0})

	return nil
}

// PutScopedResourceName appends a "scoped resource name" record wrapping name.
func (w *Writer) PutScopedResourceName(name string) error {
	if err := w.PutString1(ScopedResourceNameSignature); err != nil {
		return err
	}
	w.PutUint32LE(0)
	w.PutUint32LE(2)

	return w.PutString1(name)
}
