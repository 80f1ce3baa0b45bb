// Package errs defines the sentinel errors returned by the container, codec, property-bag,
// and typed-resource layers.
//
// Callers compare against these with errors.Is; wrapped errors (via fmt.Errorf("%w", ...) or
// golang.org/x/xerrors) preserve the comparison.
package errs

import "errors"

// Container and index errors.
var (
	// ErrBadMagic is returned when a header's first 4 bytes are not "DBPF".
	ErrBadMagic = errors.New("dbpf: bad magic number")
	// ErrUnsupportedVersion is returned when a header's major/minor or index major/minor
	// version falls outside the supported set.
	ErrUnsupportedVersion = errors.New("dbpf: unsupported header or index version")
	// ErrTruncatedFile is returned when a read would run past the end of the available bytes.
	ErrTruncatedFile = errors.New("dbpf: truncated file")
	// ErrIndexSizeMismatch is returned when the index byte size does not equal
	// entry_count * record_size.
	ErrIndexSizeMismatch = errors.New("dbpf: index size does not match entry count")
	// ErrDuplicateCompressionDirectory is returned when more than one compression-directory
	// resource is present in a package's primary index.
	ErrDuplicateCompressionDirectory = errors.New("dbpf: duplicate compression directory")
	// ErrSpuriousCompressionEntry is returned when a compression-directory entry has no
	// corresponding primary-index entry.
	ErrSpuriousCompressionEntry = errors.New("dbpf: compression directory entry has no index entry")
	// ErrDuplicateIndexKey is returned when two primary-index entries share the same
	// resource key.
	ErrDuplicateIndexKey = errors.New("dbpf: duplicate resource key in index")
)

// QFS codec errors.
var (
	// ErrInvalidQFSHeader is returned when the compression-ID sentinel in a frame header is
	// not 0xFB10.
	ErrInvalidQFSHeader = errors.New("qfs: invalid frame header")
	// ErrQFSLengthMismatch is returned in strict decode mode when the header-declared lengths
	// disagree with the caller-supplied sizes.
	ErrQFSLengthMismatch = errors.New("qfs: declared length does not match expected size")
	// ErrQFSTruncatedInput is returned when an opcode demands more input bytes than remain.
	ErrQFSTruncatedInput = errors.New("qfs: truncated input")
	// ErrQFSInvalidBackReference is returned when a back-reference offset exceeds the bytes
	// written so far.
	ErrQFSInvalidBackReference = errors.New("qfs: back-reference before start of output")
	// ErrQFSOverrun is returned when a copy would write past the declared output length in
	// strict mode.
	ErrQFSOverrun = errors.New("qfs: output overrun")
)

// Resource and property-bag errors.
var (
	// ErrResourceTypeMismatch is returned when a typed resource's block-ID or magic check
	// fails during parsing.
	ErrResourceTypeMismatch = errors.New("dbpf: resource type mismatch")
	// ErrPropertyNotFound is returned when a property lookup misses.
	ErrPropertyNotFound = errors.New("dbpf: property not found")
	// ErrPropertyTypeMismatch is returned when a tagged-value set call's new value tag
	// disagrees with the existing value's tag.
	ErrPropertyTypeMismatch = errors.New("dbpf: property type mismatch")
)

// I/O and resource-exhaustion errors.
var (
	// ErrIOFailure wraps an underlying read/write/close callback failure.
	ErrIOFailure = errors.New("dbpf: I/O failure")
	// ErrAllocationFailure is returned when a length-prefixed field declares a size that
	// would require an unreasonable allocation.
	ErrAllocationFailure = errors.New("dbpf: allocation failure")
)
