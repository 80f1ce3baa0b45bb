package exportbundle

import "fmt"

// Kind identifies a general-purpose compression algorithm available to an export bundle.
type Kind string

const (
	// KindNone disables compression entirely.
	KindNone Kind = "none"
	// KindZstd selects Zstandard, the best-ratio option.
	KindZstd Kind = "zstd"
	// KindS2 selects S2, a Snappy-family codec balancing ratio and speed.
	KindS2 Kind = "s2"
	// KindLZ4 selects LZ4, optimized for fast decompression.
	KindLZ4 Kind = "lz4"
)

// String returns the CLI flag spelling of the kind.
func (k Kind) String() string {
	return string(k)
}

// Compressor compresses a single buffer in one shot.
//
// Bundles are built once and read once; there is no streaming requirement, so the interface
// stays whole-buffer rather than io.Writer-shaped.
type Compressor interface {
	// Compress compresses data and returns a newly allocated result. The input is not
	// modified.
	Compress(data []byte) ([]byte, error)
}

// Decompressor reverses a Compressor.
type Decompressor interface {
	// Decompress decompresses data and returns a newly allocated result. The input is not
	// modified.
	Decompress(data []byte) ([]byte, error)
}

// Codec combines both compression and decompression.
type Codec interface {
	Compressor
	Decompressor
}

// CreateCodec is a factory that builds a fresh Codec for the given kind.
func CreateCodec(kind Kind, target string) (Codec, error) {
	switch kind {
	case KindNone:
		return NewNoOpCompressor(), nil
	case KindZstd:
		return NewZstdCompressor(), nil
	case KindS2:
		return NewS2Compressor(), nil
	case KindLZ4:
		return NewLZ4Compressor(), nil
	default:
		return nil, fmt.Errorf("invalid %s codec: %q", target, kind)
	}
}

var builtinCodecs = map[Kind]Codec{
	KindNone: NewNoOpCompressor(),
	KindZstd: NewZstdCompressor(),
	KindS2:   NewS2Compressor(),
	KindLZ4:  NewLZ4Compressor(),
}

// GetCodec retrieves a shared built-in Codec for kind, avoiding a fresh allocation for the
// common stateless codecs.
func GetCodec(kind Kind) (Codec, error) {
	if codec, ok := builtinCodecs[kind]; ok {
		return codec, nil
	}

	return nil, fmt.Errorf("unsupported codec: %q", kind)
}
