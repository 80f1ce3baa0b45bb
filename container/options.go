package container

import (
	"github.com/deadbeef/dbpf/internal/options"
	"github.com/deadbeef/dbpf/logging"
	"github.com/deadbeef/dbpf/resource"
)

// openConfig holds the resolved state for Open, built up by OpenOption values.
type openConfig struct {
	registry  *resource.Registry
	decodeAll bool
	decodeSet map[uint32]bool
	logger    logging.Printer
}

func newOpenConfig() *openConfig {
	return &openConfig{
		registry:  resource.NewRegistry(),
		decodeSet: make(map[uint32]bool),
		logger:    logging.Discard,
	}
}

func (c *openConfig) shouldDecode(typeID uint32) bool {
	return c.decodeAll || c.decodeSet[typeID]
}

// OpenOption configures a call to Open.
type OpenOption = options.Option[*openConfig]

// WithRegistry replaces the default resource.Registry, letting a caller register factories for
// type IDs this package can't verify on its own (property sets, hair tones, reference tables,
// string tables, binary indices).
func WithRegistry(r *resource.Registry) OpenOption {
	return options.NoError(func(c *openConfig) {
		c.registry = r
	})
}

// WithDecodeTypes adds type IDs to the decode set: primary-index entries with one of these
// type IDs are handed to the registry for typed parsing. Entries outside the decode set are
// always constructed as resource.Opaque, whether or not the registry has a factory for them.
func WithDecodeTypes(ids ...uint32) OpenOption {
	return options.NoError(func(c *openConfig) {
		for _, id := range ids {
			c.decodeSet[id] = true
		}
	})
}

// WithDecodeAll puts every entry through the registry regardless of type ID, so unregistered
// types fall through to Opaque only because the registry itself has no factory for them.
func WithDecodeAll() OpenOption {
	return options.NoError(func(c *openConfig) {
		c.decodeAll = true
	})
}

// WithLogger attaches a logging.Printer that Open uses to dump the header, index-entry count,
// and compression-directory stats at debug level. The default is logging.Discard.
func WithLogger(p logging.Printer) OpenOption {
	return options.NoError(func(c *openConfig) {
		c.logger = p
	})
}

// WriteDisposition controls how Serialize treats a single resource's bytes when emitting a
// package, letting a caller override the default dirty/compress handling per entry.
type WriteDisposition int

const (
	// DispositionDefault re-serializes the resource if Dirty, then attempts compression if it
	// isn't already compressed. This is the behavior of every resource with no override.
	DispositionDefault WriteDisposition = iota
	// DispositionUncompressed forces the resource's bytes to their decompressed form before
	// emission, decoding first if the current raw bytes are QFS-compressed.
	DispositionUncompressed
	// DispositionCompressed runs qfs.Compress on the resource's current bytes without
	// modifying the resource itself. Bytes that are already compressed pass through unchanged,
	// and bytes the QFS compressibility gate refuses are emitted uncompressed.
	DispositionCompressed
	// DispositionCompressedRaw passes the resource's current raw bytes through unchanged,
	// skipping both re-serialization and the compress attempt. The caller asserts the bytes
	// are already a valid QFS frame.
	DispositionCompressedRaw
	// DispositionSkip omits the resource from the emitted package entirely.
	DispositionSkip
)
