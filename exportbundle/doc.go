// Package exportbundle builds compressed tar bundles of decoded DBPF resources for offline
// inspection, diffing, and archival.
//
// A package file's resources are opaque binary blobs on disk until a typed resource decodes
// them. The "dbpf export" CLI command walks a decoded container and writes one ".bin" file per
// resource into a tar stream, holding that resource's decompressed bytes as a raw byte dump;
// no resource kind is converted to JSON or any other structured form. The tar stream is then
// wrapped with a selectable general-purpose codec, independent of the QFS codec used inside
// the package file itself.
//
// This is deliberately decoupled from the DBPF wire format: QFS is the only compression a
// package file may legally contain, but an export bundle is an auxiliary artifact free to use
// whichever general-purpose codec suits its consumer — fast round-trip for CI artifacts, best
// ratio for long-term archival.
//
// # Supported algorithms
//
//   - None: fastest, largest bundle.
//   - Zstd: best ratio, moderate speed; the recommended default for archival bundles.
//   - S2: balanced ratio and speed.
//   - LZ4: fastest decompression; recommended for CI round-trips.
//
// # Architecture
//
//	type Compressor interface {
//	    Compress(data []byte) ([]byte, error)
//	}
//
//	type Decompressor interface {
//	    Decompress(data []byte) ([]byte, error)
//	}
//
//	type Codec interface {
//	    Compressor
//	    Decompressor
//	}
//
// Use CreateCodec with a Kind to select an implementation; GetCodec returns a shared built-in
// instance for the common case of stateless codecs.
package exportbundle
