// Package qfs implements the QFS codec: a proprietary LZ77-family compressor and decompressor
// used to frame DBPF resource payloads.
//
// A QFS frame is a 9-byte header (compressed length, a fixed sentinel compression ID, and
// decompressed length) followed by an opcode stream. The opcode stream interleaves literal runs
// with back-references into the output already produced; five opcode families select the
// trade-off between match length, back-reference distance, and bytes of encoding overhead.
//
// Decoding supports two modes: DecodeStrict, which requires the frame to declare exactly the
// sizes the caller already knows and to produce exactly that much output, and DecodeTruncate,
// which decodes only the first N bytes of output and is used for header-sniffing a resource
// without paying for a full decode.
//
// Compress implements the encoder: a chained-hash longest-match search over a sliding window with
// lazy matching, gated by a compressibility check so callers never get back a frame that isn't
// strictly smaller than its source.
package qfs
