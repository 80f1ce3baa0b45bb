package qfs

const (
	// FrameHeaderSize is the fixed size of a QFS frame header.
	FrameHeaderSize = 9

	// CompressionIDSentinel is the fixed compression-ID value every valid frame header carries.
	CompressionIDSentinel uint16 = 0xFB10

	// MaxDecompressedSize is the largest decompressed size a frame header can declare: the
	// header's decompressed-length field is a 3-byte big-endian integer.
	MaxDecompressedSize = 1<<24 - 1

	// minSourceSize and maxSourceSize bound the inputs Compress will attempt to compress at
	// all; outside this range compression is refused unconditionally.
	minSourceSize = 14
	maxSourceSize = 16 * 1024 * 1024

	minMatchLen = 3

	windowSize = 131072
	hashSlots  = 1 << 16
	maxChain   = 4096
	maxMatch   = 1028
	niceLength = 258
	goodLength = 32
	maxLazy    = 258
)
