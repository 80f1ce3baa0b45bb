package section

const (
	// HeaderSize is the fixed byte size of a DBPF file header.
	HeaderSize = 96

	// MagicNumber is the literal 4-byte ASCII magic a header must begin with.
	MagicNumber = "DBPF"

	// VersionMajor is the only supported header major version.
	VersionMajor = 1
	// IndexVersionMajor is the only supported index major version; the sibling archive
	// variant that uses a different major version is out of scope.
	IndexVersionMajor = 7

	// MinorV0 and MinorV1 are the logical index minor versions. On disk the stored value is
	// one greater than the logical value (see Header.Bytes / Header.Parse).
	MinorV0 = 0
	MinorV1 = 1
)

// indexEntrySize returns the on-disk size, in bytes, of a primary-index record for the given
// logical index minor version.
func indexEntrySize(minor int) int {
	if minor == MinorV1 {
		return 24
	}

	return 20
}

// compressionDirEntrySize returns the on-disk size, in bytes, of a compression-directory
// record for the given logical index minor version.
func compressionDirEntrySize(minor int) int {
	if minor == MinorV1 {
		return 20
	}

	return 16
}

// CompressionDirectoryType is the reserved resource type ID that marks the compression
// directory entry within a package's own primary index.
const CompressionDirectoryType uint32 = 0xE86B1EEF
