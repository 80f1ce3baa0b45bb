package section

// Key is a DBPF Resource Key: the (Type, Group, Instance, Resource) tuple that identifies a
// resource within a package.
//
// Resource is only meaningful in minor-version-1 packages; minor-version-0 packages carry no
// fourth field on disk, and Resource is always zero for keys read from one.
type Key struct {
	Type     uint32
	Group    uint32
	Instance uint32
	Resource uint32
}

// Equal reports whether two keys identify the same resource.
func (k Key) Equal(other Key) bool {
	return k == other
}

// IsCompressionDirectory reports whether k is the reserved key of a package's compression
// directory resource.
func (k Key) IsCompressionDirectory() bool {
	return k.Type == CompressionDirectoryType
}
