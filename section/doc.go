// Package section implements the fixed-size, on-disk structures of a DBPF package file: the
// 96-byte file header, the primary index (in its two minor-version record layouts), and the
// compression directory that marks which index entries hold QFS-compressed payloads.
//
// Every type here mirrors the teacher's fixed-size-struct convention: a Parse method reads a
// byte slice into a value, a Bytes method serializes it back. Header fields are always
// little-endian; IndexEntry and CompressionDirEntry vary in size depending on a package's
// index minor version, so their Parse/Bytes pairs take that version explicitly rather than
// inferring it from context.
package section
