// Package stream implements the byte-stream primitives every higher-level DBPF section is
// built from: fixed-width little- and big-endian integers and floats, length-prefixed
// strings, null-terminated strings, and the "scoped resource name" record shared by several
// typed resources.
//
// Reader advances a cursor over an input byte slice; Writer advances a cursor over a growable
// output buffer. Both report short reads/writes as errors rather than panicking, since a
// truncated or corrupt package file is an expected failure mode, not a programming error.
package stream
