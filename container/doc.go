// Package container implements the DBPF package file read and write pipelines: header and
// index parsing, compression-directory cross-referencing, resource decoding through a
// resource.Registry, and re-serialization of a modified package back to bytes.
//
// A Package is opened against an io.ReaderAt (a caller-owned file or in-memory buffer), never
// against a bare []byte, so large packages don't need to be fully materialized before the
// index and compression directory can be inspected; only the payload bytes a caller's decode
// set actually asks for are read. Serialize produces the complete file bytes in memory;
// WriteFile wraps it with the temp-file-then-rename discipline the format's failure semantics
// require: a caller never observes a partially written package.
package container
