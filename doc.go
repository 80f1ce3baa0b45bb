// Package dbpf provides a reader and writer for DBPF ("Database Packed File") package files,
// the resource container format used by life-simulation games of The Sims family.
//
// A package bundles many typed resources — materials, textures, string tables, reference
// tables, and opaque blobs — behind a single 96-byte header, a primary index, and an optional
// QFS compression directory. This package offers convenient top-level wrappers around the
// container and section packages for the most common open/inspect/write flows; for
// fine-grained control (custom decode sets, a caller-supplied resource.Registry, per-resource
// write dispositions) use the container package directly.
//
// # Basic usage
//
//	pkg, err := dbpf.OpenFile("Z001.package", dbpf.WithDecodeAll())
//	if err != nil {
//	    // handle err
//	}
//
//	key := dbpf.Key{Type: 0x49596978, Group: 0x12345678, Instance: 0xABCDEF01}
//	res, ok := pkg.Get(key)
//
//	if err := dbpf.WriteFile("out.package", pkg); err != nil {
//	    // handle err
//	}
package dbpf

import (
	"os"

	"github.com/deadbeef/dbpf/container"
	"github.com/deadbeef/dbpf/section"
)

// Package is a parsed DBPF package. See container.Package for the full API.
type Package = container.Package

// Key is a DBPF Resource Key (Type, Group, Instance, Resource).
type Key = section.Key

// Index minor versions, selecting the on-disk primary-index and compression-directory record
// layout.
const (
	MinorV0 = section.MinorV0
	MinorV1 = section.MinorV1
)

// OpenOption configures Open/OpenFile. See the container package for the full set.
type OpenOption = container.OpenOption

// Re-exported container.OpenOption constructors, so common callers never need to import
// container directly.
var (
	WithRegistry    = container.WithRegistry
	WithDecodeTypes = container.WithDecodeTypes
	WithDecodeAll   = container.WithDecodeAll
	WithLogger      = container.WithLogger
)

// WriteDisposition controls how Package.Serialize treats one resource's bytes. See the
// container package for the full set of values.
type WriteDisposition = container.WriteDisposition

// New returns an empty Package using indexMinor for its eventual on-disk index layout.
func New(indexMinor uint32) *Package {
	return container.NewPackage(indexMinor)
}

// OpenFile opens and fully parses the package at path.
func OpenFile(path string, opts ...OpenOption) (*Package, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	info, err := f.Stat()
	if err != nil {
		return nil, err
	}

	return container.Open(f, info.Size(), opts...)
}

// WriteFile serializes pkg and writes it to path via a temp-file-then-rename, so a reader
// never observes a partially written package.
func WriteFile(path string, pkg *Package) error {
	return container.WriteFile(path, pkg)
}
