package container

import (
	"path/filepath"

	"github.com/google/renameio"
)

// WriteFile serializes pkg and writes it to path, via a temp file in the same directory
// followed by an atomic rename. A failure at any point — serialization, the write itself, or
// the rename — leaves the file at path untouched; a reader never observes a partial package.
func WriteFile(path string, pkg *Package) error {
	data, err := pkg.Serialize()
	if err != nil {
		return err
	}

	t, err := renameio.TempFile(filepath.Dir(path), path)
	if err != nil {
		return err
	}
	defer t.Cleanup()

	if _, err := t.Write(data); err != nil {
		return err
	}

	return t.CloseAtomicallyReplace()
}
