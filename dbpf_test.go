package dbpf

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/deadbeef/dbpf/resource"
	"github.com/deadbeef/dbpf/section"
)

func TestOpenFile_WriteFile_RoundTrip(t *testing.T) {
	pkg := New(MinorV1)
	key := Key{Type: 0xDEADF00D, Group: 1, Instance: 1}
	pkg.Add(resource.NewOpaque(section.IndexEntry{Key: key}, []byte("hello")))

	path := filepath.Join(t.TempDir(), "fixture.package")
	require.NoError(t, WriteFile(path, pkg))

	reopened, err := OpenFile(path)
	require.NoError(t, err)

	res, ok := reopened.Get(key)
	require.True(t, ok)
	assert.Equal(t, []byte("hello"), res.Bytes())
}

func TestOpenFile_MissingFile(t *testing.T) {
	_, err := OpenFile(filepath.Join(t.TempDir(), "does-not-exist.package"))
	assert.True(t, os.IsNotExist(err))
}
