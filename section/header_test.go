package section

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/deadbeef/dbpf/endian"
	"github.com/deadbeef/dbpf/errs"
)

func TestHeader_BytesParse_RoundTrip(t *testing.T) {
	h := NewHeader(MinorV1)
	h.CreatedAt = 0xAABBCCDD
	h.ModifiedAt = 0x11223344
	h.EntryCount = 3
	h.IndexOffset = 96
	h.IndexSize = 3 * 24
	h.OpaqueTrailing = 0xFFFFFFFF

	data := h.Bytes()
	require.Len(t, data, HeaderSize)

	got, err := ParseHeader(data)
	require.NoError(t, err)
	assert.Equal(t, h, got)
}

func TestHeader_Parse_Scenario(t *testing.T) {
	// Literal scenario: major=1, minor+1=2, index major=7, index minor+1=2, entry-count=0,
	// index-offset=96, index-size=0.
	data := make([]byte, HeaderSize)
	copy(data[0:4], "DBPF")
	engine := endian.GetLittleEndianEngine()
	engine.PutUint32(data[4:8], 1)
	engine.PutUint32(data[8:12], 2)
	engine.PutUint32(data[32:36], 7)
	engine.PutUint32(data[36:40], 0)
	engine.PutUint32(data[40:44], 96)
	engine.PutUint32(data[44:48], 0)
	engine.PutUint32(data[60:64], 2)

	h, err := ParseHeader(data)
	require.NoError(t, err)
	assert.EqualValues(t, 1, h.VersionMajor)
	assert.EqualValues(t, 1, h.VersionMinor)
	assert.EqualValues(t, 7, h.IndexMajor)
	assert.EqualValues(t, 1, h.IndexMinor)
	assert.EqualValues(t, 0, h.EntryCount)
	assert.EqualValues(t, 96, h.IndexOffset)
	assert.EqualValues(t, 0, h.IndexSize)
}

func TestHeader_Parse_BadMagic(t *testing.T) {
	data := make([]byte, HeaderSize)
	copy(data[0:4], "XXXX")

	_, err := ParseHeader(data)
	require.ErrorIs(t, err, errs.ErrBadMagic)
}

func TestHeader_Parse_Truncated(t *testing.T) {
	_, err := ParseHeader(make([]byte, HeaderSize-1))
	require.ErrorIs(t, err, errs.ErrTruncatedFile)
}

func TestHeader_Parse_UnsupportedVersion(t *testing.T) {
	data := make([]byte, HeaderSize)
	copy(data[0:4], "DBPF")
	engine := endian.GetLittleEndianEngine()
	engine.PutUint32(data[4:8], 2) // unsupported major
	engine.PutUint32(data[8:12], 1)
	engine.PutUint32(data[32:36], 7)
	engine.PutUint32(data[60:64], 1)

	_, err := ParseHeader(data)
	require.ErrorIs(t, err, errs.ErrUnsupportedVersion)
}
