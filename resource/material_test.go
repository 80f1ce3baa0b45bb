package resource

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/deadbeef/dbpf/section"
	"github.com/deadbeef/dbpf/stream"
	"github.com/deadbeef/dbpf/typeid"
)

func buildMaterialBytes(t *testing.T, blockVersion uint32, props [][2]string, textureNames []string) []byte {
	t.Helper()

	w := stream.NewWriter()
	defer w.Release()

	link := LinkHeader{IndexTypeIDs: []uint32{typeid.Material}}
	link.Bytes(w)

	require.NoError(t, w.PutString1(materialBlockName))
	w.PutUint32LE(typeid.Material)
	w.PutUint32LE(blockVersion)
	require.NoError(t, w.PutScopedResourceName("skinBaseTextureMaterial"))
	require.NoError(t, w.PutString1("a material"))
	require.NoError(t, w.PutString1("standardMaterial"))

	w.PutUint32LE(uint32(len(props)))
	for _, p := range props {
		require.NoError(t, w.PutString1(p[0]))
		require.NoError(t, w.PutString1(p[1]))
	}

	if blockVersion > 8 {
		w.PutUint32LE(uint32(len(textureNames)))
		for _, name := range textureNames {
			require.NoError(t, w.PutString1(name))
		}
	}

	out := make([]byte, w.Len())
	copy(out, w.Bytes())

	return out
}

func TestParseMaterial_RoundTrip(t *testing.T) {
	props := [][2]string{
		{"stdMatBaseTextureName", "0x1234567890123!base_texture_subset!0x1111"},
		{"stdMatAmbient", "0.5,0.5,0.5"},
	}
	raw := buildMaterialBytes(t, 9, props, []string{"fallback1", "fallback2"})

	entry := section.IndexEntry{Key: section.Key{Type: typeid.Material, Group: 1, Instance: 2}}
	m, err := ParseMaterial(entry, raw)
	require.NoError(t, err)

	assert.Equal(t, "skinBaseTextureMaterial", m.Name())
	assert.Equal(t, "a material", m.Description)
	assert.Equal(t, "standardMaterial", m.MaterialType)
	assert.Equal(t, []string{"fallback1", "fallback2"}, m.TextureNames)
	assert.False(t, m.Dirty())
	assert.Equal(t, raw, m.Bytes())

	v, ok := m.Properties.Get("stdMatAmbient")
	require.True(t, ok)
	assert.Equal(t, "0.5,0.5,0.5", v)
}

func TestMaterial_SubsetName(t *testing.T) {
	props := [][2]string{
		{"stdMatBaseTextureName", "##0x11112222!base_texture_subset~stdMatBaseTextureName"},
	}
	raw := buildMaterialBytes(t, 9, props, nil)

	entry := section.IndexEntry{Key: section.Key{Type: typeid.Material}}
	m, err := ParseMaterial(entry, raw)
	require.NoError(t, err)

	got, ok := m.SubsetName()
	require.True(t, ok)
	assert.Equal(t, "base_texture_subset", got)
}

func TestMaterial_SetProperty_FlipsDirtyAndReserializes(t *testing.T) {
	raw := buildMaterialBytes(t, 8, [][2]string{{"k", "v"}}, nil)

	entry := section.IndexEntry{Key: section.Key{Type: typeid.Material}}
	m, err := ParseMaterial(entry, raw)
	require.NoError(t, err)

	assert.False(t, m.SetProperty("missing", "x"))
	assert.False(t, m.Dirty())

	assert.True(t, m.SetProperty("k", "v"))
	assert.False(t, m.Dirty(), "setting to the same value must not mark dirty")

	assert.True(t, m.SetProperty("k", "w"))
	assert.True(t, m.Dirty())

	reserialized := m.Bytes()
	assert.False(t, m.Dirty())

	m2, err := ParseMaterial(entry, reserialized)
	require.NoError(t, err)
	v, ok := m2.Properties.Get("k")
	require.True(t, ok)
	assert.Equal(t, "w", v)
}

func TestParseMaterial_RejectsWrongBlockName(t *testing.T) {
	entry := section.IndexEntry{Key: section.Key{Type: typeid.Material}}

	w := stream.NewWriter()
	defer w.Release()
	link := LinkHeader{IndexTypeIDs: []uint32{typeid.Material}}
	link.Bytes(w)
	require.NoError(t, w.PutString1("wrongBlockName"))
	bad := make([]byte, w.Len())
	copy(bad, w.Bytes())

	_, err := ParseMaterial(entry, bad)
	require.Error(t, err)
}
