package main

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/deadbeef/dbpf/container"
	"github.com/deadbeef/dbpf/propbag"
	"github.com/deadbeef/dbpf/resource"
	"github.com/deadbeef/dbpf/section"
	"github.com/deadbeef/dbpf/stream"
	"github.com/deadbeef/dbpf/typeid"
)

func buildMaterialBytes(t *testing.T, name string, props [][2]string) []byte {
	t.Helper()

	w := stream.NewWriter()
	defer w.Release()

	link := resource.LinkHeader{IndexTypeIDs: []uint32{typeid.Material}}
	link.Bytes(w)

	require.NoError(t, w.PutString1("cMaterialDefinition"))
	w.PutUint32LE(typeid.Material)
	w.PutUint32LE(8)
	require.NoError(t, w.PutScopedResourceName(name))
	require.NoError(t, w.PutString1("a material"))
	require.NoError(t, w.PutString1("standardMaterial"))

	w.PutUint32LE(uint32(len(props)))
	for _, p := range props {
		require.NoError(t, w.PutString1(p[0]))
		require.NoError(t, w.PutString1(p[1]))
	}

	out := make([]byte, w.Len())
	copy(out, w.Bytes())

	return out
}

func newMaterial(t *testing.T, key section.Key, name string, baseTexture string) *resource.Material {
	t.Helper()

	data := buildMaterialBytes(t, name, [][2]string{{"stdMatBaseTextureName", baseTexture}})
	mat, err := resource.ParseMaterial(section.IndexEntry{Key: key}, data)
	require.NoError(t, err)

	return mat
}

func newTexture(t *testing.T, key section.Key, name string) *resource.Texture {
	t.Helper()

	w := stream.NewWriter()
	defer w.Release()

	link := resource.LinkHeader{IndexTypeIDs: []uint32{typeid.Texture}}
	link.Bytes(w)

	require.NoError(t, w.PutString1("cImageData"))
	w.PutUint32LE(typeid.Texture)
	w.PutUint32LE(7)
	require.NoError(t, w.PutScopedResourceName(name))
	w.PutUint32LE(4)
	w.PutUint32LE(4)
	w.PutUint32LE(0)
	w.PutUint32LE(0)
	w.PutUint32LE(0)
	w.PutUint32LE(0)
	w.PutBytes(make([]byte, 4))

	out := make([]byte, w.Len())
	copy(out, w.Bytes())

	tex, err := resource.ParseTexture(section.IndexEntry{Key: key}, out)
	require.NoError(t, err)

	return tex
}

func newPropertySet(t *testing.T, key section.Key, name string, age uint32) *resource.PropertySet {
	t.Helper()

	bag := propbag.NewTaggedBag(0xCBE7505E)
	bag.AddPair("name", propbag.StringValue(name))
	bag.AddPair("age", propbag.UintValue(age))

	return &resource.PropertySet{Base: resource.NewBase(key, bag.Bytes()), Bag: bag}
}

func newRefTable(t *testing.T, key section.Key, entries []resource.RefEntry) *resource.RefTable {
	t.Helper()

	w := stream.NewWriter()
	defer w.Release()

	w.PutUint32LE(0xDEADBEEF)
	w.PutUint32LE(2)
	w.PutUint32LE(uint32(len(entries)))
	for _, e := range entries {
		w.PutUint32LE(e.Type)
		w.PutUint32LE(e.Group)
		w.PutUint32LE(e.Instance)
		w.PutUint32LE(e.Resource)
	}

	out := make([]byte, w.Len())
	copy(out, w.Bytes())

	rt, err := resource.ParseRefTable(section.IndexEntry{Key: key}, out)
	require.NoError(t, err)

	return rt
}

func TestOutputPath(t *testing.T) {
	assert.Equal(t, "custom_hair_HAIR.package", outputPath("custom_hair.package"))
	assert.Equal(t, "noext_HAIR", outputPath("noext"))
}

func TestParseLegacyTypeIDs(t *testing.T) {
	ids, err := parseLegacyTypeIDs("ebcf3e27", "3c1af1f2", "ac506764")
	require.NoError(t, err)
	assert.Equal(t, uint32(0xebcf3e27), ids.propertySet)
	assert.Equal(t, uint32(0x3c1af1f2), ids.hairTone)
	assert.Equal(t, uint32(0xac506764), ids.refTable)

	_, err = parseLegacyTypeIDs("not-hex", "3c1af1f2", "ac506764")
	assert.Error(t, err)
}

func TestPruneMaterials_BlackHair_KeepsElderAndAdultAnchors(t *testing.T) {
	pkg := container.NewPackage(section.MinorV1)

	hairAdult := newMaterial(t, section.Key{Type: typeid.Material, Instance: 1}, "afhair_007_~hair", "old-adult-hair")
	hairAlphaAdult := newMaterial(t, section.Key{Type: typeid.Material, Instance: 2}, "afhair_007_alpha_~hair", "old-alpha-hair")
	frame := newMaterial(t, section.Key{Type: typeid.Material, Instance: 3}, "afhair_007_~frame", "old-frame")
	lens := newMaterial(t, section.Key{Type: typeid.Material, Instance: 4}, "afhair_007_~lens", "old-lens")
	hairElder := newMaterial(t, section.Key{Type: typeid.Material, Instance: 5}, "efhair_007_~hair", "old-elder-hair")
	hairAlphaElder := newMaterial(t, section.Key{Type: typeid.Material, Instance: 6}, "efhair_007_alpha_~hair", "old-elder-alpha")
	duplicateAdult := newMaterial(t, section.Key{Type: typeid.Material, Instance: 7}, "afhair_008_~hair", "duplicate")

	for _, m := range []*resource.Material{hairAdult, hairAlphaAdult, frame, lens, hairElder, hairAlphaElder, duplicateAdult} {
		pkg.Add(m)
	}

	anchors := pruneMaterials(pkg, resource.HairBlack, "myhat")

	require.True(t, anchors.haveHairAdult)
	require.True(t, anchors.haveHairAlphaAdult)
	require.True(t, anchors.haveFrame)
	require.True(t, anchors.haveLens)
	require.True(t, anchors.haveHairElder)
	require.True(t, anchors.haveHairAlphaElder)

	assert.Equal(t, hairAdult.Key(), anchors.hairAdult)
	assert.Equal(t, hairElder.Key(), anchors.hairElder)

	_, gone := pkg.Get(duplicateAdult.Key())
	assert.False(t, gone)

	survivingHair, ok := pkg.Get(hairAdult.Key())
	require.True(t, ok)
	v, ok := survivingHair.(*resource.Material).Properties.Get("stdMatBaseTextureName")
	require.True(t, ok)
	assert.Equal(t, "ufhairlong-black", v)

	survivingElder, ok := pkg.Get(hairElder.Key())
	require.True(t, ok)
	v, ok = survivingElder.(*resource.Material).Properties.Get("stdMatBaseTextureName")
	require.True(t, ok)
	assert.Equal(t, "ufhairlong-grey", v)

	survivingFrame, ok := pkg.Get(frame.Key())
	require.True(t, ok)
	v, ok = survivingFrame.(*resource.Material).Properties.Get("stdMatBaseTextureName")
	require.True(t, ok)
	assert.Equal(t, "myhat", v)
}

func TestPruneMaterials_NonBlackHair_DropsElderMaterials(t *testing.T) {
	pkg := container.NewPackage(section.MinorV1)

	hairAdult := newMaterial(t, section.Key{Type: typeid.Material, Instance: 1}, "afhair_007_~hair", "x")
	hairElder := newMaterial(t, section.Key{Type: typeid.Material, Instance: 5}, "efhair_007_~hair", "x")

	pkg.Add(hairAdult)
	pkg.Add(hairElder)

	anchors := pruneMaterials(pkg, resource.HairBrown, "myhat")

	assert.True(t, anchors.haveHairAdult)
	assert.False(t, anchors.haveHairElder)

	_, ok := pkg.Get(hairElder.Key())
	assert.False(t, ok)

	survivingHair, ok := pkg.Get(hairAdult.Key())
	require.True(t, ok)
	v, ok := survivingHair.(*resource.Material).Properties.Get("stdMatBaseTextureName")
	require.True(t, ok)
	assert.Equal(t, "ufhairlong-brown", v)
}

func TestPruneAges(t *testing.T) {
	pkg := container.NewPackage(section.MinorV1)

	toddler := newPropertySet(t, section.Key{Type: 0xEBCF3E27, Instance: 1}, "toddler set", ageToddler)
	elderA := newPropertySet(t, section.Key{Type: 0xEBCF3E27, Instance: 2}, "elder set a", ageElder)
	elderB := newPropertySet(t, section.Key{Type: 0xEBCF3E27, Instance: 3}, "elder set b", ageElder)
	adult := newPropertySet(t, section.Key{Type: 0xEBCF3E27, Instance: 4}, "adult set", 2)

	pkg.Add(toddler)
	pkg.Add(elderA)
	pkg.Add(elderB)
	pkg.Add(adult)

	elder1, elder2 := pruneAges(pkg, resource.HairBrown)

	assert.ElementsMatch(t, []uint32{2, 3}, []uint32{elder1, elder2})

	_, ok := pkg.Get(toddler.Key())
	assert.False(t, ok, "toddler set is always removed")
	_, ok = pkg.Get(elderA.Key())
	assert.False(t, ok, "elder sets are removed for non-black hair")
	_, ok = pkg.Get(adult.Key())
	assert.True(t, ok, "non-toddler non-elder sets survive")
}

func TestPruneAges_BlackHairKeepsElderSets(t *testing.T) {
	pkg := container.NewPackage(section.MinorV1)

	elderA := newPropertySet(t, section.Key{Type: 0xEBCF3E27, Instance: 2}, "elder set a", ageElder)
	pkg.Add(elderA)

	elder1, elder2 := pruneAges(pkg, resource.HairBlack)

	assert.Equal(t, uint32(2), elder1)
	assert.Equal(t, uint32(0), elder2)

	_, ok := pkg.Get(elderA.Key())
	assert.True(t, ok, "elder sets survive for black hair")
}

func TestPruneTextures(t *testing.T) {
	pkg := container.NewPackage(section.MinorV1)

	hatTex := newTexture(t, section.Key{Type: typeid.Texture, Instance: 1}, "myhat_txtr")
	otherTex := newTexture(t, section.Key{Type: typeid.Texture, Instance: 2}, "bundled_hair_txtr")

	pkg.Add(hatTex)
	pkg.Add(otherTex)

	pruneTextures(pkg, resource.HairBlack, "myhat")

	_, ok := pkg.Get(hatTex.Key())
	assert.True(t, ok)
	_, ok = pkg.Get(otherTex.Key())
	assert.False(t, ok)
}

func TestPruneTextures_NonBlackHairKeepsNone(t *testing.T) {
	pkg := container.NewPackage(section.MinorV1)

	hatTex := newTexture(t, section.Key{Type: typeid.Texture, Instance: 1}, "myhat_txtr")
	pkg.Add(hatTex)

	pruneTextures(pkg, resource.HairBrown, "myhat")

	_, ok := pkg.Get(hatTex.Key())
	assert.False(t, ok)
}

func TestRewireRefTables(t *testing.T) {
	pkg := container.NewPackage(section.MinorV1)

	anchors := tgirAnchors{
		hairAdult: section.Key{Type: typeid.Material, Group: 1, Instance: 100},
		frame:     section.Key{Type: typeid.Material, Group: 1, Instance: 200},
		lens:      section.Key{Type: typeid.Material, Group: 1, Instance: 300},
	}

	entries := make([]resource.RefEntry, 0, maxisAlphaGroups+3)
	entries = append(entries, resource.RefEntry{Type: typeid.Material, Instance: 1, Resource: 7})
	for i := 0; i < maxisAlphaGroups; i++ {
		entries = append(entries, resource.RefEntry{Type: typeid.Material, Instance: uint32(10 + i)})
	}
	entries = append(entries, resource.RefEntry{Type: typeid.Material, Instance: 900}) // frame slot
	entries = append(entries, resource.RefEntry{Type: typeid.Material, Instance: 901}) // lens slot

	rt := newRefTable(t, section.Key{Type: 0xAC506764, Instance: 50}, entries)
	pkg.Add(rt)

	rewireRefTables(pkg, resource.HairBrown, anchors, 0, 0)

	got := pkg.All()[0].(*resource.RefTable)

	first, _ := got.GetEntry(0)
	assert.Equal(t, anchors.hairAdult.Instance, first.Instance)
	assert.Equal(t, uint32(7), first.Resource, "resource field is preserved")

	frameEntry, _ := got.GetEntry(maxisAlphaGroups + 1)
	assert.Equal(t, anchors.frame.Instance, frameEntry.Instance)

	lensEntry, _ := got.GetEntry(maxisAlphaGroups + 2)
	assert.Equal(t, anchors.lens.Instance, lensEntry.Instance)
}

func TestRecolorHairResources(t *testing.T) {
	pkg := container.NewPackage(section.MinorV1)

	ht := &resource.HairTone{Base: resource.NewBase(section.Key{Type: 1, Instance: 1}, nil), Bag: propbag.NewTaggedBag(1)}
	ht.Bag.AddPair("name", propbag.StringValue(""))
	ht.Bag.AddPair("proxy", propbag.StringValue(""))
	pkg.Add(ht)

	elderSet := newPropertySet(t, section.Key{Type: 2, Instance: 2}, "elder", ageElder)
	elderSet.Bag.AddPair("hairtone", propbag.StringValue(""))
	elderSet.Bag.AddPair("genetic", propbag.FloatValue(0))
	elderSet.Bag.AddPair("family", propbag.StringValue(""))
	pkg.Add(elderSet)

	recolorHairResources(pkg, resource.HairBrown, "myfamily")

	gotElder := pkg.All()
	for _, r := range gotElder {
		if ps, ok := r.(*resource.PropertySet); ok {
			v, ok := ps.Bag.Get("hairtone")
			require.True(t, ok)
			assert.Equal(t, "00000005-0000-0000-0000-000000000000", v.String, "elder property set stays grey regardless of requested color")
		}
	}
}
