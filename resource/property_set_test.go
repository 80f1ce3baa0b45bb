package resource

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/deadbeef/dbpf/propbag"
	"github.com/deadbeef/dbpf/section"
)

func TestPropertySet_SetFamilyAndHairColor(t *testing.T) {
	bag := propbag.NewTaggedBag(0xCBE7505E)
	bag.AddPair("name", propbag.StringValue("Adult Female"))

	p := &PropertySet{Base: NewBase(section.Key{}, bag.Bytes()), Bag: bag}
	assert.Equal(t, "Adult Female", p.Name())

	assert.True(t, p.SetFamily("elder"))
	assert.True(t, p.Dirty())

	assert.True(t, p.SetHairColor(HairBlond))
	v, ok := p.Bag.Get("hairtone")
	require.True(t, ok)
	assert.Equal(t, "00000003-0000-0000-0000-000000000000", v.String)
	g, ok := p.Bag.Get("genetic")
	require.True(t, ok)
	assert.Equal(t, float32(2), g.Float)

	assert.False(t, p.SetHairColor(999))
}

func TestPropertySet_Age(t *testing.T) {
	bag := propbag.NewTaggedBag(0xCBE7505E)
	bag.AddPair("age", propbag.UintValue(0x10))

	p := &PropertySet{Base: NewBase(section.Key{}, bag.Bytes()), Bag: bag}
	age, ok := p.Age()
	require.True(t, ok)
	assert.Equal(t, uint32(0x10), age)
}

func TestPropertySet_Age_AbsentReportsFalse(t *testing.T) {
	bag := propbag.NewTaggedBag(0xCBE7505E)
	p := &PropertySet{Base: NewBase(section.Key{}, bag.Bytes()), Bag: bag}

	_, ok := p.Age()
	assert.False(t, ok)
}

func TestPropertySet_Bytes_RoundTrip(t *testing.T) {
	bag := propbag.NewTaggedBag(1)
	p := &PropertySet{Base: NewBase(section.Key{}, bag.Bytes()), Bag: bag}

	p.SetFamily("teen")
	out := p.Bytes()
	assert.False(t, p.Dirty())

	got, err := propbag.ParseTaggedBag(out)
	require.NoError(t, err)
	v, ok := got.Get("family")
	require.True(t, ok)
	assert.Equal(t, "teen", v.String)
}

func TestHairTone_SetHairColor(t *testing.T) {
	bag := propbag.NewTaggedBag(2)
	h := &HairTone{Base: NewBase(section.Key{}, bag.Bytes()), Bag: bag}

	assert.True(t, h.SetHairColor(HairRed))
	v, ok := h.Bag.Get("name")
	require.True(t, ok)
	assert.Equal(t, "Red", v.String)

	proxy, ok := h.Bag.Get("proxy")
	require.True(t, ok)
	assert.Equal(t, "00000004-0000-0000-0000-000000000000", proxy.String)
}

func TestHairTone_SetAge(t *testing.T) {
	bag := propbag.NewTaggedBag(2)
	h := &HairTone{Base: NewBase(section.Key{}, bag.Bytes()), Bag: bag}

	assert.True(t, h.SetAge(0x5e))
	v, ok := h.Bag.Get("age")
	require.True(t, ok)
	assert.Equal(t, uint32(0x5e), v.Uint)
}
