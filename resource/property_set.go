package resource

import (
	"github.com/deadbeef/dbpf/propbag"
	"github.com/deadbeef/dbpf/section"
)

// Hair color enum values, matching the source format's family/hair-tone property catalog.
const (
	HairBlack = 1
	HairBrown = 2
	HairBlond = 3
	HairRed   = 4
	HairGrey  = 5
)

// hairToneGUIDs maps a hair color enum to the canonical GUID-shaped sentinel string the
// format uses for its hairtone/proxy properties.
var hairToneGUIDs = map[int]string{
	HairBlack: "00000001-0000-0000-0000-000000000000",
	HairBrown: "00000002-0000-0000-0000-000000000000",
	HairBlond: "00000003-0000-0000-0000-000000000000",
	HairRed:   "00000004-0000-0000-0000-000000000000",
	HairGrey:  "00000005-0000-0000-0000-000000000000",
}

// hairToneGenetic maps a hair color enum to the genetic float value the format pairs with it:
// black and brown share 1, blond and red share 2, grey is 0.
var hairToneGenetic = map[int]float32{
	HairBlack: 1,
	HairBrown: 1,
	HairBlond: 2,
	HairRed:   2,
	HairGrey:  0,
}

// PropertySet is a parsed property-set resource (GZPS): a tagged-value bag exposing
// sim/object family membership and hair coloring as typed setters over the bag's "family",
// "genetic", and "hairtone" entries.
type PropertySet struct {
	Base
	Bag *propbag.TaggedBag
}

// ParsePropertySet parses a property-set resource from data, which must hold the resource's
// decompressed payload.
func ParsePropertySet(entry section.IndexEntry, data []byte) (*PropertySet, error) {
	bag, err := propbag.ParseTaggedBag(data)
	if err != nil {
		return nil, err
	}

	return &PropertySet{Base: NewBase(entry.Key, data), Bag: bag}, nil
}

// Name returns the bag's "name" property, the display name CPF-derived resources carry.
func (p *PropertySet) Name() string {
	return taggedString(p.Bag, "name")
}

// Age returns the bag's "age" property (an age-group bitmask: 1 toddler, 0x10 elder, and so
// on), reporting false if the property is absent or not an unsigned integer.
func (p *PropertySet) Age() (uint32, bool) {
	v, ok := p.Bag.Get("age")
	if !ok || v.Tag != propbag.TagUint {
		return 0, false
	}

	return v.Uint, true
}

// SetFamily sets the "family" property.
func (p *PropertySet) SetFamily(family string) bool {
	return setTaggedOrAdd(&p.Base, p.Bag, "family", propbag.StringValue(family))
}

// SetHairColor sets the "genetic" float and "hairtone" string properties for the given hair
// color enum (HairBlack, HairBrown, HairBlond, HairRed, HairGrey). It reports false for an
// unrecognized color.
func (p *PropertySet) SetHairColor(color int) bool {
	guid, ok := hairToneGUIDs[color]
	if !ok {
		return false
	}

	ok1 := setTaggedOrAdd(&p.Base, p.Bag, "genetic", propbag.FloatValue(hairToneGenetic[color]))
	ok2 := setTaggedOrAdd(&p.Base, p.Bag, "hairtone", propbag.StringValue(guid))

	return ok1 && ok2
}

// Bytes returns the property set's current serialized form, re-serializing if dirty.
func (p *PropertySet) Bytes() []byte {
	if !p.Dirty() {
		return p.cached()
	}

	return p.store(p.Bag.Bytes())
}

// HairTone is a parsed hair-tone resource (XHTN): a tagged-value bag exposing family
// membership, a descriptive color name, and hair coloring including a "proxy" GUID reference,
// in addition to the GZPS property set's genetic/hairtone pair.
type HairTone struct {
	Base
	Bag *propbag.TaggedBag
}

// ParseHairTone parses a hair-tone resource from data, which must hold the resource's
// decompressed payload.
func ParseHairTone(entry section.IndexEntry, data []byte) (*HairTone, error) {
	bag, err := propbag.ParseTaggedBag(data)
	if err != nil {
		return nil, err
	}

	return &HairTone{Base: NewBase(entry.Key, data), Bag: bag}, nil
}

// Name returns the bag's "name" property.
func (h *HairTone) Name() string {
	return taggedString(h.Bag, "name")
}

// SetFamily sets the "family" property.
func (h *HairTone) SetFamily(family string) bool {
	return setTaggedOrAdd(&h.Base, h.Bag, "family", propbag.StringValue(family))
}

// SetAge sets the "age" property, adding it as an unsigned integer if absent.
func (h *HairTone) SetAge(age uint32) bool {
	return setTaggedOrAdd(&h.Base, h.Bag, "age", propbag.UintValue(age))
}

// SetHairColor sets the "name" (descriptive color name), "genetic" float, and "proxy" GUID
// string properties for the given hair color enum. It reports false for an unrecognized
// color.
func (h *HairTone) SetHairColor(color int) bool {
	guid, ok := hairToneGUIDs[color]
	if !ok {
		return false
	}

	names := map[int]string{
		HairBlack: "Black",
		HairBrown: "Brown",
		HairBlond: "Blond",
		HairRed:   "Red",
		HairGrey:  "Grey",
	}

	ok1 := setTaggedOrAdd(&h.Base, h.Bag, "name", propbag.StringValue(names[color]))
	ok2 := setTaggedOrAdd(&h.Base, h.Bag, "genetic", propbag.FloatValue(hairToneGenetic[color]))
	ok3 := setTaggedOrAdd(&h.Base, h.Bag, "proxy", propbag.StringValue(guid))

	return ok1 && ok2 && ok3
}

// Bytes returns the hair-tone resource's current serialized form, re-serializing if dirty.
func (h *HairTone) Bytes() []byte {
	if !h.Dirty() {
		return h.cached()
	}

	return h.store(h.Bag.Bytes())
}

// taggedString returns a bag's string-tagged value for key, or "" if absent or not a string.
func taggedString(bag *propbag.TaggedBag, key string) string {
	v, ok := bag.Get(key)
	if !ok || v.Tag != propbag.TagString {
		return ""
	}

	return v.String
}

// setTaggedOrAdd sets key to value if present, adding it if not; either way it flips dirty
// when the bag actually changes. It reports whether the assignment succeeded (a type-mismatch
// Set failure is the only way it reports false once present).
func setTaggedOrAdd(base *Base, bag *propbag.TaggedBag, key string, value propbag.Value) bool {
	old, ok := bag.Get(key)
	if !ok {
		bag.AddPair(key, value)
		base.setDirty()

		return true
	}
	if old == value {
		return true
	}

	_, _, err := bag.Set(key, value)
	if err != nil {
		return false
	}
	base.setDirty()

	return true
}
