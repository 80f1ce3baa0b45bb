package resource

import (
	"github.com/deadbeef/dbpf/errs"
	"github.com/deadbeef/dbpf/propbag"
	"github.com/deadbeef/dbpf/section"
	"github.com/deadbeef/dbpf/stream"
	"github.com/deadbeef/dbpf/typeid"
)

// materialBlockName is the literal ASCII block name every material payload carries.
const materialBlockName = "cMaterialDefinition"

// subsetNamePrefixLen and subsetNameSuffixLen are the format-defined lengths stripped from
// stdMatBaseTextureName by SubsetName.
const (
	subsetNamePrefixLen = 13
	subsetNameSuffixLen = 22
)

func validMaterialVersion(v uint32) bool {
	return v == 8 || v == 9 || v == 10 || v == 11
}

// Material is a parsed material definition resource (TXMT): a link header, a block-version-
// gated description and fallback-texture list, and a string-to-string property bag holding
// the material's shader parameters.
type Material struct {
	Base

	Link         LinkHeader
	BlockVersion uint32
	name         string
	Description  string
	MaterialType string
	Properties   *propbag.StringBag
	TextureNames []string
}

// ParseMaterial parses a material resource from data, which must hold the resource's
// decompressed payload.
func ParseMaterial(entry section.IndexEntry, data []byte) (*Material, error) {
	r := stream.NewReader(data)

	link, err := ParseLinkHeader(r)
	if err != nil {
		return nil, err
	}
	if err := link.RequireSingleIndexType(typeid.Material); err != nil {
		return nil, err
	}

	blockName, err := r.String1()
	if err != nil {
		return nil, err
	}
	if blockName != materialBlockName {
		return nil, errs.ErrResourceTypeMismatch
	}

	blockID, err := r.Uint32LE()
	if err != nil {
		return nil, err
	}
	if blockID != typeid.Material {
		return nil, errs.ErrResourceTypeMismatch
	}

	blockVersion, err := r.Uint32LE()
	if err != nil {
		return nil, err
	}
	if !validMaterialVersion(blockVersion) {
		return nil, errs.ErrResourceTypeMismatch
	}

	name, err := r.ScopedResourceName()
	if err != nil {
		return nil, err
	}

	description, err := r.String1()
	if err != nil {
		return nil, err
	}

	materialType, err := r.String1()
	if err != nil {
		return nil, err
	}

	propCount, err := r.Uint32LE()
	if err != nil {
		return nil, err
	}

	props := propbag.NewStringBag()
	for i := uint32(0); i < propCount; i++ {
		key, err := r.String1()
		if err != nil {
			return nil, err
		}
		value, err := r.String1()
		if err != nil {
			return nil, err
		}
		props.AddPair(key, value)
	}

	var textureNames []string
	if blockVersion > 8 {
		count, err := r.Uint32LE()
		if err != nil {
			return nil, err
		}
		textureNames = make([]string, count)
		for i := range textureNames {
			textureNames[i], err = r.String1()
			if err != nil {
				return nil, err
			}
		}
	}

	return &Material{
		Base:         NewBase(entry.Key, data),
		Link:         link,
		BlockVersion: blockVersion,
		name:         name,
		Description:  description,
		MaterialType: materialType,
		Properties:   props,
		TextureNames: textureNames,
	}, nil
}

// Name returns the material's scoped display name.
func (m *Material) Name() string { return m.name }

// SubsetName returns the substring of the stdMatBaseTextureName property between its
// format-defined 13-character ID prefix and its 22-character trailing suffix. It reports
// false if the property is absent or too short to contain both.
func (m *Material) SubsetName() (string, bool) {
	v, ok := m.Properties.Get("stdMatBaseTextureName")
	if !ok || len(v) < subsetNamePrefixLen+subsetNameSuffixLen {
		return "", false
	}

	return v[subsetNamePrefixLen : len(v)-subsetNameSuffixLen], true
}

// SetProperty sets a material property, flipping dirty only if the value actually changes.
// It reports whether the property was present.
func (m *Material) SetProperty(key, value string) bool {
	old, ok := m.Properties.Get(key)
	if !ok {
		return false
	}
	if old == value {
		return true
	}

	m.Properties.Set(key, value)
	m.setDirty()

	return true
}

// SetName sets the material's scoped display name.
func (m *Material) SetName(name string) {
	if name == m.name {
		return
	}

	m.name = name
	m.setDirty()
}

// Bytes returns the material's current serialized form, re-serializing if dirty.
func (m *Material) Bytes() []byte {
	if !m.Dirty() {
		return m.cached()
	}

	return m.store(m.serialize())
}

func (m *Material) serialize() []byte {
	w := stream.NewWriter()
	defer w.Release()

	m.Link.Bytes(w)
	_ = w.PutString1(materialBlockName)
	w.PutUint32LE(typeid.Material)
	w.PutUint32LE(m.BlockVersion)
	_ = w.PutScopedResourceName(m.name)
	_ = w.PutString1(m.Description)
	_ = w.PutString1(m.MaterialType)

	w.PutUint32LE(uint32(m.Properties.Len())) //nolint:gosec
	for _, key := range m.Properties.Keys() {
		value, _ := m.Properties.Get(key)
		_ = w.PutString1(key)
		_ = w.PutString1(value)
	}

	if m.BlockVersion > 8 {
		w.PutUint32LE(uint32(len(m.TextureNames))) //nolint:gosec
		for _, name := range m.TextureNames {
			_ = w.PutString1(name)
		}
	}

	out := make([]byte, w.Len())
	copy(out, w.Bytes())

	return out
}
