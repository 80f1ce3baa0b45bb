package resource

import (
	"bytes"
	"math"
	"strings"

	"github.com/deadbeef/dbpf/errs"
	"github.com/deadbeef/dbpf/section"
	"github.com/deadbeef/dbpf/stream"
	"github.com/deadbeef/dbpf/typeid"
)

// textureTypeMarker and textureTypeSuffix bound the "<Type>" word (e.g. "Base", "NormalMap")
// embedded in a texture's scoped name of the form "##0x<id>!<subset>~stdMat<Type>TextureName".
const (
	textureTypeMarker = "~stdMat"
	textureTypeSuffix = "TextureName"
)

// textureBlockName is the literal ASCII block name every texture payload carries.
const textureBlockName = "cImageData"

// textureReservedSize is the 4 reserved zero bytes following OuterLoopCount in every texture
// payload, preceding the optional description field.
const textureReservedSize = 4

func validTextureVersion(v uint32) bool {
	return v == 7 || v == 8 || v == 9
}

// Texture is a parsed texture resource (TXTR): a link header, image dimensions and format, and
// the opaque image byte range filling the remainder of the payload.
type Texture struct {
	Base

	Link           LinkHeader
	BlockVersion   uint32
	name           string
	Width          uint32
	Height         uint32
	Format         uint32
	Mipmap         uint32
	Purpose        float32
	OuterLoopCount uint32
	// Description is only meaningful (and only written back) when BlockVersion == 9.
	Description string
	Image       []byte
}

// ParseTexture parses a texture resource from data, which must hold the resource's
// decompressed payload.
func ParseTexture(entry section.IndexEntry, data []byte) (*Texture, error) {
	r := stream.NewReader(data)

	link, err := ParseLinkHeader(r)
	if err != nil {
		return nil, err
	}
	if err := link.RequireSingleIndexType(typeid.Texture); err != nil {
		return nil, err
	}

	blockName, err := r.String1()
	if err != nil {
		return nil, err
	}
	if blockName != textureBlockName {
		return nil, errs.ErrResourceTypeMismatch
	}

	blockID, err := r.Uint32LE()
	if err != nil {
		return nil, err
	}
	if blockID != typeid.Texture {
		return nil, errs.ErrResourceTypeMismatch
	}

	blockVersion, err := r.Uint32LE()
	if err != nil {
		return nil, err
	}
	if !validTextureVersion(blockVersion) {
		return nil, errs.ErrResourceTypeMismatch
	}

	name, err := r.ScopedResourceName()
	if err != nil {
		return nil, err
	}

	width, err := r.Uint32LE()
	if err != nil {
		return nil, err
	}
	height, err := r.Uint32LE()
	if err != nil {
		return nil, err
	}
	format, err := r.Uint32LE()
	if err != nil {
		return nil, err
	}
	mipmap, err := r.Uint32LE()
	if err != nil {
		return nil, err
	}
	purposeBits, err := r.Uint32LE()
	if err != nil {
		return nil, err
	}
	outerLoopCount, err := r.Uint32LE()
	if err != nil {
		return nil, err
	}
	if _, err := r.Bytes(textureReservedSize); err != nil {
		return nil, err
	}

	var description string
	if blockVersion == 9 {
		description, err = r.String1()
		if err != nil {
			return nil, err
		}
	}

	image, err := r.Bytes(r.Remaining())
	if err != nil {
		return nil, err
	}

	return &Texture{
		Base:           NewBase(entry.Key, data),
		Link:           link,
		BlockVersion:   blockVersion,
		name:           name,
		Width:          width,
		Height:         height,
		Format:         format,
		Mipmap:         mipmap,
		Purpose:        math.Float32frombits(purposeBits),
		OuterLoopCount: outerLoopCount,
		Description:    description,
		Image:          append([]byte(nil), image...),
	}, nil
}

// Name returns the texture's scoped display name.
func (t *Texture) Name() string { return t.name }

// SubsetName returns the substring of the texture's scoped name between the 13-character
// "##0x<8-hex-digit-id>!" prefix and the "~stdMat<Type>TextureName" suffix, the same framing a
// texture-referencing pass writes into a material's stdMatBaseTextureName property. It reports
// false if the name doesn't carry that suffix or is too short to contain both.
func (t *Texture) SubsetName() (string, bool) {
	idx := strings.Index(t.name, textureTypeMarker)
	if idx < subsetNamePrefixLen || !strings.HasSuffix(t.name, textureTypeSuffix) {
		return "", false
	}

	return t.name[subsetNamePrefixLen:idx], true
}

// TextureType returns the "<Type>" word from the name's "~stdMat<Type>TextureName" suffix
// (e.g. "Base" or "NormalMap"), reporting false if the name doesn't carry that suffix.
func (t *Texture) TextureType() (string, bool) {
	idx := strings.Index(t.name, textureTypeMarker)
	if idx < 0 || !strings.HasSuffix(t.name, textureTypeSuffix) {
		return "", false
	}

	start := idx + len(textureTypeMarker)
	end := len(t.name) - len(textureTypeSuffix)
	if start >= end {
		return "", false
	}

	return t.name[start:end], true
}

// EqualImageAs reports whether t and other carry the same format, dimensions, and image
// bytes.
func (t *Texture) EqualImageAs(other *Texture) bool {
	if t.Format != other.Format || t.Width != other.Width || t.Height != other.Height {
		return false
	}

	return bytes.Equal(t.Image, other.Image)
}

// SetName sets the texture's scoped display name.
func (t *Texture) SetName(name string) {
	if name == t.name {
		return
	}

	t.name = name
	t.setDirty()
}

// Bytes returns the texture's current serialized form, re-serializing if dirty.
func (t *Texture) Bytes() []byte {
	if !t.Dirty() {
		return t.cached()
	}

	return t.store(t.serialize())
}

func (t *Texture) serialize() []byte {
	w := stream.NewWriter()
	defer w.Release()

	t.Link.Bytes(w)
	_ = w.PutString1(textureBlockName)
	w.PutUint32LE(typeid.Texture)
	w.PutUint32LE(t.BlockVersion)
	_ = w.PutScopedResourceName(t.name)
	w.PutUint32LE(t.Width)
	w.PutUint32LE(t.Height)
	w.PutUint32LE(t.Format)
	w.PutUint32LE(t.Mipmap)
	w.PutUint32LE(math.Float32bits(t.Purpose))
	w.PutUint32LE(t.OuterLoopCount)
	w.PutBytes(make([]byte, textureReservedSize))

	if t.BlockVersion == 9 {
		_ = w.PutString1(t.Description)
	}

	w.PutBytes(t.Image)

	out := make([]byte, w.Len())
	copy(out, w.Bytes())

	return out
}
