package resource

import (
	"bytes"

	"github.com/deadbeef/dbpf/errs"
	"github.com/deadbeef/dbpf/stream"
)

// resourceIDPrefix is the literal byte sequence that, when present, flags a link header's
// links as carrying a fourth (resource) field.
var resourceIDPrefix = []byte{0x01, 0x00, 0xFF, 0xFF}

// Link is a single entry of a LinkHeader: a group/instance pair, an optional resource field,
// and the type ID of the payload the link refers to.
type Link struct {
	Group    uint32
	Instance uint32
	Resource uint32
	Type     uint32
}

// LinkHeader is the preamble shared by material and texture payloads: a set of links to other
// resources, followed by the set of type IDs the payload's own index items resolve to.
type LinkHeader struct {
	// HasResourceID reports whether links in this header carry a Resource field.
	HasResourceID bool
	Links         []Link
	// IndexTypeIDs lists the type IDs of this payload's index items. Material and texture
	// payloads both require exactly one, equal to their own resource type.
	IndexTypeIDs []uint32
}

// ParseLinkHeader reads a LinkHeader from r. The resource-ID prefix is optional and is
// detected by peeking the next 4 bytes; if absent, the cursor is left where it was so the
// link count read starts in the right place.
func ParseLinkHeader(r *stream.Reader) (LinkHeader, error) {
	start := r.Pos()

	prefix, err := r.Bytes(4)
	if err != nil {
		return LinkHeader{}, err
	}

	h := LinkHeader{HasResourceID: bytes.Equal(prefix, resourceIDPrefix)}
	if !h.HasResourceID {
		r.Seek(start)
	}

	linkCount, err := r.Uint32LE()
	if err != nil {
		return LinkHeader{}, err
	}

	h.Links = make([]Link, linkCount)
	for i := range h.Links {
		h.Links[i].Group, err = r.Uint32LE()
		if err != nil {
			return LinkHeader{}, err
		}
		h.Links[i].Instance, err = r.Uint32LE()
		if err != nil {
			return LinkHeader{}, err
		}
		if h.HasResourceID {
			h.Links[i].Resource, err = r.Uint32LE()
			if err != nil {
				return LinkHeader{}, err
			}
		}
		h.Links[i].Type, err = r.Uint32LE()
		if err != nil {
			return LinkHeader{}, err
		}
	}

	indexCount, err := r.Uint32LE()
	if err != nil {
		return LinkHeader{}, err
	}

	h.IndexTypeIDs = make([]uint32, indexCount)
	for i := range h.IndexTypeIDs {
		h.IndexTypeIDs[i], err = r.Uint32LE()
		if err != nil {
			return LinkHeader{}, err
		}
	}

	return h, nil
}

// Bytes appends h's wire form to w.
func (h LinkHeader) Bytes(w *stream.Writer) {
	if h.HasResourceID {
		w.PutBytes(resourceIDPrefix)
	}

	w.PutUint32LE(uint32(len(h.Links))) //nolint:gosec
	for _, l := range h.Links {
		w.PutUint32LE(l.Group)
		w.PutUint32LE(l.Instance)
		if h.HasResourceID {
			w.PutUint32LE(l.Resource)
		}
		w.PutUint32LE(l.Type)
	}

	w.PutUint32LE(uint32(len(h.IndexTypeIDs))) //nolint:gosec
	for _, t := range h.IndexTypeIDs {
		w.PutUint32LE(t)
	}
}

// RequireSingleIndexType validates that h declares exactly one index item, equal to want.
// Material and texture payloads both enforce this on their own type.
func (h LinkHeader) RequireSingleIndexType(want uint32) error {
	if len(h.IndexTypeIDs) != 1 || h.IndexTypeIDs[0] != want {
		return errs.ErrResourceTypeMismatch
	}

	return nil
}
