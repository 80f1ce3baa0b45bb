package resource

import (
	"github.com/deadbeef/dbpf/errs"
	"github.com/deadbeef/dbpf/section"
	"github.com/deadbeef/dbpf/stream"
)

// refTableSentinel is the fixed 4-byte value every reference-table payload opens with.
const refTableSentinel uint32 = 0xDEADBEEF

const (
	refTableIndexTypeNoResource = 1
	refTableIndexTypeResource   = 2
)

// RefEntry is a single reference-table entry. Resource is only meaningful when the table's
// IndexType is 2.
type RefEntry struct {
	Type     uint32
	Group    uint32
	Instance uint32
	Resource uint32
}

// RefTable is a parsed reference-table resource (3IDR): a flat list of (type, group,
// instance[, resource]) entries, used to redirect other resources' references en masse.
type RefTable struct {
	Base

	// IndexType selects the on-disk entry width: 1 for 12-byte entries (no Resource field),
	// 2 for 16-byte entries.
	IndexType uint32
	Entries   []RefEntry
}

// ParseRefTable parses a reference-table resource from data, which must hold the resource's
// decompressed payload.
func ParseRefTable(entry section.IndexEntry, data []byte) (*RefTable, error) {
	r := stream.NewReader(data)

	sentinel, err := r.Uint32LE()
	if err != nil {
		return nil, err
	}
	if sentinel != refTableSentinel {
		return nil, errs.ErrResourceTypeMismatch
	}

	indexType, err := r.Uint32LE()
	if err != nil {
		return nil, err
	}
	if indexType != refTableIndexTypeNoResource && indexType != refTableIndexTypeResource {
		return nil, errs.ErrResourceTypeMismatch
	}

	count, err := r.Uint32LE()
	if err != nil {
		return nil, err
	}

	entries := make([]RefEntry, count)
	for i := range entries {
		entries[i].Type, err = r.Uint32LE()
		if err != nil {
			return nil, err
		}
		entries[i].Group, err = r.Uint32LE()
		if err != nil {
			return nil, err
		}
		entries[i].Instance, err = r.Uint32LE()
		if err != nil {
			return nil, err
		}
		if indexType == refTableIndexTypeResource {
			entries[i].Resource, err = r.Uint32LE()
			if err != nil {
				return nil, err
			}
		}
	}

	return &RefTable{
		Base:      NewBase(entry.Key, data),
		IndexType: indexType,
		Entries:   entries,
	}, nil
}

// entrySize returns the on-disk byte width of one entry given the table's IndexType.
func (rt *RefTable) entrySize() int {
	if rt.IndexType == refTableIndexTypeResource {
		return 16
	}

	return 12
}

// PayloadSize returns the on-disk byte size the table would serialize to without actually
// serializing it: the 12-byte fixed header plus entrySize()*len(Entries).
func (rt *RefTable) PayloadSize() int {
	const headerSize = 12

	return headerSize + rt.entrySize()*len(rt.Entries)
}

// GetEntry returns the entry at index and whether index was in range.
func (rt *RefTable) GetEntry(index int) (RefEntry, bool) {
	if index < 0 || index >= len(rt.Entries) {
		return RefEntry{}, false
	}

	return rt.Entries[index], true
}

// SetEntry replaces the entry at index. It reports whether index was in range.
func (rt *RefTable) SetEntry(index int, entry RefEntry) bool {
	if index < 0 || index >= len(rt.Entries) {
		return false
	}

	rt.Entries[index] = entry
	rt.setDirty()

	return true
}

// AddEntry appends entry to the end of the table.
func (rt *RefTable) AddEntry(entry RefEntry) {
	rt.Entries = append(rt.Entries, entry)
	rt.setDirty()
}

// RemoveEntry removes the entry at index, compacting the list. It reports whether index was
// in range.
func (rt *RefTable) RemoveEntry(index int) bool {
	if index < 0 || index >= len(rt.Entries) {
		return false
	}

	rt.Entries = append(rt.Entries[:index], rt.Entries[index+1:]...)
	rt.setDirty()

	return true
}

// Bytes returns the reference table's current serialized form, re-serializing if dirty.
func (rt *RefTable) Bytes() []byte {
	if !rt.Dirty() {
		return rt.cached()
	}

	return rt.store(rt.serialize())
}

func (rt *RefTable) serialize() []byte {
	w := stream.NewWriter()
	defer w.Release()

	w.PutUint32LE(refTableSentinel)
	w.PutUint32LE(rt.IndexType)
	w.PutUint32LE(uint32(len(rt.Entries))) //nolint:gosec

	for _, e := range rt.Entries {
		w.PutUint32LE(e.Type)
		w.PutUint32LE(e.Group)
		w.PutUint32LE(e.Instance)
		if rt.IndexType == refTableIndexTypeResource {
			w.PutUint32LE(e.Resource)
		}
	}

	out := make([]byte, w.Len())
	copy(out, w.Bytes())

	return out
}
