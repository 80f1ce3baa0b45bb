package resource

import (
	"bytes"

	"github.com/deadbeef/dbpf/section"
	"github.com/deadbeef/dbpf/stream"
)

// stringTableNameSize is the fixed, null-padded width of a string table's name field.
const stringTableNameSize = 64

// StringItem is a single localized-string-table entry: a language code plus a value and
// description string pair.
type StringItem struct {
	LanguageCode byte
	Value        string
	Description  string
}

// StringTable is a parsed localized string table resource (STR#, CATS, CTSS, TTA...): a fixed
// name field, a format code, and a list of per-language string items.
type StringTable struct {
	Base

	name       string
	FormatCode uint16
	Items      []StringItem
}

// ParseStringTable parses a string table resource from data, which must hold the resource's
// decompressed payload.
func ParseStringTable(entry section.IndexEntry, data []byte) (*StringTable, error) {
	r := stream.NewReader(data)

	nameField, err := r.Bytes(stringTableNameSize)
	if err != nil {
		return nil, err
	}
	name := string(bytes.TrimRight(nameField, "\x00"))

	formatCode, err := r.Uint16LE()
	if err != nil {
		return nil, err
	}

	itemCount, err := r.Uint16LE()
	if err != nil {
		return nil, err
	}

	items := make([]StringItem, itemCount)
	for i := range items {
		langByte, err := r.Bytes(1)
		if err != nil {
			return nil, err
		}
		items[i].LanguageCode = langByte[0]

		items[i].Value, err = r.CString()
		if err != nil {
			return nil, err
		}
		items[i].Description, err = r.CString()
		if err != nil {
			return nil, err
		}
	}

	return &StringTable{
		Base:       NewBase(entry.Key, data),
		name:       name,
		FormatCode: formatCode,
		Items:      items,
	}, nil
}

// Name returns the table's fixed name field.
func (s *StringTable) Name() string { return s.name }

// SetName sets the table's fixed name field. The caller is responsible for keeping it within
// stringTableNameSize bytes; Bytes truncates silently on overflow the way the null-padded
// fixed field always has.
func (s *StringTable) SetName(name string) {
	if name == s.name {
		return
	}

	s.name = name
	s.setDirty()
}

// GetItem returns the item at index and whether index was in range.
func (s *StringTable) GetItem(index int) (StringItem, bool) {
	if index < 0 || index >= len(s.Items) {
		return StringItem{}, false
	}

	return s.Items[index], true
}

// SetItem replaces the item at index. It reports whether index was in range.
func (s *StringTable) SetItem(index int, item StringItem) bool {
	if index < 0 || index >= len(s.Items) {
		return false
	}

	s.Items[index] = item
	s.setDirty()

	return true
}

// AddItem appends item to the end of the table.
func (s *StringTable) AddItem(item StringItem) {
	s.Items = append(s.Items, item)
	s.setDirty()
}

// RemoveItem removes the item at index, compacting the list. It reports whether index was in
// range.
func (s *StringTable) RemoveItem(index int) bool {
	if index < 0 || index >= len(s.Items) {
		return false
	}

	s.Items = append(s.Items[:index], s.Items[index+1:]...)
	s.setDirty()

	return true
}

// Bytes returns the string table's current serialized form, re-serializing if dirty.
func (s *StringTable) Bytes() []byte {
	if !s.Dirty() {
		return s.cached()
	}

	return s.store(s.serialize())
}

func (s *StringTable) serialize() []byte {
	w := stream.NewWriter()
	defer w.Release()

	nameField := make([]byte, stringTableNameSize)
	copy(nameField, s.name)
	w.PutBytes(nameField)

	w.PutUint16LE(s.FormatCode)
	w.PutUint16LE(uint16(len(s.Items))) //nolint:gosec

	for _, item := range s.Items {
		w.PutBytes([]byte{item.LanguageCode})
		_ = w.PutCString(item.Value)
		_ = w.PutCString(item.Description)
	}

	out := make([]byte, w.Len())
	copy(out, w.Bytes())

	return out
}
