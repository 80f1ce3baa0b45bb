package resource

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/deadbeef/dbpf/section"
)

func TestStringTable_RoundTrip(t *testing.T) {
	st := &StringTable{
		Base:       NewBase(section.Key{}, nil),
		name:       "TSObjectFoo",
		FormatCode: 1,
		Items: []StringItem{
			{LanguageCode: 1, Value: "Sofa", Description: "a comfy sofa"},
			{LanguageCode: 2, Value: "Canapé", Description: ""},
		},
	}
	st.setDirty()
	raw := st.Bytes()

	got, err := ParseStringTable(section.IndexEntry{}, raw)
	require.NoError(t, err)
	assert.Equal(t, "TSObjectFoo", got.Name())
	assert.Equal(t, uint16(1), got.FormatCode)
	assert.Equal(t, st.Items, got.Items)
}

func TestStringTable_AddSetRemoveItem(t *testing.T) {
	st := &StringTable{Base: NewBase(section.Key{}, nil)}

	st.AddItem(StringItem{LanguageCode: 1, Value: "a", Description: "b"})
	assert.True(t, st.Dirty())

	ok := st.SetItem(0, StringItem{LanguageCode: 2, Value: "c", Description: "d"})
	require.True(t, ok)
	got, ok := st.GetItem(0)
	require.True(t, ok)
	assert.Equal(t, byte(2), got.LanguageCode)

	assert.False(t, st.SetItem(5, StringItem{}))
	assert.True(t, st.RemoveItem(0))
	assert.Equal(t, 0, len(st.Items))
	assert.False(t, st.RemoveItem(0))
}
