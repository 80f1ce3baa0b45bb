package propbag

// StringBag is an ordered string-to-string property map.
type StringBag struct {
	keys   []string
	values map[string]string
}

// NewStringBag returns an empty StringBag.
func NewStringBag() *StringBag {
	return &StringBag{values: make(map[string]string)}
}

// Keys returns the keys in insertion order. The returned slice must not be modified.
func (b *StringBag) Keys() []string {
	return b.keys
}

// Len returns the number of pairs in the bag.
func (b *StringBag) Len() int {
	return len(b.keys)
}

// Get returns the value for key and whether it was present.
func (b *StringBag) Get(key string) (string, bool) {
	v, ok := b.values[key]

	return v, ok
}

// AddPair appends (key, value) if key is not already present. It returns whether the pair was
// inserted.
func (b *StringBag) AddPair(key, value string) bool {
	if _, exists := b.values[key]; exists {
		return false
	}

	b.keys = append(b.keys, key)
	b.values[key] = value

	return true
}

// Set updates the value for an existing key. It returns whether the key was found and the size
// delta in bytes (len(newValue) - len(oldValue)); a no-op (new value equal to old) reports found
// but a zero delta without marking anything dirty.
func (b *StringBag) Set(key, value string) (found bool, sizeDelta int) {
	old, ok := b.values[key]
	if !ok {
		return false, 0
	}
	if old == value {
		return true, 0
	}

	b.values[key] = value

	return true, len(value) - len(old)
}
