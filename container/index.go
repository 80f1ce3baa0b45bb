package container

import (
	"github.com/deadbeef/dbpf/endian"
	"github.com/deadbeef/dbpf/internal/hash"
	"github.com/deadbeef/dbpf/resource"
	"github.com/deadbeef/dbpf/section"
)

// keyHash packs a Resource Key's four fields into 16 little-endian bytes and returns its
// xxHash64, the same hashing primitive the teacher's metric-ID index uses for O(1) lookup.
func keyHash(k section.Key) uint64 {
	var b [16]byte
	engine := endian.GetLittleEndianEngine()

	engine.PutUint32(b[0:4], k.Type)
	engine.PutUint32(b[4:8], k.Group)
	engine.PutUint32(b[8:12], k.Instance)
	engine.PutUint32(b[12:16], k.Resource)

	return hash.ID(string(b[:]))
}

// keyIndex maps Resource Keys to their position in a Package's resource slice by xxHash64,
// falling back to an equality check to resolve the (exceedingly rare) hash collision.
type keyIndex struct {
	buckets map[uint64][]int
}

func newKeyIndex() *keyIndex {
	return &keyIndex{buckets: make(map[uint64][]int)}
}

// put records that key lives at slice position idx.
func (x *keyIndex) put(key section.Key, idx int) {
	h := keyHash(key)
	x.buckets[h] = append(x.buckets[h], idx)
}

// find returns the slice position of key among resources, resolving collisions by comparing
// against resources[idx].Key(). It reports false if key isn't indexed.
func (x *keyIndex) find(resources []resource.Resource, key section.Key) (int, bool) {
	for _, idx := range x.buckets[keyHash(key)] {
		if idx < len(resources) && resources[idx].Key() == key {
			return idx, true
		}
	}

	return 0, false
}

// remove drops idx from key's bucket. Called when a resource is removed from the package; the
// caller is responsible for re-indexing any slice positions that shift as a result.
func (x *keyIndex) remove(key section.Key, idx int) {
	h := keyHash(key)
	bucket := x.buckets[h]
	for i, v := range bucket {
		if v == idx {
			x.buckets[h] = append(bucket[:i], bucket[i+1:]...)

			return
		}
	}
}
