package container

import (
	"io"

	"github.com/sirupsen/logrus"

	"github.com/deadbeef/dbpf/errs"
	"github.com/deadbeef/dbpf/internal/options"
	"github.com/deadbeef/dbpf/logging"
	"github.com/deadbeef/dbpf/qfs"
	"github.com/deadbeef/dbpf/resource"
	"github.com/deadbeef/dbpf/section"
)

// Package is a parsed DBPF package: its header plus the live set of resources held in the
// primary index. Resources removed from memory via Remove never reach a subsequent Serialize;
// there is no null-sentinel tombstone to clean up later.
type Package struct {
	header       section.Header
	resources    []resource.Resource
	index        *keyIndex
	registry     *resource.Registry
	dispositions map[section.Key]WriteDisposition
	logger       logging.Printer
}

// NewPackage returns an empty Package ready to have resources Added to it, using indexMinor
// (section.MinorV0 or section.MinorV1) for its eventual on-disk index layout.
func NewPackage(indexMinor uint32) *Package {
	return &Package{
		header:       section.NewHeader(indexMinor),
		index:        newKeyIndex(),
		registry:     resource.NewRegistry(),
		dispositions: make(map[section.Key]WriteDisposition),
		logger:       logging.Discard,
	}
}

// Open reads a DBPF package from r, which spans size bytes, following the header → primary
// index → compression directory → per-entry decode pipeline. Only entries in the decode set
// configured via WithDecodeTypes/WithDecodeAll are handed to the registry; every other entry
// is held as resource.Opaque.
//
// The compression directory's own primary-index entry is consumed while resolving each
// resource's compressed flag and never surfaces as a Package resource; Serialize regenerates
// it from scratch.
func Open(r io.ReaderAt, size int64, opts ...OpenOption) (*Package, error) {
	cfg := newOpenConfig()
	if err := options.Apply(cfg, opts...); err != nil {
		return nil, err
	}

	headerBytes, err := readAt(r, 0, section.HeaderSize)
	if err != nil {
		return nil, err
	}

	header, err := section.ParseHeader(headerBytes)
	if err != nil {
		return nil, err
	}

	cfg.logger.Dump(logrus.DebugLevel, "parsed header", header)

	indexMinor := int(header.IndexMinor)
	entrySize := section.IndexEntrySize(indexMinor)
	if uint32(entrySize)*header.EntryCount != header.IndexSize {
		return nil, errs.ErrIndexSizeMismatch
	}

	indexBytes, err := readAt(r, int64(header.IndexOffset), int(header.IndexSize))
	if err != nil {
		return nil, err
	}

	entries := make([]section.IndexEntry, 0, header.EntryCount)
	seenKeys := make(map[section.Key]bool, header.EntryCount)

	for i := uint32(0); i < header.EntryCount; i++ {
		off := int(i) * entrySize

		entry, err := section.ParseIndexEntry(indexBytes[off:off+entrySize], indexMinor)
		if err != nil {
			return nil, err
		}

		if seenKeys[entry.Key] {
			return nil, errs.ErrDuplicateIndexKey
		}
		seenKeys[entry.Key] = true

		entries = append(entries, entry)
	}

	var compDirEntry *section.IndexEntry

	for i := range entries {
		if !entries[i].Key.IsCompressionDirectory() {
			continue
		}
		if compDirEntry != nil {
			return nil, errs.ErrDuplicateCompressionDirectory
		}

		compDirEntry = &entries[i]
	}

	var compEntries []section.CompressionDirEntry

	if compDirEntry != nil {
		dirBytes, err := readAt(r, int64(compDirEntry.Offset), int(compDirEntry.Length))
		if err != nil {
			return nil, err
		}

		compEntrySize := section.CompressionDirEntrySize(indexMinor)
		for off := 0; off+compEntrySize <= len(dirBytes); off += compEntrySize {
			ce, err := section.ParseCompressionDirEntry(dirBytes[off:off+compEntrySize], indexMinor)
			if err != nil {
				return nil, err
			}

			if !seenKeys[ce.Key] {
				return nil, errs.ErrSpuriousCompressionEntry
			}

			compEntries = append(compEntries, ce)
		}
	}

	cfg.logger.Dump(logrus.DebugLevel, "primary index entries", len(entries))
	cfg.logger.Dump(logrus.DebugLevel, "compression directory entries", len(compEntries))

	lookup := newCompressionLookup(compEntries)

	pkg := &Package{
		header:       header,
		index:        newKeyIndex(),
		registry:     cfg.registry,
		dispositions: make(map[section.Key]WriteDisposition),
		logger:       cfg.logger,
	}

	for _, entry := range entries {
		if entry.Key.IsCompressionDirectory() {
			continue
		}

		payload, err := readAt(r, int64(entry.Offset), int(entry.Length))
		if err != nil {
			return nil, err
		}

		decompressedSize, compressed := lookup.find(entry.Key)

		var res resource.Resource

		if cfg.shouldDecode(entry.Key.Type) {
			data := payload
			if compressed {
				data, err = qfs.DecodeStrict(payload, int(entry.Length), int(decompressedSize))
				if err != nil {
					return nil, err
				}
			}

			res, err = pkg.registry.Decode(entry, data)
			if err != nil {
				return nil, err
			}
		} else {
			res = resource.NewOpaque(entry, payload)
		}

		pkg.index.put(res.Key(), len(pkg.resources))
		pkg.resources = append(pkg.resources, res)
	}

	return pkg, nil
}

// Get returns the resource keyed by key, if the package holds one.
func (p *Package) Get(key section.Key) (resource.Resource, bool) {
	idx, ok := p.index.find(p.resources, key)
	if !ok {
		return nil, false
	}

	return p.resources[idx], true
}

// All returns a copy of the package's current resource slice, in index order.
func (p *Package) All() []resource.Resource {
	out := make([]resource.Resource, len(p.resources))
	copy(out, p.resources)

	return out
}

// Add inserts res into the package, replacing any existing resource with the same key.
func (p *Package) Add(res resource.Resource) {
	if idx, ok := p.index.find(p.resources, res.Key()); ok {
		p.resources[idx] = res

		return
	}

	p.index.put(res.Key(), len(p.resources))
	p.resources = append(p.resources, res)
}

// Remove deletes the resource keyed by key, reporting whether one was present. Unlike the
// teacher's null-sentinel-and-sweep discipline, removal is immediate: there is nothing left
// for Serialize to skip over.
func (p *Package) Remove(key section.Key) bool {
	idx, ok := p.index.find(p.resources, key)
	if !ok {
		return false
	}

	p.index.remove(key, idx)
	delete(p.dispositions, key)

	last := len(p.resources) - 1
	if idx != last {
		movedKey := p.resources[last].Key()
		p.index.remove(movedKey, last)
		p.resources[idx] = p.resources[last]
		p.index.put(movedKey, idx)
	}

	p.resources = p.resources[:last]

	return true
}

// SetWriteDisposition overrides how Serialize treats the resource keyed by key, letting a
// caller force a decompress, a compress, or a pass-through of already-compressed bytes, or
// omit the resource from the next Serialize call entirely.
func (p *Package) SetWriteDisposition(key section.Key, disposition WriteDisposition) {
	p.dispositions[key] = disposition
}

// Serialize re-serializes any dirty resource, applies each resource's write disposition,
// attempts compression on resources left uncompressed by DispositionDefault, and emits the
// complete package bytes: header, resource bodies, compression directory, primary index.
//
// Serialize always performs a full rewrite; it never models free ranges for an in-place
// update, so the header's hole-table fields are always emitted zeroed.
func (p *Package) Serialize() ([]byte, error) {
	indexMinor := int(p.header.IndexMinor)

	var body []byte

	indexEntries := make([]section.IndexEntry, 0, len(p.resources)+1)
	compDirEntries := make([]section.CompressionDirEntry, 0, len(p.resources))

	for _, res := range p.resources {
		disposition := p.dispositions[res.Key()]
		if disposition == DispositionSkip {
			continue
		}

		raw, err := resolveWriteBytes(res, disposition)
		if err != nil {
			return nil, err
		}

		offset := section.HeaderSize + len(body)
		indexEntries = append(indexEntries, section.IndexEntry{
			Key:    res.Key(),
			Offset: uint32(offset),
			Length: uint32(len(raw)),
		})

		if fh, ferr := qfs.ParseFrameHeader(raw); ferr == nil {
			compDirEntries = append(compDirEntries, section.CompressionDirEntry{
				Key:              res.Key(),
				DecompressedSize: fh.DecompressedLength,
			})
		}

		body = append(body, raw...)
	}

	compDirOffset := section.HeaderSize + len(body)
	compDirEntrySize := section.CompressionDirEntrySize(indexMinor)
	compDirBytes := make([]byte, 0, len(compDirEntries)*compDirEntrySize)

	for _, ce := range compDirEntries {
		compDirBytes = append(compDirBytes, ce.Bytes(indexMinor)...)
	}

	if len(compDirEntries) > 0 {
		indexEntries = append(indexEntries, section.IndexEntry{
			Key:    section.Key{Type: section.CompressionDirectoryType},
			Offset: uint32(compDirOffset),
			Length: uint32(len(compDirBytes)),
		})
	}

	indexOffset := compDirOffset + len(compDirBytes)
	indexEntrySize := section.IndexEntrySize(indexMinor)
	indexBytes := make([]byte, 0, len(indexEntries)*indexEntrySize)

	for _, e := range indexEntries {
		indexBytes = append(indexBytes, e.Bytes(indexMinor)...)
	}

	p.logger.Dump(logrus.DebugLevel, "resources written", len(indexEntries))
	p.logger.Dump(logrus.DebugLevel, "compressed resources", len(compDirEntries))

	header := p.header
	header.EntryCount = uint32(len(indexEntries))
	header.IndexOffset = uint32(indexOffset)
	header.IndexSize = uint32(len(indexBytes))
	header.HoleEntryCount = 0
	header.HoleOffset = 0
	header.HoleSize = 0

	out := make([]byte, 0, indexOffset+len(indexBytes))
	out = append(out, header.Bytes()...)
	out = append(out, body...)
	out = append(out, compDirBytes...)
	out = append(out, indexBytes...)

	return out, nil
}

// resolveWriteBytes returns the bytes a single resource contributes to a Serialize call,
// honoring disposition.
func resolveWriteBytes(res resource.Resource, disposition WriteDisposition) ([]byte, error) {
	if disposition == DispositionCompressedRaw {
		return res.Bytes(), nil
	}

	raw := res.Bytes()
	compressedLen, decompressedLen, compressed := res.IsCompressed()

	switch disposition {
	case DispositionUncompressed:
		if !compressed {
			return raw, nil
		}

		return qfs.DecodeStrict(raw, int(compressedLen), int(decompressedLen))

	case DispositionCompressed:
		if compressed {
			return raw, nil
		}

		if frame, ok := qfs.Compress(raw); ok {
			return frame, nil
		}

		return raw, nil

	default: // DispositionDefault
		if !compressed && res.CompressRawBytes() {
			raw = res.Bytes()
		}

		return raw, nil
	}
}
