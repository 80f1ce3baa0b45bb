package exportbundle

import (
	"archive/tar"
	"bytes"
	"fmt"
	"io"
	"time"
)

// Entry is a single named file inside an export bundle.
//
// The CLI exporter populates Name with a resource's type short-name, type, group, and
// instance plus a ".bin" extension for every resource kind; Data is the file's full contents,
// the resource's raw bytes.
type Entry struct {
	Name string
	Data []byte
}

// Write serializes entries as a tar archive and compresses the result with the codec for
// kind. The returned bytes are a complete bundle file, ready to write to disk.
func Write(kind Kind, entries []Entry) ([]byte, error) {
	var buf bytes.Buffer
	tw := tar.NewWriter(&buf)

	for _, e := range entries {
		hdr := &tar.Header{
			Name:    e.Name,
			Size:    int64(len(e.Data)),
			Mode:    0o644,
			ModTime: time.Unix(0, 0),
		}
		if err := tw.WriteHeader(hdr); err != nil {
			return nil, fmt.Errorf("exportbundle: write tar header for %q: %w", e.Name, err)
		}
		if _, err := tw.Write(e.Data); err != nil {
			return nil, fmt.Errorf("exportbundle: write tar body for %q: %w", e.Name, err)
		}
	}

	if err := tw.Close(); err != nil {
		return nil, fmt.Errorf("exportbundle: close tar writer: %w", err)
	}

	codec, err := CreateCodec(kind, "bundle")
	if err != nil {
		return nil, err
	}

	compressed, err := codec.Compress(buf.Bytes())
	if err != nil {
		return nil, fmt.Errorf("exportbundle: compress bundle: %w", err)
	}

	return compressed, nil
}

// Read decompresses a bundle produced by Write and returns its entries in archive order.
func Read(kind Kind, data []byte) ([]Entry, error) {
	codec, err := CreateCodec(kind, "bundle")
	if err != nil {
		return nil, err
	}

	raw, err := codec.Decompress(data)
	if err != nil {
		return nil, fmt.Errorf("exportbundle: decompress bundle: %w", err)
	}

	tr := tar.NewReader(bytes.NewReader(raw))
	var entries []Entry
	for {
		hdr, err := tr.Next()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("exportbundle: read tar header: %w", err)
		}

		body := make([]byte, hdr.Size)
		if _, err := io.ReadFull(tr, body); err != nil {
			return nil, fmt.Errorf("exportbundle: read tar body for %q: %w", hdr.Name, err)
		}

		entries = append(entries, Entry{Name: hdr.Name, Data: body})
	}

	return entries, nil
}
