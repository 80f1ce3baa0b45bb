package container

import (
	"io"

	"github.com/deadbeef/dbpf/errs"
)

// readAt reads exactly length bytes at offset from r, wrapping a short read as
// errs.ErrTruncatedFile and any other failure as errs.ErrIOFailure.
func readAt(r io.ReaderAt, offset int64, length int) ([]byte, error) {
	buf := make([]byte, length)

	n, err := r.ReadAt(buf, offset)
	if err != nil && err != io.EOF {
		return nil, errs.ErrIOFailure
	}
	if n != length {
		return nil, errs.ErrTruncatedFile
	}

	return buf, nil
}
