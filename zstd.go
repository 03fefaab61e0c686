package vcfld

import (
	"io"

	"github.com/klauspost/compress/zstd"
)

// newZStandardReader decodes a zstd stream. Closing the result releases the
// decoder's goroutines but not the underlying reader.
func newZStandardReader(r io.Reader) (io.ReadCloser, error) {
	dec, err := zstd.NewReader(r, zstd.WithDecoderConcurrency(1))
	if err != nil {
		return nil, err
	}

	return dec.IOReadCloser(), nil
}
